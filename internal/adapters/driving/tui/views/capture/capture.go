// Package capture provides the post capture view.
package capture

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/components/input"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/messages"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/styles"
	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
	"github.com/postchat-labs/postchat-cli/internal/logger"
)

// View represents the capture view: paste a post URL, scrape it and
// save it to the library.
type View struct {
	styles *styles.Styles
	keymap keymap.KeyMap
	url    *input.TextField
	apiKey *input.TextField

	posts driving.PostService
	prefs driving.PreferencesService
	ctx   context.Context

	width     int
	height    int
	pos       domain.WidgetPosition
	busy      bool
	minimized bool
	needsKey  bool
	focusKey  bool
	saved     *domain.SavedPost
	err       error
}

// NewView creates a new capture view.
func NewView(s *styles.Styles, km keymap.KeyMap, posts driving.PostService, prefs driving.PreferencesService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles: s,
		keymap: km,
		url:    input.NewTextField("Post URL", "https://www.facebook.com/...", s),
		apiKey: input.NewPasswordField("Scraping API key", s),
		posts:  posts,
		prefs:  prefs,
		ctx:    context.Background(),
		width:  80,
		height: 24,
	}
	v.url.Focus()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.url.Init()
}

// Update handles messages for the capture view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PostCaptured:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			// Missing key sends the user to the key field.
			if errors.Is(msg.Err, domain.ErrExtractionKeyMissing) {
				v.needsKey = true
				v.focusKey = true
				v.url.Blur()
				return v, v.apiKey.Focus()
			}
			return v, nil
		}
		v.err = nil
		v.saved = msg.Post
		v.url.Reset()
		return v, nil
	}

	return v, v.forwardToFocused(msg)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.busy {
		return v, nil
	}

	// Shift+arrows drag the panel around, the terminal stand-in for the
	// widget drag gesture.
	switch msg.String() {
	case "shift+up":
		v.movePanel(-1, 0)
		return v, nil
	case "shift+down":
		v.movePanel(1, 0)
		return v, nil
	case "shift+left":
		v.movePanel(0, -2)
		return v, nil
	case "shift+right":
		v.movePanel(0, 2)
		return v, nil
	}

	if v.minimized {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyEnter:
			return v, v.expand()
		case tea.KeyEsc:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewChat}
			}
		}
		return v, nil
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		if v.focusKey {
			return v, v.saveKey()
		}
		return v, v.submit()
	case tea.KeyTab:
		if v.needsKey {
			v.toggleFocus()
		}
		return v, nil
	case tea.KeyEsc:
		v.minimize()
		return v, nil
	}

	return v, v.forwardToFocused(msg)
}

// minimize collapses the panel to its header row. The position is
// re-clamped because the collapsed panel has a different footprint.
func (v *View) minimize() {
	v.minimized = true
	v.url.Blur()
	v.apiKey.Blur()
	v.pos = v.pos.Clamp(v.viewport(), v.panelSize())
}

// expand restores the full form and returns focus to the field the
// user was in.
func (v *View) expand() tea.Cmd {
	v.minimized = false
	v.pos = v.pos.Clamp(v.viewport(), v.panelSize())
	if v.focusKey {
		return v.apiKey.Focus()
	}
	return v.url.Focus()
}

func (v *View) toggleFocus() {
	v.focusKey = !v.focusKey
	if v.focusKey {
		v.url.Blur()
		v.apiKey.Focus()
	} else {
		v.apiKey.Blur()
		v.url.Focus()
	}
}

func (v *View) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if v.focusKey {
		v.apiKey, cmd = v.apiKey.Update(msg)
	} else {
		v.url, cmd = v.url.Update(msg)
	}
	return cmd
}

// saveKey persists the scraping key and retries the pending URL.
func (v *View) saveKey() tea.Cmd {
	key := strings.TrimSpace(v.apiKey.Value())
	if key == "" {
		v.err = domain.ErrExtractionKeyMissing
		return nil
	}
	if err := v.prefs.SetExtractionKey(key); err != nil {
		v.err = err
		return nil
	}
	v.needsKey = false
	v.focusKey = false
	v.apiKey.Reset()
	v.apiKey.Blur()
	v.url.Focus()
	v.err = nil
	if v.url.Value() != "" {
		return v.submit()
	}
	return nil
}

// submit scrapes and saves the URL.
func (v *View) submit() tea.Cmd {
	url := strings.TrimSpace(v.url.Value())
	if url == "" {
		v.err = domain.ErrInvalidInput
		return nil
	}

	v.busy = true
	v.err = nil
	v.saved = nil

	return func() tea.Msg {
		post, err := v.posts.Capture(v.ctx, url)
		return messages.PostCaptured{Post: post, Err: err}
	}
}

// View renders the capture panel at its saved position.
func (v *View) View() string {
	panel := v.panel()

	pad := strings.Repeat(" ", v.pos.Left)
	lines := strings.Split(panel, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Repeat("\n", v.pos.Top) + strings.Join(lines, "\n")
}

// panel renders the bordered capture form, collapsed to a single
// header row when minimized.
func (v *View) panel() string {
	if v.minimized {
		header := v.styles.Title.Render("Capture a Post") + "  " +
			v.styles.Help.Render("enter open · esc back")
		return v.styles.Border.Render(header)
	}

	sections := make([]string, 0, 12)

	sections = append(sections, v.styles.Title.Render("Capture a Post"), "")
	sections = append(sections, v.url.View(), "")

	if v.needsKey {
		sections = append(sections,
			v.styles.Warning.Render("A scraping API key is needed to capture posts."),
			v.apiKey.View(), "")
	}

	if v.busy {
		sections = append(sections, v.styles.Muted.Render("Capturing..."), "")
	}

	if v.err != nil && !v.needsKey {
		sections = append(sections, v.styles.Error.Render(presentError(v.err)), "")
	}

	if v.saved != nil {
		summary := "Saved post by " + v.saved.AuthorName
		if v.saved.AuthorName == "" {
			summary = "Saved post"
		}
		sections = append(sections, v.styles.Success.Render("✓ "+summary), "")
	}

	sections = append(sections, v.styles.Help.Render("enter capture · shift+arrows move · esc minimize"))

	return v.styles.Border.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// panelSize measures the rendered panel.
func (v *View) panelSize() domain.WidgetSize {
	p := v.panel()
	return domain.WidgetSize{Width: lipgloss.Width(p), Height: lipgloss.Height(p)}
}

func (v *View) viewport() domain.Viewport {
	return domain.Viewport{Width: v.width, Height: v.height}
}

// movePanel shifts the panel, keeps it on screen and persists the spot.
func (v *View) movePanel(dTop, dLeft int) {
	moved := domain.WidgetPosition{Top: v.pos.Top + dTop, Left: v.pos.Left + dLeft}
	v.pos = moved.Clamp(v.viewport(), v.panelSize())
	if v.prefs == nil {
		return
	}
	if err := v.prefs.SaveWidgetPosition(v.pos); err != nil {
		logger.Warn("saving widget position: %v", err)
	}
}

// presentError maps capture failures to the messages shown on the form.
func presentError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrAuthRequired):
		return "Sign in before capturing posts"
	case errors.Is(err, domain.ErrRateLimited):
		return "Slow down, the scraper is rate limited. Try again shortly"
	case errors.Is(err, domain.ErrExtractionFailed):
		return "Could not extract that post. Check the URL and try again"
	case errors.Is(err, domain.ErrInvalidInput):
		return "A post URL is required"
	default:
		return err.Error()
	}
}

// SetDimensions sets the view dimensions and re-clamps the panel so a
// resize never strands it off screen.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.url.SetWidth(min(width-10, 60))
	v.apiKey.SetWidth(min(width-10, 60))
	if v.prefs != nil {
		v.pos = v.prefs.WidgetPosition(v.viewport(), v.panelSize())
	}
}

// SetStyles swaps the styling, used when the theme changes.
func (v *View) SetStyles(s *styles.Styles) {
	if s == nil {
		return
	}
	v.styles = s
	v.url.SetStyles(s)
	v.apiKey.SetStyles(s)
}

// Position returns where the panel currently sits.
func (v *View) Position() domain.WidgetPosition {
	return v.pos
}

// Saved returns the most recently captured post, if any.
func (v *View) Saved() *domain.SavedPost {
	return v.saved
}

// NeedsKey reports whether the key form is showing.
func (v *View) NeedsKey() bool {
	return v.needsKey
}

// Minimized reports whether the panel is collapsed to its header.
func (v *View) Minimized() bool {
	return v.minimized
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
