package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/components/statusbar"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/messages"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/styles"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/views/auth"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/views/capture"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/views/chat"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/views/feed"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/views/roadmap"
	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// App is the root bubbletea model for the dashboard.
type App struct {
	ports  *Ports
	styles *styles.Styles
	theme  domain.Theme
	keymap keymap.KeyMap
	status *statusbar.Bar
	ctx    context.Context

	authView    *auth.View
	feedView    *feed.View
	captureView *capture.View
	chatView    *chat.View
	roadmapView *roadmap.View

	activeView   messages.ViewType
	previousView messages.ViewType
	width        int
	height       int
	ready        bool
}

// NewApp creates the dashboard application.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrMissingSession
	}
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	prefs := ports.Prefs.Preferences()
	s := styles.NewStyles(styles.ThemeFor(prefs.Theme))
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:        ports,
		styles:       s,
		theme:        prefs.Theme,
		keymap:       km,
		status:       statusbar.New(s),
		ctx:          context.Background(),
		authView:     auth.NewView(s, km, ports.Session),
		feedView:     feed.NewView(s, km, ports.Posts),
		captureView:  capture.NewView(s, km, ports.Posts, ports.Prefs),
		chatView:     chat.NewView(s, km, ports.Chat),
		roadmapView:  roadmap.NewView(s, km, ports.Roadmap),
		activeView:   messages.ViewAuth,
		previousView: messages.ViewForPreference(prefs.ActiveView),
		width:        80,
		height:       24,
	}
	a.status.SetView(a.activeView.String())
	return a, nil
}

// WithContext sets the context passed to the services.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.authView.WithContext(ctx)
	a.feedView.WithContext(ctx)
	a.captureView.WithContext(ctx)
	a.chatView.WithContext(ctx)
	a.roadmapView.WithContext(ctx)
	return a
}

// Init restores the cached session. The dashboard opens on the auth
// view and jumps to the last used view once a session is found.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.authView.Init(), func() tea.Msg {
		session, err := a.ports.Session.Current(a.ctx)
		if err != nil {
			return messages.SessionChanged{Session: nil}
		}
		return messages.SessionChanged{Session: session}
	})
}

// Update handles messages for the application.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.SessionChanged:
		return a.handleSessionChanged(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.ThemeChanged:
		a.applyTheme(msg.Theme)
		return a, nil

	case messages.ErrorOccurred:
		a.status.SetError(msg.Err)
		return a, nil

	case messages.PostCaptured:
		if msg.Err == nil {
			a.status.SetStatus("Post captured")
		}
		// The feed refreshes itself when a capture lands.
		var cmds []tea.Cmd
		if cmd := a.forwardTo(messages.ViewCapture, msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := a.forwardTo(messages.ViewFeed, msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	return a, a.forwardTo(a.activeView, msg)
}

// handleKeyMsg processes global keys, then forwards to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	// Any key leaves the help screen.
	if a.activeView == messages.ViewHelp {
		return a, a.switchView(a.previousView)
	}

	// Tab cycles the main views, except where a view uses it itself.
	if msg.Type == tea.KeyTab && a.tabCycles() {
		return a, a.switchView(a.nextView())
	}

	// Plain-letter shortcuts apply only when no text input has focus.
	if !a.inputFocused() {
		key := msg.String()
		switch {
		case keymap.Matches(key, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(key, a.keymap.Help):
			return a, a.switchView(messages.ViewHelp)
		case keymap.Matches(key, a.keymap.Feed):
			return a, a.switchView(messages.ViewFeed)
		case keymap.Matches(key, a.keymap.Chat):
			return a, a.switchView(messages.ViewChat)
		case keymap.Matches(key, a.keymap.Capture):
			return a, a.switchView(messages.ViewCapture)
		case keymap.Matches(key, a.keymap.Roadmap):
			return a, a.switchView(messages.ViewRoadmap)
		case keymap.Matches(key, a.keymap.Theme):
			a.applyTheme(a.theme.Toggle())
			return a, nil
		}
	}

	// Esc on the home view quits; elsewhere the views handle it.
	if msg.Type == tea.KeyEsc && a.activeView == messages.ViewChat {
		return a, tea.Quit
	}

	return a, a.forwardTo(a.activeView, msg)
}

// tabCycles reports whether tab is free for view switching. The auth
// form and the capture key form use tab themselves.
func (a *App) tabCycles() bool {
	switch a.activeView {
	case messages.ViewAuth:
		return false
	case messages.ViewCapture:
		return a.captureView.Minimized() || !a.captureView.NeedsKey()
	default:
		return true
	}
}

func (a *App) nextView() messages.ViewType {
	switch a.activeView {
	case messages.ViewChat:
		return messages.ViewFeed
	case messages.ViewFeed:
		return messages.ViewRoadmap
	case messages.ViewRoadmap:
		return messages.ViewCapture
	default:
		return messages.ViewChat
	}
}

// inputFocused reports whether the active view is capturing text.
func (a *App) inputFocused() bool {
	switch a.activeView {
	case messages.ViewAuth, messages.ViewChat:
		return true
	case messages.ViewCapture:
		return !a.captureView.Minimized()
	case messages.ViewFeed:
		return a.feedView.InputFocused()
	case messages.ViewRoadmap:
		return a.roadmapView.InputFocused()
	default:
		return false
	}
}

func (a *App) handleSessionChanged(msg messages.SessionChanged) (tea.Model, tea.Cmd) {
	a.status.SetSession(msg.Session)
	if msg.Session == nil {
		return a, a.switchView(messages.ViewAuth)
	}
	target := a.previousView
	if target == messages.ViewAuth || target == messages.ViewHelp {
		target = messages.ViewChat
	}
	return a, a.switchView(target)
}

// switchView activates a view, persists the choice and runs the view's
// init so it loads fresh data.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	if view == a.activeView {
		return nil
	}
	a.previousView = a.activeView
	a.activeView = view
	a.status.SetView(view.String())
	a.status.Clear()

	if pref, ok := view.Preference(); ok {
		if err := a.ports.Prefs.SetActiveView(pref); err != nil {
			a.status.SetError(err)
		}
	}

	switch view {
	case messages.ViewAuth:
		return a.authView.Init()
	case messages.ViewFeed:
		return a.feedView.Init()
	case messages.ViewCapture:
		return a.captureView.Init()
	case messages.ViewChat:
		return a.chatView.Init()
	case messages.ViewRoadmap:
		return a.roadmapView.Init()
	default:
		return nil
	}
}

// applyTheme switches the palette, persists it and restyles every view.
func (a *App) applyTheme(theme domain.Theme) {
	a.theme = theme
	a.styles = styles.NewStyles(styles.ThemeFor(theme))
	a.status.SetStyles(a.styles)
	a.authView.SetStyles(a.styles)
	a.feedView.SetStyles(a.styles)
	a.captureView.SetStyles(a.styles)
	a.chatView.SetStyles(a.styles)
	a.roadmapView.SetStyles(a.styles)
	if err := a.ports.Prefs.SetTheme(theme); err != nil {
		a.status.SetError(err)
	}
}

// forwardTo delivers a message to one view.
func (a *App) forwardTo(view messages.ViewType, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch view {
	case messages.ViewAuth:
		a.authView, cmd = a.authView.Update(msg)
	case messages.ViewFeed:
		a.feedView, cmd = a.feedView.Update(msg)
	case messages.ViewCapture:
		a.captureView, cmd = a.captureView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewRoadmap:
		a.roadmapView, cmd = a.roadmapView.Update(msg)
	}
	return cmd
}

// View renders the application.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.activeView {
	case messages.ViewAuth:
		body = a.authView.View()
	case messages.ViewFeed:
		body = a.feedView.View()
	case messages.ViewCapture:
		body = a.captureView.View()
	case messages.ViewChat:
		body = a.chatView.View()
	case messages.ViewRoadmap:
		body = a.roadmapView.View()
	case messages.ViewHelp:
		body = a.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", a.status.View())
}

// renderHelp lists the key bindings.
func (a *App) renderHelp() string {
	sections := []string{a.styles.Title.Render("Help"), ""}
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			help := binding.Help()
			sections = append(sections, fmt.Sprintf("  %s  %s",
				a.styles.Subtitle.Render(fmt.Sprintf("%-8s", help.Key)),
				a.styles.Normal.Render(help.Desc)))
		}
		sections = append(sections, "")
	}
	sections = append(sections, a.styles.Help.Render("press any key to go back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions propagates the window size to every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.status.SetWidth(width)
	a.authView.SetDimensions(width, height)
	a.feedView.SetDimensions(width, height)
	a.captureView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
	a.roadmapView.SetDimensions(width, height)
}

// ActiveView returns the current view.
func (a *App) ActiveView() messages.ViewType {
	return a.activeView
}

// Theme returns the active colour theme.
func (a *App) Theme() domain.Theme {
	return a.theme
}

// FeedView returns the feed view, for tests.
func (a *App) FeedView() *feed.View {
	return a.feedView
}

// ChatView returns the chat view, for tests.
func (a *App) ChatView() *chat.View {
	return a.chatView
}

// Run starts the dashboard. Session changes from outside the UI, a
// sign-out on another path for instance, are pushed into the program.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())

	unsubscribe := a.ports.Session.Subscribe(func(session *domain.Session) {
		p.Send(messages.SessionChanged{Session: session})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}
