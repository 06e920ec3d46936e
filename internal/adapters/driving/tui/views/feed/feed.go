// Package feed provides the saved post feed view with search.
package feed

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/components/input"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/components/postcard"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/messages"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/styles"
	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
)

// View represents the feed view: the saved post library with keyword
// and semantic search.
type View struct {
	styles *styles.Styles
	keymap keymap.KeyMap
	search *input.TextField
	card   *postcard.Card

	posts driving.PostService
	ctx   context.Context

	allPosts []domain.SavedPost
	visible  []domain.SavedPost
	results  []domain.SearchResult
	expanded map[string]bool

	selected   int
	offset     int
	width      int
	height     int
	loaded     bool
	busy       bool
	semantic   bool
	focusInput bool
	err        error
}

// NewView creates a new feed view.
func NewView(s *styles.Styles, km keymap.KeyMap, posts driving.PostService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		keymap:   km,
		search:   input.NewTextField("Search", "filter your posts", s),
		card:     postcard.New(s),
		posts:    posts,
		ctx:      context.Background(),
		expanded: map[string]bool{},
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init triggers the initial feed load.
func (v *View) Init() tea.Cmd {
	return v.loadPosts()
}

// Update handles messages for the feed view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PostsLoaded:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.loaded = true
		v.allPosts = msg.Posts
		v.applyKeywordFilter()
		return v, nil

	case messages.SearchCompleted:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.results = msg.Results
		v.selected = 0
		v.offset = 0
		return v, nil

	case messages.PostDeleted:
		v.busy = false
		v.err = msg.Err
		// Reconcile with the backend either way: a reload confirms the
		// optimistic removal, or restores the card when the delete failed.
		return v, v.loadPosts()

	case messages.PostCaptured:
		if msg.Err == nil {
			return v, v.loadPosts()
		}
		return v, nil
	}

	if v.focusInput {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		if v.focusInput || v.results != nil {
			v.exitSearch()
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewChat}
		}
	}

	if v.focusInput {
		switch msg.Type {
		case tea.KeyEnter:
			return v, v.submitSearch()
		default:
			var cmd tea.Cmd
			v.search, cmd = v.search.Update(msg)
			if !v.semantic {
				v.applyKeywordFilter()
			}
			return v, cmd
		}
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		v.moveSelection(-1)
	case keymap.Matches(key, v.keymap.Down):
		v.moveSelection(1)
	case key == "/":
		v.focusInput = true
		v.semantic = false
		return v, v.search.Focus()
	case keymap.Matches(key, v.keymap.Semantic):
		v.focusInput = true
		v.semantic = true
		v.search.Reset()
		return v, v.search.Focus()
	case keymap.Matches(key, v.keymap.Expand):
		v.toggleExpanded()
	case keymap.Matches(key, v.keymap.Delete):
		return v, v.deleteSelected()
	case key == "R":
		return v, v.loadPosts()
	}
	return v, nil
}

func (v *View) exitSearch() {
	v.focusInput = false
	v.semantic = false
	v.results = nil
	v.search.Reset()
	v.search.Blur()
	v.applyKeywordFilter()
}

// submitSearch runs a semantic query, or just leaves input mode for
// keyword searches since those filter as the user types.
func (v *View) submitSearch() tea.Cmd {
	v.focusInput = false
	v.search.Blur()

	query := v.search.Value()
	if !v.semantic || query == "" {
		return nil
	}

	v.busy = true
	return func() tea.Msg {
		results, err := v.posts.Search(v.ctx, query, domain.SearchSemantic)
		return messages.SearchCompleted{
			Query:    query,
			Semantic: true,
			Results:  results,
			Err:      err,
		}
	}
}

// applyKeywordFilter narrows the visible list by the search text.
func (v *View) applyKeywordFilter() {
	v.visible = domain.FilterPostsKeyword(v.allPosts, v.search.Value())
	if v.selected >= len(v.visible) {
		v.selected = 0
		v.offset = 0
	}
}

func (v *View) moveSelection(step int) {
	count := len(v.visible)
	if v.results != nil {
		count = len(v.results)
	}
	if count == 0 {
		return
	}
	v.selected += step
	if v.selected < 0 {
		v.selected = 0
	}
	if v.selected >= count {
		v.selected = count - 1
	}
	v.scrollToSelection()
}

// scrollToSelection keeps the selected card inside the visible window.
func (v *View) scrollToSelection() {
	visible := v.pageSize()
	if v.selected < v.offset {
		v.offset = v.selected
	}
	if v.selected >= v.offset+visible {
		v.offset = v.selected - visible + 1
	}
}

// pageSize estimates how many cards fit on screen.
func (v *View) pageSize() int {
	size := (v.height - 8) / 5
	if size < 1 {
		size = 1
	}
	return size
}

func (v *View) toggleExpanded() {
	post := v.SelectedPost()
	if post == nil || !postcard.Truncated(post.Text) {
		return
	}
	v.expanded[post.ID] = !v.expanded[post.ID]
}

// loadPosts fetches the library.
func (v *View) loadPosts() tea.Cmd {
	v.busy = true
	return func() tea.Msg {
		posts, err := v.posts.List(v.ctx)
		return messages.PostsLoaded{Posts: posts, Err: err}
	}
}

// deleteSelected removes the selected post. The card disappears
// immediately; PostDeleted reconciles with the backend afterwards.
func (v *View) deleteSelected() tea.Cmd {
	post := v.SelectedPost()
	if post == nil {
		return nil
	}
	id := post.ID
	v.removePost(id)
	return func() tea.Msg {
		err := v.posts.Delete(v.ctx, id)
		return messages.PostDeleted{ID: id, Err: err}
	}
}

func (v *View) removePost(id string) {
	kept := make([]domain.SavedPost, 0, len(v.allPosts))
	for _, post := range v.allPosts {
		if post.ID != id {
			kept = append(kept, post)
		}
	}
	v.allPosts = kept
	v.applyKeywordFilter()
	if v.selected >= len(v.visible) && v.selected > 0 {
		v.selected--
	}
	v.scrollToSelection()
}

// View renders the feed view.
func (v *View) View() string {
	sections := make([]string, 0, 16)

	mode := domain.SearchKeyword
	if v.semantic {
		mode = domain.SearchSemantic
	}
	title := fmt.Sprintf("Post Feed · %s", mode.Description())
	sections = append(sections, v.styles.Title.Render(title), "")

	sections = append(sections, v.search.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	if v.busy {
		sections = append(sections, v.styles.Muted.Render("Loading..."), "")
	}

	if v.results != nil {
		sections = append(sections, v.renderResults()...)
	} else {
		sections = append(sections, v.renderPosts()...)
	}

	sections = append(sections, "", v.styles.Help.Render(
		"/ search · s semantic · e expand · d delete · R reload · esc back"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderPosts() []string {
	if v.loaded && len(v.visible) == 0 {
		return []string{v.styles.Muted.Render("No posts yet. Capture one with p.")}
	}

	lines := make([]string, 0, v.pageSize()*2)
	end := v.offset + v.pageSize()
	if end > len(v.visible) {
		end = len(v.visible)
	}
	for i := v.offset; i < end; i++ {
		post := v.visible[i]
		lines = append(lines,
			v.card.Render(&post, i == v.selected, v.expanded[post.ID], v.width-4), "")
	}
	return lines
}

func (v *View) renderResults() []string {
	if len(v.results) == 0 {
		return []string{v.styles.Muted.Render("No results")}
	}

	lines := make([]string, 0, len(v.results)*3)
	for i, hit := range v.results {
		header := hit.Author
		if header == "" {
			header = hit.PostID
		}
		header = fmt.Sprintf("%s · %.2f", header, hit.Score)
		if i == v.selected {
			lines = append(lines, v.styles.Selected.Render(header))
		} else {
			lines = append(lines, v.styles.Subtitle.Render(header))
		}
		lines = append(lines, v.styles.Normal.Width(v.width-4).Render(hit.Content), "")
	}
	return lines
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.search.SetWidth(width - 6)
}

// SetStyles swaps the styling, used when the theme changes.
func (v *View) SetStyles(s *styles.Styles) {
	if s == nil {
		return
	}
	v.styles = s
	v.search.SetStyles(s)
	v.card.SetStyles(s)
}

// SelectedPost returns the currently selected post, nil in result mode
// or when the feed is empty.
func (v *View) SelectedPost() *domain.SavedPost {
	if v.results != nil {
		return nil
	}
	if v.selected < 0 || v.selected >= len(v.visible) {
		return nil
	}
	return &v.visible[v.selected]
}

// Posts returns the loaded library.
func (v *View) Posts() []domain.SavedPost {
	return v.allPosts
}

// Visible returns the posts after keyword filtering.
func (v *View) Visible() []domain.SavedPost {
	return v.visible
}

// Results returns the semantic search results, nil outside result mode.
func (v *View) Results() []domain.SearchResult {
	return v.results
}

// Expanded reports whether the given post is expanded.
func (v *View) Expanded(id string) bool {
	return v.expanded[id]
}

// InputFocused reports whether the search input is capturing keys.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
