package capture

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/messages"
	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// MockPostService implements driving.PostService for testing.
type MockPostService struct {
	CaptureFunc func(ctx context.Context, url string) (*domain.SavedPost, error)
}

func (m *MockPostService) Fetch(ctx context.Context, url string) (*domain.SavedPost, error) {
	return nil, nil
}

func (m *MockPostService) Save(ctx context.Context, post *domain.SavedPost) (*domain.SavedPost, error) {
	return post, nil
}

func (m *MockPostService) Capture(ctx context.Context, url string) (*domain.SavedPost, error) {
	if m.CaptureFunc != nil {
		return m.CaptureFunc(ctx, url)
	}
	return &domain.SavedPost{ID: "row-1", AuthorName: "Maria Santos"}, nil
}

func (m *MockPostService) List(ctx context.Context) ([]domain.SavedPost, error) {
	return nil, nil
}

func (m *MockPostService) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *MockPostService) Search(
	ctx context.Context, query string, mode domain.SearchMode,
) ([]domain.SearchResult, error) {
	return nil, nil
}

// MockPreferencesService implements driving.PreferencesService for testing.
type MockPreferencesService struct {
	SetExtractionKeyFunc   func(key string) error
	SaveWidgetPositionFunc func(pos domain.WidgetPosition) error
	savedPos               *domain.WidgetPosition
}

func (m *MockPreferencesService) Preferences() domain.UIPreferences {
	return domain.DefaultUIPreferences()
}

func (m *MockPreferencesService) SetTheme(theme domain.Theme) error {
	return nil
}

func (m *MockPreferencesService) SetActiveView(view domain.DashboardView) error {
	return nil
}

func (m *MockPreferencesService) WidgetPosition(
	view domain.Viewport, size domain.WidgetSize,
) domain.WidgetPosition {
	if m.savedPos != nil {
		return m.savedPos.Clamp(view, size)
	}
	return domain.WidgetPosition{Top: 1, Left: view.Width - size.Width - 1}.Clamp(view, size)
}

func (m *MockPreferencesService) SaveWidgetPosition(pos domain.WidgetPosition) error {
	m.savedPos = &pos
	if m.SaveWidgetPositionFunc != nil {
		return m.SaveWidgetPositionFunc(pos)
	}
	return nil
}

func (m *MockPreferencesService) ExtractionKey() (string, error) {
	return "", nil
}

func (m *MockPreferencesService) SetExtractionKey(key string) error {
	if m.SetExtractionKeyFunc != nil {
		return m.SetExtractionKeyFunc(key)
	}
	return nil
}

func newTestView(posts *MockPostService, prefs *MockPreferencesService) *View {
	v := NewView(nil, keymap.DefaultKeyMap(), posts, prefs)
	v.SetDimensions(100, 40)
	return v
}

func typeString(v *View, s string) *View {
	for _, r := range s {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return v
}

// TestView_Submit_CapturesURL tests the happy capture path.
func TestView_Submit_CapturesURL(t *testing.T) {
	var gotURL string
	posts := &MockPostService{
		CaptureFunc: func(_ context.Context, url string) (*domain.SavedPost, error) {
			gotURL = url
			return &domain.SavedPost{ID: "row-1", AuthorName: "Maria Santos"}, nil
		},
	}
	v := newTestView(posts, &MockPreferencesService{})

	v = typeString(v, "https://facebook.com/posts/1")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	v, _ = v.Update(cmd())

	assert.Equal(t, "https://facebook.com/posts/1", gotURL)
	require.NotNil(t, v.Saved())
	assert.Equal(t, "Maria Santos", v.Saved().AuthorName)
	assert.Contains(t, v.View(), "Saved post by Maria Santos")
}

// TestView_Submit_EmptyURL tests that an empty form is rejected locally.
func TestView_Submit_EmptyURL(t *testing.T) {
	v := newTestView(&MockPostService{}, &MockPreferencesService{})

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
}

// TestView_MissingKey_ShowsKeyForm tests the deferred API key prompt.
func TestView_MissingKey_ShowsKeyForm(t *testing.T) {
	v := newTestView(&MockPostService{}, &MockPreferencesService{})

	v, _ = v.Update(messages.PostCaptured{Err: domain.ErrExtractionKeyMissing})

	assert.True(t, v.NeedsKey())
	assert.Contains(t, v.View(), "scraping API key is needed")
}

// TestView_SaveKey_RetriesPendingURL tests that saving the key resubmits.
func TestView_SaveKey_RetriesPendingURL(t *testing.T) {
	var gotKey string
	prefs := &MockPreferencesService{
		SetExtractionKeyFunc: func(key string) error {
			gotKey = key
			return nil
		},
	}
	v := newTestView(&MockPostService{}, prefs)

	v = typeString(v, "https://facebook.com/posts/1")
	v, _ = v.Update(messages.PostCaptured{Err: domain.ErrExtractionKeyMissing})
	require.True(t, v.NeedsKey())

	v = typeString(v, "sk-test-key")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "sk-test-key", gotKey)
	assert.False(t, v.NeedsKey())
	require.NotNil(t, cmd, "capture should retry once the key is saved")
}

// TestView_MovePanel_PersistsPosition tests the drag stand-in keys.
func TestView_MovePanel_PersistsPosition(t *testing.T) {
	prefs := &MockPreferencesService{}
	v := newTestView(&MockPostService{}, prefs)
	start := v.Position()

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyShiftDown})

	assert.Equal(t, start.Top+1, v.Position().Top)
	require.NotNil(t, prefs.savedPos)
	assert.Equal(t, v.Position(), *prefs.savedPos)
}

// TestView_MovePanel_ClampsAtEdge tests that the panel cannot leave the
// viewport.
func TestView_MovePanel_ClampsAtEdge(t *testing.T) {
	v := newTestView(&MockPostService{}, &MockPreferencesService{})

	for range 100 {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyShiftUp})
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	}

	assert.Equal(t, 0, v.Position().Top)
	assert.Equal(t, 0, v.Position().Left)
}

// TestView_Minimize_CollapsesToHeader tests that esc collapses the panel
// to a single header row.
func TestView_Minimize_CollapsesToHeader(t *testing.T) {
	v := newTestView(&MockPostService{}, &MockPreferencesService{})

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.True(t, v.Minimized())
	assert.NotContains(t, v.View(), "Post URL")
	assert.Contains(t, v.View(), "Capture a Post")
}

// TestView_Minimized_IgnoresTyping tests that keystrokes no longer reach
// the form while the panel is collapsed.
func TestView_Minimized_IgnoresTyping(t *testing.T) {
	var captured bool
	posts := &MockPostService{
		CaptureFunc: func(_ context.Context, _ string) (*domain.SavedPost, error) {
			captured = true
			return nil, nil
		},
	}
	v := newTestView(posts, &MockPreferencesService{})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	v = typeString(v, "stray keys")
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, captured)
	assert.False(t, v.Minimized(), "enter should expand the panel")
}

// TestView_Expand_RestoresForm tests the collapse and reopen round trip.
func TestView_Expand_RestoresForm(t *testing.T) {
	v := newTestView(&MockPostService{}, &MockPreferencesService{})
	v = typeString(v, "https://facebook.com/posts/1")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, v.Minimized())
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, v.Minimized())
	assert.NotNil(t, cmd, "expanding should refocus the URL field")
	assert.Contains(t, v.View(), "Post URL")

	// The pending URL survives the round trip.
	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.PostCaptured)
	require.True(t, ok)
	assert.Nil(t, msg.Err)
}

// TestView_Minimized_EscLeavesView tests that a second esc backs out to
// the assistant view.
func TestView_Minimized_EscLeavesView(t *testing.T) {
	v := newTestView(&MockPostService{}, &MockPreferencesService{})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, v.Minimized())

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewChat}, cmd())
}

// TestView_Minimized_StillMovable tests that shift+arrows keep working on
// the collapsed panel.
func TestView_Minimized_StillMovable(t *testing.T) {
	prefs := &MockPreferencesService{}
	v := newTestView(&MockPostService{}, prefs)
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	start := v.Position()

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyShiftDown})

	assert.Equal(t, start.Top+1, v.Position().Top)
	require.NotNil(t, prefs.savedPos)
}

// TestView_Resize_ReclampsPosition tests that shrinking the window pulls
// the panel back on screen.
func TestView_Resize_ReclampsPosition(t *testing.T) {
	v := newTestView(&MockPostService{}, &MockPreferencesService{})

	for range 100 {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	}
	wide := v.Position().Left
	require.Greater(t, wide, 0)

	v, _ = v.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

	assert.LessOrEqual(t, v.Position().Left+v.panelSize().Width, 60)
}
