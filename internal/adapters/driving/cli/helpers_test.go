package cli

import (
	"context"
	"time"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
)

// mockSessionService implements driving.SessionService with overridable funcs.
type mockSessionService struct {
	CurrentFunc         func(ctx context.Context) (*domain.Session, error)
	SignInFunc          func(ctx context.Context, email, password string) (*domain.Session, error)
	SignUpFunc          func(ctx context.Context, email, password, displayName string) (*domain.SignUpResult, error)
	SignInWithOAuthFunc func(ctx context.Context, provider string) (*domain.Session, error)
	SignOutFunc         func(ctx context.Context) error
	ResetPasswordFunc   func(ctx context.Context, email string) error
}

func (m *mockSessionService) Current(ctx context.Context) (*domain.Session, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	return nil, nil
}

func (m *mockSessionService) State() domain.SessionState {
	return domain.SessionAnonymous
}

func (m *mockSessionService) SignUp(ctx context.Context, email, password, displayName string) (*domain.SignUpResult, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, email, password, displayName)
	}
	return &domain.SignUpResult{Session: &domain.Session{Email: email, DisplayName: displayName}}, nil
}

func (m *mockSessionService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	return &domain.Session{Email: email}, nil
}

func (m *mockSessionService) SignInWithOAuth(ctx context.Context, provider string) (*domain.Session, error) {
	if m.SignInWithOAuthFunc != nil {
		return m.SignInWithOAuthFunc(ctx, provider)
	}
	return &domain.Session{Email: "oauth@example.com"}, nil
}

func (m *mockSessionService) SignOut(ctx context.Context) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx)
	}
	return nil
}

func (m *mockSessionService) ResetPassword(ctx context.Context, email string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email)
	}
	return nil
}

func (m *mockSessionService) Subscribe(_ driving.SessionListener) driving.Unsubscribe {
	return func() {}
}

// mockPostService implements driving.PostService with overridable funcs.
type mockPostService struct {
	FetchFunc   func(ctx context.Context, url string) (*domain.SavedPost, error)
	CaptureFunc func(ctx context.Context, url string) (*domain.SavedPost, error)
	ListFunc    func(ctx context.Context) ([]domain.SavedPost, error)
	DeleteFunc  func(ctx context.Context, id string) error
	SearchFunc  func(ctx context.Context, query string, mode domain.SearchMode) ([]domain.SearchResult, error)
}

func (m *mockPostService) Fetch(ctx context.Context, url string) (*domain.SavedPost, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, url)
	}
	return testPost(), nil
}

func (m *mockPostService) Save(_ context.Context, post *domain.SavedPost) (*domain.SavedPost, error) {
	return post, nil
}

func (m *mockPostService) Capture(ctx context.Context, url string) (*domain.SavedPost, error) {
	if m.CaptureFunc != nil {
		return m.CaptureFunc(ctx, url)
	}
	return testPost(), nil
}

func (m *mockPostService) List(ctx context.Context) ([]domain.SavedPost, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.SavedPost{*testPost()}, nil
}

func (m *mockPostService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPostService) Search(ctx context.Context, query string, mode domain.SearchMode) ([]domain.SearchResult, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, mode)
	}
	return []domain.SearchResult{
		{Content: "Raised beds drain better than open ground.", PostID: "fb-1", Author: "Maria Santos", Score: 0.91},
	}, nil
}

// mockChatService implements driving.ChatService with overridable funcs.
type mockChatService struct {
	TranscriptFunc func(ctx context.Context) ([]domain.ChatMessage, error)
	SendFunc       func(ctx context.Context, text string) ([]domain.ChatMessage, error)
	ClearFunc      func(ctx context.Context) error
}

func (m *mockChatService) Transcript(ctx context.Context) ([]domain.ChatMessage, error) {
	if m.TranscriptFunc != nil {
		return m.TranscriptFunc(ctx)
	}
	return []domain.ChatMessage{domain.NewWelcomeMessage()}, nil
}

func (m *mockChatService) Send(ctx context.Context, text string) ([]domain.ChatMessage, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, text)
	}
	return []domain.ChatMessage{
		domain.NewUserMessage(text),
		domain.NewAssistantMessage("Your saved posts recommend starting with raised beds.", nil),
	}, nil
}

func (m *mockChatService) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}

// mockPrefsService implements driving.PreferencesService with overridable funcs.
type mockPrefsService struct {
	PreferencesFunc      func() domain.UIPreferences
	SetThemeFunc         func(theme domain.Theme) error
	SetActiveViewFunc    func(view domain.DashboardView) error
	ExtractionKeyFunc    func() (string, error)
	SetExtractionKeyFunc func(key string) error
}

func (m *mockPrefsService) Preferences() domain.UIPreferences {
	if m.PreferencesFunc != nil {
		return m.PreferencesFunc()
	}
	return domain.DefaultUIPreferences()
}

func (m *mockPrefsService) SetTheme(theme domain.Theme) error {
	if m.SetThemeFunc != nil {
		return m.SetThemeFunc(theme)
	}
	return nil
}

func (m *mockPrefsService) SetActiveView(view domain.DashboardView) error {
	if m.SetActiveViewFunc != nil {
		return m.SetActiveViewFunc(view)
	}
	return nil
}

func (m *mockPrefsService) WidgetPosition(view domain.Viewport, size domain.WidgetSize) domain.WidgetPosition {
	return domain.WidgetPosition{}
}

func (m *mockPrefsService) SaveWidgetPosition(_ domain.WidgetPosition) error {
	return nil
}

func (m *mockPrefsService) ExtractionKey() (string, error) {
	if m.ExtractionKeyFunc != nil {
		return m.ExtractionKeyFunc()
	}
	return "", nil
}

func (m *mockPrefsService) SetExtractionKey(key string) error {
	if m.SetExtractionKeyFunc != nil {
		return m.SetExtractionKeyFunc(key)
	}
	return nil
}

// mockRoadmapService implements driving.RoadmapService with overridable funcs.
type mockRoadmapService struct {
	CurrentFunc     func(ctx context.Context) (*domain.Roadmap, map[string]bool, error)
	GenerateFunc    func(ctx context.Context, goal string) (*domain.Roadmap, error)
	ToggleStageFunc func(ctx context.Context, stageID string) (map[string]bool, error)
}

func (m *mockRoadmapService) Current(ctx context.Context) (*domain.Roadmap, map[string]bool, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	return testRoadmap(), map[string]bool{"stage-1": true}, nil
}

func (m *mockRoadmapService) Generate(ctx context.Context, goal string) (*domain.Roadmap, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, goal)
	}
	roadmap := testRoadmap()
	roadmap.Goal = goal
	return roadmap, nil
}

func (m *mockRoadmapService) ToggleStage(ctx context.Context, stageID string) (map[string]bool, error) {
	if m.ToggleStageFunc != nil {
		return m.ToggleStageFunc(ctx, stageID)
	}
	return map[string]bool{stageID: true}, nil
}

func testPost() *domain.SavedPost {
	return &domain.SavedPost{
		ID:          "row-1",
		ExternalID:  "fb-1",
		Platform:    "facebook",
		URL:         "https://facebook.com/posts/1",
		AuthorName:  "Maria Santos",
		Text:        "Starting a vegetable garden this spring.",
		PublishedAt: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		Engagement:  domain.Engagement{Likes: 42, Comments: 7, Shares: 3},
	}
}

func testRoadmap() *domain.Roadmap {
	return &domain.Roadmap{
		Goal: "learn container gardening",
		Stages: []domain.RoadmapStage{
			{ID: "stage-1", Title: "Soil and containers", Skills: []string{"soil mixes"}},
			{ID: "stage-2", Title: "Planting and watering"},
		},
	}
}

// setupTestServices installs mock services into the package vars and
// returns a cleanup that restores the previous ones.
func setupTestServices() func() {
	oldSession := sessionService
	oldPosts := postService
	oldChat := chatService
	oldPrefs := prefsService
	oldRoadmap := roadmapService

	sessionService = &mockSessionService{}
	postService = &mockPostService{}
	chatService = &mockChatService{}
	prefsService = &mockPrefsService{}
	roadmapService = &mockRoadmapService{}

	return func() {
		sessionService = oldSession
		postService = oldPosts
		chatService = oldChat
		prefsService = oldPrefs
		roadmapService = oldRoadmap
	}
}
