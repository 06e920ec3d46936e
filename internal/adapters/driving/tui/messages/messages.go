// Package messages defines the messages passed between TUI components.
package messages

import (
	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// ViewType identifies a dashboard view.
type ViewType int

const (
	// ViewAuth is the sign-in and registration view.
	ViewAuth ViewType = iota

	// ViewFeed is the captured post feed with search.
	ViewFeed

	// ViewCapture is the post capture view.
	ViewCapture

	// ViewChat is the assistant chat view.
	ViewChat

	// ViewRoadmap is the roadmap view.
	ViewRoadmap

	// ViewHelp shows key bindings.
	ViewHelp
)

// String returns the view name.
func (v ViewType) String() string {
	switch v {
	case ViewAuth:
		return "auth"
	case ViewFeed:
		return "feed"
	case ViewCapture:
		return "capture"
	case ViewChat:
		return "chat"
	case ViewRoadmap:
		return "roadmap"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewForPreference maps a persisted dashboard view to a ViewType.
func ViewForPreference(view domain.DashboardView) ViewType {
	switch view {
	case domain.ViewFeed:
		return ViewFeed
	case domain.ViewRoadmap:
		return ViewRoadmap
	default:
		return ViewChat
	}
}

// Preference maps a ViewType back to the persisted dashboard view.
// Views that are not persisted report ok false.
func (v ViewType) Preference() (domain.DashboardView, bool) {
	switch v {
	case ViewFeed:
		return domain.ViewFeed, true
	case ViewRoadmap:
		return domain.ViewRoadmap, true
	case ViewChat:
		return domain.ViewConversation, true
	default:
		return "", false
	}
}

// ViewChanged signals that the active view should change.
type ViewChanged struct {
	View ViewType
}

// SessionChanged signals that the auth session changed.
type SessionChanged struct {
	Session *domain.Session
}

// SignInCompleted signals that a sign-in attempt finished.
type SignInCompleted struct {
	Session *domain.Session
	Err     error
}

// SignOutCompleted signals that sign-out finished.
type SignOutCompleted struct {
	Err error
}

// PostCaptured signals that a capture attempt finished.
type PostCaptured struct {
	Post *domain.SavedPost
	Err  error
}

// PostsLoaded carries the feed contents.
type PostsLoaded struct {
	Posts []domain.SavedPost
	Err   error
}

// PostDeleted signals that a post was removed.
type PostDeleted struct {
	ID  string
	Err error
}

// SearchCompleted carries search results.
type SearchCompleted struct {
	Query    string
	Semantic bool
	Results  []domain.SearchResult
	Err      error
}

// ChatReplyReceived signals that the assistant replied.
type ChatReplyReceived struct {
	Transcript []domain.ChatMessage
	Err        error
}

// TranscriptLoaded carries the persisted chat transcript.
type TranscriptLoaded struct {
	Transcript []domain.ChatMessage
	Err        error
}

// RoadmapLoaded carries the persisted roadmap and its completion state.
type RoadmapLoaded struct {
	Roadmap   *domain.Roadmap
	Completed map[string]bool
	Err       error
}

// RoadmapGenerated signals that roadmap generation finished.
type RoadmapGenerated struct {
	Roadmap *domain.Roadmap
	Err     error
}

// StageToggled carries the completion set after a stage was flipped.
type StageToggled struct {
	Completed map[string]bool
	Err       error
}

// ThemeChanged signals that the colour theme preference changed.
type ThemeChanged struct {
	Theme domain.Theme
}

// ErrorOccurred carries an error to be shown in the status bar.
type ErrorOccurred struct {
	Err error
}
