package domain

// Theme selects the dashboard colour palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// IsValid reports whether t is a known theme.
func (t Theme) IsValid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// DashboardView names one of the dashboard's main screens.
type DashboardView string

const (
	ViewConversation DashboardView = "conversation"
	ViewFeed         DashboardView = "feed"
	ViewRoadmap      DashboardView = "roadmap"
)

// IsValid reports whether v is a known dashboard view.
func (v DashboardView) IsValid() bool {
	switch v {
	case ViewConversation, ViewFeed, ViewRoadmap:
		return true
	}
	return false
}

// Title returns the view's display name.
func (v DashboardView) Title() string {
	switch v {
	case ViewFeed:
		return "Post Feed"
	case ViewRoadmap:
		return "Roadmap"
	default:
		return "Conversation"
	}
}

// UIPreferences are the persisted dashboard settings. They survive
// restarts so the dashboard reopens where the user left it.
type UIPreferences struct {
	Theme      Theme         `json:"theme"`
	ActiveView DashboardView `json:"active_view"`
}

// DefaultUIPreferences returns the settings for a first run.
func DefaultUIPreferences() UIPreferences {
	return UIPreferences{
		Theme:      ThemeDark,
		ActiveView: ViewConversation,
	}
}

// Normalise replaces invalid fields with their defaults. Preferences
// read back from disk may predate the current set of views or themes.
func (p UIPreferences) Normalise() UIPreferences {
	d := DefaultUIPreferences()
	if !p.Theme.IsValid() {
		p.Theme = d.Theme
	}
	if !p.ActiveView.IsValid() {
		p.ActiveView = d.ActiveView
	}
	return p
}
