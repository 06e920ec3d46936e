package driving

import "github.com/postchat-labs/postchat-cli/internal/core/domain"

// PreferencesService manages per-context persisted settings: theme,
// active view, widget placement and the extraction API key.
type PreferencesService interface {
	// Preferences returns the dashboard settings, normalised.
	Preferences() domain.UIPreferences

	// SetTheme persists the colour theme.
	SetTheme(theme domain.Theme) error

	// SetActiveView persists which dashboard screen is open.
	SetActiveView(view domain.DashboardView) error

	// WidgetPosition returns the saved widget position clamped to the
	// given viewport, or the default corner position when unset.
	WidgetPosition(view domain.Viewport, size domain.WidgetSize) domain.WidgetPosition

	// SaveWidgetPosition persists the widget position.
	SaveWidgetPosition(pos domain.WidgetPosition) error

	// ExtractionKey returns the scraping API key, or "" when unset.
	ExtractionKey() (string, error)

	// SetExtractionKey persists the scraping API key.
	SetExtractionKey(key string) error
}
