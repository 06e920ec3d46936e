// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// UserBubble is the background of the user's chat messages.
	UserBubble lipgloss.Color

	// AssistantBubble is the background of the assistant's chat messages.
	AssistantBubble lipgloss.Color
}

// DarkTheme returns the dark colour theme, the default.
func DarkTheme() *Theme {
	return &Theme{
		Primary:         lipgloss.Color("#6366F1"), // Indigo
		Secondary:       lipgloss.Color("#06B6D4"), // Cyan
		Background:      lipgloss.Color("#111827"), // Near black
		Foreground:      lipgloss.Color("#F9FAFB"), // Near white
		Muted:           lipgloss.Color("#6B7280"), // Medium gray
		Success:         lipgloss.Color("#34D399"), // Green
		Warning:         lipgloss.Color("#FBBF24"), // Amber
		Error:           lipgloss.Color("#F87171"), // Red
		Border:          lipgloss.Color("#374151"), // Border gray
		UserBubble:      lipgloss.Color("#4F46E5"), // Indigo
		AssistantBubble: lipgloss.Color("#1F2937"), // Dark gray
	}
}

// LightTheme returns the light colour theme.
func LightTheme() *Theme {
	return &Theme{
		Primary:         lipgloss.Color("#4F46E5"), // Indigo
		Secondary:       lipgloss.Color("#0891B2"), // Cyan
		Background:      lipgloss.Color("#F9FAFB"), // Near white
		Foreground:      lipgloss.Color("#111827"), // Near black
		Muted:           lipgloss.Color("#9CA3AF"), // Medium gray
		Success:         lipgloss.Color("#059669"), // Green
		Warning:         lipgloss.Color("#D97706"), // Amber
		Error:           lipgloss.Color("#DC2626"), // Red
		Border:          lipgloss.Color("#D1D5DB"), // Border gray
		UserBubble:      lipgloss.Color("#6366F1"), // Indigo
		AssistantBubble: lipgloss.Color("#E5E7EB"), // Light gray
	}
}

// ThemeFor returns the palette for a persisted theme preference.
func ThemeFor(theme domain.Theme) *Theme {
	if theme == domain.ThemeLight {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style

	// UserMessage style for the user's chat bubbles.
	UserMessage lipgloss.Style

	// AssistantMessage style for assistant chat bubbles.
	AssistantMessage lipgloss.Style

	// ErrorMessage style for the assistant's apology bubble.
	ErrorMessage lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DarkTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		UserMessage: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.UserBubble).
			Padding(0, 1),

		AssistantMessage: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.AssistantBubble).
			Padding(0, 1),

		ErrorMessage: lipgloss.NewStyle().
			Foreground(theme.Error).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Error).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the dark theme.
func DefaultStyles() *Styles {
	return NewStyles(DarkTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
