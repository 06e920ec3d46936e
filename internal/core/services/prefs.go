package services

import (
	"fmt"
	"strconv"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driven"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
	"github.com/postchat-labs/postchat-cli/internal/logger"
)

// Ensure PreferencesService implements the interface.
var _ driving.PreferencesService = (*PreferencesService)(nil)

// Store keys for preference storage.
const (
	keyTheme         = "ui.theme"
	keyActiveView    = "ui.active_view"
	keyWidgetTop     = "widget.top"
	keyWidgetLeft    = "widget.left"
	keyExtractionKey = "extraction.api_key"
)

// PreferencesService manages persisted settings over a KVStore
// partition.
type PreferencesService struct {
	store driven.KVStore
}

// NewPreferencesService creates a new preferences service.
func NewPreferencesService(store driven.KVStore) *PreferencesService {
	return &PreferencesService{store: store}
}

// Preferences returns the dashboard settings, normalised. Read failures
// fall back to defaults so the dashboard always opens.
func (s *PreferencesService) Preferences() domain.UIPreferences {
	values, err := s.store.Get(keyTheme, keyActiveView)
	if err != nil {
		logger.Warn("reading preferences: %v", err)
		return domain.DefaultUIPreferences()
	}
	return domain.UIPreferences{
		Theme:      domain.Theme(values[keyTheme]),
		ActiveView: domain.DashboardView(values[keyActiveView]),
	}.Normalise()
}

// SetTheme persists the colour theme.
func (s *PreferencesService) SetTheme(theme domain.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: unknown theme %q", domain.ErrInvalidInput, theme)
	}
	return s.store.Set(map[string]string{keyTheme: string(theme)})
}

// SetActiveView persists which dashboard screen is open.
func (s *PreferencesService) SetActiveView(view domain.DashboardView) error {
	if !view.IsValid() {
		return fmt.Errorf("%w: unknown view %q", domain.ErrInvalidInput, view)
	}
	return s.store.Set(map[string]string{keyActiveView: string(view)})
}

// WidgetPosition returns the saved widget position clamped to the given
// viewport. When nothing is saved the widget starts near the top right.
func (s *PreferencesService) WidgetPosition(view domain.Viewport, size domain.WidgetSize) domain.WidgetPosition {
	pos := domain.WidgetPosition{Top: 1, Left: view.Width - size.Width - 1}

	values, err := s.store.Get(keyWidgetTop, keyWidgetLeft)
	if err != nil {
		logger.Warn("reading widget position: %v", err)
		return pos.Clamp(view, size)
	}
	if top, err := strconv.Atoi(values[keyWidgetTop]); err == nil {
		pos.Top = top
	}
	if left, err := strconv.Atoi(values[keyWidgetLeft]); err == nil {
		pos.Left = left
	}
	return pos.Clamp(view, size)
}

// SaveWidgetPosition persists the widget position.
func (s *PreferencesService) SaveWidgetPosition(pos domain.WidgetPosition) error {
	return s.store.Set(map[string]string{
		keyWidgetTop:  strconv.Itoa(pos.Top),
		keyWidgetLeft: strconv.Itoa(pos.Left),
	})
}

// ExtractionKey returns the scraping API key, or "" when unset.
func (s *PreferencesService) ExtractionKey() (string, error) {
	values, err := s.store.Get(keyExtractionKey)
	if err != nil {
		return "", fmt.Errorf("reading extraction key: %w", err)
	}
	return values[keyExtractionKey], nil
}

// SetExtractionKey persists the scraping API key.
func (s *PreferencesService) SetExtractionKey(key string) error {
	if key == "" {
		return s.store.Remove(keyExtractionKey)
	}
	return s.store.Set(map[string]string{keyExtractionKey: key})
}
