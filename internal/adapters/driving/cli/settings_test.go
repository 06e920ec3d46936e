package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
}

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	commands := settingsCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "key")
	assert.Contains(t, commandNames, "theme")
}

func TestSettingsShowCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Theme:       dark")
	assert.Contains(t, buf.String(), "Last view:   conversation")
	assert.Contains(t, buf.String(), "Scrape key:  (not set)")
}

func TestSettingsShowCmd_MasksKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	prefsService = &mockPrefsService{
		ExtractionKeyFunc: func() (string, error) {
			return "sk-1234567890abcdef", nil
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "sk-1")
	assert.Contains(t, buf.String(), "cdef")
	assert.NotContains(t, buf.String(), "sk-1234567890abcdef")
}

func TestSettingsKeyCmd_SavesKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	var gotKey string
	prefsService = &mockPrefsService{
		SetExtractionKeyFunc: func(key string) error {
			gotKey = key
			return nil
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "key", "sk-test-key"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "sk-test-key", gotKey)
	assert.Contains(t, buf.String(), "Scraping API key saved.")
}

func TestSettingsKeyCmd_RejectsBlank(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "key", "   "})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "api key must not be empty")
}

func TestSettingsThemeCmd_SetsTheme(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	var gotTheme domain.Theme
	prefsService = &mockPrefsService{
		SetThemeFunc: func(theme domain.Theme) error {
			gotTheme = theme
			return nil
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "theme", "light"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, gotTheme)
	assert.Contains(t, buf.String(), "Theme set to light.")
}

func TestSettingsThemeCmd_RejectsUnknownTheme(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "theme", "solarized"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "theme must be dark or light")
}

func TestSettingsCmd_ServiceNotConfigured(t *testing.T) {
	oldService := prefsService
	prefsService = nil
	defer func() {
		prefsService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "preferences service not configured")
}

func TestMaskKey_ShortKeyFullyMasked(t *testing.T) {
	assert.Equal(t, "******", maskKey("secret"))
}

func TestMaskKey_LongKeyKeepsEnds(t *testing.T) {
	masked := maskKey("sk-1234567890abcdef")
	assert.Equal(t, "sk-1", masked[:4])
	assert.Equal(t, "cdef", masked[len(masked)-4:])
	assert.Contains(t, masked, "***")
}
