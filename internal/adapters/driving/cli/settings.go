package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsKeyCmd = &cobra.Command{
	Use:   "key [api-key]",
	Short: "Set the scraping API key used by capture",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsKey,
}

var settingsThemeCmd = &cobra.Command{
	Use:   "theme [dark|light]",
	Short: "Set the dashboard colour theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsTheme,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsKeyCmd)
	settingsCmd.AddCommand(settingsThemeCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if prefsService == nil {
		return errors.New("preferences service not configured")
	}

	prefs := prefsService.Preferences()
	cmd.Printf("Theme:       %s\n", prefs.Theme)
	cmd.Printf("Last view:   %s\n", prefs.ActiveView)

	key, err := prefsService.ExtractionKey()
	if err != nil {
		return err
	}
	if key == "" {
		cmd.Println("Scrape key:  (not set)")
	} else {
		cmd.Printf("Scrape key:  %s\n", maskKey(key))
	}
	return nil
}

func runSettingsKey(cmd *cobra.Command, args []string) error {
	if prefsService == nil {
		return errors.New("preferences service not configured")
	}

	key := strings.TrimSpace(args[0])
	if key == "" {
		return errors.New("api key must not be empty")
	}
	if err := prefsService.SetExtractionKey(key); err != nil {
		return err
	}
	cmd.Println("Scraping API key saved.")
	return nil
}

func runSettingsTheme(cmd *cobra.Command, args []string) error {
	if prefsService == nil {
		return errors.New("preferences service not configured")
	}

	theme := domain.Theme(args[0])
	if !theme.IsValid() {
		return errors.New("theme must be dark or light")
	}
	if err := prefsService.SetTheme(theme); err != nil {
		return err
	}
	cmd.Printf("Theme set to %s.\n", theme)
	return nil
}

// maskKey keeps the first and last few characters visible.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
