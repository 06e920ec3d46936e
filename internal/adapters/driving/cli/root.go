// Package cli implements the postchat command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
	"github.com/postchat-labs/postchat-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "0.1.0"

// Services the commands call, injected before Execute.
var (
	sessionService driving.SessionService
	postService    driving.PostService
	chatService    driving.ChatService
	prefsService   driving.PreferencesService
	roadmapService driving.RoadmapService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "postchat",
	Short: "Capture, search and chat with your saved social media posts",
	Long: `PostChat captures social media posts into your personal library,
keeps them synced to your account, and lets you search the library or
discuss it with an AI assistant.

Run without arguments to open the interactive dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runDashboard,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Services bundles the driving ports the CLI commands depend on.
type Services struct {
	Session driving.SessionService
	Posts   driving.PostService
	Chat    driving.ChatService
	Prefs   driving.PreferencesService
	Roadmap driving.RoadmapService
}

// SetServices injects the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	sessionService = s.Session
	postService = s.Posts
	chatService = s.Chat
	prefsService = s.Prefs
	roadmapService = s.Roadmap
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
