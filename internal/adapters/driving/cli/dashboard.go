package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long: `Open the terminal dashboard: browse and search your saved posts,
chat with the assistant, and track your roadmap.

Controls:
  tab      - Cycle views
  ↑/k, ↓/j - Navigate
  Enter    - Submit / Select
  Esc      - Back
  ?        - Help
  Ctrl+C   - Quit`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	// Panic recovery with a stack trace, terminal UIs eat panics otherwise.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in dashboard: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(sessionService, postService, chatService, prefsService, roadmapService)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("starting dashboard: %w", err)
	}
	app.WithContext(cmd.Context())

	return app.Run()
}
