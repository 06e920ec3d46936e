package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

var captureDryRun bool

var captureCmd = &cobra.Command{
	Use:   "capture [url]",
	Short: "Capture a social media post into your library",
	Long: `Scrapes the post behind the URL, extracts its text, media and
engagement counts, and saves it to your library.

A scraping API key must be configured first:
  postchat settings key <your-key>`,
	Args: cobra.ExactArgs(1),
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().BoolVar(&captureDryRun, "dry-run", false, "fetch and print the post without saving")
	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	if postService == nil {
		return errors.New("post service not configured")
	}

	url := args[0]
	ctx := cmd.Context()

	var (
		post *domain.SavedPost
		err  error
	)
	if captureDryRun {
		post, err = postService.Fetch(ctx, url)
	} else {
		post, err = postService.Capture(ctx, url)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrExtractionKeyMissing):
			return errors.New("no scraping API key configured, run 'postchat settings key <your-key>'")
		case errors.Is(err, domain.ErrAuthRequired):
			return errors.New("sign in first with 'postchat login'")
		case errors.Is(err, domain.ErrRateLimited):
			return errors.New("the scraper is rate limited, try again shortly")
		default:
			return fmt.Errorf("capture failed: %w", err)
		}
	}

	if captureDryRun {
		cmd.Println("Fetched (not saved):")
	} else {
		cmd.Println("Saved:")
	}
	printPost(cmd, post)
	return nil
}

func printPost(cmd *cobra.Command, post *domain.SavedPost) {
	author := post.AuthorName
	if author == "" {
		author = "Unknown author"
	}
	cmd.Printf("  %s", author)
	if !post.PublishedAt.IsZero() {
		cmd.Printf(" · %s", post.PublishedAt.Format("Jan 2, 2006"))
	}
	cmd.Println()

	text := post.Text
	if len([]rune(text)) > 200 {
		text = string([]rune(text)[:200]) + "…"
	}
	if text != "" {
		cmd.Printf("  %s\n", text)
	}

	cmd.Printf("  %d likes · %d comments · %d shares\n",
		post.Engagement.Likes, post.Engagement.Comments, post.Engagement.Shares)
	if len(post.Media) > 0 {
		cmd.Printf("  %d media attachment(s)\n", len(post.Media))
	}
	if post.ID != "" {
		cmd.Printf("  id: %s\n", post.ID)
	}
}
