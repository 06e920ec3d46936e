package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

var (
	searchSemantic bool
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search your saved posts",
	Long: `Searches the post library.

Keyword mode (default) matches the query against post text, summaries
and author names. Semantic mode asks the backend's vector index and
merges chunk hits per post.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchSemantic, "semantic", "s", false, "use semantic vector search")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if postService == nil {
		return errors.New("post service not configured")
	}

	mode := domain.SearchKeyword
	if searchSemantic {
		mode = domain.SearchSemantic
	}

	results, err := postService.Search(cmd.Context(), args[0], mode)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAuthRequired):
			return errors.New("sign in first with 'postchat login'")
		case errors.Is(err, domain.ErrSearchUnavailable):
			return errors.New("the search backend is unreachable, try again later")
		default:
			return fmt.Errorf("search failed: %w", err)
		}
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		label := results[i].Author
		if label == "" {
			label = results[i].PostID
		}
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, label, results[i].Score)
		if results[i].Content != "" {
			cmd.Printf("      %s\n", results[i].Content)
		}
		if results[i].URL != "" {
			cmd.Printf("      %s\n", results[i].URL)
		}
		cmd.Println()
	}
	return nil
}
