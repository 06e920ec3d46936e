package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

var postsJSON bool

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Manage your saved post library",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved posts, newest first",
	RunE:  runPostsList,
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved post",
	Long: `Deletes the post and, best effort, its search index entries.
The post row is removed even when index cleanup fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runPostsDelete,
}

func init() {
	postsListCmd.Flags().BoolVar(&postsJSON, "json", false, "output posts as JSON")

	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsDeleteCmd)
	rootCmd.AddCommand(postsCmd)
}

func runPostsList(cmd *cobra.Command, _ []string) error {
	if postService == nil {
		return errors.New("post service not configured")
	}

	posts, err := postService.List(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			return errors.New("sign in first with 'postchat login'")
		}
		return fmt.Errorf("listing posts: %w", err)
	}

	if postsJSON {
		data, err := json.MarshalIndent(posts, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal posts: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(posts) == 0 {
		cmd.Println("No posts yet. Capture one with 'postchat capture <url>'.")
		return nil
	}

	for i := range posts {
		cmd.Printf("[%d]\n", i+1)
		printPost(cmd, &posts[i])
		cmd.Println()
	}
	return nil
}

func runPostsDelete(cmd *cobra.Command, args []string) error {
	if postService == nil {
		return errors.New("post service not configured")
	}

	if err := postService.Delete(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no post with id %s", args[0])
		}
		return fmt.Errorf("deleting post: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
