package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the assistant about your saved posts",
	Long: `Sends one message to the AI assistant and prints the reply.

The conversation is persistent: each message continues where the last
one, here or in the dashboard, left off.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the stored conversation",
	RunE:  runChatHistory,
}

var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase the stored conversation",
	RunE:  runChatClear,
}

func init() {
	chatCmd.AddCommand(chatHistoryCmd)
	chatCmd.AddCommand(chatClearCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	transcript, err := chatService.Send(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	// Print the assistant's reply, the last entry of the transcript.
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role != domain.RoleAssistant {
			continue
		}
		cmd.Println(transcript[i].Text)
		printSources(cmd, transcript[i].Sources)
		return nil
	}
	return nil
}

func runChatHistory(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	transcript, err := chatService.Transcript(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading conversation: %w", err)
	}

	for _, m := range transcript {
		who := "you"
		if m.Role == domain.RoleAssistant {
			who = "assistant"
		}
		cmd.Printf("[%s] %s\n", who, m.Text)
		printSources(cmd, m.Sources)
	}
	return nil
}

func runChatClear(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	if err := chatService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing conversation: %w", err)
	}
	cmd.Println("Conversation cleared.")
	return nil
}

func printSources(cmd *cobra.Command, sources []domain.ChatSource) {
	for _, s := range sources {
		label := s.Author
		if label == "" {
			label = s.PostID
		}
		cmd.Printf("  ↳ %s (%.2f)\n", label, s.Score)
	}
}
