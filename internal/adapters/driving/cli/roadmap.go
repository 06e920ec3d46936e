package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Manage your learning roadmap",
	Long: `The roadmap is an AI-generated learning plan built from your goal
and the posts you have saved. Stages can be ticked off as you complete
them.`,
	RunE: runRoadmapShow,
}

var roadmapShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved roadmap",
	RunE:  runRoadmapShow,
}

var roadmapGenerateCmd = &cobra.Command{
	Use:   "generate [goal]",
	Short: "Generate a new roadmap from a goal",
	Long: `Generates a fresh roadmap for the goal, replacing the saved one
and resetting completion state.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoadmapGenerate,
}

var roadmapToggleCmd = &cobra.Command{
	Use:   "toggle [stage-id]",
	Short: "Toggle a stage's completion",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoadmapToggle,
}

func init() {
	roadmapCmd.AddCommand(roadmapShowCmd)
	roadmapCmd.AddCommand(roadmapGenerateCmd)
	roadmapCmd.AddCommand(roadmapToggleCmd)
	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmapShow(cmd *cobra.Command, _ []string) error {
	if roadmapService == nil {
		return errors.New("roadmap service not configured")
	}

	roadmap, completed, err := roadmapService.Current(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading roadmap: %w", err)
	}
	if roadmap == nil {
		cmd.Println("No roadmap yet. Generate one with 'postchat roadmap generate <goal>'.")
		return nil
	}

	printRoadmap(cmd, roadmap, completed)
	return nil
}

func runRoadmapGenerate(cmd *cobra.Command, args []string) error {
	if roadmapService == nil {
		return errors.New("roadmap service not configured")
	}

	goal := strings.Join(args, " ")
	cmd.Printf("Generating a roadmap for %q...\n", goal)

	roadmap, err := roadmapService.Generate(cmd.Context(), goal)
	if err != nil {
		if errors.Is(err, domain.ErrAssistantUnavailable) {
			return errors.New("the assistant backend is unreachable, try again later")
		}
		return fmt.Errorf("generating roadmap: %w", err)
	}

	printRoadmap(cmd, roadmap, nil)
	return nil
}

func runRoadmapToggle(cmd *cobra.Command, args []string) error {
	if roadmapService == nil {
		return errors.New("roadmap service not configured")
	}

	completed, err := roadmapService.ToggleStage(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no stage with id %s", args[0])
		}
		return fmt.Errorf("toggling stage: %w", err)
	}

	if completed[args[0]] {
		cmd.Printf("Stage %s marked complete.\n", args[0])
	} else {
		cmd.Printf("Stage %s marked incomplete.\n", args[0])
	}
	return nil
}

func printRoadmap(cmd *cobra.Command, roadmap *domain.Roadmap, completed map[string]bool) {
	done, total := roadmap.Progress(completed)
	cmd.Printf("%s (%d/%d stages complete)\n\n", roadmap.Goal, done, total)

	for i, stage := range roadmap.Stages {
		mark := "[ ]"
		if completed[stage.ID] {
			mark = "[x]"
		}
		cmd.Printf("%s %d. %s  (%s)\n", mark, i+1, stage.Title, stage.ID)
		if stage.Description != "" {
			cmd.Printf("    %s\n", stage.Description)
		}
		if len(stage.Skills) > 0 {
			cmd.Printf("    Skills: %s\n", strings.Join(stage.Skills, ", "))
		}
		for _, course := range stage.Courses {
			cmd.Printf("    Course: %s", course.Title)
			if course.URL != "" {
				cmd.Printf(" <%s>", course.URL)
			}
			cmd.Println()
		}
		for _, post := range stage.Posts {
			label := post.Author
			if label == "" {
				label = post.PostID
			}
			cmd.Printf("    Saved post: %s\n", label)
		}
	}
}
