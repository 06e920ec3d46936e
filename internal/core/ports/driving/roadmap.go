package driving

import (
	"context"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// RoadmapService manages the assistant-generated learning roadmap and
// its completion state.
type RoadmapService interface {
	// Current returns the saved roadmap and completed stage ids.
	// Returns nil, nil, nil when no roadmap has been generated.
	Current(ctx context.Context) (*domain.Roadmap, map[string]bool, error)

	// Generate builds a new roadmap from the goal, replacing the saved
	// one and resetting completion.
	Generate(ctx context.Context, goal string) (*domain.Roadmap, error)

	// ToggleStage flips a stage's completion and returns the new set.
	ToggleStage(ctx context.Context, stageID string) (map[string]bool, error)
}
