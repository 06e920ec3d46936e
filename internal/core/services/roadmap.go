package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driven"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
	"github.com/postchat-labs/postchat-cli/internal/logger"
)

// Ensure RoadmapService implements the interface.
var _ driving.RoadmapService = (*RoadmapService)(nil)

// Store keys for roadmap storage.
const (
	keyRoadmap          = "roadmap.saved"
	keyRoadmapCompleted = "roadmap.completed"
)

// RoadmapService manages the generated learning roadmap and its
// completion state.
type RoadmapService struct {
	assistant driven.Assistant
	store     driven.KVStore
}

// NewRoadmapService creates a new roadmap service.
func NewRoadmapService(assistant driven.Assistant, store driven.KVStore) *RoadmapService {
	return &RoadmapService{assistant: assistant, store: store}
}

// Current returns the saved roadmap and completed stage ids.
func (s *RoadmapService) Current(_ context.Context) (*domain.Roadmap, map[string]bool, error) {
	values, err := s.store.Get(keyRoadmap, keyRoadmapCompleted)
	if err != nil {
		return nil, nil, fmt.Errorf("reading roadmap: %w", err)
	}

	blob := values[keyRoadmap]
	if blob == "" {
		return nil, nil, nil
	}

	var roadmap domain.Roadmap
	if err := json.Unmarshal([]byte(blob), &roadmap); err != nil {
		logger.Warn("discarding unreadable roadmap: %v", err)
		return nil, nil, nil
	}

	completed := map[string]bool{}
	if raw := values[keyRoadmapCompleted]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &completed); err != nil {
			logger.Warn("discarding unreadable completion state: %v", err)
			completed = map[string]bool{}
		}
	}
	return &roadmap, completed, nil
}

// Generate builds a new roadmap from the goal, replacing the saved one
// and resetting completion.
func (s *RoadmapService) Generate(ctx context.Context, goal string) (*domain.Roadmap, error) {
	if goal == "" {
		return nil, fmt.Errorf("%w: a goal is required", domain.ErrInvalidInput)
	}

	roadmap, err := s.assistant.GenerateRoadmap(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAssistantUnavailable, err)
	}

	blob, err := json.Marshal(roadmap)
	if err != nil {
		return nil, fmt.Errorf("serialising roadmap: %w", err)
	}
	if err := s.store.Set(map[string]string{
		keyRoadmap:          string(blob),
		keyRoadmapCompleted: "{}",
	}); err != nil {
		return nil, fmt.Errorf("saving roadmap: %w", err)
	}
	logger.Info("generated roadmap with %d stages", len(roadmap.Stages))
	return roadmap, nil
}

// ToggleStage flips a stage's completion and returns the new set.
func (s *RoadmapService) ToggleStage(ctx context.Context, stageID string) (map[string]bool, error) {
	roadmap, completed, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if roadmap == nil {
		return nil, fmt.Errorf("%w: no roadmap generated yet", domain.ErrNotFound)
	}

	known := false
	for _, stage := range roadmap.Stages {
		if stage.ID == stageID {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: stage %q", domain.ErrNotFound, stageID)
	}

	if completed[stageID] {
		delete(completed, stageID)
	} else {
		completed[stageID] = true
	}

	blob, err := json.Marshal(completed)
	if err != nil {
		return nil, fmt.Errorf("serialising completion state: %w", err)
	}
	if err := s.store.Set(map[string]string{keyRoadmapCompleted: string(blob)}); err != nil {
		return nil, fmt.Errorf("saving completion state: %w", err)
	}
	return completed, nil
}
