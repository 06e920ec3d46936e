package mcp

import (
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the MCP server exposes.
type Ports struct {
	// Posts manages the saved post library and search.
	Posts driving.PostService

	// Chat runs the grounded assistant conversation.
	Chat driving.ChatService

	// Roadmap manages the learning roadmap. Optional.
	Roadmap driving.RoadmapService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Posts == nil {
		return ErrMissingPostService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	// Roadmap is optional.
	return nil
}
