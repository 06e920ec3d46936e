// Package tui implements the terminal dashboard.
package tui

import (
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the dashboard depends on.
type Ports struct {
	Session driving.SessionService
	Posts   driving.PostService
	Chat    driving.ChatService
	Prefs   driving.PreferencesService
	Roadmap driving.RoadmapService
}

// NewPorts creates a Ports aggregate.
func NewPorts(
	session driving.SessionService,
	posts driving.PostService,
	chat driving.ChatService,
	prefs driving.PreferencesService,
	roadmap driving.RoadmapService,
) *Ports {
	return &Ports{
		Session: session,
		Posts:   posts,
		Chat:    chat,
		Prefs:   prefs,
		Roadmap: roadmap,
	}
}

// Validate checks that all required ports are provided.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSession
	}
	if p.Posts == nil {
		return ErrMissingPosts
	}
	if p.Chat == nil {
		return ErrMissingChat
	}
	if p.Prefs == nil {
		return ErrMissingPrefs
	}
	if p.Roadmap == nil {
		return ErrMissingRoadmap
	}
	return nil
}
