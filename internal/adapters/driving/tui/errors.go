package tui

import "errors"

var (
	// ErrMissingSession indicates the session service was not provided.
	ErrMissingSession = errors.New("session service is required")

	// ErrMissingPosts indicates the post service was not provided.
	ErrMissingPosts = errors.New("post service is required")

	// ErrMissingChat indicates the chat service was not provided.
	ErrMissingChat = errors.New("chat service is required")

	// ErrMissingPrefs indicates the preferences service was not provided.
	ErrMissingPrefs = errors.New("preferences service is required")

	// ErrMissingRoadmap indicates the roadmap service was not provided.
	ErrMissingRoadmap = errors.New("roadmap service is required")
)
