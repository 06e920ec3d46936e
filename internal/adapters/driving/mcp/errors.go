// Package mcp provides an MCP (Model Context Protocol) server adapter for
// PostChat. It lets AI assistants search, read and discuss the user's
// captured posts.
package mcp

import "errors"

var (
	// ErrMissingPostService is returned when the post service is not provided.
	ErrMissingPostService = errors.New("mcp: post service is required")

	// ErrMissingChatService is returned when the chat service is not provided.
	ErrMissingChatService = errors.New("mcp: chat service is required")
)
