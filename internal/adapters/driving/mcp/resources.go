package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for PostChat resources.
	uriScheme = "postchat://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing the saved post library.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "posts",
		Name:        "posts",
		Description: "The user's saved social media posts",
		MIMEType:    "application/json",
	}, s.handlePostsResource)

	// Template for a single post's full text.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "posts/{postId}",
		Name:        "post-content",
		Description: "Full content of a single saved post",
		MIMEType:    "text/plain",
	}, s.handlePostContentResource)
}

// handlePostsResource returns the saved post library.
func (s *Server) handlePostsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	posts, err := s.ports.Posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	// Build a compact post list.
	type postInfo struct {
		ID      string `json:"id"`
		Author  string `json:"author"`
		URL     string `json:"url"`
		Summary string `json:"summary,omitempty"`
		Text    string `json:"text"`
	}

	infos := make([]postInfo, len(posts))
	for i, p := range posts {
		infos[i] = postInfo{
			ID:      p.ID,
			Author:  p.AuthorName,
			URL:     p.URL,
			Summary: p.Summary,
			Text:    p.Text,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling posts: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePostContentResource returns one post's text by library id.
func (s *Server) handlePostContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	postID := strings.TrimPrefix(req.Params.URI, uriScheme+"posts/")
	if postID == "" || strings.Contains(postID, "/") {
		return nil, fmt.Errorf("invalid post uri %q: %w", req.Params.URI, domain.ErrInvalidInput)
	}

	posts, err := s.ports.Posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	for _, p := range posts {
		if p.ID != postID {
			continue
		}
		text := p.Text
		if p.OCRText != "" {
			text += "\n\n[image text]\n" + p.OCRText
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     text,
			}},
		}, nil
	}

	return nil, fmt.Errorf("post %s: %w", postID, domain.ErrNotFound)
}
