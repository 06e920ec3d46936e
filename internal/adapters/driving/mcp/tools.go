package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_posts tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"the search query to find saved posts"`
	Semantic bool   `json:"semantic,omitempty" jsonschema:"use semantic vector search instead of keyword matching"`
}

// SearchOutput is the output schema for the search_posts tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search hit.
type SearchResultOutput struct {
	PostID  string  `json:"post_id"`
	Author  string  `json:"author,omitempty"`
	URL     string  `json:"url,omitempty"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

// CaptureInput is the input schema for the capture_post tool.
type CaptureInput struct {
	URL string `json:"url" jsonschema:"the social media post URL to capture"`
}

// CaptureOutput is the output schema for the capture_post tool.
type CaptureOutput struct {
	ID     string `json:"id"`
	Author string `json:"author,omitempty"`
	Text   string `json:"text"`
}

// ChatInput is the input schema for the chat tool.
type ChatInput struct {
	Message string `json:"message" jsonschema:"the question to ask about the saved posts"`
}

// ChatOutput is the output schema for the chat tool.
type ChatOutput struct {
	Reply   string               `json:"reply"`
	Sources []SearchResultOutput `json:"sources,omitempty"`
}

// RoadmapInput is the input schema for the generate_roadmap tool.
type RoadmapInput struct {
	Goal string `json:"goal" jsonschema:"the learning goal to build a roadmap for"`
}

// RoadmapOutput is the output schema for the generate_roadmap tool.
type RoadmapOutput struct {
	Goal   string   `json:"goal"`
	Stages []string `json:"stages"`
}

// Tool descriptors, registered in NewServer.
var (
	searchTool = &mcp.Tool{
		Name:        "search_posts",
		Description: "Search the user's saved social media posts",
	}
	captureTool = &mcp.Tool{
		Name:        "capture_post",
		Description: "Capture a social media post by URL into the library",
	}
	chatTool = &mcp.Tool{
		Name:        "chat",
		Description: "Ask the assistant a question grounded in the saved posts",
	}
	roadmapTool = &mcp.Tool{
		Name:        "generate_roadmap",
		Description: "Generate a learning roadmap from the saved posts",
	}
)

// handleSearch handles the search_posts tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	mode := domain.SearchKeyword
	if input.Semantic {
		mode = domain.SearchSemantic
	}

	results, err := s.ports.Posts.Search(ctx, input.Query, mode)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			PostID:  results[i].PostID,
			Author:  results[i].Author,
			URL:     results[i].URL,
			Score:   results[i].Score,
			Content: results[i].Content,
		}
	}

	return nil, output, nil
}

// handleCapture handles the capture_post tool invocation.
func (s *Server) handleCapture(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CaptureInput,
) (*mcp.CallToolResult, CaptureOutput, error) {
	post, err := s.ports.Posts.Capture(ctx, input.URL)
	if err != nil {
		return nil, CaptureOutput{}, err
	}

	return nil, CaptureOutput{
		ID:     post.ID,
		Author: post.AuthorName,
		Text:   post.Text,
	}, nil
}

// handleChat handles the chat tool invocation.
func (s *Server) handleChat(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChatInput,
) (*mcp.CallToolResult, ChatOutput, error) {
	transcript, err := s.ports.Chat.Send(ctx, input.Message)
	if err != nil {
		return nil, ChatOutput{}, err
	}

	// The reply is the last assistant entry.
	output := ChatOutput{}
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role != domain.RoleAssistant {
			continue
		}
		output.Reply = transcript[i].Text
		for _, src := range transcript[i].Sources {
			output.Sources = append(output.Sources, SearchResultOutput{
				PostID:  src.PostID,
				Author:  src.Author,
				Score:   src.Score,
				Content: src.Content,
			})
		}
		break
	}

	return nil, output, nil
}

// handleRoadmap handles the generate_roadmap tool invocation.
func (s *Server) handleRoadmap(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RoadmapInput,
) (*mcp.CallToolResult, RoadmapOutput, error) {
	roadmap, err := s.ports.Roadmap.Generate(ctx, input.Goal)
	if err != nil {
		return nil, RoadmapOutput{}, err
	}

	output := RoadmapOutput{Goal: roadmap.Goal}
	for _, stage := range roadmap.Stages {
		output.Stages = append(output.Stages, stage.Title)
	}
	return nil, output, nil
}
