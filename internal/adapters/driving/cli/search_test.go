package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Short(t *testing.T) {
	assert.Equal(t, "Search your saved posts", searchCmd.Short)
}

func TestSearchCmd_Long(t *testing.T) {
	assert.Contains(t, searchCmd.Long, "Keyword mode")
	assert.Contains(t, searchCmd.Long, "Semantic mode")
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasSemanticFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("semantic")
	require.NotNil(t, flag, "semantic flag should exist")
	assert.Equal(t, "s", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestSearchCmd_ExecutesWithQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "garden"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Results:")
	assert.Contains(t, buf.String(), "Maria Santos")
}

func TestSearchCmd_SemanticFlagSwitchesMode(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	var gotMode domain.SearchMode
	postService = &mockPostService{
		SearchFunc: func(_ context.Context, _ string, mode domain.SearchMode) ([]domain.SearchResult, error) {
			gotMode = mode
			return nil, nil
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--semantic", "garden"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchSemantic = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, domain.SearchSemantic, gotMode)
	assert.Contains(t, buf.String(), "No results found")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--json", "garden"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"post_id\"")
	assert.Contains(t, buf.String(), "\"score\"")
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	oldService := postService
	postService = nil
	defer func() {
		postService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "garden"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "post service not configured")
}

func TestSearchCmd_AuthRequired(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	postService = &mockPostService{
		SearchFunc: func(context.Context, string, domain.SearchMode) ([]domain.SearchResult, error) {
			return nil, domain.ErrAuthRequired
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "garden"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sign in first")
}

func TestSearchCmd_BackendUnreachable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	postService = &mockPostService{
		SearchFunc: func(context.Context, string, domain.SearchMode) ([]domain.SearchResult, error) {
			return nil, domain.ErrSearchUnavailable
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "--semantic", "garden"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchSemantic = false
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search backend is unreachable")
}

func TestSearchCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	postService = &mockPostService{
		SearchFunc: func(context.Context, string, domain.SearchMode) ([]domain.SearchResult, error) {
			return nil, errors.New("boom")
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "garden"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestSearchCmd_FallsBackToPostID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	postService = &mockPostService{
		SearchFunc: func(context.Context, string, domain.SearchMode) ([]domain.SearchResult, error) {
			return []domain.SearchResult{{Content: "chunk", PostID: "fb-9", Score: 0.5}}, nil
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "garden"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "fb-9")
}
