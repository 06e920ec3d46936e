package main

import (
	"fmt"
	"os"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driven/assistant"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driven/extractor"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driven/localstore/file"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driven/localstore/sqlite"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driven/supabase"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/cli"
	"github.com/postchat-labs/postchat-cli/internal/core/services"
)

// Build-time values, overridable via -ldflags and POSTCHAT_* env vars.
var (
	version      = "dev"
	supabaseURL  = "https://postchat.supabase.co"
	supabaseAnon = "sb_publishable_postchat"
	backendURL   = "http://localhost:3210"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	baseURL := envOr("POSTCHAT_SUPABASE_URL", supabaseURL)
	anonKey := envOr("POSTCHAT_SUPABASE_ANON_KEY", supabaseAnon)
	backend := envOr("POSTCHAT_BACKEND_URL", backendURL)

	// Settings live in a TOML file, dashboard state in SQLite. The two
	// stores are independent partitions; a key written in one never
	// shows up in the other.
	settings, err := file.NewKVStore("", "settings")
	if err != nil {
		return fmt.Errorf("opening settings store: %w", err)
	}
	defer settings.Close()

	state, err := sqlite.NewKVStore("", "dashboard")
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	defer state.Close()

	authClient, err := supabase.NewAuthClient(supabase.Config{
		BaseURL: baseURL,
		AnonKey: anonKey,
	})
	if err != nil {
		return err
	}

	sessionService := services.NewSessionService(authClient, state)

	restClient, err := supabase.NewRESTClient(supabase.Config{
		BaseURL: baseURL,
		AnonKey: anonKey,
	}, sessionService)
	if err != nil {
		return err
	}

	extractorClient, err := extractor.NewClient(extractor.ClientConfig{BaseURL: backend})
	if err != nil {
		return err
	}

	assistantClient, err := assistant.NewClient(assistant.ClientConfig{BaseURL: backend})
	if err != nil {
		return err
	}

	prefsService := services.NewPreferencesService(settings)
	postService := services.NewPostService(
		extractorClient, restClient, restClient, assistantClient, prefsService, sessionService)
	chatService := services.NewChatService(assistantClient, state)
	roadmapService := services.NewRoadmapService(assistantClient, state)

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Session: sessionService,
		Posts:   postService,
		Chat:    chatService,
		Prefs:   prefsService,
		Roadmap: roadmapService,
	})

	return cli.Execute()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
