package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server exposes the post library to MCP clients over stdio or HTTP.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer wires the tool and resource handlers onto a fresh MCP
// server. The roadmap tool is only advertised when a roadmap service
// was provided, so clients never see a tool that cannot run.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "postchat",
			Version: Version,
		}, nil),
	}

	mcp.AddTool(s.server, searchTool, s.handleSearch)
	mcp.AddTool(s.server, captureTool, s.handleCapture)
	mcp.AddTool(s.server, chatTool, s.handleChat)
	if ports.Roadmap != nil {
		mcp.AddTool(s.server, roadmapTool, s.handleRoadmap)
	}
	s.registerResources()

	return s, nil
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until the context is
// cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr: addr,
		Handler: mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
			return s.server
		}, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
