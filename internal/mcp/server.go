// ABOUTME: MCP server setup for the gainsbook training log.
// ABOUTME: Wraps the MCP server with repository access, logging and per-tool metrics.
package mcp

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/gainsbook/internal/models"
	"github.com/harperreed/gainsbook/internal/storage"
	"github.com/harperreed/gainsbook/internal/viewmodel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	deps      viewmodel.Deps
	logger    *log.Logger
}

// NewServer creates a new MCP server over deps.Repo.
func NewServer(deps viewmodel.Deps) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "gainsbook",
			Version: Version,
		},
		nil,
	)

	if deps.Clock == nil {
		deps.Clock = viewmodel.SystemClock{}
	}
	if deps.Locks == nil {
		deps.Locks = viewmodel.NewKeyedMutex()
	}

	s := &Server{
		mcpServer: mcpServer,
		repo:      deps.Repo,
		deps:      deps,
		logger:    deps.Logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("mcp server starting", "transport", "stdio")
	}
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) today() models.WorkoutDate {
	return models.DateOf(s.deps.Clock.Now())
}

// instrument logs and counts every call of a tool handler.
func instrument[In, Out any](s *Server, name string, h mcp.ToolHandlerFor[In, Out]) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		start := time.Now()
		res, out, err := h(ctx, req, in)
		if s.deps.Metrics != nil {
			s.deps.Metrics.ObserveOperation("mcp", name, time.Since(start).Seconds(), err)
		}
		if s.logger != nil {
			if err != nil {
				s.logger.Warn("tool failed", "tool", name, "err", err)
			} else {
				s.logger.Debug("tool done", "tool", name, "took", time.Since(start))
			}
		}
		return res, out, err
	}
}
