// Package mcptool exposes the extraction engine as Model Context Protocol
// tools over stdio, so agent frontends can normalize bug reports without
// linking the library.
package mcptool

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/crimson-sun/triage/pkg/triage"
)

// Version is reported in the MCP handshake.
const Version = "2.0.0"

// Server wraps an MCP server around a Triage instance.
type Server struct {
	mcp    *mcp.Server
	triage *triage.Triage
}

// NewServer creates an MCP server exposing the normalization tools.
func NewServer(t *triage.Triage) (*Server, error) {
	if t == nil {
		return nil, fmt.Errorf("mcptool: triage instance is required")
	}

	s := &Server{
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "triage",
				Version: Version,
			},
			nil,
		),
		triage: t,
	}
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, metadataNormalizeBugReport, s.normalizeBugReport)
	mcp.AddTool(s.mcp, metadataNormalizeWorkItem, s.normalizeWorkItem)
}

// Run starts the server on the stdio transport and blocks until the context
// is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting MCP server on stdio transport")
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcptool: %w", err)
	}
	return nil
}

// Close releases the underlying extraction resources.
func (s *Server) Close() error {
	return s.triage.Close()
}
