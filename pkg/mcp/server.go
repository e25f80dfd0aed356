// Package mcp exposes the thinking engine over the Model Context
// Protocol: one tool per engine operation plus read-only resources for
// the tree and analysis snapshots. The engine itself is unaware of the
// protocol; this package only serializes its inputs and outputs.
package mcp

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/noctua/pkg/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server adapts an Engine to an MCP stdio server.
type Server struct {
	engine *engine.Engine
	server *mcp.Server
}

// New creates a new MCP Server instance wrapping the engine.
func New(eng *engine.Engine) *Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "noctua",
		Version: "0.1.0",
	}, nil)

	s := &Server{
		engine: eng,
		server: server,
	}

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// Run serves MCP requests over stdio until the context is cancelled or
// the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	if err := s.server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return goerr.Wrap(err, "MCP server failed")
	}
	return nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
