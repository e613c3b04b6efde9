// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the capture pipeline for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/journal"
	"github.com/starford/ansuz/internal/refindex"
	"github.com/starford/ansuz/internal/scan"
)

// Server wraps the MCP server with capture tools.
type Server struct {
	mcp  *server.MCPServer
	proc *scan.Processor
	refs *refindex.Index
	jdb  *journal.DB
}

// New creates a new MCP server with all tools registered. jdb may be nil when
// the journal is disabled.
func New(proc *scan.Processor, refs *refindex.Index, jdb *journal.DB) *Server {
	s := &Server{proc: proc, refs: refs, jdb: jdb}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("capture",
		mcp.WithDescription("Merge one clipboard-style snippet into the note store. "+
			"The snippet must have a title line, an empty line, and a body; recurring "+
			"influences are linked and tagged automatically."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Raw snippet text")),
	), s.capture)

	s.mcp.AddTool(mcp.NewTool("recent_captures",
		mcp.WithDescription("List the most recent capture journal entries, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of entries (default 20)")),
	), s.recentCaptures)

	s.mcp.AddTool(mcp.NewTool("list_influences",
		mcp.WithDescription("List the influence reference notes known to the store."),
	), s.listInfluences)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) capture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Each capture is its own one-shot session over a fresh index.
	if err := s.refs.Rebuild(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	session := &scan.Session{}
	outcome, err := s.proc.Process(ctx, session, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if outcome == scan.OutcomeRejected {
		return mcp.NewToolResultError("snippet rejected: expected a title line, an empty line, and a body"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s", outcome, session.ActiveID)), nil
}

func (s *Server) recentCaptures(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.jdb == nil {
		return mcp.NewToolResultError("journal is disabled"), nil
	}
	limit := req.GetInt("limit", 20)
	events, err := s.jdb.Recent(limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(events, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listInfluences(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.refs.Rebuild(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	influences := s.refs.Influences()
	if len(influences) == 0 {
		return mcp.NewToolResultText("no influences found"), nil
	}
	titles := make([]string, 0, len(influences))
	for title := range influences {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return mcp.NewToolResultText(strings.Join(titles, "\n")), nil
}
