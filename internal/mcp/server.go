package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/oopconcepts/internal/registry"
	"github.com/ziadkadry99/oopconcepts/internal/router"
	"github.com/ziadkadry99/oopconcepts/internal/search"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Searcher runs a content search.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]search.Result, error)
}

// Server wraps an MCP server that exposes the concept catalog as tools.
type Server struct {
	holder *registry.Holder
	router *router.Router
	search Searcher
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server over the registry in h. search may be
// nil, in which case search_content reports that search is unavailable.
func NewServer(h *registry.Holder, search Searcher) *Server {
	s := &Server{
		holder: h,
		router: router.New(h),
		search: search,
	}

	s.mcp = server.NewMCPServer(
		"oopconcepts",
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listConceptsTool, s.handleListConcepts)
	s.mcp.AddTool(listUnitsTool, s.handleListUnits)
	s.mcp.AddTool(getUnitTool, s.handleGetUnit)
	s.mcp.AddTool(searchContentTool, s.handleSearchContent)
	s.mcp.AddTool(resolvePathTool, s.handleResolvePath)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
