// Package mcp serves generated component API pages to MCP clients.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/propdoc/pkg/catalog"
	"github.com/gnana997/propdoc/pkg/mcplog"
)

const serverName = "propdoc"

// Server exposes catalog queries as MCP tools.
type Server struct {
	mcpServer *server.MCPServer
	query     *catalog.QueryService
	logger    *mcplog.Logger // nil disables call logging
}

// NewServer creates an MCP server over qs. logger may be nil.
func NewServer(qs *catalog.QueryService, logger *mcplog.Logger, version string) *Server {
	s := &Server{query: qs, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}
	s.mcpServer = server.NewMCPServer(serverName, version, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listComponentsTool(), Handler: s.handleListComponents},
		server.ServerTool{Tool: getComponentAPITool(), Handler: s.handleGetComponentAPI},
		server.ServerTool{Tool: searchPropsTool(), Handler: s.handleSearchProps},
	)
	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
