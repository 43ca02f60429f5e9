package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewMulegateMCPServer creates a new MCP server with all mulegate tools and
// resources registered. The projectPath is the root directory of the project
// to review and gate.
func NewMulegateMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"mulegate",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
