// Package linearmcp provides a public API wrapper for the Linear MCP
// Server so other Go modules can embed it.
//
// Usage example with a static API key:
//
//	config := linearmcp.StdioServerConfig{
//	    Version:         "1.0.0",
//	    Auth:            linearmcp.AuthConfig{APIKey: os.Getenv("LINEAR_API_KEY")},
//	    EnabledToolsets: []string{"issues", "projects"},
//	}
//
//	if err := linearmcp.RunStdioServer(config); err != nil {
//	    log.Fatal(err)
//	}
//
// Usage example with a dynamic key provider:
//
//	config := linearmcp.StdioServerConfig{
//	    Version:       "1.0.0",
//	    TokenProvider: func() string { return fetchCurrentKey() },
//	    EnabledToolsets: []string{"all"},
//	}
//
//	if err := linearmcp.RunStdioServer(config); err != nil {
//	    log.Fatal(err)
//	}
package linearmcp

import (
	"github.com/linearmcp/linear-mcp-server/internal/linearmcp"
	"github.com/mark3labs/mcp-go/server"
)

// TokenProvider is a function that returns the current Linear API key.
// It allows key rotation without restarting the server and is called on
// each request, so it should be efficient.
type TokenProvider = linearmcp.TokenProvider

// AuthConfig holds the Linear credentials. This is a re-export of the
// internal type.
type AuthConfig = linearmcp.AuthConfig

// StdioServerConfig contains configuration for running the server in
// stdio mode. This is a re-export of the internal type.
type StdioServerConfig = linearmcp.StdioServerConfig

// MCPServerConfig contains configuration for creating a new MCP Server
// instance. This is a re-export of the internal type.
type MCPServerConfig = linearmcp.MCPServerConfig

// RunStdioServer runs the Linear MCP Server using stdio for
// communication. Not concurrent safe.
func RunStdioServer(cfg StdioServerConfig) error {
	return linearmcp.RunStdioServer(cfg)
}

// NewMCPServer creates a new MCP Server instance with the given
// configuration.
func NewMCPServer(cfg MCPServerConfig) (*server.MCPServer, error) {
	return linearmcp.NewMCPServer(cfg)
}
