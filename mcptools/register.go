// Package mcptools exposes TickTick operations as MCP tools over the
// streamable HTTP transport.
package mcptools

import (
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/jrsteele09/go-ticktick-mcp/ticktick"
)

// NewServer builds the MCP server with the full TickTick tool set.
func NewServer(client *ticktick.Client) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		"TickTick MCP Server",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	registerProjectTools(mcpServer, client)
	registerTaskCrudTools(mcpServer, client)
	registerTaskQueryTools(mcpServer, client)
	registerGTDTools(mcpServer, client)

	return mcpServer
}

// NewHTTPHandler wraps the MCP server in the streamable HTTP transport
// so it can be mounted on the broker's mux.
func NewHTTPHandler(mcpServer *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(mcpServer)
}
