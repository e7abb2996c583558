package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"steamscan/internal/steam"
)

// Serve starts the MCP stdio server with all tools registered. The passed
// scraper carries the throttled HTTP client, so MCP calls obey the same
// politeness policy as the CLI.
func Serve(scraper *steam.Client) error {
	s := server.NewMCPServer(
		"steamscan",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, scraper)

	return server.ServeStdio(s)
}
