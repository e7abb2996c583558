package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpserver "steamscan/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	scraper := newScraper(logger)

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting SteamScan MCP server on stdio...")

	return mcpserver.Serve(scraper)
}
