package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"steamscan/internal/steam"
	"steamscan/internal/threat"
)

// toolset holds the shared clients behind every MCP tool.
type toolset struct {
	scraper  *steam.Client
	analyzer *threat.Analyzer
}

func registerTools(s *server.MCPServer, scraper *steam.Client) {
	ts := &toolset{
		scraper:  scraper,
		analyzer: threat.NewAnalyzer(scraper, threat.DefaultRules()),
	}

	// find_game
	findTool := mcp.NewTool("find_game",
		mcp.WithDescription("Find a game on the Steam store by title and return its app id"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Game title to search for"),
		),
	)
	s.AddTool(findTool, ts.handleFindGame)

	// top_sellers
	topTool := mcp.NewTool("top_sellers",
		mcp.WithDescription("List games from the Steam top-sellers chart"),
		mcp.WithNumber("page",
			mcp.Description("Listing page number (default: 1)"),
		),
	)
	s.AddTool(topTool, ts.handleTopSellers)

	// analyze_reviews
	analyzeTool := mcp.NewTool("analyze_reviews",
		mcp.WithDescription("Fetch a game's recent reviews and classify them for spam, scam and cheat promotion"),
		mcp.WithString("appid",
			mcp.Description("Steam app id; omit when passing name"),
		),
		mcp.WithString("name",
			mcp.Description("Game title to look up when appid is not known"),
		),
		mcp.WithNumber("max_reviews",
			mcp.Description("Reviews to fetch (default: 20)"),
		),
	)
	s.AddTool(analyzeTool, ts.handleAnalyzeReviews)
}

func (t *toolset) handleFindGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	ref, err := t.scraper.FindGame(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("find error: %v", err)), nil
	}

	data, _ := json.MarshalIndent(ref, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func (t *toolset) handleTopSellers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page := request.GetInt("page", 1)
	if page < 1 {
		page = 1
	}

	items, err := t.scraper.SearchPage(ctx, page)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing error: %v", err)), nil
	}

	data, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func (t *toolset) handleAnalyzeReviews(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	appID := request.GetString("appid", "")
	name := request.GetString("name", "")
	maxReviews := request.GetInt("max_reviews", 20)

	if appID == "" && name == "" {
		return mcp.NewToolResultError("pass appid or name"), nil
	}

	title := name
	if appID == "" {
		ref, err := t.scraper.FindGame(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("find error: %v", err)), nil
		}
		appID, title = ref.AppID, ref.Title
	}

	report, err := t.analyzer.AnalyzeGame(ctx, appID, title, maxReviews)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analyze error: %v", err)), nil
	}

	data, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}
