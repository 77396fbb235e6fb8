// Package mcp exposes the index over the Model Context Protocol.
package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/wikitree/internal/domain"
)

// Workspace is the indexed directory the tools operate on.
type Workspace interface {
	// GenerateIndex runs a full indexing pass and persists the result.
	GenerateIndex(ctx context.Context) (*domain.ScanResult, error)

	// LoadIndex reads the persisted index.
	LoadIndex() (*domain.Index, error)

	// MaxResults is the default search result cap.
	MaxResults() int
}

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name      string
	Version   string
	Workspace Workspace
	Logger    *slog.Logger
}

// CreateServer creates the MCP server and registers the index tools when a workspace is given.
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &mcp.ServerOptions{
		Instructions: "Tools over a generated documentation and source index. Run generate_index once, then use search_index to find files and get_node to read a node's summary, code structure and dependencies.",
	})

	if cfg.Workspace == nil {
		return s
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	RegisterGenerateTool(s, NewGenerateHandler(cfg.Workspace, logger))
	RegisterSearchTool(s, NewSearchHandler(cfg.Workspace))
	RegisterNodeTool(s, NewNodeHandler(cfg.Workspace))

	return s
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
