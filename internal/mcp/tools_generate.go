package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/wikitree/internal/domain"
)

// GenerateArgument defines generate_index parameters.
type GenerateArgument struct{}

// GenerateHandler handles the generate_index MCP tool.
type GenerateHandler struct {
	workspace Workspace
	logger    *slog.Logger
}

// NewGenerateHandler creates a new generate handler.
func NewGenerateHandler(workspace Workspace, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{workspace: workspace, logger: logger}
}

// Handle regenerates the index and reports the scan statistics.
func (h *GenerateHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args GenerateArgument) (*mcp.CallToolResult, any, error) {
	result, err := h.workspace.GenerateIndex(ctx)
	if err != nil {
		h.logger.Error("generate_index failed", "error", err)
		return errorResult(fmt.Sprintf("Index generation failed: %s", err)), nil, nil
	}
	return textResult(FormatScanResult(result)), nil, nil
}

// FormatScanResult renders scan statistics as markdown.
func FormatScanResult(r *domain.ScanResult) string {
	var sb strings.Builder
	sb.WriteString("Index generated.\n\n")
	fmt.Fprintf(&sb, "- Scanned files: %d\n", r.ScannedFiles)
	fmt.Fprintf(&sb, "- Skipped files: %d\n", r.SkippedFiles)
	fmt.Fprintf(&sb, "- Generated nodes: %d\n", r.GeneratedNodes)
	fmt.Fprintf(&sb, "- Duration: %dms\n", r.DurationMs)
	fmt.Fprintf(&sb, "- Index: %s\n", r.IndexPath)
	fmt.Fprintf(&sb, "- Digest: %s\n", r.DigestPath)

	if r.CodeAnalysis.FilesAnalyzed > 0 {
		fmt.Fprintf(&sb, "- Code files analyzed: %d (%d classes, %d functions, %d dependencies)\n",
			r.CodeAnalysis.FilesAnalyzed, r.CodeAnalysis.ClassesFound,
			r.CodeAnalysis.FunctionsFound, r.CodeAnalysis.DependenciesFound)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintf(&sb, "\n%d file(s) could not be processed:\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(&sb, "- %s [%s]: %s\n", e.FilePath, e.Code, e.Message)
		}
	}
	return sb.String()
}

// GetToolDefinition returns the MCP tool definition.
func (h *GenerateHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "generate_index",
		Description: "Scan the workspace and regenerate the documentation and source index (index.json and the index.md digest).",
	}
}

// RegisterGenerateTool registers the generate tool with an MCP server.
func RegisterGenerateTool(server *mcp.Server, handler *GenerateHandler) {
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
