package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/wikitree/internal/domain"
	"github.com/sha1n/wikitree/internal/search"
)

// NodeArgument defines get_node parameters.
type NodeArgument struct {
	ID string `json:"id" jsonschema:"Node id, the path relative to the workspace root (e.g. docs/guide.md)"`
}

type nodeView struct {
	domain.IndexNode
	ChildIDs []string `json:"childIds,omitempty"`
}

// NodeHandler handles the get_node MCP tool.
type NodeHandler struct {
	workspace Workspace
}

// NewNodeHandler creates a new node handler.
func NewNodeHandler(workspace Workspace) *NodeHandler {
	return &NodeHandler{workspace: workspace}
}

// Handle returns one node as JSON. Folder children are listed by id only.
func (h *NodeHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args NodeArgument) (*mcp.CallToolResult, any, error) {
	id := strings.Trim(path.Clean(strings.TrimSpace(args.ID)), "/")
	if id == "" || id == "." {
		return errorResult("ID cannot be empty"), nil, nil
	}

	index, err := h.workspace.LoadIndex()
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load index: %s", err)), nil, nil
	}

	node, ok := search.FindNode(index, id)
	if !ok {
		return errorResult(fmt.Sprintf("Node not found: %s", id)), nil, nil
	}

	var children []string
	for _, c := range node.Children {
		children = append(children, c.ID)
	}
	node.Children = nil

	data, err := json.MarshalIndent(nodeView{IndexNode: node, ChildIDs: children}, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to encode node: %s", err)), nil, nil
	}

	return textResult(string(data)), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *NodeHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_node",
		Description: "Get one index node by id: summary, language, code structure and dependencies. Folders list their child ids.",
	}
}

// RegisterNodeTool registers the node tool with an MCP server.
func RegisterNodeTool(server *mcp.Server, handler *NodeHandler) {
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
