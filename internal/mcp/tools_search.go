package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/wikitree/internal/domain"
	"github.com/sha1n/wikitree/internal/search"
)

// SearchArgument defines search parameters.
type SearchArgument struct {
	Query      string `json:"query" jsonschema:"Free text matched against node titles, summaries and paths. Typos and partial words are tolerated"`
	Glob       string `json:"glob,omitempty" jsonschema:"Optional glob over node ids (e.g. docs/**/*.md)"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of results to return"`
}

// SearchHandler handles the search_index MCP tool.
// The in-memory search index is rebuilt only when the persisted index changes.
type SearchHandler struct {
	workspace Workspace

	mu      sync.Mutex
	current *cachedSearcher
}

// cachedSearcher is a searcher shared by concurrent requests. It is closed
// once it has been replaced and the last request using it has released it.
type cachedSearcher struct {
	*search.NodeSearcher
	generatedAt time.Time
	refs        int
	retired     bool
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(workspace Workspace) *SearchHandler {
	return &SearchHandler{workspace: workspace}
}

// Handle executes the search and returns formatted results.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Query) == "" && args.Glob == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	searcher, err := h.acquire()
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load index: %s", err)), nil, nil
	}
	defer h.release(searcher)

	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = h.workspace.MaxResults()
	}

	hits, err := searcher.Search(ctx, args.Query, search.Options{Glob: args.Glob, MaxResults: maxResults})
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			return errorResult("Query cannot be empty"), nil, nil
		}
		return errorResult(fmt.Sprintf("Search failed: %s", err)), nil, nil
	}

	return textResult(FormatHits(hits, args.Query)), nil, nil
}

// acquire returns the searcher for the persisted index, building a new one
// when the index was regenerated. Every successful call must be paired with release.
func (h *SearchHandler) acquire() (*cachedSearcher, error) {
	index, err := h.workspace.LoadIndex()
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil || !h.current.generatedAt.Equal(index.GeneratedAt) {
		searcher, err := search.NewNodeSearcher(index)
		if err != nil {
			return nil, err
		}
		if h.current != nil {
			_ = h.retire(h.current)
		}
		h.current = &cachedSearcher{NodeSearcher: searcher, generatedAt: index.GeneratedAt}
	}
	h.current.refs++
	return h.current, nil
}

func (h *SearchHandler) release(c *cachedSearcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.refs--
	if c.retired && c.refs == 0 {
		_ = c.Close()
	}
}

// retire must be called with mu held.
func (h *SearchHandler) retire(c *cachedSearcher) error {
	c.retired = true
	if c.refs == 0 {
		return c.Close()
	}
	return nil
}

// Close releases the cached search index. A search still in flight keeps
// its searcher open until it completes.
func (h *SearchHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return nil
	}
	err := h.retire(h.current)
	h.current = nil
	return err
}

// FormatHits formats search hits as markdown.
func FormatHits(hits []search.Hit, queryStr string) string {
	if len(hits) == 0 {
		return fmt.Sprintf("No results found for query: %s", queryStr)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d results for '%s':\n\n", len(hits), queryStr)
	for i, hit := range hits {
		kind := "file"
		if hit.Node.Type == domain.NodeFolder {
			kind = "folder"
		}
		fmt.Fprintf(&sb, "%d. `%s` (%s", i+1, hit.Node.ID, kind)
		if hit.Node.Language != "" {
			fmt.Fprintf(&sb, ", %s", hit.Node.Language)
		}
		sb.WriteString(")")
		if hit.Node.Summary != "" {
			fmt.Fprintf(&sb, " — %s", strings.Join(strings.Fields(hit.Node.Summary), " "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// GetToolDefinition returns the MCP tool definition.
func (h *SearchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_index",
		Description: "Search the generated index by title, summary and path, optionally filtered by a glob over node ids.",
	}
}

// RegisterSearchTool registers the search tool with an MCP server.
func RegisterSearchTool(server *mcp.Server, handler *SearchHandler) {
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
