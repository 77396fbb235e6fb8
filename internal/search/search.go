// Package search answers free-text and glob queries over a loaded index.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/sha1n/wikitree/internal/domain"
)

// DefaultMaxResults caps a search when the caller gives no limit.
const DefaultMaxResults = 50

// ErrEmptyQuery is returned when neither a query nor a glob is given.
var ErrEmptyQuery = errors.New("query cannot be empty")

// Options narrows a search.
type Options struct {
	// Glob filters hits by node id, e.g. "docs/**/*.md".
	Glob string

	MaxResults int
}

// Hit is one matching node. Children are not included.
type Hit struct {
	Node  domain.IndexNode `json:"node"`
	Score float64          `json:"score"`
}

type nodeDocument struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Path    string `json:"path"`
	Type    string `json:"type"`
}

// NodeSearcher holds an in-memory bleve index over every node of one index.
// It is safe for concurrent searches.
type NodeSearcher struct {
	index bleve.Index
	nodes map[string]domain.IndexNode
}

// CreateNodeMapping creates the bleve mapping for index nodes.
func CreateNodeMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt(domain.NodeFieldTitle, titleField)

	summaryField := bleve.NewTextFieldMapping()
	summaryField.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt(domain.NodeFieldSummary, summaryField)

	pathField := bleve.NewTextFieldMapping()
	pathField.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt(domain.NodeFieldPath, pathField)

	// Type - keyword, filter only
	typeField := bleve.NewTextFieldMapping()
	typeField.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt(domain.NodeFieldType, typeField)

	// ID - not indexed, it is the document id
	idField := bleve.NewTextFieldMapping()
	idField.Index = false
	docMapping.AddFieldMappingsAt(domain.NodeFieldID, idField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name
	return indexMapping
}

// NewNodeSearcher indexes every node of idx in memory.
func NewNodeSearcher(idx *domain.Index) (*NodeSearcher, error) {
	index, err := bleve.NewMemOnly(CreateNodeMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	s := &NodeSearcher{index: index, nodes: make(map[string]domain.IndexNode)}

	batch := index.NewBatch()
	for _, n := range Flatten(idx.Nodes) {
		n.Children = nil
		s.nodes[n.ID] = n
		doc := nodeDocument{ID: n.ID, Title: n.Title, Summary: n.Summary, Path: n.Path, Type: string(n.Type)}
		if err := batch.Index(n.ID, doc); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to index node %s: %w", n.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to index nodes: %w", err)
	}

	return s, nil
}

// Close releases the in-memory index.
func (s *NodeSearcher) Close() error {
	return s.index.Close()
}

// Search ranks nodes by title, summary and path relevance, tolerating typos and
// partial words. An empty query with a glob lists every node the glob matches.
func (s *NodeSearcher) Search(ctx context.Context, queryStr string, opts Options) ([]Hit, error) {
	queryStr = strings.TrimSpace(queryStr)
	if queryStr == "" && opts.Glob == "" {
		return nil, ErrEmptyQuery
	}
	if opts.Glob != "" && !doublestar.ValidatePattern(opts.Glob) {
		return nil, fmt.Errorf("invalid glob pattern: %s", opts.Glob)
	}

	limit := opts.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	req := bleve.NewSearchRequest(buildQuery(queryStr))
	// the glob is applied after ranking, so fetch every candidate
	req.Size = len(s.nodes)
	req.SortBy([]string{"-_score", "_id"})

	results, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, min(limit, len(results.Hits)))
	for _, h := range results.Hits {
		if opts.Glob != "" {
			if ok, _ := doublestar.Match(opts.Glob, h.ID); !ok {
				continue
			}
		}
		hits = append(hits, Hit{Node: s.nodes[h.ID], Score: h.Score})
		if len(hits) == limit {
			break
		}
	}
	return hits, nil
}

func buildQuery(queryStr string) query.Query {
	if queryStr == "" {
		return bleve.NewMatchAllQuery()
	}

	titleQuery := bleve.NewMatchQuery(queryStr)
	titleQuery.SetField(domain.NodeFieldTitle)
	titleQuery.SetFuzziness(1)
	titleQuery.SetBoost(3.0)

	summaryQuery := bleve.NewMatchQuery(queryStr)
	summaryQuery.SetField(domain.NodeFieldSummary)
	summaryQuery.SetFuzziness(1)

	pathQuery := bleve.NewMatchQuery(queryStr)
	pathQuery.SetField(domain.NodeFieldPath)

	disjuncts := []query.Query{titleQuery, summaryQuery, pathQuery}

	// prefix on the last typed word so partial input still matches titles
	words := strings.Fields(strings.ToLower(queryStr))
	prefixQuery := bleve.NewPrefixQuery(words[len(words)-1])
	prefixQuery.SetField(domain.NodeFieldTitle)
	prefixQuery.SetBoost(2.0)
	disjuncts = append(disjuncts, prefixQuery)

	return bleve.NewDisjunctionQuery(disjuncts...)
}
