package search

import (
	"context"
	"path"
	"testing"

	"github.com/sha1n/wikitree/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(id, summary string) domain.IndexNode {
	return domain.IndexNode{ID: id, Title: path.Base(id), Path: "/repo/" + id, Type: domain.NodeFile, Summary: summary}
}

func testIndex() *domain.Index {
	return &domain.Index{
		Version: domain.IndexVersion,
		Root:    "/repo",
		Nodes: []domain.IndexNode{
			file("README.md", "Project overview"),
			{ID: "docs", Title: "docs", Path: "/repo/docs", Type: domain.NodeFolder, Children: []domain.IndexNode{
				file("docs/Guide.md", "Installation guide"),
				file("docs/api.md", "API reference"),
			}},
			file("src/app.ts", ""),
		},
	}
}

func newSearcher(t *testing.T) *NodeSearcher {
	t.Helper()
	s, err := NewNodeSearcher(testIndex())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func ids(hits []Hit) []string {
	var out []string
	for _, h := range hits {
		out = append(out, h.Node.ID)
	}
	return out
}

func TestFlatten_PreOrder(t *testing.T) {
	got := Flatten(testIndex().Nodes)

	var gotIDs []string
	for _, n := range got {
		gotIDs = append(gotIDs, n.ID)
	}
	assert.Equal(t, []string{"README.md", "docs", "docs/Guide.md", "docs/api.md", "src/app.ts"}, gotIDs)
}

func TestFindNode(t *testing.T) {
	node, ok := FindNode(testIndex(), "docs/api.md")
	require.True(t, ok)
	assert.Equal(t, "API reference", node.Summary)

	_, ok = FindNode(testIndex(), "nope.md")
	assert.False(t, ok)
}

func TestNodeSearcher_Search(t *testing.T) {
	s := newSearcher(t)
	ctx := context.Background()

	t.Run("summary word", func(t *testing.T) {
		hits, err := s.Search(ctx, "guide", Options{})
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, "docs/Guide.md", hits[0].Node.ID)
		assert.Greater(t, hits[0].Score, 0.0)
	})

	t.Run("typo tolerated", func(t *testing.T) {
		hits, err := s.Search(ctx, "instalation", Options{})
		require.NoError(t, err)
		assert.Contains(t, ids(hits), "docs/Guide.md")
	})

	t.Run("title prefix", func(t *testing.T) {
		hits, err := s.Search(ctx, "READ", Options{})
		require.NoError(t, err)
		assert.Contains(t, ids(hits), "README.md")
	})

	t.Run("folder hit carries no children", func(t *testing.T) {
		hits, err := s.Search(ctx, "docs", Options{})
		require.NoError(t, err)
		require.Contains(t, ids(hits), "docs")
		for _, h := range hits {
			assert.Nil(t, h.Node.Children)
		}
	})

	t.Run("no match", func(t *testing.T) {
		hits, err := s.Search(ctx, "zzzzqqq", Options{})
		require.NoError(t, err)
		assert.Empty(t, hits)
	})
}

func TestNodeSearcher_Glob(t *testing.T) {
	s := newSearcher(t)

	hits, err := s.Search(context.Background(), "", Options{Glob: "docs/*.md"})
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/Guide.md", "docs/api.md"}, ids(hits))

	hits, err = s.Search(context.Background(), "reference", Options{Glob: "src/**"})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestNodeSearcher_MaxResults(t *testing.T) {
	s := newSearcher(t)

	hits, err := s.Search(context.Background(), "", Options{Glob: "**", MaxResults: 2})
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestNodeSearcher_InvalidInput(t *testing.T) {
	s := newSearcher(t)

	_, err := s.Search(context.Background(), "  ", Options{})
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = s.Search(context.Background(), "guide", Options{Glob: "docs/[a"})
	assert.ErrorContains(t, err, "invalid glob")
}
