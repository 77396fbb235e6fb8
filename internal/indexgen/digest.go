package indexgen

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sha1n/wikitree/internal/domain"
)

// CalculateMetrics counts folders and files over a node tree.
// A folder without children counts as a file.
func CalculateMetrics(nodes []domain.IndexNode) domain.WorkspaceMetrics {
	var m domain.WorkspaceMetrics
	var walk func([]domain.IndexNode)
	walk = func(nodes []domain.IndexNode) {
		for _, n := range nodes {
			if n.IsFolder() && len(n.Children) > 0 {
				m.FolderCount++
				walk(n.Children)
			} else {
				m.FileCount++
			}
		}
	}
	walk(nodes)
	return m
}

// RenderDigest renders the markdown digest of an index.
// Sections are title, introduction, statistics and directory outline, in that order.
func RenderDigest(index *domain.Index, introduction string) string {
	metrics := CalculateMetrics(index.Nodes)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s Wiki Index\n\n", filepath.Base(index.Root))

	b.WriteString("## Introduction\n\n")
	b.WriteString(strings.TrimSpace(introduction))
	b.WriteString("\n\n")

	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- Root: `%s`\n", index.Root)
	fmt.Fprintf(&b, "- Folders: %d\n", metrics.FolderCount)
	fmt.Fprintf(&b, "- Files: %d\n", metrics.FileCount)
	fmt.Fprintf(&b, "- Generated: %s\n\n", index.GeneratedAt.UTC().Format(time.RFC3339))

	b.WriteString("## Directory Outline\n\n")
	writeOutline(&b, index.Nodes, 0)

	return b.String()
}

func writeOutline(b *strings.Builder, nodes []domain.IndexNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		b.WriteString(indent)
		b.WriteString("- ")
		b.WriteString(n.Title)
		if n.Summary != "" {
			b.WriteString(" — ")
			b.WriteString(strings.Join(strings.Fields(n.Summary), " "))
		}
		b.WriteString("\n")
		if n.IsFolder() {
			writeOutline(b, n.Children, depth+1)
		}
	}
}
