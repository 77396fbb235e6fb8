package indexgen

import (
	"testing"

	"github.com/sha1n/wikitree/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCalculateMetrics(t *testing.T) {
	nodes := []domain.IndexNode{
		{Title: "README.md", Type: domain.NodeFile},
		{Title: "docs", Type: domain.NodeFolder, Children: []domain.IndexNode{
			{Title: "a.md", Type: domain.NodeFile},
			{Title: "api", Type: domain.NodeFolder, Children: []domain.IndexNode{
				{Title: "b.md", Type: domain.NodeFile},
			}},
		}},
	}

	assert.Equal(t, domain.WorkspaceMetrics{FolderCount: 2, FileCount: 3}, CalculateMetrics(nodes))
	assert.Equal(t, domain.WorkspaceMetrics{}, CalculateMetrics(nil))
}

func TestRenderDigest(t *testing.T) {
	index := &domain.Index{
		Version:     domain.IndexVersion,
		GeneratedAt: fixedTime,
		Root:        "/work/project",
		Nodes: []domain.IndexNode{
			{Title: "README.md", Type: domain.NodeFile, Summary: "Project"},
			{Title: "docs", Type: domain.NodeFolder, Children: []domain.IndexNode{
				{Title: "notes.txt", Type: domain.NodeFile, Summary: "line one\nline two"},
				{Title: "app.ts", Type: domain.NodeFile},
			}},
		},
	}

	want := "# project Wiki Index\n\n" +
		"## Introduction\n\n" +
		"Project intro.\n\n" +
		"## Statistics\n\n" +
		"- Root: `/work/project`\n" +
		"- Folders: 1\n" +
		"- Files: 3\n" +
		"- Generated: 2026-03-14T09:26:53Z\n\n" +
		"## Directory Outline\n\n" +
		"- README.md — Project\n" +
		"- docs\n" +
		"  - notes.txt — line one line two\n" +
		"  - app.ts\n"

	assert.Equal(t, want, RenderDigest(index, "Project intro.\n"))
}
