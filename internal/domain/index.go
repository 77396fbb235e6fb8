package domain

import "time"

// IndexVersion is the schema version stamped on every generated index.
const IndexVersion = "0.1.0"

// NodeType distinguishes folder nodes from file nodes.
type NodeType string

const (
	NodeFolder NodeType = "folder"
	NodeFile   NodeType = "file"
)

// IndexNode is one entry of the index tree.
// A folder node always has at least one child; a file node never has children.
type IndexNode struct {
	// ID is the path relative to the scan root, using forward slashes.
	// Example: "docs/guide/intro.md"
	ID string `json:"id"`

	// Title is the base name of the file or folder.
	Title string `json:"title"`

	// Path is the absolute path on disk.
	Path string `json:"path"`

	Type NodeType `json:"type"`

	// Summary is the first line of prose extracted from the file, at most 160 characters.
	Summary string `json:"summary,omitempty"`

	Children []IndexNode `json:"children,omitempty"`

	CodeStructure *CodeStructure   `json:"codeStructure,omitempty"`
	Dependencies  []DependencyInfo `json:"dependencies,omitempty"`
	Language      string           `json:"language,omitempty"`
}

// IsFolder reports whether the node is a folder.
func (n IndexNode) IsFolder() bool {
	return n.Type == NodeFolder
}

// Index is the persisted artifact. Each generation run produces a fresh value.
type Index struct {
	Version     string      `json:"version"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Root        string      `json:"root"`
	Nodes       []IndexNode `json:"nodes"`
}

// ScanConfig is the fully resolved configuration for one indexing run.
type ScanConfig struct {
	FileTypes           []string `json:"fileTypes"`
	ExcludeFolders      []string `json:"excludeFolders"`
	IncludeCodeComments bool     `json:"includeCodeComments"`
	MaxDepth            int      `json:"maxDepth"`
	MaxFileSizeKB       int      `json:"maxFileSizeKB"`
	OutputDir           string   `json:"outputDir"`
}

// GenerationError describes a recoverable failure for a single entry.
type GenerationError struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	FilePath    string `json:"filePath,omitempty"`
	Recoverable bool   `json:"recoverable"`
}

// Per-entry error codes reported in ScanResult.Errors.
const (
	ErrCodeStatFailed         = "stat_failed"
	ErrCodeReadFailed         = "read_failed"
	ErrCodeFrontMatterInvalid = "front_matter_invalid"
)

// CodeAnalysisStats aggregates what the code analyzers found during a run.
type CodeAnalysisStats struct {
	FilesAnalyzed     int `json:"filesAnalyzed"`
	ClassesFound      int `json:"classesFound"`
	FunctionsFound    int `json:"functionsFound"`
	DependenciesFound int `json:"dependenciesFound"`
}

// ScanResult summarizes a completed indexing run.
type ScanResult struct {
	ScannedFiles   int               `json:"scannedFiles"`
	SkippedFiles   int               `json:"skippedFiles"`
	GeneratedNodes int               `json:"generatedNodes"`
	DurationMs     int64             `json:"durationMs"`
	IndexPath      string            `json:"indexPath"`
	DigestPath     string            `json:"digestPath"`
	Errors         []GenerationError `json:"errors"`
	CodeAnalysis   CodeAnalysisStats `json:"codeAnalysis"`
}

// WorkspaceMetrics holds aggregate counts over an index tree.
type WorkspaceMetrics struct {
	FolderCount int `json:"folderCount"`
	FileCount   int `json:"fileCount"`
}
