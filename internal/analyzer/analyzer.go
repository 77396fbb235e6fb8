// Package analyzer extracts structural metadata and dependencies from source files.
//
// Each analyzer claims a fixed set of file extensions. Parsing is done with
// tree-sitter grammars; a file that does not parse cleanly yields no structure
// and no dependencies instead of an error.
package analyzer

import (
	"context"
	"slices"

	"github.com/sha1n/wikitree/internal/domain"
	"github.com/sha1n/wikitree/internal/pathpolicy"
)

// Placeholder names used when a declaration cannot be resolved syntactically.
const (
	AnonymousName = "Anonymous"
	UnknownName   = "Unknown"
	DefaultName   = "default"

	// DefaultValuePlaceholder stands in for any initializer expression.
	DefaultValuePlaceholder = "..."
)

// CodeAnalyzer extracts code structure and dependencies from one language family.
type CodeAnalyzer interface {
	// Language returns the language tag recorded on analyzed nodes.
	Language() string

	// Extensions returns the lowercase file extensions this analyzer claims.
	Extensions() []string

	// Supports reports whether the analyzer claims the file at path.
	Supports(path string) bool

	// Analyze returns the code structure of content, or false if it does not parse.
	Analyze(ctx context.Context, path string, content []byte) (*domain.CodeStructure, bool)

	// ExtractDependencies returns import sites in source order; empty if content does not parse.
	ExtractDependencies(ctx context.Context, path string, content []byte) []domain.DependencyInfo
}

// Options tunes what analyzers collect.
type Options struct {
	// IncludeComments makes Analyze also record every comment in the file.
	IncludeComments bool
}

// extensionSet implements the extension-based half of CodeAnalyzer.
type extensionSet []string

func (e extensionSet) Extensions() []string {
	return slices.Clone(e)
}

func (e extensionSet) Supports(path string) bool {
	ext := pathpolicy.Extension(path)
	return ext != "" && slices.Contains(e, ext)
}
