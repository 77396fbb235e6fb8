package analyzer

import (
	"fmt"

	"github.com/sha1n/wikitree/internal/pathpolicy"
)

// Registry holds an ordered list of analyzers. Each extension is claimed by at most one.
type Registry struct {
	analyzers []CodeAnalyzer
}

// NewRegistry creates a registry over the given analyzers, in selection order.
// Returns an error if two analyzers claim the same extension.
func NewRegistry(analyzers ...CodeAnalyzer) (*Registry, error) {
	owners := make(map[string]string)
	for _, a := range analyzers {
		for _, ext := range a.Extensions() {
			if owner, ok := owners[ext]; ok {
				return nil, fmt.Errorf("extension %q is claimed by both %s and %s", ext, owner, a.Language())
			}
			owners[ext] = a.Language()
		}
	}
	return &Registry{analyzers: analyzers}, nil
}

// NewDefaultRegistry returns the TypeScript and JavaScript analyzers.
func NewDefaultRegistry(opts Options) *Registry {
	r, err := NewRegistry(NewTypeScriptAnalyzer(opts), NewJavaScriptAnalyzer(opts))
	if err != nil {
		panic(err)
	}
	return r
}

// Select returns the first analyzer that supports path, or nil.
func (r *Registry) Select(path string) CodeAnalyzer {
	if r == nil {
		return nil
	}
	for _, a := range r.analyzers {
		if a.Supports(path) {
			return a
		}
	}
	return nil
}

// Analyzers returns the registered analyzers in selection order.
func (r *Registry) Analyzers() []CodeAnalyzer {
	return r.analyzers
}

var languageByExtension = map[string]string{
	"ts":       "typescript",
	"tsx":      "typescript",
	"mts":      "typescript",
	"cts":      "typescript",
	"js":       "javascript",
	"jsx":      "javascript",
	"mjs":      "javascript",
	"cjs":      "javascript",
	"java":     "java",
	"cs":       "csharp",
	"vue":      "vue",
	"html":     "html",
	"htm":      "html",
	"css":      "css",
	"scss":     "scss",
	"less":     "less",
	"json":     "json",
	"md":       "markdown",
	"markdown": "markdown",
	"rst":      "restructuredtext",
	"adoc":     "asciidoc",
	"py":       "python",
	"go":       "go",
	"rs":       "rust",
	"rb":       "ruby",
	"php":      "php",
	"yaml":     "yaml",
	"yml":      "yaml",
	"xml":      "xml",
}

// LanguageOf returns the language tag for a file path, or empty string if unknown.
func LanguageOf(path string) string {
	return languageByExtension[pathpolicy.Extension(path)]
}
