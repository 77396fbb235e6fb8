package analyzer

import (
	"github.com/sha1n/wikitree/internal/pathpolicy"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// TypeScriptAnalyzer handles .ts and .tsx files, including interfaces and type aliases.
type TypeScriptAnalyzer struct {
	extensionSet
	walker
}

// NewTypeScriptAnalyzer creates a TypeScript analyzer.
func NewTypeScriptAnalyzer(opts Options) *TypeScriptAnalyzer {
	ts := typescript.GetLanguage()
	jsx := tsx.GetLanguage()
	return &TypeScriptAnalyzer{
		extensionSet: extensionSet{"ts", "tsx"},
		walker: walker{
			dialect: dialect{
				typeDeclarations:  true,
				defaultExportName: UnknownName,
			},
			opts: opts,
			grammars: func(path string) []*sitter.Language {
				if pathpolicy.Extension(path) == "tsx" {
					return []*sitter.Language{jsx}
				}
				return []*sitter.Language{ts}
			},
		},
	}
}

// Language implements CodeAnalyzer.
func (a *TypeScriptAnalyzer) Language() string {
	return "typescript"
}
