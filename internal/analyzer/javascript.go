package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// JavaScriptAnalyzer handles JavaScript files including JSX and CommonJS require calls.
// Files carrying type annotations are retried with the TSX grammar; TypeScript-only
// declarations found that way are still not reported.
type JavaScriptAnalyzer struct {
	extensionSet
	walker
}

// NewJavaScriptAnalyzer creates a JavaScript analyzer.
func NewJavaScriptAnalyzer(opts Options) *JavaScriptAnalyzer {
	grammars := []*sitter.Language{javascript.GetLanguage(), tsx.GetLanguage()}
	return &JavaScriptAnalyzer{
		extensionSet: extensionSet{"js", "jsx", "mjs", "cjs"},
		walker: walker{
			dialect: dialect{
				requireCalls:      true,
				defaultExportName: DefaultName,
			},
			opts:     opts,
			grammars: func(string) []*sitter.Language { return grammars },
		},
	}
}

// Language implements CodeAnalyzer.
func (a *JavaScriptAnalyzer) Language() string {
	return "javascript"
}
