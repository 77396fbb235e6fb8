package analyzer

import (
	"context"
	"strings"

	"github.com/sha1n/wikitree/internal/domain"
	sitter "github.com/smacker/go-tree-sitter"
)

// parse parses content with lang. It returns nil when parsing fails or the
// resulting tree contains syntax errors. The caller must Close the tree.
func parse(ctx context.Context, lang *sitter.Language, content []byte) *sitter.Tree {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil || tree == nil {
		return nil
	}
	if tree.RootNode().HasError() {
		tree.Close()
		return nil
	}
	return tree
}

func position(n *sitter.Node) domain.Position {
	p := n.StartPoint()
	return domain.Position{Line: int(p.Row) + 1, Column: int(p.Column)}
}

func field(n *sitter.Node, name string) *sitter.Node {
	if n == nil {
		return nil
	}
	return n.ChildByFieldName(name)
}

func text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

// namedChildren returns the named children of n in source order.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := range count {
		if c := n.NamedChild(i); c != nil {
			children = append(children, c)
		}
	}
	return children
}

// firstChildOfType returns the first direct child (named or not) of the given type.
func firstChildOfType(n *sitter.Node, types ...string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		if c == nil {
			continue
		}
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

// hasToken reports whether n has a direct anonymous child with the given text type,
// such as "static", "async", "default" or "*".
func hasToken(n *sitter.Node, token string) bool {
	if n == nil {
		return false
	}
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		if c != nil && !c.IsNamed() && c.Type() == token {
			return true
		}
	}
	return false
}

// stringValue returns the contents of a string literal node without its quotes.
func stringValue(n *sitter.Node, src []byte) string {
	s := text(n, src)
	if len(s) >= 2 {
		q := s[0]
		if (q == '"' || q == '\'' || q == '`') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// annotationText strips the leading colon of a type annotation node.
func annotationText(n *sitter.Node, src []byte) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text(n, src)), ":"))
}
