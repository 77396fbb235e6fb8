package analyzer

import (
	"context"
	"testing"

	"github.com/sha1n/wikitree/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsWidget = `const fs = require("fs");
const helper = require("./lib/helper");
import Default, { named } from "../shared";

/**
 * Widget docs.
 */
class Widget extends Base {
  static count = 1;

  async *items(a, b = 2) {}
}

function* gen() {}

const arrow = async (x) => x;

export default function () {}
`

func TestJavaScriptAnalyzer_Analyze(t *testing.T) {
	structure, ok := NewJavaScriptAnalyzer(Options{}).Analyze(context.Background(), "/proj/src/widget.js", []byte(jsWidget))
	require.True(t, ok)

	require.Len(t, structure.Classes, 1)
	class := structure.Classes[0]
	assert.Equal(t, "Widget", class.Name)
	assert.Equal(t, "Base", class.Extends)
	assert.Equal(t, 8, class.Line)
	assert.Equal(t, "/**\n* Widget docs.\n*/", class.DocComment)

	require.Len(t, class.Properties, 1)
	assert.Equal(t, "count", class.Properties[0].Name)
	assert.True(t, class.Properties[0].IsStatic())

	require.Len(t, class.Methods, 1)
	items := class.Methods[0]
	assert.Equal(t, "items", items.Name)
	assert.True(t, items.IsAsync)
	assert.True(t, items.IsGenerator)
	assert.Equal(t, []domain.ParameterInfo{
		{Name: "a"},
		{Name: "b", DefaultValue: DefaultValuePlaceholder},
	}, items.Parameters)

	var names []string
	for _, fn := range structure.Functions {
		names = append(names, fn.Name)
	}
	assert.Equal(t, []string{"gen", "arrow", AnonymousName}, names)
	assert.True(t, structure.Functions[0].IsGenerator)
	assert.True(t, structure.Functions[1].IsAsync)

	require.Len(t, structure.Imports, 1)
	assert.Equal(t, "Default", structure.Imports[0].DefaultImport)
	assert.Equal(t, []string{"named"}, structure.Imports[0].NamedImports)

	require.Len(t, structure.Exports, 1)
	assert.Equal(t, DefaultName, structure.Exports[0].Name)
	assert.Equal(t, domain.ExportDefault, structure.Exports[0].Kind)

	assert.Empty(t, structure.Interfaces)
	assert.Empty(t, structure.Types)
}

func TestJavaScriptAnalyzer_ExtractDependencies(t *testing.T) {
	deps := NewJavaScriptAnalyzer(Options{}).ExtractDependencies(context.Background(), "/proj/src/widget.js", []byte(jsWidget))

	assert.Equal(t, []domain.DependencyInfo{
		{Kind: domain.DependencyExternalPackage, Name: "fs"},
		{Kind: domain.DependencyInternal, Name: "./lib/helper", ResolvedPath: "/proj/src/lib/helper"},
		{Kind: domain.DependencyInternal, Name: "../shared", ResolvedPath: "/proj/shared"},
	}, deps)
}

func TestJavaScriptAnalyzer_RequireNeedsSingleStringLiteral(t *testing.T) {
	src := `const name = "x";
require(name);
require("a", "b");
require();
require("ok");
`
	deps := NewJavaScriptAnalyzer(Options{}).ExtractDependencies(context.Background(), "/proj/index.js", []byte(src))

	require.Len(t, deps, 1)
	assert.Equal(t, "ok", deps[0].Name)
}

func TestJavaScriptAnalyzer_JSX(t *testing.T) {
	src := "import React from \"react\";\nexport function App() {\n  return <div>hello</div>;\n}\n"

	a := NewJavaScriptAnalyzer(Options{})
	structure, ok := a.Analyze(context.Background(), "/proj/App.jsx", []byte(src))
	require.True(t, ok)

	require.Len(t, structure.Functions, 1)
	assert.Equal(t, "App", structure.Functions[0].Name)
	require.Len(t, structure.Exports, 1)
	assert.Equal(t, "App", structure.Exports[0].Name)
}

func TestJavaScriptAnalyzer_MalformedSource(t *testing.T) {
	a := NewJavaScriptAnalyzer(Options{})
	src := []byte("function (((( {")

	structure, ok := a.Analyze(context.Background(), "/proj/bad.js", src)
	assert.False(t, ok)
	assert.Nil(t, structure)
	assert.Empty(t, a.ExtractDependencies(context.Background(), "/proj/bad.js", src))
}

func TestJavaScriptAnalyzer_TypeAnnotations(t *testing.T) {
	src := "import { x } from \"./x\";\ninterface X { a: number }\nfunction f(a: number): string {\n  return String(a);\n}\n"

	a := NewJavaScriptAnalyzer(Options{})
	structure, ok := a.Analyze(context.Background(), "/proj/typed.js", []byte(src))
	require.True(t, ok, "annotated JavaScript falls back to the TSX grammar")

	require.Len(t, structure.Functions, 1)
	fn := structure.Functions[0]
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, 3, fn.Line)
	require.Len(t, fn.Parameters, 1)
	assert.Equal(t, "a", fn.Parameters[0].Name)
	assert.Empty(t, structure.Interfaces, "TypeScript-only declarations are not reported for JavaScript")

	deps := a.ExtractDependencies(context.Background(), "/proj/typed.js", []byte(src))
	require.Len(t, deps, 1)
	assert.Equal(t, "/proj/x", deps[0].ResolvedPath)
}
