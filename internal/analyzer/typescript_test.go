package analyzer

import (
	"context"
	"testing"

	"github.com/sha1n/wikitree/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tsService = `import { A, B } from "./models";
import * as path from "path";
import React from "react";

/**
 * Shape of a user.
 */
export interface User extends Base {
  id: number;
  name?: string;
  greet(msg: string): void;
}

export type Id = string | number;

// Adds numbers.
export async function add(a: number, b?: number): Promise<number> {
  return a + (b || 0);
}

export const double = (x: number) => x * 2;

export default class Service implements Runner {
  static instances = 0;
  private readonly label: string = "svc";

  static create(): Service {
    return new Service();
  }
}
`

func TestTypeScriptAnalyzer_ClassWithDocumentedMethod(t *testing.T) {
	src := "export class Foo extends Bar {\n  /** doc */\n  method() {}\n}\n"

	structure, ok := NewTypeScriptAnalyzer(Options{}).Analyze(context.Background(), "/repo/foo.ts", []byte(src))
	require.True(t, ok)
	require.NotNil(t, structure)

	require.Len(t, structure.Classes, 1)
	class := structure.Classes[0]
	assert.Equal(t, "Foo", class.Name)
	assert.Equal(t, "Bar", class.Extends)
	assert.Equal(t, 1, class.Line)

	require.Len(t, class.Methods, 1)
	method := class.Methods[0]
	assert.Equal(t, "method", method.Name)
	assert.Equal(t, 3, method.Line)
	assert.Equal(t, "/** doc */", method.DocComment)
	assert.False(t, method.IsStatic())

	require.Len(t, structure.Exports, 1)
	assert.Equal(t, "Foo", structure.Exports[0].Name)
	assert.Equal(t, domain.ExportNamed, structure.Exports[0].Kind)
}

func TestTypeScriptAnalyzer_MalformedSource(t *testing.T) {
	a := NewTypeScriptAnalyzer(Options{})
	src := []byte("export class {{{ ((( import from ;")

	structure, ok := a.Analyze(context.Background(), "/repo/broken.ts", src)
	assert.False(t, ok)
	assert.Nil(t, structure)

	assert.Empty(t, a.ExtractDependencies(context.Background(), "/repo/broken.ts", src))
}

func TestTypeScriptAnalyzer_Declarations(t *testing.T) {
	structure, ok := NewTypeScriptAnalyzer(Options{}).Analyze(context.Background(), "/repo/src/service.ts", []byte(tsService))
	require.True(t, ok)

	t.Run("interfaces", func(t *testing.T) {
		require.Len(t, structure.Interfaces, 1)
		iface := structure.Interfaces[0]
		assert.Equal(t, "User", iface.Name)
		assert.Equal(t, []string{"Base"}, iface.Extends)
		assert.Equal(t, "/**\n* Shape of a user.\n*/", iface.DocComment)

		require.Len(t, iface.Properties, 2)
		assert.Equal(t, "id", iface.Properties[0].Name)
		assert.Equal(t, "number", iface.Properties[0].Type)
		assert.False(t, iface.Properties[0].Optional)
		assert.Equal(t, "name", iface.Properties[1].Name)
		assert.True(t, iface.Properties[1].Optional)

		require.Len(t, iface.Methods, 1)
		assert.Equal(t, "greet", iface.Methods[0].Name)
		assert.Equal(t, "void", iface.Methods[0].ReturnType)
		require.Len(t, iface.Methods[0].Parameters, 1)
		assert.Equal(t, domain.ParameterInfo{Name: "msg", Type: "string"}, iface.Methods[0].Parameters[0])
	})

	t.Run("types", func(t *testing.T) {
		require.Len(t, structure.Types, 1)
		assert.Equal(t, "Id", structure.Types[0].Name)
		assert.Equal(t, "union", structure.Types[0].Kind)
		assert.Equal(t, "string | number", structure.Types[0].Definition)
	})

	t.Run("functions", func(t *testing.T) {
		require.Len(t, structure.Functions, 2)

		add := structure.Functions[0]
		assert.Equal(t, "add", add.Name)
		assert.True(t, add.IsAsync)
		assert.Equal(t, "Promise<number>", add.ReturnType)
		assert.Equal(t, "// Adds numbers.", add.DocComment)
		assert.Equal(t, []domain.ParameterInfo{
			{Name: "a", Type: "number"},
			{Name: "b", Type: "number", Optional: true},
		}, add.Parameters)

		double := structure.Functions[1]
		assert.Equal(t, "double", double.Name)
		require.Len(t, double.Parameters, 1)
		assert.Equal(t, "x", double.Parameters[0].Name)
	})

	t.Run("classes", func(t *testing.T) {
		require.Len(t, structure.Classes, 1)
		class := structure.Classes[0]
		assert.Equal(t, "Service", class.Name)
		assert.Empty(t, class.Extends)
		assert.Equal(t, []string{"Runner"}, class.Implements)

		require.Len(t, class.Properties, 2)
		assert.Equal(t, "instances", class.Properties[0].Name)
		assert.True(t, class.Properties[0].IsStatic())
		assert.Equal(t, DefaultValuePlaceholder, class.Properties[0].DefaultValue)
		assert.Equal(t, "label", class.Properties[1].Name)
		assert.Contains(t, class.Properties[1].Modifiers, "private")
		assert.Contains(t, class.Properties[1].Modifiers, domain.ModifierReadonly)
		assert.Equal(t, "string", class.Properties[1].Type)

		require.Len(t, class.Methods, 1)
		assert.Equal(t, "create", class.Methods[0].Name)
		assert.True(t, class.Methods[0].IsStatic())
		assert.Equal(t, "Service", class.Methods[0].ReturnType)
	})

	t.Run("imports", func(t *testing.T) {
		require.Len(t, structure.Imports, 3)
		assert.Equal(t, "./models", structure.Imports[0].Source)
		assert.Equal(t, []string{"A", "B"}, structure.Imports[0].NamedImports)
		assert.Equal(t, "path", structure.Imports[1].Source)
		assert.Equal(t, "path", structure.Imports[1].NamespaceImport)
		assert.Equal(t, "react", structure.Imports[2].Source)
		assert.Equal(t, "React", structure.Imports[2].DefaultImport)
		assert.Equal(t, 1, structure.Imports[0].Line)
	})

	t.Run("exports", func(t *testing.T) {
		var names []string
		for _, e := range structure.Exports {
			names = append(names, e.Name)
		}
		assert.Equal(t, []string{"User", "Id", "add", "double", "Service"}, names)
		assert.Equal(t, domain.ExportDefault, structure.Exports[4].Kind)
	})

	assert.Empty(t, structure.Comments, "comments are only collected on request")
}

func TestTypeScriptAnalyzer_ExtractDependencies(t *testing.T) {
	deps := NewTypeScriptAnalyzer(Options{}).ExtractDependencies(context.Background(), "/repo/src/service.ts", []byte(tsService))

	assert.Equal(t, []domain.DependencyInfo{
		{Kind: domain.DependencyInternal, Name: "./models", ResolvedPath: "/repo/src/models"},
		{Kind: domain.DependencyExternalPackage, Name: "path"},
		{Kind: domain.DependencyExternalPackage, Name: "react"},
	}, deps)
}

func TestTypeScriptAnalyzer_ExportForms(t *testing.T) {
	src := `export { a, b as c } from "./x";
export * from "./all";
const v = 1;
export default v;
`
	structure, ok := NewTypeScriptAnalyzer(Options{}).Analyze(context.Background(), "/repo/index.ts", []byte(src))
	require.True(t, ok)

	require.Len(t, structure.Exports, 4)
	assert.Equal(t, "a", structure.Exports[0].Name)
	assert.Equal(t, "./x", structure.Exports[0].Source)
	assert.Equal(t, "c", structure.Exports[1].Name)
	assert.Equal(t, domain.ExportAll, structure.Exports[2].Kind)
	assert.Equal(t, "./all", structure.Exports[2].Source)
	assert.Equal(t, "v", structure.Exports[3].Name)
	assert.Equal(t, domain.ExportDefault, structure.Exports[3].Kind)
}

func TestTypeScriptAnalyzer_Comments(t *testing.T) {
	src := "// line\n/* block */\n/** doc */\nfunction f() {}\n"

	structure, ok := NewTypeScriptAnalyzer(Options{IncludeComments: true}).Analyze(context.Background(), "/repo/c.ts", []byte(src))
	require.True(t, ok)

	require.Len(t, structure.Comments, 3)
	assert.Equal(t, domain.CommentLine, structure.Comments[0].Kind)
	assert.Equal(t, domain.CommentBlock, structure.Comments[1].Kind)
	assert.Equal(t, domain.CommentJSDoc, structure.Comments[2].Kind)
	assert.Equal(t, "/** doc */", structure.Comments[2].Content)
	assert.Equal(t, 3, structure.Comments[2].Line)
}

func TestTypeScriptAnalyzer_TSX(t *testing.T) {
	src := "export const App = () => <div className=\"app\">hi</div>;\n"

	structure, ok := NewTypeScriptAnalyzer(Options{}).Analyze(context.Background(), "/repo/App.tsx", []byte(src))
	require.True(t, ok)
	require.Len(t, structure.Functions, 1)
	assert.Equal(t, "App", structure.Functions[0].Name)
}
