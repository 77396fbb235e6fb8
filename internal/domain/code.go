package domain

// Position is a source location. Line is 1-based, Column is 0-based.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// CodeStructure is the structural metadata extracted from one source file.
// All lists keep source order.
type CodeStructure struct {
	Classes    []ClassInfo     `json:"classes,omitempty"`
	Interfaces []InterfaceInfo `json:"interfaces,omitempty"`
	Functions  []FunctionInfo  `json:"functions,omitempty"`
	Types      []TypeInfo      `json:"types,omitempty"`
	Imports    []ImportInfo    `json:"imports,omitempty"`
	Exports    []ExportInfo    `json:"exports,omitempty"`
	Comments   []CodeComment   `json:"comments,omitempty"`
}

// ClassInfo describes a class declaration.
type ClassInfo struct {
	Name string `json:"name"`
	Position
	Modifiers  []string       `json:"modifiers,omitempty"`
	Extends    string         `json:"extends,omitempty"`
	Implements []string       `json:"implements,omitempty"`
	Methods    []MethodInfo   `json:"methods,omitempty"`
	Properties []PropertyInfo `json:"properties,omitempty"`
	DocComment string         `json:"docComment,omitempty"`
}

// InterfaceInfo describes an interface declaration.
type InterfaceInfo struct {
	Name string `json:"name"`
	Position
	Extends    []string       `json:"extends,omitempty"`
	Properties []PropertyInfo `json:"properties,omitempty"`
	Methods    []MethodInfo   `json:"methods,omitempty"`
	DocComment string         `json:"docComment,omitempty"`
}

// FunctionInfo describes a function declaration or a named arrow function binding.
type FunctionInfo struct {
	Name string `json:"name"`
	Position
	Parameters  []ParameterInfo `json:"parameters,omitempty"`
	ReturnType  string          `json:"returnType,omitempty"`
	IsAsync     bool            `json:"isAsync,omitempty"`
	IsGenerator bool            `json:"isGenerator,omitempty"`
	DocComment  string          `json:"docComment,omitempty"`
}

// MethodInfo describes a class method or an interface method signature.
type MethodInfo struct {
	FunctionInfo
	Modifiers []string `json:"modifiers,omitempty"`
}

// IsStatic reports whether the method carries the static modifier.
func (m MethodInfo) IsStatic() bool {
	return hasModifier(m.Modifiers, ModifierStatic)
}

// TypeInfo describes a type alias.
type TypeInfo struct {
	Name string `json:"name"`
	Position
	Kind       string `json:"type"`
	Definition string `json:"definition,omitempty"`
	DocComment string `json:"docComment,omitempty"`
}

// PropertyInfo describes a class property or an interface property signature.
type PropertyInfo struct {
	Name string `json:"name"`
	Position
	Type         string   `json:"type,omitempty"`
	Modifiers    []string `json:"modifiers,omitempty"`
	DefaultValue string   `json:"defaultValue,omitempty"`
	Optional     bool     `json:"optional,omitempty"`
	DocComment   string   `json:"docComment,omitempty"`
}

// IsStatic reports whether the property carries the static modifier.
func (p PropertyInfo) IsStatic() bool {
	return hasModifier(p.Modifiers, ModifierStatic)
}

// ParameterInfo describes a function parameter.
type ParameterInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	DefaultValue string `json:"defaultValue,omitempty"`
	Optional     bool   `json:"optional,omitempty"`
}

// ImportInfo describes an import declaration.
type ImportInfo struct {
	Source string `json:"source"`
	Position
	DefaultImport   string   `json:"defaultImport,omitempty"`
	NamedImports    []string `json:"namedImports,omitempty"`
	NamespaceImport string   `json:"namespaceImport,omitempty"`
	IsTypeOnly      bool     `json:"isTypeOnly,omitempty"`
}

// ExportKind classifies an export declaration.
type ExportKind string

const (
	ExportDefault   ExportKind = "default"
	ExportNamed     ExportKind = "named"
	ExportNamespace ExportKind = "namespace"
	ExportAll       ExportKind = "all"
)

// ExportInfo describes an exported binding.
type ExportInfo struct {
	Name string `json:"name"`
	Position
	Kind   ExportKind `json:"type"`
	Source string     `json:"source,omitempty"`
}

// CommentKind classifies a source comment.
type CommentKind string

const (
	CommentLine  CommentKind = "line"
	CommentBlock CommentKind = "block"
	CommentJSDoc CommentKind = "jsdoc"
)

// CodeComment is a comment collected when comment extraction is enabled.
type CodeComment struct {
	Kind    CommentKind `json:"type"`
	Content string      `json:"content"`
	Position
}

// DependencyKind classifies a dependency by where it resolves.
type DependencyKind string

const (
	DependencyInternal        DependencyKind = "internal"
	DependencyExternalPackage DependencyKind = "external-package"
)

// DependencyInfo is one import or require site of a source file.
type DependencyInfo struct {
	Kind DependencyKind `json:"kind"`

	// Name is the specifier exactly as written in the source.
	Name string `json:"name"`

	// ResolvedPath is set for internal dependencies only.
	ResolvedPath string `json:"resolvedPath,omitempty"`
}

// Member modifiers.
const (
	ModifierStatic   = "static"
	ModifierAbstract = "abstract"
	ModifierReadonly = "readonly"
)

func hasModifier(modifiers []string, name string) bool {
	for _, m := range modifiers {
		if m == name {
			return true
		}
	}
	return false
}

// Bleve field names used when index nodes are searched.
const (
	NodeFieldID      = "id"
	NodeFieldTitle   = "title"
	NodeFieldSummary = "summary"
	NodeFieldPath    = "path"
	NodeFieldType    = "type"
)
