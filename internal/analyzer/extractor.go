package analyzer

import (
	"context"
	"strings"

	"github.com/sha1n/wikitree/internal/domain"
	sitter "github.com/smacker/go-tree-sitter"
)

// dialect captures where the TypeScript and JavaScript extraction rules differ.
type dialect struct {
	// typeDeclarations enables interfaces, type aliases and enums.
	typeDeclarations bool

	// requireCalls treats require("x") calls as import sites.
	requireCalls bool

	// defaultExportName names a default export whose declaration has no name.
	defaultExportName string
}

// walker parses a file with a tree-sitter grammar and runs the extraction rules.
// Analyzers embed it and supply their own grammar selection and dialect.
type walker struct {
	dialect dialect
	opts    Options

	// grammars lists the grammars to try for path, in order. The first one
	// that parses the file without syntax errors is used.
	grammars func(path string) []*sitter.Language
}

func (w walker) parse(ctx context.Context, path string, content []byte) *sitter.Tree {
	for _, lang := range w.grammars(path) {
		if tree := parse(ctx, lang, content); tree != nil {
			return tree
		}
	}
	return nil
}

// Analyze implements CodeAnalyzer.
func (w walker) Analyze(ctx context.Context, path string, content []byte) (*domain.CodeStructure, bool) {
	tree := w.parse(ctx, path, content)
	if tree == nil {
		return nil, false
	}
	defer tree.Close()

	e := &extractor{
		dialect:  w.dialect,
		src:      content,
		lines:    sourceLines(content),
		comments: w.opts.IncludeComments,
		out:      &domain.CodeStructure{},
	}
	e.walk(tree.RootNode(), nil)
	return e.out, true
}

// ExtractDependencies implements CodeAnalyzer.
func (w walker) ExtractDependencies(ctx context.Context, path string, content []byte) []domain.DependencyInfo {
	tree := w.parse(ctx, path, content)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	var deps []domain.DependencyInfo
	w.collectDependencies(tree.RootNode(), path, content, &deps)
	return deps
}

func (w walker) collectDependencies(n *sitter.Node, path string, src []byte, deps *[]domain.DependencyInfo) {
	switch n.Type() {
	case "import_statement":
		if spec := importSource(n, src); spec != "" {
			*deps = append(*deps, classifyDependency(path, spec))
		}
	case "call_expression":
		if w.dialect.requireCalls {
			if spec, ok := requireSpecifier(n, src); ok {
				*deps = append(*deps, classifyDependency(path, spec))
			}
		}
	}
	for _, c := range namedChildren(n) {
		w.collectDependencies(c, path, src, deps)
	}
}

// requireSpecifier matches require("x") with exactly one string literal argument.
func requireSpecifier(call *sitter.Node, src []byte) (string, bool) {
	fn := field(call, "function")
	if fn == nil || fn.Type() != "identifier" || text(fn, src) != "require" {
		return "", false
	}
	var args []*sitter.Node
	for _, a := range namedChildren(field(call, "arguments")) {
		if a.Type() != "comment" {
			args = append(args, a)
		}
	}
	if len(args) != 1 || args[0].Type() != "string" {
		return "", false
	}
	return stringValue(args[0], src), true
}

func importSource(n *sitter.Node, src []byte) string {
	s := field(n, "source")
	if s == nil {
		s = firstChildOfType(n, "string")
	}
	if s == nil {
		if req := firstChildOfType(n, "import_require_clause"); req != nil {
			s = field(req, "source")
			if s == nil {
				s = firstChildOfType(req, "string")
			}
		}
	}
	if s == nil {
		return ""
	}
	return stringValue(s, src)
}

// extractor accumulates a CodeStructure while walking every node of one tree.
type extractor struct {
	dialect  dialect
	src      []byte
	lines    []string
	comments bool
	out      *domain.CodeStructure
}

func (e *extractor) walk(n, parent *sitter.Node) {
	switch n.Type() {
	case "class_declaration", "abstract_class_declaration":
		e.out.Classes = append(e.out.Classes, e.class(n))
	case "class":
		// anonymous class only counts as a declaration under `export default`
		if isExport(parent) {
			e.out.Classes = append(e.out.Classes, e.class(n))
		}
	case "interface_declaration":
		if e.dialect.typeDeclarations {
			e.out.Interfaces = append(e.out.Interfaces, e.iface(n))
		}
	case "type_alias_declaration", "enum_declaration":
		if e.dialect.typeDeclarations {
			e.out.Types = append(e.out.Types, e.typeDecl(n))
		}
	case "function_declaration", "generator_function_declaration":
		e.out.Functions = append(e.out.Functions, e.function(n, e.nameOr(field(n, "name"), AnonymousName)))
	case "function", "function_expression", "generator_function":
		if isExport(parent) {
			e.out.Functions = append(e.out.Functions, e.function(n, e.nameOr(field(n, "name"), AnonymousName)))
		}
	case "variable_declarator":
		name, value := field(n, "name"), field(n, "value")
		if name != nil && name.Type() == "identifier" && value != nil && value.Type() == "arrow_function" {
			e.out.Functions = append(e.out.Functions, e.function(value, text(name, e.src)))
		}
	case "import_statement":
		e.out.Imports = append(e.out.Imports, e.importDecl(n))
	case "export_statement":
		e.out.Exports = append(e.out.Exports, e.exportDecl(n)...)
	case "comment":
		if e.comments {
			e.out.Comments = append(e.out.Comments, e.comment(n))
		}
	}

	for _, c := range namedChildren(n) {
		e.walk(c, n)
	}
}

func isExport(n *sitter.Node) bool {
	return n != nil && n.Type() == "export_statement"
}

func (e *extractor) nameOr(n *sitter.Node, fallback string) string {
	if s := text(n, e.src); s != "" {
		return s
	}
	return fallback
}

func (e *extractor) doc(pos domain.Position) string {
	return docComment(e.lines, pos.Line)
}

func (e *extractor) class(n *sitter.Node) domain.ClassInfo {
	pos := position(n)
	c := domain.ClassInfo{
		Name:       e.nameOr(field(n, "name"), AnonymousName),
		Position:   pos,
		DocComment: e.doc(pos),
	}
	if n.Type() == "abstract_class_declaration" {
		c.Modifiers = []string{domain.ModifierAbstract}
	}
	if h := firstChildOfType(n, "class_heritage"); h != nil {
		c.Extends, c.Implements = e.heritage(h)
	}

	for _, m := range namedChildren(field(n, "body")) {
		switch m.Type() {
		case "method_definition":
			c.Methods = append(c.Methods, e.method(m))
		case "public_field_definition", "field_definition":
			c.Properties = append(c.Properties, e.property(m))
		}
	}
	return c
}

// heritage returns the superclass name (only when it is a plain identifier)
// and the implemented interface names.
func (e *extractor) heritage(h *sitter.Node) (string, []string) {
	var superclass *sitter.Node
	if ext := firstChildOfType(h, "extends_clause"); ext != nil {
		superclass = field(ext, "value")
		if superclass == nil && ext.NamedChildCount() > 0 {
			superclass = ext.NamedChild(0)
		}
	} else {
		for _, c := range namedChildren(h) {
			if c.Type() != "implements_clause" && c.Type() != "comment" {
				superclass = c
				break
			}
		}
	}

	var extends string
	if superclass != nil && superclass.Type() == "identifier" {
		extends = text(superclass, e.src)
	}

	var implements []string
	if impl := firstChildOfType(h, "implements_clause"); impl != nil {
		for _, t := range namedChildren(impl) {
			if name := e.typeName(t); name != "" {
				implements = append(implements, name)
			}
		}
	}
	return extends, implements
}

func (e *extractor) typeName(n *sitter.Node) string {
	switch n.Type() {
	case "identifier", "type_identifier", "nested_type_identifier", "member_expression":
		return text(n, e.src)
	case "generic_type":
		return text(field(n, "name"), e.src)
	}
	return ""
}

func (e *extractor) memberName(n *sitter.Node) string {
	if n == nil {
		return UnknownName
	}
	switch n.Type() {
	case "property_identifier", "private_property_identifier", "identifier", "type_identifier", "number":
		return text(n, e.src)
	case "string":
		return stringValue(n, e.src)
	}
	return UnknownName
}

func (e *extractor) modifiers(n *sitter.Node) []string {
	var mods []string
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "accessibility_modifier":
			mods = append(mods, text(c, e.src))
		case domain.ModifierStatic, domain.ModifierAbstract, domain.ModifierReadonly, "override":
			if !c.IsNamed() {
				mods = append(mods, c.Type())
			}
		}
	}
	return mods
}

func (e *extractor) method(m *sitter.Node) domain.MethodInfo {
	pos := position(m)
	return domain.MethodInfo{
		FunctionInfo: domain.FunctionInfo{
			Name:        e.memberName(field(m, "name")),
			Position:    pos,
			Parameters:  e.parameters(field(m, "parameters")),
			ReturnType:  annotationText(field(m, "return_type"), e.src),
			IsAsync:     hasToken(m, "async"),
			IsGenerator: hasToken(m, "*"),
			DocComment:  e.doc(pos),
		},
		Modifiers: e.modifiers(m),
	}
}

func (e *extractor) property(p *sitter.Node) domain.PropertyInfo {
	name := field(p, "name")
	if name == nil {
		name = field(p, "property")
	}
	pos := position(p)
	prop := domain.PropertyInfo{
		Name:       e.memberName(name),
		Position:   pos,
		Type:       annotationText(field(p, "type"), e.src),
		Modifiers:  e.modifiers(p),
		Optional:   hasToken(p, "?"),
		DocComment: e.doc(pos),
	}
	if field(p, "value") != nil {
		prop.DefaultValue = DefaultValuePlaceholder
	}
	return prop
}

func (e *extractor) function(n *sitter.Node, name string) domain.FunctionInfo {
	pos := position(n)
	params := e.parameters(field(n, "parameters"))
	if single := field(n, "parameter"); single != nil && single.Type() == "identifier" {
		params = []domain.ParameterInfo{{Name: text(single, e.src)}}
	}
	return domain.FunctionInfo{
		Name:        name,
		Position:    pos,
		Parameters:  params,
		ReturnType:  annotationText(field(n, "return_type"), e.src),
		IsAsync:     hasToken(n, "async"),
		IsGenerator: hasToken(n, "*"),
		DocComment:  e.doc(pos),
	}
}

// parameters returns the simply-named parameters. Destructuring patterns are skipped.
func (e *extractor) parameters(n *sitter.Node) []domain.ParameterInfo {
	var params []domain.ParameterInfo
	for _, p := range namedChildren(n) {
		switch p.Type() {
		case "identifier":
			params = append(params, domain.ParameterInfo{Name: text(p, e.src)})
		case "assignment_pattern":
			if left := field(p, "left"); left != nil && left.Type() == "identifier" {
				params = append(params, domain.ParameterInfo{
					Name:         text(left, e.src),
					DefaultValue: DefaultValuePlaceholder,
				})
			}
		case "required_parameter", "optional_parameter":
			pat := field(p, "pattern")
			if pat == nil || pat.Type() != "identifier" {
				continue
			}
			param := domain.ParameterInfo{
				Name:     text(pat, e.src),
				Type:     annotationText(field(p, "type"), e.src),
				Optional: p.Type() == "optional_parameter",
			}
			if field(p, "value") != nil {
				param.DefaultValue = DefaultValuePlaceholder
			}
			params = append(params, param)
		}
	}
	return params
}

func (e *extractor) iface(n *sitter.Node) domain.InterfaceInfo {
	pos := position(n)
	info := domain.InterfaceInfo{
		Name:       e.nameOr(field(n, "name"), UnknownName),
		Position:   pos,
		DocComment: e.doc(pos),
	}
	if clause := firstChildOfType(n, "extends_type_clause", "extends_clause"); clause != nil {
		for _, t := range namedChildren(clause) {
			if name := e.typeName(t); name != "" {
				info.Extends = append(info.Extends, name)
			}
		}
	}

	for _, m := range namedChildren(field(n, "body")) {
		mpos := position(m)
		switch m.Type() {
		case "property_signature":
			info.Properties = append(info.Properties, domain.PropertyInfo{
				Name:       e.memberName(field(m, "name")),
				Position:   mpos,
				Type:       annotationText(field(m, "type"), e.src),
				Modifiers:  e.modifiers(m),
				Optional:   hasToken(m, "?"),
				DocComment: e.doc(mpos),
			})
		case "method_signature":
			info.Methods = append(info.Methods, domain.MethodInfo{
				FunctionInfo: domain.FunctionInfo{
					Name:       e.memberName(field(m, "name")),
					Position:   mpos,
					Parameters: e.parameters(field(m, "parameters")),
					ReturnType: annotationText(field(m, "return_type"), e.src),
					DocComment: e.doc(mpos),
				},
			})
		}
	}
	return info
}

func (e *extractor) typeDecl(n *sitter.Node) domain.TypeInfo {
	pos := position(n)
	info := domain.TypeInfo{
		Name:       e.nameOr(field(n, "name"), UnknownName),
		Position:   pos,
		Kind:       "type",
		DocComment: e.doc(pos),
	}
	if n.Type() == "enum_declaration" {
		info.Kind = "enum"
		info.Definition = text(field(n, "body"), e.src)
		return info
	}

	value := field(n, "value")
	info.Definition = text(value, e.src)
	if value != nil {
		switch value.Type() {
		case "union_type":
			info.Kind = "union"
		case "intersection_type":
			info.Kind = "intersection"
		}
	}
	return info
}

func (e *extractor) importDecl(n *sitter.Node) domain.ImportInfo {
	imp := domain.ImportInfo{
		Source:     importSource(n, e.src),
		Position:   position(n),
		IsTypeOnly: hasToken(n, "type"),
	}
	if req := firstChildOfType(n, "import_require_clause"); req != nil {
		imp.DefaultImport = text(firstChildOfType(req, "identifier"), e.src)
	}

	for _, c := range namedChildren(firstChildOfType(n, "import_clause")) {
		switch c.Type() {
		case "identifier":
			imp.DefaultImport = text(c, e.src)
		case "namespace_import":
			imp.NamespaceImport = text(firstChildOfType(c, "identifier"), e.src)
		case "named_imports":
			for _, spec := range namedChildren(c) {
				if spec.Type() != "import_specifier" {
					continue
				}
				imp.NamedImports = append(imp.NamedImports, e.memberName(field(spec, "name")))
			}
		}
	}
	return imp
}

func (e *extractor) exportDecl(n *sitter.Node) []domain.ExportInfo {
	pos := position(n)
	isDefault := hasToken(n, "default")
	kind := domain.ExportNamed
	placeholder := UnknownName
	if isDefault {
		kind = domain.ExportDefault
		placeholder = e.dialect.defaultExportName
	}

	var source string
	if s := field(n, "source"); s != nil {
		source = stringValue(s, e.src)
	}

	if decl := field(n, "declaration"); decl != nil {
		return []domain.ExportInfo{{Name: e.declarationName(decl, placeholder), Position: pos, Kind: kind}}
	}

	if value := field(n, "value"); value != nil {
		name := placeholder
		if value.Type() == "identifier" {
			name = text(value, e.src)
		} else if named := field(value, "name"); named != nil {
			name = text(named, e.src)
		}
		return []domain.ExportInfo{{Name: name, Position: pos, Kind: domain.ExportDefault}}
	}

	if clause := firstChildOfType(n, "export_clause"); clause != nil {
		var out []domain.ExportInfo
		for _, spec := range namedChildren(clause) {
			if spec.Type() != "export_specifier" {
				continue
			}
			exported := field(spec, "alias")
			if exported == nil {
				exported = field(spec, "name")
			}
			out = append(out, domain.ExportInfo{
				Name:     e.memberName(exported),
				Position: pos,
				Kind:     domain.ExportNamed,
				Source:   source,
			})
		}
		if len(out) > 0 {
			return out
		}
	}

	if ns := firstChildOfType(n, "namespace_export"); ns != nil {
		name := UnknownName
		if children := namedChildren(ns); len(children) > 0 {
			name = e.memberName(children[0])
		}
		return []domain.ExportInfo{{Name: name, Position: pos, Kind: domain.ExportNamespace, Source: source}}
	}

	if hasToken(n, "*") {
		return []domain.ExportInfo{{Name: "*", Position: pos, Kind: domain.ExportAll, Source: source}}
	}

	return []domain.ExportInfo{{Name: placeholder, Position: pos, Kind: kind, Source: source}}
}

func (e *extractor) declarationName(decl *sitter.Node, placeholder string) string {
	switch decl.Type() {
	case "lexical_declaration", "variable_declaration":
		for _, vd := range namedChildren(decl) {
			if vd.Type() != "variable_declarator" {
				continue
			}
			if name := field(vd, "name"); name != nil && name.Type() == "identifier" {
				return text(name, e.src)
			}
		}
		return placeholder
	}
	return e.nameOr(field(decl, "name"), placeholder)
}

func (e *extractor) comment(n *sitter.Node) domain.CodeComment {
	content := text(n, e.src)
	kind := domain.CommentLine
	switch {
	case strings.HasPrefix(content, "/**") && content != "/**/":
		kind = domain.CommentJSDoc
	case strings.HasPrefix(content, "/*"):
		kind = domain.CommentBlock
	}
	return domain.CodeComment{Kind: kind, Content: content, Position: position(n)}
}
