// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

// Package parser provides PHP parsing on top of tree-sitter.
package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
)

// PHPParser provides PHP parsing capabilities using tree-sitter.
type PHPParser struct {
	parser *sitter.Parser
}

// NewPHPParser creates a new PHP parser.
func NewPHPParser() *PHPParser {
	parser := sitter.NewParser()
	parser.SetLanguage(php.GetLanguage())
	return &PHPParser{
		parser: parser,
	}
}

// PHPClass represents a PHP class definition.
type PHPClass struct {
	// Name is the class name
	Name string

	// Namespace is the class namespace
	Namespace string

	// Extends is the parent class as written in source
	Extends string

	// Traits are the used traits as written in source
	Traits []string

	// Methods are the class methods
	Methods []PHPMethod

	// Line is the first source line of the class
	Line int

	// EndLine is the last source line of the class
	EndLine int
}

// FQCN returns the fully-qualified class name.
func (c PHPClass) FQCN() string {
	if c.Namespace == "" {
		return c.Name
	}
	return c.Namespace + `\` + c.Name
}

// Method returns the method with the given name. PHP method names are case-insensitive.
func (c PHPClass) Method(name string) (PHPMethod, bool) {
	for _, m := range c.Methods {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return PHPMethod{}, false
}

// PHPMethod represents a PHP method definition.
type PHPMethod struct {
	// Name is the method name
	Name string

	// Visibility is the method visibility (public, private, protected)
	Visibility string

	// IsStatic reports a static method
	IsStatic bool

	// Parameters are the method parameters
	Parameters []PHPParameter

	// ReturnType is the return type
	ReturnType string

	// StartLine is the first source line of the declaration
	StartLine int

	// EndLine is the last source line of the declaration
	EndLine int
}

// PHPParameter represents a method parameter.
type PHPParameter struct {
	// Name is the parameter name without "$"
	Name string

	// Type is the declared type with any nullable marker removed
	Type string

	// IsNullable indicates a ?Type declaration
	IsNullable bool

	// IsVariadic indicates a ...$param declaration
	IsVariadic bool

	// IsPromoted indicates a constructor promoted property (PHP 8+)
	IsPromoted bool
}

// ParsedPHPFile represents a parsed PHP source file.
type ParsedPHPFile struct {
	// Path is the file path
	Path string

	// Content is the original source content
	Content []byte

	// Tree is the tree-sitter parse tree
	Tree *sitter.Tree

	// RootNode is the root node of the AST
	RootNode *sitter.Node

	// Namespace is the file namespace
	Namespace string

	// Uses maps lower-cased aliases to imported fully-qualified names
	Uses map[string]string

	// Classes are the extracted class definitions
	Classes []PHPClass
}

// Regex patterns for file-level declarations
var (
	// Matches namespace declaration
	phpNamespaceRegex = regexp.MustCompile(`(?m)^\s*namespace\s+([^;{\s]+)\s*[;{]`)

	// Matches top-level use statements
	phpUseRegex = regexp.MustCompile(`(?m)^use\s+([^;]+);`)

	// Splits "Foo\Bar as Baz"
	phpAliasRegex = regexp.MustCompile(`(?i)\s+as\s+`)
)

// builtinTypes are the types ReflectionNamedType::isBuiltin() reports as builtin.
var builtinTypes = map[string]bool{
	"int": true, "float": true, "string": true, "bool": true,
	"array": true, "callable": true, "iterable": true, "object": true,
	"mixed": true, "void": true, "null": true, "never": true,
	"false": true, "true": true,
}

// IsBuiltinType reports whether a declared type is a PHP builtin type.
func IsBuiltinType(t string) bool {
	return builtinTypes[strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "?"))]
}

// Parse parses PHP source code.
func (p *PHPParser) Parse(filename string, content []byte) (*ParsedPHPFile, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PHP: %w", err)
	}

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("failed to get root node")
	}

	src := string(content)
	pf := &ParsedPHPFile{
		Path:     filename,
		Content:  content,
		Tree:     tree,
		RootNode: rootNode,
		Uses:     extractUses(src),
		Classes:  []PHPClass{},
	}

	if match := phpNamespaceRegex.FindStringSubmatch(src); len(match) > 1 {
		pf.Namespace = strings.TrimPrefix(match[1], `\`)
	}

	pf.Classes = p.extractClasses(rootNode, content, pf.Namespace)

	return pf, nil
}

// extractUses extracts class imports, including group imports.
func extractUses(src string) map[string]string {
	uses := make(map[string]string)

	for _, match := range phpUseRegex.FindAllStringSubmatch(src, -1) {
		stmt := strings.TrimSpace(match[1])
		if strings.HasPrefix(stmt, "function ") || strings.HasPrefix(stmt, "const ") {
			continue
		}

		prefix := ""
		items := stmt
		if open := strings.Index(stmt, "{"); open != -1 {
			prefix = strings.TrimSpace(stmt[:open])
			items = strings.TrimSuffix(strings.TrimSpace(stmt[open+1:]), "}")
		}

		for _, item := range strings.Split(items, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			parts := phpAliasRegex.Split(item, 2)
			fqcn := strings.TrimPrefix(prefix+strings.TrimSpace(parts[0]), `\`)
			alias := shortName(fqcn)
			if len(parts) == 2 {
				alias = strings.TrimSpace(parts[1])
			}
			uses[strings.ToLower(alias)] = fqcn
		}
	}

	return uses
}

// ResolveName resolves a class name as written in this file to a
// fully-qualified name, following PHP name resolution rules.
func (pf *ParsedPHPFile) ResolveName(name string) string {
	name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "?"))
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, `\`) {
		return name[1:]
	}
	if IsBuiltinType(name) {
		return name
	}
	switch strings.ToLower(name) {
	case "self", "static", "parent":
		return name
	}

	first, rest, nested := strings.Cut(name, `\`)
	if fqcn, ok := pf.Uses[strings.ToLower(first)]; ok {
		if nested {
			return fqcn + `\` + rest
		}
		return fqcn
	}

	if pf.Namespace == "" {
		return name
	}
	return pf.Namespace + `\` + name
}

// Class returns the class with the given short name.
func (pf *ParsedPHPFile) Class(name string) (PHPClass, bool) {
	for _, c := range pf.Classes {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return PHPClass{}, false
}

// extractClasses extracts all class declarations from the AST.
func (p *PHPParser) extractClasses(rootNode *sitter.Node, content []byte, namespace string) []PHPClass {
	var classes []PHPClass

	p.walkNodes(rootNode, func(node *sitter.Node) bool {
		if node.Type() != "class_declaration" {
			return true
		}
		if cls := p.parseClass(node, content, namespace); cls != nil {
			classes = append(classes, *cls)
		}
		return false
	})

	return classes
}

// parseClass parses a class_declaration node.
func (p *PHPParser) parseClass(node *sitter.Node, content []byte, namespace string) *PHPClass {
	cls := &PHPClass{
		Namespace: namespace,
		Traits:    []string{},
		Methods:   []PHPMethod{},
		Line:      int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}

	if name := node.ChildByFieldName("name"); name != nil {
		cls.Name = name.Content(content)
	}

	var body *sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "base_clause":
			cls.Extends = firstTypeName(child, content)
		case "declaration_list":
			body = child
		case "name":
			if cls.Name == "" {
				cls.Name = child.Content(content)
			}
		}
	}

	if cls.Name == "" {
		return nil
	}

	if body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			member := body.NamedChild(i)
			switch member.Type() {
			case "method_declaration":
				if m := p.parseMethod(member, content); m != nil {
					cls.Methods = append(cls.Methods, *m)
				}
			case "use_declaration":
				cls.Traits = append(cls.Traits, traitNames(member, content)...)
			}
		}
	}

	return cls
}

// firstTypeName returns the first name or qualified_name below node.
func firstTypeName(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "name", "qualified_name":
			return child.Content(content)
		}
	}
	return strings.TrimSpace(strings.TrimPrefix(node.Content(content), "extends"))
}

// traitNames returns the traits listed in a class-level use declaration.
func traitNames(node *sitter.Node, content []byte) []string {
	var names []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "name", "qualified_name":
			names = append(names, child.Content(content))
		}
	}
	return names
}

// parseMethod parses a method_declaration node.
func (p *PHPParser) parseMethod(node *sitter.Node, content []byte) *PHPMethod {
	method := &PHPMethod{
		Visibility: "public",
		Parameters: []PHPParameter{},
		StartLine:  int(node.StartPoint().Row) + 1,
		EndLine:    int(node.EndPoint().Row) + 1,
	}

	if name := node.ChildByFieldName("name"); name != nil {
		method.Name = name.Content(content)
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		method.Parameters = p.parseParameters(params, content)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		method.ReturnType = strings.TrimPrefix(ret.Content(content), "?")
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "visibility_modifier":
			method.Visibility = child.Content(content)
		case "static_modifier":
			method.IsStatic = true
		}
	}

	if method.Name == "" {
		return nil
	}
	return method
}

// parseParameters parses a formal_parameters node.
func (p *PHPParser) parseParameters(node *sitter.Node, content []byte) []PHPParameter {
	var params []PHPParameter

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "simple_parameter", "variadic_parameter", "property_promotion_parameter":
		default:
			continue
		}

		param := PHPParameter{
			IsVariadic: child.Type() == "variadic_parameter",
			IsPromoted: child.Type() == "property_promotion_parameter",
		}

		if typ := child.ChildByFieldName("type"); typ != nil {
			typeStr := strings.TrimSpace(typ.Content(content))
			if strings.HasPrefix(typeStr, "?") {
				param.IsNullable = true
				typeStr = strings.TrimPrefix(typeStr, "?")
			}
			param.Type = typeStr
		}

		name := child.ChildByFieldName("name")
		if name == nil {
			name = findChildOfType(child, "variable_name")
		}
		if name != nil {
			param.Name = strings.TrimPrefix(name.Content(content), "$")
		}

		if param.Name != "" {
			params = append(params, param)
		}
	}

	return params
}

// findChildOfType returns the first direct named child of the given type.
func findChildOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// walkNodes walks all nodes in the tree, calling fn for each node.
// If fn returns false, it stops recursing into that node's children.
func (p *PHPParser) walkNodes(node *sitter.Node, fn func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !fn(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		p.walkNodes(node.Child(i), fn)
	}
}

// shortName returns the last segment of a namespaced name.
func shortName(name string) string {
	if idx := strings.LastIndex(name, `\`); idx != -1 {
		return name[idx+1:]
	}
	return name
}

// trimQuotes removes surrounding PHP string quotes.
func trimQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Close cleans up parser resources.
func (p *PHPParser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// Close cleans up the parsed file resources.
func (pf *ParsedPHPFile) Close() {
	if pf.Tree != nil {
		pf.Tree.Close()
	}
}
