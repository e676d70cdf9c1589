// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// PHPRoute represents a route registered through the Route facade.
type PHPRoute struct {
	// Methods are the upper-case HTTP methods, GET routes include HEAD
	Methods []string

	// URI is the full path template including group prefixes
	URI string

	// Name is the full route name including group name prefixes
	Name string

	// Action is "Class@method", an invokable "Class" or "Closure"
	Action string

	// Middleware is the accumulated middleware list
	Middleware []string

	// Line is the source line of the registration
	Line int
}

// RouteScope is the group context a route file is evaluated in.
type RouteScope struct {
	// Prefix is prepended to every URI
	Prefix string

	// Name is prepended to every route name
	Name string

	// Middleware is applied to every route
	Middleware []string

	// Controller is the controller of a Route::controller() group
	Controller string
}

// verbMethods maps Route facade verbs to HTTP methods.
var verbMethods = map[string][]string{
	"get":     {"GET", "HEAD"},
	"post":    {"POST"},
	"put":     {"PUT"},
	"patch":   {"PATCH"},
	"delete":  {"DELETE"},
	"options": {"OPTIONS"},
	"any":     {"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
}

const (
	viewControllerAction     = `Illuminate\Routing\ViewController`
	redirectControllerAction = `Illuminate\Routing\RedirectController`
	inlineAction             = "Closure"
)

// resourceAction describes one route of a resource registration.
type resourceAction struct {
	name    string
	methods []string
	suffix  string
	member  bool
}

var resourceActions = []resourceAction{
	{"index", []string{"GET", "HEAD"}, "", false},
	{"create", []string{"GET", "HEAD"}, "/create", false},
	{"store", []string{"POST"}, "", false},
	{"show", []string{"GET", "HEAD"}, "", true},
	{"edit", []string{"GET", "HEAD"}, "/edit", true},
	{"update", []string{"PUT", "PATCH"}, "", true},
	{"destroy", []string{"DELETE"}, "", true},
}

// chainCall is one call in a fluent Route chain.
type chainCall struct {
	name string
	args []*sitter.Node
}

// routeExtractor evaluates route registrations of one parsed file.
type routeExtractor struct {
	pf     *ParsedPHPFile
	routes []PHPRoute
}

// ExtractRoutes returns the routes registered in a parsed route file,
// evaluated inside the given base scope.
func (p *PHPParser) ExtractRoutes(pf *ParsedPHPFile, base RouteScope) []PHPRoute {
	e := &routeExtractor{pf: pf}
	e.walk(pf.RootNode, base)
	return e.routes
}

// walk visits node and evaluates every Route chain found below it.
func (e *routeExtractor) walk(node *sitter.Node, sc RouteScope) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "member_call_expression", "scoped_call_expression":
		if root, calls, ok := e.flatten(node); ok && isRouteFacade(root) {
			e.evaluate(node, calls, sc)
			return
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		e.walk(node.NamedChild(i), sc)
	}
}

// flatten unrolls a fluent call chain into the static root and ordered calls.
func (e *routeExtractor) flatten(node *sitter.Node) (string, []chainCall, bool) {
	content := e.pf.Content

	switch node.Type() {
	case "member_call_expression":
		object := node.ChildByFieldName("object")
		if object == nil {
			return "", nil, false
		}
		root, calls, ok := e.flatten(object)
		if !ok {
			return "", nil, false
		}
		return root, append(calls, e.call(node)), true

	case "scoped_call_expression":
		scope := node.ChildByFieldName("scope")
		if scope == nil {
			return "", nil, false
		}
		return scope.Content(content), []chainCall{e.call(node)}, true
	}

	return "", nil, false
}

func (e *routeExtractor) call(node *sitter.Node) chainCall {
	c := chainCall{}
	if name := node.ChildByFieldName("name"); name != nil {
		c.name = name.Content(e.pf.Content)
	}
	if args := node.ChildByFieldName("arguments"); args != nil {
		c.args = argumentValues(args)
	}
	return c
}

// argumentValues returns the expression of each argument node.
func argumentValues(args *sitter.Node) []*sitter.Node {
	var values []*sitter.Node
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() != "argument" {
			continue
		}
		// Named arguments carry a leading name node.
		if n := int(arg.NamedChildCount()); n > 0 {
			values = append(values, arg.NamedChild(n-1))
		}
	}
	return values
}

func isRouteFacade(scope string) bool {
	scope = strings.TrimPrefix(scope, `\`)
	return scope == "Route" || scope == `Illuminate\Support\Facades\Route`
}

// evaluate applies the modifiers of a chain and registers its routes or
// descends into its group.
func (e *routeExtractor) evaluate(node *sitter.Node, calls []chainCall, sc RouteScope) {
	line := int(node.StartPoint().Row) + 1

	var (
		terminal   *chainCall
		name       string
		prefix     string
		middleware []string
		without    []string
		controller string
		only       []string
		except     []string
	)

	for i := range calls {
		c := calls[i]
		switch strings.ToLower(c.name) {
		case "prefix":
			prefix = joinURI(prefix, e.firstString(c.args))
		case "name", "as":
			name += e.firstString(c.args)
		case "middleware":
			middleware = append(middleware, e.stringList(c.args)...)
		case "withoutmiddleware":
			without = append(without, e.stringList(c.args)...)
		case "controller":
			if len(c.args) > 0 {
				controller = e.classRef(c.args[0])
			}
		case "only":
			only = e.stringList(c.args)
		case "except":
			except = e.stringList(c.args)
		case "get", "post", "put", "patch", "delete", "options", "any", "match",
			"view", "redirect", "permanentredirect",
			"resource", "apiresource", "resources", "apiresources", "group":
			if terminal == nil {
				terminal = &calls[i]
			}
		}
	}

	if terminal == nil {
		return
	}

	inner := RouteScope{
		Prefix:     joinURI(sc.Prefix, prefix),
		Name:       sc.Name + name,
		Middleware: removeAll(append(append([]string{}, sc.Middleware...), middleware...), without),
		Controller: sc.Controller,
	}
	if controller != "" {
		inner.Controller = controller
	}

	verb := strings.ToLower(terminal.name)
	switch verb {
	case "group":
		e.group(terminal.args, inner)

	case "resource", "apiresource":
		if len(terminal.args) < 2 {
			return
		}
		e.resource(e.stringValue(terminal.args[0]), e.classRef(terminal.args[1]), verb == "apiresource", only, except, inner, line)

	case "resources", "apiresources":
		if len(terminal.args) == 0 {
			return
		}
		for _, entry := range e.arrayEntries(terminal.args[0]) {
			if entry.key == nil {
				continue
			}
			e.resource(e.stringValue(entry.key), e.classRef(entry.value), verb == "apiresources", nil, nil, inner, line)
		}

	case "view":
		e.add([]string{"GET", "HEAD"}, terminal.args, viewControllerAction, inner, line)

	case "redirect", "permanentredirect":
		e.add(verbMethods["any"], terminal.args, redirectControllerAction, inner, line)

	case "match":
		if len(terminal.args) < 2 {
			return
		}
		var methods []string
		for _, m := range e.stringList(terminal.args[:1]) {
			m = strings.ToUpper(m)
			methods = append(methods, m)
			if m == "GET" && !containsString(methods, "HEAD") {
				methods = append(methods, "HEAD")
			}
		}
		e.add(methods, terminal.args[1:], e.action(terminal.args[2:], inner), inner, line)

	default:
		e.add(verbMethods[verb], terminal.args, e.action(terminal.args[1:], inner), inner, line)
	}
}

// add registers one route whose first argument is the URI.
func (e *routeExtractor) add(methods []string, args []*sitter.Node, action string, sc RouteScope, line int) {
	if len(args) == 0 {
		return
	}
	e.routes = append(e.routes, PHPRoute{
		Methods:    methods,
		URI:        joinURI(sc.Prefix, e.stringValue(args[0])),
		Name:       nameOrEmpty(sc.Name),
		Action:     action,
		Middleware: sc.Middleware,
		Line:       line,
	})
}

// nameOrEmpty drops group name prefixes that were never completed by ->name().
func nameOrEmpty(name string) string {
	if strings.HasSuffix(name, ".") {
		return ""
	}
	return name
}

// action resolves the handler argument of a verb registration.
func (e *routeExtractor) action(args []*sitter.Node, sc RouteScope) string {
	if len(args) == 0 {
		return inlineAction
	}

	arg := args[0]
	switch arg.Type() {
	case "array_creation_expression":
		entries := e.arrayEntries(arg)
		switch len(entries) {
		case 0:
			return inlineAction
		case 1:
			return e.classRef(entries[0].value)
		default:
			return e.classRef(entries[0].value) + "@" + e.stringValue(entries[1].value)
		}

	case "class_constant_access_expression":
		return e.classRef(arg)

	case "string", "encapsed_string":
		s := e.stringValue(arg)
		if sc.Controller != "" && !strings.Contains(s, "@") {
			return sc.Controller + "@" + s
		}
		return strings.TrimPrefix(s, `\`)
	}

	return inlineAction
}

// group descends into the closure of a group registration.
func (e *routeExtractor) group(args []*sitter.Node, sc RouteScope) {
	for _, arg := range args {
		switch arg.Type() {
		case "array_creation_expression":
			sc = e.applyAttributes(arg, sc)
		case "anonymous_function", "anonymous_function_creation_expression", "arrow_function":
			if body := arg.ChildByFieldName("body"); body != nil {
				e.walk(body, sc)
			} else {
				e.walk(arg, sc)
			}
		}
	}
}

// applyAttributes applies Route::group([...]) attributes to a scope.
func (e *routeExtractor) applyAttributes(arr *sitter.Node, sc RouteScope) RouteScope {
	for _, entry := range e.arrayEntries(arr) {
		if entry.key == nil {
			continue
		}
		switch e.stringValue(entry.key) {
		case "prefix":
			sc.Prefix = joinURI(sc.Prefix, e.stringValue(entry.value))
		case "as":
			sc.Name += e.stringValue(entry.value)
		case "middleware":
			sc.Middleware = append(append([]string{}, sc.Middleware...), e.stringList([]*sitter.Node{entry.value})...)
		case "controller":
			sc.Controller = e.classRef(entry.value)
		}
	}
	return sc
}

// resource expands a resource registration into its member routes.
func (e *routeExtractor) resource(name, controller string, api bool, only, except []string, sc RouteScope, line int) {
	if name == "" || controller == "" {
		return
	}

	base := resourceBase(name)
	param := resourceParameter(name)
	routeName := sc.Name + name

	for _, ra := range resourceActions {
		if api && (ra.name == "create" || ra.name == "edit") {
			continue
		}
		if len(only) > 0 && !containsString(only, ra.name) {
			continue
		}
		if containsString(except, ra.name) {
			continue
		}

		uri := base
		if ra.member {
			uri += "/{" + param + "}"
		}
		uri += ra.suffix

		e.routes = append(e.routes, PHPRoute{
			Methods:    ra.methods,
			URI:        joinURI(sc.Prefix, uri),
			Name:       routeName + "." + ra.name,
			Action:     controller + "@" + ra.name,
			Middleware: sc.Middleware,
			Line:       line,
		})
	}
}

// resourceBase builds the collection URI of a possibly nested resource:
// "photos.comments" becomes "photos/{photo}/comments".
func resourceBase(name string) string {
	segments := strings.Split(name, ".")
	var parts []string
	for i, seg := range segments {
		parts = append(parts, seg)
		if i < len(segments)-1 {
			parts = append(parts, "{"+Singular(seg)+"}")
		}
	}
	return strings.Join(parts, "/")
}

// resourceParameter is the member parameter name of a resource.
func resourceParameter(name string) string {
	segments := strings.Split(name, ".")
	last := segments[len(segments)-1]
	if idx := strings.LastIndex(last, "/"); idx != -1 {
		last = last[idx+1:]
	}
	return strings.ReplaceAll(Singular(last), "-", "_")
}

// Singular returns a naive English singular of a plural resource name.
func Singular(word string) string {
	lower := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lower, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(lower, "sses"), strings.HasSuffix(lower, "xes"),
		strings.HasSuffix(lower, "ches"), strings.HasSuffix(lower, "shes"):
		return word[:len(word)-2]
	case strings.HasSuffix(lower, "ss"):
		return word
	case strings.HasSuffix(lower, "s") && len(word) > 1:
		return word[:len(word)-1]
	}
	return word
}

// arrayEntry is one element of a PHP array literal.
type arrayEntry struct {
	key   *sitter.Node
	value *sitter.Node
}

func (e *routeExtractor) arrayEntries(arr *sitter.Node) []arrayEntry {
	var entries []arrayEntry
	if arr == nil || arr.Type() != "array_creation_expression" {
		return entries
	}
	for i := 0; i < int(arr.NamedChildCount()); i++ {
		el := arr.NamedChild(i)
		if el.Type() != "array_element_initializer" {
			continue
		}
		switch int(el.NamedChildCount()) {
		case 1:
			entries = append(entries, arrayEntry{value: el.NamedChild(0)})
		case 2:
			entries = append(entries, arrayEntry{key: el.NamedChild(0), value: el.NamedChild(1)})
		}
	}
	return entries
}

// stringValue returns the literal value of a string node.
func (e *routeExtractor) stringValue(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return trimQuotes(node.Content(e.pf.Content))
}

func (e *routeExtractor) firstString(args []*sitter.Node) string {
	if len(args) == 0 {
		return ""
	}
	return e.stringValue(args[0])
}

// stringList flattens string and array-of-string arguments.
func (e *routeExtractor) stringList(args []*sitter.Node) []string {
	var out []string
	for _, arg := range args {
		if arg.Type() == "array_creation_expression" {
			for _, entry := range e.arrayEntries(arg) {
				out = append(out, e.stringValue(entry.value))
			}
			continue
		}
		out = append(out, e.stringValue(arg))
	}
	return out
}

// classRef resolves Foo::class or a class-name string to a FQCN.
func (e *routeExtractor) classRef(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	text := strings.TrimSpace(node.Content(e.pf.Content))
	if strings.HasSuffix(text, "::class") {
		return e.pf.ResolveName(strings.TrimSuffix(text, "::class"))
	}
	return strings.TrimPrefix(trimQuotes(text), `\`)
}

// joinURI joins URI segments with single slashes, without a leading slash.
func joinURI(prefix, path string) string {
	prefix = strings.Trim(prefix, "/")
	path = strings.Trim(path, "/")
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	}
	return prefix + "/" + path
}

func removeAll(list, drop []string) []string {
	if len(drop) == 0 {
		return list
	}
	out := list[:0]
	for _, item := range list {
		if !containsString(drop, item) {
			out = append(out, item)
		}
	}
	return out
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
