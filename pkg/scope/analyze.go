package scope

import (
	"slices"

	"github.com/yaklabco/gojslint/pkg/ast"
)

// Options configure analysis.
type Options struct {
	// Globals maps configured global names to whether they are writable.
	Globals map[string]bool
	// SourceType is "script" or "module".
	SourceType string
	// GlobalReturn wraps the program in a function scope, as CommonJS does.
	GlobalReturn bool
}

// Manager holds the scopes of one syntax tree.
type Manager struct {
	global   *Scope
	scopes   []*Scope
	byBlock  map[*ast.Node][]*Scope
	declared map[*ast.Node][]*Variable
}

// Global returns the global scope.
func (m *Manager) Global() *Scope {
	return m.global
}

// Scopes returns every scope in creation order.
func (m *Manager) Scopes() []*Scope {
	return m.scopes
}

// Acquire returns the innermost scope whose block is node, or nil.
func (m *Manager) Acquire(node *ast.Node) *Scope {
	scopes := m.byBlock[node]
	if len(scopes) == 0 {
		return nil
	}
	return scopes[len(scopes)-1]
}

// Innermost returns the scope that contains node. For a Program node it is
// the global scope; a function-expression-name scope is never returned.
func (m *Manager) Innermost(node *ast.Node) *Scope {
	for current := node; current != nil; current = current.Parent {
		scopes := m.byBlock[current]
		if len(scopes) == 0 {
			continue
		}
		if current.Type == "Program" {
			return scopes[0]
		}
		return scopes[len(scopes)-1]
	}
	return m.global
}

// DeclaredVariables returns the variables node declares. For a named
// function expression the name comes first, then the parameters.
func (m *Manager) DeclaredVariables(node *ast.Node) []*Variable {
	return m.declared[node]
}

// Analyze builds the scopes of the tree rooted at root.
func Analyze(root *ast.Node, opts Options) *Manager {
	a := &analyzer{
		mgr: &Manager{
			byBlock:  map[*ast.Node][]*Scope{},
			declared: map[*ast.Node][]*Variable{},
		},
	}

	global := a.push(TypeGlobal, root)
	a.mgr.global = global
	names := make([]string, 0, len(opts.Globals))
	for name := range opts.Globals {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		global.declare(name, Def{}).Writable = opts.Globals[name]
	}

	switch {
	case opts.SourceType == "module":
		a.push(TypeModule, root)
	case opts.GlobalReturn:
		a.push(TypeFunction, root)
	}

	if root != nil {
		for _, stmt := range root.List("body") {
			a.visit(stmt)
		}
	}
	a.resolve()
	return a.mgr
}

type analyzer struct {
	mgr     *Manager
	current *Scope
	refs    []*Reference
}

func (a *analyzer) push(typ Type, block *ast.Node) *Scope {
	s := newScope(typ, block, a.current)
	a.current = s
	a.mgr.scopes = append(a.mgr.scopes, s)
	a.mgr.byBlock[block] = append(a.mgr.byBlock[block], s)
	return s
}

func (a *analyzer) pop() {
	a.current = a.current.Upper
}

func (a *analyzer) reference(id *ast.Node, read, write bool) {
	ref := &Reference{Identifier: id, From: a.current, Read: read, Write: write}
	a.current.References = append(a.current.References, ref)
	a.refs = append(a.refs, ref)
}

func (a *analyzer) define(s *Scope, node *ast.Node, id *ast.Node, typ DefType) {
	v := s.declare(id.Str("name"), Def{Type: typ, Name: id, Node: node})
	if !slices.Contains(a.mgr.declared[node], v) {
		a.mgr.declared[node] = append(a.mgr.declared[node], v)
	}
}

// resolve binds every reference to the nearest declaration, recording
// unresolved ones in the Through list of each scope they pass.
func (a *analyzer) resolve() {
	for _, ref := range a.refs {
		name := ref.Identifier.Str("name")
		for s := ref.From; s != nil; s = s.Upper {
			if v := s.set[name]; v != nil {
				ref.Resolved = v
				v.References = append(v.References, ref)
				break
			}
			s.Through = append(s.Through, ref)
		}
	}
}

func (a *analyzer) visit(node *ast.Node) {
	if node == nil {
		return
	}

	switch node.Type {
	case "Identifier":
		if isReference(node) {
			a.reference(node, true, false)
		}
	case "FunctionDeclaration":
		if id := node.Child("id"); id != nil {
			a.define(a.current, node, id, DefFunctionName)
		}
		a.visitFunction(node)
	case "FunctionExpression", "ArrowFunctionExpression":
		a.visitFunction(node)
	case "ClassDeclaration", "ClassExpression":
		a.visitClass(node)
	case "VariableDeclaration":
		a.visitVariableDeclaration(node)
	case "BlockStatement", "StaticBlock":
		a.push(TypeBlock, node)
		a.visitList(node.List("body"))
		a.pop()
	case "ForStatement", "ForInStatement", "ForOfStatement":
		a.visitFor(node)
	case "SwitchStatement":
		a.visit(node.Child("discriminant"))
		a.push(TypeSwitch, node)
		a.visitList(node.List("cases"))
		a.pop()
	case "CatchClause":
		a.push(TypeCatch, node)
		if param := node.Child("param"); param != nil {
			a.declarePattern(param, func(id *ast.Node) {
				a.define(a.current, node, id, DefCatchClause)
			})
		}
		a.visit(node.Child("body"))
		a.pop()
	case "ImportDeclaration":
		for _, spec := range node.List("specifiers") {
			if local := spec.Child("local"); local != nil {
				a.define(a.current.variableScope(), node, local, DefImportBinding)
				a.mgr.declared[spec] = append(a.mgr.declared[spec], a.current.variableScope().Lookup(local.Str("name")))
			}
		}
	case "ExportNamedDeclaration":
		a.visit(node.Child("declaration"))
		if node.Child("source") == nil {
			for _, spec := range node.List("specifiers") {
				if local := spec.Child("local"); local.Is("Identifier") {
					a.reference(local, true, false)
				}
			}
		}
	case "ExportAllDeclaration":
	case "AssignmentExpression":
		compound := node.Str("operator") != "="
		a.visitTarget(node.Child("left"), compound)
		a.visit(node.Child("right"))
	case "UpdateExpression":
		if arg := node.Child("argument"); arg.Is("Identifier") {
			a.reference(arg, true, true)
		} else {
			a.visit(arg)
		}
	default:
		a.visitList(node.Children())
	}
}

func (a *analyzer) visitList(nodes []*ast.Node) {
	for _, n := range nodes {
		a.visit(n)
	}
}

func (a *analyzer) visitFunction(node *ast.Node) {
	if node.Type == "FunctionExpression" {
		if id := node.Child("id"); id != nil {
			a.push(TypeFunctionExpressionName, node)
			a.define(a.current, node, id, DefFunctionName)
			defer a.pop()
		}
	}

	a.push(TypeFunction, node)
	defer a.pop()

	for _, param := range node.List("params") {
		a.declarePattern(param, func(id *ast.Node) {
			a.define(a.current, node, id, DefParameter)
		})
	}

	body := node.Child("body")
	if body.Is("BlockStatement") {
		a.visitList(body.List("body"))
		return
	}
	a.visit(body)
}

func (a *analyzer) visitClass(node *ast.Node) {
	id := node.Child("id")
	if node.Type == "ClassDeclaration" && id != nil {
		a.define(a.current, node, id, DefClassName)
	}
	a.visit(node.Child("superClass"))

	a.push(TypeClass, node)
	defer a.pop()
	if id != nil {
		a.current.declare(id.Str("name"), Def{Type: DefClassName, Name: id, Node: node})
	}
	for _, member := range node.Child("body").List("body") {
		if member.Bool("computed") {
			a.visit(member.Child("key"))
		}
		switch member.Type {
		case "MethodDefinition", "PropertyDefinition":
			a.visit(member.Child("value"))
		default:
			a.visit(member)
		}
	}
}

func (a *analyzer) visitVariableDeclaration(node *ast.Node) {
	target := a.current
	if node.Str("kind") == "var" {
		target = a.current.variableScope()
	}
	for _, decl := range node.List("declarations") {
		hasInit := decl.Child("init") != nil
		a.declarePattern(decl.Child("id"), func(id *ast.Node) {
			a.define(target, decl, id, DefVariable)
			a.mgr.declared[node] = append(a.mgr.declared[node], target.Lookup(id.Str("name")))
			if hasInit {
				a.reference(id, false, true)
			}
		})
		a.visit(decl.Child("init"))
	}
}

func (a *analyzer) visitFor(node *ast.Node) {
	head := node.Child("init")
	if node.Type != "ForStatement" {
		head = node.Child("left")
	}
	lexical := head.Is("VariableDeclaration") && head.Str("kind") != "var"
	if lexical {
		a.push(TypeFor, node)
		defer a.pop()
	}

	if node.Type == "ForStatement" {
		a.visit(head)
		a.visit(node.Child("test"))
		a.visit(node.Child("update"))
		a.visit(node.Child("body"))
		return
	}

	a.visit(node.Child("right"))
	if head.Is("VariableDeclaration") {
		target := a.current
		if !lexical {
			target = a.current.variableScope()
		}
		for _, decl := range head.List("declarations") {
			a.declarePattern(decl.Child("id"), func(id *ast.Node) {
				a.define(target, decl, id, DefVariable)
				a.mgr.declared[head] = append(a.mgr.declared[head], target.Lookup(id.Str("name")))
				a.reference(id, false, true)
			})
		}
	} else {
		a.visitTarget(head, false)
	}
	a.visit(node.Child("body"))
}

// declarePattern calls declare for each bound identifier in a binding
// pattern and visits default values and computed keys as expressions.
func (a *analyzer) declarePattern(pattern *ast.Node, declare func(id *ast.Node)) {
	if pattern == nil {
		return
	}
	switch pattern.Type {
	case "Identifier":
		declare(pattern)
	case "AssignmentPattern":
		a.declarePattern(pattern.Child("left"), declare)
		a.visit(pattern.Child("right"))
	case "ArrayPattern":
		for _, el := range pattern.List("elements") {
			a.declarePattern(el, declare)
		}
	case "ObjectPattern":
		for _, prop := range pattern.List("properties") {
			if prop.Type == "RestElement" {
				a.declarePattern(prop.Child("argument"), declare)
				continue
			}
			if prop.Bool("computed") {
				a.visit(prop.Child("key"))
			}
			a.declarePattern(prop.Child("value"), declare)
		}
	case "RestElement":
		a.declarePattern(pattern.Child("argument"), declare)
	default:
		a.visit(pattern)
	}
}

// visitTarget records write references for an assignment target.
func (a *analyzer) visitTarget(target *ast.Node, read bool) {
	if target == nil {
		return
	}
	switch target.Type {
	case "Identifier":
		a.reference(target, read, true)
	case "AssignmentPattern":
		a.visitTarget(target.Child("left"), false)
		a.visit(target.Child("right"))
	case "ArrayPattern":
		for _, el := range target.List("elements") {
			a.visitTarget(el, false)
		}
	case "ObjectPattern":
		for _, prop := range target.List("properties") {
			if prop.Type == "RestElement" {
				a.visitTarget(prop.Child("argument"), false)
				continue
			}
			if prop.Bool("computed") {
				a.visit(prop.Child("key"))
			}
			a.visitTarget(prop.Child("value"), false)
		}
	case "RestElement":
		a.visitTarget(target.Child("argument"), false)
	default:
		a.visit(target)
	}
}

// isReference reports whether an Identifier reached by the generic walk
// names a variable rather than a property, key or label.
func isReference(id *ast.Node) bool {
	parent := id.Parent
	if parent == nil {
		return true
	}
	field := id.Field()
	switch parent.Type {
	case "MemberExpression":
		return field != "property" || parent.Bool("computed")
	case "Property", "MethodDefinition", "PropertyDefinition":
		return field != "key" || parent.Bool("computed")
	case "LabeledStatement", "BreakStatement", "ContinueStatement", "MetaProperty":
		return false
	case "ExportSpecifier", "ImportSpecifier", "ExportAllDeclaration":
		return false
	}
	return true
}
