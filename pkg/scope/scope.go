// Package scope builds lexical scopes, variables and references for a syntax
// tree. Rules reach it through the lint context to answer questions such as
// "is this name declared" or "which variables does this node declare".
package scope

import (
	"github.com/yaklabco/gojslint/pkg/ast"
)

// Type names a kind of scope.
type Type string

// Scope types.
const (
	TypeGlobal                 Type = "global"
	TypeModule                 Type = "module"
	TypeFunction               Type = "function"
	TypeFunctionExpressionName Type = "function-expression-name"
	TypeBlock                  Type = "block"
	TypeCatch                  Type = "catch"
	TypeClass                  Type = "class"
	TypeFor                    Type = "for"
	TypeSwitch                 Type = "switch"
)

// DefType names the kind of declaration that created a variable.
type DefType string

// Definition types.
const (
	DefVariable      DefType = "Variable"
	DefFunctionName  DefType = "FunctionName"
	DefParameter     DefType = "Parameter"
	DefClassName     DefType = "ClassName"
	DefCatchClause   DefType = "CatchClause"
	DefImportBinding DefType = "ImportBinding"
)

// Def is one declaration of a variable.
type Def struct {
	Type DefType
	// Name is the declaring Identifier.
	Name *ast.Node
	// Node is the declaring construct (declarator, function, class, ...).
	Node *ast.Node
}

// Variable is a named binding in a scope. Variables created from
// configured globals have no Defs.
type Variable struct {
	Name       string
	Scope      *Scope
	Defs       []Def
	References []*Reference
	// Writable is false for read-only configured globals.
	Writable bool
}

// Reference is one use of a name.
type Reference struct {
	Identifier *ast.Node
	From       *Scope
	Read       bool
	Write      bool
	// Resolved is the variable the name binds to, or nil for an unresolved
	// global.
	Resolved *Variable
}

// Scope is a lexical scope.
type Scope struct {
	Type        Type
	Block       *ast.Node
	Upper       *Scope
	ChildScopes []*Scope
	Variables   []*Variable
	References  []*Reference
	// Through holds references made in this scope or its children that did
	// not resolve here.
	Through []*Reference

	set map[string]*Variable
}

func newScope(typ Type, block *ast.Node, upper *Scope) *Scope {
	s := &Scope{Type: typ, Block: block, Upper: upper, set: map[string]*Variable{}}
	if upper != nil {
		upper.ChildScopes = append(upper.ChildScopes, s)
	}
	return s
}

// Lookup returns the variable declared directly in s under name.
func (s *Scope) Lookup(name string) *Variable {
	return s.set[name]
}

// Resolve returns the variable name binds to from s, walking outwards.
func (s *Scope) Resolve(name string) *Variable {
	for current := s; current != nil; current = current.Upper {
		if v := current.set[name]; v != nil {
			return v
		}
	}
	return nil
}

// IsVariableScope reports whether var declarations hoist to s.
func (s *Scope) IsVariableScope() bool {
	switch s.Type {
	case TypeGlobal, TypeModule, TypeFunction:
		return true
	}
	return false
}

// variableScope returns the nearest scope var declarations hoist to.
func (s *Scope) variableScope() *Scope {
	current := s
	for !current.IsVariableScope() {
		current = current.Upper
	}
	return current
}

func (s *Scope) declare(name string, def Def) *Variable {
	v := s.set[name]
	if v == nil {
		v = &Variable{Name: name, Scope: s, Writable: true}
		s.set[name] = v
		s.Variables = append(s.Variables, v)
	}
	if def.Name != nil {
		v.Defs = append(v.Defs, def)
	}
	return v
}
