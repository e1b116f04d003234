// Package lint provides the rule engine of gojslint: rule descriptors and the
// registry, the per-rule context, the traversal dispatcher, inline
// suppressions and the multi-pass autofix loop driven by Linter.
package lint

import (
	"github.com/yaklabco/gojslint/pkg/ast"
)

// ProblemType classifies what a rule checks.
type ProblemType string

const (
	TypeProblem    ProblemType = "problem"
	TypeSuggestion ProblemType = "suggestion"
	TypeLayout     ProblemType = "layout"
)

// Fixable values for Meta.Fixable.
const (
	FixableCode       = "code"
	FixableWhitespace = "whitespace"
)

// Docs is the documentation block of a rule.
type Docs struct {
	Description string
	Category    string
	Recommended bool
	URL         string
}

// Meta describes a rule.
type Meta struct {
	Type ProblemType
	Docs Docs

	// Fixable is "", FixableCode or FixableWhitespace. Rules with an empty
	// value cannot attach fixes.
	Fixable string

	// Schema validates the rule options. A nil Schema accepts any options.
	Schema Schema

	// Messages maps message ids to templates with {{name}} placeholders.
	Messages map[string]string

	Deprecated bool
}

// Listener is called for each node a listener key matches.
type Listener func(node *ast.Node)

// Listeners maps listener keys to callbacks. A key is a node type or a
// selector, optionally suffixed with ":exit" to run after the children.
type Listeners map[string]Listener

// Rule defines the interface all lint rules implement.
//
// Create is called once per rule per file per pass. Rules keep per-pass
// state in the closure it returns rather than on the rule value, which is
// shared by every file.
type Rule interface {
	// ID returns the unique identifier (e.g. "func-names").
	ID() string

	// Meta returns the rule descriptor.
	Meta() *Meta

	// Create returns the listeners for one traversal.
	Create(ctx *Context) Listeners
}
