package lint

import (
	"github.com/yaklabco/gojslint/pkg/ast"
)

// ParserOptions are passed through to the parser and exposed to rules.
type ParserOptions struct {
	EcmaVersion  int
	SourceType   string
	EcmaFeatures map[string]bool
}

// Feature reports whether the named ecmaFeature is enabled.
func (o ParserOptions) Feature(name string) bool {
	return o.EcmaFeatures[name]
}

// Parser turns source text into a Program.
//
// The lint package defines this interface in the consumer package;
// implementations live under pkg/parser.
//
// Implementations must be:
//   - deterministic for a given (text, options) pair,
//   - safe for concurrent use,
//   - side-effect free.
//
// Syntax errors are reported as *ast.ParseError so the Linter can turn them
// into a fatal problem with a position.
type Parser interface {
	Name() string
	Parse(text string, opts ParserOptions) (*ast.Program, error)
}
