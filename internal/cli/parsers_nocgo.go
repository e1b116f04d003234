//go:build !cgo

package cli

import "github.com/yaklabco/gojslint/pkg/lint"

// cgoParsers is empty when built with CGO_ENABLED=0; the tree-sitter parser
// is unavailable.
func cgoParsers() []lint.Parser {
	return nil
}
