//go:build cgo

package cli

import (
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/parser/treesitter"
)

// cgoParsers returns the parsers that need cgo.
func cgoParsers() []lint.Parser {
	return []lint.Parser{treesitter.New()}
}
