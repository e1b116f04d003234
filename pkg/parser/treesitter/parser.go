//go:build cgo

// Package treesitter provides a lint.Parser backed by the tree-sitter
// JavaScript grammar.
//
// The concrete syntax tree is converted to the ESTree shape produced by
// pkg/parser/js, so rules behave the same with either parser. Statements and
// expressions that the built-in rules and the scope analyzer care about are
// converted field by field. Any other grammar node becomes an opaque node
// named after its grammar type whose named children are kept under
// "children", so traversal still reaches everything below it.
//
// The grammar is compiled with cgo.
package treesitter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/parser/js"
)

// Parser is a tree-sitter backed lint.Parser. The zero value is ready to
// use and safe for concurrent use; each Parse call owns its own
// tree-sitter parser.
type Parser struct{}

// New returns a tree-sitter JavaScript parser.
func New() *Parser {
	return &Parser{}
}

// Name implements lint.Parser.
func (*Parser) Name() string {
	return "tree-sitter"
}

// Parse implements lint.Parser.
func (p *Parser) Parse(text string, opts lint.ParserOptions) (*ast.Program, error) {
	return p.ParseContext(context.Background(), text, opts)
}

// ParseContext parses text, aborting when ctx is canceled.
func (*Parser) ParseContext(ctx context.Context, text string, opts lint.ParserOptions) (*ast.Program, error) {
	src := []byte(text)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root, text)
	}

	sourceType := opts.SourceType
	if sourceType == "" {
		sourceType = js.SourceScript
	}

	conv := &converter{src: src}
	conv.collectTokens(root)
	program := conv.program(root, len(text), sourceType)

	return &ast.Program{Root: program, Tokens: conv.tokens, Comments: conv.comments}, nil
}

// syntaxError reports the first ERROR or MISSING node in document order.
func syntaxError(root *sitter.Node, text string) *ast.ParseError {
	bad := firstError(root)
	if bad == nil {
		bad = root
	}

	offset := int(bad.StartByte())
	msg := "Unexpected token"
	switch {
	case bad.IsMissing():
		msg = fmt.Sprintf("Missing %s", bad.Type())
	case bad.EndByte() > bad.StartByte() && int(bad.EndByte()) <= len(text):
		snippet := text[offset:bad.EndByte()]
		if len(snippet) > 20 {
			snippet = snippet[:20]
		}
		msg = fmt.Sprintf("Unexpected token %s", snippet)
	}

	pos := ast.NewSource(text).Position(offset)
	return &ast.ParseError{Message: msg, Offset: offset, Line: pos.Line, Column: pos.Column}
}

func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for idx := range int(node.ChildCount()) {
		if found := firstError(node.Child(idx)); found != nil {
			return found
		}
	}
	return nil
}
