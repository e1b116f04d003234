//go:build cgo

package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/parser/js"
)

// atomicTokens are grammar nodes that have inner structure in tree-sitter
// but are single tokens in ESTree.
//
//nolint:gochecknoglobals // Read-only lookup table.
var atomicTokens = map[string]ast.TokenType{
	"string":          ast.TokenString,
	"template_string": ast.TokenTemplate,
	"regex":           ast.TokenRegExp,
	"number":          ast.TokenNumeric,
	"true":            ast.TokenBoolean,
	"false":           ast.TokenBoolean,
	"null":            ast.TokenNull,
}

type converter struct {
	src      []byte
	tokens   []ast.Token
	comments []ast.Token

	// chained marks member and call nodes inside an unfinished optional
	// chain.
	chained map[*ast.Node]bool
}

func (c *converter) text(node *sitter.Node) string {
	return string(c.src[node.StartByte():node.EndByte()])
}

// collectTokens walks the leaves in document order and splits them into
// tokens and comments.
func (c *converter) collectTokens(node *sitter.Node) {
	typ := node.Type()
	start, end := int(node.StartByte()), int(node.EndByte())

	switch {
	case typ == "comment":
		c.comments = append(c.comments, commentToken(c.text(node), start, end))
		return
	case typ == "hash_bang_line":
		return
	}
	if tokType, ok := atomicTokens[typ]; ok {
		c.tokens = append(c.tokens, ast.Token{Type: tokType, Value: c.text(node), Start: start, End: end})
		return
	}

	if node.ChildCount() == 0 {
		if end > start {
			value := c.text(node)
			c.tokens = append(c.tokens, ast.Token{Type: leafType(value), Value: value, Start: start, End: end})
		}
		return
	}
	for idx := range int(node.ChildCount()) {
		c.collectTokens(node.Child(idx))
	}
}

func commentToken(text string, start, end int) ast.Token {
	if len(text) >= 2 && text[:2] == "/*" {
		value := text[2:]
		if len(value) >= 2 {
			value = value[:len(value)-2]
		}
		return ast.Token{Type: ast.CommentBlock, Value: value, Start: start, End: end}
	}
	return ast.Token{Type: ast.CommentLine, Value: text[min(2, len(text)):], Start: start, End: end}
}

// leafType classifies a leaf the way the built-in lexer would.
func leafType(value string) ast.TokenType {
	if js.IsKeyword(value) {
		return ast.TokenKeyword
	}
	if isWord(value) {
		return ast.TokenIdentifier
	}
	return ast.TokenPunctuator
}

func isWord(value string) bool {
	if value == "" {
		return false
	}
	for idx := range len(value) {
		ch := value[idx]
		word := ch == '_' || ch == '$' || ch == '#' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' ||
			ch >= '0' && ch <= '9' || ch >= 0x80
		if !word {
			return false
		}
	}
	return true
}
