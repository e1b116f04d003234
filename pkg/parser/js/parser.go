// Package js implements a JavaScript parser that produces ESTree-shaped
// syntax trees for the lint engine.
//
// The parser covers the ECMAScript 2022 statement and expression grammar used
// by everyday code (modules, classes, destructuring, async functions,
// optional chaining). Template literals are kept as single opaque nodes and
// JSX is not supported.
package js

import (
	"fmt"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// Source types.
const (
	SourceScript = "script"
	SourceModule = "module"
)

// Parser is the default lint.Parser implementation.
type Parser struct{}

// New returns a JavaScript parser.
func New() *Parser {
	return &Parser{}
}

// Name implements lint.Parser.
func (*Parser) Name() string {
	return "js"
}

// Parse implements lint.Parser.
func (*Parser) Parse(text string, opts lint.ParserOptions) (*ast.Program, error) {
	return Parse(text, opts.SourceType)
}

// Parse parses text as a script or module.
func Parse(text, sourceType string) (prog *ast.Program, err error) {
	if sourceType == "" {
		sourceType = SourceScript
	}

	toks, comments, err := tokenize(text)
	if err != nil {
		return nil, err
	}

	p := &parser{src: text, toks: toks, sourceType: sourceType}
	defer func() {
		if r := recover(); r != nil {
			bail, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, bail.err
		}
	}()

	root := p.parseProgram()

	tokens := make([]ast.Token, len(toks))
	for idx, tok := range toks {
		tokens[idx] = tok.Token
		if tok.Type == tokenPrivate {
			tokens[idx].Type = ast.TokenIdentifier
		}
	}

	return &ast.Program{Root: root, Tokens: tokens, Comments: comments}, nil
}

// bailout carries a parse error out of the recursive descent.
type bailout struct {
	err *ast.ParseError
}

type parser struct {
	src        string
	toks       []lexed
	idx        int
	lastEnd    int
	sourceType string

	inFunction  bool
	inAsync     bool
	inGenerator bool
	noIn        bool
}

func (p *parser) cur() lexed {
	return p.peekAt(0)
}

func (p *parser) peekAt(ahead int) lexed {
	if p.idx+ahead < len(p.toks) {
		return p.toks[p.idx+ahead]
	}
	return lexed{Token: ast.Token{Type: "EOF", Start: len(p.src), End: len(p.src)}}
}

func (p *parser) atEOF() bool {
	return p.idx >= len(p.toks)
}

func (p *parser) next() lexed {
	tok := p.cur()
	if !p.atEOF() {
		p.idx++
		p.lastEnd = tok.End
	}
	return tok
}

// is reports whether the current token is the punctuator or keyword value.
func (p *parser) is(value string) bool {
	return p.cur().Is(value)
}

func (p *parser) isIdent(name string) bool {
	tok := p.cur()
	return tok.Type == ast.TokenIdentifier && tok.Value == name
}

func (p *parser) peekIs(ahead int, values ...string) bool {
	tok := p.peekAt(ahead)
	for _, value := range values {
		if tok.Is(value) {
			return true
		}
	}
	return false
}

func (p *parser) eat(value string) bool {
	if p.is(value) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(value string) lexed {
	if !p.is(value) {
		p.unexpected()
	}
	return p.next()
}

func (p *parser) expectContextual(name string) {
	if !p.isIdent(name) {
		p.unexpected()
	}
	p.next()
}

func (p *parser) unexpected() {
	tok := p.cur()
	if tok.Type == "EOF" {
		p.failAt(tok.Start, "Unexpected end of input")
	}
	p.failAt(tok.Start, fmt.Sprintf("Unexpected token %s", tok.Value))
}

func (p *parser) failAt(offset int, msg string) {
	pos := ast.NewSource(p.src).Position(offset)
	panic(bailout{err: &ast.ParseError{Message: msg, Offset: offset, Line: pos.Line, Column: pos.Column}})
}

// node builds a node spanning from start to the end of the last consumed token.
func (p *parser) node(typ string, start int) *ast.Node {
	return ast.NewNode(typ, start, p.lastEnd)
}

func (p *parser) consumeSemicolon() {
	if p.eat(";") {
		return
	}
	if p.is("}") || p.atEOF() || p.cur().newlineBefore {
		return
	}
	p.unexpected()
}

// canInsertSemicolon reports whether a restricted production ends here.
func (p *parser) canInsertSemicolon() bool {
	return p.atEOF() || p.is(";") || p.is("}") || p.cur().newlineBefore
}

func (p *parser) parseProgram() *ast.Node {
	var body []*ast.Node
	for !p.atEOF() {
		body = append(body, p.parseStatement())
	}
	return ast.NewNode("Program", 0, len(p.src)).
		SetList("body", body).
		SetAttr("sourceType", p.sourceType)
}

func (p *parser) parseIdentifier() *ast.Node {
	tok := p.cur()
	if tok.Type != ast.TokenIdentifier {
		p.unexpected()
	}
	p.next()
	return p.node("Identifier", tok.Start).SetAttr("name", tok.Value)
}

// parseName accepts any identifier-like token, including reserved words, as
// used after a dot or in property keys.
func (p *parser) parseName() *ast.Node {
	tok := p.cur()
	switch tok.Type {
	case ast.TokenIdentifier, ast.TokenKeyword, ast.TokenNull, ast.TokenBoolean:
		p.next()
		return p.node("Identifier", tok.Start).SetAttr("name", tok.Value)
	case tokenPrivate:
		p.next()
		return p.node("PrivateIdentifier", tok.Start).SetAttr("name", tok.Value)
	default:
		p.unexpected()
		return nil
	}
}

// matchingParen returns the index of the token closing the bracket at idx,
// or -1.
func (p *parser) matchingParen(idx int) int {
	depth := 0
	for ; idx < len(p.toks); idx++ {
		tok := p.toks[idx]
		if tok.Type != ast.TokenPunctuator {
			continue
		}
		switch tok.Value {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
			if depth == 0 {
				return idx
			}
		}
	}
	return -1
}
