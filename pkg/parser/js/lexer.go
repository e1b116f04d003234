package js

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gojslint/pkg/ast"
)

// tokenPrivate is used for `#name` class members.
const tokenPrivate ast.TokenType = "PrivateIdentifier"

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	keywords = map[string]bool{
		"break": true, "case": true, "catch": true, "class": true, "const": true,
		"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
		"else": true, "export": true, "extends": true, "finally": true, "for": true,
		"function": true, "if": true, "import": true, "in": true, "instanceof": true,
		"new": true, "return": true, "super": true, "switch": true, "this": true,
		"throw": true, "try": true, "typeof": true, "var": true, "void": true,
		"while": true, "with": true,
	}

	// Sorted longest first so the scanner takes the longest match.
	punctuators = []string{
		">>>=", "...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
		"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--", "+=", "-=",
		"*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>", "**",
		"{", "}", "(", ")", "[", "]", ";", ",", "<", ">", "+", "-", "*", "/", "%",
		"&", "|", "^", "!", "~", "?", ":", "=", ".", "@",
	}
)

// lexed is a token plus whether a line terminator precedes it.
type lexed struct {
	ast.Token
	newlineBefore bool
}

type lexer struct {
	src      string
	pos      int
	tokens   []lexed
	comments []ast.Token
	newline  bool
}

// tokenize splits src into tokens and comments.
func tokenize(src string) ([]lexed, []ast.Token, error) {
	lx := &lexer{src: src}
	if err := lx.run(); err != nil {
		return nil, nil, err
	}
	return lx.tokens, lx.comments, nil
}

func (lx *lexer) fail(offset int, msg string) error {
	pos := ast.NewSource(lx.src).Position(offset)
	return &ast.ParseError{Message: msg, Offset: offset, Line: pos.Line, Column: pos.Column}
}

func (lx *lexer) run() error {
	if strings.HasPrefix(lx.src, "#!") {
		end := strings.IndexAny(lx.src, "\r\n")
		if end < 0 {
			end = len(lx.src)
		}
		lx.pos = end
	}

	for {
		if err := lx.skipTrivia(); err != nil {
			return err
		}
		if lx.pos >= len(lx.src) {
			return nil
		}
		tok, err := lx.next()
		if err != nil {
			return err
		}
		lx.tokens = append(lx.tokens, lexed{Token: tok, newlineBefore: lx.newline})
		lx.newline = false
	}
}

func (lx *lexer) skipTrivia() error {
	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		switch {
		case ch == '\n' || ch == '\r':
			lx.newline = true
			lx.pos++
		case ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f':
			lx.pos++
		case ch == '/' && lx.peek(1) == '/':
			start := lx.pos
			end := strings.IndexAny(lx.src[start:], "\r\n")
			if end < 0 {
				end = len(lx.src) - start
			}
			lx.pos = start + end
			lx.comments = append(lx.comments, ast.Token{
				Type: ast.CommentLine, Value: lx.src[start+2 : lx.pos], Start: start, End: lx.pos,
			})
		case ch == '/' && lx.peek(1) == '*':
			start := lx.pos
			end := strings.Index(lx.src[start+2:], "*/")
			if end < 0 {
				return lx.fail(start, "Unterminated comment")
			}
			lx.pos = start + 2 + end + 2
			value := lx.src[start+2 : lx.pos-2]
			if strings.ContainsAny(value, "\r\n") {
				lx.newline = true
			}
			lx.comments = append(lx.comments, ast.Token{
				Type: ast.CommentBlock, Value: value, Start: start, End: lx.pos,
			})
		case ch >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
			switch {
			case r == '\u2028' || r == '\u2029':
				lx.newline = true
			case unicode.IsSpace(r) || r == '\uFEFF':
			default:
				return nil
			}
			lx.pos += size
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) peek(ahead int) byte {
	if lx.pos+ahead < len(lx.src) {
		return lx.src[lx.pos+ahead]
	}
	return 0
}

func (lx *lexer) next() (ast.Token, error) {
	start := lx.pos
	ch := lx.src[start]

	switch {
	case isIdentStart(lx.src, start):
		name := lx.scanIdent()
		return ast.Token{Type: identType(name), Value: name, Start: start, End: lx.pos}, nil
	case ch == '#' && lx.pos+1 < len(lx.src) && isIdentStart(lx.src, lx.pos+1):
		lx.pos++
		name := lx.scanIdent()
		return ast.Token{Type: tokenPrivate, Value: name, Start: start, End: lx.pos}, nil
	case isDigit(ch) || (ch == '.' && isDigit(lx.peek(1))):
		return lx.scanNumber()
	case ch == '"' || ch == '\'':
		return lx.scanString(ch)
	case ch == '`':
		return lx.scanTemplate()
	case ch == '/' && lx.regexAllowed():
		return lx.scanRegExp()
	}

	for _, punct := range punctuators {
		if strings.HasPrefix(lx.src[start:], punct) {
			// `?.5` is a conditional followed by a number.
			if punct == "?." && isDigit(lx.peek(2)) {
				continue
			}
			lx.pos += len(punct)
			return ast.Token{Type: ast.TokenPunctuator, Value: punct, Start: start, End: lx.pos}, nil
		}
	}

	return ast.Token{}, lx.fail(start, "Unexpected character '"+string(rune(ch))+"'")
}

func identType(name string) ast.TokenType {
	switch {
	case name == "null":
		return ast.TokenNull
	case name == "true" || name == "false":
		return ast.TokenBoolean
	case keywords[name]:
		return ast.TokenKeyword
	default:
		return ast.TokenIdentifier
	}
}

// regexAllowed decides whether a slash starts a regular expression based on
// the previous significant token.
func (lx *lexer) regexAllowed() bool {
	if len(lx.tokens) == 0 {
		return true
	}
	prev := lx.tokens[len(lx.tokens)-1]
	switch prev.Type {
	case ast.TokenPunctuator:
		return prev.Value != ")" && prev.Value != "]" && prev.Value != "}"
	case ast.TokenKeyword:
		return prev.Value != "this" && prev.Value != "super"
	default:
		return false
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(src string, pos int) bool {
	ch := src[pos]
	if ch == '$' || ch == '_' || (ch|0x20 >= 'a' && ch|0x20 <= 'z') || ch == '\\' {
		return true
	}
	if ch >= utf8.RuneSelf {
		r, _ := utf8.DecodeRuneInString(src[pos:])
		return unicode.IsLetter(r)
	}
	return false
}

func isIdentPart(src string, pos int) (bool, int) {
	ch := src[pos]
	if ch == '$' || ch == '_' || isDigit(ch) || (ch|0x20 >= 'a' && ch|0x20 <= 'z') {
		return true, 1
	}
	if ch >= utf8.RuneSelf {
		r, size := utf8.DecodeRuneInString(src[pos:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) ||
			unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r) || r == '\u200c' || r == '\u200d' {
			return true, size
		}
	}
	return false, 0
}

func (lx *lexer) scanIdent() string {
	start := lx.pos
	for lx.pos < len(lx.src) {
		if lx.src[lx.pos] == '\\' && lx.peek(1) == 'u' {
			lx.pos += 2
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '}' && isHexOrBrace(lx.src[lx.pos]) {
				lx.pos++
				if lx.pos-start > 12 {
					break
				}
			}
			if lx.pos < len(lx.src) && lx.src[lx.pos] == '}' {
				lx.pos++
			}
			continue
		}
		ok, size := isIdentPart(lx.src, lx.pos)
		if !ok {
			break
		}
		lx.pos += size
	}
	return lx.src[start:lx.pos]
}

func isHexOrBrace(ch byte) bool {
	return isDigit(ch) || (ch|0x20 >= 'a' && ch|0x20 <= 'f') || ch == '{'
}

func (lx *lexer) scanNumber() (ast.Token, error) {
	start := lx.pos
	if lx.src[start] == '0' && strings.ContainsRune("xXoObB", rune(lx.peek(1))) {
		lx.pos += 2
		for lx.pos < len(lx.src) && (isHexOrBrace(lx.src[lx.pos]) && lx.src[lx.pos] != '{' || lx.src[lx.pos] == '_') {
			lx.pos++
		}
	} else {
		lx.digits()
		if lx.pos < len(lx.src) && lx.src[lx.pos] == '.' {
			lx.pos++
			lx.digits()
		}
		if lx.pos < len(lx.src) && (lx.src[lx.pos] == 'e' || lx.src[lx.pos] == 'E') {
			lx.pos++
			if lx.pos < len(lx.src) && (lx.src[lx.pos] == '+' || lx.src[lx.pos] == '-') {
				lx.pos++
			}
			lx.digits()
		}
	}
	if lx.pos < len(lx.src) && lx.src[lx.pos] == 'n' {
		lx.pos++
	}
	if lx.pos < len(lx.src) && isIdentStart(lx.src, lx.pos) {
		return ast.Token{}, lx.fail(lx.pos, "Identifier directly after number")
	}
	return ast.Token{Type: ast.TokenNumeric, Value: lx.src[start:lx.pos], Start: start, End: lx.pos}, nil
}

func (lx *lexer) digits() {
	for lx.pos < len(lx.src) && (isDigit(lx.src[lx.pos]) || lx.src[lx.pos] == '_') {
		lx.pos++
	}
}

func (lx *lexer) scanString(quote byte) (ast.Token, error) {
	start := lx.pos
	lx.pos++
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case quote:
			lx.pos++
			return ast.Token{Type: ast.TokenString, Value: lx.src[start:lx.pos], Start: start, End: lx.pos}, nil
		case '\\':
			lx.pos += 2
			if lx.pos <= len(lx.src) && lx.src[lx.pos-1] == '\r' && lx.pos < len(lx.src) && lx.src[lx.pos] == '\n' {
				lx.pos++
			}
		case '\n', '\r':
			return ast.Token{}, lx.fail(start, "Unterminated string constant")
		default:
			lx.pos++
		}
	}
	return ast.Token{}, lx.fail(start, "Unterminated string constant")
}

// scanTemplate reads a whole template literal, including any substitutions,
// as one token.
func (lx *lexer) scanTemplate() (ast.Token, error) {
	start := lx.pos
	lx.pos++
	if err := lx.skipTemplateBody(start); err != nil {
		return ast.Token{}, err
	}
	return ast.Token{Type: ast.TokenTemplate, Value: lx.src[start:lx.pos], Start: start, End: lx.pos}, nil
}

func (lx *lexer) skipTemplateBody(start int) error {
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '`':
			lx.pos++
			return nil
		case '\\':
			lx.pos += 2
		case '$':
			if lx.peek(1) != '{' {
				lx.pos++
				continue
			}
			lx.pos += 2
			if err := lx.skipSubstitution(start); err != nil {
				return err
			}
		default:
			lx.pos++
		}
	}
	return lx.fail(start, "Unterminated template")
}

func (lx *lexer) skipSubstitution(start int) error {
	depth := 1
	for lx.pos < len(lx.src) {
		switch ch := lx.src[lx.pos]; ch {
		case '{':
			depth++
			lx.pos++
		case '}':
			depth--
			lx.pos++
			if depth == 0 {
				return nil
			}
		case '"', '\'':
			if _, err := lx.scanString(ch); err != nil {
				return err
			}
		case '`':
			lx.pos++
			if err := lx.skipTemplateBody(lx.pos - 1); err != nil {
				return err
			}
		default:
			lx.pos++
		}
	}
	return lx.fail(start, "Unterminated template")
}

func (lx *lexer) scanRegExp() (ast.Token, error) {
	start := lx.pos
	lx.pos++
	inClass := false
	for {
		if lx.pos >= len(lx.src) || lx.src[lx.pos] == '\n' || lx.src[lx.pos] == '\r' {
			return ast.Token{}, lx.fail(start, "Unterminated regular expression")
		}
		ch := lx.src[lx.pos]
		lx.pos++
		switch {
		case ch == '\\':
			lx.pos++
		case ch == '[':
			inClass = true
		case ch == ']':
			inClass = false
		case ch == '/' && !inClass:
			for lx.pos < len(lx.src) {
				ok, size := isIdentPart(lx.src, lx.pos)
				if !ok {
					break
				}
				lx.pos += size
			}
			return ast.Token{Type: ast.TokenRegExp, Value: lx.src[start:lx.pos], Start: start, End: lx.pos}, nil
		}
	}
}
