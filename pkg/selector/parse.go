package selector

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var errUnexpectedEnd = errors.New("unexpected end of selector")

type parser struct {
	src string
	pos int
}

func (p *parser) parse() (matcher, error) {
	sel, err := p.parseList()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	return sel, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *parser) skipSpace() bool {
	start := p.pos
	for p.pos < len(p.src) && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
	return p.pos > start
}

func (p *parser) eat(c byte) bool {
	if p.peek() == c {
		p.pos++
		return true
	}
	return false
}

// parseList parses "a, b, c". A single entry is returned unwrapped.
func (p *parser) parseList() (matcher, error) {
	var sels []matcher
	for {
		p.skipSpace()
		sel, err := p.parseComplex()
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
		p.skipSpace()
		if !p.eat(',') {
			break
		}
	}
	if len(sels) == 1 {
		return sels[0], nil
	}
	return &anyOf{sels: sels}, nil
}

// parseComplex parses compounds joined by combinators, left-associative.
func (p *parser) parseComplex() (matcher, error) {
	left, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	for {
		save := p.pos
		spaced := p.skipSpace()
		var kind combinatorKind
		switch c := p.peek(); {
		case c == '>':
			kind = combChild
		case c == '~':
			kind = combSibling
		case c == '+':
			kind = combAdjacent
		case spaced && c != 0 && c != ',' && c != ')':
			kind = combDescendant
		default:
			p.pos = save
			return left, nil
		}
		if kind != combDescendant {
			p.pos++
			p.skipSpace()
		}
		right, err := p.parseCompound()
		if err != nil {
			return nil, err
		}
		left = &combinator{kind: kind, left: left, right: right}
	}
}

func (p *parser) parseCompound() (matcher, error) {
	var parts []matcher
	switch c := p.peek(); {
	case c == '*':
		p.pos++
		parts = append(parts, wildcard{})
	case isNameStart(c):
		parts = append(parts, &identifier{name: p.parseName()})
	}

	for {
		switch p.peek() {
		case '[':
			attr, err := p.parseAttribute()
			if err != nil {
				return nil, err
			}
			parts = append(parts, attr)
		case '.':
			p.pos++
			path := p.parsePath()
			if path == "" {
				return nil, p.errorf("expected field name")
			}
			parts = append(parts, &field{path: strings.Split(path, ".")})
		case ':':
			pseudo, err := p.parsePseudo()
			if err != nil {
				return nil, err
			}
			parts = append(parts, pseudo)
		default:
			switch len(parts) {
			case 0:
				if p.pos >= len(p.src) {
					return nil, errUnexpectedEnd
				}
				return nil, p.errorf("unexpected %q", p.src[p.pos])
			case 1:
				return parts[0], nil
			default:
				return &compound{parts: parts}, nil
			}
		}
	}
}

func isNameStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9') || c == '-'
}

func (p *parser) parseName() string {
	start := p.pos
	for p.pos < len(p.src) && isNameChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) parsePath() string {
	start := p.pos
	for p.pos < len(p.src) && (isNameChar(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) parseAttribute() (matcher, error) {
	p.pos++ // [
	p.skipSpace()
	path := p.parsePath()
	if path == "" {
		return nil, p.errorf("expected attribute name")
	}
	attr := &attribute{path: path}
	p.skipSpace()

	if p.eat(']') {
		attr.op = opExists
		return attr, nil
	}

	switch {
	case strings.HasPrefix(p.src[p.pos:], "!="):
		attr.op, p.pos = opNotEqual, p.pos+2
	case strings.HasPrefix(p.src[p.pos:], "<="):
		attr.op, p.pos = opLessEqual, p.pos+2
	case strings.HasPrefix(p.src[p.pos:], ">="):
		attr.op, p.pos = opGreaterEqual, p.pos+2
	case p.eat('='):
		attr.op = opEqual
	case p.eat('<'):
		attr.op = opLess
	case p.eat('>'):
		attr.op = opGreater
	default:
		return nil, p.errorf("expected attribute operator")
	}
	p.skipSpace()

	if err := p.parseValue(attr); err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eat(']') {
		return nil, p.errorf("expected ]")
	}
	return attr, nil
}

func (p *parser) parseValue(attr *attribute) error {
	switch c := p.peek(); {
	case c == '"' || c == '\'':
		s, err := p.parseString(c)
		if err != nil {
			return err
		}
		attr.kind, attr.literal = valueLiteral, s
	case c == '/':
		if attr.op != opEqual && attr.op != opNotEqual {
			return p.errorf("regular expressions need = or !=")
		}
		re, err := p.parseRegExp()
		if err != nil {
			return err
		}
		attr.kind, attr.re = valueRegExp, re
	case strings.HasPrefix(p.src[p.pos:], "type("):
		p.pos += len("type(")
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] != ')' {
			p.pos++
		}
		if !p.eat(')') {
			return errUnexpectedEnd
		}
		attr.kind, attr.literal = valueType, strings.TrimSpace(p.src[start:p.pos-1])
	case c == '-' || (c >= '0' && c <= '9'):
		start := p.pos
		p.pos++
		for p.pos < len(p.src) && strings.IndexByte("0123456789.eE+-", p.src[p.pos]) >= 0 {
			p.pos++
		}
		num, err := strconv.ParseFloat(p.src[start:p.pos], 64)
		if err != nil {
			return p.errorf("bad number %q", p.src[start:p.pos])
		}
		attr.kind, attr.number, attr.literal = valueNumber, num, p.src[start:p.pos]
	case isNameStart(c):
		attr.kind, attr.literal = valueLiteral, p.parsePath()
	default:
		if c == 0 {
			return errUnexpectedEnd
		}
		return p.errorf("unexpected %q in attribute value", c)
	}

	if attr.kind != valueNumber && attr.op >= opLess {
		return p.errorf("relational operators need a number")
	}
	return nil
}

func (p *parser) parseString(quote byte) (string, error) {
	p.pos++
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\' && p.pos+1 < len(p.src):
			b.WriteByte(p.src[p.pos+1])
			p.pos += 2
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", errUnexpectedEnd
}

func (p *parser) parseRegExp() (*regexp.Regexp, error) {
	p.pos++
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '/' {
		if p.src[p.pos] == '\\' {
			p.pos++
		}
		p.pos++
	}
	if p.pos >= len(p.src) {
		return nil, errUnexpectedEnd
	}
	pattern := p.src[start:p.pos]
	p.pos++

	var flags string
	for p.pos < len(p.src) && strings.IndexByte("imsu", p.src[p.pos]) >= 0 {
		if p.src[p.pos] != 'u' {
			flags += string(p.src[p.pos])
		}
		p.pos++
	}
	if flags != "" {
		pattern = "(?" + flags + ")" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, p.errorf("bad regular expression: %v", err)
	}
	return re, nil
}

func (p *parser) parsePseudo() (matcher, error) {
	p.pos++ // :
	name := strings.ToLower(p.parseName())

	switch name {
	case "first-child":
		return &nthChild{n: 1}, nil
	case "last-child":
		return &nthChild{n: 1, fromEnd: true}, nil
	case "statement", "expression", "declaration", "function", "pattern":
		return &class{name: name}, nil
	case "not", "matches", "is", "has":
		if !p.eat('(') {
			return nil, p.errorf("expected ( after :%s", name)
		}
		inner, err := p.parseList()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.eat(')') {
			return nil, p.errorf("expected )")
		}
		sels := []matcher{inner}
		if list, ok := inner.(*anyOf); ok {
			sels = list.sels
		}
		switch name {
		case "not":
			return &not{sels: sels}, nil
		case "has":
			return &has{sels: sels}, nil
		default:
			return &anyOf{sels: sels}, nil
		}
	case "nth-child", "nth-last-child":
		if !p.eat('(') {
			return nil, p.errorf("expected ( after :%s", name)
		}
		p.skipSpace()
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
		n, err := strconv.Atoi(p.src[start:p.pos])
		if err != nil || n < 1 {
			return nil, p.errorf("expected a positive index")
		}
		p.skipSpace()
		if !p.eat(')') {
			return nil, p.errorf("expected )")
		}
		return &nthChild{n: n, fromEnd: name == "nth-last-child"}, nil
	default:
		return nil, p.errorf("unknown pseudo-class :%s", name)
	}
}
