package js

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gojslint/pkg/ast"
)

// NewLiteral builds the Literal node for a numeric, string, null, boolean or
// regular expression token.
func NewLiteral(tok ast.Token) *ast.Node {
	lit := ast.NewNode("Literal", tok.Start, tok.End).SetAttr("raw", tok.Value)
	switch tok.Type {
	case ast.TokenNumeric:
		value, bigint := numericValue(tok.Value)
		if bigint != "" {
			lit.SetAttr("value", nil).SetAttr("bigint", bigint)
		} else {
			lit.SetAttr("value", value)
		}
	case ast.TokenString:
		lit.SetAttr("value", unquote(tok.Value))
	case ast.TokenNull:
		lit.SetAttr("value", nil)
	case ast.TokenBoolean:
		lit.SetAttr("value", tok.Value == "true")
	case ast.TokenRegExp:
		pattern, flags := splitRegExp(tok.Value)
		lit.SetAttr("value", nil).SetAttr("regex", map[string]any{"pattern": pattern, "flags": flags})
	}
	return lit
}

// IsKeyword reports whether name is a reserved word tokenized as a Keyword.
func IsKeyword(name string) bool {
	return keywords[name]
}

// numericValue converts a numeric literal's source text to its value. BigInt
// literals return their digits as the second result instead.
func numericValue(raw string) (float64, string) {
	clean := strings.ReplaceAll(raw, "_", "")
	if strings.HasSuffix(clean, "n") {
		return 0, strings.TrimSuffix(clean, "n")
	}

	if len(clean) > 2 && clean[0] == '0' {
		base := 0
		switch clean[1] | 0x20 {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(clean[2:], base, 64)
			if err != nil {
				return 0, ""
			}
			return float64(n), ""
		}
	}

	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, ""
	}
	return value, ""
}

// unquote decodes a quoted string literal.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body
	}

	var out strings.Builder
	for idx := 0; idx < len(body); idx++ {
		ch := body[idx]
		if ch != '\\' || idx+1 >= len(body) {
			out.WriteByte(ch)
			continue
		}
		idx++
		switch esc := body[idx]; esc {
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'v':
			out.WriteByte('\v')
		case '0':
			out.WriteByte(0)
		case '\r':
			if idx+1 < len(body) && body[idx+1] == '\n' {
				idx++
			}
		case '\n':
		case 'x':
			if r, ok := hexRune(body, idx+1, 2); ok {
				out.WriteRune(r)
				idx += 2
			}
		case 'u':
			if idx+1 < len(body) && body[idx+1] == '{' {
				end := strings.IndexByte(body[idx:], '}')
				if end > 0 {
					if r, ok := hexRune(body, idx+2, end-2); ok {
						out.WriteRune(r)
						idx += end
					}
				}
			} else if r, ok := hexRune(body, idx+1, 4); ok {
				out.WriteRune(r)
				idx += 4
			}
		default:
			out.WriteByte(esc)
		}
	}
	return out.String()
}

func hexRune(s string, start, n int) (rune, bool) {
	if n <= 0 || start+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return utf8.RuneError, err == nil
	}
	return rune(v), true
}

// splitRegExp splits `/pattern/flags` into its parts.
func splitRegExp(raw string) (string, string) {
	end := strings.LastIndexByte(raw, '/')
	if end <= 0 {
		return raw, ""
	}
	return raw[1:end], raw[end+1:]
}
