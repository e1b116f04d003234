package lint

import (
	"cmp"
	"slices"
	"sort"
	"strings"

	"github.com/yaklabco/gojslint/pkg/ast"
)

// SourceCode is the read-only view of one parsed text handed to rules.
type SourceCode struct {
	*ast.Source

	Program *ast.Program
	// Ast is the Program root node.
	Ast *ast.Node

	all []ast.Token
}

// NewSourceCode wraps a parsed program and its text.
func NewSourceCode(text string, prog *ast.Program) *SourceCode {
	sc := &SourceCode{Source: ast.NewSource(text), Program: prog}
	if prog != nil {
		sc.Ast = prog.Root
	}
	return sc
}

// GetText returns the text of sp, or the whole text when sp is nil.
func (sc *SourceCode) GetText(sp ast.Spanner) string {
	if sp == nil {
		return sc.Text()
	}
	return sc.Slice(sp.Span())
}

// Comments returns every comment in source order.
func (sc *SourceCode) Comments() []ast.Token {
	if sc.Program == nil {
		return nil
	}
	return sc.Program.Comments
}

func (sc *SourceCode) tokens(includeComments bool) []ast.Token {
	if sc.Program == nil {
		return nil
	}
	if !includeComments {
		return sc.Program.Tokens
	}
	if sc.all == nil {
		sc.all = make([]ast.Token, 0, len(sc.Program.Tokens)+len(sc.Program.Comments))
		sc.all = append(sc.all, sc.Program.Tokens...)
		sc.all = append(sc.all, sc.Program.Comments...)
		slices.SortFunc(sc.all, func(a, b ast.Token) int { return cmp.Compare(a.Start, b.Start) })
	}
	return sc.all
}

// firstAtOrAfter returns the index of the first token starting at or after
// offset.
func firstAtOrAfter(toks []ast.Token, offset int) int {
	return sort.Search(len(toks), func(i int) bool { return toks[i].Start >= offset })
}

// GetTokens returns the tokens inside sp, comments excluded.
func (sc *SourceCode) GetTokens(sp ast.Spanner) []ast.Token {
	rng := sp.Span()
	toks := sc.tokens(false)
	from := firstAtOrAfter(toks, rng.Start)
	to := from
	for to < len(toks) && toks[to].End <= rng.End {
		to++
	}
	return toks[from:to]
}

// GetFirstToken returns the first token of sp.
func (sc *SourceCode) GetFirstToken(sp ast.Spanner) (ast.Token, bool) {
	toks := sc.GetTokens(sp)
	if len(toks) == 0 {
		return ast.Token{}, false
	}
	return toks[0], true
}

// GetLastToken returns the last token of sp.
func (sc *SourceCode) GetLastToken(sp ast.Spanner) (ast.Token, bool) {
	toks := sc.GetTokens(sp)
	if len(toks) == 0 {
		return ast.Token{}, false
	}
	return toks[len(toks)-1], true
}

// GetTokenBefore returns the token ending at or before the start of sp.
func (sc *SourceCode) GetTokenBefore(sp ast.Spanner, includeComments bool) (ast.Token, bool) {
	toks := sc.tokens(includeComments)
	idx := firstAtOrAfter(toks, sp.Span().Start) - 1
	for idx >= 0 && toks[idx].End > sp.Span().Start {
		idx--
	}
	if idx < 0 {
		return ast.Token{}, false
	}
	return toks[idx], true
}

// GetTokenAfter returns the token starting at or after the end of sp.
func (sc *SourceCode) GetTokenAfter(sp ast.Spanner, includeComments bool) (ast.Token, bool) {
	toks := sc.tokens(includeComments)
	idx := firstAtOrAfter(toks, sp.Span().End)
	if idx >= len(toks) {
		return ast.Token{}, false
	}
	return toks[idx], true
}

// GetTokensBetween returns the tokens strictly between a and b.
func (sc *SourceCode) GetTokensBetween(a, b ast.Spanner, includeComments bool) []ast.Token {
	toks := sc.tokens(includeComments)
	from := firstAtOrAfter(toks, a.Span().End)
	to := from
	for to < len(toks) && toks[to].End <= b.Span().Start {
		to++
	}
	return toks[from:to]
}

// CommentsExistBetween reports whether a comment lies between a and b.
func (sc *SourceCode) CommentsExistBetween(a, b ast.Spanner) bool {
	comments := sc.Comments()
	idx := firstAtOrAfter(comments, a.Span().End)
	return idx < len(comments) && comments[idx].End <= b.Span().Start
}

// GetCommentsInside returns the comments within sp.
func (sc *SourceCode) GetCommentsInside(sp ast.Spanner) []ast.Token {
	comments := sc.Comments()
	rng := sp.Span()
	from := firstAtOrAfter(comments, rng.Start)
	to := from
	for to < len(comments) && comments[to].End <= rng.End {
		to++
	}
	return comments[from:to]
}

// IsSpaceBetween reports whether whitespace separates a and b.
func (sc *SourceCode) IsSpaceBetween(a, b ast.Spanner) bool {
	between := sc.Slice(ast.Range{Start: a.Span().End, End: b.Span().Start})
	return strings.ContainsAny(between, " \t\r\n\v\f")
}

// SameLine reports whether a ends on the line b starts on.
func (sc *SourceCode) SameLine(a, b ast.Spanner) bool {
	return sc.Position(a.Span().End).Line == sc.Position(b.Span().Start).Line
}
