package lint

import (
	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/fix"
)

// Fixer builds the edits a fix producer returns. Anything with a Span
// (nodes, tokens, comments, ranges) can be the target.
type Fixer struct{}

// InsertTextAfter inserts text after sp.
func (Fixer) InsertTextAfter(sp ast.Spanner, text string) fix.Fix {
	end := sp.Span().End
	return fix.Fix{Start: end, End: end, Text: text}
}

// InsertTextAfterRange inserts text at the end of rng.
func (f Fixer) InsertTextAfterRange(rng ast.Range, text string) fix.Fix {
	return f.InsertTextAfter(rng, text)
}

// InsertTextBefore inserts text before sp.
func (Fixer) InsertTextBefore(sp ast.Spanner, text string) fix.Fix {
	start := sp.Span().Start
	return fix.Fix{Start: start, End: start, Text: text}
}

// InsertTextBeforeRange inserts text at the start of rng.
func (f Fixer) InsertTextBeforeRange(rng ast.Range, text string) fix.Fix {
	return f.InsertTextBefore(rng, text)
}

// ReplaceText replaces the text of sp.
func (Fixer) ReplaceText(sp ast.Spanner, text string) fix.Fix {
	rng := sp.Span()
	return fix.Fix{Start: rng.Start, End: rng.End, Text: text}
}

// ReplaceTextRange replaces the text in rng.
func (f Fixer) ReplaceTextRange(rng ast.Range, text string) fix.Fix {
	return f.ReplaceText(rng, text)
}

// Remove deletes sp.
func (f Fixer) Remove(sp ast.Spanner) fix.Fix {
	return f.ReplaceText(sp, "")
}

// RemoveRange deletes rng.
func (f Fixer) RemoveRange(rng ast.Range) fix.Fix {
	return f.ReplaceText(rng, "")
}
