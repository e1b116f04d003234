// Package fix provides the text edits proposed by rules and the selection and
// application logic of the autofix engine.
package fix

import "fmt"

// Fix is a single proposed replacement of the bytes [Start, End) with Text.
// An insertion has Start == End.
type Fix struct {
	Start int
	End   int
	Text  string
}

// Len returns the number of bytes replaced.
func (f Fix) Len() int {
	return f.End - f.Start
}

// String renders the fix for logs and test failures.
func (f Fix) String() string {
	return fmt.Sprintf("[%d:%d]%q", f.Start, f.End, f.Text)
}

// ValidationError describes a fix that cannot be applied.
type ValidationError struct {
	Fix     Fix
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fix [%d:%d]: %s", e.Fix.Start, e.Fix.End, e.Message)
}

// Validate checks that f lies within text of length textLen.
func Validate(f Fix, textLen int) error {
	switch {
	case f.Start < 0:
		return &ValidationError{Fix: f, Message: "start offset is negative"}
	case f.End < f.Start:
		return &ValidationError{Fix: f, Message: "end offset is before start offset"}
	case f.End > textLen:
		return &ValidationError{Fix: f, Message: fmt.Sprintf("end offset %d exceeds text length %d", f.End, textLen)}
	}
	return nil
}

// OrderError describes an edit sequence that is not strictly ascending.
type OrderError struct {
	Prev Fix
	Next Fix
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("edits out of order or overlapping: %s then %s", e.Prev, e.Next)
}

// Merge combines an ordered edit sequence into one fix spanning from the first
// edit's start to the last edit's end. Text between edits is copied from the
// original. Each edit must start at or after the previous edit's end, and two
// edits may not both sit at the same empty position. Every edit must lie
// within text.
func Merge(text string, edits []Fix) (Fix, error) {
	if len(edits) == 0 {
		return Fix{}, &ValidationError{Message: "empty edit sequence"}
	}
	for idx, edit := range edits {
		if err := Validate(edit, len(text)); err != nil {
			return Fix{}, err
		}
		if idx == 0 {
			continue
		}
		prev := edits[idx-1]
		if edit.Start < prev.End || edit.End <= prev.Start {
			return Fix{}, &OrderError{Prev: prev, Next: edit}
		}
	}
	if len(edits) == 1 {
		return edits[0], nil
	}

	merged := Fix{Start: edits[0].Start, End: edits[len(edits)-1].End}
	cursor := merged.Start
	var buf []byte
	for _, edit := range edits {
		buf = append(buf, text[cursor:edit.Start]...)
		buf = append(buf, edit.Text...)
		cursor = edit.End
	}
	merged.Text = string(buf)
	return merged, nil
}
