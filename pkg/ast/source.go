package ast

import (
	"sort"
	"strings"
)

// Source is immutable source text with a derived line index.
type Source struct {
	text       string
	lineStarts []int
}

// NewSource builds the line index for text. Both LF and CRLF endings are
// recognised; a lone CR also terminates a line.
func NewSource(text string) *Source {
	starts := []int{0}
	for idx := 0; idx < len(text); idx++ {
		switch text[idx] {
		case '\n':
			starts = append(starts, idx+1)
		case '\r':
			if idx+1 < len(text) && text[idx+1] == '\n' {
				idx++
			}
			starts = append(starts, idx+1)
		}
	}
	return &Source{text: text, lineStarts: starts}
}

// Text returns the full source text.
func (s *Source) Text() string {
	return s.text
}

// Len returns the length of the text in bytes.
func (s *Source) Len() int {
	return len(s.text)
}

// LineCount returns the number of lines. Empty text has one empty line.
func (s *Source) LineCount() int {
	return len(s.lineStarts)
}

// Position converts a byte offset into a 1-based line and column.
// Offsets past the end clamp to the position just after the last byte.
func (s *Source) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.text) {
		offset = len(s.text)
	}
	idx := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	return Position{Line: idx + 1, Column: offset - s.lineStarts[idx] + 1}
}

// Location converts a range into start and end positions.
func (s *Source) Location(rng Range) Location {
	return Location{Start: s.Position(rng.Start), End: s.Position(rng.End)}
}

// Offset converts a 1-based position into a byte offset.
// Returns -1 if the line does not exist.
func (s *Source) Offset(pos Position) int {
	if pos.Line < 1 || pos.Line > len(s.lineStarts) {
		return -1
	}
	offset := s.lineStarts[pos.Line-1] + pos.Column - 1
	if offset > len(s.text) {
		return len(s.text)
	}
	return offset
}

// LineStart returns the offset of the first byte of the 1-based line.
// Lines past the end map to len(text).
func (s *Source) LineStart(line int) int {
	switch {
	case line < 1:
		return 0
	case line > len(s.lineStarts):
		return len(s.text)
	default:
		return s.lineStarts[line-1]
	}
}

// Line returns the content of the 1-based line without its terminator.
func (s *Source) Line(line int) string {
	if line < 1 || line > len(s.lineStarts) {
		return ""
	}
	start := s.lineStarts[line-1]
	end := len(s.text)
	if line < len(s.lineStarts) {
		end = s.lineStarts[line]
	}
	return strings.TrimRight(s.text[start:end], "\r\n")
}

// Lines returns every line without terminators.
func (s *Source) Lines() []string {
	lines := make([]string, len(s.lineStarts))
	for idx := range lines {
		lines[idx] = s.Line(idx + 1)
	}
	return lines
}

// Slice returns the text covered by rng, clamped to the source bounds.
func (s *Source) Slice(rng Range) string {
	start, end := max(rng.Start, 0), min(rng.End, len(s.text))
	if start >= end {
		return ""
	}
	return s.text[start:end]
}

// InBounds reports whether rng is a valid range of this text.
func (s *Source) InBounds(rng Range) bool {
	return rng.Start >= 0 && rng.Start <= rng.End && rng.End <= len(s.text)
}
