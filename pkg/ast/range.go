package ast

// Range is a half-open byte range [Start, End) in source text.
type Range struct {
	Start int
	End   int
}

// Span returns the range itself so a Range can be passed wherever a Spanner
// is expected.
func (r Range) Span() Range {
	return r
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if offset lies within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Overlaps returns true if the two ranges share at least one byte.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Clamp limits r to [0, size] and makes sure Start <= End.
func (r Range) Clamp(size int) Range {
	r.Start = min(max(r.Start, 0), size)
	r.End = min(max(r.End, r.Start), size)
	return r
}

// Spanner is anything that occupies a byte range: nodes, tokens, comments.
type Spanner interface {
	Span() Range
}

// Position is a 1-based line and column. Columns count bytes.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has positive values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Location is a start and end position.
type Location struct {
	Start Position
	End   Position
}
