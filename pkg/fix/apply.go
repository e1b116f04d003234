package fix

import "strings"

// Apply applies sorted, mutually non-overlapping fixes to text in a single
// batch: the result is the unedited spans of text interleaved with the
// replacement texts in range order.
func Apply(text string, fixes []Fix) string {
	if len(fixes) == 0 {
		return text
	}

	delta := 0
	for _, f := range fixes {
		delta += len(f.Text) - f.Len()
	}

	var out strings.Builder
	out.Grow(len(text) + delta)

	cursor := 0
	for _, f := range fixes {
		out.WriteString(text[cursor:f.Start])
		out.WriteString(f.Text)
		cursor = f.End
	}
	out.WriteString(text[cursor:])

	return out.String()
}
