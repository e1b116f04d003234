package fix

import (
	"cmp"
	"slices"
)

// Candidate is a fix competing for application in one pass.
type Candidate struct {
	Fix Fix

	// RuleOrder is the registration index of the rule that proposed the fix.
	RuleOrder int

	// Seq is the report order within the pass, used as the last tie-break.
	Seq int
}

// Sort orders candidates by start, then end, then rule registration order,
// then report order.
func Sort(cands []Candidate) {
	slices.SortStableFunc(cands, func(a, b Candidate) int {
		return cmp.Or(
			cmp.Compare(a.Fix.Start, b.Fix.Start),
			cmp.Compare(a.Fix.End, b.Fix.End),
			cmp.Compare(a.RuleOrder, b.RuleOrder),
			cmp.Compare(a.Seq, b.Seq),
		)
	})
}

// Select sorts the candidates and greedily accepts, left to right, every
// candidate that starts at or after the end of the last accepted one, so
// touching fixes land in the same pass.
// The returned slices share no elements; skipped candidates stay eligible on
// a later pass.
func Select(cands []Candidate) ([]Candidate, []Candidate) {
	if len(cands) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(cands)
	Sort(sorted)

	accepted := make([]Candidate, 0, len(sorted))
	var skipped []Candidate
	lastEnd := 0
	for _, cand := range sorted {
		if cand.Fix.Start >= lastEnd {
			accepted = append(accepted, cand)
			lastEnd = cand.Fix.End
			continue
		}
		skipped = append(skipped, cand)
	}
	return accepted, skipped
}

// Fixes extracts the fixes from candidates, preserving order.
func Fixes(cands []Candidate) []Fix {
	out := make([]Fix, len(cands))
	for idx, cand := range cands {
		out[idx] = cand.Fix
	}
	return out
}
