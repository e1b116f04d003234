package lint

import (
	"fmt"
	"slices"
)

// Registry holds the available rules. It is built once and never mutated,
// so it is safe for concurrent use without locking.
type Registry struct {
	rules []Rule
	byID  map[string]int
}

// NewRegistry creates a registry from rules in registration order. The
// order is the tie-break for listener dispatch and fix selection.
func NewRegistry(rules ...Rule) (*Registry, error) {
	reg := &Registry{
		rules: make([]Rule, 0, len(rules)),
		byID:  make(map[string]int, len(rules)),
	}
	for _, rule := range rules {
		id := rule.ID()
		if id == "" {
			return nil, fmt.Errorf("rule %T has an empty id", rule)
		}
		if _, dup := reg.byID[id]; dup {
			return nil, fmt.Errorf("rule %q registered twice", id)
		}
		reg.byID[id] = len(reg.rules)
		reg.rules = append(reg.rules, rule)
	}
	return reg, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(rules ...Rule) *Registry {
	reg, err := NewRegistry(rules...)
	if err != nil {
		panic(err)
	}
	return reg
}

// Get retrieves a rule by id.
func (r *Registry) Get(id string) (Rule, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return r.rules[idx], true
}

// Has reports whether a rule is registered under id.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// ValidateOptions checks options against the schema of rule id. Unknown
// rules and rules without a schema accept anything.
func (r *Registry) ValidateOptions(id string, options []any) error {
	rule, ok := r.Get(id)
	if !ok {
		return nil
	}
	return CheckOptions(rule.Meta(), options)
}

// Order returns the registration index of id, or -1.
func (r *Registry) Order(id string) int {
	idx, ok := r.byID[id]
	if !ok {
		return -1
	}
	return idx
}

// Rules returns all rules in registration order.
func (r *Registry) Rules() []Rule {
	return slices.Clone(r.rules)
}

// IDs returns all rule ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.rules))
	for _, rule := range r.rules {
		ids = append(ids, rule.ID())
	}
	slices.Sort(ids)
	return ids
}

// Recommended returns the sorted ids of rules marked recommended.
func (r *Registry) Recommended() []string {
	var ids []string
	for _, rule := range r.rules {
		if meta := rule.Meta(); meta != nil && meta.Docs.Recommended {
			ids = append(ids, rule.ID())
		}
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}
