package lint

// BaseRule implements ID and Meta. Embed it in rule implementations and add
// a Create method.
//
// Fields are unexported to avoid name collisions with interface methods.
type BaseRule struct {
	id   string
	meta *Meta
}

// NewBaseRule creates a BaseRule with the given id and descriptor.
func NewBaseRule(id string, meta *Meta) BaseRule {
	if meta == nil {
		meta = &Meta{}
	}
	return BaseRule{id: id, meta: meta}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Meta returns the rule descriptor.
func (r *BaseRule) Meta() *Meta {
	return r.meta
}

// CanFix reports whether the rule may attach fixes.
func (r *BaseRule) CanFix() bool {
	return r.meta.Fixable != ""
}
