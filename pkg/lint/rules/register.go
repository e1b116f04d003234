package rules

import (
	"sync"

	"github.com/yaklabco/gojslint/pkg/lint"
)

// All returns a new instance of every built-in rule in registration order.
// The order is the tie-break for listeners and fixes at the same position.
func All() []lint.Rule {
	return []lint.Rule{
		// Layout
		NewArrayBracketNewlineRule(),

		// Suggestions
		NewFuncNamesRule(),
		NewNoIteratorRule(),
		NewNoUselessComputedKeyRule(),
		NewPreferDestructuringRule(),
		NewPreferAsyncAwaitRule(),
	}
}

//nolint:gochecknoglobals // The built-in registry is immutable and shared.
var defaultRegistry = sync.OnceValue(func() *lint.Registry {
	return lint.MustRegistry(All()...)
})

// Default returns the registry of built-in rules. It is built on first use
// and shared by every caller.
func Default() *lint.Registry {
	return defaultRegistry()
}
