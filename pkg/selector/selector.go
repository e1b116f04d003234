// Package selector implements the subset of the ESQuery selector language
// used by rule listeners, such as
// "CallExpression > MemberExpression.callee[property.name='then']".
//
// Supported: node types and "*", attribute tests ([a], =, !=, <, >, <=, >=,
// regular expressions and type(...)), field selectors (.callee), the four
// combinators (descendant, >, ~, +), :not, :matches/:is, :has,
// :first-child, :last-child, :nth-child, :nth-last-child, the node classes
// :statement, :expression, :declaration, :function and :pattern, and
// selector lists.
package selector

import (
	"cmp"
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yaklabco/gojslint/pkg/ast"
)

// cacheSize bounds the number of compiled selectors kept across lint runs.
const cacheSize = 512

//nolint:gochecknoglobals // Process-wide compile cache; selectors are immutable.
var cache, _ = lru.New[string, *Selector](cacheSize)

// Specificity orders selectors: more attribute-like parts first, then more
// type identifiers.
type Specificity struct {
	Attributes  int
	Identifiers int
}

// Compare returns -1, 0 or 1 comparing s with other.
func (s Specificity) Compare(other Specificity) int {
	return cmp.Or(
		cmp.Compare(s.Attributes, other.Attributes),
		cmp.Compare(s.Identifiers, other.Identifiers),
	)
}

// Selector is a compiled selector. It is immutable and safe for concurrent
// use.
type Selector struct {
	source      string
	root        matcher
	specificity Specificity
	types       []string
}

// Compile parses src, reusing a cached result for previously seen sources.
func Compile(src string) (*Selector, error) {
	if sel, ok := cache.Get(src); ok {
		return sel, nil
	}
	sel, err := Parse(src)
	if err != nil {
		return nil, err
	}
	cache.Add(src, sel)
	return sel, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Selector {
	sel, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return sel
}

// Parse parses src without consulting the cache.
func Parse(src string) (*Selector, error) {
	p := &parser{src: src}
	root, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", src, err)
	}

	sel := &Selector{
		source: src,
		root:   root,
		specificity: Specificity{
			Attributes:  countAttributes(root),
			Identifiers: countIdentifiers(root),
		},
	}
	if types := possibleTypes(root); types != nil {
		slices.Sort(types)
		sel.types = slices.Compact(types)
	}
	return sel, nil
}

// String returns the selector source.
func (s *Selector) String() string {
	return s.source
}

// Specificity returns the selector's specificity.
func (s *Selector) Specificity() Specificity {
	return s.specificity
}

// Types returns the node types the selector can match, sorted, or nil when
// it can match any type.
func (s *Selector) Types() []string {
	return s.types
}

// Match reports whether node matches. Relationships are resolved through
// node parent links.
func (s *Selector) Match(node *ast.Node) bool {
	return node != nil && s.root.match(node)
}
