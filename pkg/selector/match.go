package selector

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/gojslint/pkg/ast"
)

type matcher interface {
	match(n *ast.Node) bool
}

type wildcard struct{}

func (wildcard) match(*ast.Node) bool { return true }

type identifier struct {
	name string
}

func (m *identifier) match(n *ast.Node) bool { return n.Type == m.name }

type compound struct {
	parts []matcher
}

func (m *compound) match(n *ast.Node) bool {
	for _, part := range m.parts {
		if !part.match(n) {
			return false
		}
	}
	return true
}

type anyOf struct {
	sels []matcher
}

func (m *anyOf) match(n *ast.Node) bool {
	for _, sel := range m.sels {
		if sel.match(n) {
			return true
		}
	}
	return false
}

type not struct {
	sels []matcher
}

func (m *not) match(n *ast.Node) bool {
	for _, sel := range m.sels {
		if sel.match(n) {
			return false
		}
	}
	return true
}

// has matches when any strict descendant matches.
type has struct {
	sels []matcher
}

func (m *has) match(n *ast.Node) bool {
	found := false
	for _, child := range n.Children() {
		ast.Walk(child, func(d *ast.Node) bool {
			if found {
				return false
			}
			for _, sel := range m.sels {
				if sel.match(d) {
					found = true
					return false
				}
			}
			return true
		}, nil)
		if found {
			return true
		}
	}
	return false
}

// field matches a node stored under the given property path of an ancestor,
// so ".callee" matches the callee of any call and ".value.body" the body of a
// property's value.
type field struct {
	path []string
}

func (m *field) match(n *ast.Node) bool {
	current := n
	for idx := len(m.path) - 1; idx >= 0; idx-- {
		if current == nil || current.Field() != m.path[idx] {
			return false
		}
		current = current.Parent
	}
	return true
}

type nthChild struct {
	n       int
	fromEnd bool
}

func (m *nthChild) match(n *ast.Node) bool {
	if n.Parent == nil {
		return false
	}
	list := n.Parent.List(n.Field())
	if list == nil {
		return false
	}
	for idx, child := range list {
		if child != n {
			continue
		}
		if m.fromEnd {
			return len(list)-idx == m.n
		}
		return idx+1 == m.n
	}
	return false
}

type class struct {
	name string
}

func (m *class) match(n *ast.Node) bool {
	switch m.name {
	case "statement":
		if strings.HasSuffix(n.Type, "Statement") {
			return true
		}
		fallthrough
	case "declaration":
		return strings.HasSuffix(n.Type, "Declaration")
	case "pattern":
		if strings.HasSuffix(n.Type, "Pattern") {
			return true
		}
		fallthrough
	case "expression":
		return strings.HasSuffix(n.Type, "Expression") || strings.HasSuffix(n.Type, "Literal") ||
			(n.Type == "Identifier" && n.Parent != nil && !strings.HasSuffix(n.Parent.Type, "MetaProperty"))
	case "function":
		return n.Is("FunctionDeclaration", "FunctionExpression", "ArrowFunctionExpression")
	}
	return false
}

type combinatorKind int

const (
	combDescendant combinatorKind = iota
	combChild
	combSibling
	combAdjacent
)

type combinator struct {
	kind        combinatorKind
	left, right matcher
}

func (m *combinator) match(n *ast.Node) bool {
	if !m.right.match(n) {
		return false
	}
	switch m.kind {
	case combChild:
		return n.Parent != nil && m.left.match(n.Parent)
	case combDescendant:
		for anc := n.Parent; anc != nil; anc = anc.Parent {
			if m.left.match(anc) {
				return true
			}
		}
		return false
	default:
		siblings, idx := siblingsOf(n)
		if idx < 0 {
			return false
		}
		if m.kind == combAdjacent {
			return idx > 0 && siblings[idx-1] != nil && m.left.match(siblings[idx-1])
		}
		for _, sib := range siblings[:idx] {
			if sib != nil && m.left.match(sib) {
				return true
			}
		}
		return false
	}
}

func siblingsOf(n *ast.Node) ([]*ast.Node, int) {
	if n.Parent == nil {
		return nil, -1
	}
	list := n.Parent.List(n.Field())
	for idx, child := range list {
		if child == n {
			return list, idx
		}
	}
	return nil, -1
}

type attrOp int

const (
	opExists attrOp = iota
	opEqual
	opNotEqual
	opLess
	opLessEqual
	opGreater
	opGreaterEqual
)

type valueKind int

const (
	valueLiteral valueKind = iota
	valueNumber
	valueRegExp
	valueType
)

type attribute struct {
	path    string
	op      attrOp
	kind    valueKind
	literal string
	number  float64
	re      *regexp.Regexp
}

func (m *attribute) match(n *ast.Node) bool {
	value, ok := n.Lookup(m.path)

	if m.op == opExists {
		return ok && !isNull(value)
	}

	switch m.kind {
	case valueType:
		matched := typeOf(value, ok) == m.literal
		return matched == (m.op == opEqual)
	case valueRegExp:
		s, isString := value.(string)
		matched := ok && isString && m.re.MatchString(s)
		return matched == (m.op == opEqual)
	}

	if m.op == opEqual || m.op == opNotEqual {
		matched := stringify(value, ok) == m.literal
		if m.kind == valueNumber {
			f, isNumber := value.(float64)
			matched = isNumber && f == m.number
		}
		return matched == (m.op == opEqual)
	}

	f, isNumber := value.(float64)
	if !ok || !isNumber {
		return false
	}
	switch m.op {
	case opLess:
		return f < m.number
	case opLessEqual:
		return f <= m.number
	case opGreater:
		return f > m.number
	default:
		return f >= m.number
	}
}

func isNull(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case *ast.Node:
		return v == nil
	}
	return false
}

// stringify renders an attribute value the way a JavaScript template string
// would, which is how selector literals compare.
func stringify(value any, ok bool) string {
	if !ok {
		return "undefined"
	}
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case *ast.Node:
		if v == nil {
			return "null"
		}
		return "[object Object]"
	default:
		return "[object Object]"
	}
}

func typeOf(value any, ok bool) string {
	if !ok {
		return "undefined"
	}
	switch value.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return "object"
	}
}

// countAttributes counts attribute-like parts for specificity.
func countAttributes(m matcher) int {
	switch v := m.(type) {
	case *combinator:
		return countAttributes(v.left) + countAttributes(v.right)
	case *compound:
		return sumOf(v.parts, countAttributes)
	case *not:
		return sumOf(v.sels, countAttributes)
	case *anyOf:
		return sumOf(v.sels, countAttributes)
	case *attribute, *field, *nthChild:
		return 1
	}
	return 0
}

func countIdentifiers(m matcher) int {
	switch v := m.(type) {
	case *combinator:
		return countIdentifiers(v.left) + countIdentifiers(v.right)
	case *compound:
		return sumOf(v.parts, countIdentifiers)
	case *not:
		return sumOf(v.sels, countIdentifiers)
	case *anyOf:
		return sumOf(v.sels, countIdentifiers)
	case *identifier:
		return 1
	}
	return 0
}

func sumOf(ms []matcher, count func(matcher) int) int {
	total := 0
	for _, m := range ms {
		total += count(m)
	}
	return total
}

// possibleTypes returns the node types m can match, or nil for any.
func possibleTypes(m matcher) []string {
	switch v := m.(type) {
	case *identifier:
		return []string{v.name}
	case *anyOf:
		var union []string
		for _, sel := range v.sels {
			types := possibleTypes(sel)
			if types == nil {
				return nil
			}
			union = append(union, types...)
		}
		return union
	case *compound:
		var result []string
		constrained := false
		for _, part := range v.parts {
			types := possibleTypes(part)
			if types == nil {
				continue
			}
			if !constrained {
				result, constrained = append([]string(nil), types...), true
				continue
			}
			result = intersect(result, types)
		}
		if !constrained {
			return nil
		}
		if result == nil {
			return []string{}
		}
		return result
	case *combinator:
		return possibleTypes(v.right)
	}
	return nil
}

func intersect(a, b []string) []string {
	var out []string
	for _, x := range a {
		for _, y := range b {
			if x == y {
				out = append(out, x)
				break
			}
		}
	}
	return out
}
