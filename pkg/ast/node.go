// Package ast defines the syntax tree, tokens and source index shared by the
// parsers, the lint engine and rules.
//
// Nodes follow the ESTree shape: a Type name, a byte range and named
// properties. Properties holding *Node or []*Node values are children and are
// visited in the order they were set; every other property is a scalar
// attribute.
package ast

import (
	"strings"
)

// Node is a syntax tree node. Nodes are built by parsers and treated as
// read-only afterwards.
type Node struct {
	Type   string
	Start  int
	End    int
	Parent *Node

	props map[string]any
	keys  []string
}

// NewNode creates a node of the given type spanning [start, end).
func NewNode(typ string, start, end int) *Node {
	return &Node{Type: typ, Start: start, End: end, props: map[string]any{}}
}

// Span returns the byte range of the node.
func (n *Node) Span() Range {
	return Range{Start: n.Start, End: n.End}
}

// SetChild stores a child node (possibly nil) under key and links its parent.
func (n *Node) SetChild(key string, child *Node) *Node {
	n.addKey(key)
	if child != nil {
		child.Parent = n
		n.props[key] = child
	} else {
		n.props[key] = (*Node)(nil)
	}
	return n
}

// SetList stores an ordered child list under key. Nil entries are kept as
// holes (for example elisions in array literals).
func (n *Node) SetList(key string, children []*Node) *Node {
	n.addKey(key)
	for _, child := range children {
		if child != nil {
			child.Parent = n
		}
	}
	if children == nil {
		children = []*Node{}
	}
	n.props[key] = children
	return n
}

// SetAttr stores a scalar attribute (string, float64, bool, nil or a
// map[string]any) under key.
func (n *Node) SetAttr(key string, value any) *Node {
	n.props[key] = value
	return n
}

// SetRef stores a node reference that is not visited during traversal and
// whose parent is left untouched.
func (n *Node) SetRef(key string, ref *Node) *Node {
	n.props[key] = ref
	return n
}

func (n *Node) addKey(key string) {
	for _, existing := range n.keys {
		if existing == key {
			return
		}
	}
	n.keys = append(n.keys, key)
}

// Keys returns the child-bearing property names in visit order.
func (n *Node) Keys() []string {
	return n.keys
}

// Has reports whether the property exists, even when its value is nil.
func (n *Node) Has(key string) bool {
	_, ok := n.props[key]
	return ok
}

// Get returns the raw property value.
func (n *Node) Get(key string) any {
	return n.props[key]
}

// Child returns the child node stored under key, or nil.
func (n *Node) Child(key string) *Node {
	if n == nil {
		return nil
	}
	child, _ := n.props[key].(*Node)
	return child
}

// List returns the child list stored under key, or nil.
func (n *Node) List(key string) []*Node {
	if n == nil {
		return nil
	}
	list, _ := n.props[key].([]*Node)
	return list
}

// Str returns the string attribute stored under key, or "".
func (n *Node) Str(key string) string {
	if n == nil {
		return ""
	}
	s, _ := n.props[key].(string)
	return s
}

// Bool returns the boolean attribute stored under key, or false.
func (n *Node) Bool(key string) bool {
	if n == nil {
		return false
	}
	b, _ := n.props[key].(bool)
	return b
}

// Is reports whether the node is non-nil and has one of the given types.
func (n *Node) Is(types ...string) bool {
	if n == nil {
		return false
	}
	for _, typ := range types {
		if n.Type == typ {
			return true
		}
	}
	return false
}

// Children returns the non-nil child nodes in visit order.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, key := range n.keys {
		switch value := n.props[key].(type) {
		case *Node:
			if value != nil {
				out = append(out, value)
			}
		case []*Node:
			for _, child := range value {
				if child != nil {
					out = append(out, child)
				}
			}
		}
	}
	return out
}

// Field returns the name of the parent property that holds n, or "".
func (n *Node) Field() string {
	if n == nil || n.Parent == nil {
		return ""
	}
	for _, key := range n.Parent.keys {
		switch value := n.Parent.props[key].(type) {
		case *Node:
			if value == n {
				return key
			}
		case []*Node:
			for _, child := range value {
				if child == n {
					return key
				}
			}
		}
	}
	return ""
}

// Lookup resolves a dotted attribute path such as "callee.property.name".
// The pseudo-properties "type" and "length" (on lists and strings) are
// supported. The boolean result is false when any segment is missing.
func (n *Node) Lookup(path string) (any, bool) {
	var current any = n
	for _, segment := range strings.Split(path, ".") {
		next, ok := lookupSegment(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func lookupSegment(value any, segment string) (any, bool) {
	switch v := value.(type) {
	case *Node:
		if v == nil {
			return nil, false
		}
		if segment == "type" {
			return v.Type, true
		}
		prop, ok := v.props[segment]
		return prop, ok
	case []*Node:
		if segment == "length" {
			return float64(len(v)), true
		}
	case string:
		if segment == "length" {
			return float64(len(v)), true
		}
	case map[string]any:
		prop, ok := v[segment]
		return prop, ok
	}
	return nil, false
}
