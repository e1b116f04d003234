package ast

// VisitFunc is called for each node during Walk. Returning false from an
// enter callback skips the node's children (its leave callback still runs).
type VisitFunc func(n *Node) bool

// Walk performs a depth-first traversal calling enter before and leave after
// each node's children. Either callback may be nil.
func Walk(root *Node, enter VisitFunc, leave func(n *Node)) {
	if root == nil {
		return
	}
	descend := true
	if enter != nil {
		descend = enter(root)
	}
	if descend {
		for _, child := range root.Children() {
			Walk(child, enter, leave)
		}
	}
	if leave != nil {
		leave(root)
	}
}

// Inspect visits every node in pre-order.
func Inspect(root *Node, visit func(n *Node)) {
	Walk(root, func(n *Node) bool {
		visit(n)
		return true
	}, nil)
}

// FindAll returns every node of the given type in pre-order.
func FindAll(root *Node, typ string) []*Node {
	var out []*Node
	Inspect(root, func(n *Node) {
		if n.Type == typ {
			out = append(out, n)
		}
	})
	return out
}

// Ancestors returns the chain of parents from the root down to n's parent.
func Ancestors(n *Node) []*Node {
	var chain []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
