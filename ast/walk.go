package ast

// Visitor is called for every node reached by Walk. Returning false skips
// the node's children.
type Visitor func(n Node) bool

// Walk traverses the tree rooted at n in pre-order.
func Walk(n Node, v Visitor) {
	if IsNil(n) {
		return
	}
	if !v(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, v)
	}
}

// WalkPost traverses the tree rooted at n in post-order.
func WalkPost(n Node, fn func(Node)) {
	if IsNil(n) {
		return
	}
	for _, c := range n.Children() {
		WalkPost(c, fn)
	}
	fn(n)
}

// Find returns the first node in pre-order for which pred holds.
func Find(n Node, pred func(Node) bool) Node {
	var hit Node
	Walk(n, func(x Node) bool {
		if hit != nil {
			return false
		}
		if pred(x) {
			hit = x
			return false
		}
		return true
	})
	return hit
}

// FindAll collects every node of type t in pre-order.
func FindAll(n Node, t NodeType) []Node {
	var out []Node
	Walk(n, func(x Node) bool {
		if x.Type() == t {
			out = append(out, x)
		}
		return true
	})
	return out
}

// Count returns the number of nodes in the tree.
func Count(n Node) int {
	c := 0
	Walk(n, func(Node) bool { c++; return true })
	return c
}

// Inspect traverses the tree in pre-order like Walk. After a node's
// children have been visited f is called once more with nil.
func Inspect(n Node, f func(Node) bool) {
	if IsNil(n) {
		return
	}
	if !f(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, f)
	}
	f(nil)
}
