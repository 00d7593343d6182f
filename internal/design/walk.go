package design

import "iter"

// Walk returns a depth-first pre-order iterator over roots and all their
// descendants. Siblings are visited in source order.
func Walk(roots []Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, r := range roots {
			if !walk(r, yield) {
				return
			}
		}
	}
}

func walk(n Node, yield func(Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range n.Children() {
		if !walk(c, yield) {
			return false
		}
	}
	return true
}

// CountNodes returns the number of nodes in the traversal: every root plus all
// of its descendants.
func CountNodes(roots []Node) int {
	total := 0
	for range Walk(roots) {
		total++
	}
	return total
}
