package jsontree

// Walk traverses the tree depth-first, calling fn for every node together
// with its depth (the root is at depth 0, each level of nesting adds 1).
// If fn returns false the node's children are skipped. List elements are
// visited in order; object fields in sorted key order.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	switch v := n.Value.(type) {
	case List:
		for _, child := range v {
			walk(child, depth+1, fn)
		}
	case Object:
		for _, k := range n.Keys() {
			walk(v[k], depth+1, fn)
		}
	}
}

// Depth returns the nesting depth of the tree rooted at n: 0 for scalars,
// and 1 plus the deepest child for containers. An empty container has
// depth 1.
func Depth(n Node) int {
	switch v := n.Value.(type) {
	case List:
		d := 0
		for _, child := range v {
			if cd := Depth(child); cd > d {
				d = cd
			}
		}
		return d + 1
	case Object:
		d := 0
		for _, child := range v {
			if cd := Depth(child); cd > d {
				d = cd
			}
		}
		return d + 1
	}
	return 0
}
