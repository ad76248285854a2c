package textile

// Walk visits n and its descendants depth-first in document order.
// If fn returns false the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}
