package tree

import "slices"

// refresh rebuilds the cached traversal of the node at h if it is dirty.
func (t *Tree[T]) refresh(h Handle) {
	n := t.get(h)
	if n == nil || !n.dirty {
		return
	}

	trav := make([]Handle, 0, len(n.traversal))
	items := make([]T, 0, len(n.items))
	if n.hasPayload {
		trav = append(trav, h)
		items = append(items, n.payload)
	}
	for _, c := range n.children {
		t.refresh(c)
		cn := t.get(c)
		trav = append(trav, cn.traversal...)
		items = append(items, cn.items...)
	}

	// The arena does not grow during refresh, so n is still valid.
	n.traversal = trav
	n.items = items
	n.dirty = false
}

// Traversal returns the pre-order list of nodes under h, h itself first
// unless it is the root.
func (t *Tree[T]) Traversal(h Handle) []Handle {
	t.refresh(h)
	n := t.get(h)
	if n == nil {
		return nil
	}
	return slices.Clone(n.traversal)
}

// TraversalItems returns the payloads matching Traversal(h).
func (t *Tree[T]) TraversalItems(h Handle) []T {
	t.refresh(h)
	n := t.get(h)
	if n == nil {
		return nil
	}
	return slices.Clone(n.items)
}

// IsDirty reports whether h's cached traversal needs rebuilding.
func (t *Tree[T]) IsDirty(h Handle) bool {
	n := t.get(h)
	return n != nil && n.dirty
}

// Len returns the number of nodes reachable from the root, root excluded.
func (t *Tree[T]) Len() int {
	t.refresh(t.root)
	return len(t.get(t.root).traversal)
}

// Find returns the first node under the root, in pre-order, whose payload
// satisfies match, or the zero handle.
func (t *Tree[T]) Find(match func(T) bool) Handle {
	t.refresh(t.root)
	root := t.get(t.root)
	for i, h := range root.traversal {
		if match(root.items[i]) {
			return h
		}
	}
	return Handle{}
}

// Walk visits the subtree under h in pre-order with each node's depth
// relative to h. Returning false from fn skips that node's children.
func (t *Tree[T]) Walk(h Handle, fn func(h Handle, depth int) bool) {
	t.walk(h, 0, fn)
}

func (t *Tree[T]) walk(h Handle, depth int, fn func(Handle, int) bool) {
	n := t.get(h)
	if n == nil {
		return
	}
	if h != t.root && !fn(h, depth) {
		return
	}
	next := depth + 1
	if h == t.root {
		next = 0
	}
	for _, c := range slices.Clone(n.children) {
		t.walk(c, next, fn)
	}
}
