package tree

import (
	"slices"

	"github.com/alekulyn/limo/pkg/errors"
)

// Handle addresses a node. The zero Handle is never valid.
type Handle struct {
	index int
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

type node[T any] struct {
	gen        uint32
	live       bool
	hasPayload bool
	payload    T
	parent     Handle
	children   []Handle

	dirty     bool
	traversal []Handle
	items     []T
}

// Tree is an arena of nodes with one payload-less root.
type Tree[T any] struct {
	nodes []node[T]
	free  []int
	root  Handle
}

// New returns a tree holding only its root.
func New[T any]() *Tree[T] {
	t := &Tree[T]{}
	var zero T
	t.root = t.alloc(zero, false)
	return t
}

// Root returns the root handle.
func (t *Tree[T]) Root() Handle {
	return t.root
}

// Valid reports whether h refers to a live node.
func (t *Tree[T]) Valid(h Handle) bool {
	return t.get(h) != nil
}

func (t *Tree[T]) get(h Handle) *node[T] {
	if h.gen == 0 || h.index < 0 || h.index >= len(t.nodes) {
		return nil
	}
	n := &t.nodes[h.index]
	if !n.live || n.gen != h.gen {
		return nil
	}
	return n
}

func (t *Tree[T]) alloc(payload T, has bool) Handle {
	fresh := node[T]{live: true, hasPayload: has, payload: payload, dirty: true}
	if len(t.free) > 0 {
		idx := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		fresh.gen = t.nodes[idx].gen + 1
		t.nodes[idx] = fresh
		return Handle{index: idx, gen: fresh.gen}
	}
	fresh.gen = 1
	t.nodes = append(t.nodes, fresh)
	return Handle{index: len(t.nodes) - 1, gen: 1}
}

// release frees a single node slot. The caller has already unlinked it.
func (t *Tree[T]) release(h Handle) {
	n := &t.nodes[h.index]
	gen := n.gen
	*n = node[T]{gen: gen}
	t.free = append(t.free, h.index)
}

func (t *Tree[T]) releaseSubtree(h Handle) {
	n := t.get(h)
	if n == nil {
		return
	}
	children := n.children
	for _, c := range children {
		t.releaseSubtree(c)
	}
	t.release(h)
}

func stale(h Handle) error {
	return errors.New(errors.ErrStaleHandle, "node handle is no longer valid").
		WithDetail("index", h.index)
}

// NewNode allocates a detached node holding payload.
func (t *Tree[T]) NewNode(payload T) Handle {
	return t.alloc(payload, true)
}

// Payload returns the node's payload. ok is false for the root, a stale
// handle, or the zero handle.
func (t *Tree[T]) Payload(h Handle) (payload T, ok bool) {
	n := t.get(h)
	if n == nil || !n.hasPayload {
		return payload, false
	}
	return n.payload, true
}

// SetPayload replaces the payload of a non-root node.
func (t *Tree[T]) SetPayload(h Handle, payload T) error {
	n := t.get(h)
	if n == nil {
		return stale(h)
	}
	if h == t.root {
		return errors.New(errors.ErrInvalidInput, "the root carries no payload")
	}
	n.payload = payload
	n.hasPayload = true
	t.MarkDirty(h)
	return nil
}

// ChildCount returns the number of children of h.
func (t *Tree[T]) ChildCount(h Handle) int {
	n := t.get(h)
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Child returns the i-th child of h, or the zero handle when out of range.
func (t *Tree[T]) Child(h Handle, i int) Handle {
	n := t.get(h)
	if n == nil || i < 0 || i >= len(n.children) {
		return Handle{}
	}
	return n.children[i]
}

// Children returns a copy of h's child handles.
func (t *Tree[T]) Children(h Handle) []Handle {
	n := t.get(h)
	if n == nil {
		return nil
	}
	return slices.Clone(n.children)
}

// Parent returns h's parent, or the zero handle for the root and for
// detached nodes.
func (t *Tree[T]) Parent(h Handle) Handle {
	n := t.get(h)
	if n == nil {
		return Handle{}
	}
	return n.parent
}

// Row returns h's index among its siblings. The root and detached nodes
// report 0. -1 means the parent does not list h, which is a consistency bug.
func (t *Tree[T]) Row(h Handle) int {
	n := t.get(h)
	if n == nil {
		return -1
	}
	p := t.get(n.parent)
	if p == nil {
		return 0
	}
	return slices.Index(p.children, h)
}

// Depth returns the number of edges between h and the root, or -1 for a
// node that is not attached under the root.
func (t *Tree[T]) Depth(h Handle) int {
	depth := 0
	for cur := h; ; depth++ {
		n := t.get(cur)
		if n == nil {
			return -1
		}
		if cur == t.root {
			return depth
		}
		cur = n.parent
	}
}

// Contains reports whether h is attached somewhere under the root.
func (t *Tree[T]) Contains(h Handle) bool {
	return t.Depth(h) >= 0
}

// isAncestor reports whether a is h or one of h's ancestors.
func (t *Tree[T]) isAncestor(a, h Handle) bool {
	for cur := h; !cur.IsZero(); {
		if cur == a {
			return true
		}
		n := t.get(cur)
		if n == nil {
			return false
		}
		cur = n.parent
	}
	return false
}

// MarkDirty invalidates the cached traversal of h and of every ancestor.
func (t *Tree[T]) MarkDirty(h Handle) {
	for cur := h; ; {
		n := t.get(cur)
		if n == nil {
			return
		}
		n.dirty = true
		cur = n.parent
	}
}
