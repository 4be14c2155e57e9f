package tree

import (
	"slices"

	"github.com/alekulyn/limo/pkg/errors"
)

// setParent rewrites the back-reference only. It is always paired with an
// edit of the new parent's child list.
func (t *Tree[T]) setParent(h, parent Handle) {
	if n := t.get(h); n != nil {
		n.parent = parent
	}
}

func clamp(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n {
		return n
	}
	return pos
}

// Insert makes child the pos-th child of parent. pos is clamped into
// [0, ChildCount(parent)]. child must be detached and must not be an
// ancestor of parent.
func (t *Tree[T]) Insert(parent Handle, pos int, child Handle) error {
	p := t.get(parent)
	if p == nil {
		return stale(parent)
	}
	c := t.get(child)
	if c == nil {
		return stale(child)
	}
	if child == t.root || !c.parent.IsZero() {
		return errors.New(errors.ErrInvalidInput, "node is already attached; detach or move it instead")
	}
	if t.isAncestor(child, parent) {
		return errors.New(errors.ErrInvalidInput, "cannot insert a node into its own subtree")
	}

	pos = clamp(pos, len(p.children))
	p.children = slices.Insert(p.children, pos, child)
	t.setParent(child, parent)
	t.MarkDirty(parent)
	return nil
}

// Emplace wraps payload in a new node and appends it to parent.
func (t *Tree[T]) Emplace(parent Handle, payload T) (Handle, error) {
	if !t.Valid(parent) {
		return Handle{}, stale(parent)
	}
	h := t.NewNode(payload)
	if err := t.Insert(parent, t.ChildCount(parent), h); err != nil {
		t.release(h)
		return Handle{}, err
	}
	return h, nil
}

// Remove takes child out of parent and frees it. The removed node's
// children are adopted by parent at the removed node's position, keeping
// their order, so removing a separator never drops its contents.
func (t *Tree[T]) Remove(parent, child Handle) (T, error) {
	var zero T
	p := t.get(parent)
	if p == nil {
		return zero, stale(parent)
	}
	c := t.get(child)
	if c == nil {
		return zero, stale(child)
	}
	row := slices.Index(p.children, child)
	if row < 0 {
		return zero, errors.New(errors.ErrNotFound, "node is not a child of the given parent")
	}

	orphans := c.children
	payload := c.payload
	for _, o := range orphans {
		t.setParent(o, parent)
	}
	p.children = slices.Concat(p.children[:row], orphans, p.children[row+1:])
	t.release(child)
	t.MarkDirty(parent)
	return payload, nil
}

// Detach unlinks h, with its whole subtree, from its parent without
// freeing it. The handle stays valid so the caller can insert it elsewhere.
func (t *Tree[T]) Detach(h Handle) error {
	n := t.get(h)
	if n == nil {
		return stale(h)
	}
	if h == t.root {
		return errors.New(errors.ErrInvalidInput, "the root cannot be detached")
	}
	parent := n.parent
	if parent.IsZero() {
		return nil
	}
	p := t.get(parent)
	if row := slices.Index(p.children, h); row >= 0 {
		p.children = slices.Delete(p.children, row, row+1)
	}
	n.parent = Handle{}
	t.MarkDirty(parent)
	return nil
}

// Move relocates h to position pos under newParent in one step. pos is
// interpreted after h has been taken out of its current list, and clamped.
func (t *Tree[T]) Move(h, newParent Handle, pos int) error {
	if !t.Valid(h) {
		return stale(h)
	}
	if !t.Valid(newParent) {
		return stale(newParent)
	}
	if t.isAncestor(h, newParent) {
		return errors.New(errors.ErrInvalidInput, "cannot move a node into its own subtree")
	}
	if err := t.Detach(h); err != nil {
		return err
	}
	return t.Insert(newParent, pos, h)
}

// Delete detaches h and frees it together with its whole subtree.
func (t *Tree[T]) Delete(h Handle) error {
	if err := t.Detach(h); err != nil {
		return err
	}
	t.releaseSubtree(h)
	return nil
}

// EraseFunc removes the first node, in pre-order, whose payload satisfies
// match. Its children are adopted as in Remove. It reports whether a node
// was removed.
func (t *Tree[T]) EraseFunc(match func(T) bool) bool {
	h := t.Find(match)
	if h.IsZero() {
		return false
	}
	_, err := t.Remove(t.Parent(h), h)
	return err == nil
}

// SwapChildren exchanges the i-th and j-th children of parent.
func (t *Tree[T]) SwapChildren(parent Handle, i, j int) error {
	p := t.get(parent)
	if p == nil {
		return stale(parent)
	}
	n := len(p.children)
	if i < 0 || i >= n || j < 0 || j >= n {
		return errors.Newf(errors.ErrInvalidInput, "swap positions %d and %d out of range [0, %d)", i, j, n)
	}
	if i == j {
		return nil
	}
	p.children[i], p.children[j] = p.children[j], p.children[i]
	t.MarkDirty(parent)
	return nil
}

// Clear frees every node except the root.
func (t *Tree[T]) Clear() {
	root := t.get(t.root)
	children := root.children
	root.children = nil
	for _, c := range children {
		t.releaseSubtree(c)
	}
	t.MarkDirty(t.root)
}
