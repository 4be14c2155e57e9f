// Package tree provides Tree, an ordered N-ary tree whose nodes live in a
// single arena and are addressed by generation-checked handles.
//
// Sibling order is significant: the pre-order traversal of the root is the
// load order. Every node caches its own pre-order traversal. Any structural
// change marks the node and all of its ancestors dirty, and the cache is
// rebuilt on the next read, so a burst of edits costs one rebuild.
//
// Handles stay comparable and cheap to hold. When a node is freed its slot
// is recycled under a new generation, so an old handle reports !Valid
// instead of pointing at an unrelated node.
package tree
