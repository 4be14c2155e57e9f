// Package tags persists per-entry tags in a JSON sidecar file and indexes
// the tags of a load order with roaring bitmaps over load-order positions.
//
// The index is rebuilt from the traversal after every mutation. Conflict
// buckets are computed with bitmap differences, so an entry lands in the
// first bucket whose tag it carries.
package tags
