// Package deployer owns one load order: a tree of entries synchronised
// with an external ordered file described by a dialect.
//
// A Deployer is created with New, which loads (or bootstraps) its state.
// Every mutating method recomputes tags and the tag index and then writes
// the state file, the tag sidecar and the external file before returning.
// There is no separate save step.
//
// Files in the state dir:
//
//	loadorder.json  the tree, {"version":1,"next_id":N,"entries":[...]}
//	tags.json       per-entry tags, sorted by entry name
//	profiles.yaml   profile manifest, see package profile
//
// A Deployer is not safe for concurrent use.
package deployer
