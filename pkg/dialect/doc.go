// Package dialect describes the on-disk conventions of one external
// load-order file: which names are entries, how to read the file when no
// local state exists, which managed blocks to write back, which tags derive
// from file names, and which tag-toggling actions are offered.
//
// A Dialect is a plain value handed to a deployer at construction. The
// built-in dialects live in a registry; users can declare more, or extend a
// built-in, in the config file. See Spec.
package dialect
