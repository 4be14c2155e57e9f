// Package filesystem provides the types.FS implementations used by limo:
// the real OS filesystem and an afero-backed one that tests run against
// an in-memory MemMapFs.
package filesystem
