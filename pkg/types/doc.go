// Package types defines the small interfaces shared across limo packages,
// chiefly the FS abstraction that lets deployers and profile stores run
// against the real filesystem or an in-memory one.
package types
