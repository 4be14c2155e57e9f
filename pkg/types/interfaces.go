package types

import (
	"io/fs"
)

// FS is the filesystem surface limo needs. Implementations live in
// pkg/filesystem.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}

// Pather provides the base directories limo keeps its own files in.
type Pather interface {
	// ConfigDir returns the XDG config directory for limo
	ConfigDir() string

	// DataDir returns the XDG data directory for limo
	DataDir() string

	// StateDir returns the XDG state directory for limo
	StateDir() string
}
