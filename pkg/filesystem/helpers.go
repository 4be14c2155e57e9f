package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/alekulyn/limo/pkg/types"
)

// Exists reports whether path exists. Errors other than "not exist" are
// returned so callers do not mistake an unreadable file for a missing one.
func Exists(fsys types.FS, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// CopyFile copies src to dst, creating dst's parent directory.
func CopyFile(fsys types.FS, src, dst string) error {
	data, err := fsys.ReadFile(src)
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return fsys.WriteFile(dst, data, 0644)
}

// WriteFileAtomic writes data next to path and renames it into place.
func WriteFileAtomic(fsys types.FS, path string, data []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := fsys.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return fsys.Rename(tmp, path)
}
