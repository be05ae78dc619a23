// Package fsutil provides path helpers shared by the steps that mutate a
// scaffold tree.
package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned for a relative path that resolves above its root.
var ErrOutsideRoot = errors.New("path is outside the project root")

// Within joins rel onto root and returns the cleaned path. It fails with an
// *fs.PathError wrapping ErrOutsideRoot when the result is not root itself
// or a path below it.
func Within(root, rel string) (string, error) {
	path := filepath.Join(root, rel)
	r, err := filepath.Rel(filepath.Clean(root), path)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", &fs.PathError{Op: "resolve", Path: path, Err: ErrOutsideRoot}
	}
	return path, nil
}
