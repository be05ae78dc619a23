package prune

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is reported when Remove is asked to delete a path that does not exist.
var ErrNotFound = fs.ErrNotExist

// siblingLimit bounds concurrent removals inside one directory.
const siblingLimit = 16

// Remove deletes path. Regular files and symlinks are unlinked directly.
// Directories are removed post-order: all children are removed concurrently,
// and the directory itself is removed only after every child succeeded.
//
// A failed child aborts the parent removal. Siblings already deleted stay
// deleted. The returned error is an *fs.PathError naming the path that failed.
func Remove(ctx context.Context, fsys afero.Fs, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := lstat(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &fs.PathError{Op: "remove", Path: path, Err: ErrNotFound}
		}
		return pathError("lstat", path, err)
	}

	if !info.IsDir() {
		if err := fsys.Remove(path); err != nil {
			return pathError("remove", path, err)
		}
		return nil
	}

	entries, err := afero.ReadDir(fsys, path)
	if err != nil {
		return pathError("readdir", path, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(siblingLimit)
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		g.Go(func() error {
			return Remove(gctx, fsys, child)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := fsys.Remove(path); err != nil {
		return pathError("remove", path, err)
	}
	return nil
}

// Exists reports whether path is present, without following a trailing symlink.
func Exists(fsys afero.Fs, path string) (bool, error) {
	_, err := lstat(fsys, path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, pathError("lstat", path, err)
}

func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

// pathError makes sure err carries the path it happened on. afero backends do
// not all return *fs.PathError (the read-only wrapper returns a bare errno).
func pathError(op, path string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return err
	}
	return &fs.PathError{Op: op, Path: path, Err: err}
}
