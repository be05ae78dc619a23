package fetch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// Local copies a template directory, .git included. Symlinks and other
// special files are skipped.
type Local struct {
	FS afero.Fs
}

// Fetch implements Fetcher.
func (l *Local) Fetch(ctx context.Context, source, dest string) error {
	if err := copyDir(ctx, l.FS, source, dest); err != nil {
		return fmt.Errorf("copying %s to %s: %w", source, dest, err)
	}
	return nil
}

func copyDir(ctx context.Context, fsys afero.Fs, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return err
	}

	entries, err := afero.ReadDir(fsys, src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := copyDir(ctx, fsys, srcPath, dstPath); err != nil {
				return err
			}
		case entry.Mode().IsRegular():
			if err := copyFile(fsys, srcPath, dstPath, entry.Mode().Perm()); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(fsys afero.Fs, src, dst string, perm fs.FileMode) error {
	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(fsys, dst, data, perm)
}
