// Package rename moves template placeholder paths to their project names.
package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/10up/scaffold/internal/fsutil"
	"github.com/spf13/afero"
)

// Pair is one rename, both paths relative to the scaffold root.
type Pair struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// Result records which pairs were applied and which were skipped because the
// source was absent.
type Result struct {
	Renamed []Pair
	Skipped []Pair
}

// Apply renames each pair in list order. A missing source is skipped, not an
// error. Any other failure stops the step and is returned with both paths:
// a destination that already exists, or a pair resolving outside root. Pairs
// outside root are rejected before anything is renamed.
func Apply(fsys afero.Fs, root string, pairs []Pair) (*Result, error) {
	result := &Result{}

	resolved := make([][2]string, len(pairs))
	for i, p := range pairs {
		from, err := fsutil.Within(root, p.From)
		var to string
		if err == nil {
			to, err = fsutil.Within(root, p.To)
		}
		if err != nil {
			return result, &Error{From: filepath.Join(root, p.From), To: filepath.Join(root, p.To), Err: fsutil.ErrOutsideRoot}
		}
		resolved[i] = [2]string{from, to}
	}

	for i, p := range pairs {
		from, to := resolved[i][0], resolved[i][1]

		if _, err := stat(fsys, from); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				result.Skipped = append(result.Skipped, p)
				continue
			}
			return result, &fs.PathError{Op: "stat", Path: from, Err: unwrapPathErr(err)}
		}

		if from == to {
			result.Renamed = append(result.Renamed, p)
			continue
		}

		if _, err := stat(fsys, to); err == nil {
			return result, &Error{From: from, To: to, Err: fs.ErrExist}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return result, &fs.PathError{Op: "stat", Path: to, Err: unwrapPathErr(err)}
		}

		if err := fsys.Rename(from, to); err != nil {
			return result, &Error{From: from, To: to, Err: unwrapPathErr(err)}
		}
		result.Renamed = append(result.Renamed, p)
	}

	return result, nil
}

// Error describes a rejected rename.
type Error struct {
	From string
	To   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rename %s -> %s: %v", e.From, e.To, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func stat(fsys afero.Fs, path string) (fs.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

// unwrapPathErr strips an *fs.PathError or *os.LinkError wrapper so the
// paths are not repeated in the message.
func unwrapPathErr(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	var le *os.LinkError
	if errors.As(err, &le) {
		return le.Err
	}
	return err
}
