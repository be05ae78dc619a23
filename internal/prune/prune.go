package prune

import (
	"context"
	"github.com/10up/scaffold/internal/fsutil"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Result records what a Prune call did.
type Result struct {
	Removed []string // Entries deleted, relative to root, in list order.
	Skipped []string // Entries that were already absent.
}

// Prune removes the listed files and then the listed directories under root.
// Entries are relative to root. Absent entries are skipped, so pruning the
// same tree twice succeeds. Entries within one list are removed concurrently.
// An entry resolving outside root fails the call before anything is removed.
func Prune(ctx context.Context, fsys afero.Fs, root string, files, dirs []string) (*Result, error) {
	result := &Result{}

	groups := [][]string{files, dirs}
	paths := make([][]string, len(groups))
	for g, entries := range groups {
		for _, rel := range entries {
			path, err := fsutil.Within(root, rel)
			if err != nil {
				return result, err
			}
			paths[g] = append(paths[g], path)
		}
	}

	for g, entries := range groups {
		if err := pruneGroup(ctx, fsys, entries, paths[g], result); err != nil {
			return result, err
		}
	}

	return result, nil
}

func pruneGroup(ctx context.Context, fsys afero.Fs, entries, paths []string, result *Result) error {
	if len(entries) == 0 {
		return nil
	}

	present := make([]bool, len(entries))
	for i, rel := range entries {
		exists, err := Exists(fsys, paths[i])
		if err != nil {
			return err
		}
		if !exists {
			result.Skipped = append(result.Skipped, rel)
			continue
		}
		present[i] = true
	}

	removed := make([]bool, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	for i := range entries {
		if !present[i] {
			continue
		}
		path := paths[i]
		g.Go(func() error {
			if err := Remove(gctx, fsys, path); err != nil {
				return err
			}
			removed[i] = true
			return nil
		})
	}

	err := g.Wait()

	for i, ok := range removed {
		if ok {
			result.Removed = append(result.Removed, entries[i])
		}
	}
	return err
}
