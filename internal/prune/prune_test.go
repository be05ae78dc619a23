package prune

import (
	"context"
	"errors"
	"io/fs"
	"syscall"
	"testing"

	"github.com/10up/scaffold/internal/fsutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneRemovesFilesAndDirs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, map[string]string{
		"/theme/README.md":      "# readme",
		"/theme/CHANGELOG.md":   "log",
		"/theme/.git/HEAD":      "ref",
		"/theme/.github/ci.yml": "on: push",
		"/theme/functions.php":  "<?php",
	})

	result, err := Prune(context.Background(), fsys, "/theme",
		[]string{"README.md", "CHANGELOG.md"},
		[]string{".git", ".github"})
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md", "CHANGELOG.md", ".git", ".github"}, result.Removed)
	assert.Empty(t, result.Skipped)

	for _, gone := range []string{"/theme/README.md", "/theme/CHANGELOG.md", "/theme/.git", "/theme/.github"} {
		exists, err := afero.Exists(fsys, gone)
		require.NoError(t, err)
		assert.False(t, exists, gone)
	}
	exists, _ := afero.Exists(fsys, "/theme/functions.php")
	assert.True(t, exists)
}

func TestPruneSkipsAbsentEntries(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, map[string]string{"/theme/README.md": "x"})

	result, err := Prune(context.Background(), fsys, "/theme",
		[]string{"README.md", "LICENSE.md"},
		[]string{".git"})
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md"}, result.Removed)
	assert.Equal(t, []string{"LICENSE.md", ".git"}, result.Skipped)
}

func TestPruneTwiceIsIdempotent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, map[string]string{
		"/theme/README.md": "x",
		"/theme/.git/HEAD": "ref",
	})

	files := []string{"README.md"}
	dirs := []string{".git"}

	_, err := Prune(context.Background(), fsys, "/theme", files, dirs)
	require.NoError(t, err)

	second, err := Prune(context.Background(), fsys, "/theme", files, dirs)
	require.NoError(t, err)
	assert.Empty(t, second.Removed)
	assert.Equal(t, []string{"README.md", ".git"}, second.Skipped)
}

func TestPruneSurfacesFailure(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeTree(t, mem, map[string]string{
		"/theme/README.md": "x",
		"/theme/.git/HEAD": "ref",
	})
	fsys := afero.NewReadOnlyFs(mem)

	result, err := Prune(context.Background(), fsys, "/theme", []string{"README.md"}, []string{".git"})
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EPERM)

	var pe *fs.PathError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "/theme/README.md", pe.Path)

	assert.Empty(t, result.Removed)
	exists, _ := afero.Exists(mem, "/theme/.git/HEAD")
	assert.True(t, exists, "directories are not attempted after the file group failed")
}

func TestPruneEmptyLists(t *testing.T) {
	result, err := Prune(context.Background(), afero.NewMemMapFs(), "/theme", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Removed)
	assert.Empty(t, result.Skipped)
}

func TestPruneRejectsPathsOutsideRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, map[string]string{
		"/work/keep-me/data.txt": "precious",
		"/work/site/README.md":   "# readme",
	})

	result, err := Prune(context.Background(), fsys, "/work/site",
		[]string{"README.md"},
		[]string{"../keep-me"})
	require.ErrorIs(t, err, fsutil.ErrOutsideRoot)

	var pe *fs.PathError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "/work/keep-me", pe.Path)
	assert.Empty(t, result.Removed)

	for _, kept := range []string{"/work/keep-me/data.txt", "/work/site/README.md"} {
		exists, err := afero.Exists(fsys, kept)
		require.NoError(t, err)
		assert.True(t, exists, kept)
	}
}
