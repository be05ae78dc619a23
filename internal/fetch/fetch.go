package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Fetcher clones source into dest. dest must not exist yet.
type Fetcher interface {
	Fetch(ctx context.Context, source, dest string) error
}

// Supported fetcher names.
const (
	NameGoGit = "go-git"
	NameGit   = "git"
	NameLocal = "local"
)

// DefaultName is the transport used when none is configured.
const DefaultName = NameGoGit

// ErrUnknownFetcher is returned by New for an unrecognized name.
var ErrUnknownFetcher = errors.New("unknown fetcher")

// Names lists the accepted fetcher names.
func Names() []string {
	return []string{NameGoGit, NameGit, NameLocal}
}

// New returns an Auto fetcher whose remote transport is selected by name.
// An empty name selects DefaultName.
func New(name string, fsys afero.Fs, logger zerolog.Logger) (*Auto, error) {
	var remote Fetcher
	switch name {
	case "", NameGoGit:
		remote = &GoGit{}
	case NameGit:
		remote = &GitCLI{}
	case NameLocal:
		remote = &Local{FS: fsys}
	default:
		return nil, fmt.Errorf("%w %q: supported fetchers are %q, %q and %q",
			ErrUnknownFetcher, name, NameGoGit, NameGit, NameLocal)
	}
	return &Auto{FS: fsys, Remote: remote, Logger: logger}, nil
}

// Auto copies source with Local when it names an existing directory and
// delegates to Remote otherwise.
type Auto struct {
	FS     afero.Fs
	Remote Fetcher
	Logger zerolog.Logger
}

// Fetch implements Fetcher.
func (a *Auto) Fetch(ctx context.Context, source, dest string) error {
	if isDir(a.FS, source) {
		a.Logger.Debug().Str("source", source).Str("dest", dest).Msg("copying local template")
		return (&Local{FS: a.FS}).Fetch(ctx, source, dest)
	}
	a.Logger.Debug().Str("source", source).Str("dest", dest).Msg("cloning template")
	return a.Remote.Fetch(ctx, source, dest)
}

func isDir(fsys afero.Fs, path string) bool {
	if path == "" {
		return false
	}
	ok, err := afero.DirExists(fsys, path)
	return err == nil && ok
}
