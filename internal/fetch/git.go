package fetch

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// GoGit performs a shallow clone in-process. It always writes to the OS
// filesystem.
type GoGit struct{}

// Fetch implements Fetcher.
func (g *GoGit) Fetch(ctx context.Context, source, dest string) error {
	_, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:   source,
		Depth: 1,
	})
	if err != nil {
		return fmt.Errorf("cloning %s: %w", source, err)
	}
	return nil
}

// GitCLI performs a shallow clone with the git binary found on PATH.
type GitCLI struct {
	// Binary overrides the git executable. Empty means "git".
	Binary string
}

// Fetch implements Fetcher.
func (g *GitCLI) Fetch(ctx context.Context, source, dest string) error {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return fmt.Errorf("git is required but not found in PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, "clone", "--depth=1", source, dest)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("cloning %s: %w\n%s", source, err, strings.TrimSpace(string(output)))
	}
	return nil
}
