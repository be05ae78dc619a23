// Package runner executes the post-install commands a recipe declares, such
// as "npm install" for headless projects.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// ErrToolNotFound is returned when the command's executable is not on PATH.
var ErrToolNotFound = errors.New("tool not found")

// Runner runs argv inside dir.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string) error
}

// Exec runs commands as child processes.
type Exec struct {
	// Stdout and Stderr receive the command's output. Nil discards it; stderr
	// is captured either way for error messages.
	Stdout io.Writer
	Stderr io.Writer
	Logger zerolog.Logger
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}
	display := strings.Join(argv, " ")

	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("%w: %s (skipping %s)", ErrToolNotFound, argv[0], display)
	}

	var stderrBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = orDiscard(e.Stdout)
	cmd.Stderr = io.MultiWriter(orDiscard(e.Stderr), &stderrBuf)

	e.Logger.Debug().Str("dir", dir).Strs("argv", argv).Msg("running command")
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderrBuf.String())
		if msg == "" {
			return fmt.Errorf("%s in %s: %w", display, dir, err)
		}
		return fmt.Errorf("%s in %s: %w\n%s", display, dir, err, msg)
	}
	return nil
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
