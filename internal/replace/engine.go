package replace

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// binarySniffLen is how much of a file is checked for NUL bytes.
const binarySniffLen = 8000

// DefaultWorkers is the number of files rewritten concurrently.
const DefaultWorkers = 8

// Engine applies replacement rules to the files under a root.
type Engine struct {
	fs      afero.Fs
	include []string
	workers int
	logger  zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithInclude limits the engine to files whose base name matches one of the
// glob patterns (filepath.Match syntax). No patterns means every file.
func WithInclude(patterns ...string) Option {
	return func(e *Engine) { e.include = patterns }
}

// WithWorkers sets the number of files processed concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New returns an Engine operating on fsys.
func New(fsys afero.Fs, opts ...Option) *Engine {
	e := &Engine{
		fs:      fsys,
		workers: DefaultWorkers,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RuleResult lists the files one rule changed.
type RuleResult struct {
	Rule  Rule
	Files []string
}

// Result summarizes a substitution pass. Paths are relative to the root.
type Result struct {
	Files   []string     // Files written back, sorted.
	Rules   []RuleResult // Per-rule file lists, in rule order.
	Binary  []string     // Files skipped because they look binary.
	Scanned int          // Regular files considered.
}

// Modified returns the number of files written back.
func (r *Result) Modified() int { return len(r.Files) }

// Apply runs rules over every matching file under root and returns once all
// files are done. On error, files already rewritten stay rewritten.
func (e *Engine) Apply(ctx context.Context, root string, rules []Rule) (*Result, error) {
	paths, err := e.collect(root)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Rules:   make([]RuleResult, len(rules)),
		Scanned: len(paths),
	}
	for i, r := range rules {
		result.Rules[i].Rule = r
	}
	if len(rules) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome, err := e.rewrite(path, rules)
			if err != nil {
				return err
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}

			mu.Lock()
			defer mu.Unlock()
			if outcome.binary {
				result.Binary = append(result.Binary, rel)
				return nil
			}
			if !outcome.changed {
				return nil
			}
			result.Files = append(result.Files, rel)
			for _, i := range outcome.rules {
				result.Rules[i].Files = append(result.Rules[i].Files, rel)
			}
			return nil
		})
	}

	err = g.Wait()

	sort.Strings(result.Files)
	sort.Strings(result.Binary)
	for i := range result.Rules {
		sort.Strings(result.Rules[i].Files)
	}

	e.logger.Debug().
		Str("root", root).
		Int("scanned", result.Scanned).
		Int("modified", result.Modified()).
		Msg("substitution finished")

	return result, err
}

// collect walks root and returns every regular file that passes the include
// filter. Symlinks are not followed.
func (e *Engine) collect(root string) ([]string, error) {
	var paths []string
	err := afero.Walk(e.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !e.included(info.Name()) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return paths, nil
}

func (e *Engine) included(name string) bool {
	if len(e.include) == 0 {
		return true
	}
	for _, pattern := range e.include {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

type fileOutcome struct {
	changed bool
	binary  bool
	rules   []int
}

// rewrite applies rules to one file. The new content is written to a sibling
// temp file and renamed over the original, so a failure never leaves a
// half-written file behind.
func (e *Engine) rewrite(path string, rules []Rule) (fileOutcome, error) {
	var out fileOutcome

	info, err := e.fs.Stat(path)
	if err != nil {
		return out, err
	}
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return out, err
	}

	if isBinary(data) {
		out.binary = true
		return out, nil
	}

	updated := data
	for i, r := range rules {
		var n int
		updated, n = r.apply(updated)
		if n > 0 {
			out.rules = append(out.rules, i)
		}
	}
	if bytes.Equal(updated, data) {
		return out, nil
	}

	if err := e.writeAtomic(path, updated, info.Mode().Perm()); err != nil {
		return out, &fs.PathError{Op: "write", Path: path, Err: err}
	}
	out.changed = true

	e.logger.Trace().Str("path", path).Ints("rules", out.rules).Msg("rewrote file")
	return out, nil
}

func (e *Engine) writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := afero.TempFile(e.fs, filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = e.fs.Chmod(tmpName, perm)
	}
	if err == nil {
		err = e.fs.Rename(tmpName, path)
	}
	if err != nil {
		_ = e.fs.Remove(tmpName)
	}
	return err
}

func isBinary(data []byte) bool {
	n := len(data)
	if n > binarySniffLen {
		n = binarySniffLen
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}
