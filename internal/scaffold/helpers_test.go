package scaffold

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/10up/scaffold/internal/fetch"
	"github.com/10up/scaffold/internal/recipe"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, fsys afero.Fs, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(data)
}

func exists(t *testing.T, fsys afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fsys, path)
	require.NoError(t, err)
	return ok
}

func templateSource(r *recipe.Recipe) string {
	return "/templates/" + r.Type
}

// stubFetcher copies local templates and fails for the sources in failures.
type stubFetcher struct {
	mu       sync.Mutex
	local    fetch.Fetcher
	failures map[string]error
	partial  map[string]bool // create dest before failing
	fs       afero.Fs
	calls    []string
}

func newStubFetcher(fsys afero.Fs) *stubFetcher {
	return &stubFetcher{
		local:    &fetch.Local{FS: fsys},
		failures: map[string]error{},
		partial:  map[string]bool{},
		fs:       fsys,
	}
}

func (f *stubFetcher) Fetch(ctx context.Context, source, dest string) error {
	f.mu.Lock()
	f.calls = append(f.calls, source)
	err := f.failures[source]
	partial := f.partial[source]
	f.mu.Unlock()

	if err != nil {
		if partial {
			_ = f.fs.MkdirAll(filepath.Join(dest, ".git"), 0o755)
		}
		return err
	}
	return f.local.Fetch(ctx, source, dest)
}

func (f *stubFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type stubRunner struct {
	mu    sync.Mutex
	err   error
	calls [][]string
	dirs  []string
}

func (r *stubRunner) Run(_ context.Context, dir string, argv []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, argv)
	r.dirs = append(r.dirs, dir)
	return r.err
}

type event struct {
	Target string
	Kind   string
	State  State
	Msg    string
}

type recordingReporter struct {
	mu     sync.Mutex
	events []event
}

func (r *recordingReporter) add(e event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingReporter) Begin(t Target) { r.add(event{Target: t.Name, Kind: "begin"}) }
func (r *recordingReporter) Step(t Target, s State, msg string) {
	r.add(event{Target: t.Name, Kind: "step", State: s, Msg: msg})
}
func (r *recordingReporter) Warn(t Target, msg string) {
	r.add(event{Target: t.Name, Kind: "warn", Msg: msg})
}
func (r *recordingReporter) Fail(t Target, err error) {
	r.add(event{Target: t.Name, Kind: "fail", Msg: err.Error()})
}
func (r *recordingReporter) Done(t Target) { r.add(event{Target: t.Name, Kind: "done"}) }

func (r *recordingReporter) messages(target string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var msgs []string
	for _, e := range r.events {
		if e.Target == target && e.Kind == "step" {
			msgs = append(msgs, e.Msg)
		}
	}
	return msgs
}

func mustCatalog(t *testing.T, yaml string) *recipe.Catalog {
	t.Helper()
	c, err := recipe.Parse([]byte(yaml))
	require.NoError(t, err)
	return c
}

func newTestScaffolder(t *testing.T, fsys afero.Fs, catalog *recipe.Catalog, fetcher fetch.Fetcher, opts ...func(*Config)) *Scaffolder {
	t.Helper()
	logger := zerolog.Nop()
	cfg := Config{
		Catalog: catalog,
		Fetcher: fetcher,
		FS:      fsys,
		Runner:  &stubRunner{},
		Logger:  &logger,
		Source:  templateSource,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(cfg)
}

const projectCatalog = `
recipes:
  - type: project
    repo: https://example.com/project-scaffold
    remove_files: [README.md]
    remove_dirs: [.git]
    replacements:
      - { from: TenUpScaffold, to: "{{.Pascal}}" }
      - { from: TENUP_SCAFFOLD, to: "{{.UpperSnake}}" }
      - { from: tenup-scaffold, to: "{{.Kebab}}" }
      - { from: tenup_scaffold, to: "{{.LowerSnake}}" }
      - { from: 10up Scaffold, to: "{{.Title}}" }
    renames:
      - { from: tenup-scaffold, to: "{{.Kebab}}" }
`

func seedProjectTemplate(t *testing.T, fsys afero.Fs) {
	t.Helper()
	writeTree(t, fsys, "/templates/project", map[string]string{
		"README.md":                "# 10up Scaffold",
		".git/HEAD":                "ref: refs/heads/trunk",
		".git/objects/ab/cdef":     "blob",
		"placeholder.txt":          "class TenUpScaffold {}\npackage: tenup-scaffold\n",
		"tenup-scaffold/index.php": "<?php // TENUP_SCAFFOLD tenup_scaffold",
		"tenup-scaffold/style.css": "/* 10up Scaffold */",
	})
}
