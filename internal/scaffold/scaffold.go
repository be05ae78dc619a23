package scaffold

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/10up/scaffold/internal/fetch"
	"github.com/10up/scaffold/internal/fsutil"
	"github.com/10up/scaffold/internal/logging"
	"github.com/10up/scaffold/internal/naming"
	"github.com/10up/scaffold/internal/prune"
	"github.com/10up/scaffold/internal/recipe"
	"github.com/10up/scaffold/internal/rename"
	"github.com/10up/scaffold/internal/replace"
	"github.com/10up/scaffold/internal/runner"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Config wires a Scaffolder. Catalog and Fetcher are required.
type Config struct {
	Catalog  *recipe.Catalog
	Fetcher  fetch.Fetcher
	FS       afero.Fs      // default: OS filesystem
	Runner   runner.Runner // default: runner.Exec
	Reporter Reporter      // default: NopReporter
	Logger   *zerolog.Logger

	// Source resolves a recipe's template location. Default: recipe.Source.
	Source func(*recipe.Recipe) string

	// Workers bounds concurrent file rewrites during substitution.
	Workers int
}

// Scaffolder runs scaffold plans.
type Scaffolder struct {
	catalog  *recipe.Catalog
	fetcher  fetch.Fetcher
	fs       afero.Fs
	runner   runner.Runner
	reporter Reporter
	logger   zerolog.Logger
	source   func(*recipe.Recipe) string
	workers  int
}

// New returns a Scaffolder with defaults filled in.
func New(cfg Config) *Scaffolder {
	s := &Scaffolder{
		catalog:  cfg.Catalog,
		fetcher:  cfg.Fetcher,
		fs:       cfg.FS,
		runner:   cfg.Runner,
		reporter: cfg.Reporter,
		source:   cfg.Source,
		workers:  cfg.Workers,
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if cfg.Logger != nil {
		s.logger = *cfg.Logger
	} else {
		s.logger = logging.Logger("scaffold")
	}
	if s.runner == nil {
		s.runner = &runner.Exec{Logger: s.logger}
	}
	if s.reporter == nil {
		s.reporter = NopReporter{}
	}
	if s.source == nil {
		s.source = recipe.Source
	}
	if s.workers <= 0 {
		s.workers = replace.DefaultWorkers
	}
	return s
}

// TargetResult is what one state machine run did.
type TargetResult struct {
	Target      Target
	State       State   // Done or Failed once Run returns
	History     []State // States entered, in order
	Pruned      *prune.Result
	Substituted *replace.Result
	Renamed     *rename.Result
	Warnings    []string
	Err         error
}

func (r *TargetResult) enter(s State) {
	r.State = s
	r.History = append(r.History, s)
}

// Result collects the target results of one Scaffold call.
type Result struct {
	Plan    *Plan
	Targets []*TargetResult
}

// Scaffold plans opts and runs every target. The root target runs first;
// nested targets then run concurrently and independently of each other.
// If the root fails, nested targets are recorded as skipped. Nested failures
// are joined into the returned error.
func (s *Scaffolder) Scaffold(ctx context.Context, opts Options) (*Result, error) {
	plan, err := s.Plan(opts)
	if err != nil {
		return nil, err
	}
	result := &Result{Plan: plan}

	root, err := s.Run(ctx, plan.Root)
	result.Targets = append(result.Targets, root)
	if err != nil {
		for _, t := range plan.Nested {
			result.Targets = append(result.Targets, &TargetResult{
				Target:  t,
				State:   StateIdle,
				History: []State{StateIdle},
				Err:     ErrSkipped,
			})
		}
		return result, err
	}
	if len(plan.Nested) == 0 {
		return result, nil
	}

	nested := make([]*TargetResult, len(plan.Nested))
	errs := make([]error, len(plan.Nested))

	var wg sync.WaitGroup
	for i, t := range plan.Nested {
		wg.Add(1)
		go func() {
			defer wg.Done()
			nested[i], errs[i] = s.Run(ctx, t)
		}()
	}
	wg.Wait()

	result.Targets = append(result.Targets, nested...)
	return result, errors.Join(errs...)
}

// Run executes the state machine for one target. The returned result is
// never nil; on failure its Err is the same *StepError that is returned.
func (s *Scaffolder) Run(ctx context.Context, t Target) (*TargetResult, error) {
	logger := s.logger.With().Str("target", t.Name).Str("dir", t.Dir).Logger()
	done := logging.OperationStart(logger, "scaffold")
	defer done()

	res := &TargetResult{Target: t}
	res.enter(StateIdle)

	fail := func(path string, err error) (*TargetResult, error) {
		stepErr := &StepError{Target: t.Name, State: res.State, Path: path, Err: err}
		logger.Debug().Err(err).Stringer("state", res.State).Msg("step failed")
		res.enter(StateFailed)
		res.Err = stepErr
		s.reporter.Fail(t, stepErr)
		return res, stepErr
	}

	names, err := naming.Derive(t.Slug)
	if err != nil {
		return fail("", err)
	}
	exists, err := afero.Exists(s.fs, t.Dir)
	if err != nil {
		return fail(t.Dir, err)
	}
	if exists {
		return fail(t.Dir, ErrDestinationExists)
	}

	s.reporter.Begin(t)

	res.enter(StateCloning)
	if err := s.fetcher.Fetch(ctx, t.Source, t.Dir); err != nil {
		return fail(t.Dir, err)
	}
	s.reporter.Step(t, StateCloning, "Clone Successful")

	res.enter(StatePruning)
	res.Pruned, err = prune.Prune(ctx, s.fs, t.Dir, t.Recipe.RemoveFiles, t.Recipe.RemoveDirs)
	if err != nil {
		return fail(failedPath(err), err)
	}
	for _, p := range res.Pruned.Removed {
		s.reporter.Step(t, StatePruning, p+" deleted")
	}
	logger.Debug().Strs("skipped", res.Pruned.Skipped).Msg("pruned")

	res.enter(StateSubstituting)
	rules, err := t.Recipe.Rules(names)
	if err != nil {
		return fail("", err)
	}
	engine := replace.New(s.fs,
		replace.WithInclude(t.Recipe.Include...),
		replace.WithWorkers(s.workers),
		replace.WithLogger(logger),
	)
	res.Substituted, err = engine.Apply(ctx, t.Dir, rules)
	if err != nil {
		return fail(failedPath(err), err)
	}
	for _, rr := range res.Substituted.Rules {
		if len(rr.Files) == 0 {
			continue
		}
		s.reporter.Step(t, StateSubstituting, "Modified files: "+strings.Join(rr.Files, ", "))
	}

	res.enter(StateRenaming)
	pairs, err := t.Recipe.Pairs(names)
	if err != nil {
		return fail("", err)
	}
	res.Renamed, err = rename.Apply(s.fs, t.Dir, pairs)
	if err != nil {
		return fail(failedPath(err), err)
	}
	for _, p := range res.Renamed.Renamed {
		s.reporter.Step(t, StateRenaming, "Renamed "+p.From)
	}

	if len(t.Recipe.PostInstall) > 0 {
		res.enter(StateInstalling)
		if err := s.install(ctx, t, res, logger); err != nil {
			return fail(failedPath(err), err)
		}
	}

	res.enter(StateDone)
	s.reporter.Done(t)
	return res, nil
}

// install runs post-install commands. Command failures are warnings; only a
// working directory outside the target is an error.
func (s *Scaffolder) install(ctx context.Context, t Target, res *TargetResult, logger zerolog.Logger) error {
	for _, c := range t.Recipe.PostInstall {
		dir, err := fsutil.Within(t.Dir, c.Dir)
		if err != nil {
			return err
		}
		display := strings.Join(c.Run, " ")
		if err := s.runner.Run(ctx, dir, c.Run); err != nil {
			msg := fmt.Sprintf("%s failed: %v", display, err)
			logger.Warn().Err(err).Str("command", display).Msg("post-install command failed")
			res.Warnings = append(res.Warnings, msg)
			s.reporter.Warn(t, msg)
			continue
		}
		s.reporter.Step(t, StateInstalling, display+" finished")
	}
	return nil
}
