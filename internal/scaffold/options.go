package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/10up/scaffold/internal/fsutil"
	"github.com/10up/scaffold/internal/naming"
	"github.com/10up/scaffold/internal/recipe"
)

// Options is everything one invocation needs. It is built once by the
// caller and passed by value.
type Options struct {
	Type       string // project type or alias, e.g. "theme", "site"
	Slug       string // project directory name
	ThemeSlug  string // nested theme for composite types
	PluginSlug string // nested plugin for composite types
	BaseDir    string // parent of the project directory; empty means "."
}

// NestedSlug returns the slug for a nested project of the given type.
// Unset names default to "<slug>-<type>".
func (o Options) NestedSlug(projectType string) string {
	var slug string
	switch projectType {
	case "theme":
		slug = o.ThemeSlug
	case "plugin":
		slug = o.PluginSlug
	}
	if slug == "" {
		slug = naming.Normalize(o.Slug) + "-" + projectType
	}
	return naming.Normalize(slug)
}

// Target is one directory the state machine transforms.
type Target struct {
	Name   string // recipe type, used in messages
	Slug   string
	Dir    string
	Source string
	Recipe *recipe.Recipe
}

// Plan lists the targets of one invocation. Nested targets live inside
// Root.Dir and run only after Root is done.
type Plan struct {
	Root   Target
	Nested []Target
}

// Plan resolves opts against the catalog without touching the filesystem.
func (s *Scaffolder) Plan(opts Options) (*Plan, error) {
	r, err := s.catalog.Lookup(opts.Type)
	if err != nil {
		return nil, err
	}

	slug, err := checkSlug(opts.Slug)
	if err != nil {
		return nil, fmt.Errorf("project name: %w", err)
	}

	base := opts.BaseDir
	if base == "" {
		base = "."
	}

	root, err := fsutil.Within(base, r.Dir(slug))
	if err != nil {
		return nil, fmt.Errorf("%s root_dir: %w", r.Type, err)
	}
	plan := &Plan{Root: s.target(r, slug, root)}

	for _, n := range r.Nested {
		nr, err := s.catalog.Lookup(n.Type)
		if err != nil {
			return nil, err
		}
		nslug, err := checkSlug(opts.NestedSlug(nr.Type))
		if err != nil {
			return nil, fmt.Errorf("%s name: %w", nr.Type, err)
		}
		dir, err := fsutil.Within(plan.Root.Dir, filepath.Join(n.Path, nr.Dir(nslug)))
		if err != nil {
			return nil, fmt.Errorf("%s nested path %q: %w", r.Type, n.Path, err)
		}
		plan.Nested = append(plan.Nested, s.target(nr, nslug, dir))
	}

	return plan, nil
}

func (s *Scaffolder) target(r *recipe.Recipe, slug, dir string) Target {
	return Target{
		Name:   r.Type,
		Slug:   slug,
		Dir:    dir,
		Source: s.source(r),
		Recipe: r,
	}
}

func checkSlug(raw string) (string, error) {
	slug := naming.Normalize(raw)
	if err := naming.Validate(slug); err != nil {
		return "", err
	}
	return slug, nil
}
