package recipe

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

//go:embed recipes.yaml
var defaultRecipes []byte

var (
	// ErrUnknownType is returned by Lookup for a type no recipe declares.
	ErrUnknownType = errors.New("unknown project type")
	// ErrInvalidCatalog is returned when a catalog fails validation.
	ErrInvalidCatalog = errors.New("invalid recipe catalog")
	// ErrIncompatible is returned when the catalog requires another CLI version.
	ErrIncompatible = errors.New("recipe catalog is incompatible with this version")
)

// DefaultData returns the embedded recipes.yaml.
func DefaultData() []byte { return defaultRecipes }

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultRecipes)
}

// LoadFile reads, validates and parses a user catalog.
func LoadFile(fsys afero.Fs, path string) (*Catalog, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading recipes %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse validates data against the schema, decodes it and checks that type
// names and aliases are unique and nested types resolve.
func Parse(data []byte) (*Catalog, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		msgs := make([]string, len(result.Issues))
		for i, issue := range result.Issues {
			msgs[i] = issue.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(msgs, "; "))
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing recipes: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) check() error {
	seen := make(map[string]string)
	for _, r := range c.Recipes {
		for _, name := range r.Names() {
			if owner, dup := seen[name]; dup {
				return fmt.Errorf("%w: %q declared by both %q and %q", ErrInvalidCatalog, name, owner, r.Type)
			}
			seen[name] = r.Type
		}
	}
	for _, r := range c.Recipes {
		for _, n := range r.Nested {
			nested, err := c.Lookup(n.Type)
			if err != nil {
				return fmt.Errorf("%w: %q nests %q: %w", ErrInvalidCatalog, r.Type, n.Type, err)
			}
			if nested.Composite() {
				return fmt.Errorf("%w: %q nests composite type %q", ErrInvalidCatalog, r.Type, n.Type)
			}
		}
		if _, err := r.Rules(placeholderNames); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidCatalog, r.Type, err)
		}
		if _, err := r.Pairs(placeholderNames); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidCatalog, r.Type, err)
		}
	}
	return nil
}

// Lookup finds the recipe for a type or alias, case-insensitively.
func (c *Catalog) Lookup(projectType string) (*Recipe, error) {
	want := strings.ToLower(strings.TrimSpace(projectType))
	for i := range c.Recipes {
		for _, name := range c.Recipes[i].Names() {
			if name == want {
				return &c.Recipes[i], nil
			}
		}
	}
	return nil, fmt.Errorf("%w %q: valid types are %s", ErrUnknownType, projectType, strings.Join(c.Types(), ", "))
}

// Types returns the canonical type names in catalog order.
func (c *Catalog) Types() []string {
	types := make([]string, len(c.Recipes))
	for i, r := range c.Recipes {
		types[i] = r.Type
	}
	return types
}

// CheckVersion verifies the CLI version satisfies the catalog's Requires
// constraint. Development builds ("dev" or anything that is not semver)
// always pass.
func (c *Catalog) CheckVersion(cliVersion string) error {
	if c.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("%w: requires %q: %w", ErrInvalidCatalog, c.Requires, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(cliVersion, "v"))
	if err != nil {
		return nil
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: catalog requires %s, running %s", ErrIncompatible, c.Requires, cliVersion)
	}
	return nil
}
