package recipe

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/10up/scaffold/internal/naming"
	"github.com/10up/scaffold/internal/rename"
	"github.com/10up/scaffold/internal/replace"
)

// placeholderNames is used to dry-run templates when a catalog is parsed.
var placeholderNames = naming.MustDerive("example-project")

// Rules renders the recipe's replacements for names.
func (r *Recipe) Rules(names naming.Names) ([]replace.Rule, error) {
	rules := make([]replace.Rule, 0, len(r.Replacements))
	for i, rep := range r.Replacements {
		to, err := render(rep.To, names)
		if err != nil {
			return nil, fmt.Errorf("replacement %d: %w", i, err)
		}
		if !rep.Regex {
			rules = append(rules, replace.Literal(rep.From, to))
			continue
		}
		rule, err := replace.Regex(rep.From, to)
		if err != nil {
			return nil, fmt.Errorf("replacement %d: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Pairs renders the recipe's renames for names.
func (r *Recipe) Pairs(names naming.Names) ([]rename.Pair, error) {
	pairs := make([]rename.Pair, 0, len(r.Renames))
	for i, rn := range r.Renames {
		to, err := render(rn.To, names)
		if err != nil {
			return nil, fmt.Errorf("rename %d: %w", i, err)
		}
		pairs = append(pairs, rename.Pair{From: rn.From, To: to})
	}
	return pairs, nil
}

// Dir returns the directory name for a target with the given slug.
func (r *Recipe) Dir(slug string) string {
	if r.RootDir != "" {
		return r.RootDir
	}
	return slug
}

func render(text string, names naming.Names) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}
	tmpl, err := template.New("").Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", text, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, names); err != nil {
		return "", fmt.Errorf("rendering %q: %w", text, err)
	}
	return b.String(), nil
}
