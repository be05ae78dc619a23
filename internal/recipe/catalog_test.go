package recipe

import (
	"testing"

	"github.com/10up/scaffold/internal/naming"
	"github.com/10up/scaffold/internal/rename"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"theme", "plugin", "wp-content", "headless"}, c.Types())
	require.NoError(t, c.CheckVersion("dev"))

	for _, r := range c.Recipes {
		assert.Equal(t, []string{"README.md"}, r.RemoveFiles, r.Type)
		assert.Equal(t, []string{".git"}, r.RemoveDirs, r.Type)
		assert.Len(t, r.Replacements, 5, r.Type)
	}
}

func TestLookup(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"theme", "theme"},
		{"Plugin", "plugin"},
		{"site", "wp-content"},
		{" wp-content ", "wp-content"},
		{"headless", "headless"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := c.Lookup(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Type)
		})
	}

	_, err = c.Lookup("blog")
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Contains(t, err.Error(), "theme, plugin, wp-content, headless")
}

func TestThemeRulesAndPairs(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	r, err := c.Lookup("theme")
	require.NoError(t, err)

	names := naming.MustDerive("my-cool-theme")

	rules, err := r.Rules(names)
	require.NoError(t, err)
	require.Len(t, rules, 5)
	assert.Equal(t, "MyCoolTheme", rules[0].Replacement)
	assert.Equal(t, "MY_COOL_THEME", rules[1].Replacement)
	assert.Equal(t, "my-cool-theme", rules[2].Replacement)
	assert.Equal(t, "my_cool_theme", rules[3].Replacement)
	assert.Equal(t, "My Cool Theme", rules[4].Replacement)
	assert.True(t, rules[0].Pattern.MatchString("namespace TenUpThemeScaffold;"))

	pairs, err := r.Pairs(names)
	require.NoError(t, err)
	assert.Equal(t, []rename.Pair{
		{From: "tenup-theme-scaffold", To: "my-cool-theme"},
		{From: "languages/TenUpThemeScaffold.pot", To: "languages/MyCoolTheme.pot"},
	}, pairs)

	assert.Equal(t, "my-cool-theme", r.Dir("my-cool-theme"))
}

func TestCompositeRecipe(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	r, err := c.Lookup("site")
	require.NoError(t, err)

	assert.True(t, r.Composite())
	assert.Equal(t, "wp-content", r.Dir("shop"))
	assert.Equal(t, []Nested{{Type: "theme", Path: "themes"}, {Type: "plugin", Path: "plugins"}}, r.Nested)
}

func TestHeadlessPostInstall(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	r, err := c.Lookup("headless")
	require.NoError(t, err)

	require.Len(t, r.PostInstall, 1)
	assert.Equal(t, []string{"npm", "install"}, r.PostInstall[0].Run)
}

func TestRegexReplacement(t *testing.T) {
	r := &Recipe{Replacements: []Replacement{{From: `tenup-(theme|plugin)`, To: "{{.Kebab}}", Regex: true}}}
	rules, err := r.Rules(naming.MustDerive("shop"))
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "shop shop", rules[0].Pattern.ReplaceAllLiteralString("tenup-theme tenup-plugin", rules[0].Replacement))
}

func TestParseRejectsSemanticErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate alias", `
recipes:
  - { type: theme, repo: a }
  - { type: plugin, repo: b, aliases: [theme] }
`},
		{"unknown nested", `
recipes:
  - { type: site, repo: a, nested: [{ type: theme, path: themes }] }
`},
		{"nested composite", `
recipes:
  - { type: theme, repo: a, nested: [{ type: plugin, path: plugins }] }
  - { type: site, repo: b, nested: [{ type: theme, path: themes }] }
  - { type: plugin, repo: c }
`},
		{"bad template field", `
recipes:
  - { type: theme, repo: a, replacements: [{ from: X, to: "{{.Camel}}" }] }
`},
		{"bad regex", `
recipes:
  - { type: theme, repo: a, replacements: [{ from: "(", to: x, regex: true }] }
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoadFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/etc/recipes.yaml", []byte(`
requires: ">= 1.0.0"
recipes:
  - type: block
    repo: https://example.com/block-scaffold
    replacements:
      - { from: BlockScaffold, to: "{{.Pascal}}" }
`), 0o644))

	c, err := LoadFile(fsys, "/etc/recipes.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"block"}, c.Types())

	_, err = LoadFile(fsys, "/etc/missing.yaml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fsys, "/etc/bad.yaml", []byte("recipes: []\n"), 0o644))
	_, err = LoadFile(fsys, "/etc/bad.yaml")
	assert.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "/etc/bad.yaml")
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		requires string
		version  string
		wantErr  error
	}{
		{"", "0.1.0", nil},
		{">= 1.0.0", "1.2.0", nil},
		{">= 1.0.0", "v1.0.0", nil},
		{">= 1.0.0", "0.9.0", ErrIncompatible},
		{">= 1.0.0", "dev", nil},
		{"not a constraint", "1.0.0", ErrInvalidCatalog},
	}
	for _, tt := range tests {
		t.Run(tt.requires+"/"+tt.version, func(t *testing.T) {
			err := (&Catalog{Requires: tt.requires}).CheckVersion(tt.version)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSource(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	r := &Recipe{Type: "wp-content", Repo: "https://github.com/10up/wp-scaffold"}
	assert.Equal(t, "https://github.com/10up/wp-scaffold", Source(r))

	viper.Set("templates.wp-content", "https://example.com/config.git")
	assert.Equal(t, "https://example.com/config.git", Source(r))

	t.Setenv("TENUP_SCAFFOLD_WP_CONTENT_REPO_URL", "/srv/templates/wp")
	assert.Equal(t, "/srv/templates/wp", Source(r))
}
