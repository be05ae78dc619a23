package recipe

// Catalog is the top-level shape of a recipes file.
type Catalog struct {
	// Requires is an optional semver constraint on the CLI version.
	Requires string   `yaml:"requires,omitempty"`
	Recipes  []Recipe `yaml:"recipes"`
}

// Recipe describes one project type.
type Recipe struct {
	Type        string   `yaml:"type"`
	Description string   `yaml:"description,omitempty"`
	Aliases     []string `yaml:"aliases,omitempty"`
	Repo        string   `yaml:"repo"`

	// RootDir fixes the target directory name. Empty means the slug.
	RootDir string `yaml:"root_dir,omitempty"`

	RemoveFiles  []string      `yaml:"remove_files,omitempty"`
	RemoveDirs   []string      `yaml:"remove_dirs,omitempty"`
	Replacements []Replacement `yaml:"replacements,omitempty"`
	Renames      []Rename      `yaml:"renames,omitempty"`

	// Include limits substitution to files whose base name matches one of
	// these globs. Empty means every file.
	Include []string `yaml:"include,omitempty"`

	PostInstall []Command `yaml:"post_install,omitempty"`
	Nested      []Nested  `yaml:"nested,omitempty"`
}

// Replacement rewrites From to the rendered To template. From is literal
// unless Regex is set.
type Replacement struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Regex bool   `yaml:"regex,omitempty"`
}

// Rename moves From to the rendered To template, both relative to the
// target root.
type Rename struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Command is run inside Dir (relative to the target root) after the tree has
// been transformed.
type Command struct {
	Dir string   `yaml:"dir,omitempty"`
	Run []string `yaml:"run"`
}

// Nested places another project type inside this one. The nested project
// lands in Path/<nested slug> under the parent's root.
type Nested struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

// Composite reports whether the recipe spawns nested projects.
func (r *Recipe) Composite() bool { return len(r.Nested) > 0 }

// Names returns the type followed by its aliases.
func (r *Recipe) Names() []string {
	return append([]string{r.Type}, r.Aliases...)
}
