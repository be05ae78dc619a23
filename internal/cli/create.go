package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/10up/scaffold/internal/branding"
	"github.com/10up/scaffold/internal/config"
	"github.com/10up/scaffold/internal/fetch"
	"github.com/10up/scaffold/internal/logging"
	"github.com/10up/scaffold/internal/naming"
	"github.com/10up/scaffold/internal/recipe"
	"github.com/10up/scaffold/internal/runner"
	"github.com/10up/scaffold/internal/scaffold"
	"github.com/10up/scaffold/internal/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const positionalUsage = "<project-type> <project-directory>"

type createFlags struct {
	themeName      string
	pluginName     string
	dir            string
	fetcher        string
	nonInteractive bool
}

var createOpts createFlags

var createCmd = &cobra.Command{
	Use:   "create " + positionalUsage,
	Short: "Create a new project from a template",
	Long: `Clone the template for a project type into a new directory and turn it into
your project: boilerplate files are removed, placeholder names are rewritten
to the directory name, and template paths are renamed.

The wp-content type (alias: site) also creates a theme in themes/ and a plugin
in plugins/. Name them with --theme-name and --plugin-name.

Missing arguments are asked for interactively when a terminal is attached.`,
	Example: `  ` + branding.CLIName() + ` create theme my-10up-theme
  ` + branding.CLIName() + ` create wp-content shop --theme-name storefront --plugin-name cart
  ` + branding.CLIName() + ` create headless newsroom --fetcher git`,
	Args: usageArgs(2),
	RunE: runCreate,
}

func init() {
	addCreateFlags(createCmd)
	rootCmd.AddCommand(createCmd)
}

func addCreateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&createOpts.themeName, "theme-name", "", "Theme directory name for wp-content projects")
	cmd.Flags().StringVar(&createOpts.pluginName, "plugin-name", "", "Plugin directory name for wp-content projects")
	cmd.Flags().StringVar(&createOpts.dir, "dir", "", "Parent directory for the new project (default: current directory)")
	cmd.Flags().StringVar(&createOpts.fetcher, "fetcher", "", "Clone transport: "+strings.Join(fetch.Names(), ", "))
	cmd.Flags().BoolVar(&createOpts.nonInteractive, "non-interactive", false, "Never prompt; fail on missing arguments")
}

func runCreate(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	answers := ui.Answers{ThemeSlug: createOpts.themeName, PluginSlug: createOpts.pluginName}
	if len(args) > 0 {
		answers.Type = args[0]
	}
	if len(args) > 1 {
		answers.Slug = args[1]
	}

	if (answers.Type == "" || answers.Slug == "") && !createOpts.nonInteractive && ui.Interactive() {
		answers, err = ui.Ask(answers, catalog.Types(), func(t string) bool {
			r, err := catalog.Lookup(t)
			return err == nil && r.Composite()
		})
		if err != nil {
			return err
		}
	}

	if answers.Type == "" {
		return usageError(cmd, "project type", "theme my-10up-project",
			"Valid project types are "+strings.Join(catalog.Types(), ", ")+".")
	}
	r, err := catalog.Lookup(answers.Type)
	if errors.Is(err, scaffold.ErrUnknownProjectType) {
		return usageError(cmd, "project type", "theme my-10up-project", err.Error())
	} else if err != nil {
		return err
	}
	if answers.Slug == "" {
		return usageError(cmd, "project directory", answers.Type+" my-10up-project", "")
	}

	fetcher, err := fetch.New(fetcherName(), afero.NewOsFs(), logging.Logger("fetch"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	out := cmd.OutOrStdout()
	s := scaffold.New(scaffold.Config{
		Catalog:  catalog,
		Fetcher:  fetcher,
		Runner:   &runner.Exec{Stderr: cmd.ErrOrStderr(), Logger: logging.Logger("runner")},
		Reporter: ui.NewConsole(out, r.Composite()),
	})

	opts := scaffold.Options{
		Type:       answers.Type,
		Slug:       answers.Slug,
		ThemeSlug:  answers.ThemeSlug,
		PluginSlug: answers.PluginSlug,
		BaseDir:    createOpts.dir,
	}
	result, err := s.Scaffold(cmd.Context(), opts)
	if err != nil {
		if errors.Is(err, naming.ErrEmptySlug) || errors.Is(err, naming.ErrInvalidSlug) {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return err
	}

	fmt.Fprintf(out, "\nDone. Your project is in %s\n", result.Plan.Root.Dir)
	fmt.Fprintf(out, "  cd %s\n", filepath.Clean(result.Plan.Root.Dir))
	return nil
}

func usageError(cmd *cobra.Command, what, example, hint string) error {
	w := cmd.ErrOrStderr()
	fmt.Fprint(w, ui.Usage(branding.CLIName(), what, positionalUsage, example))
	if hint != "" {
		fmt.Fprintln(w, hint)
	}
	return fmt.Errorf("%w: please specify %s", ErrUsage, what)
}

func fetcherName() string {
	if createOpts.fetcher != "" {
		return createOpts.fetcher
	}
	return config.Get(config.KeyFetcher)
}

// loadCatalog returns the recipe catalog: --recipes, then the recipes_file
// config key, then the embedded default.
func loadCatalog() (*recipe.Catalog, error) {
	path := recipesFile
	if path == "" {
		path = config.Get(config.KeyRecipesFile)
	}

	var (
		c   *recipe.Catalog
		err error
	)
	if path == "" {
		c, err = recipe.Default()
	} else {
		c, err = recipe.LoadFile(afero.NewOsFs(), path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}
	if err := c.CheckVersion(buildVersion); err != nil {
		return nil, err
	}
	return c, nil
}
