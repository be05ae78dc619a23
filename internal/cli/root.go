package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/10up/scaffold/internal/branding"
	"github.com/10up/scaffold/internal/config"
	"github.com/10up/scaffold/internal/logging"
	"github.com/spf13/cobra"
)

// ErrUsage marks errors caused by bad or missing arguments. The process
// exits with status 2 for these.
var ErrUsage = errors.New("usage error")

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbosity   int
	recipesFile string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [project-type] [project-directory]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` clones a 10up template, removes its boilerplate, rewrites the
template's placeholder names to your project's name, and renames template paths.

Project types: theme, plugin, wp-content (alias: site), headless.`,
	Example: `  ` + branding.CLIName() + ` theme my-10up-theme
  ` + branding.CLIName() + ` create plugin my-10up-plugin
  ` + branding.CLIName() + ` create site shop --theme-name storefront --plugin-name cart`,
	Args:          usageArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbosity, nil)
		config.Load()
	},
	RunE: runCreate,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().StringVar(&recipesFile, "recipes", "", "Use a recipe catalog file instead of the built-in one")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})
	addCreateFlags(rootCmd)
}

// usageArgs accepts at most n positional arguments.
func usageArgs(n int) cobra.PositionalArgs {
	return usage(cobra.MaximumNArgs(n))
}

// usage marks argument validation failures as usage errors.
func usage(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}

// Execute runs the root command with build info injected via ldflags.
// Interrupts cancel the running command's context.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
