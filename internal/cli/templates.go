package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/10up/scaffold/internal/recipe"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesValidateCmd)
	templatesCmd.AddCommand(templatesDefaultCmd)
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect the project type recipes",
	Long: `Inspect the recipes that map each project type to its template repository
and transformation lists.

A template repository can be overridden per type with the
TENUP_SCAFFOLD_<TYPE>_REPO_URL environment variable or the
templates.<type> config key. A whole recipe file can replace the built-in
one with --recipes or the recipes_file config key.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List project types and their template sources",
	Args:  usage(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tALIASES\tSOURCE\tDESCRIPTION")
		for i := range catalog.Recipes {
			r := &catalog.Recipes[i]
			aliases := strings.Join(r.Aliases, ",")
			if aliases == "" {
				aliases = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Type, aliases, recipe.Source(r), r.Description)
		}
		return w.Flush()
	},
}

var templatesValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a recipe file",
	Args:  usage(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := afero.ReadFile(afero.NewOsFs(), path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		result, err := recipe.Validate(data)
		if err != nil {
			return fmt.Errorf("validating %s: %w", path, err)
		}
		if !result.Valid {
			for _, issue := range result.Issues {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", issue)
			}
			return fmt.Errorf("%s: %w", path, recipe.ErrInvalidCatalog)
		}

		c, err := recipe.Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := c.CheckVersion(buildVersion); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d recipes: %s)\n", path, len(c.Recipes), strings.Join(c.Types(), ", "))
		return nil
	},
}

var templatesDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the built-in recipe file",
	Long:  `Print the built-in recipes as YAML, as a starting point for a custom recipe file.`,
	Args:  usage(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(recipe.DefaultData())
		return err
	},
}
