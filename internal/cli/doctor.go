package cli

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/10up/scaffold/internal/config"
	"github.com/10up/scaffold/internal/fetch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the tools and settings scaffolding relies on",
	Long: `Report whether git, node and npm are on PATH, which clone transport is
configured, and whether the recipe catalog loads.`,
	Args: usage(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ok := true

		name := fetcherName()
		if name == "" {
			name = fetch.DefaultName
		}
		fmt.Fprintf(out, "Fetcher:      %s\n", name)
		fmt.Fprintf(out, "Config file:  %s\n", config.FilePath())

		// git is only required by the git fetcher; npm only by headless projects.
		checkTool(out, "git", name == fetch.NameGit, &ok)
		checkTool(out, "node", false, &ok)
		checkTool(out, "npm", false, &ok)

		catalog, err := loadCatalog()
		if err != nil {
			fmt.Fprintf(out, "✘ recipes: %v\n", err)
			ok = false
		} else {
			fmt.Fprintf(out, "✔ recipes: %d project types\n", len(catalog.Recipes))
		}

		if !ok {
			return fmt.Errorf("doctor found problems")
		}
		return nil
	},
}

func checkTool(w io.Writer, name string, required bool, ok *bool) {
	path, err := exec.LookPath(name)
	switch {
	case err == nil:
		fmt.Fprintf(w, "✔ %s: %s\n", name, path)
	case required:
		fmt.Fprintf(w, "✘ %s: not found in PATH\n", name)
		*ok = false
	default:
		fmt.Fprintf(w, "- %s: not found in PATH (optional)\n", name)
	}
}
