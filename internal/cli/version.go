package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/10up/scaffold/internal/branding"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print the version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build info as JSON")
	rootCmd.AddCommand(versionCmd)
}

type buildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

func currentBuild() buildInfo {
	return buildInfo{Version: buildVersion, Commit: buildCommit, Date: buildDate, Go: runtime.Version()}
}

func (b buildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", branding.CLIName(), b.Version, b.Commit, b.Date, b.Go)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Long: `Print the CLI version, the commit and date it was built from, and the Go
toolchain. Recipe files may require a minimum version with their "requires" key.`,
	Args: usage(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentBuild()
		out := cmd.OutOrStdout()
		switch {
		case versionShort:
			fmt.Fprintln(out, info.Version)
		case versionJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		default:
			fmt.Fprintln(out, info)
		}
		return nil
	},
}
