// Package branding holds the CLI's identity: its command name, product name,
// config directory and environment variable prefix. The values are read from
// the embedded branding.yaml; keys missing there fall back to built-in values.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

// Identity is the decoded branding.yaml.
type Identity struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
}

var builtin = Identity{
	CLIName:     "10up-scaffold",
	DisplayName: "10up Scaffold",
	Description: "Bootstrap new projects from 10up templates",
	HomeDir:     ".10up-scaffold",
	EnvPrefix:   "TENUP_SCAFFOLD",
}

// Current returns the embedded identity. A malformed branding.yaml leaves
// the built-in values in place.
var Current = sync.OnceValue(func() Identity {
	id := builtin
	_ = yaml.Unmarshal(rawBranding, &id)
	return id
})

// CLIName is the root command name.
func CLIName() string { return Current().CLIName }

// DisplayName is the product name used in help text.
func DisplayName() string { return Current().DisplayName }

// Description is the root command's short help.
func Description() string { return Current().Description }

// HomeDir is the config directory name under $HOME.
func HomeDir() string { return Current().HomeDir }

// EnvPrefix prefixes every environment variable the CLI reads.
func EnvPrefix() string { return Current().EnvPrefix }

// EnvVar qualifies suffix with the prefix, upper-casing it and turning '-'
// into '_': EnvVar("home") is "TENUP_SCAFFOLD_HOME".
func EnvVar(suffix string) string {
	suffix = strings.ToUpper(strings.ReplaceAll(suffix, "-", "_"))
	return EnvPrefix() + "_" + suffix
}

// RepoURLEnvVar names the variable overriding a project type's template
// repository: RepoURLEnvVar("wp-content") is "TENUP_SCAFFOLD_WP_CONTENT_REPO_URL".
func RepoURLEnvVar(projectType string) string {
	return EnvVar(projectType + "_repo_url")
}
