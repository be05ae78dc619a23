package recipe

import (
	"os"

	"github.com/10up/scaffold/internal/branding"
	"github.com/10up/scaffold/internal/config"
)

// Source returns the template location for r, checking (in order):
// 1. <PREFIX>_<TYPE>_REPO_URL env var
// 2. config key "templates.<type>"
// 3. the recipe's repo
func Source(r *Recipe) string {
	if v := os.Getenv(branding.RepoURLEnvVar(r.Type)); v != "" {
		return v
	}
	if v := config.TemplateURL(r.Type); v != "" {
		return v
	}
	return r.Repo
}
