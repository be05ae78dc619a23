// Package recipe describes how each project type is scaffolded: where its
// template lives, which boilerplate to prune, which placeholder tokens to
// rewrite, and which paths to rename.
//
// The default catalog is embedded from recipes.yaml. A user catalog with the
// same shape may replace it; it is validated against the embedded JSON schema
// before use.
package recipe
