// Package cli defines the Cobra command tree for the scaffolding CLI. Each
// file registers one top-level command with the root command. Commands only
// parse flags, prompt, and print; the pipeline lives in internal/scaffold.
package cli
