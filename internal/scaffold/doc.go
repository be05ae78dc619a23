// Package scaffold turns a freshly cloned template into a new project.
//
// Each target runs one state machine: Cloning, Pruning, Substituting,
// Renaming and, when the recipe declares commands, Installing. Any step
// error moves the target to Failed and stops it; nothing already done is
// rolled back. Composite project types plan several targets: the umbrella
// first, then its nested projects concurrently.
package scaffold
