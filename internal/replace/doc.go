// Package replace rewrites template placeholder tokens across every file of
// a scaffolded tree.
//
// Rules are applied repository-wide. Each file is read once, all rules run
// against it in memory, and the file is written back only when something
// changed. Files are processed concurrently; rules never race on one file.
package replace
