// Package fetch materializes a template repository into a fresh directory.
//
// Three transports are provided: GoGit clones in-process with go-git, GitCLI
// shells out to the git binary, and Local copies a directory that already
// exists on disk. Auto picks Local for existing directories and the
// configured remote transport otherwise.
package fetch
