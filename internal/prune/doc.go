// Package prune deletes boilerplate files and directories from a freshly
// cloned template. Remove is the recursive primitive; Prune is the call-site
// wrapper that skips entries the template no longer ships.
package prune
