// Package ui renders scaffold progress to the terminal and asks for missing
// answers interactively when a terminal is attached.
package ui
