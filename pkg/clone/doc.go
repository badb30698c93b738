// Package clone copies a project tree into a new directory.
//
// The copy walks the source with lstat semantics, recreates every directory
// including empty ones, copies regular files byte for byte and applies a
// configurable policy to symbolic links. Problems with single entries are
// collected as failures and the walk continues, so one unreadable file does
// not abort the whole clone.
package clone
