// Package ui renders retemplate progress and run reports.
//
// It supports terminal (rich), text (plain), and JSON output formats. The
// auto format picks terminal output only for a color capable TTY.
package ui
