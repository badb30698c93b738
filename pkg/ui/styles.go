package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color definitions using AdaptiveColor for automatic light/dark mode switching
var (
	primaryColor = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	successColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	warningColor = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD54F"}
)

// styles groups the renderers used for one output. The plain set renders
// text unchanged.
type styles struct {
	Stage   lipgloss.Style
	Path    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func newStyles(format Format) styles {
	if format != FormatTerminal {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}
	return styles{
		Stage:   lipgloss.NewStyle().Foreground(primaryColor).Bold(true),
		Path:    lipgloss.NewStyle().Foreground(primaryColor).Italic(true),
		Muted:   lipgloss.NewStyle().Foreground(mutedColor),
		Success: lipgloss.NewStyle().Foreground(successColor).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(warningColor),
		Error:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
	}
}
