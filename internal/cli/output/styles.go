package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the styles used by text-mode output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Code    lipgloss.Style
}

func newStyles(lg *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: lg.NewStyle().Bold(true),
		Muted:   lg.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Error:   lg.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning: lg.NewStyle().Foreground(lipgloss.Color("11")),
		Code:    lg.NewStyle().Foreground(lipgloss.Color("14")),
	}
}
