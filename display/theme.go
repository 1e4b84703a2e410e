package display

import "github.com/charmbracelet/lipgloss"

// Theme holds the colours of the device cards and the surrounding chrome,
// as ANSI 256-colour codes.
type Theme struct {
	Border     lipgloss.Color
	Label      lipgloss.Color
	Value      lipgloss.Color
	Unknown    lipgloss.Color // fields a driver call could not fill
	Unresolved lipgloss.Color // devices without an NVML counterpart
	Header     lipgloss.Color
	Error      lipgloss.Color
	Help       lipgloss.Color
}

var DefaultTheme = Theme{
	Border:     lipgloss.Color("63"),
	Label:      lipgloss.Color("245"),
	Value:      lipgloss.Color("252"),
	Unknown:    lipgloss.Color("240"),
	Unresolved: lipgloss.Color("214"),
	Header:     lipgloss.Color("39"),
	Error:      lipgloss.Color("196"),
	Help:       lipgloss.Color("241"),
}
