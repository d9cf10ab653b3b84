package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles of the tracker screen
type Styles struct {
	Header   lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Name     lipgloss.Style
	Label    lipgloss.Style
	Slot     lipgloss.Style
	Cursor   lipgloss.Style
	Blank    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
	Footer   lipgloss.Style
}

// DefaultStyles returns the stock palette
func DefaultStyles() Styles {
	accent := lipgloss.Color("#7aa2f7")
	muted := lipgloss.Color("#565f89")

	return Styles{
		Header: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Name:  lipgloss.NewStyle().Bold(true),
		Label: lipgloss.NewStyle().Foreground(muted).Width(14),
		Slot:  lipgloss.NewStyle().Padding(0, 1),
		Cursor: lipgloss.NewStyle().
			Padding(0, 1).
			Background(accent).
			Foreground(lipgloss.Color("#1a1b26")),
		Blank:  lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		Muted:  lipgloss.NewStyle().Foreground(muted),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
		Footer: lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
	}
}
