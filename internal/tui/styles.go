package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the pre-computed lipgloss styles for the track view.
type Styles struct {
	Title    lipgloss.Style
	Goal     lipgloss.Style
	Cursor   lipgloss.Style
	Done     lipgloss.Style
	Pending  lipgloss.Style
	Selected lipgloss.Style
	Reason   lipgloss.Style
	Progress lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style

	High        lipgloss.Style
	Medium      lipgloss.Style
	Low         lipgloss.Style
	Unspecified lipgloss.Style
}

// NewStyles creates the default style set. Priority colors mirror the
// terminal output of the original tool: High red, Medium yellow, Low
// cyan.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 2),

		Goal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true),

		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true),

		Done: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Strikethrough(true),

		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")),

		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true),

		Reason: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true),

		Progress: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),

		High:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Medium:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Low:         lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Unspecified: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
}
