package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Filter      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Highlight   lipgloss.Style
	SelectionBg lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardLabel    lipgloss.Style
	CardValue    lipgloss.Style

	TableHeader   lipgloss.Style
	TableRow      lipgloss.Style
	TableSelected lipgloss.Style
	SortIndicator lipgloss.Style

	Sidebar       lipgloss.Style
	SidebarActive lipgloss.Style

	DetailBox lipgloss.Style
	AuditBar  lipgloss.Style

	StatusIn      lipgloss.Style
	StatusOut     lipgloss.Style
	StatusNeutral lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:   lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(0, 1),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1),
		CardLabel: lipgloss.NewStyle().Faint(true),
		CardValue: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		TableRow:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		TableSelected: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		SortIndicator: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),

		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		SidebarActive: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),

		DetailBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		AuditBar: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 1),

		StatusIn:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusOut:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusNeutral: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
	}
}

// StatusStyle picks a style for a status text. Outbound statuses are the
// ones the floor staff scan the list for, so they get the loud color.
func (s *Styles) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "持出中", "OUT", "貸出中":
		return s.StatusOut
	case "在庫", "IN", "返却済":
		return s.StatusIn
	}
	return s.StatusNeutral
}
