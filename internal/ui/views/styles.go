package views

import (
	"github.com/charmbracelet/lipgloss"

	"launchscroll/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Dim            lipgloss.Style
	Search         lipgloss.Style
	Help           lipgloss.Style
	Main           lipgloss.Style
	Scroll         lipgloss.Style
	Highlight      lipgloss.Style
	Name           lipgloss.Style
	Link           lipgloss.Style
	Details        lipgloss.Style
	End            lipgloss.Style
	StatusError    lipgloss.Style
	StatusLoading  lipgloss.Style
	StatusSuccess  lipgloss.Style
	StatusUpcoming lipgloss.Style
	SelectionBg    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Search: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:   lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Name:           lipgloss.NewStyle().Bold(true),
		Link:           lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		Details:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		End:            lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		StatusError:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusUpcoming: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		SelectionBg:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
	}
}

// OutcomeStyle returns the badge style for a launch outcome
func (s *Styles) OutcomeStyle(o domain.Outcome) lipgloss.Style {
	switch o {
	case domain.OutcomeSuccess:
		return s.StatusSuccess
	case domain.OutcomeUpcoming:
		return s.StatusUpcoming
	default:
		return s.StatusError
	}
}
