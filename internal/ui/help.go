package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"launchscroll/internal/domain"
)

// HelpRenderer handles help and launch page rendering for the pager
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

var (
	pagerTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	pagerSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginTop(1)

	pagerKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	pagerDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	var help strings.Builder

	row := func(key, desc string) {
		help.WriteString(fmt.Sprintf("  %-12s %s\n", pagerKeyStyle.Render(key), pagerDescStyle.Render(desc)))
	}

	help.WriteString(pagerTitleStyle.Render("SpaceX Launches Help"))
	help.WriteString("\n")

	help.WriteString(sectionText("Navigation"))
	row("↑/↓, j/k", "Move up/down")
	row("PgUp/PgDn", "Page up/down")
	row("gg/G", "Go to top/bottom")
	row("wheel", "Scroll the list")
	help.WriteString("\n")

	help.WriteString(sectionText("Loading"))
	row("", "More launches load when you scroll near the bottom")
	row("r", "Reload from the first page")
	help.WriteString("\n")

	help.WriteString(sectionText("Search"))
	row("/", "Search launch names (live, case-insensitive)")
	row("Enter", "Keep the search and return to the list")
	row("Esc", "Clear the search")
	help.WriteString("\n")

	help.WriteString(sectionText("Launches"))
	row("v, Enter", "Show/hide details for all launches")
	row("o", "Open the selected launch in the pager")
	help.WriteString("\n")

	help.WriteString(sectionText("Other"))
	row("?", "Show this help")
	row("q", "Quit")

	return help.String()
}

func sectionText(title string) string {
	return pagerSectionStyle.Render(title) + "\n"
}

// RenderLaunchPage renders the full record of a launch for the pager
func (r *HelpRenderer) RenderLaunchPage(l domain.Launch) string {
	var b strings.Builder

	b.WriteString(pagerTitleStyle.Render(l.Name))
	b.WriteString("\n")

	field := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("%-12s %s\n", pagerKeyStyle.Render(name+":"), value))
	}

	field("ID", l.ID)
	if l.FlightNumber > 0 {
		field("Flight", fmt.Sprintf("%d", l.FlightNumber))
	}
	field("Outcome", l.Outcome().String())
	if when := l.When(); !when.IsZero() {
		field("Date", when.Format(time.RFC1123Z))
	}
	field("Article", l.Links.Article)
	field("Video", l.Links.Webcast)
	field("Wikipedia", l.Links.Wikipedia)
	field("Patch", l.Links.Patch.Small)
	field("Patch (HD)", l.Links.Patch.Large)

	if l.Details != "" {
		b.WriteString("\n")
		b.WriteString(pagerSectionStyle.Render("Details"))
		b.WriteString("\n")
		b.WriteString(l.Details)
		b.WriteString("\n")
	}

	return b.String()
}

// PagerOps runs the ov pager on top of the program
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program whose terminal is released while paging
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowInPager shows content using the ov pager
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
