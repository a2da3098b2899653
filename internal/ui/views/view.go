package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"launchscroll/internal/domain"
)

// chromeLines is the number of rows around the list: container padding,
// title, search line, blank separator, status, error and help lines.
const chromeLines = 8

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Launches       []domain.Launch
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
	ShowDetails    bool
	SearchQuery    string
	SearchInput    string // rendered text input while search mode is active
	Searching      bool
	Loading        bool
	Spinner        string
	EndOfResults   bool
	Page           int
	ErrorMessage   string
	StatusMessage  string
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	launchRender *LaunchRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		launchRender: NewLaunchRenderer(styles),
	}
}

// ListHeight returns the rows available to the launch list for a terminal of
// the given height
func ListHeight(height int) int {
	if h := height - chromeLines; h > 1 {
		return h
	}
	return 1
}

// ItemHeights returns the rendered height of every launch
func (r *Renderer) ItemHeights(launches []domain.Launch, showDetails bool, width int) []int {
	heights := make([]int, len(launches))
	for i, l := range launches {
		heights[i] = lipgloss.Height(r.launchRender.RenderLaunch(l, false, showDetails, "", width))
	}
	return heights
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	// Title with right-aligned counters
	logo := r.styles.Title.Render("SpaceX Launches")
	right := r.styles.Dim.Render(fmt.Sprintf("%d loaded · page %d", len(state.Launches), state.Page))

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	availableWidth := termWidth - 4 // Account for main container padding
	if paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(right); paddingWidth > 0 {
		content.WriteString(logo + strings.Repeat(" ", paddingWidth) + right)
	} else {
		content.WriteString(logo + "  " + right)
	}
	content.WriteString("\n")

	// Search line
	switch {
	case state.Searching:
		content.WriteString(state.SearchInput)
	case state.SearchQuery != "":
		content.WriteString(r.styles.Search.Render(fmt.Sprintf("[Search: %s]", state.SearchQuery)))
		content.WriteString(r.styles.Dim.Render("  / to edit · esc to clear"))
	default:
		content.WriteString(r.styles.Dim.Render("Press / to search"))
	}
	content.WriteString("\n\n")

	// Main content
	content.WriteString(r.renderLaunchList(state))
	content.WriteString("\n")

	// Status line
	switch {
	case state.Loading:
		content.WriteString(r.styles.StatusLoading.Render(fmt.Sprintf("%s Loading launches...", state.Spinner)))
	case state.EndOfResults:
		content.WriteString(r.styles.End.Render("End of Results"))
	case state.StatusMessage != "":
		content.WriteString(r.styles.Dim.Render(state.StatusMessage))
	default:
		content.WriteString(r.styles.Scroll.Render("↓ scroll for more"))
	}
	content.WriteString("\n")

	// Error line
	if state.ErrorMessage != "" {
		msg := fmt.Sprintf("✗ %s (r to reload)", state.ErrorMessage)
		content.WriteString(r.styles.StatusError.Copy().MaxWidth(availableWidth).Render(msg))
	}
	content.WriteString("\n")

	content.WriteString(r.styles.Help.Render("Press ? for help"))

	// Apply main container style
	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.Copy().MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderLaunchList renders the visible window of the launch list, padded to
// the viewport height
func (r *Renderer) renderLaunchList(state ViewState) string {
	height := state.ViewportHeight
	if height < 1 {
		height = ListHeight(state.Height)
	}

	if len(state.Launches) == 0 {
		lines := make([]string, height)
		switch {
		case state.Loading:
			lines[0] = r.styles.Dim.Render("Looking for launches...")
		case state.ErrorMessage == "":
			lines[0] = r.styles.Dim.Render("No launches found.")
		}
		return strings.Join(lines, "\n")
	}

	var all []string
	for i, launch := range state.Launches {
		item := r.launchRender.RenderLaunch(launch, i == state.SelectedIndex, state.ShowDetails, state.SearchQuery, state.Width)
		all = append(all, strings.Split(item, "\n")...)
	}

	start := state.ViewportOffset
	if start > len(all) {
		start = len(all)
	}
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > len(all) {
		end = len(all)
	}

	lines := make([]string, 0, height)
	lines = append(lines, all[start:end]...)
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
