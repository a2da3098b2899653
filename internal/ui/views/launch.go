package views

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"launchscroll/internal/domain"
)

// LaunchRenderer handles rendering of launch items
type LaunchRenderer struct {
	styles *Styles
	now    func() time.Time
}

// NewLaunchRenderer creates a new launch renderer
func NewLaunchRenderer(styles *Styles) *LaunchRenderer {
	return &LaunchRenderer{
		styles: styles,
		now:    time.Now,
	}
}

// RenderLaunch renders a launch item. The header line is always present; the
// detail block follows it when showDetails is set.
func (r *LaunchRenderer) RenderLaunch(launch domain.Launch, isSelected, showDetails bool, searchQuery string, width int) string {
	var lines []string

	// Background color for selection
	bgColor := ""
	marker := "  "
	if isSelected {
		bgColor = "238"
		marker = "▸ "
	}
	base := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))

	var parts []string
	parts = append(parts, base.Render(marker))

	// Launch name (with search highlighting if applicable)
	nameStyle := r.styles.Name.Copy().Background(lipgloss.Color(bgColor))
	if searchQuery != "" {
		parts = append(parts, r.highlightMatch(launch.Name, searchQuery,
			nameStyle.Copy().Foreground(lipgloss.Color("226")), nameStyle))
	} else {
		parts = append(parts, nameStyle.Render(launch.Name))
	}

	if launch.FlightNumber > 0 {
		parts = append(parts, r.styles.Dim.Copy().Background(lipgloss.Color(bgColor)).
			Render(fmt.Sprintf(" #%d", launch.FlightNumber)))
	}

	outcome := launch.Outcome()
	parts = append(parts, base.Render(" "))
	parts = append(parts, r.styles.OutcomeStyle(outcome).Copy().Background(lipgloss.Color(bgColor)).
		Render(fmt.Sprintf("[%s]", outcome)))

	lines = append(lines, strings.Join(parts, ""))

	if showDetails {
		lines = append(lines, r.renderDetails(launch, width)...)
	}

	return strings.Join(lines, "\n")
}

// renderDetails renders the detail block of a launch, indented under the header
func (r *LaunchRenderer) renderDetails(launch domain.Launch, width int) []string {
	const indent = "    "
	var lines []string

	when := launch.When()
	if when.IsZero() {
		lines = append(lines, indent+r.styles.Dim.Render("date unknown"))
	} else {
		rel := humanize.RelTime(when, r.now(), "ago", "from now")
		lines = append(lines, indent+r.styles.Dim.Render(fmt.Sprintf("%s (%s)", rel, when.Format("2006-01-02 15:04 MST"))))
	}

	for _, link := range []struct {
		label string
		url   string
	}{
		{"Article", launch.Links.Article},
		{"Video", launch.Links.Webcast},
		{"Wikipedia", launch.Links.Wikipedia},
		{"Patch", patchURL(launch.Links.Patch)},
	} {
		if link.url == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s%-10s %s", indent, link.label+":", r.styles.Link.Render(link.url)))
	}

	if details := strings.TrimSpace(launch.Details); details != "" {
		wrap := width - len(indent) - 4 // main container padding
		if wrap < 20 {
			wrap = 20
		}
		wrapped := r.styles.Details.Copy().Width(wrap).Render(details)
		for _, line := range strings.Split(wrapped, "\n") {
			lines = append(lines, indent+line)
		}
	} else {
		lines = append(lines, indent+r.styles.Dim.Render("No details."))
	}

	return lines
}

// patchURL prefers the small patch image
func patchURL(p domain.Patch) string {
	if p.Small != "" {
		return p.Small
	}
	return p.Large
}

// highlightMatch highlights the first match of query within text. The query
// is treated as a case-insensitive pattern, falling back to the literal text
// when it does not compile. Offsets always index into text itself.
func (r *LaunchRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	}

	loc := re.FindStringIndex(text)
	if loc == nil || loc[1] == loc[0] {
		return normalStyle.Render(text)
	}
	start, end := loc[0], loc[1]

	// Split the text into parts
	before := text[:start]
	match := text[start:end]
	after := text[end:]

	// Render with appropriate styles
	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}
