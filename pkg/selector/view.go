package selector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/crateup/crateup/pkg/constants"
	"github.com/crateup/crateup/pkg/outdated"
	"github.com/crateup/crateup/pkg/output"
)

// descriptionWidth caps the description column in terminal cells.
const descriptionWidth = 60

// rowText adapts the checklist text to the terminal background, black on
// light themes and bright white on dark ones.
var rowText = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}

var (
	boldStyle   = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dateStyle   = lipgloss.NewStyle().Italic(true).Faint(true)
	repoStyle   = lipgloss.NewStyle().Underline(true)
	descStyle   = lipgloss.NewStyle().Faint(true)
	normalRow   = lipgloss.NewStyle().Foreground(rowText)
	normalName  = lipgloss.NewStyle().Bold(true).Foreground(rowText)
	cursorRow   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cursorName  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
)

// rowWidths holds the widest value per column so rows align.
type rowWidths struct {
	name    int
	current int
	latest  int
}

func measure(entries []outdated.Entry) rowWidths {
	var w rowWidths
	for _, e := range entries {
		w.name = max(w.name, output.DisplayWidth(e.Dependency.Name))
		w.current = max(w.current, output.DisplayWidth(e.Installed()))
		w.latest = max(w.latest, output.DisplayWidth(e.Latest()))
	}
	return w
}

// View implements tea.Model.
func (m Model) View() string {
	if m.phase != PhaseBrowsing {
		return ""
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s out of the %s direct dependencies are outdated",
		boldStyle.Render(strconv.Itoa(len(m.entries))),
		boldStyle.Render(strconv.Itoa(m.total))))
	b.WriteString("\n\n")

	b.WriteString(accentStyle.Render(fmt.Sprintf("Dependencies (%d selected):", m.SelectedCount())))
	b.WriteString("\n")

	for i := range m.entries {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}
	if len(m.entries) == 0 {
		b.WriteString(descStyle.Render("No dependencies found"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footer())
	b.WriteString("\n")

	return b.String()
}

// renderRow lays out one checklist row: selection bullet, padded name,
// publish date and version on both sides of the upgrade arrow, repository,
// and truncated description. The cursor row carries the highlight color on
// its bullet and name.
func (m Model) renderRow(i int) string {
	entry := m.entries[i]

	rowStyle, nameStyle := normalRow, normalName
	if i == m.cursor {
		rowStyle, nameStyle = cursorRow, cursorName
	}

	bullet := "○"
	if m.selected[i] {
		bullet = "●"
	}

	var meta struct {
		currentDate string
		latestDate  string
		repository  string
		description string
	}
	if entry.Metadata != nil {
		meta.currentDate = entry.Metadata.CurrentDate
		meta.latestDate = entry.Metadata.LatestDate
		meta.repository = entry.Metadata.Repository
		meta.description = entry.Metadata.Description
	}

	repository := meta.repository
	if repository == "" {
		repository = constants.PlaceholderNone
	}

	return fmt.Sprintf("%s %s  %s %s -> %s %s  %s - %s",
		rowStyle.Render(bullet),
		nameStyle.Render(output.ToWidth(entry.Dependency.Name, m.widths.name)),
		dateStyle.Render(displayDate(meta.currentDate)),
		output.ToWidth(entry.Installed(), m.widths.current),
		dateStyle.Render(displayDate(meta.latestDate)),
		output.ToWidth(entry.Latest(), m.widths.latest),
		repoStyle.Render(repository),
		descStyle.Render(runewidth.Truncate(meta.description, descriptionWidth, "")),
	)
}

func footer() string {
	return fmt.Sprintf("Use %s to navigate, %s to select all, %s to invert, %s to select/deselect, %s to update, %s/%s to exit",
		accentStyle.Render("arrow keys"),
		accentStyle.Render("<a>"),
		accentStyle.Render("<i>"),
		accentStyle.Render("<space>"),
		accentStyle.Render("<enter>"),
		accentStyle.Render("<esc>"),
		accentStyle.Render("<q>"))
}

// displayDate reduces an RFC 3339 timestamp to its date part. Strings without
// a time separator have no usable date.
func displayDate(timestamp string) string {
	date, _, found := strings.Cut(timestamp, "T")
	if !found {
		return constants.PlaceholderNone
	}
	return date
}
