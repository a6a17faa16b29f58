// Package selector implements the interactive update checklist. The model
// follows the bubbletea architecture: a value-type Model whose Update handles
// key events and whose View renders the checklist, driven by a synchronous
// event loop until the user confirms or cancels.
package selector

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crateup/crateup/pkg/outdated"
)

// Phase is the lifecycle state of the checklist.
type Phase int

const (
	// PhaseBrowsing accepts navigation and selection keys.
	PhaseBrowsing Phase = iota

	// PhaseConfirmed is terminal; the current selection becomes the update set.
	PhaseConfirmed

	// PhaseCancelled is terminal; nothing will be updated.
	PhaseCancelled
)

// Model is the checklist state over the outdated entries.
type Model struct {
	entries  []outdated.Entry
	selected []bool
	cursor   int
	phase    Phase
	total    int

	widths rowWidths
}

// NewModel builds the checklist over entries. total is the number of direct
// dependencies scanned, shown in the header. When preselect is true every row
// starts selected.
func NewModel(entries []outdated.Entry, total int, preselect bool) Model {
	selected := make([]bool, len(entries))
	if preselect {
		for i := range selected {
			selected[i] = true
		}
	}
	return Model{
		entries:  entries,
		selected: selected,
		total:    total,
		widths:   measure(entries),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Up/Left/k and Down/Right/j move the cursor
// with wrap-around, Space toggles the current row, a selects all, i inverts
// the selection, Enter confirms, and Esc, q, or Ctrl+C cancels.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "left", "k":
		if len(m.entries) > 0 {
			if m.cursor == 0 {
				m.cursor = len(m.entries) - 1
			} else {
				m.cursor--
			}
		}
	case "down", "right", "j":
		if len(m.entries) > 0 {
			m.cursor = (m.cursor + 1) % len(m.entries)
		}
	case " ":
		if len(m.entries) > 0 {
			m.selected[m.cursor] = !m.selected[m.cursor]
		}
	case "a":
		for i := range m.selected {
			m.selected[i] = true
		}
	case "i":
		for i := range m.selected {
			m.selected[i] = !m.selected[i]
		}
	case "enter":
		m.phase = PhaseConfirmed
		return m, tea.Quit
	case "esc", "q", "ctrl+c":
		m.phase = PhaseCancelled
		return m, tea.Quit
	}

	return m, nil
}

// Phase returns the current lifecycle state.
func (m Model) Phase() Phase {
	return m.phase
}

// SelectedCount returns the number of selected rows.
func (m Model) SelectedCount() int {
	count := 0
	for _, s := range m.selected {
		if s {
			count++
		}
	}
	return count
}

// Selected returns the selected entries in checklist order.
func (m Model) Selected() []outdated.Entry {
	var picked []outdated.Entry
	for i, s := range m.selected {
		if s {
			picked = append(picked, m.entries[i])
		}
	}
	return picked
}

// Run presents the checklist on the terminal and blocks until the user
// confirms or cancels. It returns the confirmed selection; confirmed is false
// when the user cancelled.
func Run(entries []outdated.Entry, total int, preselect bool) (picked []outdated.Entry, confirmed bool, err error) {
	program := tea.NewProgram(NewModel(entries, total, preselect), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return nil, false, err
	}

	model, ok := final.(Model)
	if !ok || model.Phase() != PhaseConfirmed {
		return nil, false, nil
	}
	return model.Selected(), true, nil
}
