// Package tui is the interactive conversation picker shown before an
// import. It edits a selection.State in place; when the program exits the
// caller reads the final selection off the same state.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/models"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/selection"
)

type viewMode int

const (
	pickView viewMode = iota
	filterView
	helpView
)

// Model drives the picker. Filter and sort only change what is visible;
// membership changes go through the selection state's set operations.
type Model struct {
	sel      *selection.State
	statuses map[string]models.Status

	mode        viewMode
	filterInput textinput.Model

	visible []string
	cursor  int
	offset  int
	width   int
	height  int

	sortField selection.SortField
	sortAsc   bool

	confirmed bool
}

// New builds a picker over an already-initialized selection. The statuses
// map labels each row (new/updated/imported/ignored) and may be nil.
func New(sel *selection.State, statuses map[string]models.Status) Model {
	input := textinput.New()
	input.Placeholder = "title or keyword"
	input.CharLimit = 80

	m := Model{
		sel:         sel,
		statuses:    statuses,
		filterInput: input,
		sortField:   selection.SortUpdated,
	}
	m.refresh()
	return m
}

// Confirmed reports whether the user accepted the selection (enter) rather
// than cancelling (q/esc/ctrl+c).
func (m Model) Confirmed() bool {
	return m.confirmed
}

// refresh re-reads the visible rows and keeps the cursor in range.
func (m *Model) refresh() {
	m.visible = m.sel.Visible()
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case pickView:
			return m.updatePick(msg)
		case filterView:
			return m.updateFilter(msg)
		case helpView:
			m.mode = pickView
			return m, nil
		}
	}

	return m, nil
}

func (m Model) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "enter":
		m.confirmed = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil

	case " ":
		if m.cursor < len(m.visible) {
			m.sel.Toggle(m.visible[m.cursor])
		}
		return m, nil

	case "a":
		m.sel.SelectAll()
		return m, nil

	case "n":
		m.sel.ClearAll()
		return m, nil

	case "v":
		m.sel.SelectVisible()
		return m, nil

	case "x":
		m.sel.ClearVisible()
		return m, nil

	case "s":
		m.sortField = nextSortField(m.sortField)
		m.sel.SetSort(m.sortField, m.sortAsc)
		m.refresh()
		return m, nil

	case "r":
		m.sortAsc = !m.sortAsc
		m.sel.SetSort(m.sortField, m.sortAsc)
		m.refresh()
		return m, nil

	case "/":
		m.mode = filterView
		m.filterInput.Focus()
		return m, textinput.Blink

	case "?":
		m.mode = helpView
		return m, nil
	}

	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = pickView
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.sel.SetFilter("")
		m.refresh()
		return m, nil

	case "enter":
		m.mode = pickView
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)

	// Live filter on every keystroke.
	m.sel.SetFilter(m.filterInput.Value())
	m.cursor = 0
	m.offset = 0
	m.refresh()
	return m, cmd
}

func nextSortField(f selection.SortField) selection.SortField {
	switch f {
	case selection.SortUpdated:
		return selection.SortCreated
	case selection.SortCreated:
		return selection.SortTitle
	default:
		return selection.SortUpdated
	}
}

// Run shows the picker and blocks until the user confirms or cancels.
// It returns true when the user confirmed the selection.
func Run(sel *selection.State, statuses map[string]models.Status) (bool, error) {
	p := tea.NewProgram(New(sel, statuses), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.Confirmed(), nil
	}
	return false, nil
}
