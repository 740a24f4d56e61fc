package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/models"
)

func (m Model) View() string {
	switch m.mode {
	case helpView:
		return m.viewHelp()
	default:
		return m.viewPick()
	}
}

func (m Model) viewPick() string {
	var b strings.Builder

	selected, total := m.sel.Counts()
	header := fmt.Sprintf("Select conversations  %d/%d selected", selected, total)
	if len(m.visible) != total {
		header += fmt.Sprintf("  (%d shown)", len(m.visible))
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if m.mode == filterView || m.filterInput.Value() != "" {
		b.WriteString(filterLabelStyle.Render("Filter: "))
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(metaStyle.Render("No conversations match the filter."))
		b.WriteString("\n")
	} else {
		start, end := m.window()
		for i := start; i < end; i++ {
			b.WriteString(m.renderRow(i))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpLineStyle.Render(m.helpLine()))
	return b.String()
}

// window returns the visible slice bounds for the current cursor position.
func (m Model) window() (int, int) {
	rows := m.height - 5
	if rows < 5 {
		rows = 5
	}

	start := m.offset
	if m.cursor < start {
		start = m.cursor
	}
	if m.cursor >= start+rows {
		start = m.cursor - rows + 1
	}
	end := start + rows
	if end > len(m.visible) {
		end = len(m.visible)
	}
	return start, end
}

func (m Model) renderRow(i int) string {
	uid := m.visible[i]
	c, _ := m.sel.Conversation(uid)

	check := "[ ]"
	if m.sel.Has(uid) {
		check = "[x]"
	}

	title := c.Title
	if title == "" {
		title = "(untitled)"
	}
	if len(title) > 60 {
		title = title[:57] + "..."
	}

	status := ""
	if s, ok := m.statuses[uid]; ok {
		status = statusStyleFor(s).Render(string(s))
	}

	updated := ""
	if c.UpdatedAt > 0 {
		updated = humanize.Time(time.UnixMilli(c.UpdatedAt))
	}

	line := fmt.Sprintf("%s %-60s %-9s %s", check, title, status, metaStyle.Render(updated))
	if i == m.cursor {
		return cursorRowStyle.Render("> " + line)
	}
	return "  " + line
}

func (m Model) helpLine() string {
	if m.mode == filterView {
		return "enter apply • esc clear filter"
	}
	return "space toggle • a all • n none • v/x visible • / filter • s sort • enter import • q quit • ? more"
}

func (m Model) viewHelp() string {
	help := `Conversation picker

  up/k, down/j   move
  space          toggle the conversation under the cursor
  a / n          select all / select none (all overrides exclusions)
  v / x          select / deselect the visible rows only
  /              filter by title or keyword (visibility only)
  s              cycle sort: updated, created, title
  r              reverse sort order
  enter          import the current selection
  q, esc         quit without importing

Press any key to go back.`
	return helpLineStyle.Render(help)
}

func statusStyleFor(s models.Status) lipgloss.Style {
	switch s {
	case models.StatusNew:
		return statusNewStyle
	case models.StatusUpdated:
		return statusUpdatedStyle
	case models.StatusIgnored:
		return statusIgnoredStyle
	default:
		return statusImportedStyle
	}
}
