package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tool-portal/dashboard"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("Tool Portal"))
	b.WriteString("  ")
	b.WriteString(m.view.Toggle.Icon + " " + m.view.Toggle.Label)
	b.WriteString("\n")

	switch {
	case m.view.Search.Disabled:
		b.WriteString(m.styles.help.Render("search disabled while editing"))
	case m.focus == focusSearch || m.view.Search.Term != "":
		b.WriteString(m.search.View())
	default:
		b.WriteString(m.styles.help.Render("press / to search"))
	}
	b.WriteString("\n")

	b.WriteString(m.renderSections())

	switch m.focus {
	case focusAdd:
		b.WriteString(m.renderAddDialog())
	case focusEdit:
		b.WriteString(m.renderEditDialog())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderSections() string {
	var b strings.Builder
	items := m.items()
	idx := 0
	for _, s := range m.view.Sections {
		if s.Hidden {
			continue
		}
		b.WriteString(m.styles.section.Render(s.Category.Title))
		b.WriteString("\n")
		for idx < len(items) && items[idx].category == s.Category.ID {
			b.WriteString(m.renderItem(items[idx], idx == m.cursor))
			b.WriteString("\n")
			idx++
		}
	}
	return b.String()
}

func (m Model) renderItem(it item, selected bool) string {
	label := it.name
	style := m.styles.link
	if it.kind == addItem {
		style = m.styles.button
		if it.disabled {
			style = m.styles.disabled
		}
	}
	if selected && m.focus == focusList {
		return m.styles.selected.Render("> " + label)
	}
	return style.Render(label)
}

func (m Model) renderAddDialog() string {
	title := "Add Tool"
	if s, ok := m.view.Section(m.view.AddDialog.Category); ok {
		title += " to " + s.Category.Title
	}
	return m.styles.dialog.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.nameIn.View(),
		m.urlIn.View(),
	))
}

func (m Model) renderEditDialog() string {
	return m.styles.dialog.Render(lipgloss.JoinVertical(lipgloss.Left,
		"Edit Tool URL: "+m.view.EditDialog.Name,
		m.urlIn.View(),
	))
}

func (m Model) helpLine() string {
	switch m.focus {
	case focusSearch:
		return "type to filter • enter/esc done"
	case focusConfirm:
		return "y delete • n edit url • esc cancel"
	case focusAdd:
		return "tab switch field • enter add • esc cancel"
	case focusEdit:
		return "enter save • esc cancel"
	}
	if m.view.Mode == dashboard.Editing {
		return "↑/↓ move • enter delete/edit or add • e save/exit • q quit"
	}
	return "↑/↓ move • enter open • / search • e settings • q quit"
}
