// Package tui is a terminal front end for the dashboard page.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tool-portal/dashboard"
	"tool-portal/registry"
)

// focus is what currently receives keystrokes.
type focus int

const (
	focusList focus = iota
	focusSearch
	focusConfirm
	focusAdd
	focusEdit
)

type itemKind int

const (
	linkItem itemKind = iota
	addItem
)

// item is one selectable row: a visible link, or a section's add button
// while editing.
type item struct {
	kind     itemKind
	category string
	name     string
	url      string
	disabled bool
}

// Model is the bubbletea model over a dashboard.Page.
type Model struct {
	page   *dashboard.Page
	view   dashboard.View
	styles styles

	focus    focus
	cursor   int
	pending  string
	addField int

	search   textinput.Model
	nameIn   textinput.Model
	urlIn    textinput.Model
	status   string
	quitting bool
}

// New creates a Model showing page.
func New(page *dashboard.Page) Model {
	search := textinput.New()
	search.Placeholder = "Search tools..."
	search.Prompt = "/ "

	nameIn := textinput.New()
	nameIn.Placeholder = "Tool name"
	urlIn := textinput.New()
	urlIn.Placeholder = "https://"

	return Model{
		page:   page,
		view:   page.View(),
		styles: defaultStyles(),
		search: search,
		nameIn: nameIn,
		urlIn:  urlIn,
	}
}

// Run shows page in the terminal until the user quits or ctx ends.
func Run(ctx context.Context, page *dashboard.Page) error {
	p := tea.NewProgram(New(page), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.focus {
	case focusSearch:
		return m.updateSearch(key)
	case focusConfirm:
		return m.updateConfirm(key)
	case focusAdd:
		return m.updateAdd(key)
	case focusEdit:
		return m.updateEdit(key)
	}
	return m.updateList(key)
}

func (m Model) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.items()
	switch key.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "/":
		if m.view.Search.Disabled {
			m.status = "Search is disabled while editing."
			return m, nil
		}
		m.focus = focusSearch
		cmd := m.search.Focus()
		return m, cmd
	case "e":
		m.page.ToggleEditMode()
		m.status = ""
		m.search.SetValue("")
		m.refresh()
	case "enter":
		if m.cursor >= len(items) {
			return m, nil
		}
		return m.activate(items[m.cursor])
	}
	return m, nil
}

func (m Model) activate(it item) (tea.Model, tea.Cmd) {
	if it.kind == addItem {
		if err := m.page.OpenAddDialog(it.category); err != nil {
			m.status = errText(err)
			return m, nil
		}
		m.nameIn.SetValue("")
		m.urlIn.SetValue("")
		m.addField = 0
		m.urlIn.Blur()
		m.focus = focusAdd
		m.refresh()
		cmd := m.nameIn.Focus()
		return m, cmd
	}

	if m.page.Mode() == dashboard.Browsing {
		action, err := m.page.ClickLink(it.name, func(string) bool { return false })
		if err != nil {
			m.status = errText(err)
			return m, nil
		}
		m.status = "Open " + action.URL
		return m, nil
	}

	m.pending = it.name
	m.focus = focusConfirm
	m.status = dashboard.DeletePrompt(it.name)
	return m, nil
}

func (m Model) updateConfirm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	var answer bool
	switch key.String() {
	case "y", "enter":
		answer = true
	case "n":
		answer = false
	case "esc":
		m.focus = focusList
		m.status = ""
		return m, nil
	default:
		return m, nil
	}

	name := m.pending
	m.pending = ""
	action, err := m.page.ClickLink(name, func(string) bool { return answer })
	m.refresh()
	if err != nil {
		m.focus = focusList
		m.status = errText(err)
		return m, nil
	}
	if action.Kind == dashboard.EditOpened {
		m.urlIn.SetValue(m.view.EditDialog.URL)
		m.focus = focusEdit
		m.status = ""
		cmd := m.urlIn.Focus()
		return m, cmd
	}
	m.focus = focusList
	m.status = fmt.Sprintf("Deleted %q.", name)
	return m, nil
}

func (m Model) updateSearch(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.search.Blur()
		m.focus = focusList
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(key)
	if err := m.page.Search(m.search.Value()); err != nil {
		m.status = errText(err)
	}
	m.refresh()
	return m, cmd
}

func (m Model) updateAdd(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.page.CancelAddDialog()
		m.closeDialog()
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		m.addField = 1 - m.addField
		if m.addField == 0 {
			m.urlIn.Blur()
			cmd := m.nameIn.Focus()
			return m, cmd
		}
		m.nameIn.Blur()
		cmd := m.urlIn.Focus()
		return m, cmd
	case tea.KeyEnter:
		if err := m.page.ConfirmAddDialog(m.nameIn.Value(), m.urlIn.Value()); err != nil {
			m.status = errText(err)
			m.refresh()
			if !m.page.View().AddDialog.Open {
				m.closeDialog()
			}
			return m, nil
		}
		m.closeDialog()
		return m, nil
	}

	var cmd tea.Cmd
	if m.addField == 0 {
		m.nameIn, cmd = m.nameIn.Update(key)
	} else {
		m.urlIn, cmd = m.urlIn.Update(key)
	}
	return m, cmd
}

func (m Model) updateEdit(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.page.CancelEditDialog()
		m.closeDialog()
		return m, nil
	case tea.KeyEnter:
		if err := m.page.ConfirmEditDialog(m.urlIn.Value()); err != nil {
			m.status = errText(err)
			m.refresh()
			if errors.Is(err, registry.ErrNotFound) {
				m.page.CancelEditDialog()
			}
			if !m.page.View().EditDialog.Open {
				m.closeDialog()
			}
			return m, nil
		}
		m.closeDialog()
		return m, nil
	}

	var cmd tea.Cmd
	m.urlIn, cmd = m.urlIn.Update(key)
	return m, cmd
}

func (m *Model) closeDialog() {
	m.nameIn.Blur()
	m.urlIn.Blur()
	m.focus = focusList
	m.refresh()
}

// refresh pulls the page's view and keeps the cursor in range.
func (m *Model) refresh() {
	m.view = m.page.View()
	if n := len(m.items()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) items() []item {
	var items []item
	editing := m.view.Mode == dashboard.Editing
	for _, s := range m.view.Sections {
		if s.Hidden {
			continue
		}
		for _, l := range s.Links {
			if !l.Hidden {
				items = append(items, item{kind: linkItem, category: s.Category.ID, name: l.Name, url: l.URL})
			}
		}
		if editing {
			items = append(items, item{kind: addItem, category: s.Category.ID, name: s.Add.Label, disabled: s.Add.Disabled})
		}
	}
	return items
}

// errText prefers the validation alert over the error string.
func errText(err error) string {
	if alert, ok := registry.AlertOf(err); ok {
		return alert
	}
	return strings.ToUpper(err.Error()[:1]) + err.Error()[1:] + "."
}
