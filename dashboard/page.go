// Package dashboard renders the tool registry into category sections and runs
// the page's edit-mode state machine, search filter and dialogs.
package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tool-portal/notes"
	"tool-portal/registry"
)

var (
	ErrNotEditing      = errors.New("not in edit mode")
	ErrSearchDisabled  = errors.New("search is disabled while editing")
	ErrLimitReached    = errors.New("category tool limit reached")
	ErrUnknownCategory = errors.New("unknown category")
	ErrDialogClosed    = errors.New("dialog is not open")
)

// Dialog identifies one of the page's modal panels.
type Dialog string

const (
	AddToolDialog  Dialog = "add"
	EditToolDialog Dialog = "edit"
)

// ActionKind says what a link click did.
type ActionKind string

const (
	Navigate   ActionKind = "navigate"
	Deleted    ActionKind = "deleted"
	EditOpened ActionKind = "edit"
)

// LinkAction is the outcome of ClickLink.
type LinkAction struct {
	Kind ActionKind `json:"kind"`
	URL  string     `json:"url,omitempty"`
}

// DeletePrompt is the question asked before a link is deleted in edit mode.
// Yes deletes, no opens the edit dialog.
func DeletePrompt(name string) string {
	return fmt.Sprintf("Do you want to DELETE \"%s\" or EDIT its URL? \n\n Press OK to delete, or Cancel to edit URL.", name)
}

// Page owns the registry, the notes and the rendered view. Every method runs
// under one mutex, which makes the page the registry's single writer.
type Page struct {
	mu        sync.Mutex
	registry  *registry.Registry
	notes     *notes.Book
	logger    *slog.Logger
	mode      Mode
	view      View
	listeners []func(View)
}

// New builds a page over layout and renders it once.
func New(reg *registry.Registry, book *notes.Book, layout []Category, logger *slog.Logger) *Page {
	p := &Page{
		registry: reg,
		notes:    book,
		logger:   logger,
		view: View{
			Sections: newSections(layout),
			Toggle:   toggleFor(Browsing),
			Notes:    book.Load(),
		},
	}
	reg.OnChange(p.renderLocked)
	p.renderLocked()
	return p
}

// Subscribe registers fn to receive a copy of the view after every change.
// fn runs with the page locked and must not call back into the page.
func (p *Page) Subscribe(fn func(View)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// View returns a copy of the current view.
func (p *Page) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view.clone()
}

func (p *Page) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// Tools returns every tool in the registry, including ones no section shows.
func (p *Page) Tools() []registry.Tool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registry.Tools()
}

// Tool returns the tool called name.
func (p *Page) Tool(name string) (registry.Tool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registry.Get(name)
}

func (p *Page) renderLocked() {
	renderSections(p.view.Sections, p.registry.Tools())
	filterSections(p.view.Sections, p.view.Search.Term)
	checkLimits(p.view.Sections)
	p.publishLocked()
}

func (p *Page) publishLocked() {
	if len(p.listeners) == 0 {
		return
	}
	v := p.view.clone()
	for _, fn := range p.listeners {
		fn(v)
	}
}

// Search applies term as the link filter.
func (p *Page) Search(term string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.view.Search.Disabled {
		return ErrSearchDisabled
	}
	p.view.Search.Term = term
	filterSections(p.view.Sections, term)
	p.publishLocked()
	return nil
}

// ToggleEditMode switches between browsing and editing and returns the new
// mode. Entering edit mode clears the search so every tool is reachable;
// leaving it closes any open dialog.
func (p *Page) ToggleEditMode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.toggleLocked()
	return p.mode
}

// SetMode switches to m if the page is not already in it.
func (p *Page) SetMode(m Mode) Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != m {
		p.toggleLocked()
	}
	return p.mode
}

func (p *Page) toggleLocked() {
	if p.mode == Browsing {
		p.mode = Editing
		p.view.Search.Term = ""
		filterSections(p.view.Sections, "")
		p.view.Search.Disabled = true
	} else {
		p.mode = Browsing
		p.view.Search.Disabled = false
		p.view.AddDialog = AddDialog{}
		p.view.EditDialog = EditDialog{}
	}
	p.view.Mode = p.mode
	p.view.Toggle = toggleFor(p.mode)
	p.logger.Info("edit mode toggled", "mode", p.mode)
	p.publishLocked()
}

// ClickLink handles a click on the tool called name. While browsing it returns
// the URL to open. While editing it asks confirm with DeletePrompt: yes
// deletes the tool, no opens the edit dialog.
func (p *Page) ClickLink(name string, confirm func(prompt string) bool) (LinkAction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tool, ok := p.registry.Get(name)
	if !ok {
		return LinkAction{}, fmt.Errorf("click %q: %w", name, registry.ErrNotFound)
	}
	if p.mode == Browsing {
		return LinkAction{Kind: Navigate, URL: tool.URL}, nil
	}

	if confirm(DeletePrompt(name)) {
		if err := p.registry.Remove(name); err != nil {
			return LinkAction{}, err
		}
		return LinkAction{Kind: Deleted}, nil
	}
	p.openEditLocked(tool)
	return LinkAction{Kind: EditOpened}, nil
}

// OpenAddDialog opens the add dialog for category with empty fields.
func (p *Page) OpenAddDialog(category string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != Editing {
		return ErrNotEditing
	}
	if err := p.checkCapacityLocked(category); err != nil {
		return err
	}
	p.view.AddDialog = AddDialog{Open: true, Category: category}
	p.publishLocked()
	return nil
}

// ConfirmAddDialog adds the tool described by name and url to the dialog's
// category. The dialog stays open on a validation alert. It closes on success,
// when the tool was added but could not be saved, and with ErrLimitReached
// when the category filled up while the dialog was open.
func (p *Page) ConfirmAddDialog(name, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	d := &p.view.AddDialog
	if !d.Open {
		return ErrDialogClosed
	}
	if p.mode != Editing {
		return ErrNotEditing
	}
	if err := p.checkCapacityLocked(d.Category); err != nil {
		p.view.AddDialog = AddDialog{}
		p.publishLocked()
		return err
	}
	d.Name, d.URL = name, url
	if err := p.registry.Add(name, url, d.Category); err != nil {
		p.settleDialogLocked(err, func() { p.view.AddDialog = AddDialog{} })
		return err
	}
	p.view.AddDialog = AddDialog{}
	p.publishLocked()
	return nil
}

// settleDialogLocked publishes a failed confirm. Alerts leave the dialog open
// for correction; a failed save means the change was applied, so the dialog
// is closed.
func (p *Page) settleDialogLocked(err error, closeDialog func()) {
	switch {
	case errors.Is(err, registry.ErrPersist):
		closeDialog()
	default:
		if _, ok := registry.AlertOf(err); !ok {
			return
		}
	}
	p.publishLocked()
}

func (p *Page) CancelAddDialog() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.AddDialog = AddDialog{}
	p.publishLocked()
}

// OpenEditDialog opens the edit dialog for the tool called name. A "#"
// placeholder URL is shown as empty.
func (p *Page) OpenEditDialog(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != Editing {
		return ErrNotEditing
	}
	tool, ok := p.registry.Get(name)
	if !ok {
		return fmt.Errorf("edit %q: %w", name, registry.ErrNotFound)
	}
	p.openEditLocked(tool)
	return nil
}

func (p *Page) openEditLocked(tool registry.Tool) {
	url := tool.URL
	if url == "#" {
		url = ""
	}
	p.view.EditDialog = EditDialog{Open: true, Name: tool.Name, URL: url}
	p.publishLocked()
}

// ConfirmEditDialog stores url for the tool the edit dialog was opened on.
func (p *Page) ConfirmEditDialog(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	d := &p.view.EditDialog
	if !d.Open {
		return ErrDialogClosed
	}
	if p.mode != Editing {
		return ErrNotEditing
	}
	d.URL = url
	if err := p.registry.UpdateURL(d.Name, url); err != nil {
		p.settleDialogLocked(err, func() { p.view.EditDialog = EditDialog{} })
		return err
	}
	p.view.EditDialog = EditDialog{}
	p.publishLocked()
	return nil
}

func (p *Page) CancelEditDialog() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.EditDialog = EditDialog{}
	p.publishLocked()
}

// Dismiss handles a click whose target is a dialog backdrop: the dialog the
// backdrop belongs to is closed, nothing else changes.
func (p *Page) Dismiss(target Dialog) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch target {
	case AddToolDialog:
		p.view.AddDialog = AddDialog{}
	case EditToolDialog:
		p.view.EditDialog = EditDialog{}
	default:
		return
	}
	p.publishLocked()
}

// AddTool adds a tool without going through the add dialog. The category's
// add button must be enabled.
func (p *Page) AddTool(name, url, category string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkCapacityLocked(category); err != nil {
		return err
	}
	return p.registry.Add(name, url, category)
}

func (p *Page) UpdateToolURL(name, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registry.UpdateURL(name, url)
}

func (p *Page) RemoveTool(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registry.Remove(name)
}

func (p *Page) checkCapacityLocked(category string) error {
	s, ok := p.view.Section(category)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if s.Add.Disabled {
		return fmt.Errorf("%w: %s", ErrLimitReached, s.Add.Label)
	}
	return nil
}

// Notes returns the current note values.
func (p *Page) Notes() notes.Notes {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view.Notes
}

// SetNote stores value as field. Notes are editable in either mode.
func (p *Page) SetNote(field notes.Field, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.notes.Set(field, value); err != nil {
		return err
	}
	p.view.Notes = p.notes.Load()
	p.publishLocked()
	return nil
}
