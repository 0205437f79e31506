package dashboard_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tool-portal/dashboard"
	"tool-portal/notes"
	"tool-portal/registry"
	"tool-portal/storage"
)

var testLayout = []dashboard.Category{
	{ID: "dev", Title: "Development", MaxTools: 2},
	{ID: "ops", Title: "Operations", MaxTools: 5},
	{ID: "misc", Title: "Misc"},
}

func newPage(t *testing.T) (*dashboard.Page, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	return pageOver(store), store
}

func pageOver(store storage.Store) *dashboard.Page {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := registry.Load(store, logger)
	return dashboard.New(reg, notes.NewBook(store, logger), testLayout, logger)
}

func section(t *testing.T, v dashboard.View, id string) *dashboard.Section {
	t.Helper()
	s, ok := v.Section(id)
	require.True(t, ok, "section %s", id)
	return s
}

func linkNames(s *dashboard.Section) []string {
	var names []string
	for _, l := range s.Links {
		names = append(names, l.Name)
	}
	return names
}

func visibleNames(s *dashboard.Section) []string {
	var names []string
	for _, l := range s.Links {
		if !l.Hidden {
			names = append(names, l.Name)
		}
	}
	return names
}

func yes(string) bool { return true }
func no(string) bool  { return false }

func TestInitialView(t *testing.T) {
	p, _ := newPage(t)
	v := p.View()

	assert.Equal(t, dashboard.Browsing, v.Mode)
	assert.False(t, v.Search.Disabled)
	assert.Equal(t, dashboard.Toggle{Icon: "⚙️", Label: "Settings"}, v.Toggle)
	require.Len(t, v.Sections, 3)
	for _, s := range v.Sections {
		assert.Empty(t, s.Links)
		assert.Equal(t, dashboard.AddButton{Label: "+ Add Tool"}, s.Add)
	}
}

func TestLimitScenario(t *testing.T) {
	p, _ := newPage(t)
	p.ToggleEditMode()

	require.NoError(t, p.OpenAddDialog("dev"))
	require.NoError(t, p.ConfirmAddDialog("Compiler", "https://x"))
	v := p.View()
	dev := section(t, v, "dev")
	assert.Equal(t, []string{"Compiler"}, linkNames(dev))
	assert.False(t, dev.Add.Disabled)
	assert.False(t, v.AddDialog.Open)

	require.NoError(t, p.OpenAddDialog("dev"))
	require.NoError(t, p.ConfirmAddDialog("Linter", "https://y"))
	dev = section(t, p.View(), "dev")
	assert.Equal(t, dashboard.AddButton{Disabled: true, Label: "Limit (2) Reached"}, dev.Add)

	require.ErrorIs(t, p.OpenAddDialog("dev"), dashboard.ErrLimitReached)
	require.ErrorIs(t, p.AddTool("Formatter", "https://z", "dev"), dashboard.ErrLimitReached)
	assert.Len(t, p.Tools(), 2)

	action, err := p.ClickLink("Linter", yes)
	require.NoError(t, err)
	assert.Equal(t, dashboard.Deleted, action.Kind)
	dev = section(t, p.View(), "dev")
	assert.Equal(t, []string{"Compiler"}, linkNames(dev))
	assert.Equal(t, dashboard.AddButton{Label: "+ Add Tool"}, dev.Add)
	require.NoError(t, p.OpenAddDialog("dev"))
}

func TestUnlimitedCategory(t *testing.T) {
	p, _ := newPage(t)
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, p.AddTool(name, "https://"+name, "misc"))
	}
	assert.False(t, section(t, p.View(), "misc").Add.Disabled)
}

func TestOrphanCategoryHiddenButKept(t *testing.T) {
	store := storage.NewMemoryStore()
	reg := registry.Load(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, reg.Add("Lost", "https://lost", "gone"))

	p := pageOver(store)
	for _, s := range p.View().Sections {
		assert.Empty(t, s.Links)
	}
	assert.Len(t, p.Tools(), 1)
}

func TestLinksSortedWithinSection(t *testing.T) {
	p, _ := newPage(t)
	for _, name := range []string{"zeta", "Alpha", "beta"} {
		require.NoError(t, p.AddTool(name, "https://x", "ops"))
	}
	assert.Equal(t, []string{"Alpha", "beta", "zeta"}, linkNames(section(t, p.View(), "ops")))
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	p, _ := newPage(t)
	require.NoError(t, p.AddTool("Abacus", "https://a", "ops"))
	require.NoError(t, p.AddTool("crab", "https://c", "ops"))
	require.NoError(t, p.AddTool("xyz", "https://x", "misc"))

	require.NoError(t, p.Search("aB"))
	v := p.View()
	assert.Equal(t, []string{"Abacus", "crab"}, visibleNames(section(t, v, "ops")))
	assert.Empty(t, visibleNames(section(t, v, "misc")))
	assert.True(t, section(t, v, "misc").Hidden)
	assert.True(t, section(t, v, "dev").Hidden, "empty section hides under a search")
	assert.False(t, section(t, v, "ops").Hidden)

	// Hidden links stay rendered and stay in the registry.
	assert.Len(t, section(t, v, "misc").Links, 1)
	assert.Len(t, p.Tools(), 3)

	require.NoError(t, p.Search(""))
	for _, s := range p.View().Sections {
		assert.False(t, s.Hidden)
		for _, l := range s.Links {
			assert.False(t, l.Hidden)
		}
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	p, _ := newPage(t)
	before := p.View()

	assert.Equal(t, dashboard.Editing, p.ToggleEditMode())
	v := p.View()
	assert.True(t, v.Search.Disabled)
	assert.Equal(t, dashboard.Toggle{Icon: "✅", Label: "Save/Exit"}, v.Toggle)

	assert.Equal(t, dashboard.Browsing, p.ToggleEditMode())
	after := p.View()
	assert.Equal(t, before.Search, after.Search)
	assert.Equal(t, before.Toggle, after.Toggle)
	assert.Equal(t, before.Mode, after.Mode)
}

func TestEnteringEditModeClearsSearch(t *testing.T) {
	p, _ := newPage(t)
	require.NoError(t, p.AddTool("Abacus", "https://a", "ops"))
	require.NoError(t, p.AddTool("xyz", "https://x", "ops"))
	require.NoError(t, p.Search("ab"))

	p.ToggleEditMode()
	v := p.View()
	assert.Equal(t, "", v.Search.Term)
	assert.Equal(t, []string{"Abacus", "xyz"}, visibleNames(section(t, v, "ops")))
	assert.ErrorIs(t, p.Search("x"), dashboard.ErrSearchDisabled)
}

func TestBrowsingClickNavigates(t *testing.T) {
	p, _ := newPage(t)
	require.NoError(t, p.AddTool("Docs", "https://docs", "ops"))

	called := false
	action, err := p.ClickLink("Docs", func(string) bool { called = true; return true })
	require.NoError(t, err)
	assert.Equal(t, dashboard.LinkAction{Kind: dashboard.Navigate, URL: "https://docs"}, action)
	assert.False(t, called)
	assert.Len(t, p.Tools(), 1)
}

func TestBrowsingDialogsAreInert(t *testing.T) {
	p, _ := newPage(t)
	require.NoError(t, p.AddTool("Docs", "https://docs", "ops"))

	assert.ErrorIs(t, p.OpenAddDialog("ops"), dashboard.ErrNotEditing)
	assert.ErrorIs(t, p.OpenEditDialog("Docs"), dashboard.ErrNotEditing)
	assert.ErrorIs(t, p.ConfirmAddDialog("x", "y"), dashboard.ErrDialogClosed)
}

func TestEditingClickDeclineOpensEdit(t *testing.T) {
	p, _ := newPage(t)
	require.NoError(t, p.AddTool("Docs", "#", "ops"))
	p.ToggleEditMode()

	var prompt string
	action, err := p.ClickLink("Docs", func(q string) bool { prompt = q; return false })
	require.NoError(t, err)
	assert.Equal(t, dashboard.EditOpened, action.Kind)
	assert.Equal(t, dashboard.DeletePrompt("Docs"), prompt)
	assert.Contains(t, prompt, `"Docs"`)

	v := p.View()
	assert.Equal(t, dashboard.EditDialog{Open: true, Name: "Docs", URL: ""}, v.EditDialog)
	assert.Len(t, p.Tools(), 1)
}

func TestEditDialogFlow(t *testing.T) {
	p, _ := newPage(t)
	require.NoError(t, p.AddTool("Docs", "https://old", "ops"))
	p.ToggleEditMode()
	require.NoError(t, p.OpenEditDialog("Docs"))
	assert.Equal(t, "https://old", p.View().EditDialog.URL)

	err := p.ConfirmEditDialog("  ")
	require.ErrorIs(t, err, registry.ErrEmptyURL)
	assert.True(t, p.View().EditDialog.Open, "dialog stays open on validation failure")

	require.NoError(t, p.ConfirmEditDialog("https://new"))
	v := p.View()
	assert.False(t, v.EditDialog.Open)
	assert.Equal(t, "https://new", section(t, v, "ops").Links[0].URL)
	assert.ErrorIs(t, p.ConfirmEditDialog("https://x"), dashboard.ErrDialogClosed)
}

func TestEditDialogStaleTool(t *testing.T) {
	p, _ := newPage(t)
	require.NoError(t, p.AddTool("Docs", "https://old", "ops"))
	p.ToggleEditMode()
	require.NoError(t, p.OpenEditDialog("Docs"))
	require.NoError(t, p.RemoveTool("Docs"))

	assert.ErrorIs(t, p.ConfirmEditDialog("https://new"), registry.ErrNotFound)
	assert.Empty(t, p.Tools())
}

func TestAddDialogValidationKeepsDialogOpen(t *testing.T) {
	p, _ := newPage(t)
	p.ToggleEditMode()
	require.NoError(t, p.AddTool("Docs", "https://docs", "ops"))

	require.NoError(t, p.OpenAddDialog("ops"))
	err := p.ConfirmAddDialog("Docs", "https://dup")
	require.ErrorIs(t, err, registry.ErrDuplicateName)
	v := p.View()
	assert.True(t, v.AddDialog.Open)
	assert.Equal(t, "ops", v.AddDialog.Category)

	require.ErrorIs(t, p.ConfirmAddDialog("", "https://x"), registry.ErrMissingField)
	assert.Len(t, p.Tools(), 1)

	p.CancelAddDialog()
	assert.False(t, p.View().AddDialog.Open)
	assert.Len(t, p.Tools(), 1)
}

func TestOpenAddDialogUnknownCategory(t *testing.T) {
	p, _ := newPage(t)
	p.ToggleEditMode()
	assert.ErrorIs(t, p.OpenAddDialog("nowhere"), dashboard.ErrUnknownCategory)
}

func TestDismissClosesOnlyTargetDialog(t *testing.T) {
	p, _ := newPage(t)
	require.NoError(t, p.AddTool("Docs", "https://docs", "ops"))
	p.ToggleEditMode()
	require.NoError(t, p.OpenAddDialog("ops"))
	require.NoError(t, p.OpenEditDialog("Docs"))

	p.Dismiss(dashboard.EditToolDialog)
	v := p.View()
	assert.False(t, v.EditDialog.Open)
	assert.True(t, v.AddDialog.Open)

	p.Dismiss("content")
	assert.True(t, p.View().AddDialog.Open)

	p.Dismiss(dashboard.AddToolDialog)
	assert.False(t, p.View().AddDialog.Open)
}

func TestNotesInView(t *testing.T) {
	p, store := newPage(t)
	require.NoError(t, p.SetNote(notes.Goals, "ship v2"))
	assert.Equal(t, "ship v2", p.Notes().Goals)

	assert.Equal(t, "ship v2", pageOver(store).View().Notes.Goals)
}

func TestSubscribeReceivesRenders(t *testing.T) {
	p, _ := newPage(t)
	var got []dashboard.View
	p.Subscribe(func(v dashboard.View) { got = append(got, v) })

	require.NoError(t, p.AddTool("Docs", "https://docs", "ops"))
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Docs"}, linkNames(section(t, got[0], "ops")))

	p.ToggleEditMode()
	assert.Len(t, got, 2)
}

func TestViewIsACopy(t *testing.T) {
	p, _ := newPage(t)
	require.NoError(t, p.AddTool("Docs", "https://docs", "ops"))

	v := p.View()
	section(t, v, "ops").Links[0].Name = "mutated"
	assert.Equal(t, "Docs", section(t, p.View(), "ops").Links[0].Name)
}

func TestConfirmAddRechecksLimit(t *testing.T) {
	p, _ := newPage(t)
	p.ToggleEditMode()
	require.NoError(t, p.AddTool("Compiler", "https://c", "dev"))
	require.NoError(t, p.OpenAddDialog("dev"))
	require.NoError(t, p.AddTool("Linter", "https://l", "dev"))

	err := p.ConfirmAddDialog("Formatter", "https://f")
	require.ErrorIs(t, err, dashboard.ErrLimitReached)

	v := p.View()
	assert.False(t, v.AddDialog.Open)
	assert.Equal(t, []string{"Compiler", "Linter"}, linkNames(section(t, v, "dev")))
	assert.True(t, section(t, v, "dev").Add.Disabled)
}

func TestLeavingEditModeClosesDialogs(t *testing.T) {
	p, _ := newPage(t)
	require.NoError(t, p.AddTool("Docs", "https://docs", "ops"))
	p.ToggleEditMode()
	require.NoError(t, p.OpenAddDialog("ops"))
	require.NoError(t, p.OpenEditDialog("Docs"))

	p.ToggleEditMode()
	v := p.View()
	assert.False(t, v.AddDialog.Open)
	assert.False(t, v.EditDialog.Open)

	assert.ErrorIs(t, p.ConfirmAddDialog("Sneaky", "https://s"), dashboard.ErrDialogClosed)
	assert.ErrorIs(t, p.ConfirmEditDialog("https://s"), dashboard.ErrDialogClosed)
	tool, _ := p.Tool("Docs")
	assert.Equal(t, "https://docs", tool.URL)
	assert.Len(t, p.Tools(), 1)
}

type failingStore struct{ storage.Store }

func (failingStore) SetItem(string, string) error { return errors.New("quota exceeded") }

func TestConfirmClosesDialogWhenSaveFails(t *testing.T) {
	p := pageOver(failingStore{storage.NewMemoryStore()})
	p.ToggleEditMode()
	require.NoError(t, p.OpenAddDialog("ops"))

	err := p.ConfirmAddDialog("Docs", "https://docs")
	require.ErrorIs(t, err, registry.ErrPersist)
	v := p.View()
	assert.False(t, v.AddDialog.Open)
	assert.Equal(t, []string{"Docs"}, linkNames(section(t, v, "ops")))

	require.NoError(t, p.OpenEditDialog("Docs"))
	require.ErrorIs(t, p.ConfirmEditDialog("https://new"), registry.ErrPersist)
	assert.False(t, p.View().EditDialog.Open)
}

func TestSetModeIsIdempotent(t *testing.T) {
	p, _ := newPage(t)
	assert.Equal(t, dashboard.Editing, p.SetMode(dashboard.Editing))
	assert.Equal(t, dashboard.Editing, p.SetMode(dashboard.Editing))
	assert.True(t, p.View().Search.Disabled)
	assert.Equal(t, dashboard.Browsing, p.SetMode(dashboard.Browsing))
	assert.False(t, p.View().Search.Disabled)
}
