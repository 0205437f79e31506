package notes_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tool-portal/notes"
	"tool-portal/storage"
)

func newBook(store storage.Store) *notes.Book {
	return notes.NewBook(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoadMissingIsEmpty(t *testing.T) {
	assert.Equal(t, notes.Notes{}, newBook(storage.NewMemoryStore()).Load())
}

func TestSetPersistsUnderOwnKey(t *testing.T) {
	store := storage.NewMemoryStore()
	b := newBook(store)

	require.NoError(t, b.Set(notes.Reminders, "  standup at 9\n"))

	raw, ok, _ := store.GetItem("maplevilleReminders")
	require.True(t, ok)
	assert.Equal(t, "  standup at 9\n", raw)

	got := newBook(store).Load()
	assert.Equal(t, "  standup at 9\n", got.Reminders)
	assert.Empty(t, got.Goals)
	assert.Empty(t, got.Extensions)
	assert.Empty(t, got.Announcements)
}

func TestFieldsAreIndependent(t *testing.T) {
	b := newBook(storage.NewMemoryStore())
	for i, f := range notes.Fields {
		require.NoError(t, b.Set(f, string(rune('a'+i))))
	}
	require.NoError(t, b.Set(notes.Goals, ""))

	got := b.Load()
	assert.Equal(t, "", got.Get(notes.Goals))
	assert.Equal(t, "b", got.Get(notes.Extensions))
	assert.Equal(t, "c", got.Get(notes.Announcements))
	assert.Equal(t, "d", got.Get(notes.Reminders))
}

func TestParseField(t *testing.T) {
	f, err := notes.ParseField("announcements")
	require.NoError(t, err)
	assert.Equal(t, notes.Announcements, f)

	_, err = notes.ParseField("todo")
	assert.ErrorIs(t, err, notes.ErrUnknownField)

	assert.ErrorIs(t, newBook(storage.NewMemoryStore()).Set("todo", "x"), notes.ErrUnknownField)
}
