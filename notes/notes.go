// Package notes stores the dashboard's free-text fields. Each field lives under
// its own storage key and is independent of the others.
package notes

import (
	"errors"
	"fmt"
	"log/slog"

	"tool-portal/storage"
)

// Field names one note.
type Field string

const (
	Goals         Field = "goals"
	Extensions    Field = "extensions"
	Announcements Field = "announcements"
	Reminders     Field = "reminders"
)

// Fields lists every note in display order.
var Fields = []Field{Goals, Extensions, Announcements, Reminders}

var storageKeys = map[Field]string{
	Goals:         "maplevilleGoals",
	Extensions:    "maplevilleExtensions",
	Announcements: "maplevilleAnnouncements",
	Reminders:     "maplevilleReminders",
}

var ErrUnknownField = errors.New("unknown note field")

// ParseField maps a field name to a Field.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if _, ok := storageKeys[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

// Key returns the storage key of f.
func (f Field) Key() string { return storageKeys[f] }

// Notes is a snapshot of all four fields.
type Notes struct {
	Goals         string `json:"goals"`
	Extensions    string `json:"extensions"`
	Announcements string `json:"announcements"`
	Reminders     string `json:"reminders"`
}

// Get returns the value of f.
func (n Notes) Get(f Field) string {
	switch f {
	case Goals:
		return n.Goals
	case Extensions:
		return n.Extensions
	case Announcements:
		return n.Announcements
	case Reminders:
		return n.Reminders
	}
	return ""
}

func (n *Notes) set(f Field, v string) {
	switch f {
	case Goals:
		n.Goals = v
	case Extensions:
		n.Extensions = v
	case Announcements:
		n.Announcements = v
	case Reminders:
		n.Reminders = v
	}
}

// Book reads and writes notes through a storage.Store.
type Book struct {
	store  storage.Store
	logger *slog.Logger
}

func NewBook(store storage.Store, logger *slog.Logger) *Book {
	return &Book{store: store, logger: logger}
}

// Load reads every field. Missing or unreadable fields are empty.
func (b *Book) Load() Notes {
	var n Notes
	for _, f := range Fields {
		v, _, err := b.store.GetItem(f.Key())
		if err != nil {
			b.logger.Warn("failed to read note", "field", f, "error", err)
			continue
		}
		n.set(f, v)
	}
	return n
}

// Set stores value verbatim under f's key.
func (b *Book) Set(f Field, value string) error {
	if _, ok := storageKeys[f]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	if err := b.store.SetItem(f.Key(), value); err != nil {
		return fmt.Errorf("persist note %s: %w", f, err)
	}
	return nil
}
