// Package registry holds the dashboard's tools, keyed by name and mirrored in
// full to a storage.Store after every mutation.
package registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"tool-portal/storage"
)

// StorageKey holds the JSON-encoded registry. The "_v2" suffix retired an
// earlier format stored under "maplevilleTools", which is never read.
const StorageKey = "maplevilleTools_v2"

// Registry maps tool names to tools. It is not safe for concurrent use; its
// owner serializes every call.
type Registry struct {
	store    storage.Store
	logger   *slog.Logger
	tools    map[string]entry
	onChange func()
}

// Load reads the registry from store. Missing, unreadable or malformed data
// yields an empty registry.
func Load(store storage.Store, logger *slog.Logger) *Registry {
	r := &Registry{store: store, logger: logger, tools: map[string]entry{}}

	raw, ok, err := store.GetItem(StorageKey)
	switch {
	case err != nil:
		logger.Warn("failed to read tool registry, starting empty", "error", err)
	case !ok:
	default:
		var tools map[string]entry
		if err := json.Unmarshal([]byte(raw), &tools); err != nil {
			logger.Warn("malformed tool registry, starting empty", "error", err)
			break
		}
		if tools != nil {
			r.tools = tools
		}
	}
	return r
}

// OnChange installs fn to be called after every mutation.
func (r *Registry) OnChange(fn func()) {
	r.onChange = fn
}

// Add inserts a new tool. name and url are trimmed; both must be non-empty and
// name must not already exist. Names compare case-sensitively.
func (r *Registry) Add(name, url, category string) error {
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)

	if name == "" || url == "" {
		return &ValidationError{Err: ErrMissingField, Alert: "Both Tool Name and URL are required."}
	}
	if _, exists := r.tools[name]; exists {
		return &ValidationError{
			Err:   ErrDuplicateName,
			Alert: fmt.Sprintf("A tool named \"%s\" already exists. Please choose a unique name.", name),
		}
	}

	r.tools[name] = entry{URL: url, Category: category}
	r.logger.Info("tool added", "name", name, "category", category)
	return r.commit()
}

// UpdateURL replaces the url of an existing tool, leaving its name and
// category untouched.
func (r *Registry) UpdateURL(name, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return &ValidationError{Err: ErrEmptyURL, Alert: "Please enter a valid URL."}
	}

	e, ok := r.tools[name]
	if !ok {
		return fmt.Errorf("update %q: %w", name, ErrNotFound)
	}
	e.URL = url
	r.tools[name] = e
	r.logger.Info("tool url updated", "name", name)
	return r.commit()
}

// Remove deletes name. Removing an absent name still persists and notifies.
func (r *Registry) Remove(name string) error {
	delete(r.tools, name)
	r.logger.Info("tool removed", "name", name)
	return r.commit()
}

// Get returns the tool stored under name.
func (r *Registry) Get(name string) (Tool, bool) {
	e, ok := r.tools[name]
	if !ok {
		return Tool{}, false
	}
	return Tool{Name: name, URL: e.URL, Category: e.Category}, true
}

// Len returns the number of tools.
func (r *Registry) Len() int { return len(r.tools) }

// Tools returns every tool ordered by name.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for name, e := range r.tools {
		out = append(out, Tool{Name: name, URL: e.URL, Category: e.Category})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// commit writes the whole registry back to storage and then notifies the
// change hook. The in-memory mutation stands even if the write fails; the
// write error is returned after the hook runs.
func (r *Registry) commit() error {
	err := r.save()
	if r.onChange != nil {
		r.onChange()
	}
	return err
}

func (r *Registry) save() error {
	data, err := json.Marshal(r.tools)
	if err != nil {
		return err
	}
	if err := r.store.SetItem(StorageKey, string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
