package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"tool-portal/registry"
)

// toolName returns the {name} segment decoded exactly once. chi matches on
// RawPath when the request has one, so only then is the segment still escaped.
func toolName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

func (h *handler) listTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.page.Tools())
}

func (h *handler) createTool(w http.ResponseWriter, r *http.Request) {
	var req registry.Tool
	if !decode(w, r, &req) {
		return
	}
	if err := h.page.AddTool(req.Name, req.URL, req.Category); err != nil {
		h.writeError(w, r, err)
		return
	}
	tool, _ := h.page.Tool(strings.TrimSpace(req.Name))
	writeJSON(w, http.StatusCreated, tool)
}

func (h *handler) updateTool(w http.ResponseWriter, r *http.Request) {
	name := toolName(r)
	var req struct {
		URL string `json:"url"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.page.UpdateToolURL(name, req.URL); err != nil {
		h.writeError(w, r, err)
		return
	}
	tool, _ := h.page.Tool(name)
	writeJSON(w, http.StatusOK, tool)
}

func (h *handler) deleteTool(w http.ResponseWriter, r *http.Request) {
	if err := h.page.RemoveTool(toolName(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
