package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tool-portal/notes"
)

func (h *handler) getNotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.page.Notes())
}

func (h *handler) getNote(w http.ResponseWriter, r *http.Request) {
	field, err := notes.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"field": string(field),
		"value": h.page.Notes().Get(field),
	})
}

func (h *handler) putNote(w http.ResponseWriter, r *http.Request) {
	field, err := notes.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req struct {
		Value string `json:"value"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.page.SetNote(field, req.Value); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.page.Notes())
}
