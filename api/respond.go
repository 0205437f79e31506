package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"tool-portal/dashboard"
	"tool-portal/notes"
	"tool-portal/registry"
)

type errorBody struct {
	Error string `json:"error"`
	Alert string `json:"alert,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a JSON body into dst, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return false
	}
	return true
}

// writeError maps domain errors onto status codes. Validation failures carry
// the alert text the client shows.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if alert, ok := registry.AlertOf(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error(), Alert: alert})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, registry.ErrNotFound),
		errors.Is(err, dashboard.ErrUnknownCategory),
		errors.Is(err, notes.ErrUnknownField):
		status = http.StatusNotFound
	case errors.Is(err, dashboard.ErrNotEditing),
		errors.Is(err, dashboard.ErrSearchDisabled),
		errors.Is(err, dashboard.ErrLimitReached),
		errors.Is(err, dashboard.ErrDialogClosed):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}
