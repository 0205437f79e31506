package api

import (
	"net/http"

	"tool-portal/dashboard"
)

func (h *handler) getView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.page.View())
}

func (h *handler) toggleMode(w http.ResponseWriter, r *http.Request) {
	h.page.ToggleEditMode()
	writeJSON(w, http.StatusOK, h.page.View())
}

// setMode moves the page to an explicit mode; unlike toggleMode it is
// idempotent.
func (h *handler) setMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode *dashboard.Mode `json:"mode"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Mode == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "mode is required"})
		return
	}
	h.page.SetMode(*req.Mode)
	writeJSON(w, http.StatusOK, h.page.View())
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Term string `json:"term"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.page.Search(req.Term); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.page.View())
}

// clickLink carries the user's answer to the delete-or-edit question along
// with the click, since the browser asks it before the request is sent.
func (h *handler) clickLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Confirm bool   `json:"confirm"`
	}
	if !decode(w, r, &req) {
		return
	}
	action, err := h.page.ClickLink(req.Name, func(string) bool { return req.Confirm })
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Action dashboard.LinkAction `json:"action"`
		View   dashboard.View       `json:"view"`
	}{action, h.page.View()})
}

func (h *handler) openAddDialog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.page.OpenAddDialog(req.Category); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.page.View())
}

func (h *handler) confirmAddDialog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.page.ConfirmAddDialog(req.Name, req.URL); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.page.View())
}

func (h *handler) cancelAddDialog(w http.ResponseWriter, r *http.Request) {
	h.page.CancelAddDialog()
	writeJSON(w, http.StatusOK, h.page.View())
}

func (h *handler) openEditDialog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.page.OpenEditDialog(req.Name); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.page.View())
}

func (h *handler) confirmEditDialog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.page.ConfirmEditDialog(req.URL); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.page.View())
}

func (h *handler) cancelEditDialog(w http.ResponseWriter, r *http.Request) {
	h.page.CancelEditDialog()
	writeJSON(w, http.StatusOK, h.page.View())
}

func (h *handler) dismiss(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target dashboard.Dialog `json:"target"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.page.Dismiss(req.Target)
	writeJSON(w, http.StatusOK, h.page.View())
}
