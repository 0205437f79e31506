package api

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tool-portal/dashboard"
	"tool-portal/session"
)

// RegisterRoutes builds the portal's HTTP handler. Every view the page renders
// is pushed to the viewers connected over WebSocket.
func RegisterRoutes(page *dashboard.Page, viewers *session.Manager, staticFS fs.FS, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(accessLogger(logger))
	r.Use(middleware.Recoverer)

	h := &handler{page: page, viewers: viewers, logger: logger}
	page.Subscribe(h.broadcast)
	h.broadcast(page.View())

	// Tools API
	r.Get("/api/tools", h.listTools)
	r.Post("/api/tools", h.createTool)
	r.Put("/api/tools/{name}", h.updateTool)
	r.Delete("/api/tools/{name}", h.deleteTool)

	// Notes API
	r.Get("/api/notes", h.getNotes)
	r.Get("/api/notes/{field}", h.getNote)
	r.Put("/api/notes/{field}", h.putNote)

	// Page actions
	r.Get("/api/view", h.getView)
	r.Post("/api/page/mode", h.toggleMode)
	r.Put("/api/page/mode", h.setMode)
	r.Post("/api/page/search", h.search)
	r.Post("/api/page/click", h.clickLink)
	r.Post("/api/page/dialogs/add", h.openAddDialog)
	r.Post("/api/page/dialogs/add/confirm", h.confirmAddDialog)
	r.Delete("/api/page/dialogs/add", h.cancelAddDialog)
	r.Post("/api/page/dialogs/edit", h.openEditDialog)
	r.Post("/api/page/dialogs/edit/confirm", h.confirmEditDialog)
	r.Delete("/api/page/dialogs/edit", h.cancelEditDialog)
	r.Post("/api/page/dismiss", h.dismiss)

	// WebSocket
	r.Get("/api/ws", h.handleWS)

	r.Get("/health", handleHealth(viewers))

	// Static sub-FS: strip the "static/" prefix present in the embed.FS.
	// Tests pass an FS that is already rooted at the page, so check for index.html first.
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		staticSub = staticFS
	} else if _, statErr := fs.Stat(staticSub, "index.html"); statErr != nil {
		staticSub = staticFS
	}

	r.Get("/", h.servePage(staticSub, "index.html"))
	fileServer := http.FileServer(http.FS(staticSub))
	r.Get("/css/*", fileServer.ServeHTTP)
	r.Get("/js/*", fileServer.ServeHTTP)

	return r
}

type handler struct {
	page    *dashboard.Page
	viewers *session.Manager
	logger  *slog.Logger
}

type wsMessage struct {
	Type string          `json:"type"`
	View *dashboard.View `json:"view,omitempty"`
}

func (h *handler) broadcast(v dashboard.View) {
	data, err := json.Marshal(wsMessage{Type: "render", View: &v})
	if err != nil {
		h.logger.Error("failed to encode view", "error", err)
		return
	}
	h.viewers.Broadcast(data)
}
