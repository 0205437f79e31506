package api

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"
)

// servePage renders the named template from fsys with the current view.
// The template is parsed on each request so edits to a dev FS show up
// without a restart.
func (h *handler) servePage(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tmpl, err := template.ParseFS(fsys, name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, h.page.View()); err != nil {
			h.logger.Error("failed to render page", "error", err)
			http.Error(w, "failed to render page", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}
