package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWS streams every rendered view to the client. The first message is
// the current view; the client never needs to send anything.
func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	// Join before the handshake completes so no render between the client's
	// dial returning and the first read is missed.
	s := h.viewers.Join()
	defer func() {
		h.viewers.Leave(s.ID) //nolint:errcheck
		level := slog.LevelDebug
		if s.Dropped() > 0 {
			level = slog.LevelWarn
		}
		h.logger.Log(r.Context(), level, "viewer left", "viewer", s.ID,
			"connected_for", time.Since(s.ConnectedAt).String(),
			"last_sent", s.LastSent(), "dropped", s.Dropped())
	}()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	h.logger.Debug("viewer connected", "viewer", s.ID)

	// Goroutine: read until the client goes away so close frames are handled
	// and the pump below stops.
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case payload := <-s.Out():
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.logger.Debug("viewer write failed", "viewer", s.ID, "error", err)
				return
			}
		case <-s.Done():
			return
		case <-readDone:
			h.logger.Debug("viewer disconnected", "viewer", s.ID)
			return
		}
	}
}
