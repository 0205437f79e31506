package api

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	"tool-portal/session"
)

func handleHealth(viewers *session.Manager) http.HandlerFunc {
	type responseBody struct {
		Version        string    `json:"Version"`
		Uptime         string    `json:"Uptime"`
		LastCommitHash string    `json:"LastCommitHash"`
		LastCommitTime time.Time `json:"LastCommitTime"`
		DirtyBuild     bool      `json:"DirtyBuild"`
		Viewers        int       `json:"Viewers"`
	}

	res := responseBody{Version: "0.1"}
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		for _, kv := range buildInfo.Settings {
			if kv.Value == "" {
				continue
			}
			switch kv.Key {
			case "vcs.revision":
				res.LastCommitHash = kv.Value
			case "vcs.time":
				res.LastCommitTime, _ = time.Parse(time.RFC3339, kv.Value)
			case "vcs.modified":
				res.DirtyBuild = kv.Value == "true"
			}
		}
	}

	up := time.Now()
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		body := res
		body.Uptime = time.Since(up).String()
		body.Viewers = len(viewers.List())
		_ = json.NewEncoder(w).Encode(body)
	}
}
