package handlers

import "net/http"

// Health handles GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	respondOK(w, true, map[string]any{"status": "ok"}, "Service healthy")
}
