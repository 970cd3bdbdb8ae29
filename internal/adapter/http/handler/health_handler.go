package handler

import (
	"net/http"
	"os"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	journalPath string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(journalPath string) *HealthHandler {
	return &HealthHandler{journalPath: journalPath}
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports whether the journal file is reachable.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(h.journalPath); err != nil {
		writeError(w, http.StatusServiceUnavailable, "journal not reachable", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
