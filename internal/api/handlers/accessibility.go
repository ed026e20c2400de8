package handlers

import (
	"net/http"
	"strings"
)

// AccessibilityHandler serves the station list and per-station status.
type AccessibilityHandler struct {
	svc AccessibilityProvider
}

func NewAccessibilityHandler(svc AccessibilityProvider) *AccessibilityHandler {
	return &AccessibilityHandler{svc: svc}
}

// GetStations returns the full station registry
func (h *AccessibilityHandler) GetStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.svc.Stations()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, stations)
}

// GetStatus returns the elevator/escalator status for one station
func (h *AccessibilityHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	stationID := strings.TrimSpace(r.URL.Query().Get("stationId"))
	if stationID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "stationId is required",
		})
		return
	}

	status, err := h.svc.Status(stationID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, status)
}
