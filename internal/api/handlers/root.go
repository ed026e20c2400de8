package handlers

import (
	"net/http"
)

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "liftwatch",
		"description": "NYC subway elevator and escalator status API",
		"version":     "1.0.0",
		"endpoints": map[string]string{
			"GET /":         "API information",
			"GET /health":   "Health check",
			"GET /stations": "Stations with accessibility equipment",
			"GET /status":   "Station status (requires stationId)",
			"GET /coords":   "Station coordinates by complex ID",
			"GET /alerts":   "Subway service alerts",
		},
	})
}

func (h *RootHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error": "Not found",
	})
}
