package handlers

import (
	"net/http"
	"strings"
)

// AlertHandler serves subway service alerts.
type AlertHandler struct {
	svc AlertProvider
}

func NewAlertHandler(svc AlertProvider) *AlertHandler {
	return &AlertHandler{svc: svc}
}

// GetAlerts returns active service alerts, optionally filtered by route
func (h *AlertHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	if !h.svc.HasFeedURL() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error":   "Alerts service unavailable",
			"message": "MTA_ALERTS_URL not configured",
		})
		return
	}

	routesParam := r.URL.Query().Get("routes")
	var routes []string
	if routesParam != "" {
		routes = strings.Split(routesParam, ",")
	}

	alerts, err := h.svc.GetAlerts(routes)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Failed to fetch service alerts",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"alerts":  alerts,
		"count":   len(alerts),
	})
}
