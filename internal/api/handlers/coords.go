package handlers

import "net/http"

// CoordHandler serves the station coordinate mapping.
type CoordHandler struct {
	svc CoordProvider
}

func NewCoordHandler(svc CoordProvider) *CoordHandler {
	return &CoordHandler{svc: svc}
}

// GetCoords returns every known complex keyed by ID
func (h *CoordHandler) GetCoords(w http.ResponseWriter, r *http.Request) {
	coords, err := h.svc.Coords()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(coords),
		"coords": coords,
	})
}
