package api

import (
	"net/http"
	"time"

	"github.com/accessnyc/liftwatch/internal/api/handlers"
	"github.com/accessnyc/liftwatch/internal/config"
)

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(
	cfg *config.Config,
	accessSvc handlers.AccessibilityProvider,
	coordSvc handlers.CoordProvider,
	alertSvc handlers.AlertProvider,
) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	rootHandler := handlers.NewRootHandler()
	healthHandler := handlers.NewHealthHandler()
	accessHandler := handlers.NewAccessibilityHandler(accessSvc)
	coordHandler := handlers.NewCoordHandler(coordSvc)
	alertHandler := handlers.NewAlertHandler(alertSvc)

	// Core routes
	mux.HandleFunc("GET /{$}", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Accessibility routes
	mux.HandleFunc("GET /stations", accessHandler.GetStations)
	mux.HandleFunc("GET /status", accessHandler.GetStatus)
	mux.HandleFunc("GET /coords", coordHandler.GetCoords)

	// Service alert routes
	mux.HandleFunc("GET /alerts", alertHandler.GetAlerts)

	// Everything else
	mux.HandleFunc("/", rootHandler.NotFound)

	// Apply middleware stack. The request timeout sits above the feed
	// client timeout so a stalled upstream fails there first.
	handler := Chain(mux,
		Recovery,
		Logging,
		CORS,
		Timeout(cfg.HTTPTimeout+5*time.Second),
	)

	return handler
}
