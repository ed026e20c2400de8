// Package main is the entry point for the liftwatch server.
package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/accessnyc/liftwatch/internal/accessibility"
	"github.com/accessnyc/liftwatch/internal/api"
	"github.com/accessnyc/liftwatch/internal/config"
	"github.com/accessnyc/liftwatch/internal/feed"
	"github.com/accessnyc/liftwatch/internal/transit"
)

func main() {
	// .env is optional; deployments usually set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Configuration error: ", err)
	}

	feeds := feed.NewClient(cfg.APIKey, cfg.HTTPTimeout)
	accessSvc := accessibility.NewService(feeds, cfg.EquipmentURL, cfg.OutagesURL)
	coordSvc := accessibility.NewCoordService(feeds, cfg.CoordsURL, cfg.CoordsTTL)
	alertSvc := transit.NewAlertService(cfg.AlertsURL, cfg.HTTPTimeout, cfg.AlertsCacheTTL)

	router := api.NewRouter(cfg, accessSvc, coordSvc, alertSvc)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	fmt.Printf("🚇 liftwatch server starting on port %s\n", cfg.Port)
	fmt.Printf("📍 Environment: %s\n", cfg.Env)
	fmt.Printf("🔗 http://localhost:%s\n", cfg.Port)

	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}
