// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default NY Open Data dataset serving coordinates by complex_id.
const defaultCoordsURL = "https://data.ny.gov/resource/5f5g-n3cz.json" +
	"?$select=complex_id,complex_name,gtfs_latitude,gtfs_longitude" +
	"&$limit=50000"

// Config holds all application configuration.
type Config struct {
	Port string
	Env  string

	EquipmentURL string `validate:"omitempty,url"`
	OutagesURL   string `validate:"omitempty,url"`
	CoordsURL    string `validate:"omitempty,url"`
	AlertsURL    string `validate:"omitempty,url"`
	APIKey       string

	HTTPTimeout    time.Duration
	CoordsTTL      time.Duration
	AlertsCacheTTL time.Duration
}

// fileConfig is the optional YAML overlay for deployments that prefer a
// config file over raw environment variables.
type fileConfig struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Feeds struct {
		Equipment   string `yaml:"equipment"`
		Outages     string `yaml:"outages"`
		Coordinates string `yaml:"coordinates"`
		Alerts      string `yaml:"alerts"`
	} `yaml:"feeds"`
}

// Load reads configuration from environment variables with sensible
// defaults, then applies the YAML file named by CONFIG_FILE if set.
// A feed URL may still be empty after loading; that only fails the
// operations needing it, not startup.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		Env:            getEnv("ENV", "development"),
		EquipmentURL:   strings.TrimSpace(os.Getenv("MTA_EQUIPMENT_URL")),
		OutagesURL:     strings.TrimSpace(os.Getenv("MTA_OUTAGES_URL")),
		CoordsURL:      getEnv("MTA_COORDS_URL", defaultCoordsURL),
		AlertsURL:      strings.TrimSpace(os.Getenv("MTA_ALERTS_URL")),
		APIKey:         strings.TrimSpace(os.Getenv("MTA_API_KEY")),
		HTTPTimeout:    getDurationEnv("HTTP_TIMEOUT_SECONDS", 20) * time.Second,
		CoordsTTL:      getDurationEnv("COORDS_TTL_SECONDS", 24*60*60) * time.Second,
		AlertsCacheTTL: getDurationEnv("ALERTS_CACHE_TTL_SECONDS", 60) * time.Second,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks that every configured URL is well formed.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyFile overlays values from a YAML config file. File values win
// over environment variables when both are present.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fc.Server.Port != 0 {
		c.Port = strconv.Itoa(fc.Server.Port)
	}
	if fc.Feeds.Equipment != "" {
		c.EquipmentURL = fc.Feeds.Equipment
	}
	if fc.Feeds.Outages != "" {
		c.OutagesURL = fc.Feeds.Outages
	}
	if fc.Feeds.Coordinates != "" {
		c.CoordsURL = fc.Feeds.Coordinates
	}
	if fc.Feeds.Alerts != "" {
		c.AlertsURL = fc.Feeds.Alerts
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds)
		}
	}
	return time.Duration(defaultSeconds)
}
