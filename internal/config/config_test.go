package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MTA_EQUIPMENT_URL", "MTA_OUTAGES_URL", "HTTP_TIMEOUT_SECONDS", "COORDS_TTL_SECONDS", "CONFIG_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.HTTPTimeout != 20*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.CoordsTTL != 24*time.Hour {
		t.Errorf("CoordsTTL = %v", cfg.CoordsTTL)
	}
	if cfg.CoordsURL == "" {
		t.Error("CoordsURL default missing")
	}
	if cfg.EquipmentURL != "" || cfg.OutagesURL != "" {
		t.Error("feed URLs should default empty")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "8080")
	t.Setenv("MTA_EQUIPMENT_URL", " https://example.com/equipment.json ")
	t.Setenv("MTA_API_KEY", "abc123")
	t.Setenv("COORDS_TTL_SECONDS", "3600")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.EquipmentURL != "https://example.com/equipment.json" {
		t.Errorf("EquipmentURL = %q, want trimmed", cfg.EquipmentURL)
	}
	if cfg.APIKey != "abc123" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.CoordsTTL != time.Hour {
		t.Errorf("CoordsTTL = %v", cfg.CoordsTTL)
	}
}

func TestLoadConfigFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yaml := `
server:
  port: 9090
feeds:
  equipment: https://example.com/file-equipment.json
  outages: https://example.com/file-outages.json
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MTA_EQUIPMENT_URL", "https://example.com/env-equipment.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, file should win", cfg.Port)
	}
	if cfg.EquipmentURL != "https://example.com/file-equipment.json" {
		t.Errorf("EquipmentURL = %q, file should win", cfg.EquipmentURL)
	}
	if cfg.OutagesURL != "https://example.com/file-outages.json" {
		t.Errorf("OutagesURL = %q", cfg.OutagesURL)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yml"))
	if _, err := Load(); err == nil {
		t.Fatal("want error for missing config file")
	}
}

func TestValidateRejectsBadURL(t *testing.T) {
	cfg := &Config{EquipmentURL: "not a url"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("want validation error for malformed URL")
	}
}

func TestValidateAcceptsEmptyURLs(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
