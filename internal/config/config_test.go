package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"traffic-route-service/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Network.SnapToleranceDegrees != 0.01 {
		t.Fatalf("expected default snap tolerance 0.01, got %v", cfg.Network.SnapToleranceDegrees)
	}
	if cfg.Routing.DefaultAlternatives != 3 || cfg.Routing.MaxAlternatives != 10 {
		t.Fatalf("expected default alternatives 3/10, got %d/%d",
			cfg.Routing.DefaultAlternatives, cfg.Routing.MaxAlternatives)
	}
	if cfg.Routing.EdgePenaltyFactor != 2.0 {
		t.Fatalf("expected default penalty factor 2.0, got %v", cfg.Routing.EdgePenaltyFactor)
	}
	if err := cfg.Scoring.Weights().Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Fatalf("expected info/text logging defaults, got %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SNAP_TOLERANCE_DEGREES", "0.02")
	t.Setenv("LENGTH_WEIGHT", "0.6")
	t.Setenv("TRAFFIC_WEIGHT", "0.2")
	t.Setenv("CONDITION_WEIGHT", "0.2")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Network.SnapToleranceDegrees != 0.02 {
		t.Fatalf("expected snap tolerance 0.02, got %v", cfg.Network.SnapToleranceDegrees)
	}
	if cfg.Scoring.LengthWeight != 0.6 {
		t.Fatalf("expected length weight 0.6, got %v", cfg.Scoring.LengthWeight)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json log format, got %q", cfg.Logging.Format)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "server:\n  port: 7070\nscoring:\n  length_weight: 0.4\n  traffic_weight: 0.4\n  condition_weight: 0.2\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Fatalf("expected port 7070 from file, got %d", cfg.Server.Port)
	}
	if cfg.Scoring.LengthWeight != 0.4 || cfg.Scoring.TrafficWeight != 0.4 {
		t.Fatalf("expected 0.4/0.4 weights from file, got %v/%v",
			cfg.Scoring.LengthWeight, cfg.Scoring.TrafficWeight)
	}
	// Untouched keys keep their defaults.
	if cfg.Routing.EdgePenaltyFactor != 2.0 {
		t.Fatalf("expected default penalty factor, got %v", cfg.Routing.EdgePenaltyFactor)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PORT", "9191")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Fatalf("expected environment to win with port 9191, got %d", cfg.Server.Port)
	}
}

func TestLoadRejectsInvalidWeights(t *testing.T) {
	t.Setenv("LENGTH_WEIGHT", "0.9")
	t.Setenv("TRAFFIC_WEIGHT", "0.9")
	t.Setenv("CONDITION_WEIGHT", "0.9")

	_, err := Load()
	if !errors.Is(err, domain.ErrInvalidWeightConfiguration) {
		t.Fatalf("expected ErrInvalidWeightConfiguration, got %v", err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                 "0",
		"LOG_LEVEL":            "verbose",
		"DEFAULT_ALTERNATIVES": "0",
		"EDGE_PENALTY_FACTOR":  "1.0",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%s", key, value)
			}
		})
	}
}

func TestLoadRejectsDefaultAboveMaxAlternatives(t *testing.T) {
	t.Setenv("DEFAULT_ALTERNATIVES", "5")
	t.Setenv("MAX_ALTERNATIVES", "4")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when default exceeds max alternatives")
	}
}
