package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Routes.MaxRoutes != 2 {
		t.Errorf("expected default max routes 2, got %d", cfg.Routes.MaxRoutes)
	}
	if cfg.Alerts.ToastDuration != 5*time.Second {
		t.Errorf("expected default toast duration 5s, got %s", cfg.Alerts.ToastDuration)
	}
	if !cfg.Alerts.NotificationsEnabled {
		t.Error("expected notifications enabled by default")
	}
	if cfg.Alerts.HighRiskOnly {
		t.Error("expected high-risk-only off by default")
	}
	if cfg.DB.Path != "" {
		t.Errorf("expected archive disabled by default, got path %q", cfg.DB.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MAX_ROUTES", "5")
	t.Setenv("TOAST_DURATION", "2s")
	t.Setenv("HIGH_RISK_ONLY", "true")
	t.Setenv("RISK_API_URL", "http://risk.internal/api/v1")
	t.Setenv("DB_PATH", "./data/floodwatch.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Routes.MaxRoutes != 5 {
		t.Errorf("expected max routes 5, got %d", cfg.Routes.MaxRoutes)
	}
	if cfg.Alerts.ToastDuration != 2*time.Second {
		t.Errorf("expected toast duration 2s, got %s", cfg.Alerts.ToastDuration)
	}
	if !cfg.Alerts.HighRiskOnly {
		t.Error("expected high-risk-only on")
	}
	if cfg.RiskAPI.BaseURL != "http://risk.internal/api/v1" {
		t.Errorf("unexpected risk API URL: %s", cfg.RiskAPI.BaseURL)
	}
	if cfg.DB.Path != "./data/floodwatch.db" {
		t.Errorf("unexpected db path: %s", cfg.DB.Path)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "SERVER_PORT", "70000"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"zero max routes", "MAX_ROUTES", "0"},
		{"negative toast duration", "TOAST_DURATION", "-1s"},
		{"zero workers", "WORKER_COUNT", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
