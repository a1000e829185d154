package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	RiskAPI RiskAPIConfig
	Routes  RoutesConfig
	Alerts  AlertsConfig
	Worker  WorkerConfig
	DB      DatabaseConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	RateLimitRPS int
}

type RiskAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RoutesConfig struct {
	MaxRoutes int
}

type AlertsConfig struct {
	ToastDuration        time.Duration
	NotificationsEnabled bool
	HighRiskOnly         bool
	VibrationEnabled     bool
	HapticsWebhookURL    string
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type DatabaseConfig struct {
	// Path of the sqlite alert archive. Empty disables archiving.
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 5),
		},
		RiskAPI: RiskAPIConfig{
			BaseURL: getEnv("RISK_API_URL", "http://localhost:3000/api/v1"),
			Timeout: getEnvDuration("RISK_API_TIMEOUT", 15*time.Second),
		},
		Routes: RoutesConfig{
			MaxRoutes: getEnvInt("MAX_ROUTES", 2),
		},
		Alerts: AlertsConfig{
			ToastDuration:        getEnvDuration("TOAST_DURATION", 5*time.Second),
			NotificationsEnabled: getEnvBool("NOTIFICATIONS_ENABLED", true),
			HighRiskOnly:         getEnvBool("HIGH_RISK_ONLY", false),
			VibrationEnabled:     getEnvBool("VIBRATION_ENABLED", true),
			HapticsWebhookURL:    getEnv("HAPTICS_WEBHOOK_URL", ""),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.RiskAPI.BaseURL == "" {
		return fmt.Errorf("risk API URL must not be empty")
	}
	if c.Routes.MaxRoutes < 1 {
		return fmt.Errorf("max routes must be at least 1, got %d", c.Routes.MaxRoutes)
	}
	if c.Alerts.ToastDuration <= 0 {
		return fmt.Errorf("toast duration must be positive, got %s", c.Alerts.ToastDuration)
	}
	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", c.Worker.Count)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
