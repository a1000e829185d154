package main

import (
	"context"
	"log/slog"
	"math"
	"os"

	"github.com/joho/godotenv"

	"github.com/rmaia/floodwatch/internal/config"
	"github.com/rmaia/floodwatch/internal/logging"
	"github.com/rmaia/floodwatch/internal/risk"
)

// riskcheck performs a single lookup against the configured prediction
// service and prints the classified result. Useful for verifying the
// upstream before starting the server.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	if len(os.Args) != 3 {
		logging.Fatalf("usage: riskcheck <start-address> <end-address>")
	}
	start, end := os.Args[1], os.Args[2]

	client := risk.NewClient(cfg.RiskAPI.BaseURL, cfg.RiskAPI.Timeout)
	res, err := client.RiskForRoute(context.Background(), start, end)
	if err != nil {
		logging.Fatalf("risk lookup failed: %v", err)
	}

	level := int(math.Round(res.Probability))
	slog.Info("risk evaluated",
		"probability", res.Probability,
		"status", risk.StatusFromRisk(level),
		"severity", risk.SeverityFromRisk(level),
		"message", risk.MessageFromRisk(level),
	)
}
