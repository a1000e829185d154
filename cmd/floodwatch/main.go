package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rmaia/floodwatch/internal/alerting"
	"github.com/rmaia/floodwatch/internal/api"
	"github.com/rmaia/floodwatch/internal/config"
	"github.com/rmaia/floodwatch/internal/event"
	"github.com/rmaia/floodwatch/internal/logging"
	"github.com/rmaia/floodwatch/internal/notify"
	"github.com/rmaia/floodwatch/internal/observability"
	"github.com/rmaia/floodwatch/internal/repository"
	"github.com/rmaia/floodwatch/internal/risk"
	"github.com/rmaia/floodwatch/internal/store"
	"github.com/rmaia/floodwatch/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	metrics := observability.NewMetrics()

	var archive repository.Archive
	var archiveDB *repository.SQLiteArchive
	if cfg.DB.Path != "" {
		archiveDB, err = repository.NewSQLiteArchive(cfg.DB.Path)
		if err != nil {
			logging.Fatalf("Failed to initialize alert archive: %v", err)
		}
		defer archiveDB.Close()
		archive = archiveDB
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := event.NewBus()

	pool := worker.NewPool(cfg.Worker.Count, cfg.Worker.BufferSize)
	pool.Start(ctx)

	settings := store.NewSettings(cfg.Alerts.NotificationsEnabled, cfg.Alerts.HighRiskOnly, cfg.Alerts.VibrationEnabled)

	var haptics notify.Haptics = notify.Noop{}
	if wh := notify.NewWebhook(cfg.Alerts.HapticsWebhookURL); wh != nil {
		haptics = wh
	}

	alertStore := store.NewAlertStore(settings, haptics, cfg.Alerts.ToastDuration, nil, metrics)

	lookup := risk.NewClient(cfg.RiskAPI.BaseURL, cfg.RiskAPI.Timeout)
	routeStore := store.NewRouteStore(cfg.Routes.MaxRoutes, lookup, pool, bus, nil, metrics)

	policy := alerting.NewPolicy(bus, alertStore, archive)
	policy.Start(ctx)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimitRPS))

	handler := api.NewHandler(routeStore, alertStore, settings, archive, bus, cfg.Routes.MaxRoutes)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	cancel()
	policy.Stop()
	pool.Stop()
	bus.Close() // Close all stream subscribers gracefully

	slog.Info("shutdown complete")
}
