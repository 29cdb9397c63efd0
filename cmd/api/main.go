package main

import (
	"net/http"
	"os"
	"time"

	"pet-pomodoro/internal/config"
	"pet-pomodoro/internal/platform/logger"
	"pet-pomodoro/internal/router"

	_ "pet-pomodoro/docs"
)

// @title        pet-pomodoro API
// @version      1.0
// @description  Adopción de mascotas on-chain y temporizador pomodoro.
// @BasePath     /
func main() {
	log := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	r, err := router.NewRouter(router.Options{
		Config: cfg,
		Logger: log,
	})
	if err != nil {
		log.Error("router setup failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second, // el adopt espera finality
	}

	log.Info("starting server", map[string]any{
		"addr":    cfg.HTTPAddr,
		"network": cfg.ActiveNetwork,
		"ledger":  string(cfg.LedgerMode),
	})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
