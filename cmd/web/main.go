package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/setanarut/scenecraft"
	"github.com/setanarut/scenecraft/internal/config"
	"github.com/setanarut/scenecraft/internal/server"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	scenecraft.SetLogger(logger.With("component", "scenecraft"))

	srv := &http.Server{
		Addr:              cfg.WebAddr,
		Handler:           server.New(cfg, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       90 * time.Second,
	}

	logger.Info("web started", "addr", cfg.WebAddr, "max_concurrent", cfg.MaxConcurrent)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
