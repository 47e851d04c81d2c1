package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/thermowatch/thermowatch/backendtest"
	"github.com/thermowatch/thermowatch/core/config"
	"github.com/thermowatch/thermowatch/core/logger"
)

type stubConfig struct {
	Addr      string  `env:"STUB_ADDR" envDefault:":3000"`
	Threshold float64 `env:"STUB_THRESHOLD" envDefault:"30"`
	Readings  int     `env:"STUB_READINGS" envDefault:"12"`
}

// thermowatch-stub runs the in-memory backend on a local port so the TUI can
// be exercised without the real monitoring service. Default account is
// alice/secret.
func main() {
	var cfg stubConfig
	config.MustLoad(&cfg)

	log := logger.New(logger.WithLevel(slog.LevelDebug))

	stub := backendtest.New(
		backendtest.WithThreshold(cfg.Threshold),
		backendtest.WithReadings(backendtest.SeedReadings(cfg.Readings, cfg.Threshold)),
	)

	log.Info("stub backend listening", slog.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, stub.Handler()); err != nil {
		log.Error("stub backend stopped", logger.Error(err))
		os.Exit(1)
	}
}
