package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thermowatch/thermowatch/core/apiclient"
	"github.com/thermowatch/thermowatch/core/config"
	"github.com/thermowatch/thermowatch/core/logger"
	"github.com/thermowatch/thermowatch/core/session"
	"github.com/thermowatch/thermowatch/core/threshold"
	"github.com/thermowatch/thermowatch/ui"
)

// authenticatorFunc late-binds the login exchange to the api client, which
// is constructed after the store it depends on.
type authenticatorFunc func() *apiclient.Client

func (f authenticatorFunc) ExchangeCredentials(ctx context.Context, username, password string) (session.Grant, error) {
	return f().ExchangeCredentials(ctx, username, password)
}

type appConfig struct {
	BackendURL string        `env:"BACKEND_URL" envDefault:"http://localhost:3000"`
	Timeout    time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
	PageSize   int           `env:"PAGE_SIZE" envDefault:"5"`
	LogFile    string        `env:"LOG_FILE"`
	Debug      bool          `env:"DEBUG" envDefault:"false"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	// The terminal belongs to the TUI, so logs go to a file or nowhere.
	log := logger.Discard()
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open log file:", err)
			os.Exit(1)
		}
		defer f.Close()

		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		log = logger.New(
			logger.WithOutput(f),
			logger.WithLevel(level),
			logger.WithJSONFormatter(),
		)
	}

	// The client borrows credentials from the store at call time; the store
	// delegates the login exchange back to the client. Wire the cycle by
	// creating the store first and handing it the client afterwards.
	var client *apiclient.Client
	store := session.NewStore(authenticatorFunc(func() *apiclient.Client { return client }),
		session.WithLogger(log))
	client = apiclient.New(cfg.BackendURL, store,
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithLogger(log),
	)

	wf := threshold.NewWorkflow(client, store, threshold.WithLogger(log))

	app := ui.NewApp(store, client, wf, ui.Config{PageSize: cfg.PageSize}, log)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "thermowatch:", err)
		os.Exit(1)
	}
}
