package main

import (
	"context"
	"io"
	"net/http"

	"taskmaster/internal/api"
	"taskmaster/internal/config"
	"taskmaster/internal/logging"
	"taskmaster/internal/services"
	"taskmaster/internal/store"
	"taskmaster/internal/suggest"
)

// buildAPI opens the configured storage and wires the task store, reminder
// scanner and quote client behind the API
func buildAPI(ctx context.Context, cfg *config.Config) (api.API, io.Closer, error) {
	logger := logging.New(config.AppName, logging.Options{Level: cfg.EffectiveLogLevel()})

	repo, err := config.CreateRepository(cfg, logger.Named("storage"))
	if err != nil {
		return nil, nil, err
	}

	taskStore := store.Open(ctx, repo, store.WithLogger(logger.Named("store")))

	reminders := services.NewReminderService(taskStore,
		services.WithHorizon(cfg.Reminder.Horizon),
		services.WithReminderLogger(logger.Named("reminders")),
	)

	deps := api.Dependencies{
		Store:     taskStore,
		Settings:  repo,
		Reminders: reminders,
		Logger:    logger.Named("api"),
	}
	if cfg.Suggest.Enabled {
		deps.Quotes = suggest.NewQuoteClient(cfg.Suggest.QuoteURL,
			suggest.WithHTTPClient(&http.Client{Timeout: cfg.Suggest.Timeout}),
			suggest.WithTimeout(cfg.Suggest.Timeout),
			suggest.WithLogger(logger.Named("quotes")),
		)
	}

	logger.Debug("storage opened",
		"environment", cfg.Environment,
		"backend", cfg.Storage.Backend,
		"dir", cfg.Storage.Dir,
	)
	return api.New(deps), repo, nil
}
