package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/caritas-cda/rawload/internal/config"
	"github.com/caritas-cda/rawload/internal/logging"
	"github.com/caritas-cda/rawload/internal/run"
	"github.com/caritas-cda/rawload/internal/storage"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	// Dry runs never reach the object store, so no client is built for them.
	var store storage.ObjectStore
	if !cfg.DryRun {
		s, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:          cfg.Bucket,
			Region:          cfg.Region,
			Profile:         cfg.Profile,
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
		})
		if err != nil {
			logger.Error(ctx, "object store init failed", "error", err.Error())
			os.Exit(1)
		}
		store = s
	}

	os.Exit(run.NewRunner(cfg, logger, store).Run(ctx))
}
