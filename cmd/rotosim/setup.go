package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/rotosim/internal/config"
	"github.com/okian/rotosim/pkg/logger"
)

// loadConfig reads the layered configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	ctx := cmd.Context()
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	cfg, err := config.Load(ctx, config.WithFile(path))
	if err != nil {
		return nil, nil, err
	}

	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("workers") {
		cfg.WorkerCount, _ = flags.GetInt("workers")
	}
	if flags.Changed("simulations") {
		cfg.SimulationsPerSeason, _ = flags.GetInt("simulations")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("flags: %w", err)
	}

	level, levelErr := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(logger.WithWriter(cmd.ErrOrStderr()), logger.WithLevel(level)).Named("rotosim")
	if levelErr != nil {
		log.Warn(ctx, "unknown log level, using info", logger.String("log_level", cfg.LogLevel))
	}
	return cfg, log, nil
}
