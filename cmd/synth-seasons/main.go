package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/okian/rotosim/internal/adapters/repository"
	"github.com/okian/rotosim/internal/synth"
	"github.com/okian/rotosim/pkg/logger"
)

// Default configuration constants.
const (
	defaultStartYear = 2000
	defaultEndYear   = 2017
	defaultSeed      = 1
	defaultTimeout   = 5 * time.Minute
)

func main() {
	var (
		outDir     = flag.String("out", "data", "Directory to write season_stats.csv and normalized_stats.csv into")
		startYear  = flag.Int("start", defaultStartYear, "First season to generate")
		endYear    = flag.Int("end", defaultEndYear, "Last season to generate")
		poolSize   = flag.Int("pool", synth.DefaultPoolSize, "Players kept per season, by minutes played")
		candidates = flag.Int("candidates", synth.DefaultCandidates, "Players logging minutes per season")
		seed       = flag.Uint64("seed", defaultSeed, "Random seed")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := logger.New(logger.WithLevel(level)).Named("synth-seasons")

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	out, err := synth.Generate(ctx, synth.Config{
		StartYear:  *startYear,
		EndYear:    *endYear,
		PoolSize:   *poolSize,
		Candidates: *candidates,
		Seed:       *seed,
	}, synth.WithLogger(log))
	if err != nil {
		log.Error(ctx, "generation failed", logger.Error(err))
		os.Exit(1)
	}

	if err := repository.WriteDir(ctx, *outDir, out.Raw, out.Normalized); err != nil {
		log.Error(ctx, "writing season tables failed", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "season tables written", logger.String("dir", *outDir))
}
