package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/rotosim/internal/adapters/catalog"
	"github.com/okian/rotosim/internal/adapters/repository"
	"github.com/okian/rotosim/internal/adapters/writer"
	service "github.com/okian/rotosim/internal/app"
	"github.com/okian/rotosim/internal/domain/model"
	"github.com/okian/rotosim/pkg/logger"
	"github.com/okian/rotosim/pkg/metrics"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Simulate the configured seasons and write training artifacts",
		Long: `Simulate every configured season of every split, or the one named by
--season, and write one artifact per season under output_dir.`,
		RunE: runGenerate,
	}
	cmd.Flags().Int("season", 0, "Generate only this season")
	cmd.Flags().String("split", string(model.SplitTraining), "Split the --season artifact belongs to")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) (err error) {
	ctx := cmd.Context()
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	seasonFlag, _ := cmd.Flags().GetInt("season")
	splitFlag, _ := cmd.Flags().GetString("split")
	split, err := model.ParseSplit(splitFlag)
	if err != nil {
		return err
	}

	store, err := repository.LoadDir(ctx, cfg.DataDir, repository.WithLogger(log))
	if err != nil {
		return err
	}
	available := make(map[int]bool)
	for _, y := range store.Seasons(ctx) {
		available[y] = true
	}
	for _, s := range model.Splits() {
		for _, y := range cfg.Years(s) {
			if !available[y] {
				log.Warn(ctx, "configured season has no data", logger.String("split", string(s)), logger.Int("season", y))
			}
		}
	}

	w, err := writer.New(cfg.OutputDir, writer.WithColumns(cfg.VectorColumns), writer.WithLogger(log))
	if err != nil {
		return err
	}

	m := metrics.NewManager(metrics.WithConstLabels(map[string]string{
		"league": fmt.Sprintf("%dx%d", cfg.NumTeams, cfg.TeamSize),
	}))
	defer func() {
		if werr := m.WriteTextfile(cfg.MetricsFile); werr != nil {
			log.Error(ctx, "metrics export failed", logger.Error(werr))
		}
	}()

	opts := []service.Option{
		service.WithLeague(cfg.NumTeams, cfg.TeamSize),
		service.WithSimulations(cfg.SimulationsPerSeason),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithProgressInterval(cfg.ProgressInterval),
		service.WithSeed(cfg.Seed),
		service.WithLogger(log),
		service.WithMetrics(m),
	}
	for _, s := range model.Splits() {
		opts = append(opts, service.WithSeasons(s, cfg.Years(s)))
	}
	if cfg.CatalogPath != "" {
		var cat *catalog.Catalog
		if cat, err = catalog.Open(ctx, cfg.CatalogPath); err != nil {
			return err
		}
		defer func() {
			if cerr := cat.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		opts = append(opts, service.WithCatalog(cat))
	}

	svc := service.New(store, w, opts...)
	log.Info(ctx, "run seed", logger.Uint64("seed", svc.Seed()), logger.String("run_id", svc.RunID().String()))

	out := cmd.OutOrStdout()
	if seasonFlag != 0 {
		a, err := svc.GenerateSeason(ctx, split, seasonFlag)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%d rows\t%s\n", a.Path, a.Rows, a.SHA256)
		return nil
	}

	report, err := svc.Generate(ctx)
	if err != nil {
		return err
	}
	for _, a := range report.Artifacts {
		fmt.Fprintf(out, "%s\t%d rows\t%s\n", a.Path, a.Rows, a.SHA256)
	}
	fmt.Fprintf(out, "run %s seed %d: %d artifacts, %d rows in %s\n",
		report.RunID, report.Seed, len(report.Artifacts), report.Rows, report.Duration)
	return nil
}
