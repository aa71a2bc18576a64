package main

import (
	"fmt"
	"math/rand/v2"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/rotosim/internal/adapters/catalog"
	"github.com/okian/rotosim/internal/config"
	"github.com/okian/rotosim/internal/dataset"
	"github.com/okian/rotosim/internal/domain/model"
	"github.com/okian/rotosim/pkg/logger"
)

func newSplitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "splits",
		Short: "Load the generated splits and summarize them",
		Long: `Load the training, test and validation artifacts for the configured
league shape and print row counts with per-column mean and standard deviation.
With combine_data set, the pooled rows are re-split 70/20/10 first.`,
		RunE: runSplits,
	}
	cmd.Flags().Bool("summary", true, "Print per-column summaries")
	return cmd
}

func runSplits(cmd *cobra.Command, _ []string) (err error) {
	ctx := cmd.Context()
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		if cat, err = catalog.Open(ctx, cfg.CatalogPath); err != nil {
			return err
		}
		defer func() {
			if cerr := cat.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}

	splits := make([]*dataset.Split, 0, len(model.Splits()))
	for _, name := range model.Splits() {
		paths, err := splitFiles(cmd, cfg, cat, name)
		if err != nil {
			return err
		}
		s, err := dataset.Load(ctx, name, paths)
		if err != nil {
			return err
		}
		log.Debug(ctx, "split loaded", logger.String("split", string(name)), logger.Int("files", len(paths)))
		splits = append(splits, s)
	}

	if cfg.CombineData {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		log.Info(ctx, "combining splits", logger.Uint64("seed", seed))
		a, b, c, err := dataset.Combine(splits[0], splits[1], splits[2], rand.New(rand.NewPCG(seed, 0)))
		if err != nil {
			return err
		}
		splits = []*dataset.Split{a, b, c}
	}

	summary, _ := cmd.Flags().GetBool("summary")
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, s := range splits {
		fmt.Fprintf(tw, "%s\t%d rows\n", s.Name, s.Len())
		if !summary {
			continue
		}
		for _, c := range dataset.Summary(s) {
			fmt.Fprintf(tw, "  %s\tmean %.4f\tstd %.4f\n", c.Name, c.Mean, c.StdDev)
		}
	}
	return tw.Flush()
}

// splitFiles prefers the catalog and falls back to the output directory.
func splitFiles(cmd *cobra.Command, cfg *config.Config, cat *catalog.Catalog, name model.Split) ([]string, error) {
	if cat != nil {
		paths, err := dataset.CatalogFiles(cmd.Context(), cat, name, cfg.NumTeams, cfg.TeamSize)
		if err != nil {
			return nil, err
		}
		if len(paths) > 0 {
			return paths, nil
		}
	}
	return dataset.GlobFiles(cfg.OutputDir, name, cfg.NumTeams, cfg.TeamSize)
}
