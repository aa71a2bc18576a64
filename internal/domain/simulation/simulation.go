// Package simulation repeats draw, aggregate and rank over one season.
package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/okian/rotosim/internal/domain/model"
	"github.com/okian/rotosim/internal/domain/partition"
	"github.com/okian/rotosim/internal/domain/scoring"
	"github.com/okian/rotosim/pkg/logger"
	"github.com/okian/rotosim/pkg/metrics"
)

// Default runner configuration constants.
const (
	defaultNumTeams         = 8
	defaultTeamSize         = 13
	defaultSimulations      = 10000
	defaultProgressInterval = 500
)

// Season is the part of a season dataset a runner reads.
type Season interface {
	scoring.SeasonLookup
	Year() int
	Pool() []model.PlayerID
}

// Runner simulates leagues drawn from one season.
type Runner struct {
	season      Season
	pool        []model.PlayerID
	partitioner *partition.Partitioner
	aggregator  *scoring.Aggregator

	numTeams         int
	teamSize         int
	simulations      int
	progressInterval int

	completed atomic.Int64

	logger  logger.Logger
	metrics *metrics.Manager
}

// NewRunner creates a runner over a season.
func NewRunner(s Season, opts ...Option) (*Runner, error) {
	r := &Runner{
		season:           s,
		numTeams:         defaultNumTeams,
		teamSize:         defaultTeamSize,
		simulations:      defaultSimulations,
		progressInterval: defaultProgressInterval,
		logger:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	p, err := partition.New(r.numTeams, r.teamSize)
	if err != nil {
		return nil, err
	}
	r.partitioner = p
	r.aggregator = scoring.NewAggregator(s)
	r.pool = s.Pool()
	r.metrics.UpdateSeasonPoolSize(s.Year(), len(r.pool))
	return r, nil
}

// Simulations returns the number of iterations Run performs.
func (r *Runner) Simulations() int { return r.simulations }

// Completed returns the number of iterations finished so far.
func (r *Runner) Completed() int { return int(r.completed.Load()) }

// Iterate simulates one league with the given randomness. It is safe to call
// from several goroutines as long as each passes its own rng.
func (r *Runner) Iterate(ctx context.Context, iteration int, rng partition.Rand) ([]model.RankedRoster, error) {
	start := time.Now()
	year := r.season.Year()

	rosters, err := r.partitioner.Draw(r.pool, rng)
	if err != nil {
		return nil, fmt.Errorf("season %d iteration %d: %w", year, iteration, err)
	}
	stats := make([]model.TeamCategoryStats, len(rosters))
	for i, roster := range rosters {
		if stats[i], err = r.aggregator.Aggregate(roster); err != nil {
			return nil, fmt.Errorf("season %d iteration %d: %w", year, iteration, err)
		}
	}
	league, err := scoring.Rank(rosters, stats)
	if err != nil {
		return nil, fmt.Errorf("season %d iteration %d: %w", year, iteration, err)
	}

	r.metrics.RecordIteration(year, time.Since(start))
	if done := r.completed.Add(1); done%int64(r.progressInterval) == 0 {
		r.logger.Info(ctx, "simulation progress",
			logger.Int("season", year),
			logger.Int("completed", int(done)),
			logger.Int("total", r.simulations),
		)
	}
	return league, nil
}

// Run performs every iteration in order on the calling goroutine and hands
// each league to fn. Iteration i draws from IterationRNG(seed, season, i).
func (r *Runner) Run(ctx context.Context, seed uint64, fn func(iteration int, league []model.RankedRoster) error) error {
	year := r.season.Year()
	for i := 0; i < r.simulations; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("season %d: %w", year, err)
		}
		league, err := r.Iterate(ctx, i, IterationRNG(seed, year, i))
		if err != nil {
			return err
		}
		if err := fn(i, league); err != nil {
			return fmt.Errorf("season %d iteration %d: %w", year, i, err)
		}
	}
	return nil
}

// IterationRNG returns the generator of one iteration. Its stream depends only
// on the run seed, the season and the iteration index, so results do not
// depend on which goroutine runs the iteration.
func IterationRNG(seed uint64, season, iteration int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(season)<<32|uint64(uint32(iteration))))
}
