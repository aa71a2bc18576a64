// Package service wires the season store, the simulation engine, the worker
// pool and the artifact writer into the generation run.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rotosim/internal/adapters/catalog"
	"github.com/okian/rotosim/internal/adapters/mq/queue"
	workerpool "github.com/okian/rotosim/internal/adapters/mq/worker"
	"github.com/okian/rotosim/internal/adapters/repository"
	"github.com/okian/rotosim/internal/adapters/writer"
	"github.com/okian/rotosim/internal/domain/features"
	"github.com/okian/rotosim/internal/domain/model"
	"github.com/okian/rotosim/internal/domain/simulation"
	"github.com/okian/rotosim/pkg/logger"
	"github.com/okian/rotosim/pkg/metrics"
)

// jobs buffered per worker
const queueDepthPerWorker = 4

// Catalog records written artifacts.
type Catalog interface {
	Record(ctx context.Context, e catalog.Entry) error
}

// simulationAdapter adapts the season runner and feature builder to worker.Simulator.
type simulationAdapter struct {
	runner  *simulation.Runner
	builder *features.Builder
	seed    uint64
}

func (a *simulationAdapter) Simulate(ctx context.Context, job queue.Job) ([]model.TrainingExample, error) {
	league, err := a.runner.Iterate(ctx, job.Iteration, simulation.IterationRNG(a.seed, job.Season, job.Iteration))
	if err != nil {
		return nil, err
	}
	rows := make([]model.TrainingExample, len(league))
	for i, ranked := range league {
		if rows[i], err = a.builder.Example(ranked); err != nil {
			return nil, fmt.Errorf("season %d iteration %d: %w", job.Season, job.Iteration, err)
		}
	}
	return rows, nil
}

// Report summarizes a generation run.
type Report struct {
	RunID     uuid.UUID
	Seed      uint64
	Artifacts []writer.Artifact
	Rows      int
	Duration  time.Duration
}

// Service generates the training artifacts of every configured season.
type Service struct {
	store  repository.Store
	writer *writer.Writer

	numTeams         int
	teamSize         int
	simulations      int
	workerCount      int
	progressInterval int
	seed             uint64
	seasons          map[model.Split][]int

	runID   uuid.UUID
	catalog Catalog
	now     func() time.Time

	logger  logger.Logger
	metrics *metrics.Manager
}

// New constructs a Service reading seasons from store and writing through w.
func New(store repository.Store, w *writer.Writer, opts ...Option) *Service {
	s := &Service{
		store:            store,
		writer:           w,
		numTeams:         8,
		teamSize:         13,
		simulations:      10_000,
		workerCount:      runtime.NumCPU(),
		progressInterval: 500,
		seasons:          make(map[model.Split][]int),
		runID:            uuid.New(),
		now:              time.Now,
		logger:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed == 0 {
		s.seed = uint64(s.now().UnixNano())
		if s.seed == 0 {
			s.seed = 1
		}
	}
	s.logger = s.logger.Named("service")
	return s
}

// RunID returns the identifier stamped on every artifact of this service.
func (s *Service) RunID() uuid.UUID { return s.runID }

// Seed returns the run seed, derived from the clock if none was given.
func (s *Service) Seed() uint64 { return s.seed }

// Generate writes one artifact per configured season, split by split. The
// first failing season aborts the run.
func (s *Service) Generate(ctx context.Context) (Report, error) {
	start := s.now()
	report := Report{RunID: s.runID, Seed: s.seed}

	s.logger.Info(ctx, "generation started",
		logger.String("run_id", s.runID.String()),
		logger.Uint64("seed", s.seed),
		logger.Int("num_teams", s.numTeams),
		logger.Int("team_size", s.teamSize),
		logger.Int("simulations", s.simulations),
		logger.Int("workers", s.workerCount),
	)

	for _, split := range model.Splits() {
		for _, year := range s.seasons[split] {
			a, err := s.GenerateSeason(ctx, split, year)
			if err != nil {
				return report, err
			}
			report.Artifacts = append(report.Artifacts, a)
			report.Rows += a.Rows
		}
	}

	report.Duration = s.now().Sub(start)
	s.logger.Info(ctx, "generation finished",
		logger.Int("artifacts", len(report.Artifacts)),
		logger.Int("rows", report.Rows),
		logger.String("duration", report.Duration.String()),
	)
	return report, nil
}

// GenerateSeason simulates one season and writes its artifact.
func (s *Service) GenerateSeason(ctx context.Context, split model.Split, year int) (writer.Artifact, error) {
	start := s.now()
	log := s.logger.Named("season")

	ds, err := s.store.Season(ctx, year)
	if err != nil {
		s.metrics.RecordError("service", "season_missing")
		return writer.Artifact{}, fmt.Errorf("season %d: %w", year, err)
	}
	prev, err := s.store.Normalized(ctx, year-1)
	if err != nil {
		s.metrics.RecordError("service", "data_integrity")
		if errors.Is(err, repository.ErrSeasonNotFound) {
			return writer.Artifact{}, fmt.Errorf("%w: season %d needs normalized stats for %d: %w",
				features.ErrDataIntegrity, year, year-1, err)
		}
		return writer.Artifact{}, fmt.Errorf("season %d: %w", year, err)
	}

	runner, err := simulation.NewRunner(ds,
		simulation.WithLeague(s.numTeams, s.teamSize),
		simulation.WithSimulations(s.simulations),
		simulation.WithProgressInterval(s.progressInterval),
		simulation.WithLogger(log),
		simulation.WithMetrics(s.metrics),
	)
	if err != nil {
		return writer.Artifact{}, fmt.Errorf("season %d: %w", year, err)
	}

	log.Info(ctx, "season started",
		logger.String("split", string(split)),
		logger.Int("season", year),
		logger.Int("pool", ds.Len()),
	)

	sim := &simulationAdapter{
		runner:  runner,
		builder: features.NewBuilder(prev, s.teamSize),
		seed:    s.seed,
	}
	acc := writer.NewAccumulator(s.simulations)
	jobs := make([]queue.Job, s.simulations)
	for i := range jobs {
		jobs[i] = queue.Job{Season: year, Iteration: i}
	}

	pool := workerpool.NewPool(s.workerCount,
		workerpool.WithName(fmt.Sprintf("pool-%d", year)),
		workerpool.WithLogger(s.logger),
		workerpool.WithMetrics(s.metrics),
	)
	q := queue.NewInMemoryQueue(queue.WithBufferSize(s.workerCount * queueDepthPerWorker))
	if err := pool.Process(ctx, q, jobs, sim, acc); err != nil {
		return writer.Artifact{}, fmt.Errorf("season %d: %w", year, err)
	}

	rows, err := acc.Rows()
	if err != nil {
		return writer.Artifact{}, fmt.Errorf("season %d: %w", year, err)
	}

	key := writer.Key{Split: split, Season: year, NumTeams: s.numTeams, TeamSize: s.teamSize}
	a, err := s.writer.Write(ctx, key, rows)
	if err != nil {
		s.metrics.RecordError("writer", "write")
		return writer.Artifact{}, fmt.Errorf("season %d: %w", year, err)
	}

	if s.catalog != nil {
		err := s.catalog.Record(ctx, catalog.Entry{
			Artifact:  a,
			RunID:     s.runID,
			Seed:      s.seed,
			CreatedAt: s.now(),
		})
		if err != nil {
			s.metrics.RecordError("catalog", "record")
			return writer.Artifact{}, fmt.Errorf("season %d: %w", year, err)
		}
	}

	took := s.now().Sub(start)
	s.metrics.RecordArtifact(string(split), a.Rows, took)
	log.Info(ctx, "season finished",
		logger.String("split", string(split)),
		logger.Int("season", year),
		logger.Int("rows", a.Rows),
		logger.String("sha256", a.SHA256),
		logger.String("duration", took.String()),
	)
	return a, nil
}
