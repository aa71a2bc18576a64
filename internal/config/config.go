// Package config defines generator configuration and its loading.
//
// Conventions:
// - New returns a Config holding every default.
// - Load layers a YAML file and ROTOSIM_ environment variables over New.
// - Validate errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"

	"github.com/okian/rotosim/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// NumTeams and TeamSize set the simulated league shape.
	NumTeams int `koanf:"num_teams"`
	TeamSize int `koanf:"team_size"`

	// SimulationsPerSeason is the number of leagues simulated per season.
	SimulationsPerSeason int `koanf:"simulations_per_season"`

	// StartYear is the first season with data; it only ever serves as a
	// previous season.
	StartYear int `koanf:"start_year"`

	TrainingYears   []int `koanf:"training_years"`
	TestYears       []int `koanf:"test_years"`
	ValidationYears []int `koanf:"validation_years"`

	// CombineData pools every split and re-splits it 70/20/10 when reading.
	CombineData bool `koanf:"combine_data"`

	// Seed drives every draw. Zero derives a seed from the clock.
	Seed uint64 `koanf:"seed"`

	// WorkerCount sets the number of simulation workers.
	WorkerCount int `koanf:"worker_count"`

	// ProgressInterval is the iteration count between progress logs.
	ProgressInterval int `koanf:"progress_interval"`

	DataDir     string `koanf:"data_dir"`
	OutputDir   string `koanf:"output_dir"`
	CatalogPath string `koanf:"catalog_path"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`

	// VectorColumns is the artifact header. It must equal the fixed schema.
	VectorColumns []string `koanf:"vector_columns"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		NumTeams:             8,
		TeamSize:             13,
		SimulationsPerSeason: 10_000,
		StartYear:            2000,
		TrainingYears:        []int{2001, 2003, 2005, 2006, 2007, 2009, 2011, 2012, 2013, 2015, 2017},
		TestYears:            []int{2016, 2010, 2004},
		ValidationYears:      []int{2014, 2008, 2002},
		WorkerCount:          runtime.NumCPU(),
		ProgressInterval:     500,
		DataDir:              "data",
		OutputDir:            ".",
		CatalogPath:          "artifacts.db",
		VectorColumns:        model.Schema(),
	}
}

// Years returns the seasons configured for a split.
func (c *Config) Years(split model.Split) []int {
	switch split {
	case model.SplitTraining:
		return c.TrainingYears
	case model.SplitTest:
		return c.TestYears
	case model.SplitValidation:
		return c.ValidationYears
	default:
		return nil
	}
}

// Validate checks the configuration for values the generator cannot run with.
func (c *Config) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"num_teams", c.NumTeams},
		{"team_size", c.TeamSize},
		{"simulations_per_season", c.SimulationsPerSeason},
		{"progress_interval", c.ProgressInterval},
		{"worker_count", c.WorkerCount},
	}
	for _, p := range positive {
		if p.value < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidConfig, p.name, p.value)
		}
	}

	for _, split := range model.Splits() {
		seen := make(map[int]bool)
		for _, year := range c.Years(split) {
			if year <= c.StartYear {
				return fmt.Errorf("%w: %s season %d has no previous season after start_year %d",
					ErrInvalidConfig, split, year, c.StartYear)
			}
			if seen[year] {
				return fmt.Errorf("%w: %s season %d listed twice", ErrInvalidConfig, split, year)
			}
			seen[year] = true
		}
	}

	if !model.SchemaEqual(c.VectorColumns) {
		return fmt.Errorf("%w: vector_columns %v do not match %v", ErrInvalidConfig, c.VectorColumns, model.Schema())
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	return nil
}
