package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment names read by Load.
const (
	EnvPrefix = "ROTOSIM_"
	EnvFile   = EnvPrefix + "CONFIG"
)

// listKeys are read from the environment as comma separated values.
var listKeys = map[string]bool{
	"training_years":   true,
	"test_years":       true,
	"validation_years": true,
	"vector_columns":   true,
}

type loadOptions struct {
	path string
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithFile reads the YAML file at path instead of the one named by ROTOSIM_CONFIG.
func WithFile(path string) LoadOption {
	return func(o *loadOptions) {
		if path != "" {
			o.path = path
		}
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) from WithFile or ROTOSIM_CONFIG
//  3. env (prefix ROTOSIM_), lists comma separated
//
// The result is validated.
func Load(_ context.Context, opts ...LoadOption) (*Config, error) {
	o := &loadOptions{path: os.Getenv(EnvFile)}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")

	if o.path != "" {
		if err := k.Load(file.Provider(o.path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrLoadConfig, o.path, err)
		}
	}

	// ROTOSIM_NUM_TEAMS -> num_teams; underscores are kept to match the tags
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrLoadConfig, err)
	}

	cfg := New()
	// decoding into a longer default slice would keep its stale tail
	resets := map[string]func(){
		"training_years":   func() { cfg.TrainingYears = nil },
		"test_years":       func() { cfg.TestYears = nil },
		"validation_years": func() { cfg.ValidationYears = nil },
		"vector_columns":   func() { cfg.VectorColumns = nil },
	}
	for key, reset := range resets {
		if k.Exists(key) {
			reset()
		}
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
