// Package repository holds the per-season player tables the generator reads.
package repository

import (
	"context"

	"github.com/okian/rotosim/internal/domain/season"
)

// Store provides read access to season tables.
type Store interface {
	// Season returns the raw stat table of a season.
	// Returns ErrSeasonNotFound if the season is unknown.
	Season(ctx context.Context, year int) (*season.Dataset, error)

	// Normalized returns the min-max scaled feature table of a season.
	// Returns ErrSeasonNotFound if the season is unknown.
	Normalized(ctx context.Context, year int) (*season.NormalizedTable, error)
}
