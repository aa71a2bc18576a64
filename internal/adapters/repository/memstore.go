package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/rotosim/internal/domain/model"
	"github.com/okian/rotosim/internal/domain/season"
	"github.com/okian/rotosim/pkg/logger"
)

var _ Store = (*InMemoryStore)(nil)

// InMemoryStore keeps every season table in memory. It is safe for
// concurrent use; the tables it hands out are immutable.
type InMemoryStore struct {
	mu         sync.RWMutex
	seasons    map[int]*season.Dataset
	normalized map[int]*season.NormalizedTable

	logger logger.Logger
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		seasons:    make(map[int]*season.Dataset),
		normalized: make(map[int]*season.NormalizedTable),
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromMappings builds a store from the two upstream mappings:
// season -> player -> raw record and season -> player -> normalized record.
func NewFromMappings(
	raw map[int]map[model.PlayerID]model.PlayerSeasonRecord,
	normalized map[int]map[model.PlayerID]model.NormalizedPlayerRecord,
	opts ...Option,
) *InMemoryStore {
	s := NewInMemoryStore(opts...)
	for year, records := range raw {
		s.seasons[year] = season.NewDataset(year, records)
	}
	for year, records := range normalized {
		s.normalized[year] = season.NewNormalizedTable(year, records)
	}
	return s
}

// Season returns the raw stat table of a season.
func (s *InMemoryStore) Season(_ context.Context, year int) (*season.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.seasons[year]
	if !ok {
		return nil, fmt.Errorf("%w: raw stats for %d", ErrSeasonNotFound, year)
	}
	return d, nil
}

// Normalized returns the normalized feature table of a season.
func (s *InMemoryStore) Normalized(_ context.Context, year int) (*season.NormalizedTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.normalized[year]
	if !ok {
		return nil, fmt.Errorf("%w: normalized stats for %d", ErrSeasonNotFound, year)
	}
	return t, nil
}

// Seasons returns the years with raw data, ascending.
func (s *InMemoryStore) Seasons(_ context.Context) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	years := make([]int, 0, len(s.seasons))
	for y := range s.seasons {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
