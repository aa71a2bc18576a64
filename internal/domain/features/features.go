// Package features averages previous-season normalized stats into team
// feature vectors.
package features

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/okian/rotosim/internal/domain/model"
)

// NormalizedLookup resolves a player's previous-season normalized features.
type NormalizedLookup interface {
	Record(id model.PlayerID) (model.NormalizedPlayerRecord, bool)
}

// Builder maps rosters to team feature vectors.
type Builder struct {
	prev     NormalizedLookup
	teamSize int
}

// NewBuilder creates a builder reading the previous season's table.
func NewBuilder(prev NormalizedLookup, teamSize int) *Builder {
	return &Builder{prev: prev, teamSize: teamSize}
}

// Build returns the column-wise mean of the roster members' normalized
// features. Every member must be present in the previous season.
func (b *Builder) Build(roster model.Roster) (model.FeatureVector, error) {
	var out model.FeatureVector
	if len(roster) != b.teamSize {
		return out, fmt.Errorf("%w: got %d players, want %d", ErrRosterSize, len(roster), b.teamSize)
	}

	sum := make([]float64, model.NumFeatures)
	for _, id := range roster {
		rec, ok := b.prev.Record(id)
		if !ok {
			return out, fmt.Errorf("%w: player %s has no previous-season record", ErrDataIntegrity, id)
		}
		floats.Add(sum, rec.Values[:])
	}
	floats.Scale(1/float64(b.teamSize), sum)
	copy(out[:], sum)
	return out, nil
}

// Example builds the training row of a ranked roster.
func (b *Builder) Example(r model.RankedRoster) (model.TrainingExample, error) {
	f, err := b.Build(r.Roster)
	if err != nil {
		return model.TrainingExample{}, err
	}
	return model.TrainingExample{Features: f, Label: r.TotalFantasyPts}, nil
}
