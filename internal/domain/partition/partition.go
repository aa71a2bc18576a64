// Package partition draws a season's player pool into disjoint rosters.
package partition

import (
	"fmt"

	"github.com/okian/rotosim/internal/domain/model"
)

// Rand is the randomness a draw consumes. *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// Partitioner draws num_teams rosters of team_size players without replacement.
type Partitioner struct {
	numTeams int
	teamSize int
}

// New creates a partitioner for the given league shape.
func New(numTeams, teamSize int) (*Partitioner, error) {
	if numTeams < 1 || teamSize < 1 {
		return nil, fmt.Errorf("%w: %d teams of %d", ErrInvalidShape, numTeams, teamSize)
	}
	return &Partitioner{numTeams: numTeams, teamSize: teamSize}, nil
}

// NumTeams returns the number of rosters per draw.
func (p *Partitioner) NumTeams() int { return p.numTeams }

// TeamSize returns the number of players per roster.
func (p *Partitioner) TeamSize() int { return p.teamSize }

// Draw samples num_teams*team_size distinct players uniformly from pool and
// splits the sample, in draw order, into contiguous rosters. pool is not
// modified. The result depends only on pool order and the values rng yields.
func (p *Partitioner) Draw(pool []model.PlayerID, rng Rand) ([]model.Roster, error) {
	need := p.numTeams * p.teamSize
	if len(pool) < need {
		return nil, fmt.Errorf("%w: pool has %d players, %d teams of %d need %d",
			ErrSampling, len(pool), p.numTeams, p.teamSize, need)
	}

	// partial Fisher-Yates: the first need slots end up a uniform sample
	scratch := make([]model.PlayerID, len(pool))
	copy(scratch, pool)
	for i := 0; i < need; i++ {
		j := i + rng.IntN(len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}

	rosters := make([]model.Roster, p.numTeams)
	for t := range rosters {
		start := t * p.teamSize
		rosters[t] = model.Roster(scratch[start : start+p.teamSize : start+p.teamSize])
	}
	return rosters, nil
}
