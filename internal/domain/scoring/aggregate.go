// Package scoring turns rosters into roto category totals and ranks a
// simulated league across the nine categories.
package scoring

import (
	"fmt"
	"math"

	"github.com/okian/rotosim/internal/domain/model"
)

// SeasonLookup resolves a player's raw season line.
type SeasonLookup interface {
	Record(id model.PlayerID) (model.PlayerSeasonRecord, bool)
}

// Aggregator sums a roster's counting stats into category values.
type Aggregator struct {
	season SeasonLookup
}

// NewAggregator creates an aggregator over one season.
func NewAggregator(season SeasonLookup) *Aggregator {
	return &Aggregator{season: season}
}

// Aggregate sums the roster's counting stats and derives FG% and FT%.
// A zero attempt total yields NaN for that percentage.
func (a *Aggregator) Aggregate(roster model.Roster) (model.TeamCategoryStats, error) {
	var sum model.Totals
	for _, id := range roster {
		rec, ok := a.season.Record(id)
		if !ok {
			return model.TeamCategoryStats{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
		}
		for i, v := range rec.Totals {
			sum[i] += v
		}
	}

	var out model.TeamCategoryStats
	out.Values[model.CatFGPct] = ratio(sum[model.StatFG], sum[model.StatFGA])
	out.Values[model.CatFTPct] = ratio(sum[model.StatFT], sum[model.StatFTA])
	out.Values[model.Cat3P] = sum[model.Stat3P]
	out.Values[model.CatSTL] = sum[model.StatSTL]
	out.Values[model.CatAST] = sum[model.StatAST]
	out.Values[model.CatTRB] = sum[model.StatTRB]
	out.Values[model.CatTOV] = sum[model.StatTOV]
	out.Values[model.CatBLK] = sum[model.StatBLK]
	out.Values[model.CatPTS] = sum[model.StatPTS]
	return out, nil
}

func ratio(made, attempted float64) float64 {
	if attempted == 0 {
		return math.NaN()
	}
	return made / attempted
}
