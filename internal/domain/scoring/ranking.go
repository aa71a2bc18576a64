package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/rotosim/internal/domain/model"
)

// Rank scores one simulated league. stats[i] belongs to rosters[i].
//
// For each category the league is stable-sorted best first and the roster at
// index k earns len(rosters)-k points. Equal values keep their input order and
// still earn distinct points. NaN values rank last whatever the direction.
// Overall rank is 1-based over a stable descending sort of the point totals.
func Rank(rosters []model.Roster, stats []model.TeamCategoryStats) ([]model.RankedRoster, error) {
	if len(rosters) != len(stats) {
		return nil, fmt.Errorf("%w: %d rosters, %d stats", ErrLeagueMismatch, len(rosters), len(stats))
	}
	n := len(rosters)
	league := make([]model.RankedRoster, n)
	for i := range league {
		league[i].Roster = rosters[i]
		league[i].Stats = stats[i]
	}

	order := make([]int, n)
	for _, cat := range model.Categories() {
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return better(stats[order[a]].Value(cat.ID), stats[order[b]].Value(cat.ID), cat.Direction)
		})
		for idx, team := range order {
			points := n - idx
			league[team].Points[cat.ID] = points
			league[team].TotalFantasyPts += points
		}
	}

	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return league[order[a]].TotalFantasyPts > league[order[b]].TotalFantasyPts
	})
	for idx, team := range order {
		league[team].OverallRank = idx + 1
	}
	return league, nil
}

// better reports whether a ranks strictly ahead of b.
func better(a, b float64, dir model.Direction) bool {
	switch {
	case math.IsNaN(a):
		return false
	case math.IsNaN(b):
		return true
	case dir == model.Ascending:
		return a < b
	default:
		return a > b
	}
}
