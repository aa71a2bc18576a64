// Package model contains domain models passed between layers.
package model

// PlayerID identifies a player within the season tables.
type PlayerID string

// Stat indexes the raw counting stats carried by a PlayerSeasonRecord.
type Stat int

// Counting stats, in the order they are stored.
const (
	StatFG Stat = iota
	StatFGA
	Stat3P
	StatFT
	StatFTA
	StatTRB
	StatAST
	StatSTL
	StatBLK
	StatTOV
	StatPTS

	NumCountingStats = int(iota)
)

var statNames = [NumCountingStats]string{"FG", "FGA", "3P", "FT", "FTA", "TRB", "AST", "STL", "BLK", "TOV", "PTS"}

// String returns the column name of the stat.
func (s Stat) String() string {
	if s < 0 || int(s) >= NumCountingStats {
		return "unknown"
	}
	return statNames[s]
}

// CountingStats returns the counting stats in storage order.
func CountingStats() []Stat {
	out := make([]Stat, NumCountingStats)
	for i := range out {
		out[i] = Stat(i)
	}
	return out
}

// Totals holds season totals for every counting stat, indexed by Stat.
type Totals [NumCountingStats]float64

// PlayerSeasonRecord is one player's raw season line.
type PlayerSeasonRecord struct {
	Age          float64
	Games        float64
	GamesStarted float64
	Minutes      float64
	Totals       Totals

	minutesPerGame float64
	perGame        Totals
}

// NewPlayerSeasonRecord builds a record and derives its per-game rates.
// A record with zero games has all per-game rates set to zero.
func NewPlayerSeasonRecord(age, games, gamesStarted, minutes float64, totals Totals) PlayerSeasonRecord {
	r := PlayerSeasonRecord{
		Age:          age,
		Games:        games,
		GamesStarted: gamesStarted,
		Minutes:      minutes,
		Totals:       totals,
	}
	if games > 0 {
		r.minutesPerGame = minutes / games
		for i, v := range totals {
			r.perGame[i] = v / games
		}
	}
	return r
}

// Total returns the season total of a counting stat.
func (r PlayerSeasonRecord) Total(s Stat) float64 { return r.Totals[s] }

// PerGame returns the per-game rate of a counting stat.
func (r PlayerSeasonRecord) PerGame(s Stat) float64 { return r.perGame[s] }

// MinutesPerGame returns minutes played per game.
func (r PlayerSeasonRecord) MinutesPerGame() float64 { return r.minutesPerGame }

// NormalizedPlayerRecord holds a player's min-max scaled features for one
// season, in FeatureColumns order.
type NormalizedPlayerRecord struct {
	Values FeatureVector
}

// Roster is a fixed-size group of players drafted into one simulated team.
type Roster []PlayerID

// TeamCategoryStats holds a roster's value for every scoring category,
// indexed by CategoryID.
type TeamCategoryStats struct {
	Values [NumCategories]float64
}

// Value returns the roster's value in a category.
func (s TeamCategoryStats) Value(c CategoryID) float64 { return s.Values[c] }

// RankedRoster is a roster with its roto outcome inside one simulated league.
type RankedRoster struct {
	Roster          Roster
	Stats           TeamCategoryStats
	Points          [NumCategories]int
	TotalFantasyPts int
	OverallRank     int
}

// TrainingExample pairs a team feature vector with its roto total.
type TrainingExample struct {
	Features FeatureVector
	Label    int
}
