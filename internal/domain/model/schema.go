package model

// NumFeatures is the length of a team feature vector.
const NumFeatures = 15

// LabelColumn names the label column of a training artifact.
const LabelColumn = "total_fantasy_pts"

// FeatureVector holds values in FeatureColumns order.
type FeatureVector [NumFeatures]float64

// The feature column order is part of the artifact format.
var featureColumns = [NumFeatures]string{
	"Age",
	"G",
	"GS",
	"MP/game",
	"FG/game",
	"FGA/game",
	"3P/game",
	"FT/game",
	"FTA/game",
	"TRB/game",
	"AST/game",
	"STL/game",
	"BLK/game",
	"TOV/game",
	"PTS/game",
}

// perGameStats lists the counting stat behind each per-game feature after MP/game.
var perGameStats = [...]Stat{StatFG, StatFGA, Stat3P, StatFT, StatFTA, StatTRB, StatAST, StatSTL, StatBLK, StatTOV, StatPTS}

// FeatureColumns returns the 15 feature column names in order.
func FeatureColumns() []string {
	out := make([]string, NumFeatures)
	copy(out, featureColumns[:])
	return out
}

// Schema returns the artifact columns: the features followed by the label.
func Schema() []string {
	return append(FeatureColumns(), LabelColumn)
}

// SchemaEqual reports whether cols is exactly the artifact schema.
func SchemaEqual(cols []string) bool {
	if len(cols) != NumFeatures+1 {
		return false
	}
	for i, c := range featureColumns {
		if cols[i] != c {
			return false
		}
	}
	return cols[NumFeatures] == LabelColumn
}

// RawFeatures returns the unscaled feature vector of a season record:
// age, games, games started, then the per-game rates.
func (r PlayerSeasonRecord) RawFeatures() FeatureVector {
	var v FeatureVector
	v[0] = r.Age
	v[1] = r.Games
	v[2] = r.GamesStarted
	v[3] = r.MinutesPerGame()
	for i, s := range perGameStats {
		v[4+i] = r.PerGame(s)
	}
	return v
}
