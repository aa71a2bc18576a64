// Package synth fabricates season tables shaped like the cleaned upstream
// data, so the generator can run end to end without the ingestion pipeline.
package synth

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/okian/rotosim/internal/domain/model"
	"github.com/okian/rotosim/pkg/logger"
)

// Output holds the two season mappings the generator consumes.
type Output struct {
	Raw        map[int]map[model.PlayerID]model.PlayerSeasonRecord
	Normalized map[int]map[model.PlayerID]model.NormalizedPlayerRecord
}

// profile is a player's latent per-minute production.
type profile struct {
	age       float64
	minutes   float64 // per game when healthy
	fga       float64
	fgPct     float64
	threeRate float64 // share of makes from three
	fta       float64
	ftPct     float64
	trb       float64
	ast       float64
	stl       float64
	blk       float64
	tov       float64
}

// Generate fabricates seasons StartYear..EndYear.
//
// Each season keeps the PoolSize players with the most minutes. Normalized
// features are min-max scaled over that pool. Raw tables after the first year
// drop players who were not in the previous season's pool, so every raw
// player has a previous-season normalized record.
func Generate(ctx context.Context, cfg Config, opts ...Option) (*Output, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &options{logger: logger.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, 0x5eed))
	out := &Output{
		Raw:        make(map[int]map[model.PlayerID]model.PlayerSeasonRecord),
		Normalized: make(map[int]map[model.PlayerID]model.NormalizedPlayerRecord),
	}

	players := make(map[model.PlayerID]*profile)
	next := 0
	var prevPool map[model.PlayerID]model.PlayerSeasonRecord

	for year := cfg.StartYear; year <= cfg.EndYear; year++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// age the league, retire some players, sign rookies
		for _, id := range sortedIDs(players) {
			p := players[id]
			p.age++
			if rng.Float64() > retentionRate || p.age > 39 {
				delete(players, id)
				continue
			}
			p.minutes = clamp(p.minutes+rng.NormFloat64()*3, 6, 40)
		}
		for len(players) < cfg.Candidates {
			players[model.PlayerID(fmt.Sprintf("p%05d", next))] = newProfile(rng)
			next++
		}

		season := make(map[model.PlayerID]model.PlayerSeasonRecord, len(players))
		for _, id := range sortedIDs(players) {
			season[id] = seasonLine(rng, players[id])
		}

		pool := topByMinutes(season, cfg.PoolSize)
		out.Normalized[year] = normalize(pool)

		raw := pool
		if prevPool != nil {
			raw = make(map[model.PlayerID]model.PlayerSeasonRecord, len(pool))
			for id, rec := range pool {
				if _, ok := prevPool[id]; ok {
					raw[id] = rec
				}
			}
		}
		out.Raw[year] = raw
		prevPool = pool

		o.logger.Debug(ctx, "season fabricated",
			logger.Int("year", year),
			logger.Int("pool", len(pool)),
			logger.Int("players", len(raw)),
		)
	}

	o.logger.Info(ctx, "synthetic seasons generated",
		logger.Int("start_year", cfg.StartYear),
		logger.Int("end_year", cfg.EndYear),
		logger.Uint64("seed", cfg.Seed),
	)
	return out, nil
}

func newProfile(rng *rand.Rand) *profile {
	return &profile{
		age:       float64(19 + rng.IntN(8)),
		minutes:   clamp(8+rng.Float64()*30, 6, 40),
		fga:       clamp(0.38+rng.NormFloat64()*0.09, 0.15, 0.75),
		fgPct:     clamp(0.45+rng.NormFloat64()*0.04, 0.33, 0.65),
		threeRate: clamp(rng.Float64()*0.4, 0, 0.6),
		fta:       clamp(0.1+rng.NormFloat64()*0.05, 0, 0.35),
		ftPct:     clamp(0.76+rng.NormFloat64()*0.08, 0.4, 0.95),
		trb:       clamp(0.18+rng.NormFloat64()*0.07, 0.05, 0.45),
		ast:       clamp(0.1+rng.NormFloat64()*0.06, 0.01, 0.35),
		stl:       clamp(0.03+rng.NormFloat64()*0.01, 0.005, 0.07),
		blk:       clamp(0.02+rng.NormFloat64()*0.015, 0, 0.1),
		tov:       clamp(0.06+rng.NormFloat64()*0.02, 0.01, 0.15),
	}
}

// seasonLine draws one season of box-score totals for a player.
func seasonLine(rng *rand.Rand, p *profile) model.PlayerSeasonRecord {
	games := float64(20 + rng.IntN(maxGames-19))
	started := math.Floor(games * clamp((p.minutes-15)/20+rng.NormFloat64()*0.1, 0, 1))
	minutes := math.Round(games * clamp(p.minutes+rng.NormFloat64()*2, 4, 42))

	count := func(rate float64) float64 {
		return math.Max(0, math.Round(minutes*rate*(1+rng.NormFloat64()*0.08)))
	}

	var t model.Totals
	t[model.StatFGA] = count(p.fga)
	t[model.StatFG] = math.Min(t[model.StatFGA], math.Round(t[model.StatFGA]*p.fgPct))
	t[model.Stat3P] = math.Round(t[model.StatFG] * p.threeRate)
	t[model.StatFTA] = count(p.fta)
	t[model.StatFT] = math.Min(t[model.StatFTA], math.Round(t[model.StatFTA]*p.ftPct))
	t[model.StatTRB] = count(p.trb)
	t[model.StatAST] = count(p.ast)
	t[model.StatSTL] = count(p.stl)
	t[model.StatBLK] = count(p.blk)
	t[model.StatTOV] = count(p.tov)
	t[model.StatPTS] = 2*t[model.StatFG] + t[model.Stat3P] + t[model.StatFT]

	return model.NewPlayerSeasonRecord(p.age, games, started, minutes, t)
}

// topByMinutes keeps the n players with the most minutes; ties go to the
// lower id.
func topByMinutes(season map[model.PlayerID]model.PlayerSeasonRecord, n int) map[model.PlayerID]model.PlayerSeasonRecord {
	ids := sortedIDs(season)
	sort.SliceStable(ids, func(i, j int) bool {
		return season[ids[i]].Minutes > season[ids[j]].Minutes
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	out := make(map[model.PlayerID]model.PlayerSeasonRecord, len(ids))
	for _, id := range ids {
		out[id] = season[id]
	}
	return out
}

// normalize min-max scales every feature column over the pool. A column with
// no spread scales to zero.
func normalize(pool map[model.PlayerID]model.PlayerSeasonRecord) map[model.PlayerID]model.NormalizedPlayerRecord {
	ids := sortedIDs(pool)
	columns := make([][]float64, model.NumFeatures)
	for c := range columns {
		columns[c] = make([]float64, len(ids))
	}
	for r, id := range ids {
		for c, v := range pool[id].RawFeatures() {
			columns[c][r] = v
		}
	}

	for _, col := range columns {
		if len(col) == 0 {
			continue
		}
		lo, hi := floats.Min(col), floats.Max(col)
		floats.AddConst(-lo, col)
		if span := hi - lo; span > 0 {
			for i := range col {
				col[i] /= span
			}
		}
	}

	out := make(map[model.PlayerID]model.NormalizedPlayerRecord, len(ids))
	for r, id := range ids {
		var rec model.NormalizedPlayerRecord
		for c := range columns {
			rec.Values[c] = columns[c][r]
		}
		out[id] = rec
	}
	return out
}

func sortedIDs[V any](m map[model.PlayerID]V) []model.PlayerID {
	ids := make([]model.PlayerID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
