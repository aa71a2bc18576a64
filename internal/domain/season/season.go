// Package season provides read-only views over one season of player data.
package season

import (
	"sort"

	"github.com/okian/rotosim/internal/domain/model"
)

// Dataset is the raw stat table of one season.
type Dataset struct {
	year    int
	records map[model.PlayerID]model.PlayerSeasonRecord
	pool    []model.PlayerID
}

// NewDataset copies records into an immutable season view.
func NewDataset(year int, records map[model.PlayerID]model.PlayerSeasonRecord) *Dataset {
	d := &Dataset{
		year:    year,
		records: make(map[model.PlayerID]model.PlayerSeasonRecord, len(records)),
		pool:    make([]model.PlayerID, 0, len(records)),
	}
	for id, rec := range records {
		d.records[id] = rec
		d.pool = append(d.pool, id)
	}
	// map iteration order is random; the draw must not depend on it
	sort.Slice(d.pool, func(i, j int) bool { return d.pool[i] < d.pool[j] })
	return d
}

// Year returns the season year.
func (d *Dataset) Year() int { return d.year }

// Len returns the number of players in the season.
func (d *Dataset) Len() int { return len(d.pool) }

// Record returns a player's season line.
func (d *Dataset) Record(id model.PlayerID) (model.PlayerSeasonRecord, bool) {
	rec, ok := d.records[id]
	return rec, ok
}

// Pool returns the season's player ids in ascending order. The caller owns
// the returned slice.
func (d *Dataset) Pool() []model.PlayerID {
	out := make([]model.PlayerID, len(d.pool))
	copy(out, d.pool)
	return out
}

// NormalizedTable is the min-max scaled feature table of one season.
type NormalizedTable struct {
	year    int
	records map[model.PlayerID]model.NormalizedPlayerRecord
}

// NewNormalizedTable copies records into an immutable season view.
func NewNormalizedTable(year int, records map[model.PlayerID]model.NormalizedPlayerRecord) *NormalizedTable {
	t := &NormalizedTable{
		year:    year,
		records: make(map[model.PlayerID]model.NormalizedPlayerRecord, len(records)),
	}
	for id, rec := range records {
		t.records[id] = rec
	}
	return t
}

// Year returns the season year.
func (t *NormalizedTable) Year() int { return t.year }

// Len returns the number of players in the table.
func (t *NormalizedTable) Len() int { return len(t.records) }

// Record returns a player's normalized features.
func (t *NormalizedTable) Record(id model.PlayerID) (model.NormalizedPlayerRecord, bool) {
	rec, ok := t.records[id]
	return rec, ok
}

// IDs returns the table's player ids in ascending order.
func (t *NormalizedTable) IDs() []model.PlayerID {
	out := make([]model.PlayerID, 0, len(t.records))
	for id := range t.records {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
