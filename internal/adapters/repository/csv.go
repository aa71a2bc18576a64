package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/okian/rotosim/internal/domain/model"
	"github.com/okian/rotosim/pkg/logger"
)

// Input file names inside a data directory.
const (
	SeasonStatsFile     = "season_stats.csv"
	NormalizedStatsFile = "normalized_stats.csv"
)

const (
	colYear   = "year"
	colPlayer = "player"
)

// seasonColumns is the header of season_stats.csv after year and player.
var seasonColumns = []string{"Age", "G", "GS", "MP", "FG", "FGA", "3P", "FT", "FTA", "TRB", "AST", "STL", "BLK", "TOV", "PTS"}

// SeasonHeader returns the full season_stats.csv header.
func SeasonHeader() []string {
	return append([]string{colYear, colPlayer}, seasonColumns...)
}

// NormalizedHeader returns the full normalized_stats.csv header.
func NormalizedHeader() []string {
	return append([]string{colYear, colPlayer}, model.FeatureColumns()...)
}

// LoadDir reads season_stats.csv and normalized_stats.csv from dir.
// Columns are matched by header name; extra columns are ignored.
func LoadDir(ctx context.Context, dir string, opts ...Option) (*InMemoryStore, error) {
	raw, err := readSeasonStats(filepath.Join(dir, SeasonStatsFile))
	if err != nil {
		return nil, err
	}
	norm, err := readNormalizedStats(filepath.Join(dir, NormalizedStatsFile))
	if err != nil {
		return nil, err
	}

	s := NewFromMappings(raw, norm, opts...)
	s.logger.Info(ctx, "season data loaded",
		logger.String("dir", dir),
		logger.Int("seasons", len(raw)),
		logger.Int("normalized_seasons", len(norm)),
	)
	return s, nil
}

// WriteDir writes the two input files to dir in the layout LoadDir reads.
// Rows are ordered by year, then player id.
func WriteDir(
	_ context.Context,
	dir string,
	raw map[int]map[model.PlayerID]model.PlayerSeasonRecord,
	normalized map[int]map[model.PlayerID]model.NormalizedPlayerRecord,
) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	err := writeCSV(filepath.Join(dir, SeasonStatsFile), SeasonHeader(), func(emit func([]string) error) error {
		for _, year := range sortedYears(raw) {
			for _, id := range sortedIDs(raw[year]) {
				rec := raw[year][id]
				row := []string{strconv.Itoa(year), string(id),
					formatFloat(rec.Age), formatFloat(rec.Games), formatFloat(rec.GamesStarted), formatFloat(rec.Minutes)}
				for _, v := range rec.Totals {
					row = append(row, formatFloat(v))
				}
				if err := emit(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeCSV(filepath.Join(dir, NormalizedStatsFile), NormalizedHeader(), func(emit func([]string) error) error {
		for _, year := range sortedYears(normalized) {
			for _, id := range sortedIDs(normalized[year]) {
				row := []string{strconv.Itoa(year), string(id)}
				for _, v := range normalized[year][id].Values {
					row = append(row, formatFloat(v))
				}
				if err := emit(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func readSeasonStats(path string) (map[int]map[model.PlayerID]model.PlayerSeasonRecord, error) {
	out := make(map[int]map[model.PlayerID]model.PlayerSeasonRecord)
	err := readCSV(path, SeasonHeader(), func(line int, year int, id model.PlayerID, vals []float64) error {
		if out[year] == nil {
			out[year] = make(map[model.PlayerID]model.PlayerSeasonRecord)
		}
		if _, dup := out[year][id]; dup {
			return fmt.Errorf("%w: %s line %d: duplicate player %s in %d", ErrMalformedData, path, line, id, year)
		}
		var totals model.Totals
		copy(totals[:], vals[4:])
		out[year][id] = model.NewPlayerSeasonRecord(vals[0], vals[1], vals[2], vals[3], totals)
		return nil
	})
	return out, err
}

func readNormalizedStats(path string) (map[int]map[model.PlayerID]model.NormalizedPlayerRecord, error) {
	out := make(map[int]map[model.PlayerID]model.NormalizedPlayerRecord)
	err := readCSV(path, NormalizedHeader(), func(line int, year int, id model.PlayerID, vals []float64) error {
		if out[year] == nil {
			out[year] = make(map[model.PlayerID]model.NormalizedPlayerRecord)
		}
		if _, dup := out[year][id]; dup {
			return fmt.Errorf("%w: %s line %d: duplicate player %s in %d", ErrMalformedData, path, line, id, year)
		}
		var rec model.NormalizedPlayerRecord
		copy(rec.Values[:], vals)
		out[year][id] = rec
		return nil
	})
	return out, err
}

// readCSV streams a file whose header contains want, handing each row's
// year, player and remaining values (in want order) to fn.
func readCSV(path string, want []string, fn func(line, year int, id model.PlayerID, vals []float64) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("%w: %s: read header: %w", ErrMalformedData, path, err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	cols := make([]int, len(want))
	for i, name := range want {
		pos, ok := index[name]
		if !ok {
			return fmt.Errorf("%w: %s: missing column %q", ErrMalformedData, path, name)
		}
		cols[i] = pos
	}

	vals := make([]float64, len(want)-2)
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s line %d: %w", ErrMalformedData, path, line, err)
		}

		year, err := strconv.Atoi(rec[cols[0]])
		if err != nil {
			return fmt.Errorf("%w: %s line %d: year %q", ErrMalformedData, path, line, rec[cols[0]])
		}
		id := model.PlayerID(rec[cols[1]])
		if id == "" {
			return fmt.Errorf("%w: %s line %d: empty player id", ErrMalformedData, path, line)
		}
		for i, pos := range cols[2:] {
			if vals[i], err = strconv.ParseFloat(rec[pos], 64); err != nil {
				return fmt.Errorf("%w: %s line %d: column %s: %q", ErrMalformedData, path, line, want[i+2], rec[pos])
			}
		}
		if err := fn(line, year, id, vals); err != nil {
			return err
		}
	}
}

func writeCSV(path string, header []string, rows func(emit func([]string) error) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := rows(w.Write); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func sortedYears[V any](m map[int]V) []int {
	years := make([]int, 0, len(m))
	for y := range m {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func sortedIDs[V any](m map[model.PlayerID]V) []model.PlayerID {
	ids := make([]model.PlayerID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
