// Package dataset loads generated artifacts back into feature matrices for
// model training.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/rotosim/internal/adapters/catalog"
	"github.com/okian/rotosim/internal/adapters/writer"
	"github.com/okian/rotosim/internal/domain/model"
)

// Re-split fractions used by Combine.
const (
	trainFraction = 0.7
	testFraction  = 0.2
)

// Split is one dataset partition: a row per team, features in X and labels in Y.
type Split struct {
	Name    model.Split
	Columns []string
	X       *mat.Dense
	Y       *mat.VecDense
}

// Len returns the number of rows.
func (s *Split) Len() int {
	if s == nil || s.Y == nil {
		return 0
	}
	return s.Y.Len()
}

// Lister lists catalogued artifacts.
type Lister interface {
	List(ctx context.Context, split model.Split, numTeams, teamSize int) ([]catalog.Entry, error)
}

// CatalogFiles returns the artifact paths the catalog holds for a split and
// league shape, ordered by season.
func CatalogFiles(ctx context.Context, l Lister, split model.Split, numTeams, teamSize int) ([]string, error) {
	entries, err := l.List(ctx, split, numTeams, teamSize)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths, nil
}

// GlobFiles returns the artifact paths under root for a split and league
// shape, sorted by name.
func GlobFiles(root string, split model.Split, numTeams, teamSize int) ([]string, error) {
	dir := filepath.Dir(writer.Key{Split: split, NumTeams: numTeams, TeamSize: teamSize}.RelPath())
	paths, err := filepath.Glob(filepath.Join(root, dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads the artifacts in paths, in order, into one split.
func Load(ctx context.Context, name model.Split, paths []string) (*Split, error) {
	var (
		data   []float64
		labels []float64
	)
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := readFile(p, &data, &labels); err != nil {
			return nil, err
		}
	}
	return newSplit(name, data, labels)
}

// Decode reads one artifact from r into a split.
func Decode(name model.Split, r io.Reader) (*Split, error) {
	var data, labels []float64
	if err := decode(r, &data, &labels); err != nil {
		return nil, err
	}
	return newSplit(name, data, labels)
}

func readFile(path string, data, labels *[]float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := decode(f, data, labels); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func decode(r io.Reader, data, labels *[]float64) error {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = model.NumFeatures + 1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: missing header", ErrHeader)
		}
		return err
	}
	if !model.SchemaEqual(header) {
		return fmt.Errorf("%w: %v", ErrHeader, header)
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
		}
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return fmt.Errorf("%w: line %d column %d: %w", ErrMalformedRow, line, i+1, err)
			}
			if i == model.NumFeatures {
				*labels = append(*labels, v)
			} else {
				*data = append(*data, v)
			}
		}
	}
}

func newSplit(name model.Split, data, labels []float64) (*Split, error) {
	n := len(labels)
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySplit, name)
	}
	return &Split{
		Name:    name,
		Columns: model.FeatureColumns(),
		X:       mat.NewDense(n, model.NumFeatures, data),
		Y:       mat.NewVecDense(n, labels),
	}, nil
}

// Combine pools the rows of the three splits, shuffles them with rng, and
// re-splits them 70/20/10. Boundaries round half to even.
func Combine(train, test, val *Split, rng *rand.Rand) (*Split, *Split, *Split, error) {
	var data, labels []float64
	for _, s := range []*Split{train, test, val} {
		for i := 0; i < s.Len(); i++ {
			data = append(data, s.X.RawRowView(i)...)
			labels = append(labels, s.Y.AtVec(i))
		}
	}

	n := len(labels)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	first := int(math.RoundToEven(trainFraction * float64(n)))
	second := int(math.RoundToEven((trainFraction + testFraction) * float64(n)))

	part := func(name model.Split, idx []int) (*Split, error) {
		d := make([]float64, 0, len(idx)*model.NumFeatures)
		l := make([]float64, 0, len(idx))
		for _, k := range idx {
			d = append(d, data[k*model.NumFeatures:(k+1)*model.NumFeatures]...)
			l = append(l, labels[k])
		}
		return newSplit(name, d, l)
	}

	outTrain, err := part(model.SplitTraining, order[:first])
	if err != nil {
		return nil, nil, nil, err
	}
	outTest, err := part(model.SplitTest, order[first:second])
	if err != nil {
		return nil, nil, nil, err
	}
	outVal, err := part(model.SplitValidation, order[second:])
	if err != nil {
		return nil, nil, nil, err
	}
	return outTrain, outTest, outVal, nil
}

// ColumnSummary holds the moments of one column.
type ColumnSummary struct {
	Name   string
	Mean   float64
	StdDev float64
}

// Summary returns the mean and sample standard deviation of every feature
// column followed by the label.
func Summary(s *Split) []ColumnSummary {
	if s.Len() == 0 {
		return nil
	}
	out := make([]ColumnSummary, 0, len(s.Columns)+1)
	col := make([]float64, s.Len())
	for j, name := range s.Columns {
		mat.Col(col, j, s.X)
		mean, std := stat.MeanStdDev(col, nil)
		out = append(out, ColumnSummary{Name: name, Mean: mean, StdDev: std})
	}
	mean, std := stat.MeanStdDev(s.Y.RawVector().Data, nil)
	return append(out, ColumnSummary{Name: model.LabelColumn, Mean: mean, StdDev: std})
}
