package dataset

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/okian/rotosim/internal/adapters/catalog"
	"github.com/okian/rotosim/internal/adapters/writer"
	"github.com/okian/rotosim/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func examples(n, offset int) []model.TrainingExample {
	out := make([]model.TrainingExample, n)
	for i := range out {
		for j := range out[i].Features {
			out[i].Features[j] = float64(offset+i) + float64(j)/100
		}
		out[i].Label = offset + i
	}
	return out
}

func labels(s *Split) []int {
	out := make([]int, s.Len())
	for i := range out {
		out[i] = int(s.Y.AtVec(i))
	}
	return out
}

func TestLoad(t *testing.T) {
	Convey("Given two written training artifacts", t, func() {
		ctx := context.Background()
		root := t.TempDir()
		w, err := writer.New(root)
		So(err, ShouldBeNil)
		a2001, err := w.Write(ctx, writer.Key{Split: model.SplitTraining, Season: 2001, NumTeams: 2, TeamSize: 3}, examples(4, 0))
		So(err, ShouldBeNil)
		a2005, err := w.Write(ctx, writer.Key{Split: model.SplitTraining, Season: 2005, NumTeams: 2, TeamSize: 3}, examples(2, 100))
		So(err, ShouldBeNil)
		_, err = w.Write(ctx, writer.Key{Split: model.SplitTraining, Season: 2003, NumTeams: 8, TeamSize: 13}, examples(1, 500))
		So(err, ShouldBeNil)

		Convey("When globbing the split directory", func() {
			paths, err := GlobFiles(root, model.SplitTraining, 2, 3)
			So(err, ShouldBeNil)

			Convey("Then only the matching league shape should be found, in season order", func() {
				So(paths, ShouldResemble, []string{a2001.Path, a2005.Path})
			})

			Convey("Then Load should stack every row", func() {
				s, err := Load(ctx, model.SplitTraining, paths)
				So(err, ShouldBeNil)
				So(s.Len(), ShouldEqual, 6)
				So(s.Columns, ShouldResemble, model.FeatureColumns())
				r, c := s.X.Dims()
				So(r, ShouldEqual, 6)
				So(c, ShouldEqual, model.NumFeatures)
				So(s.X.At(1, 3), ShouldAlmostEqual, 1.03)
				So(labels(s), ShouldResemble, []int{0, 1, 2, 3, 100, 101})
			})
		})

		Convey("When the catalog lists the artifacts", func() {
			cat, err := catalog.Open(ctx, ":memory:")
			So(err, ShouldBeNil)
			defer func() { _ = cat.Close() }()
			for _, a := range []writer.Artifact{a2005, a2001} {
				So(cat.Record(ctx, catalog.Entry{Artifact: a}), ShouldBeNil)
			}
			paths, err := CatalogFiles(ctx, cat, model.SplitTraining, 2, 3)
			So(err, ShouldBeNil)

			Convey("Then the paths should be ordered by season", func() {
				So(paths, ShouldResemble, []string{a2001.Path, a2005.Path})
			})
		})

		Convey("When a path has no rows", func() {
			_, err := Load(ctx, model.SplitTest, nil)

			Convey("Then an empty split error should be returned", func() {
				So(errors.Is(err, ErrEmptySplit), ShouldBeTrue)
			})
		})
	})
}

func TestDecodeErrors(t *testing.T) {
	header := strings.Join(model.Schema(), ",")
	row := strings.Repeat("1,", model.NumFeatures) + "7"

	Convey("Given malformed artifacts", t, func() {
		cases := []struct {
			name string
			body string
			want error
		}{
			{"empty file", "", ErrHeader},
			{"reordered header", strings.Replace(header, "FG/game,FGA/game", "FGA/game,FG/game", 1) + "\n" + row + "\n", ErrHeader},
			{"non-numeric value", header + "\n" + strings.Replace(row, "1", "x", 1) + "\n", ErrMalformedRow},
			{"short row", header + "\n1,2,3\n", ErrMalformedRow},
		}
		for _, tc := range cases {
			Convey("Then "+tc.name+" should be rejected", func() {
				_, err := Decode(model.SplitTraining, strings.NewReader(tc.body))
				So(errors.Is(err, tc.want), ShouldBeTrue)
			})
		}
	})

	Convey("Given an unreadable path", t, func() {
		_, err := Load(context.Background(), model.SplitTraining, []string{filepath.Join(t.TempDir(), "missing.csv")})

		Convey("Then the open error should surface", func() {
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})
	})
}

func TestCombine(t *testing.T) {
	Convey("Given splits with 15, 6 and 4 rows", t, func() {
		mk := func(name model.Split, n, offset int) *Split {
			var buf strings.Builder
			So(writer.Encode(&buf, model.Schema(), examples(n, offset)), ShouldBeNil)
			s, err := Decode(name, strings.NewReader(buf.String()))
			So(err, ShouldBeNil)
			return s
		}
		train := mk(model.SplitTraining, 15, 0)
		test := mk(model.SplitTest, 6, 100)
		val := mk(model.SplitValidation, 4, 200)

		Convey("When combining", func() {
			a, b, c, err := Combine(train, test, val, rand.New(rand.NewPCG(1, 2)))
			So(err, ShouldBeNil)

			Convey("Then the boundaries should round half to even", func() {
				// 0.7*25 = 17.5 -> 18, 0.9*25 = 22.5 -> 22
				So(a.Len(), ShouldEqual, 18)
				So(b.Len(), ShouldEqual, 4)
				So(c.Len(), ShouldEqual, 3)
				So(a.Name, ShouldEqual, model.SplitTraining)
				So(c.Name, ShouldEqual, model.SplitValidation)
			})

			Convey("Then every row should appear exactly once with its features", func() {
				var all []int
				for _, s := range []*Split{a, b, c} {
					for i := 0; i < s.Len(); i++ {
						label := int(s.Y.AtVec(i))
						So(s.X.At(i, 0), ShouldEqual, float64(label))
						all = append(all, label)
					}
				}
				sort.Ints(all)
				want := append(append(labels(train), labels(test)...), labels(val)...)
				So(all, ShouldResemble, want)
			})

			Convey("Then the same rng seed should give the same split", func() {
				a2, _, _, err := Combine(train, test, val, rand.New(rand.NewPCG(1, 2)))
				So(err, ShouldBeNil)
				So(labels(a2), ShouldResemble, labels(a))
			})
		})

		Convey("When there are too few rows for a validation split", func() {
			_, _, _, err := Combine(mk(model.SplitTraining, 1, 0), nil, nil, rand.New(rand.NewPCG(1, 1)))

			Convey("Then an empty split error should be returned", func() {
				So(errors.Is(err, ErrEmptySplit), ShouldBeTrue)
			})
		})
	})
}

func TestSummary(t *testing.T) {
	Convey("Given a split with labels 0..3", t, func() {
		var buf strings.Builder
		So(writer.Encode(&buf, model.Schema(), examples(4, 0)), ShouldBeNil)
		s, err := Decode(model.SplitTraining, strings.NewReader(buf.String()))
		So(err, ShouldBeNil)

		Convey("Then every column should be summarized, label last", func() {
			sum := Summary(s)
			So(len(sum), ShouldEqual, model.NumFeatures+1)
			So(sum[0].Name, ShouldEqual, "Age")
			So(sum[0].Mean, ShouldAlmostEqual, 1.5)
			So(sum[2].Mean, ShouldAlmostEqual, 1.52)
			last := sum[model.NumFeatures]
			So(last.Name, ShouldEqual, model.LabelColumn)
			So(last.Mean, ShouldAlmostEqual, 1.5)
			// sample variance of 0,1,2,3 is 5/3
			So(last.StdDev*last.StdDev, ShouldAlmostEqual, 5.0/3.0)
		})
	})
}
