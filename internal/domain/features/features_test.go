package features

import (
	"errors"
	"testing"

	"github.com/okian/rotosim/internal/domain/model"
	"github.com/okian/rotosim/internal/domain/season"
	. "github.com/smartystreets/goconvey/convey"
)

func vector(base float64) model.FeatureVector {
	var v model.FeatureVector
	for i := range v {
		v[i] = base + float64(i)/100
	}
	return v
}

func TestBuild(t *testing.T) {
	Convey("Given a previous-season normalized table", t, func() {
		prev := season.NewNormalizedTable(2004, map[model.PlayerID]model.NormalizedPlayerRecord{
			"a": {Values: vector(0.1)},
			"b": {Values: vector(0.3)},
			"c": {Values: vector(0.8)},
		})

		Convey("When building a three player roster", func() {
			b := NewBuilder(prev, 3)
			got, err := b.Build(model.Roster{"a", "b", "c"})

			Convey("Then every column should be the member mean in schema order", func() {
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, len(model.FeatureColumns()))
				for i := range got {
					want := (vector(0.1)[i] + vector(0.3)[i] + vector(0.8)[i]) / 3
					So(got[i], ShouldAlmostEqual, want, 1e-12)
				}
			})

			Convey("Then roster order should not matter", func() {
				again, err := b.Build(model.Roster{"c", "a", "b"})
				So(err, ShouldBeNil)
				for i := range got {
					So(again[i], ShouldAlmostEqual, got[i], 1e-12)
				}
			})
		})

		Convey("When a member has no previous-season record", func() {
			_, err := NewBuilder(prev, 2).Build(model.Roster{"a", "rookie"})

			Convey("Then it should fail with ErrDataIntegrity", func() {
				So(errors.Is(err, ErrDataIntegrity), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "rookie")
			})
		})

		Convey("When the roster is not team sized", func() {
			_, err := NewBuilder(prev, 3).Build(model.Roster{"a", "b"})

			Convey("Then it should fail with ErrRosterSize", func() {
				So(errors.Is(err, ErrRosterSize), ShouldBeTrue)
			})
		})
	})
}

func TestExample(t *testing.T) {
	Convey("Given a ranked roster", t, func() {
		prev := season.NewNormalizedTable(2010, map[model.PlayerID]model.NormalizedPlayerRecord{
			"x": {Values: vector(0)},
			"y": {Values: vector(1)},
		})
		ranked := model.RankedRoster{Roster: model.Roster{"x", "y"}, TotalFantasyPts: 27, OverallRank: 2}

		Convey("Then the example label should be its roto total", func() {
			ex, err := NewBuilder(prev, 2).Example(ranked)
			So(err, ShouldBeNil)
			So(ex.Label, ShouldEqual, 27)
			So(ex.Features[0], ShouldAlmostEqual, 0.5, 1e-12)
			So(ex.Features[14], ShouldAlmostEqual, 0.64, 1e-12)
		})
	})
}
