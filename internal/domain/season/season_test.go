package season_test

import (
	"testing"

	"github.com/okian/rotosim/internal/domain/model"
	"github.com/okian/rotosim/internal/domain/season"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDataset(t *testing.T) {
	Convey("Given a season built from a map", t, func() {
		records := map[model.PlayerID]model.PlayerSeasonRecord{
			"carter": model.NewPlayerSeasonRecord(25, 80, 80, 2800, model.Totals{}),
			"allen":   model.NewPlayerSeasonRecord(29, 70, 70, 2500, model.Totals{}),
			"bryant": model.NewPlayerSeasonRecord(22, 82, 82, 3000, model.Totals{}),
			"duncan": model.NewPlayerSeasonRecord(24, 82, 82, 3100, model.Totals{}),
		}
		ds := season.NewDataset(2001, records)

		Convey("Then the pool should be sorted by id", func() {
			So(ds.Year(), ShouldEqual, 2001)
			So(ds.Len(), ShouldEqual, 4)
			So(ds.Pool(), ShouldResemble, []model.PlayerID{"allen", "bryant", "carter", "duncan"})
		})

		Convey("Then the view should not change when the source map does", func() {
			delete(records, "allen")
			_, ok := ds.Record("allen")
			So(ok, ShouldBeTrue)
		})

		Convey("Then mutating a returned pool should not affect the next one", func() {
			p := ds.Pool()
			p[0] = "zzz"
			So(ds.Pool()[0], ShouldEqual, model.PlayerID("allen"))
		})

		Convey("Then unknown players should not be found", func() {
			_, ok := ds.Record("jordan")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestNormalizedTable(t *testing.T) {
	Convey("Given a normalized table", t, func() {
		tbl := season.NewNormalizedTable(2000, map[model.PlayerID]model.NormalizedPlayerRecord{
			"b": {Values: model.FeatureVector{1}},
			"a": {Values: model.FeatureVector{0.5}},
		})

		Convey("Then records and ids should be available", func() {
			So(tbl.Year(), ShouldEqual, 2000)
			So(tbl.Len(), ShouldEqual, 2)
			rec, ok := tbl.Record("a")
			So(ok, ShouldBeTrue)
			So(rec.Values[0], ShouldEqual, 0.5)
			So(tbl.IDs(), ShouldResemble, []model.PlayerID{"a", "b"})
		})
	})
}
