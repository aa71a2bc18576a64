package model_test

import (
	"testing"

	"github.com/okian/rotosim/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCategories(t *testing.T) {
	Convey("Given the category table", t, func() {
		cats := model.Categories()

		Convey("Then it should list the nine categories in scoring order", func() {
			names := make([]string, len(cats))
			for i, c := range cats {
				names[i] = c.Name
				So(c.ID, ShouldEqual, model.CategoryID(i))
			}
			So(names, ShouldResemble, []string{"FG%", "FT%", "3P", "STL", "AST", "TRB", "TOV", "BLK", "PTS"})
		})

		Convey("Then only turnovers should rank ascending", func() {
			for _, c := range cats {
				if c.ID == model.CatTOV {
					So(c.Direction, ShouldEqual, model.Ascending)
				} else {
					So(c.Direction, ShouldEqual, model.Descending)
				}
			}
		})

		Convey("Then mutating the returned slice should not affect the table", func() {
			cats[0].Name = "changed"
			So(model.Categories()[0].Name, ShouldEqual, "FG%")
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("Given the artifact schema", t, func() {
		schema := model.Schema()

		Convey("Then it should be the 15 features followed by the label", func() {
			So(schema, ShouldResemble, []string{
				"Age", "G", "GS", "MP/game", "FG/game", "FGA/game", "3P/game", "FT/game",
				"FTA/game", "TRB/game", "AST/game", "STL/game", "BLK/game", "TOV/game",
				"PTS/game", "total_fantasy_pts",
			})
			So(model.SchemaEqual(schema), ShouldBeTrue)
		})

		Convey("Then reordered or truncated columns should not match", func() {
			swapped := model.Schema()
			swapped[0], swapped[1] = swapped[1], swapped[0]
			So(model.SchemaEqual(swapped), ShouldBeFalse)
			So(model.SchemaEqual(schema[:15]), ShouldBeFalse)
		})
	})
}

func TestPlayerSeasonRecord(t *testing.T) {
	Convey("Given a season record", t, func() {
		var totals model.Totals
		totals[model.StatFG] = 400
		totals[model.StatFGA] = 800
		totals[model.StatPTS] = 1000
		totals[model.StatTOV] = 150
		rec := model.NewPlayerSeasonRecord(27, 50, 40, 1500, totals)

		Convey("Then per-game rates should be derived from games played", func() {
			So(rec.PerGame(model.StatFG), ShouldEqual, 8)
			So(rec.PerGame(model.StatPTS), ShouldEqual, 20)
			So(rec.MinutesPerGame(), ShouldEqual, 30)
			So(rec.Total(model.StatTOV), ShouldEqual, 150)
		})

		Convey("Then the raw feature vector should follow the column order", func() {
			v := rec.RawFeatures()
			So(v[0], ShouldEqual, 27)
			So(v[1], ShouldEqual, 50)
			So(v[2], ShouldEqual, 40)
			So(v[3], ShouldEqual, 30)
			So(v[4], ShouldEqual, 8)   // FG/game
			So(v[5], ShouldEqual, 16)  // FGA/game
			So(v[13], ShouldEqual, 3)  // TOV/game
			So(v[14], ShouldEqual, 20) // PTS/game
		})
	})

	Convey("Given a record with no games", t, func() {
		var totals model.Totals
		totals[model.StatPTS] = 10
		rec := model.NewPlayerSeasonRecord(20, 0, 0, 0, totals)

		Convey("Then per-game rates should be zero", func() {
			So(rec.PerGame(model.StatPTS), ShouldEqual, 0)
			So(rec.MinutesPerGame(), ShouldEqual, 0)
		})
	})
}

func TestSplit(t *testing.T) {
	Convey("Given split names", t, func() {
		Convey("Then known names should parse", func() {
			for _, s := range model.Splits() {
				got, err := model.ParseSplit(string(s))
				So(err, ShouldBeNil)
				So(got, ShouldEqual, s)
			}
			So(model.SplitTest.DirName(), ShouldEqual, "test_data")
		})

		Convey("Then unknown names should fail", func() {
			_, err := model.ParseSplit("holdout")
			So(err, ShouldNotBeNil)
		})
	})
}
