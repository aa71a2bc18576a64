package catalog

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/okian/rotosim/internal/adapters/writer"
	"github.com/okian/rotosim/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func entry(split model.Split, season int, run uuid.UUID) Entry {
	key := writer.Key{Split: split, Season: season, NumTeams: 8, TeamSize: 13}
	return Entry{
		Artifact: writer.Artifact{
			Key:    key,
			Path:   filepath.Join("/out", key.RelPath()),
			Rows:   80000,
			SHA256: "ab12",
		},
		RunID:     run,
		Seed:      math.MaxUint64,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 123, time.UTC),
	}
}

func TestCatalog(t *testing.T) {
	Convey("Given an on-disk catalog", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "nested", "artifacts.db")
		c, err := Open(ctx, path)
		So(err, ShouldBeNil)
		defer func() { _ = c.Close() }()
		run := uuid.New()

		Convey("When recording entries", func() {
			So(c.Record(ctx, entry(model.SplitTraining, 2005, run)), ShouldBeNil)
			So(c.Record(ctx, entry(model.SplitTraining, 2001, run)), ShouldBeNil)
			So(c.Record(ctx, entry(model.SplitTest, 2004, run)), ShouldBeNil)

			Convey("Then Lookup should return them intact", func() {
				want := entry(model.SplitTraining, 2005, run)
				got, err := c.Lookup(ctx, want.Key)
				So(err, ShouldBeNil)
				So(got.Artifact, ShouldResemble, want.Artifact)
				So(got.RunID, ShouldEqual, run)
				So(got.Seed, ShouldEqual, uint64(math.MaxUint64))
				So(got.CreatedAt.Equal(want.CreatedAt), ShouldBeTrue)
			})

			Convey("Then List should filter by split and order by season", func() {
				list, err := c.List(ctx, model.SplitTraining, 8, 13)
				So(err, ShouldBeNil)
				So(len(list), ShouldEqual, 2)
				So(list[0].Season, ShouldEqual, 2001)
				So(list[1].Season, ShouldEqual, 2005)

				other, err := c.List(ctx, model.SplitTraining, 10, 13)
				So(err, ShouldBeNil)
				So(other, ShouldBeEmpty)
			})

			Convey("Then recording a key again should replace it", func() {
				next := entry(model.SplitTraining, 2005, uuid.New())
				next.Rows = 16
				So(c.Record(ctx, next), ShouldBeNil)

				got, err := c.Lookup(ctx, next.Key)
				So(err, ShouldBeNil)
				So(got.Rows, ShouldEqual, 16)
				So(got.RunID, ShouldEqual, next.RunID)

				list, err := c.List(ctx, model.SplitTraining, 8, 13)
				So(err, ShouldBeNil)
				So(len(list), ShouldEqual, 2)
			})
		})

		Convey("When looking up an unknown key", func() {
			_, err := c.Lookup(ctx, writer.Key{Split: model.SplitValidation, Season: 2002, NumTeams: 8, TeamSize: 13})

			Convey("Then it should fail with ErrArtifactNotFound", func() {
				So(errors.Is(err, ErrArtifactNotFound), ShouldBeTrue)
			})
		})

		Convey("When the database is reopened", func() {
			So(c.Record(ctx, entry(model.SplitValidation, 2008, run)), ShouldBeNil)
			So(c.Close(), ShouldBeNil)
			c, err = Open(ctx, path)
			So(err, ShouldBeNil)

			Convey("Then earlier entries should persist", func() {
				list, err := c.List(ctx, model.SplitValidation, 8, 13)
				So(err, ShouldBeNil)
				So(len(list), ShouldEqual, 1)
			})
		})
	})

	Convey("Given an in-memory catalog", t, func() {
		ctx := context.Background()
		c, err := Open(ctx, ":memory:")
		So(err, ShouldBeNil)
		defer func() { _ = c.Close() }()

		Convey("Then it should round-trip an entry", func() {
			e := entry(model.SplitTest, 2016, uuid.New())
			So(c.Record(ctx, e), ShouldBeNil)
			got, err := c.Lookup(ctx, e.Key)
			So(err, ShouldBeNil)
			So(got.Path, ShouldEqual, e.Path)
		})
	})
}
