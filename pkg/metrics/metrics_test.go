package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it should own a private registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("sim"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metrics should land on the given registry", func() {
				manager.RecordError("writer", "io")
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_sim_errors_total")
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager", t, func() {
		manager := NewManager()

		Convey("When recording iterations", func() {
			manager.RecordIteration(2017, 3*time.Millisecond)
			manager.RecordIteration(2017, 4*time.Millisecond)
			manager.RecordIteration(2015, time.Millisecond)

			Convey("Then the per-season counter should advance", func() {
				So(testutil.ToFloat64(manager.iterationsCompleted.WithLabelValues("2017")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.iterationsCompleted.WithLabelValues("2015")), ShouldEqual, 1)
			})
		})

		Convey("When recording artifacts", func() {
			manager.RecordArtifact("training", 80, time.Second)
			manager.RecordArtifact("training", 40, time.Second)

			Convey("Then rows and artifacts should accumulate", func() {
				So(testutil.ToFloat64(manager.rowsWritten.WithLabelValues("training")), ShouldEqual, 120)
				So(testutil.ToFloat64(manager.artifactsWritten.WithLabelValues("training")), ShouldEqual, 2)
			})
		})

		Convey("When workers start and stop", func() {
			manager.WorkerStarted()
			manager.WorkerStarted()
			manager.WorkerStopped()

			Convey("Then the gauge should track the live count", func() {
				So(testutil.ToFloat64(manager.workersActive), ShouldEqual, 1)
			})
		})

		Convey("When setting the pool size", func() {
			manager.UpdateSeasonPoolSize(2010, 287)

			Convey("Then the gauge should hold it", func() {
				So(testutil.ToFloat64(manager.seasonPoolSize.WithLabelValues("2010")), ShouldEqual, 287)
			})
		})
	})
}

func TestNilManager(t *testing.T) {
	Convey("Given a nil manager", t, func() {
		var manager *Manager

		Convey("Then every method should be a no-op", func() {
			So(func() {
				manager.RecordIteration(2000, time.Millisecond)
				manager.UpdateSeasonPoolSize(2000, 1)
				manager.RecordArtifact("training", 1, time.Second)
				manager.WorkerStarted()
				manager.WorkerStopped()
				manager.RecordError("x", "y")
			}, ShouldNotPanic)
			So(manager.Registry(), ShouldBeNil)
			So(manager.WriteTextfile("/should/not/be/created.prom"), ShouldBeNil)
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a manager with recorded values", t, func() {
		manager := NewManager()
		manager.RecordArtifact("test", 16, time.Second)
		path := filepath.Join(t.TempDir(), "rotosim.prom")

		Convey("When exporting to a textfile", func() {
			err := manager.WriteTextfile(path)

			Convey("Then the file should contain the exposition", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `rotosim_generator_rows_written_total{split="test"} 16`)
			})
		})

		Convey("When exporting to an unwritable location", func() {
			err := manager.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))

			Convey("Then it should wrap ErrExportFailed", func() {
				So(errors.Is(err, ErrExportFailed), ShouldBeTrue)
			})
		})
	})
}
