package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When applied to a manager", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the fields should reflect them", func() {
				So(m.namespace, ShouldEqual, "test")
				So(m.subsystem, ShouldEqual, "unit")
				So(m.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(m.constLabels["env"], ShouldEqual, "test")
				So(m.registry, ShouldEqual, registry)
			})
		})

		Convey("When given empty values", func() {
			m := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the defaults should stay", func() {
				So(m.namespace, ShouldEqual, "teamup")
				So(m.subsystem, ShouldEqual, "formation")
				So(len(m.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestManagerCounters(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When counters are incremented", func() {
			m.formationRuns.WithLabelValues("balanced").Inc()
			m.formationRuns.WithLabelValues("balanced").Inc()
			m.queueRejected.WithLabelValues("full").Inc()
			m.teamsFormed.Set(4)

			Convey("Then the values should be observable", func() {
				So(testutil.ToFloat64(m.formationRuns.WithLabelValues("balanced")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.queueRejected.WithLabelValues("full")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.teamsFormed), ShouldEqual, 4)
			})
		})

		Convey("When the registry is gathered", func() {
			m.leaderRepairs.Inc()
			families, err := registry.Gather()

			Convey("Then names should carry the namespace and subsystem", func() {
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "teamup_formation_leader_repairs_total")
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global recorders", t, func() {
		Convey("Then none of them should panic", func() {
			So(func() {
				RecordFormationRun("skill", 1.5)
				RecordFormationError("role", "insufficient_input")
				UpdateTeamsFormed(3)
				RecordParticipantsAssigned(12)
				RecordLeaderRepair()
				RecordParallelGrouping()
				UpdatePoolWorkers(4)
				RecordPoolTask(0.2)
				RecordPoolTaskInline()
				UpdateQueueSize(2)
				UpdateQueueCapacity(64)
				RecordQueueEnqueue()
				RecordQueueRejected("closed")
				UpdateRosterSize(10)
				RecordRosterDuplicate()
				RecordCSVRowsRead("participants", 5)
				RecordCSVRowSkipped()
				RecordCSVRowsWritten("teams", 6)
				RecordErrorByComponent("repository", "parse")
			}, ShouldNotPanic)
		})

		Convey("Then the registry should be the custom one", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a recorded formation run", t, func() {
		RecordFormationRun("balanced", 2)
		dir := t.TempDir()

		Convey("When writing to a textfile", func() {
			path := filepath.Join(dir, "teamup.prom")
			err := WriteTextfile(path)

			Convey("Then the file should hold the exposition text", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(strings.Contains(string(data), `teamup_formation_runs_total{algorithm="balanced"}`), ShouldBeTrue)
			})
		})

		Convey("When the directory does not exist", func() {
			err := WriteTextfile(filepath.Join(dir, "missing", "teamup.prom"))

			Convey("Then it should wrap ErrWriteTextfile", func() {
				So(errors.Is(err, ErrWriteTextfile), ShouldBeTrue)
			})
		})
	})
}
