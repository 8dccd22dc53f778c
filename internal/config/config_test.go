package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/teamup/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.ParallelThreshold, convey.ShouldEqual, 1000)
			convey.So(cfg.QueueSize, convey.ShouldEqual, 64)
			convey.So(cfg.TeamSize, convey.ShouldEqual, 5)
			convey.So(cfg.Algorithm, convey.ShouldEqual, "balanced")
			convey.So(cfg.DataDir, convey.ShouldEqual, "data")
			convey.So(cfg.ParticipantsFile, convey.ShouldEqual, "allParticipants.csv")
			convey.So(cfg.TeamsFile, convey.ShouldEqual, "formed_teams.csv")
			convey.So(cfg.MetricsFile, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with bad values", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"team size below three", func(c *config.Config) { c.TeamSize = 2 }},
			{"unknown algorithm", func(c *config.Config) { c.Algorithm = "random" }},
			{"empty data dir", func(c *config.Config) { c.DataDir = "  " }},
			{"zero queue size", func(c *config.Config) { c.QueueSize = 0 }},
			{"unknown log format", func(c *config.Config) { c.LogFormat = "xml" }},
		}

		for _, tc := range cases {
			convey.Convey("When the config has "+tc.name, func() {
				cfg := config.New()
				tc.mutate(cfg)

				convey.Convey("Then validation should fail with ErrInvalidConfig", func() {
					convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})
}
