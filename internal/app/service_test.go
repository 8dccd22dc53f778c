package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	service "github.com/okian/teamup/internal/app"
	"github.com/okian/teamup/internal/domain/model"
	"github.com/okian/teamup/internal/domain/roster"
	"github.com/okian/teamup/internal/domain/validation"
	"github.com/okian/teamup/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const sampleCSV = `ID,Name,Email,PreferredGame,SkillLevel,PreferredRole,PersonalityScore,PersonalityType
P001,Alice Lead,alice@uni.edu,Chess,8,Strategist,95,Leader
P002,Bob Calm,bob@uni.edu,FIFA,6,Attacker,75,Balanced
P003,Cara Deep,cara@uni.edu,Valorant,5,Defender,60,Thinker
P004,Dan Lead,dan@uni.edu,Chess,7,Coordinator,92,Leader
P005,Eve Calm,eve@uni.edu,FIFA,4,Supporter,80,Balanced
P006,Finn Deep,finn@uni.edu,Valorant,3,Attacker,55,Thinker
`

func participant(id, email string, score, skill int) *model.Participant {
	return &model.Participant{
		ID:               id,
		Name:             "Player " + id,
		Email:            email,
		PersonalityScore: score,
		PreferredGame:    "Chess",
		PreferredRole:    model.Strategist,
		SkillLevel:       skill,
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func startService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	svc := service.New(opts...)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should report defaults and not be started", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["dataDir"], ShouldEqual, "data")
			So(stats["queueSize"], ShouldEqual, 64)
			So(stats["parallelThreshold"], ShouldEqual, 1000)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(8),
			service.WithQueueSize(16),
			service.WithParallelThreshold(0),
			service.WithDataDir("/tmp/teams"),
		)

		Convey("Then the options should be applied", func() {
			stats := svc.GetStats()
			So(stats["workerCount"], ShouldEqual, 8)
			So(stats["queueSize"], ShouldEqual, 16)
			So(stats["parallelThreshold"], ShouldEqual, 0)
			So(stats["dataDir"], ShouldEqual, "/tmp/teams")
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		svc := service.New(service.WithDataDir(t.TempDir()))
		ctx := context.Background()

		Convey("Then operations should report it is not started", func() {
			So(errors.Is(svc.AddParticipant(ctx, participant("P1", "a@uni.edu", 95, 5)), service.ErrNotStarted), ShouldBeTrue)
			_, err := svc.LoadFromCSV(ctx, "missing.csv")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.FormTeams(ctx, "balanced", 3)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(svc.Participants(), ShouldBeEmpty)
			So(svc.FormedTeams(), ShouldBeEmpty)
		})

		Convey("And stopping it should be a no-op", func() {
			So(svc.Stop(ctx), ShouldBeNil)
		})
	})

	Convey("Given a started service", t, func() {
		svc := startService(t, service.WithDataDir(t.TempDir()))
		ctx := context.Background()

		Convey("When starting it again", func() {
			err := svc.Start(ctx)

			Convey("Then it should be a no-op", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, true)
			})
		})

		Convey("When stopping it twice", func() {
			So(svc.Stop(ctx), ShouldBeNil)
			So(svc.Stop(ctx), ShouldBeNil)

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Participants(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startService(t, service.WithDataDir(t.TempDir()))
		defer func() { _ = svc.Stop(context.Background()) }()
		ctx := context.Background()

		Convey("When adding a valid participant", func() {
			err := svc.AddParticipant(ctx, participant("P1", "ann@uni.edu", 95, 5))

			Convey("Then it should be listed and found by id", func() {
				So(err, ShouldBeNil)
				So(svc.Participants(), ShouldHaveLength, 1)
				p, ok := svc.FindParticipant("P1")
				So(ok, ShouldBeTrue)
				So(p.Email, ShouldEqual, "ann@uni.edu")
				So(svc.GetStats()["participants"], ShouldEqual, 1)
			})

			Convey("And adding the same email in another case should fail", func() {
				err := svc.AddParticipant(ctx, participant("P2", "ANN@uni.edu", 60, 5))
				So(errors.Is(err, roster.ErrDuplicateEmail), ShouldBeTrue)
				So(svc.Participants(), ShouldHaveLength, 1)
			})

			Convey("And clearing should empty the roster", func() {
				svc.ClearParticipants()
				So(svc.Participants(), ShouldBeEmpty)
				_, ok := svc.FindParticipant("P1")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When adding an invalid participant", func() {
			err := svc.AddParticipant(ctx, participant("P1", "ann@uni.edu", 95, 11))

			Convey("Then it should be rejected with the field error", func() {
				So(errors.Is(err, validation.ErrInvalidSkill), ShouldBeTrue)
				So(svc.Participants(), ShouldBeEmpty)
			})
		})

		Convey("When adding nil", func() {
			err := svc.AddParticipant(ctx, nil)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, roster.ErrNilParticipant), ShouldBeTrue)
			})
		})
	})
}

func TestService_LoadFromCSV(t *testing.T) {
	Convey("Given a started service and a participant file", t, func() {
		dir := t.TempDir()
		path := writeFile(t, dir, "people.csv", sampleCSV)
		svc := startService(t, service.WithDataDir(dir))
		defer func() { _ = svc.Stop(context.Background()) }()
		ctx := context.Background()

		Convey("When loading it twice", func() {
			first, err1 := svc.LoadFromCSV(ctx, path)
			second, err2 := svc.LoadFromCSV(ctx, path)

			Convey("Then the second load should add nothing", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldEqual, 6)
				So(second, ShouldEqual, 0)
				So(svc.Participants(), ShouldHaveLength, 6)
			})
		})

		Convey("When loading a missing file", func() {
			_, err := svc.LoadFromCSV(ctx, filepath.Join(dir, "nope.csv"))

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestService_LoadAutomatically(t *testing.T) {
	Convey("Given an empty data dir", t, func() {
		dir := t.TempDir()
		svc := startService(t, service.WithDataDir(dir))
		defer func() { _ = svc.Stop(context.Background()) }()
		ctx := context.Background()

		Convey("Then automatic loading should find nothing", func() {
			_, _, err := svc.LoadAutomatically(ctx)
			So(errors.Is(err, service.ErrNoDataFile), ShouldBeTrue)
		})

		Convey("When only the sample file exists", func() {
			writeFile(t, dir, service.SampleFile, sampleCSV)
			path, n, err := svc.LoadAutomatically(ctx)

			Convey("Then it should load the sample", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 6)
				So(filepath.Base(path), ShouldEqual, service.SampleFile)
			})
		})

		Convey("When the participant file exists too", func() {
			writeFile(t, dir, service.SampleFile, sampleCSV)
			lines := strings.Split(sampleCSV, "\n")
			writeFile(t, dir, "allParticipants.csv", strings.Join(lines[:3], "\n")+"\n")
			path, n, err := svc.LoadAutomatically(ctx)

			Convey("Then it should prefer the participant file", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
				So(filepath.Base(path), ShouldEqual, "allParticipants.csv")
			})
		})
	})
}

func TestService_SaveAllParticipants(t *testing.T) {
	Convey("Given a participant file and a roster sharing one email", t, func() {
		dir := t.TempDir()
		lines := strings.Split(sampleCSV, "\n")
		writeFile(t, dir, "allParticipants.csv", strings.Join(lines[:2], "\n")+"\n")

		svc := startService(t, service.WithDataDir(dir))
		defer func() { _ = svc.Stop(context.Background()) }()
		ctx := context.Background()

		So(svc.AddParticipant(ctx, participant("X1", "ALICE@uni.edu", 60, 4)), ShouldBeNil)
		So(svc.AddParticipant(ctx, participant("X2", "new@uni.edu", 60, 4)), ShouldBeNil)

		Convey("When saving", func() {
			path, err := svc.SaveAllParticipants(ctx)

			Convey("Then the file should keep its rows and gain only new emails", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				rows := strings.Split(strings.TrimSpace(string(data)), "\n")
				So(rows, ShouldHaveLength, 3)
				So(rows[1], ShouldStartWith, "P001,")
				So(rows[2], ShouldStartWith, "X2,")
			})
		})
	})

	Convey("Given a data dir that does not exist yet", t, func() {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		svc := startService(t, service.WithDataDir(dir))
		defer func() { _ = svc.Stop(context.Background()) }()
		ctx := context.Background()
		So(svc.AddParticipant(ctx, participant("X1", "one@uni.edu", 60, 4)), ShouldBeNil)

		Convey("When saving", func() {
			path, err := svc.SaveAllParticipants(ctx)

			Convey("Then the directory should be created", func() {
				So(err, ShouldBeNil)
				So(path, ShouldEqual, filepath.Join(dir, "allParticipants.csv"))
			})
		})
	})
}
