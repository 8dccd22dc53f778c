package roster_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/teamup/internal/domain/model"
	"github.com/okian/teamup/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func participant(id, email string) *model.Participant {
	return &model.Participant{
		ID:               id,
		Name:             "Player " + id,
		Email:            email,
		PersonalityScore: 70,
		PreferredGame:    "FIFA",
		PreferredRole:    model.Defender,
		SkillLevel:       5,
	}
}

func TestInMemoryRoster(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new roster", t, func() {
		r := roster.NewInMemoryRoster()

		Convey("Then it should be empty", func() {
			So(r.Size(), ShouldEqual, 0)
			So(r.All(), ShouldBeEmpty)
		})

		Convey("When adding participants", func() {
			So(r.Add(ctx, participant("P1", "alice@test.com")), ShouldBeNil)
			So(r.Add(ctx, participant("P2", "bob@test.com")), ShouldBeNil)

			Convey("Then order and lookup should work", func() {
				all := r.All()
				So(all, ShouldHaveLength, 2)
				So(all[0].ID, ShouldEqual, "P1")
				So(all[1].ID, ShouldEqual, "P2")

				p, ok := r.FindByID("P2")
				So(ok, ShouldBeTrue)
				So(p.Email, ShouldEqual, "bob@test.com")

				_, ok = r.FindByID("missing")
				So(ok, ShouldBeFalse)
			})

			Convey("And the email repeats with different case", func() {
				err := r.Add(ctx, participant("P3", "  ALICE@test.com"))

				Convey("Then it should be rejected as a duplicate", func() {
					So(errors.Is(err, roster.ErrDuplicateEmail), ShouldBeTrue)
					So(r.Size(), ShouldEqual, 2)
					So(r.SeenEmail("Alice@Test.com"), ShouldBeTrue)
				})
			})

			Convey("And the id repeats", func() {
				err := r.Add(ctx, participant("P1", "carol@test.com"))

				Convey("Then it should be rejected", func() {
					So(errors.Is(err, roster.ErrDuplicateID), ShouldBeTrue)
				})
			})

			Convey("And the roster is cleared", func() {
				r.Clear()

				Convey("Then it should accept the same emails again", func() {
					So(r.Size(), ShouldEqual, 0)
					So(r.Add(ctx, participant("P1", "alice@test.com")), ShouldBeNil)
				})
			})

			Convey("And the returned slice is modified", func() {
				all := r.All()
				all[0] = nil

				Convey("Then the roster should be unaffected", func() {
					So(r.All()[0], ShouldNotBeNil)
				})
			})
		})

		Convey("When adding nil", func() {
			Convey("Then it should fail", func() {
				So(r.Add(ctx, nil), ShouldEqual, roster.ErrNilParticipant)
			})
		})
	})

	Convey("Given a bounded roster", t, func() {
		r := roster.NewInMemoryRoster(roster.WithMaxSize(1))
		So(r.Add(ctx, participant("P1", "a@test.com")), ShouldBeNil)

		Convey("When it is at capacity", func() {
			err := r.Add(ctx, participant("P2", "b@test.com"))

			Convey("Then it should refuse more", func() {
				So(errors.Is(err, roster.ErrRosterFull), ShouldBeTrue)
			})
		})
	})

	Convey("Given concurrent writers", t, func() {
		r := roster.NewInMemoryRoster()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_ = r.Add(ctx, participant(fmt.Sprintf("P%d", i), fmt.Sprintf("p%d@test.com", i%25)))
			}(i)
		}
		wg.Wait()

		Convey("Then each email should be held once", func() {
			So(r.Size(), ShouldEqual, 25)
		})
	})
}

func TestMergeByEmail(t *testing.T) {
	Convey("Given overlapping participant lists", t, func() {
		existing := []*model.Participant{participant("P1", "a@test.com"), participant("P2", "b@test.com")}
		added := []*model.Participant{participant("P9", "B@test.com"), nil, participant("P3", "c@test.com")}

		merged := roster.MergeByEmail(existing, added)

		Convey("Then the first occurrence of each email should win", func() {
			ids := make([]string, len(merged))
			for i, p := range merged {
				ids[i] = p.ID
			}
			So(ids, ShouldResemble, []string{"P1", "P2", "P3"})
		})
	})
}
