package formation_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/okian/teamup/internal/domain/formation"
	"github.com/okian/teamup/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCalculateStatistics(t *testing.T) {
	Convey("Given no teams", t, func() {
		s := formation.Calculate(nil)

		Convey("Then everything should be zero with empty maps", func() {
			So(s.TotalTeams, ShouldEqual, 0)
			So(s.TotalMembers, ShouldEqual, 0)
			So(s.AvgTeamSize, ShouldEqual, 0.0)
			So(s.AvgSkillLevel, ShouldEqual, 0.0)
			So(s.AvgDiversity, ShouldEqual, 0.0)
			So(s.PersonalityDistribution, ShouldNotBeNil)
			So(s.PersonalityDistribution, ShouldBeEmpty)
			So(s.RoleDistribution, ShouldBeEmpty)
			So(s.GameDistribution, ShouldBeEmpty)
		})
	})

	Convey("Given balanced teams from the six player fixture", t, func() {
		e := formation.New()
		teams, err := e.FormBalancedTeams(context.Background(), sixPlayers(), 3)
		So(err, ShouldBeNil)

		s := e.CalculateStatistics(teams)

		Convey("Then totals and averages should match", func() {
			So(s.TotalTeams, ShouldEqual, 2)
			So(s.TotalMembers, ShouldEqual, 6)
			So(s.AvgTeamSize, ShouldEqual, 3.0)
			So(s.AvgSkillLevel, ShouldAlmostEqual, (23.0/3+20.0/3)/2, 1e-9)
			So(s.AvgDiversity, ShouldEqual, 3.0)
		})

		Convey("Then distributions should count every member", func() {
			So(s.PersonalityDistribution, ShouldResemble, map[string]int{"Leader": 2, "Balanced": 2, "Thinker": 2})
			So(s.RoleDistribution, ShouldResemble, map[string]int{
				"Strategist": 2, "Defender": 1, "Supporter": 1, "Attacker": 1, "Coordinator": 1,
			})
			So(s.GameDistribution, ShouldHaveLength, 6)
		})

		Convey("Then a second call should give the same result", func() {
			So(cmp.Diff(s, formation.Calculate(teams)), ShouldBeEmpty)
		})
	})

	Convey("Given teams of different sizes", t, func() {
		small := model.NewTeam("1", 1)
		small.AddMember(person("A", "Ada", 95, "FIFA", model.Strategist, 10))
		big := model.NewTeam("2", 3)
		for _, id := range []string{"B", "C", "D"} {
			big.AddMember(person(id, "Player "+id, 60, "Chess", model.Defender, 1))
		}

		s := formation.Calculate([]*model.Team{small, big, nil})

		Convey("Then the skill average should be the mean of team averages", func() {
			So(s.TotalTeams, ShouldEqual, 2)
			So(s.AvgSkillLevel, ShouldEqual, 5.5)
			So(s.AvgTeamSize, ShouldEqual, 2.0)
		})
	})
}

func TestStatisticsMap(t *testing.T) {
	Convey("Given statistics", t, func() {
		s := formation.Calculate(nil)
		m := s.Map()

		Convey("Then the map should carry the fixed keys", func() {
			for _, key := range []string{
				"totalTeams", "totalMembers", "avgTeamSize", "avgSkillLevel", "avgDiversity",
				"personalityDistribution", "roleDistribution", "gameDistribution",
			} {
				So(m, ShouldContainKey, key)
			}
			So(m, ShouldHaveLength, 8)
			So(m["totalTeams"], ShouldEqual, 0)
		})

		Convey("Then mutating the map should not touch the record", func() {
			m["roleDistribution"].(map[string]int)["Attacker"] = 9
			So(s.RoleDistribution, ShouldBeEmpty)
		})
	})
}
