package formation_test

import (
	"fmt"

	"github.com/okian/teamup/internal/domain/model"
)

func person(id, name string, score int, game string, role model.Role, skill int) *model.Participant {
	return &model.Participant{
		ID:               id,
		Name:             name,
		Age:              20,
		Email:            id + "@test.com",
		PersonalityScore: score,
		PreferredGame:    game,
		PreferredRole:    role,
		SkillLevel:       skill,
	}
}

// sixPlayers has two leaders (Alice, Diana).
func sixPlayers() []*model.Participant {
	return []*model.Participant{
		person("P001", "Alice", 95, "Valorant", model.Strategist, 8),
		person("P002", "Bob", 75, "FIFA", model.Defender, 7),
		person("P003", "Charlie", 55, "DOTA 2", model.Supporter, 6),
		person("P004", "Diana", 90, "Basketball", model.Attacker, 9),
		person("P005", "Eve", 72, "Badminton", model.Strategist, 8),
		person("P006", "Frank", 68, "Cricket", model.Coordinator, 5),
	}
}

// sixPlayersOneLeader drops Diana's score below the leader band.
func sixPlayersOneLeader() []*model.Participant {
	ps := sixPlayers()
	ps[3].PersonalityScore = 85
	return ps
}

var (
	largeGames = []string{"FIFA", "DOTA 2", "Valorant", "CS:GO", "Basketball"}
	largeRoles = []model.Role{model.Strategist, model.Attacker, model.Defender, model.Supporter, model.Coordinator}
)

// largeRoster builds n participants; every third one is a leader.
func largeRoster(n int) []*model.Participant {
	scores := []int{95, 75, 55}
	ps := make([]*model.Participant, n)
	for i := range ps {
		ps[i] = person(
			fmt.Sprintf("P%03d", i),
			fmt.Sprintf("Player%d", i),
			scores[i%3],
			largeGames[i%5],
			largeRoles[i%5],
			1+i%10,
		)
	}
	return ps
}

func teamIDs(teams []*model.Team) [][]string {
	out := make([][]string, len(teams))
	for i, t := range teams {
		for _, m := range t.Members() {
			out[i] = append(out[i], m.ID)
		}
	}
	return out
}

func sizes(teams []*model.Team) []int {
	out := make([]int, len(teams))
	for i, t := range teams {
		out[i] = t.Size()
	}
	return out
}
