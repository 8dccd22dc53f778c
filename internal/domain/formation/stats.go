package formation

import (
	"maps"

	"github.com/okian/teamup/internal/domain/model"
)

// Statistics summarizes a set of teams.
//
// AvgSkillLevel is the mean of the per-team averages, not the mean over all
// members; the two differ when team sizes differ.
type Statistics struct {
	TotalTeams              int
	TotalMembers            int
	AvgTeamSize             float64
	AvgSkillLevel           float64
	AvgDiversity            float64
	PersonalityDistribution map[string]int
	RoleDistribution        map[string]int
	GameDistribution        map[string]int
}

// Calculate is a pure function over teams. Nil teams are ignored.
func Calculate(teams []*model.Team) Statistics {
	s := Statistics{
		PersonalityDistribution: make(map[string]int),
		RoleDistribution:        make(map[string]int),
		GameDistribution:        make(map[string]int),
	}

	var skillSum, diversitySum float64
	for _, t := range teams {
		if t == nil {
			continue
		}
		s.TotalTeams++
		s.TotalMembers += t.Size()
		skillSum += t.AverageSkillLevel()
		diversitySum += float64(t.DiversityScore())

		for _, m := range t.Members() {
			s.PersonalityDistribution[m.PersonalityType().String()]++
			s.RoleDistribution[string(m.PreferredRole)]++
			s.GameDistribution[m.PreferredGame]++
		}
	}

	if s.TotalTeams > 0 {
		n := float64(s.TotalTeams)
		s.AvgTeamSize = float64(s.TotalMembers) / n
		s.AvgSkillLevel = skillSum / n
		s.AvgDiversity = diversitySum / n
	}
	return s
}

// Map renders the statistics with fixed keys for reporting.
func (s Statistics) Map() map[string]any {
	return map[string]any{
		"totalTeams":              s.TotalTeams,
		"totalMembers":            s.TotalMembers,
		"avgTeamSize":             s.AvgTeamSize,
		"avgSkillLevel":           s.AvgSkillLevel,
		"avgDiversity":            s.AvgDiversity,
		"personalityDistribution": maps.Clone(s.PersonalityDistribution),
		"roleDistribution":        maps.Clone(s.RoleDistribution),
		"gameDistribution":        maps.Clone(s.GameDistribution),
	}
}
