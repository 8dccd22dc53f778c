package formation

import (
	"fmt"

	"github.com/okian/teamup/internal/domain/model"
)

// Leader bound per team.
const (
	MinLeadersPerTeam = 1
	MaxLeadersPerTeam = 2
)

// CheckTeam returns nil iff the team holds between one and two leaders.
func CheckTeam(team *model.Team) error {
	n := team.LeaderCount()
	if n < MinLeadersPerTeam || n > MaxLeadersPerTeam {
		return fmt.Errorf("%w: %s has %d leaders", ErrLeaderConstraint, team.Name(), n)
	}
	return nil
}

// CheckFeasible verifies the leader bound can hold for every team before any
// partitioning starts.
func CheckFeasible(leaders, teams int) error {
	if leaders < teams*MinLeadersPerTeam {
		return fmt.Errorf("%w: %d leaders for %d teams", ErrInsufficientInput, leaders, teams)
	}
	if leaders > teams*MaxLeadersPerTeam {
		return fmt.Errorf("%w: %d leaders exceed %d per team across %d teams",
			ErrInsufficientInput, leaders, MaxLeadersPerTeam, teams)
	}
	return nil
}

// countLeaders counts participants whose derived type is Leader.
func countLeaders(participants []*model.Participant) int {
	n := 0
	for _, p := range participants {
		if p.IsLeader() {
			n++
		}
	}
	return n
}

// splitLeaders partitions participants into leaders and the rest, keeping input order.
func splitLeaders(participants []*model.Participant) (leaders, others []*model.Participant) {
	for _, p := range participants {
		if p.IsLeader() {
			leaders = append(leaders, p)
		} else {
			others = append(others, p)
		}
	}
	return leaders, others
}
