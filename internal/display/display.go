// Package display renders participants, teams and statistics as tables.
package display

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/okian/teamup/internal/domain/formation"
	"github.com/okian/teamup/internal/domain/model"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// ParseMode accepts "ascii" and "markdown" (or "md").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ascii":
		return ASCII, nil
	case "markdown", "md":
		return Markdown, nil
	default:
		return ASCII, fmt.Errorf("unknown output format %q", s)
	}
}

func newWriter(m Mode) table.Writer {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return w
}

func render(m Mode, w table.Writer) string {
	if m == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

// Participants lists the roster in order.
func Participants(m Mode, ps []*model.Participant) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"ID", "Name", "Email", "Game", "Role", "Skill", "Score", "Type"})
	for _, p := range ps {
		w.AppendRow(table.Row{
			p.ID, p.Name, p.Email, p.PreferredGame, p.PreferredRole,
			p.SkillLevel, p.PersonalityScore, p.PersonalityType(),
		})
	}
	w.AppendFooter(table.Row{"", "", "", "", "", "", "Total", len(ps)})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	return render(m, w)
}

// Teams renders one summary row per team followed by the member listing.
func Teams(m Mode, teams []*model.Team) string {
	summary := newWriter(m)
	summary.AppendHeader(table.Row{"Team", "Members", "Leaders", "Avg Skill", "Diversity"})
	for _, t := range teams {
		summary.AppendRow(table.Row{
			t.Name(), t.Size(), t.LeaderCount(), fmt.Sprintf("%.2f", t.AverageSkillLevel()), t.DiversityScore(),
		})
	}
	summary.SetColumnConfigs([]table.ColumnConfig{{Number: 4, Align: text.AlignRight}})

	members := newWriter(m)
	members.AppendHeader(table.Row{"Team", "ID", "Name", "Game", "Role", "Skill", "Type"})
	for _, t := range teams {
		for _, p := range t.Members() {
			members.AppendRow(table.Row{
				t.Name(), p.ID, p.Name, p.PreferredGame, p.PreferredRole, p.SkillLevel, p.PersonalityType(),
			})
		}
	}
	members.SetColumnConfigs([]table.ColumnConfig{{Number: 1, AutoMerge: m == ASCII}})

	return render(m, summary) + "\n\n" + render(m, members)
}

// Statistics renders the aggregate values and the three distributions.
func Statistics(m Mode, s formation.Statistics) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"Metric", "Value"})
	w.AppendRows([]table.Row{
		{"Total teams", s.TotalTeams},
		{"Total members", s.TotalMembers},
		{"Average team size", fmt.Sprintf("%.2f", s.AvgTeamSize)},
		{"Average skill level", fmt.Sprintf("%.2f", s.AvgSkillLevel)},
		{"Average diversity", fmt.Sprintf("%.2f", s.AvgDiversity)},
	})

	out := []string{render(m, w)}
	for _, d := range []struct {
		title  string
		counts map[string]int
	}{
		{"Personality", s.PersonalityDistribution},
		{"Role", s.RoleDistribution},
		{"Game", s.GameDistribution},
	} {
		out = append(out, distribution(m, d.title, d.counts))
	}
	return strings.Join(out, "\n\n")
}

func distribution(m Mode, title string, counts map[string]int) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{title, "Count"})
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		w.AppendRow(table.Row{k, counts[k]})
	}
	return render(m, w)
}

// Comparison renders one row per algorithm.
func Comparison(m Mode, results map[formation.Algorithm]formation.Statistics) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"Algorithm", "Teams", "Avg Size", "Avg Skill", "Avg Diversity"})
	for _, algo := range formation.Algorithms {
		s, ok := results[algo]
		if !ok {
			continue
		}
		w.AppendRow(table.Row{
			algo, s.TotalTeams,
			fmt.Sprintf("%.2f", s.AvgTeamSize),
			fmt.Sprintf("%.2f", s.AvgSkillLevel),
			fmt.Sprintf("%.2f", s.AvgDiversity),
		})
	}
	return render(m, w)
}
