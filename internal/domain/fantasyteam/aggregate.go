package fantasyteam

import (
	"sort"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/roster"
)

// WeekInput is the source data for one league-week.
type WeekInput struct {
	LeagueID     string
	Week         int
	Teams        []Team
	Periods      []roster.Period
	SchoolPoints map[string]int
	BonusPoints  map[string]int
}

// AggregateWeek computes every team's points for a week from the schools it
// owned that week. Zero-point weeks produce no row. The team(s) with the
// highest positive score are flagged as high-points winners.
func AggregateWeek(in WeekInput) []WeeklyPoints {
	out := make([]WeeklyPoints, 0, len(in.Teams))
	best := 0
	for _, t := range in.Teams {
		points := 0
		for _, schoolID := range roster.OwnedSchools(in.Periods, t.ID, in.Week) {
			points += in.SchoolPoints[schoolID] + in.BonusPoints[schoolID]
		}
		if points == 0 {
			continue
		}
		if points > best {
			best = points
		}
		out = append(out, WeeklyPoints{
			TeamID:   t.ID,
			LeagueID: in.LeagueID,
			Week:     in.Week,
			Points:   points,
		})
	}

	for i := range out {
		out[i].IsHighPointsWinner = best > 0 && out[i].Points == best
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out
}

// Totals sums weekly rows per team. Every team in teams appears in the result,
// with zero when it has no rows.
func Totals(teams []Team, rows []WeeklyPoints) map[string]int {
	out := make(map[string]int, len(teams))
	for _, t := range teams {
		out[t.ID] = 0
	}
	for _, row := range rows {
		if _, ok := out[row.TeamID]; !ok {
			continue
		}
		out[row.TeamID] += row.Points
	}
	return out
}

// RankStandings orders teams by total points, then name. Tied teams share a
// rank and the next rank skips accordingly.
func RankStandings(teams []Team) []Standing {
	sorted := append([]Team(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})

	out := make([]Standing, 0, len(sorted))
	for i, t := range sorted {
		rank := i + 1
		if i > 0 && t.TotalPoints == sorted[i-1].TotalPoints {
			rank = out[i-1].Rank
		}
		out = append(out, Standing{Rank: rank, Team: t})
	}
	return out
}
