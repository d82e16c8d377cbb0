package bracket

import (
	"sort"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
)

// WeekChange is a pending rewrite of a stored game week.
type WeekChange struct {
	GameID string
	From   int
	To     int
}

// Plan computes the week rewrites that bring stored postseason games in line
// with the mapper. Games with blocking violations are left untouched. Planning
// against already-normalized games yields no changes.
func Plan(m Mapper, games []game.Game) ([]WeekChange, []Violation) {
	var (
		changes    []WeekChange
		violations []Violation
	)
	for _, g := range games {
		if !g.IsPostseason() {
			continue
		}

		found := Validate(g)
		violations = append(violations, found...)
		if hasBlocking(found) {
			continue
		}

		week, ok := m.CanonicalWeek(g)
		if !ok || week == g.Week {
			continue
		}
		changes = append(changes, WeekChange{GameID: g.ID, From: g.Week, To: week})
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].GameID < changes[j].GameID })
	return changes, violations
}

// Apply returns a copy of games with the planned changes applied.
func Apply(games []game.Game, changes []WeekChange) []game.Game {
	byID := make(map[string]int, len(changes))
	for _, c := range changes {
		byID[c.GameID] = c.To
	}
	out := make([]game.Game, len(games))
	for i, g := range games {
		if week, ok := byID[g.ID]; ok {
			g.Week = week
		}
		out[i] = g
	}
	return out
}

func hasBlocking(items []Violation) bool {
	for _, v := range items {
		if v.Blocking() {
			return true
		}
	}
	return false
}
