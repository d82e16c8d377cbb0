package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/fantasyteam"
)

type weeklyKey struct {
	teamID string
	week   int
}

type FantasyTeamRepository struct {
	mu     sync.RWMutex
	teams  map[string]fantasyteam.Team
	weekly map[weeklyKey]fantasyteam.WeeklyPoints
}

func NewFantasyTeamRepository(teams []fantasyteam.Team) *FantasyTeamRepository {
	items := make(map[string]fantasyteam.Team, len(teams))
	for _, t := range teams {
		items[t.ID] = t
	}
	return &FantasyTeamRepository{
		teams:  items,
		weekly: make(map[weeklyKey]fantasyteam.WeeklyPoints),
	}
}

func (r *FantasyTeamRepository) ListByLeague(_ context.Context, leagueID string) ([]fantasyteam.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasyteam.Team, 0)
	for _, t := range r.teams {
		if t.LeagueID == leagueID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FantasyTeamRepository) GetByID(_ context.Context, teamID string) (fantasyteam.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[teamID]
	return t, ok, nil
}

func (r *FantasyTeamRepository) ListWeeklyPointsByLeague(_ context.Context, leagueID string) ([]fantasyteam.WeeklyPoints, error) {
	return r.filterWeekly(func(p fantasyteam.WeeklyPoints) bool { return p.LeagueID == leagueID }), nil
}

func (r *FantasyTeamRepository) ListWeeklyPointsByTeam(_ context.Context, teamID string) ([]fantasyteam.WeeklyPoints, error) {
	return r.filterWeekly(func(p fantasyteam.WeeklyPoints) bool { return p.TeamID == teamID }), nil
}

func (r *FantasyTeamRepository) ReplaceWeeklyPoints(_ context.Context, leagueID string, week int, rows []fantasyteam.WeeklyPoints) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, row := range r.weekly {
		if row.LeagueID == leagueID && key.week == week {
			delete(r.weekly, key)
		}
	}
	for _, row := range rows {
		r.weekly[weeklyKey{teamID: row.TeamID, week: row.Week}] = row
	}
	return nil
}

func (r *FantasyTeamRepository) UpdateTotalPoints(_ context.Context, leagueID string, totals map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for teamID, total := range totals {
		t, ok := r.teams[teamID]
		if !ok || t.LeagueID != leagueID {
			continue
		}
		t.TotalPoints = total
		r.teams[teamID] = t
	}
	return nil
}

func (r *FantasyTeamRepository) filterWeekly(keep func(fantasyteam.WeeklyPoints) bool) []fantasyteam.WeeklyPoints {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasyteam.WeeklyPoints, 0)
	for _, row := range r.weekly {
		if keep(row) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}
