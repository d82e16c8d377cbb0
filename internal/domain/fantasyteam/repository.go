package fantasyteam

import "context"

type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListWeeklyPointsByLeague(ctx context.Context, leagueID string) ([]WeeklyPoints, error)
	ListWeeklyPointsByTeam(ctx context.Context, teamID string) ([]WeeklyPoints, error)
	// ReplaceWeeklyPoints makes rows the exact ledger for (leagueID, week).
	ReplaceWeeklyPoints(ctx context.Context, leagueID string, week int, rows []WeeklyPoints) error
	// UpdateTotalPoints overwrites total_points for each team in totals.
	UpdateTotalPoints(ctx context.Context, leagueID string, totals map[string]int) error
}
