package schoolpoints

import "context"

type Repository interface {
	GetRules(ctx context.Context, seasonID string) (Rules, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]WeeklyPoints, error)
	ListBySeasonWeek(ctx context.Context, seasonID string, week int) ([]WeeklyPoints, error)
	ListBySchool(ctx context.Context, seasonID, schoolID string) ([]WeeklyPoints, error)
	// ReplaceWeek makes rows the exact ledger for (seasonID, week), except that
	// existing rows of schools listed in retain are left as they are.
	ReplaceWeek(ctx context.Context, seasonID string, week int, rows []WeeklyPoints, retain []string) error
}
