package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/roster"
	qb "github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListByLeague(ctx context.Context, leagueID string) ([]roster.Period, error) {
	query, args, err := qb.Select("*").From("roster_periods").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("school_public_id", "start_week", "fantasy_team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster periods query: %w", err)
	}

	var rows []rosterPeriodTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "list roster periods")
	}

	out := make([]roster.Period, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Period{
			LeagueID:  row.LeagueID,
			TeamID:    row.TeamID,
			SchoolID:  row.SchoolID,
			StartWeek: row.StartWeek,
			EndWeek:   nullIntToIntPtr(row.EndWeek),
		})
	}
	return out, nil
}
