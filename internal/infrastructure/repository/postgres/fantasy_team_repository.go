package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/fantasyteam"
	qb "github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/querybuilder"
)

type FantasyTeamRepository struct {
	db *sqlx.DB
}

func NewFantasyTeamRepository(db *sqlx.DB) *FantasyTeamRepository {
	return &FantasyTeamRepository{db: db}
}

func (r *FantasyTeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]fantasyteam.Team, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fantasy teams query: %w", err)
	}

	var rows []fantasyTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "list fantasy teams")
	}

	out := make([]fantasyteam.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, toFantasyTeam(row))
	}
	return out, nil
}

func (r *FantasyTeamRepository) GetByID(ctx context.Context, teamID string) (fantasyteam.Team, bool, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fantasyteam.Team{}, false, fmt.Errorf("build get fantasy team query: %w", err)
	}

	var row fantasyTeamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasyteam.Team{}, false, nil
		}
		return fantasyteam.Team{}, false, dbError(err, "get fantasy team")
	}
	return toFantasyTeam(row), true, nil
}

func (r *FantasyTeamRepository) ListWeeklyPointsByLeague(ctx context.Context, leagueID string) ([]fantasyteam.WeeklyPoints, error) {
	return r.listWeekly(ctx, qb.Eq("league_public_id", leagueID))
}

func (r *FantasyTeamRepository) ListWeeklyPointsByTeam(ctx context.Context, teamID string) ([]fantasyteam.WeeklyPoints, error) {
	return r.listWeekly(ctx, qb.Eq("fantasy_team_public_id", teamID))
}

func (r *FantasyTeamRepository) ReplaceWeeklyPoints(ctx context.Context, leagueID string, week int, rows []fantasyteam.WeeklyPoints) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return dbError(err, "begin tx replace fantasy team weekly points")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("fantasy_team_weekly_points").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("week_number", week),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear fantasy team weekly points query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return dbError(err, "clear fantasy team weekly points")
	}

	if len(rows) > 0 {
		models := make([]fantasyTeamWeeklyPointsInsertModel, 0, len(rows))
		for _, row := range rows {
			models = append(models, fantasyTeamWeeklyPointsInsertModel{
				TeamID:             row.TeamID,
				LeagueID:           leagueID,
				Week:               week,
				Points:             row.Points,
				IsHighPointsWinner: row.IsHighPointsWinner,
			})
		}
		query, args, err := qb.InsertModels("fantasy_team_weekly_points", models, `ON CONFLICT (fantasy_team_public_id, week_number)
DO UPDATE SET
    league_public_id = EXCLUDED.league_public_id,
    points = EXCLUDED.points,
    is_high_points_winner = EXCLUDED.is_high_points_winner,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build insert fantasy team weekly points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return dbError(err, fmt.Sprintf("insert fantasy team weekly points league=%s week=%d", leagueID, week))
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "commit replace fantasy team weekly points tx")
	}
	return nil
}

// UpdateTotalPoints writes every total in one transaction. Teams are updated in
// id order so concurrent writers lock rows consistently.
func (r *FantasyTeamRepository) UpdateTotalPoints(ctx context.Context, leagueID string, totals map[string]int) error {
	if len(totals) == 0 {
		return nil
	}

	teamIDs := make([]string, 0, len(totals))
	for teamID := range totals {
		teamIDs = append(teamIDs, teamID)
	}
	sort.Strings(teamIDs)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return dbError(err, "begin tx update fantasy team totals")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, teamID := range teamIDs {
		query, args, err := qb.Update("fantasy_teams").
			Set("total_points", totals[teamID]).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("public_id", teamID),
				qb.Eq("league_public_id", leagueID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update fantasy team total query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return dbError(err, fmt.Sprintf("update fantasy team total team=%s", teamID))
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "commit update fantasy team totals tx")
	}
	return nil
}

func (r *FantasyTeamRepository) listWeekly(ctx context.Context, condition qb.Condition) ([]fantasyteam.WeeklyPoints, error) {
	query, args, err := qb.Select("*").From("fantasy_team_weekly_points").
		Where(condition).
		OrderBy("week_number", "fantasy_team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fantasy team weekly points query: %w", err)
	}

	var rows []fantasyTeamWeeklyPointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "list fantasy team weekly points")
	}

	out := make([]fantasyteam.WeeklyPoints, 0, len(rows))
	for _, row := range rows {
		out = append(out, fantasyteam.WeeklyPoints{
			TeamID:             row.TeamID,
			LeagueID:           row.LeagueID,
			Week:               row.Week,
			Points:             row.Points,
			IsHighPointsWinner: row.IsHighPointsWinner,
		})
	}
	return out, nil
}

func toFantasyTeam(row fantasyTeamTableModel) fantasyteam.Team {
	return fantasyteam.Team{
		ID:          row.PublicID,
		LeagueID:    row.LeagueID,
		Name:        row.Name,
		TotalPoints: row.TotalPoints,
	}
}
