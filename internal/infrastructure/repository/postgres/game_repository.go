package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
	qb "github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) ListBySeason(ctx context.Context, seasonID string) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week_number", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games by season query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *GameRepository) ListBySeasonWeek(ctx context.Context, seasonID string, week int) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("week_number", week),
			qb.IsNull("deleted_at"),
		).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games by week query: %w", err)
	}
	return r.list(ctx, query, args)
}

// UpdateWeek moves a game to another week. Missing games are an error so
// normalization never silently loses a change.
func (r *GameRepository) UpdateWeek(ctx context.Context, gameID string, week int) error {
	query, args, err := qb.Update("games").
		Set("week_number", week).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game week query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return dbError(err, fmt.Sprintf("update game week game=%s", gameID))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return dbError(err, "read update game week result")
	}
	if affected == 0 {
		return fmt.Errorf("update game week: game %s not found", gameID)
	}
	return nil
}

// Upsert inserts or refreshes a game keyed by public id.
func (r *GameRepository) Upsert(ctx context.Context, item game.Game) error {
	model := gameInsertModel{
		PublicID:                 item.ID,
		SeasonID:                 item.SeasonID,
		Week:                     item.Week,
		HomeSchoolID:             item.HomeSchoolID,
		AwaySchoolID:             item.AwaySchoolID,
		HomeScore:                intPtrToNullInt(item.HomeScore),
		AwayScore:                intPtrToNullInt(item.AwayScore),
		Status:                   string(item.Status),
		IsBowlGame:               item.IsBowlGame,
		IsPlayoffGame:            item.IsPlayoffGame,
		PlayoffRound:             string(item.PlayoffRound),
		IsConferenceChampionship: item.IsConferenceChampionship,
		BowlName:                 item.BowlName,
	}
	query, args, err := qb.InsertModel("games", model, `ON CONFLICT (public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    season_public_id = EXCLUDED.season_public_id,
    week_number = EXCLUDED.week_number,
    home_school_public_id = EXCLUDED.home_school_public_id,
    away_school_public_id = EXCLUDED.away_school_public_id,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    status = EXCLUDED.status,
    is_bowl_game = EXCLUDED.is_bowl_game,
    is_playoff_game = EXCLUDED.is_playoff_game,
    playoff_round = EXCLUDED.playoff_round,
    is_conference_championship = EXCLUDED.is_conference_championship,
    bowl_name = EXCLUDED.bowl_name,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return dbError(err, fmt.Sprintf("upsert game game=%s", item.ID))
	}
	return nil
}

func (r *GameRepository) list(ctx context.Context, query string, args []any) ([]game.Game, error) {
	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "list games")
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, game.Game{
			ID:                       row.PublicID,
			SeasonID:                 row.SeasonID,
			Week:                     row.Week,
			HomeSchoolID:             row.HomeSchoolID,
			AwaySchoolID:             row.AwaySchoolID,
			HomeScore:                nullIntToIntPtr(row.HomeScore),
			AwayScore:                nullIntToIntPtr(row.AwayScore),
			Status:                   game.NormalizeStatus(row.Status),
			IsBowlGame:               row.IsBowlGame,
			IsPlayoffGame:            row.IsPlayoffGame,
			PlayoffRound:             game.PlayoffRound(row.PlayoffRound),
			IsConferenceChampionship: row.IsConferenceChampionship,
			BowlName:                 row.BowlName,
		})
	}
	return out, nil
}
