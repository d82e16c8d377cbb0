package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/schoolpoints"
	qb "github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/querybuilder"
)

type SchoolPointsRepository struct {
	db *sqlx.DB
}

func NewSchoolPointsRepository(db *sqlx.DB) *SchoolPointsRepository {
	return &SchoolPointsRepository{db: db}
}

func (r *SchoolPointsRepository) GetRules(ctx context.Context, seasonID string) (schoolpoints.Rules, bool, error) {
	query, args, err := qb.Select("*").From("season_scoring_rules").
		Where(qb.Eq("season_public_id", seasonID)).
		ToSQL()
	if err != nil {
		return schoolpoints.Rules{}, false, fmt.Errorf("build get scoring rules query: %w", err)
	}

	var row seasonScoringRulesTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return schoolpoints.Rules{}, false, nil
		}
		return schoolpoints.Rules{}, false, dbError(err, "get scoring rules")
	}

	return schoolpoints.Rules{
		WinPoints:       row.WinPoints,
		LossPoints:      row.LossPoints,
		ConferenceBonus: row.ConferenceBonus,
		Over50Bonus:     row.Over50Bonus,
		ShutoutBonus:    row.ShutoutBonus,
		Ranked25Bonus:   row.Ranked25Bonus,
		Ranked10Bonus:   row.Ranked10Bonus,
		BlowoutMargin:   row.BlowoutMargin,
	}, true, nil
}

func (r *SchoolPointsRepository) ListBySeason(ctx context.Context, seasonID string) ([]schoolpoints.WeeklyPoints, error) {
	return r.list(ctx, qb.Eq("season_public_id", seasonID))
}

func (r *SchoolPointsRepository) ListBySeasonWeek(ctx context.Context, seasonID string, week int) ([]schoolpoints.WeeklyPoints, error) {
	return r.list(ctx, qb.Eq("season_public_id", seasonID), qb.Eq("week_number", week))
}

func (r *SchoolPointsRepository) ListBySchool(ctx context.Context, seasonID, schoolID string) ([]schoolpoints.WeeklyPoints, error) {
	return r.list(ctx, qb.Eq("season_public_id", seasonID), qb.Eq("school_public_id", schoolID))
}

// ReplaceWeek makes rows the week's ledger. Existing rows for schools in
// retain survive untouched; every other row of the week not in rows is removed.
func (r *SchoolPointsRepository) ReplaceWeek(ctx context.Context, seasonID string, week int, rows []schoolpoints.WeeklyPoints, retain []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return dbError(err, "begin tx replace school weekly points")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("school_weekly_points").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("week_number", week),
			qb.NotIn("school_public_id", stringsToAny(retain)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear school weekly points query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return dbError(err, "clear school weekly points")
	}

	if len(rows) > 0 {
		models := make([]schoolWeeklyPointsInsertModel, 0, len(rows))
		for _, row := range rows {
			models = append(models, schoolWeeklyPointsInsertModel{
				SchoolID:        row.SchoolID,
				SeasonID:        seasonID,
				Week:            week,
				BasePoints:      row.BasePoints,
				ConferenceBonus: row.ConferenceBonus,
				Over50Bonus:     row.Over50Bonus,
				ShutoutBonus:    row.ShutoutBonus,
				Ranked25Bonus:   row.Ranked25Bonus,
				Ranked10Bonus:   row.Ranked10Bonus,
				TotalPoints:     row.TotalPoints,
				SourceGameID:    row.SourceGameID,
			})
		}
		query, args, err := qb.InsertModels("school_weekly_points", models, `ON CONFLICT (school_public_id, season_public_id, week_number)
DO UPDATE SET
    base_points = EXCLUDED.base_points,
    conference_bonus = EXCLUDED.conference_bonus,
    over_50_bonus = EXCLUDED.over_50_bonus,
    shutout_bonus = EXCLUDED.shutout_bonus,
    ranked_25_bonus = EXCLUDED.ranked_25_bonus,
    ranked_10_bonus = EXCLUDED.ranked_10_bonus,
    total_points = EXCLUDED.total_points,
    source_game_public_id = EXCLUDED.source_game_public_id,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert school weekly points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return dbError(err, fmt.Sprintf("upsert school weekly points season=%s week=%d", seasonID, week))
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "commit replace school weekly points tx")
	}
	return nil
}

func (r *SchoolPointsRepository) list(ctx context.Context, conditions ...qb.Condition) ([]schoolpoints.WeeklyPoints, error) {
	query, args, err := qb.Select("*").From("school_weekly_points").
		Where(conditions...).
		OrderBy("week_number", "school_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list school weekly points query: %w", err)
	}

	var rows []schoolWeeklyPointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "list school weekly points")
	}

	out := make([]schoolpoints.WeeklyPoints, 0, len(rows))
	for _, row := range rows {
		out = append(out, schoolpoints.WeeklyPoints{
			SchoolID:        row.SchoolID,
			SeasonID:        row.SeasonID,
			Week:            row.Week,
			BasePoints:      row.BasePoints,
			ConferenceBonus: row.ConferenceBonus,
			Over50Bonus:     row.Over50Bonus,
			ShutoutBonus:    row.ShutoutBonus,
			Ranked25Bonus:   row.Ranked25Bonus,
			Ranked10Bonus:   row.Ranked10Bonus,
			TotalPoints:     row.TotalPoints,
			SourceGameID:    row.SourceGameID,
		})
	}
	return out, nil
}
