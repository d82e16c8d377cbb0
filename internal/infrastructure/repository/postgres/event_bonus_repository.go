package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/eventbonus"
	qb "github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/querybuilder"
)

const eventBonusUpsertSuffix = `ON CONFLICT ON CONSTRAINT ux_league_event_bonuses
DO UPDATE SET
    points = EXCLUDED.points,
    updated_at = NOW()`

type EventBonusRepository struct {
	db *sqlx.DB
}

func NewEventBonusRepository(db *sqlx.DB) *EventBonusRepository {
	return &EventBonusRepository{db: db}
}

func (r *EventBonusRepository) ListByLeagueSeason(ctx context.Context, leagueID, seasonID string) ([]eventbonus.Bonus, error) {
	query, args, err := qb.Select("*").From("league_event_bonuses").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("season_public_id", seasonID),
		).
		OrderBy("week_number", "school_public_id", "bonus_type").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list event bonuses query: %w", err)
	}

	var rows []leagueEventBonusTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "list event bonuses")
	}

	out := make([]eventbonus.Bonus, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventbonus.Bonus{
			LeagueID: row.LeagueID,
			SchoolID: row.SchoolID,
			SeasonID: row.SeasonID,
			Week:     row.Week,
			Type:     eventbonus.Type(row.BonusType),
			Points:   row.Points,
		})
	}
	eventbonus.Sort(out)
	return out, nil
}

func (r *EventBonusRepository) ReplaceSeason(ctx context.Context, leagueID, seasonID string, items []eventbonus.Bonus) error {
	return r.replace(ctx, items, fmt.Sprintf("league=%s season=%s", leagueID, seasonID),
		qb.Eq("league_public_id", leagueID),
		qb.Eq("season_public_id", seasonID),
	)
}

func (r *EventBonusRepository) ReplaceWeek(ctx context.Context, leagueID, seasonID string, week int, items []eventbonus.Bonus) error {
	scoped := make([]eventbonus.Bonus, 0, len(items))
	for _, item := range items {
		if item.Week == week {
			scoped = append(scoped, item)
		}
	}
	return r.replace(ctx, scoped, fmt.Sprintf("league=%s season=%s week=%d", leagueID, seasonID, week),
		qb.Eq("league_public_id", leagueID),
		qb.Eq("season_public_id", seasonID),
		qb.Eq("week_number", week),
	)
}

// replace deletes every bonus in scope and inserts items in one transaction.
func (r *EventBonusRepository) replace(ctx context.Context, items []eventbonus.Bonus, scope string, conditions ...qb.Condition) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return dbError(err, "begin tx replace event bonuses")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("league_event_bonuses").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear event bonuses query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return dbError(err, "clear event bonuses "+scope)
	}

	if len(items) > 0 {
		models := make([]leagueEventBonusInsertModel, 0, len(items))
		for _, item := range items {
			models = append(models, leagueEventBonusInsertModel{
				LeagueID:  item.LeagueID,
				SchoolID:  item.SchoolID,
				SeasonID:  item.SeasonID,
				Week:      item.Week,
				BonusType: string(item.Type),
				Points:    item.Points,
			})
		}
		query, args, err := qb.InsertModels("league_event_bonuses", models, eventBonusUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build insert event bonuses query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return dbError(err, "insert event bonuses "+scope)
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "commit replace event bonuses tx")
	}
	return nil
}
