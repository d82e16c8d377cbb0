package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/season"
	qb "github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season by id query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, dbError(err, "get season by id")
	}

	return season.Season{
		ID:            row.PublicID,
		Year:          row.Year,
		BracketFormat: row.BracketFormat,
	}, true, nil
}

func (r *SeasonRepository) ListAwards(ctx context.Context, seasonID string) ([]season.Award, error) {
	query, args, err := qb.Select("*").From("season_awards").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("kind", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season awards query: %w", err)
	}

	var rows []seasonAwardTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "list season awards")
	}

	out := make([]season.Award, 0, len(rows))
	for _, row := range rows {
		out = append(out, season.Award{
			SeasonID: row.SeasonID,
			Kind:     season.AwardKind(row.Kind),
			SchoolID: row.SchoolID,
			Week:     row.Week,
		})
	}
	return out, nil
}
