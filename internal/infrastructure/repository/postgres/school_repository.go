package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/ranking"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/school"
	qb "github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/querybuilder"
)

type SchoolRepository struct {
	db *sqlx.DB
}

func NewSchoolRepository(db *sqlx.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

func (r *SchoolRepository) List(ctx context.Context) ([]school.School, error) {
	query, args, err := qb.Select("*").From("schools").
		Where(qb.IsNull("deleted_at")).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list schools query: %w", err)
	}

	var rows []schoolTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "list schools")
	}

	out := make([]school.School, 0, len(rows))
	for _, row := range rows {
		out = append(out, school.School{
			ID:         row.PublicID,
			Name:       row.Name,
			Conference: row.Conference,
		})
	}
	return out, nil
}

type RankingRepository struct {
	db *sqlx.DB
}

func NewRankingRepository(db *sqlx.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

func (r *RankingRepository) ListBySeason(ctx context.Context, seasonID string) ([]ranking.Entry, error) {
	query, args, err := qb.Select("*").From("ranking_snapshots").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("week_number", "rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rankings query: %w", err)
	}

	var rows []rankingSnapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "list rankings")
	}

	out := make([]ranking.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, ranking.Entry{
			SeasonID: row.SeasonID,
			Week:     row.Week,
			SchoolID: row.SchoolID,
			Rank:     row.Rank,
		})
	}
	return out, nil
}
