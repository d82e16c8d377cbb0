package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	qb "github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/querybuilder"
)

type ScoringRunRepository struct {
	db *sqlx.DB
}

func NewScoringRunRepository(db *sqlx.DB) *ScoringRunRepository {
	return &ScoringRunRepository{db: db}
}

func (r *ScoringRunRepository) Save(ctx context.Context, summary scoringrun.Summary) error {
	encoded, err := sonic.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode scoring run summary: %w", err)
	}

	model := scoringRunTableModel{
		PublicID:     summary.RunID,
		Mode:         string(summary.Mode),
		SeasonID:     summary.SeasonID,
		Week:         intPtrToNullInt(summary.Week),
		LeagueID:     summary.LeagueID,
		Status:       summary.Status,
		SuccessCount: summary.SuccessCount,
		SkippedCount: summary.SkippedCount,
		FailedCount:  summary.FailedCount,
		Summary:      string(encoded),
		StartedAt:    summary.StartedAt,
		FinishedAt:   summary.FinishedAt,
	}
	query, args, err := qb.InsertModel("scoring_runs", model, `ON CONFLICT (public_id)
DO UPDATE SET
    status = EXCLUDED.status,
    success_count = EXCLUDED.success_count,
    skipped_count = EXCLUDED.skipped_count,
    failed_count = EXCLUDED.failed_count,
    summary = EXCLUDED.summary,
    finished_at = EXCLUDED.finished_at`)
	if err != nil {
		return fmt.Errorf("build insert scoring run query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return dbError(err, fmt.Sprintf("insert scoring run run=%s", summary.RunID))
	}
	return nil
}

func (r *ScoringRunRepository) GetByID(ctx context.Context, runID string) (scoringrun.Summary, bool, error) {
	query, args, err := qb.Select("*").From("scoring_runs").
		Where(qb.Eq("public_id", runID)).
		ToSQL()
	if err != nil {
		return scoringrun.Summary{}, false, fmt.Errorf("build get scoring run query: %w", err)
	}

	var row scoringRunTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoringrun.Summary{}, false, nil
		}
		return scoringrun.Summary{}, false, dbError(err, "get scoring run")
	}

	var out scoringrun.Summary
	if err := sonic.Unmarshal([]byte(row.Summary), &out); err != nil {
		return scoringrun.Summary{}, false, fmt.Errorf("decode scoring run summary run=%s: %w", runID, err)
	}
	return out, true, nil
}
