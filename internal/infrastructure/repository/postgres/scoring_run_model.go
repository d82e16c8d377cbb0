package postgres

import (
	"database/sql"
	"time"
)

type scoringRunTableModel struct {
	PublicID     string        `db:"public_id"`
	Mode         string        `db:"mode"`
	SeasonID     string        `db:"season_public_id"`
	Week         sql.NullInt64 `db:"week_number"`
	LeagueID     string        `db:"league_public_id"`
	Status       string        `db:"status"`
	SuccessCount int           `db:"success_count"`
	SkippedCount int           `db:"skipped_count"`
	FailedCount  int           `db:"failed_count"`
	Summary      string        `db:"summary"`
	StartedAt    time.Time     `db:"started_at"`
	FinishedAt   time.Time     `db:"finished_at"`
}
