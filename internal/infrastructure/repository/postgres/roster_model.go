package postgres

import (
	"database/sql"
	"time"
)

type rosterPeriodTableModel struct {
	ID        int64         `db:"id"`
	LeagueID  string        `db:"league_public_id"`
	TeamID    string        `db:"fantasy_team_public_id"`
	SchoolID  string        `db:"school_public_id"`
	StartWeek int           `db:"start_week"`
	EndWeek   sql.NullInt64 `db:"end_week"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
	DeletedAt *time.Time    `db:"deleted_at"`
}
