package postgres

import (
	"time"
)

type seasonTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	Year          int        `db:"year"`
	BracketFormat string     `db:"bracket_format"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type seasonAwardTableModel struct {
	ID        int64      `db:"id"`
	SeasonID  string     `db:"season_public_id"`
	Kind      string     `db:"kind"`
	SchoolID  string     `db:"school_public_id"`
	Week      int        `db:"week_number"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}
