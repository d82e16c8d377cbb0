package postgres

import "time"

type schoolTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	Name       string     `db:"name"`
	Conference string     `db:"conference"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type rankingSnapshotTableModel struct {
	ID        int64     `db:"id"`
	SeasonID  string    `db:"season_public_id"`
	Week      int       `db:"week_number"`
	SchoolID  string    `db:"school_public_id"`
	Rank      int       `db:"rank"`
	CreatedAt time.Time `db:"created_at"`
}
