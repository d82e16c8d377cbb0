package postgres

import (
	"time"
)

type leagueTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	SeasonID  string     `db:"season_public_id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type leagueBonusSettingTableModel struct {
	LeagueID  string    `db:"league_public_id"`
	BonusType string    `db:"bonus_type"`
	Points    int       `db:"points"`
	UpdatedAt time.Time `db:"updated_at"`
}
