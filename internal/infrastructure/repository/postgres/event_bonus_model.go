package postgres

import "time"

type leagueEventBonusTableModel struct {
	LeagueID  string    `db:"league_public_id"`
	SchoolID  string    `db:"school_public_id"`
	SeasonID  string    `db:"season_public_id"`
	Week      int       `db:"week_number"`
	BonusType string    `db:"bonus_type"`
	Points    int       `db:"points"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type leagueEventBonusInsertModel struct {
	LeagueID  string `db:"league_public_id"`
	SchoolID  string `db:"school_public_id"`
	SeasonID  string `db:"season_public_id"`
	Week      int    `db:"week_number"`
	BonusType string `db:"bonus_type"`
	Points    int    `db:"points"`
}
