package postgres

import "time"

type fantasyTeamTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	LeagueID    string     `db:"league_public_id"`
	Name        string     `db:"name"`
	TotalPoints int        `db:"total_points"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type fantasyTeamWeeklyPointsTableModel struct {
	TeamID             string    `db:"fantasy_team_public_id"`
	LeagueID           string    `db:"league_public_id"`
	Week               int       `db:"week_number"`
	Points             int       `db:"points"`
	IsHighPointsWinner bool      `db:"is_high_points_winner"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

type fantasyTeamWeeklyPointsInsertModel struct {
	TeamID             string `db:"fantasy_team_public_id"`
	LeagueID           string `db:"league_public_id"`
	Week               int    `db:"week_number"`
	Points             int    `db:"points"`
	IsHighPointsWinner bool   `db:"is_high_points_winner"`
}
