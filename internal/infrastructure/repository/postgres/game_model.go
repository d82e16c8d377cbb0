package postgres

import (
	"database/sql"
	"time"
)

type gameTableModel struct {
	ID                       int64         `db:"id"`
	PublicID                 string        `db:"public_id"`
	SeasonID                 string        `db:"season_public_id"`
	Week                     int           `db:"week_number"`
	HomeSchoolID             string        `db:"home_school_public_id"`
	AwaySchoolID             string        `db:"away_school_public_id"`
	HomeScore                sql.NullInt64 `db:"home_score"`
	AwayScore                sql.NullInt64 `db:"away_score"`
	Status                   string        `db:"status"`
	IsBowlGame               bool          `db:"is_bowl_game"`
	IsPlayoffGame            bool          `db:"is_playoff_game"`
	PlayoffRound             string        `db:"playoff_round"`
	IsConferenceChampionship bool          `db:"is_conference_championship"`
	BowlName                 string        `db:"bowl_name"`
	CreatedAt                time.Time     `db:"created_at"`
	UpdatedAt                time.Time     `db:"updated_at"`
	DeletedAt                *time.Time    `db:"deleted_at"`
}

type gameInsertModel struct {
	PublicID                 string        `db:"public_id"`
	SeasonID                 string        `db:"season_public_id"`
	Week                     int           `db:"week_number"`
	HomeSchoolID             string        `db:"home_school_public_id"`
	AwaySchoolID             string        `db:"away_school_public_id"`
	HomeScore                sql.NullInt64 `db:"home_score"`
	AwayScore                sql.NullInt64 `db:"away_score"`
	Status                   string        `db:"status"`
	IsBowlGame               bool          `db:"is_bowl_game"`
	IsPlayoffGame            bool          `db:"is_playoff_game"`
	PlayoffRound             string        `db:"playoff_round"`
	IsConferenceChampionship bool          `db:"is_conference_championship"`
	BowlName                 string        `db:"bowl_name"`
}
