package postgres

import "time"

type schoolWeeklyPointsTableModel struct {
	SchoolID        string    `db:"school_public_id"`
	SeasonID        string    `db:"season_public_id"`
	Week            int       `db:"week_number"`
	BasePoints      int       `db:"base_points"`
	ConferenceBonus int       `db:"conference_bonus"`
	Over50Bonus     int       `db:"over_50_bonus"`
	ShutoutBonus    int       `db:"shutout_bonus"`
	Ranked25Bonus   int       `db:"ranked_25_bonus"`
	Ranked10Bonus   int       `db:"ranked_10_bonus"`
	TotalPoints     int       `db:"total_points"`
	SourceGameID    string    `db:"source_game_public_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type schoolWeeklyPointsInsertModel struct {
	SchoolID        string `db:"school_public_id"`
	SeasonID        string `db:"season_public_id"`
	Week            int    `db:"week_number"`
	BasePoints      int    `db:"base_points"`
	ConferenceBonus int    `db:"conference_bonus"`
	Over50Bonus     int    `db:"over_50_bonus"`
	ShutoutBonus    int    `db:"shutout_bonus"`
	Ranked25Bonus   int    `db:"ranked_25_bonus"`
	Ranked10Bonus   int    `db:"ranked_10_bonus"`
	TotalPoints     int    `db:"total_points"`
	SourceGameID    string `db:"source_game_public_id"`
}

type seasonScoringRulesTableModel struct {
	SeasonID        string    `db:"season_public_id"`
	WinPoints       int       `db:"win_points"`
	LossPoints      int       `db:"loss_points"`
	ConferenceBonus int       `db:"conference_bonus"`
	Over50Bonus     int       `db:"over_50_bonus"`
	ShutoutBonus    int       `db:"shutout_bonus"`
	Ranked25Bonus   int       `db:"ranked_25_bonus"`
	Ranked10Bonus   int       `db:"ranked_10_bonus"`
	BlowoutMargin   int       `db:"blowout_margin"`
	UpdatedAt       time.Time `db:"updated_at"`
}
