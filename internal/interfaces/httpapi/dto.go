package httpapi

import (
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/eventbonus"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/fantasyteam"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/schoolpoints"
)

type standingDTO struct {
	Rank        int    `json:"rank"`
	TeamID      string `json:"team_id"`
	TeamName    string `json:"team_name"`
	TotalPoints int    `json:"total_points"`
}

type teamWeeklyPointsDTO struct {
	Week               int  `json:"week"`
	Points             int  `json:"points"`
	IsHighPointsWinner bool `json:"is_high_points_winner"`
}

type teamPointsResponseDTO struct {
	LeagueID    string                `json:"league_id"`
	TeamID      string                `json:"team_id"`
	TotalPoints int                   `json:"total_points"`
	Weeks       []teamWeeklyPointsDTO `json:"weeks"`
}

type teamSchoolsDTO struct {
	LeagueID  string   `json:"league_id"`
	TeamID    string   `json:"team_id"`
	Week      int      `json:"week"`
	SchoolIDs []string `json:"school_ids"`
}

type eventBonusDTO struct {
	SchoolID string `json:"school_id"`
	SeasonID string `json:"season_id"`
	Week     int    `json:"week"`
	Type     string `json:"type"`
	Points   int    `json:"points"`
}

type schoolWeeklyPointsDTO struct {
	SchoolID        string `json:"school_id"`
	SeasonID        string `json:"season_id"`
	Week            int    `json:"week"`
	BasePoints      int    `json:"base_points"`
	ConferenceBonus int    `json:"conference_bonus"`
	Over50Bonus     int    `json:"over_50_bonus"`
	ShutoutBonus    int    `json:"shutout_bonus"`
	Ranked25Bonus   int    `json:"ranked_25_bonus"`
	Ranked10Bonus   int    `json:"ranked_10_bonus"`
	TotalPoints     int    `json:"total_points"`
	SourceGameID    string `json:"source_game_id,omitempty"`
}

func standingToDTO(v fantasyteam.Standing) standingDTO {
	return standingDTO{
		Rank:        v.Rank,
		TeamID:      v.Team.ID,
		TeamName:    v.Team.Name,
		TotalPoints: v.Team.TotalPoints,
	}
}

func teamWeeklyPointsToDTO(v fantasyteam.WeeklyPoints) teamWeeklyPointsDTO {
	return teamWeeklyPointsDTO{
		Week:               v.Week,
		Points:             v.Points,
		IsHighPointsWinner: v.IsHighPointsWinner,
	}
}

func eventBonusToDTO(v eventbonus.Bonus) eventBonusDTO {
	return eventBonusDTO{
		SchoolID: v.SchoolID,
		SeasonID: v.SeasonID,
		Week:     v.Week,
		Type:     string(v.Type),
		Points:   v.Points,
	}
}

func schoolWeeklyPointsToDTO(v schoolpoints.WeeklyPoints) schoolWeeklyPointsDTO {
	return schoolWeeklyPointsDTO{
		SchoolID:        v.SchoolID,
		SeasonID:        v.SeasonID,
		Week:            v.Week,
		BasePoints:      v.BasePoints,
		ConferenceBonus: v.ConferenceBonus,
		Over50Bonus:     v.Over50Bonus,
		ShutoutBonus:    v.ShutoutBonus,
		Ranked25Bonus:   v.Ranked25Bonus,
		Ranked10Bonus:   v.Ranked10Bonus,
		TotalPoints:     v.TotalPoints,
		SourceGameID:    v.SourceGameID,
	}
}
