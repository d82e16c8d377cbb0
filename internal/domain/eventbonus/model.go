package eventbonus

import (
	"fmt"
	"strings"
)

// Type is a closed enumeration of league-configurable postseason bonuses.
type Type string

const (
	TypeBowlAppearance       Type = "bowl_appearance"
	TypeCFPFirstRound        Type = "cfp_first_round"
	TypeCFPQuarterfinal      Type = "cfp_quarterfinal"
	TypeCFPSemifinal         Type = "cfp_semifinal"
	TypeChampionshipWin      Type = "championship_win"
	TypeChampionshipLoss     Type = "championship_loss"
	TypeConfChampionshipWin  Type = "conf_championship_win"
	TypeConfChampionshipLoss Type = "conf_championship_loss"
	TypeHeisman              Type = "heisman"
)

var AllTypes = []Type{
	TypeBowlAppearance,
	TypeCFPFirstRound,
	TypeCFPQuarterfinal,
	TypeCFPSemifinal,
	TypeChampionshipWin,
	TypeChampionshipLoss,
	TypeConfChampionshipWin,
	TypeConfChampionshipLoss,
	TypeHeisman,
}

func ParseType(value string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range AllTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown bonus type %q", value)
}

// Bonus is one league-specific event bonus credited to a school.
type Bonus struct {
	LeagueID string
	SchoolID string
	SeasonID string
	Week     int
	Type     Type
	Points   int
}

// Key is the uniqueness key of a bonus row.
type Key struct {
	LeagueID string
	SchoolID string
	SeasonID string
	Week     int
	Type     Type
}

func (b Bonus) Key() Key {
	return Key{LeagueID: b.LeagueID, SchoolID: b.SchoolID, SeasonID: b.SeasonID, Week: b.Week, Type: b.Type}
}

// PointsBySchool sums bonus points per school for a single week.
func PointsBySchool(items []Bonus, week int) map[string]int {
	out := make(map[string]int)
	for _, item := range items {
		if item.Week != week {
			continue
		}
		out[item.SchoolID] += item.Points
	}
	return out
}
