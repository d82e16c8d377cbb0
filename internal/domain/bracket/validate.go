package bracket

import (
	"strings"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
)

type ViolationCode string

const (
	ViolationMissingRound      ViolationCode = "playoff_missing_round"
	ViolationRoundWithoutFlag  ViolationCode = "round_on_non_playoff_game"
	ViolationMissingPlayoffRef ViolationCode = "bowl_name_missing_playoff_context"
)

// Violation is a bracket data-quality problem on a single game.
type Violation struct {
	GameID string
	Code   ViolationCode
	Detail string
}

// Blocking reports whether the game cannot be placed on the timeline.
func (v Violation) Blocking() bool {
	return v.Code == ViolationMissingRound || v.Code == ViolationRoundWithoutFlag
}

var playoffContextMarkers = []string{"playoff", "cfp", "national championship"}

// Validate returns the bracket data-quality violations for a game.
func Validate(g game.Game) []Violation {
	var out []Violation
	if g.IsPlayoffGame && g.PlayoffRound == game.RoundNone {
		out = append(out, Violation{
			GameID: g.ID,
			Code:   ViolationMissingRound,
			Detail: "playoff game has no playoff_round",
		})
	}
	if !g.IsPlayoffGame && g.PlayoffRound != game.RoundNone {
		out = append(out, Violation{
			GameID: g.ID,
			Code:   ViolationRoundWithoutFlag,
			Detail: "playoff_round " + string(g.PlayoffRound) + " set on non-playoff game",
		})
	}
	if g.IsPlayoffGame && !hasPlayoffContext(g.BowlName) {
		out = append(out, Violation{
			GameID: g.ID,
			Code:   ViolationMissingPlayoffRef,
			Detail: "bowl name " + quote(g.BowlName) + " does not reference the playoff",
		})
	}
	return out
}

func hasPlayoffContext(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range playoffContextMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func quote(s string) string {
	return "\"" + s + "\""
}
