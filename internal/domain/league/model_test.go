package league

import (
	"testing"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/eventbonus"
)

func TestLeagueValidate(t *testing.T) {
	valid := League{
		ID:       "l1",
		Name:     "Saturday Stars",
		SeasonID: "2025",
		BonusPoints: map[eventbonus.Type]int{
			eventbonus.TypeBowlAppearance: 2,
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	unknown := valid
	unknown.BonusPoints = map[eventbonus.Type]int{"mvp": 1}
	if err := unknown.Validate(); err == nil {
		t.Fatalf("expected unknown bonus type to fail")
	}

	negative := valid
	negative.BonusPoints = map[eventbonus.Type]int{eventbonus.TypeHeisman: -1}
	if err := negative.Validate(); err == nil {
		t.Fatalf("expected negative bonus to fail")
	}

	if got := valid.BonusValue(eventbonus.TypeHeisman); got != 0 {
		t.Fatalf("unset bonus must be zero, got %d", got)
	}
}
