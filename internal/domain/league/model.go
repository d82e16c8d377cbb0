package league

import (
	"fmt"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/eventbonus"
)

// League is a fantasy league playing one season.
// BonusPoints holds the league's configured value per event bonus type;
// types that are absent or zero are not awarded.
type League struct {
	ID          string
	Name        string
	SeasonID    string
	BonusPoints map[eventbonus.Type]int
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.SeasonID == "" {
		return fmt.Errorf("league season is required")
	}
	for t, v := range l.BonusPoints {
		if _, err := eventbonus.ParseType(string(t)); err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("bonus %s must be >= 0", t)
		}
	}

	return nil
}

// BonusValue returns the configured points for t, zero when unset.
func (l League) BonusValue(t eventbonus.Type) int {
	return l.BonusPoints[t]
}
