package season

import (
	"fmt"
	"strings"
)

// Season is one competition year. BracketFormat selects the postseason
// round-to-week layout used for that year; empty means the configured default.
type Season struct {
	ID            string
	Year          int
	BracketFormat string
}

func (s Season) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("season id is required")
	}
	if s.Year <= 0 {
		return fmt.Errorf("season year must be > 0")
	}
	return nil
}

type AwardKind string

const (
	AwardHeisman AwardKind = "heisman"
)

// Award credits a school with an individual award won by one of its players.
type Award struct {
	SeasonID string
	Kind     AwardKind
	SchoolID string
	Week     int
}
