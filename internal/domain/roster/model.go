package roster

import "fmt"

// Period is one ownership interval of a school by a fantasy team.
// A nil EndWeek means the team owns the school through the end of the season.
type Period struct {
	LeagueID  string
	TeamID    string
	SchoolID  string
	StartWeek int
	EndWeek   *int
}

func (p Period) Validate() error {
	if p.TeamID == "" || p.SchoolID == "" {
		return fmt.Errorf("roster period requires team and school")
	}
	if p.StartWeek < 0 {
		return fmt.Errorf("roster period start week must be >= 0")
	}
	if p.EndWeek != nil && *p.EndWeek < p.StartWeek {
		return fmt.Errorf("roster period end week %d before start week %d", *p.EndWeek, p.StartWeek)
	}
	return nil
}

// Covers reports whether the period includes week.
func (p Period) Covers(week int) bool {
	if week < p.StartWeek {
		return false
	}
	return p.EndWeek == nil || *p.EndWeek >= week
}
