package school

import "strings"

// School is a real college football program that fantasy teams draft.
type School struct {
	ID         string
	Name       string
	Conference string
}

// InConference reports whether the school plays in a conference.
// Independents never earn conference bonuses.
func (s School) InConference() bool {
	conf := strings.ToLower(strings.TrimSpace(s.Conference))
	switch conf {
	case "", "independent", "independents", "fbs independents":
		return false
	default:
		return true
	}
}

// SameConference reports whether both schools belong to the same conference.
func SameConference(a, b School) bool {
	if !a.InConference() || !b.InConference() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(a.Conference), strings.TrimSpace(b.Conference))
}
