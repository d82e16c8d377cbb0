package fantasyteam

// Team is a fantasy team in a league. TotalPoints is derived from the team's
// weekly ledger and only ever replaced wholesale.
type Team struct {
	ID          string
	LeagueID    string
	Name        string
	TotalPoints int
}

// WeeklyPoints is the team's score for one week.
type WeeklyPoints struct {
	TeamID             string
	LeagueID           string
	Week               int
	Points             int
	IsHighPointsWinner bool
}

// Standing is a team's position in the league table.
type Standing struct {
	Rank int
	Team Team
}
