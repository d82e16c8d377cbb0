package game

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusFinal      Status = "final"
	StatusPostponed  Status = "postponed"
	StatusCancelled  Status = "cancelled"
)

func NormalizeStatus(value string) Status {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if status == "" {
		return StatusScheduled
	}
	return status
}

type PlayoffRound string

const (
	RoundNone         PlayoffRound = ""
	RoundFirstRound   PlayoffRound = "first_round"
	RoundQuarterfinal PlayoffRound = "quarterfinal"
	RoundSemifinal    PlayoffRound = "semifinal"
	RoundChampionship PlayoffRound = "championship"
)

var PlayoffRounds = []PlayoffRound{
	RoundFirstRound,
	RoundQuarterfinal,
	RoundSemifinal,
	RoundChampionship,
}

func ParsePlayoffRound(value string) (PlayoffRound, error) {
	round := PlayoffRound(strings.ToLower(strings.TrimSpace(value)))
	if round == RoundNone {
		return RoundNone, nil
	}
	for _, known := range PlayoffRounds {
		if round == known {
			return round, nil
		}
	}
	return RoundNone, fmt.Errorf("unknown playoff round %q", value)
}

// Game is one scheduled or completed matchup between two schools.
type Game struct {
	ID                       string
	SeasonID                 string
	Week                     int
	HomeSchoolID             string
	AwaySchoolID             string
	HomeScore                *int
	AwayScore                *int
	Status                   Status
	IsBowlGame               bool
	IsPlayoffGame            bool
	PlayoffRound             PlayoffRound
	IsConferenceChampionship bool
	BowlName                 string
}

// IsFinal reports whether the game is complete with both scores recorded.
func (g Game) IsFinal() bool {
	return g.Status == StatusFinal && g.HomeScore != nil && g.AwayScore != nil
}

func (g Game) IsCancelled() bool {
	return g.Status == StatusCancelled
}

func (g Game) IsPostseason() bool {
	return g.IsBowlGame || g.IsPlayoffGame || g.PlayoffRound != RoundNone
}

func (g Game) Participants() []string {
	out := make([]string, 0, 2)
	if g.HomeSchoolID != "" {
		out = append(out, g.HomeSchoolID)
	}
	if g.AwaySchoolID != "" && g.AwaySchoolID != g.HomeSchoolID {
		out = append(out, g.AwaySchoolID)
	}
	return out
}

// Result describes the outcome of a final game from the winner's side.
type Result struct {
	WinnerID    string
	LoserID     string
	WinnerScore int
	LoserScore  int
	Tie         bool
}

func (r Result) Margin() int {
	return r.WinnerScore - r.LoserScore
}

// Outcome returns the result of a final game. ok is false when the game is
// not final yet.
func (g Game) Outcome() (Result, bool) {
	if !g.IsFinal() {
		return Result{}, false
	}

	home, away := *g.HomeScore, *g.AwayScore
	switch {
	case home > away:
		return Result{WinnerID: g.HomeSchoolID, LoserID: g.AwaySchoolID, WinnerScore: home, LoserScore: away}, true
	case away > home:
		return Result{WinnerID: g.AwaySchoolID, LoserID: g.HomeSchoolID, WinnerScore: away, LoserScore: home}, true
	default:
		return Result{WinnerID: g.HomeSchoolID, LoserID: g.AwaySchoolID, WinnerScore: home, LoserScore: away, Tie: true}, true
	}
}
