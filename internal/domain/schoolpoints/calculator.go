package schoolpoints

import (
	"sort"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/ranking"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/school"
)

// Input is everything needed to score one season-week.
type Input struct {
	SeasonID string
	Week     int
	Games    []game.Game
	Schools  map[string]school.School
	Rankings ranking.Snapshot
	Rules    Rules
}

// MissingSchool reports a game skipped because a school reference is unknown.
type MissingSchool struct {
	GameID   string
	SchoolID string
}

type Result struct {
	Rows []WeeklyPoints
	// Retain lists schools whose existing rows must survive this recompute
	// because one of their games could not be scored.
	Retain  []string
	Missing []MissingSchool
	// Pending counts games in the week that are not final yet.
	Pending int
}

// Calculate scores every final game in the week. A school gets one row per
// week; schools with two final games that week have their components summed.
// Ranked tiers stack: beating a top-10 opponent earns both ranked bonuses.
func Calculate(in Input) Result {
	games := append([]game.Game(nil), in.Games...)
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })

	var result Result
	rows := make(map[string]*WeeklyPoints)
	retain := make(map[string]struct{})
	for _, g := range games {
		if g.Week != in.Week {
			continue
		}
		outcome, ok := g.Outcome()
		if !ok {
			result.Pending++
			continue
		}

		missing := false
		for _, id := range g.Participants() {
			if _, exists := in.Schools[id]; !exists {
				result.Missing = append(result.Missing, MissingSchool{GameID: g.ID, SchoolID: id})
				missing = true
			}
		}
		if missing || len(g.Participants()) != 2 {
			for _, id := range g.Participants() {
				retain[id] = struct{}{}
			}
			continue
		}

		for _, item := range scoreGame(in, g, outcome) {
			if existing, ok := rows[item.SchoolID]; ok {
				existing.add(item)
				continue
			}
			row := item
			rows[item.SchoolID] = &row
		}
	}

	for id := range retain {
		delete(rows, id)
		result.Retain = append(result.Retain, id)
	}
	sort.Strings(result.Retain)

	result.Rows = make([]WeeklyPoints, 0, len(rows))
	for _, row := range rows {
		result.Rows = append(result.Rows, *row)
	}
	sort.Slice(result.Rows, func(i, j int) bool { return result.Rows[i].SchoolID < result.Rows[j].SchoolID })
	return result
}

func scoreGame(in Input, g game.Game, outcome game.Result) []WeeklyPoints {
	base := func(schoolID string) WeeklyPoints {
		return WeeklyPoints{
			SchoolID:     schoolID,
			SeasonID:     in.SeasonID,
			Week:         in.Week,
			SourceGameID: g.ID,
		}
	}

	if outcome.Tie {
		home, away := base(outcome.WinnerID), base(outcome.LoserID)
		return []WeeklyPoints{home, away}
	}

	rules := in.Rules
	winner := base(outcome.WinnerID)
	winner.BasePoints = rules.WinPoints
	if school.SameConference(in.Schools[outcome.WinnerID], in.Schools[outcome.LoserID]) {
		winner.ConferenceBonus = rules.ConferenceBonus
	}
	if outcome.Margin() >= rules.BlowoutMargin {
		winner.Over50Bonus = rules.Over50Bonus
	}
	if outcome.LoserScore == 0 {
		winner.ShutoutBonus = rules.ShutoutBonus
	}
	if rank, ranked := in.Rankings.Rank(outcome.LoserID); ranked {
		if rank <= ranking.Top25 {
			winner.Ranked25Bonus = rules.Ranked25Bonus
		}
		if rank <= ranking.Top10 {
			winner.Ranked10Bonus = rules.Ranked10Bonus
		}
	}
	winner.TotalPoints = winner.componentSum()

	loser := base(outcome.LoserID)
	loser.BasePoints = rules.LossPoints
	loser.TotalPoints = loser.componentSum()

	return []WeeklyPoints{winner, loser}
}
