package eventbonus

import (
	"sort"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/bracket"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/season"
)

// Input carries a season's bracket state and one league's point values.
type Input struct {
	LeagueID string
	SeasonID string
	Mapper   bracket.Mapper
	Games    []game.Game
	Awards   []season.Award
	Values   map[Type]int
}

var roundBonus = map[game.PlayoffRound]Type{
	game.RoundFirstRound:   TypeCFPFirstRound,
	game.RoundQuarterfinal: TypeCFPQuarterfinal,
	game.RoundSemifinal:    TypeCFPSemifinal,
}

// Resolve derives the complete bonus set for a league-season from the current
// bracket state. The result is the whole truth for that scope: anything not
// returned must not exist in storage. Games are placed by the mapper, not by
// their stored week, so an un-normalized schedule still resolves correctly.
func Resolve(in Input) []Bonus {
	set := make(map[Key]Bonus)
	credit := func(schoolID string, week int, t Type) {
		points := in.Values[t]
		if schoolID == "" || points == 0 {
			return
		}
		b := Bonus{
			LeagueID: in.LeagueID,
			SchoolID: schoolID,
			SeasonID: in.SeasonID,
			Week:     week,
			Type:     t,
			Points:   points,
		}
		set[b.Key()] = b
	}

	bowlWeek := in.Mapper.BowlWeek()
	for _, g := range in.Games {
		if g.IsCancelled() {
			continue
		}

		if g.IsConferenceChampionship && !g.IsPostseason() {
			if outcome, ok := g.Outcome(); ok && !outcome.Tie {
				credit(outcome.WinnerID, g.Week, TypeConfChampionshipWin)
				credit(outcome.LoserID, g.Week, TypeConfChampionshipLoss)
			}
			continue
		}

		week, ok := in.Mapper.CanonicalWeek(g)
		if !ok {
			continue
		}

		switch {
		case g.IsPlayoffGame:
			for _, id := range g.Participants() {
				credit(id, bowlWeek, TypeBowlAppearance)
			}
			if t, ok := roundBonus[g.PlayoffRound]; ok {
				for _, id := range g.Participants() {
					credit(id, week, t)
				}
			}
			if g.PlayoffRound == game.RoundChampionship {
				if outcome, ok := g.Outcome(); ok && !outcome.Tie {
					credit(outcome.WinnerID, week, TypeChampionshipWin)
					credit(outcome.LoserID, week, TypeChampionshipLoss)
				}
			}
		case g.IsBowlGame && week == bowlWeek:
			for _, id := range g.Participants() {
				credit(id, bowlWeek, TypeBowlAppearance)
			}
		}
	}

	for _, award := range in.Awards {
		if award.Kind != season.AwardHeisman || award.SeasonID != in.SeasonID {
			continue
		}
		week := award.Week
		if week <= 0 {
			week = bowlWeek
		}
		credit(award.SchoolID, week, TypeHeisman)
	}

	out := make([]Bonus, 0, len(set))
	for _, b := range set {
		out = append(out, b)
	}
	Sort(out)
	return out
}

// FilterWeek keeps only the bonuses credited at week.
func FilterWeek(items []Bonus, week int) []Bonus {
	out := make([]Bonus, 0, len(items))
	for _, item := range items {
		if item.Week == week {
			out = append(out, item)
		}
	}
	return out
}

// Sort orders bonuses by week, school and type.
func Sort(items []Bonus) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		if a.SchoolID != b.SchoolID {
			return a.SchoolID < b.SchoolID
		}
		return a.Type < b.Type
	})
}
