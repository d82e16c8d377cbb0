package eventbonus

import (
	"testing"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/bracket"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/season"
)

func score(v int) *int { return &v }

func allValues() map[Type]int {
	return map[Type]int{
		TypeBowlAppearance:       2,
		TypeCFPFirstRound:        3,
		TypeCFPQuarterfinal:      4,
		TypeCFPSemifinal:         5,
		TypeChampionshipWin:      10,
		TypeChampionshipLoss:     4,
		TypeConfChampionshipWin:  3,
		TypeConfChampionshipLoss: 1,
		TypeHeisman:              5,
	}
}

func mustMapper(t *testing.T) bracket.Mapper {
	t.Helper()
	m, err := bracket.NewMapper(bracket.FormatCFP12)
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}
	return m
}

func keysOf(items []Bonus) map[Key]int {
	out := make(map[Key]int, len(items))
	for _, item := range items {
		out[item.Key()] = item.Points
	}
	return out
}

func key(schoolID string, week int, t Type) Key {
	return Key{LeagueID: "l1", SchoolID: schoolID, SeasonID: "2025", Week: week, Type: t}
}

func TestResolve_PostseasonBonuses(t *testing.T) {
	games := []game.Game{
		{ID: "bowl-1", SeasonID: "2025", Week: 16, HomeSchoolID: "army", AwaySchoolID: "navy", IsBowlGame: true, BowlName: "Independence Bowl", Status: game.StatusScheduled},
		{ID: "bowl-x", SeasonID: "2025", Week: 17, HomeSchoolID: "ucla", AwaySchoolID: "usc", IsBowlGame: true, BowlName: "Cancelled Bowl", Status: game.StatusCancelled},
		{ID: "fr-1", SeasonID: "2025", Week: 18, HomeSchoolID: "texas", AwaySchoolID: "clemson", IsPlayoffGame: true, PlayoffRound: game.RoundFirstRound, BowlName: "CFP First Round", Status: game.StatusFinal, HomeScore: score(38), AwayScore: score(24)},
		{ID: "qf-1", SeasonID: "2025", Week: 18, HomeSchoolID: "oregon", AwaySchoolID: "texas", IsBowlGame: true, IsPlayoffGame: true, PlayoffRound: game.RoundQuarterfinal, BowlName: "Rose Bowl (CFP Quarterfinal)", Status: game.StatusFinal, HomeScore: score(21), AwayScore: score(28)},
		{ID: "nc", SeasonID: "2025", Week: 21, HomeSchoolID: "texas", AwaySchoolID: "ohio-state", IsPlayoffGame: true, PlayoffRound: game.RoundChampionship, BowlName: "CFP National Championship", Status: game.StatusFinal, HomeScore: score(31), AwayScore: score(34)},
		{ID: "ccg", SeasonID: "2025", Week: 15, HomeSchoolID: "georgia", AwaySchoolID: "texas", IsConferenceChampionship: true, Status: game.StatusFinal, HomeScore: score(22), AwayScore: score(19)},
	}

	got := keysOf(Resolve(Input{
		LeagueID: "l1",
		SeasonID: "2025",
		Mapper:   mustMapper(t),
		Games:    games,
		Awards:   []season.Award{{SeasonID: "2025", Kind: season.AwardHeisman, SchoolID: "oregon", Week: 16}},
		Values:   allValues(),
	}))

	want := map[Key]int{
		key("army", 17, TypeBowlAppearance):          2,
		key("navy", 17, TypeBowlAppearance):          2,
		key("texas", 17, TypeBowlAppearance):         2,
		key("clemson", 17, TypeBowlAppearance):       2,
		key("oregon", 17, TypeBowlAppearance):        2,
		key("ohio-state", 17, TypeBowlAppearance):    2,
		key("texas", 18, TypeCFPFirstRound):          3,
		key("clemson", 18, TypeCFPFirstRound):        3,
		key("oregon", 19, TypeCFPQuarterfinal):       4,
		key("texas", 19, TypeCFPQuarterfinal):        4,
		key("ohio-state", 21, TypeChampionshipWin):   10,
		key("texas", 21, TypeChampionshipLoss):       4,
		key("georgia", 15, TypeConfChampionshipWin):  3,
		key("texas", 15, TypeConfChampionshipLoss):  1,
		key("oregon", 16, TypeHeisman):              5,
	}

	if len(got) != len(want) {
		t.Fatalf("unexpected bonus count: got=%d want=%d\n%+v", len(got), len(want), got)
	}
	for k, points := range want {
		if got[k] != points {
			t.Fatalf("missing or wrong bonus %+v: got=%d want=%d", k, got[k], points)
		}
	}
}

func TestResolve_DroppedBowlParticipantHasNoBonus(t *testing.T) {
	before := []game.Game{
		{ID: "bowl-1", Week: 17, HomeSchoolID: "kansas", AwaySchoolID: "iowa", IsBowlGame: true, BowlName: "Guaranteed Rate Bowl"},
	}
	after := []game.Game{
		{ID: "bowl-1", Week: 17, HomeSchoolID: "kansas-state", AwaySchoolID: "iowa", IsBowlGame: true, BowlName: "Guaranteed Rate Bowl"},
	}

	in := Input{LeagueID: "l1", SeasonID: "2025", Mapper: mustMapper(t), Values: allValues()}

	in.Games = before
	if _, ok := keysOf(Resolve(in))[key("kansas", 17, TypeBowlAppearance)]; !ok {
		t.Fatalf("expected kansas bowl appearance before correction")
	}

	in.Games = after
	got := keysOf(Resolve(in))
	if _, ok := got[key("kansas", 17, TypeBowlAppearance)]; ok {
		t.Fatalf("kansas must not keep a bowl appearance after correction")
	}
	if _, ok := got[key("kansas-state", 17, TypeBowlAppearance)]; !ok {
		t.Fatalf("expected kansas-state bowl appearance after correction")
	}
}

func TestResolve_ZeroValuedTypesProduceNoRows(t *testing.T) {
	games := []game.Game{
		{ID: "bowl-1", Week: 17, HomeSchoolID: "army", AwaySchoolID: "navy", IsBowlGame: true, BowlName: "Independence Bowl"},
	}
	got := Resolve(Input{
		LeagueID: "l1",
		SeasonID: "2025",
		Mapper:   mustMapper(t),
		Games:    games,
		Values:   map[Type]int{TypeHeisman: 5},
	})
	if len(got) != 0 {
		t.Fatalf("expected no rows, got %+v", got)
	}
}

func TestResolve_SkipsPlayoffGameWithoutRound(t *testing.T) {
	games := []game.Game{
		{ID: "bad", Week: 18, HomeSchoolID: "smu", AwaySchoolID: "penn-state", IsPlayoffGame: true, BowlName: "CFP First Round"},
	}
	got := Resolve(Input{LeagueID: "l1", SeasonID: "2025", Mapper: mustMapper(t), Games: games, Values: allValues()})
	if len(got) != 0 {
		t.Fatalf("expected no rows for unplaceable game, got %+v", got)
	}
}

func TestParseType(t *testing.T) {
	if got, err := ParseType(" HEISMAN "); err != nil || got != TypeHeisman {
		t.Fatalf("unexpected parse: got=%q err=%v", got, err)
	}
	if _, err := ParseType("mvp"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
