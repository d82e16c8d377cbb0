package bracket

import (
	"testing"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
)

func TestMapper_RoundWeeks(t *testing.T) {
	tests := []struct {
		format Format
		want   map[game.PlayoffRound]int
	}{
		{
			format: FormatCFP12,
			want: map[game.PlayoffRound]int{
				game.RoundFirstRound:   18,
				game.RoundQuarterfinal: 19,
				game.RoundSemifinal:    20,
				game.RoundChampionship: 21,
			},
		},
		{
			format: FormatCompressed,
			want: map[game.PlayoffRound]int{
				game.RoundFirstRound:   18,
				game.RoundQuarterfinal: 18,
				game.RoundSemifinal:    19,
				game.RoundChampionship: 20,
			},
		},
	}

	for _, tc := range tests {
		t.Run(string(tc.format), func(t *testing.T) {
			m, err := NewMapper(tc.format)
			if err != nil {
				t.Fatalf("new mapper: %v", err)
			}
			if m.BowlWeek() != 17 {
				t.Fatalf("unexpected bowl week: %d", m.BowlWeek())
			}
			for round, want := range tc.want {
				got, ok := m.RoundWeek(round)
				if !ok || got != want {
					t.Fatalf("round %s: got=%d ok=%v want=%d", round, got, ok, want)
				}
			}
		})
	}
}

func TestMapper_CanonicalWeek(t *testing.T) {
	m, err := NewMapper(FormatCFP12)
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}

	tests := []struct {
		name   string
		game   game.Game
		want   int
		wantOK bool
	}{
		{name: "regular season keeps week", game: game.Game{Week: 9}, want: 9, wantOK: true},
		{name: "bowl game", game: game.Game{Week: 16, IsBowlGame: true}, want: 17, wantOK: true},
		{name: "playoff semifinal", game: game.Game{Week: 19, IsBowlGame: true, IsPlayoffGame: true, PlayoffRound: game.RoundSemifinal}, want: 20, wantOK: true},
		{name: "playoff without round", game: game.Game{Week: 18, IsPlayoffGame: true}, wantOK: false},
		{name: "round without playoff flag", game: game.Game{Week: 18, PlayoffRound: game.RoundFirstRound}, wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := m.CanonicalWeek(tc.game)
			if ok != tc.wantOK {
				t.Fatalf("unexpected ok: got=%v want=%v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("unexpected week: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if got, err := ParseFormat(" CFP12_V2 "); err != nil || got != FormatCFP12 {
		t.Fatalf("unexpected parse: got=%q err=%v", got, err)
	}
	if _, err := ParseFormat("cfp4"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestPlan_QuarterfinalRemapIsIdempotent(t *testing.T) {
	m, err := NewMapper(FormatCFP12)
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}

	games := []game.Game{
		{
			ID:            "g-qf-1",
			Week:          18,
			IsBowlGame:    true,
			IsPlayoffGame: true,
			PlayoffRound:  game.RoundQuarterfinal,
			BowlName:      "Rose Bowl (CFP Quarterfinal)",
		},
		{ID: "g-reg", Week: 12},
	}

	changes, violations := Plan(m, games)
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %+v", violations)
	}
	if len(changes) != 1 || changes[0].GameID != "g-qf-1" || changes[0].From != 18 || changes[0].To != 19 {
		t.Fatalf("unexpected changes: %+v", changes)
	}

	normalized := Apply(games, changes)
	if normalized[0].Week != 19 {
		t.Fatalf("expected quarterfinal at week 19, got %d", normalized[0].Week)
	}
	if games[0].Week != 18 {
		t.Fatalf("apply must not mutate input")
	}

	again, _ := Plan(m, normalized)
	if len(again) != 0 {
		t.Fatalf("second pass must be a no-op, got %+v", again)
	}
}

func TestPlan_SkipsBlockingViolations(t *testing.T) {
	m, err := NewMapper(FormatCFP12)
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}

	games := []game.Game{
		{ID: "missing-round", Week: 16, IsPlayoffGame: true, BowlName: "CFP First Round"},
		{ID: "stray-round", Week: 16, IsBowlGame: true, PlayoffRound: game.RoundSemifinal, BowlName: "Sugar Bowl"},
		{ID: "no-context", Week: 16, IsPlayoffGame: true, PlayoffRound: game.RoundFirstRound, BowlName: "Campus Game"},
	}

	changes, violations := Plan(m, games)
	if len(changes) != 1 || changes[0].GameID != "no-context" || changes[0].To != 18 {
		t.Fatalf("expected only the non-blocking game to move, got %+v", changes)
	}

	codes := map[ViolationCode]string{}
	for _, v := range violations {
		codes[v.Code] = v.GameID
	}
	if codes[ViolationMissingRound] != "missing-round" {
		t.Fatalf("expected missing round violation, got %+v", violations)
	}
	if codes[ViolationRoundWithoutFlag] != "stray-round" {
		t.Fatalf("expected stray round violation, got %+v", violations)
	}
	if codes[ViolationMissingPlayoffRef] != "no-context" {
		t.Fatalf("expected playoff context violation, got %+v", violations)
	}
}
