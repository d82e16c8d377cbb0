package bracket

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
)

// Format identifies a versioned postseason layout. Formats are never edited
// in place; a schedule change ships as a new format.
type Format string

const (
	FormatCFP12      Format = "cfp12_v2"
	FormatCompressed Format = "cfp_compressed_v1"

	DefaultFormat = FormatCFP12

	LastRegularSeasonWeek = 16
)

type layout struct {
	bowlWeek int
	rounds   map[game.PlayoffRound]int
}

var layouts = map[Format]layout{
	FormatCFP12: {
		bowlWeek: 17,
		rounds: map[game.PlayoffRound]int{
			game.RoundFirstRound:   18,
			game.RoundQuarterfinal: 19,
			game.RoundSemifinal:    20,
			game.RoundChampionship: 21,
		},
	},
	FormatCompressed: {
		bowlWeek: 17,
		rounds: map[game.PlayoffRound]int{
			game.RoundFirstRound:   18,
			game.RoundQuarterfinal: 18,
			game.RoundSemifinal:    19,
			game.RoundChampionship: 20,
		},
	},
}

func Formats() []Format {
	out := make([]Format, 0, len(layouts))
	for f := range layouts {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func ParseFormat(value string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := layouts[format]; !ok {
		return "", fmt.Errorf("unknown bracket format %q", value)
	}
	return format, nil
}

// Mapper is the single source of truth for where postseason games sit on the
// week timeline of a season.
type Mapper struct {
	format Format
	layout layout
}

func NewMapper(format Format) (Mapper, error) {
	l, ok := layouts[format]
	if !ok {
		return Mapper{}, fmt.Errorf("unknown bracket format %q", format)
	}
	return Mapper{format: format, layout: l}, nil
}

func (m Mapper) Format() Format {
	return m.format
}

func (m Mapper) BowlWeek() int {
	return m.layout.bowlWeek
}

// RoundWeek returns the canonical week for a playoff round.
func (m Mapper) RoundWeek(round game.PlayoffRound) (int, bool) {
	week, ok := m.layout.rounds[round]
	return week, ok
}

// CanonicalWeek returns the week a game belongs to under this format.
// Regular-season games keep their stored week. ok is false when the game's
// bracket metadata is too inconsistent to place it.
func (m Mapper) CanonicalWeek(g game.Game) (int, bool) {
	switch {
	case g.IsPlayoffGame:
		return m.RoundWeek(g.PlayoffRound)
	case g.PlayoffRound != game.RoundNone:
		return 0, false
	case g.IsBowlGame:
		return m.layout.bowlWeek, true
	default:
		return g.Week, true
	}
}

// PostseasonWeeks lists the distinct bowl and playoff weeks in ascending order.
func (m Mapper) PostseasonWeeks() []int {
	seen := map[int]struct{}{m.layout.bowlWeek: {}}
	for _, week := range m.layout.rounds {
		seen[week] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for week := range seen {
		out = append(out, week)
	}
	sort.Ints(out)
	return out
}
