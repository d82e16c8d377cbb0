package memory

import (
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/bracket"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/eventbonus"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/fantasyteam"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/league"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/ranking"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/roster"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/school"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/season"
)

const (
	SeasonID2025       = "2025"
	LeagueIDSaturday   = "saturday-stars-2025"
	LeagueIDBowlSeason = "bowl-season-2025"
)

func SeedSeasons() []season.Season {
	return []season.Season{
		{ID: SeasonID2025, Year: 2025, BracketFormat: string(bracket.FormatCFP12)},
	}
}

func SeedAwards() []season.Award {
	return []season.Award{
		{SeasonID: SeasonID2025, Kind: season.AwardHeisman, SchoolID: "ohio-state", Week: 16},
	}
}

func SeedSchools() []school.School {
	return []school.School{
		{ID: "ohio-state", Name: "Ohio State", Conference: "Big Ten"},
		{ID: "michigan", Name: "Michigan", Conference: "Big Ten"},
		{ID: "georgia", Name: "Georgia", Conference: "SEC"},
		{ID: "alabama", Name: "Alabama", Conference: "SEC"},
		{ID: "notre-dame", Name: "Notre Dame", Conference: "Independent"},
		{ID: "boise-state", Name: "Boise State", Conference: "Mountain West"},
	}
}

func SeedRankings() []ranking.Entry {
	return []ranking.Entry{
		{SeasonID: SeasonID2025, Week: 1, SchoolID: "georgia", Rank: 1},
		{SeasonID: SeasonID2025, Week: 1, SchoolID: "ohio-state", Rank: 2},
		{SeasonID: SeasonID2025, Week: 1, SchoolID: "alabama", Rank: 8},
		{SeasonID: SeasonID2025, Week: 1, SchoolID: "michigan", Rank: 14},
		{SeasonID: SeasonID2025, Week: 1, SchoolID: "notre-dame", Rank: 20},
	}
}

func score(v int) *int { return &v }

func SeedGames() []game.Game {
	return []game.Game{
		{
			ID: "2025-w01-osu-nd", SeasonID: SeasonID2025, Week: 1,
			HomeSchoolID: "ohio-state", AwaySchoolID: "notre-dame",
			HomeScore: score(31), AwayScore: score(17), Status: game.StatusFinal,
		},
		{
			ID: "2025-w02-uga-bama", SeasonID: SeasonID2025, Week: 2,
			HomeSchoolID: "georgia", AwaySchoolID: "alabama",
			HomeScore: score(27), AwayScore: score(24), Status: game.StatusFinal,
		},
		{
			ID: "2025-w13-mich-osu", SeasonID: SeasonID2025, Week: 13,
			HomeSchoolID: "michigan", AwaySchoolID: "ohio-state",
			HomeScore: score(10), AwayScore: score(24), Status: game.StatusFinal,
		},
		{
			ID: "2025-w15-sec-champ", SeasonID: SeasonID2025, Week: 15,
			HomeSchoolID: "georgia", AwaySchoolID: "alabama",
			HomeScore: score(28), AwayScore: score(7), Status: game.StatusFinal,
			IsConferenceChampionship: true,
		},
		{
			ID: "2025-bowl-boise-mich", SeasonID: SeasonID2025, Week: 17,
			HomeSchoolID: "boise-state", AwaySchoolID: "michigan",
			HomeScore: score(20), AwayScore: score(23), Status: game.StatusFinal,
			IsBowlGame: true, BowlName: "Citrus Bowl",
		},
		{
			ID: "2025-cfp-qf-osu-bama", SeasonID: SeasonID2025, Week: 18,
			HomeSchoolID: "ohio-state", AwaySchoolID: "alabama",
			HomeScore: score(38), AwayScore: score(21), Status: game.StatusFinal,
			IsBowlGame: true, IsPlayoffGame: true, PlayoffRound: game.RoundQuarterfinal,
			BowlName: "Rose Bowl (CFP Quarterfinal)",
		},
		{
			ID: "2025-cfp-sf-osu-uga", SeasonID: SeasonID2025, Week: 20,
			HomeSchoolID: "ohio-state", AwaySchoolID: "georgia",
			Status: game.StatusScheduled, IsBowlGame: true, IsPlayoffGame: true,
			PlayoffRound: game.RoundSemifinal, BowlName: "Orange Bowl (CFP Semifinal)",
		},
	}
}

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:       LeagueIDSaturday,
			Name:     "Saturday Stars",
			SeasonID: SeasonID2025,
			BonusPoints: map[eventbonus.Type]int{
				eventbonus.TypeBowlAppearance:       2,
				eventbonus.TypeCFPFirstRound:        2,
				eventbonus.TypeCFPQuarterfinal:      3,
				eventbonus.TypeCFPSemifinal:         4,
				eventbonus.TypeChampionshipWin:      6,
				eventbonus.TypeChampionshipLoss:     3,
				eventbonus.TypeConfChampionshipWin:  3,
				eventbonus.TypeConfChampionshipLoss: 1,
				eventbonus.TypeHeisman:              5,
			},
		},
		{
			ID:       LeagueIDBowlSeason,
			Name:     "Bowl Season",
			SeasonID: SeasonID2025,
			BonusPoints: map[eventbonus.Type]int{
				eventbonus.TypeBowlAppearance: 1,
			},
		},
	}
}

func SeedFantasyTeams() []fantasyteam.Team {
	return []fantasyteam.Team{
		{ID: "ss-buckeye-brigade", LeagueID: LeagueIDSaturday, Name: "Buckeye Brigade"},
		{ID: "ss-dawg-pound", LeagueID: LeagueIDSaturday, Name: "Dawg Pound"},
		{ID: "bs-underdogs", LeagueID: LeagueIDBowlSeason, Name: "Underdogs"},
	}
}

func lastWeek(v int) *int { return &v }

func SeedRosterPeriods() []roster.Period {
	return []roster.Period{
		{LeagueID: LeagueIDSaturday, TeamID: "ss-buckeye-brigade", SchoolID: "ohio-state", StartWeek: 0},
		{LeagueID: LeagueIDSaturday, TeamID: "ss-buckeye-brigade", SchoolID: "michigan", StartWeek: 0, EndWeek: lastWeek(9)},
		{LeagueID: LeagueIDSaturday, TeamID: "ss-dawg-pound", SchoolID: "michigan", StartWeek: 10},
		{LeagueID: LeagueIDSaturday, TeamID: "ss-dawg-pound", SchoolID: "georgia", StartWeek: 0},
		{LeagueID: LeagueIDSaturday, TeamID: "ss-dawg-pound", SchoolID: "alabama", StartWeek: 0},
		{LeagueID: LeagueIDBowlSeason, TeamID: "bs-underdogs", SchoolID: "boise-state", StartWeek: 0},
	}
}
