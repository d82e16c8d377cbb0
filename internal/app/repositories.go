package app

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/eventbonus"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/fantasyteam"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/league"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/ranking"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/roster"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/school"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/schoolpoints"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/season"
	cacherepo "github.com/riskibarqy/cfb-fantasy-scoring/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/cache"
)

// Repositories is the storage surface the scoring services run against.
type Repositories struct {
	Seasons      season.Repository
	Schools      school.Repository
	Rankings     ranking.Repository
	Games        game.Repository
	SchoolPoints schoolpoints.Repository
	Leagues      league.Repository
	EventBonuses eventbonus.Repository
	Rosters      roster.Repository
	FantasyTeams fantasyteam.Repository
	Runs         scoringrun.Repository
}

// NewMemoryRepositories returns in-memory repositories loaded with the demo season.
func NewMemoryRepositories() Repositories {
	return Repositories{
		Seasons:      memory.NewSeasonRepository(memory.SeedSeasons(), memory.SeedAwards()),
		Schools:      memory.NewSchoolRepository(memory.SeedSchools()),
		Rankings:     memory.NewRankingRepository(memory.SeedRankings()),
		Games:        memory.NewGameRepository(memory.SeedGames()),
		SchoolPoints: memory.NewSchoolPointsRepository(nil),
		Leagues:      memory.NewLeagueRepository(memory.SeedLeagues()),
		EventBonuses: memory.NewEventBonusRepository(),
		Rosters:      memory.NewRosterRepository(memory.SeedRosterPeriods()),
		FantasyTeams: memory.NewFantasyTeamRepository(memory.SeedFantasyTeams()),
		Runs:         memory.NewScoringRunRepository(),
	}
}

func NewPostgresRepositories(db *sqlx.DB) Repositories {
	return Repositories{
		Seasons:      postgres.NewSeasonRepository(db),
		Schools:      postgres.NewSchoolRepository(db),
		Rankings:     postgres.NewRankingRepository(db),
		Games:        postgres.NewGameRepository(db),
		SchoolPoints: postgres.NewSchoolPointsRepository(db),
		Leagues:      postgres.NewLeagueRepository(db),
		EventBonuses: postgres.NewEventBonusRepository(db),
		Rosters:      postgres.NewRosterRepository(db),
		FantasyTeams: postgres.NewFantasyTeamRepository(db),
		Runs:         postgres.NewScoringRunRepository(db),
	}
}

// WithCache wraps the read-mostly repositories with the TTL store. The
// returned hook drops every cached entry and is meant to run after a scoring run.
func (r Repositories) WithCache(store *basecache.Store) (Repositories, func(context.Context)) {
	if store == nil {
		return r, func(context.Context) {}
	}

	r.Seasons = cacherepo.NewSeasonRepository(r.Seasons, store)
	r.Schools = cacherepo.NewSchoolRepository(r.Schools, store)
	r.Rankings = cacherepo.NewRankingRepository(r.Rankings, store)
	r.Leagues = cacherepo.NewLeagueRepository(r.Leagues, store)
	r.FantasyTeams = cacherepo.NewFantasyTeamRepository(r.FantasyTeams, store)

	return r, store.Clear
}
