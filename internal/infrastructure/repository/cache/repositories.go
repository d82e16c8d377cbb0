package cache

import (
	"context"
	"maps"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/fantasyteam"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/league"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/ranking"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/school"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/season"
	basecache "github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/cache"
)

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	return r.list(ctx, "league:list", r.next.List)
}

func (r *LeagueRepository) ListBySeason(ctx context.Context, seasonID string) ([]league.League, error) {
	return r.list(ctx, "league:season:"+seasonID, func(ctx context.Context) ([]league.League, error) {
		return r.next.ListBySeason(ctx, seasonID)
	})
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	key := "league:id:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return copyLeague(cached.value), cached.exists, nil
}

func (r *LeagueRepository) list(ctx context.Context, key string, load func(context.Context) ([]league.League, error)) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	out := make([]league.League, 0, len(items))
	for _, item := range items {
		out = append(out, copyLeague(item))
	}
	return out, nil
}

// copyLeague detaches the bonus settings map so callers cannot mutate the cached value.
func copyLeague(item league.League) league.League {
	item.BonusPoints = maps.Clone(item.BonusPoints)
	return item
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	key := "season:id:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return cachedSeasonByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeasonByID)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) ListAwards(ctx context.Context, seasonID string) ([]season.Award, error) {
	key := "season:awards:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListAwards(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]season.Award(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]season.Award)
	return append([]season.Award(nil), items...), nil
}

type cachedSeasonByID struct {
	value  season.Season
	exists bool
}

type SchoolRepository struct {
	next  school.Repository
	cache *basecache.Store
}

func NewSchoolRepository(next school.Repository, cache *basecache.Store) *SchoolRepository {
	return &SchoolRepository{next: next, cache: cache}
}

func (r *SchoolRepository) List(ctx context.Context) ([]school.School, error) {
	v, err := r.cache.GetOrLoad(ctx, "school:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]school.School(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]school.School)
	return append([]school.School(nil), items...), nil
}

type RankingRepository struct {
	next  ranking.Repository
	cache *basecache.Store
}

func NewRankingRepository(next ranking.Repository, cache *basecache.Store) *RankingRepository {
	return &RankingRepository{next: next, cache: cache}
}

func (r *RankingRepository) ListBySeason(ctx context.Context, seasonID string) ([]ranking.Entry, error) {
	key := "ranking:season:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]ranking.Entry(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]ranking.Entry)
	return append([]ranking.Entry(nil), items...), nil
}

// FantasyTeamRepository caches team and ledger reads. Writes go straight
// through and drop the league's cached entries.
type FantasyTeamRepository struct {
	next  fantasyteam.Repository
	cache *basecache.Store
}

func NewFantasyTeamRepository(next fantasyteam.Repository, cache *basecache.Store) *FantasyTeamRepository {
	return &FantasyTeamRepository{next: next, cache: cache}
}

func (r *FantasyTeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]fantasyteam.Team, error) {
	key := "fantasy_team:league:" + leagueID + ":list"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]fantasyteam.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]fantasyteam.Team)
	return append([]fantasyteam.Team(nil), items...), nil
}

// GetByID is not cached: the team's league is unknown until loaded, so the
// entry could not be dropped by a league scoped write.
func (r *FantasyTeamRepository) GetByID(ctx context.Context, teamID string) (fantasyteam.Team, bool, error) {
	return r.next.GetByID(ctx, teamID)
}

func (r *FantasyTeamRepository) ListWeeklyPointsByLeague(ctx context.Context, leagueID string) ([]fantasyteam.WeeklyPoints, error) {
	key := "fantasy_team:league:" + leagueID + ":weekly"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListWeeklyPointsByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]fantasyteam.WeeklyPoints(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]fantasyteam.WeeklyPoints)
	return append([]fantasyteam.WeeklyPoints(nil), items...), nil
}

func (r *FantasyTeamRepository) ListWeeklyPointsByTeam(ctx context.Context, teamID string) ([]fantasyteam.WeeklyPoints, error) {
	return r.next.ListWeeklyPointsByTeam(ctx, teamID)
}

func (r *FantasyTeamRepository) ReplaceWeeklyPoints(ctx context.Context, leagueID string, week int, rows []fantasyteam.WeeklyPoints) error {
	defer r.invalidate(ctx, leagueID)
	return r.next.ReplaceWeeklyPoints(ctx, leagueID, week, rows)
}

func (r *FantasyTeamRepository) UpdateTotalPoints(ctx context.Context, leagueID string, totals map[string]int) error {
	defer r.invalidate(ctx, leagueID)
	return r.next.UpdateTotalPoints(ctx, leagueID, totals)
}

func (r *FantasyTeamRepository) invalidate(ctx context.Context, leagueID string) {
	r.cache.DeletePrefix(ctx, "fantasy_team:league:"+leagueID+":")
}
