package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/eventbonus"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/fantasyteam"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/league"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/cache"
)

type countingLeagueRepo struct {
	league.Repository
	gets int
}

func (r *countingLeagueRepo) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	r.gets++
	return r.Repository.GetByID(ctx, leagueID)
}

func TestLeagueRepository_CachesAndDetachesBonusMap(t *testing.T) {
	next := &countingLeagueRepo{Repository: memory.NewLeagueRepository([]league.League{{
		ID:          "l1",
		Name:        "League",
		SeasonID:    "2025",
		BonusPoints: map[eventbonus.Type]int{eventbonus.TypeHeisman: 5},
	}})}
	repo := NewLeagueRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	first, ok, err := repo.GetByID(ctx, "l1")
	if err != nil || !ok {
		t.Fatalf("get league: ok=%t err=%v", ok, err)
	}
	first.BonusPoints[eventbonus.TypeHeisman] = 99

	second, _, err := repo.GetByID(ctx, "l1")
	if err != nil {
		t.Fatalf("get league again: %v", err)
	}
	if next.gets != 1 {
		t.Fatalf("expected one underlying read, got %d", next.gets)
	}
	if second.BonusValue(eventbonus.TypeHeisman) != 5 {
		t.Fatalf("cached league was mutated through a returned map")
	}

	_, ok, err = repo.GetByID(ctx, "missing")
	if err != nil || ok {
		t.Fatalf("expected cached miss, ok=%t err=%v", ok, err)
	}
}

type countingTeamRepo struct {
	fantasyteam.Repository
	lists int
}

func (r *countingTeamRepo) ListByLeague(ctx context.Context, leagueID string) ([]fantasyteam.Team, error) {
	r.lists++
	return r.Repository.ListByLeague(ctx, leagueID)
}

func TestFantasyTeamRepository_WriteInvalidatesLeague(t *testing.T) {
	next := &countingTeamRepo{Repository: memory.NewFantasyTeamRepository([]fantasyteam.Team{
		{ID: "t1", LeagueID: "l1", Name: "One"},
		{ID: "t2", LeagueID: "l2", Name: "Two"},
	})}
	store := basecache.NewStore(time.Minute)
	repo := NewFantasyTeamRepository(next, store)
	ctx := context.Background()

	if _, err := repo.ListByLeague(ctx, "l1"); err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if _, err := repo.ListByLeague(ctx, "l2"); err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if err := repo.UpdateTotalPoints(ctx, "l1", map[string]int{"t1": 12}); err != nil {
		t.Fatalf("update totals: %v", err)
	}

	teams, err := repo.ListByLeague(ctx, "l1")
	if err != nil {
		t.Fatalf("list teams after write: %v", err)
	}
	if len(teams) != 1 || teams[0].TotalPoints != 12 {
		t.Fatalf("expected fresh total after write, got %+v", teams)
	}
	if _, err := repo.ListByLeague(ctx, "l2"); err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if next.lists != 3 {
		t.Fatalf("expected 3 underlying reads (l1, l2, l1 after write), got %d", next.lists)
	}
}
