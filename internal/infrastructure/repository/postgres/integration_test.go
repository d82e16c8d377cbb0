package postgres_test

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/app"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/schoolpoints"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func migrationsSourceURL(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "resolve test file path")
	dir := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "db", "migrations")
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	return "file://" + filepath.ToSlash(abs)
}

// newTestDB starts a throwaway Postgres, applies every migration and returns a
// traced pool against it.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test skipped in -short mode")
	}

	ctx := context.Background()
	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("cfb_scoring_test"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := migrate.New(migrationsSourceURL(t), dsn)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("migrate up: %v", err)
	}
	srcErr, dbErr := m.Close()
	require.NoError(t, srcErr)
	require.NoError(t, dbErr)

	db, err := app.OpenPostgres(ctx, dsn, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, postgres.BootstrapSeed(ctx, db))
	// Second call must be a no-op on a seeded database.
	require.NoError(t, postgres.BootstrapSeed(ctx, db))

	return db
}

func teamTotals(t *testing.T, svc app.Services, leagueID string) map[string]int {
	t.Helper()

	standings, err := svc.Standings.Standings(context.Background(), leagueID)
	require.NoError(t, err)
	out := make(map[string]int, len(standings))
	for _, item := range standings {
		out[item.Team.ID] = item.Team.TotalPoints
	}
	return out
}

func TestPostgres_SeasonRunMatchesMemory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	logger := logging.NewNop()

	pgSvc, err := app.NewServices(app.NewPostgresRepositories(db), app.ScoringOptions{MaxWorkers: 2}, logger)
	require.NoError(t, err)
	memSvc, err := app.NewServices(app.NewMemoryRepositories(), app.ScoringOptions{MaxWorkers: 2}, logger)
	require.NoError(t, err)

	req := scoringrun.Request{Mode: scoringrun.ModeSeason, SeasonID: memory.SeasonID2025}
	pgSummary, err := pgSvc.Pipeline.Run(ctx, req)
	require.NoError(t, err)
	memSummary, err := memSvc.Pipeline.Run(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, memSummary.Status, pgSummary.Status)
	for _, leagueID := range []string{memory.LeagueIDSaturday, memory.LeagueIDBowlSeason} {
		assert.Equal(t, teamTotals(t, memSvc, leagueID), teamTotals(t, pgSvc, leagueID), "league %s", leagueID)
	}

	// A second run over unchanged inputs leaves every total as it was.
	before := teamTotals(t, pgSvc, memory.LeagueIDSaturday)
	_, err = pgSvc.Pipeline.Run(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, before, teamTotals(t, pgSvc, memory.LeagueIDSaturday))

	stored, err := pgSvc.Pipeline.GetRun(ctx, pgSummary.RunID)
	require.NoError(t, err)
	assert.Equal(t, pgSummary.RunID, stored.RunID)
	assert.Equal(t, pgSummary.Mode, stored.Mode)
	assert.Len(t, stored.Stages, len(pgSummary.Stages))
}

func TestPostgres_GameRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgres.NewGameRepository(db)

	err := repo.UpdateWeek(ctx, "no-such-game", 3)
	require.Error(t, err)

	home, away := 14, 10
	item := game.Game{
		ID:           "2025-w03-nd-boise",
		SeasonID:     memory.SeasonID2025,
		Week:         3,
		HomeSchoolID: "notre-dame",
		AwaySchoolID: "boise-state",
		HomeScore:    &home,
		AwayScore:    &away,
		Status:       game.StatusFinal,
	}
	require.NoError(t, repo.Upsert(ctx, item))

	item.Week = 4
	require.NoError(t, repo.Upsert(ctx, item))

	week3, err := repo.ListBySeasonWeek(ctx, memory.SeasonID2025, 3)
	require.NoError(t, err)
	assert.Empty(t, week3)

	week4, err := repo.ListBySeasonWeek(ctx, memory.SeasonID2025, 4)
	require.NoError(t, err)
	require.Len(t, week4, 1)
	assert.Equal(t, item.ID, week4[0].ID)
	require.NotNil(t, week4[0].HomeScore)
	assert.Equal(t, 14, *week4[0].HomeScore)

	require.NoError(t, repo.UpdateWeek(ctx, item.ID, 5))
	week5, err := repo.ListBySeasonWeek(ctx, memory.SeasonID2025, 5)
	require.NoError(t, err)
	assert.Len(t, week5, 1)
}

func TestPostgres_SchoolPointsReplaceWeekRetains(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgres.NewSchoolPointsRepository(db)

	row := func(schoolID string, base int) schoolpoints.WeeklyPoints {
		return schoolpoints.WeeklyPoints{
			SchoolID:    schoolID,
			SeasonID:    memory.SeasonID2025,
			Week:        9,
			BasePoints:  base,
			TotalPoints: base,
		}
	}

	require.NoError(t, repo.ReplaceWeek(ctx, memory.SeasonID2025, 9, []schoolpoints.WeeklyPoints{
		row("georgia", 2),
		row("alabama", 1),
	}, nil))

	// alabama is retained untouched, georgia is overwritten.
	require.NoError(t, repo.ReplaceWeek(ctx, memory.SeasonID2025, 9, []schoolpoints.WeeklyPoints{
		row("georgia", 3),
	}, []string{"alabama"}))

	rows, err := repo.ListBySeasonWeek(ctx, memory.SeasonID2025, 9)
	require.NoError(t, err)
	got := make(map[string]int, len(rows))
	for _, r := range rows {
		got[r.SchoolID] = r.TotalPoints
	}
	assert.Equal(t, map[string]int{"georgia": 3, "alabama": 1}, got)

	require.NoError(t, repo.ReplaceWeek(ctx, memory.SeasonID2025, 9, nil, nil))
	rows, err = repo.ListBySeasonWeek(ctx, memory.SeasonID2025, 9)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPostgres_ReferenceReads(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	leagues, err := postgres.NewLeagueRepository(db).ListBySeason(ctx, memory.SeasonID2025)
	require.NoError(t, err)
	ids := make([]string, 0, len(leagues))
	for _, item := range leagues {
		ids = append(ids, item.ID)
	}
	sort.Strings(ids)
	assert.Equal(t, []string{memory.LeagueIDBowlSeason, memory.LeagueIDSaturday}, ids)

	periods, err := postgres.NewRosterRepository(db).ListByLeague(ctx, memory.LeagueIDSaturday)
	require.NoError(t, err)
	assert.Len(t, periods, 5)

	awards, err := postgres.NewSeasonRepository(db).ListAwards(ctx, memory.SeasonID2025)
	require.NoError(t, err)
	require.Len(t, awards, 1)
	assert.Equal(t, "ohio-state", awards[0].SchoolID)

	_, exists, err := postgres.NewScoringRunRepository(db).GetByID(ctx, "missing-run")
	require.NoError(t, err)
	assert.False(t, exists)
}
