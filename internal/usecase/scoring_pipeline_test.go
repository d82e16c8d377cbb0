package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/bracket"
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
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
)

type scoringEngine struct {
	games    *memory.GameRepository
	points   *memory.SchoolPointsRepository
	bonuses  *memory.EventBonusRepository
	teams    *memory.FantasyTeamRepository
	runs     *memory.ScoringRunRepository
	pipeline *ScoringPipeline

	schoolPoints *SchoolPointsService
	eventBonuses *EventBonusService
	teamPoints   *TeamPointsService
	standings    *StandingsService
}

func intPtr(v int) *int { return &v }

func finalGame(id string, week int, home, away string, homeScore, awayScore int) game.Game {
	return game.Game{
		ID:           id,
		SeasonID:     "2025",
		Week:         week,
		HomeSchoolID: home,
		AwaySchoolID: away,
		HomeScore:    intPtr(homeScore),
		AwayScore:    intPtr(awayScore),
		Status:       game.StatusFinal,
	}
}

func fixtureGames() []game.Game {
	quarterfinal := finalGame("g3", 18, "school-a", "school-c", 21, 14)
	quarterfinal.IsBowlGame = true
	quarterfinal.IsPlayoffGame = true
	quarterfinal.PlayoffRound = game.RoundQuarterfinal
	quarterfinal.BowlName = "Sugar Bowl (CFP Quarterfinal)"

	return []game.Game{
		finalGame("g1", 1, "school-a", "school-b", 35, 0),
		finalGame("g2", 2, "school-c", "school-d", 60, 3),
		quarterfinal,
	}
}

func newScoringEngine(t *testing.T, games []game.Game, extraLeagues ...league.League) *scoringEngine {
	t.Helper()

	logger := logging.NewNop()
	seasons := memory.NewSeasonRepository([]season.Season{
		{ID: "2025", Year: 2025, BracketFormat: string(bracket.FormatCFP12)},
	}, nil)
	schools := memory.NewSchoolRepository([]school.School{
		{ID: "school-a", Name: "A", Conference: "SEC"},
		{ID: "school-b", Name: "B", Conference: "SEC"},
		{ID: "school-c", Name: "C", Conference: "Big Ten"},
		{ID: "school-d", Name: "D", Conference: "Big Ten"},
	})
	rankings := memory.NewRankingRepository([]ranking.Entry{
		{SeasonID: "2025", Week: 1, SchoolID: "school-b", Rank: 5},
	})
	leagues := memory.NewLeagueRepository(append([]league.League{{
		ID:       "l1",
		Name:     "League One",
		SeasonID: "2025",
		BonusPoints: map[eventbonus.Type]int{
			eventbonus.TypeBowlAppearance:  2,
			eventbonus.TypeCFPQuarterfinal: 3,
		},
	}}, extraLeagues...))
	rosters := memory.NewRosterRepository([]roster.Period{
		{LeagueID: "l1", TeamID: "t1", SchoolID: "school-a", StartWeek: 0},
		{LeagueID: "l1", TeamID: "t1", SchoolID: "school-d", StartWeek: 0, EndWeek: intPtr(1)},
		{LeagueID: "l1", TeamID: "t2", SchoolID: "school-d", StartWeek: 2},
		{LeagueID: "l1", TeamID: "t2", SchoolID: "school-c", StartWeek: 0},
		{LeagueID: "l1", TeamID: "t2", SchoolID: "school-b", StartWeek: 0},
	})

	e := &scoringEngine{
		games:   memory.NewGameRepository(games),
		points:  memory.NewSchoolPointsRepository(nil),
		bonuses: memory.NewEventBonusRepository(),
		teams: memory.NewFantasyTeamRepository([]fantasyteam.Team{
			{ID: "t1", LeagueID: "l1", Name: "Team One"},
			{ID: "t2", LeagueID: "l1", Name: "Team Two"},
		}),
		runs: memory.NewScoringRunRepository(),
	}

	brackets := NewBracketService(seasons, e.games, bracket.DefaultFormat, nil, logger)
	e.schoolPoints = NewSchoolPointsService(seasons, schools, rankings, e.games, e.points, nil, logger)
	e.eventBonuses = NewEventBonusService(leagues, seasons, e.games, e.bonuses, brackets, nil, logger)
	e.teamPoints = NewTeamPointsService(leagues, e.teams, rosters, e.points, e.bonuses, nil, logger)
	e.standings = NewStandingsService(leagues, e.teams, nil, logger)
	e.pipeline = NewScoringPipeline(ScoringPipelineDeps{
		Brackets:     brackets,
		SchoolPoints: e.schoolPoints,
		EventBonuses: e.eventBonuses,
		Ownership:    NewOwnershipService(rosters, logger),
		TeamPoints:   e.teamPoints,
		Standings:    e.standings,
		SeasonRepo:   seasons,
		LeagueRepo:   leagues,
		GameRepo:     e.games,
		RunRepo:      e.runs,
		Logger:       logger,
	}, ScoringPipelineConfig{MaxWorkers: 2})
	return e
}

type engineState struct {
	points  []schoolpoints.WeeklyPoints
	bonuses []eventbonus.Bonus
	weekly  []fantasyteam.WeeklyPoints
	teams   []fantasyteam.Team
}

func (e *scoringEngine) snapshot(t *testing.T) engineState {
	t.Helper()
	ctx := context.Background()

	points, err := e.points.ListBySeason(ctx, "2025")
	if err != nil {
		t.Fatalf("list points: %v", err)
	}
	bonuses, err := e.bonuses.ListByLeagueSeason(ctx, "l1", "2025")
	if err != nil {
		t.Fatalf("list bonuses: %v", err)
	}
	weekly, err := e.teams.ListWeeklyPointsByLeague(ctx, "l1")
	if err != nil {
		t.Fatalf("list weekly: %v", err)
	}
	teams, err := e.teams.ListByLeague(ctx, "l1")
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	return engineState{points: points, bonuses: bonuses, weekly: weekly, teams: teams}
}

func seasonRequest() scoringrun.Request {
	return scoringrun.Request{Mode: scoringrun.ModeSeason, SeasonID: "2025"}
}

func teamTotal(teams []fantasyteam.Team, id string) int {
	for _, t := range teams {
		if t.ID == id {
			return t.TotalPoints
		}
	}
	return -1
}

func TestScoringPipeline_SeasonRun(t *testing.T) {
	t.Parallel()

	e := newScoringEngine(t, fixtureGames())
	summary, err := e.pipeline.Run(context.Background(), seasonRequest())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.Status != scoringrun.StatusSuccess || summary.SuccessCount != 6 || summary.FailedCount != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.RunID == "" || summary.Week != nil {
		t.Fatalf("unexpected run identity: %+v", summary)
	}
	wantRecords := map[string]int{
		scoringrun.StageBracket:      1,
		scoringrun.StageSchoolPoints: 6,
		scoringrun.StageEventBonus:   4,
		scoringrun.StageOwnership:    3,
		scoringrun.StageTeamPoints:   6,
		scoringrun.StageStandings:    2,
	}
	for i, stage := range summary.Stages {
		if stage.Stage != stageOrder[i] {
			t.Fatalf("stage %d out of order: %s", i, stage.Stage)
		}
		if stage.Records != wantRecords[stage.Stage] {
			t.Fatalf("stage %s records=%d want=%d", stage.Stage, stage.Records, wantRecords[stage.Stage])
		}
	}

	state := e.snapshot(t)
	if got := teamTotal(state.teams, "t1"); got != 11 {
		t.Fatalf("unexpected t1 total: %d", got)
	}
	if got := teamTotal(state.teams, "t2"); got != 8 {
		t.Fatalf("unexpected t2 total: %d", got)
	}

	stored, err := e.pipeline.GetRun(context.Background(), summary.RunID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if stored.Status != summary.Status || len(stored.Stages) != len(summary.Stages) {
		t.Fatalf("persisted summary differs: %+v", stored)
	}
}

func TestScoringPipeline_QuarterfinalRemappedAndCredited(t *testing.T) {
	t.Parallel()

	e := newScoringEngine(t, fixtureGames())
	if _, err := e.pipeline.Run(context.Background(), seasonRequest()); err != nil {
		t.Fatalf("run: %v", err)
	}

	moved, err := e.games.ListBySeasonWeek(context.Background(), "2025", 19)
	if err != nil {
		t.Fatalf("list week 19: %v", err)
	}
	if len(moved) != 1 || moved[0].ID != "g3" {
		t.Fatalf("quarterfinal must be stored at week 19: %+v", moved)
	}

	state := e.snapshot(t)
	found := map[eventbonus.Key]int{}
	for _, b := range state.bonuses {
		found[b.Key()] = b.Points
	}
	want := map[eventbonus.Key]int{
		{LeagueID: "l1", SchoolID: "school-a", SeasonID: "2025", Week: 17, Type: eventbonus.TypeBowlAppearance}:  2,
		{LeagueID: "l1", SchoolID: "school-c", SeasonID: "2025", Week: 17, Type: eventbonus.TypeBowlAppearance}:  2,
		{LeagueID: "l1", SchoolID: "school-a", SeasonID: "2025", Week: 19, Type: eventbonus.TypeCFPQuarterfinal}: 3,
		{LeagueID: "l1", SchoolID: "school-c", SeasonID: "2025", Week: 19, Type: eventbonus.TypeCFPQuarterfinal}: 3,
	}
	if !reflect.DeepEqual(found, want) {
		t.Fatalf("unexpected bonuses:\nwant %+v\ngot  %+v", want, found)
	}
}

func TestScoringPipeline_IdempotentRerun(t *testing.T) {
	t.Parallel()

	e := newScoringEngine(t, fixtureGames())
	ctx := context.Background()
	if _, err := e.pipeline.Run(ctx, seasonRequest()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := e.snapshot(t)

	second, err := e.pipeline.Run(ctx, seasonRequest())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Stages[0].Records != 0 {
		t.Fatalf("bracket pass must be a no-op on rerun, got %d changes", second.Stages[0].Records)
	}
	if !reflect.DeepEqual(first, e.snapshot(t)) {
		t.Fatalf("rerun changed derived state")
	}
}

func TestScoringPipeline_TotalsEqualWeeklySums(t *testing.T) {
	t.Parallel()

	e := newScoringEngine(t, fixtureGames())
	if _, err := e.pipeline.Run(context.Background(), seasonRequest()); err != nil {
		t.Fatalf("run: %v", err)
	}

	state := e.snapshot(t)
	sums := map[string]int{}
	for _, row := range state.weekly {
		if row.Points == 0 {
			t.Fatalf("zero-point rows must not be stored: %+v", row)
		}
		sums[row.TeamID] += row.Points
	}
	for _, team := range state.teams {
		if team.TotalPoints != sums[team.ID] {
			t.Fatalf("team %s total=%d weekly sum=%d", team.ID, team.TotalPoints, sums[team.ID])
		}
	}
}

func TestScoringPipeline_OwnershipHandoff(t *testing.T) {
	t.Parallel()

	e := newScoringEngine(t, fixtureGames())
	if _, err := e.pipeline.Run(context.Background(), seasonRequest()); err != nil {
		t.Fatalf("run: %v", err)
	}

	t1, err := e.teamPoints.ListTeamWeeklyPoints(context.Background(), "l1", "t1")
	if err != nil {
		t.Fatalf("list t1: %v", err)
	}
	for _, row := range t1 {
		if row.Week == 2 {
			t.Fatalf("school-d points in week 2 belong to t2, got t1 row %+v", row)
		}
	}

	t2, err := e.teamPoints.ListTeamWeeklyPoints(context.Background(), "l1", "t2")
	if err != nil {
		t.Fatalf("list t2: %v", err)
	}
	if len(t2) == 0 || t2[0].Week != 2 || t2[0].Points != 3 || !t2[0].IsHighPointsWinner {
		t.Fatalf("unexpected t2 rows: %+v", t2)
	}
}

func TestScoringPipeline_LeagueModeDropsStaleBonuses(t *testing.T) {
	t.Parallel()

	e := newScoringEngine(t, fixtureGames())
	ctx := context.Background()
	if _, err := e.pipeline.Run(ctx, seasonRequest()); err != nil {
		t.Fatalf("season run: %v", err)
	}

	corrected := finalGame("g3", 19, "school-a", "school-d", 21, 14)
	corrected.IsBowlGame = true
	corrected.IsPlayoffGame = true
	corrected.PlayoffRound = game.RoundQuarterfinal
	corrected.BowlName = "Sugar Bowl (CFP Quarterfinal)"
	e.games.Upsert(corrected)

	summary, err := e.pipeline.Run(ctx, scoringrun.Request{Mode: scoringrun.ModeLeague, SeasonID: "2025", LeagueID: "l1"})
	if err != nil {
		t.Fatalf("league run: %v", err)
	}
	if summary.Stages[0].Status != scoringrun.StatusSkipped || summary.Stages[1].Status != scoringrun.StatusSkipped {
		t.Fatalf("league mode must skip bracket and school stages: %+v", summary.Stages)
	}

	for _, b := range e.snapshot(t).bonuses {
		if b.SchoolID == "school-c" {
			t.Fatalf("stale bonus for dropped participant: %+v", b)
		}
	}
	items, err := e.eventBonuses.ListByLeague(ctx, "l1")
	if err != nil {
		t.Fatalf("list bonuses: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 bonuses after correction, got %+v", items)
	}
}

func TestScoringPipeline_WeekModeRecomputes(t *testing.T) {
	t.Parallel()

	e := newScoringEngine(t, fixtureGames())
	ctx := context.Background()
	if _, err := e.pipeline.Run(ctx, seasonRequest()); err != nil {
		t.Fatalf("season run: %v", err)
	}

	e.games.Upsert(finalGame("g1", 1, "school-a", "school-b", 20, 17))
	summary, err := e.pipeline.Run(ctx, scoringrun.Request{Mode: scoringrun.ModeWeek, SeasonID: "2025", Week: 1})
	if err != nil {
		t.Fatalf("week run: %v", err)
	}
	if summary.Week == nil || *summary.Week != 1 {
		t.Fatalf("week must be recorded on the summary: %+v", summary)
	}

	rows, err := e.schoolPoints.ListSchoolPoints(ctx, "2025", "school-a")
	if err != nil {
		t.Fatalf("list school points: %v", err)
	}
	if len(rows) == 0 || rows[0].Week != 1 || rows[0].ShutoutBonus != 0 || rows[0].TotalPoints != 4 {
		t.Fatalf("unexpected week 1 row: %+v", rows)
	}

	standings, err := e.standings.Standings(ctx, "l1")
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if standings[0].Team.ID != "t1" || standings[0].Team.TotalPoints != 10 {
		t.Fatalf("unexpected standings: %+v", standings)
	}
}

func TestScoringPipeline_WeekModeClearsWeekAfterRoundCorrection(t *testing.T) {
	t.Parallel()

	games := fixtureGames()
	games[2].PlayoffRound = game.RoundFirstRound
	games[2].BowlName = "CFP First Round"
	e := newScoringEngine(t, games)
	ctx := context.Background()
	if _, err := e.pipeline.Run(ctx, seasonRequest()); err != nil {
		t.Fatalf("season run: %v", err)
	}

	// The feed corrects g3 to a quarterfinal; it is still stored at week 18.
	corrected := fixtureGames()[2]
	e.games.Upsert(corrected)
	if _, err := e.pipeline.Run(ctx, scoringrun.Request{Mode: scoringrun.ModeWeek, SeasonID: "2025", Week: 19}); err != nil {
		t.Fatalf("week run: %v", err)
	}

	state := e.snapshot(t)
	for _, row := range state.points {
		if row.SourceGameID == "g3" && row.Week != 19 {
			t.Fatalf("g3 still credited at week %d: %+v", row.Week, row)
		}
	}

	want := newScoringEngine(t, fixtureGames())
	if _, err := want.pipeline.Run(ctx, seasonRequest()); err != nil {
		t.Fatalf("reference season run: %v", err)
	}
	if !reflect.DeepEqual(state, want.snapshot(t)) {
		t.Fatalf("week run after correction diverges from a season recompute:\nwant %+v\ngot  %+v", want.snapshot(t), state)
	}
}

func TestScoringPipeline_WeekModeFollowsRescheduledGame(t *testing.T) {
	t.Parallel()

	e := newScoringEngine(t, fixtureGames())
	ctx := context.Background()
	if _, err := e.pipeline.Run(ctx, seasonRequest()); err != nil {
		t.Fatalf("season run: %v", err)
	}

	// g2 is rescheduled from week 2 to week 3; only week 3 is requested.
	e.games.Upsert(finalGame("g2", 3, "school-c", "school-d", 60, 3))
	summary, err := e.pipeline.Run(ctx, scoringrun.Request{Mode: scoringrun.ModeWeek, SeasonID: "2025", Week: 3})
	if err != nil {
		t.Fatalf("week run: %v", err)
	}
	if summary.Status != scoringrun.StatusSuccess {
		t.Fatalf("unexpected status: %+v", summary)
	}

	rows, err := e.points.ListBySeasonWeek(ctx, "2025", 2)
	if err != nil {
		t.Fatalf("list week 2: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("week 2 must be emptied, got %+v", rows)
	}

	games := fixtureGames()
	games[1] = finalGame("g2", 3, "school-c", "school-d", 60, 3)
	want := newScoringEngine(t, games)
	if _, err := want.pipeline.Run(ctx, seasonRequest()); err != nil {
		t.Fatalf("reference season run: %v", err)
	}
	if !reflect.DeepEqual(e.snapshot(t), want.snapshot(t)) {
		t.Fatalf("week run after reschedule diverges from a season recompute")
	}
}

func TestScoringPipeline_InvalidLeagueSettingsAreDataIntegrity(t *testing.T) {
	t.Parallel()

	broken := league.League{
		ID:          "l-bad",
		Name:        "Broken Settings",
		SeasonID:    "2025",
		BonusPoints: map[eventbonus.Type]int{"mvp": 4, eventbonus.TypeBowlAppearance: -1},
	}
	e := newScoringEngine(t, fixtureGames(), broken)
	ctx := context.Background()

	if _, err := e.eventBonuses.ResolveSeason(ctx, "l-bad"); !errors.Is(err, ErrDataIntegrity) {
		t.Fatalf("expected ErrDataIntegrity from bonus resolution, got %v", err)
	}
	if _, err := e.teamPoints.RecalculateSeason(ctx, "l-bad"); !errors.Is(err, ErrDataIntegrity) {
		t.Fatalf("expected ErrDataIntegrity from team points, got %v", err)
	}

	summary, err := e.pipeline.Run(ctx, seasonRequest())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var found bool
	for _, issue := range summary.Issues {
		if issue.Kind == scoringrun.IssueDataIntegrity && issue.Entity == "league=l-bad" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected data integrity issue for l-bad: %+v", summary.Issues)
	}
	bonuses, err := e.bonuses.ListByLeagueSeason(ctx, "l-bad", "2025")
	if err != nil {
		t.Fatalf("list bonuses: %v", err)
	}
	if len(bonuses) != 0 {
		t.Fatalf("no bonus may be written for invalid settings: %+v", bonuses)
	}
}

func TestScoringPipeline_UnknownSchoolIsReported(t *testing.T) {
	t.Parallel()

	games := append(fixtureGames(), finalGame("g9", 1, "school-a", "school-x", 14, 7))
	e := newScoringEngine(t, games)

	summary, err := e.pipeline.Run(context.Background(), seasonRequest())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Status != scoringrun.StatusFailed || summary.Stages[1].Status != scoringrun.StatusFailed {
		t.Fatalf("expected failed school stage: %+v", summary.Stages)
	}

	var found bool
	for _, issue := range summary.Issues {
		if issue.Kind == scoringrun.IssueNotFound && issue.Entity == "game=g9" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected not_found issue for g9: %+v", summary.Issues)
	}
	if summary.Stages[5].Status != scoringrun.StatusSuccess {
		t.Fatalf("later stages must still run: %+v", summary.Stages)
	}
}

func TestScoringPipeline_RejectsBadRequests(t *testing.T) {
	t.Parallel()

	other := league.League{ID: "l-2024", Name: "Old", SeasonID: "2024"}
	e := newScoringEngine(t, fixtureGames(), other)
	ctx := context.Background()

	if _, err := e.pipeline.Run(ctx, scoringrun.Request{Mode: scoringrun.ModeSeason, SeasonID: "1999"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing season, got %v", err)
	}
	if _, err := e.pipeline.Run(ctx, scoringrun.Request{Mode: scoringrun.ModeLeague, SeasonID: "2025", LeagueID: "nope"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing league, got %v", err)
	}
	if _, err := e.pipeline.Run(ctx, scoringrun.Request{Mode: scoringrun.ModeLeague, SeasonID: "2025", LeagueID: "l-2024"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for league of another season, got %v", err)
	}
	if _, err := e.pipeline.Run(ctx, scoringrun.Request{Mode: "all", SeasonID: "2025"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown mode, got %v", err)
	}
}

func TestScoringPipeline_RecoversPanics(t *testing.T) {
	t.Parallel()

	p := NewScoringPipeline(ScoringPipelineDeps{Logger: logging.NewNop()}, ScoringPipelineConfig{})
	outcome := p.runGuarded(scoringrun.StageTeamPoints, "league=l1", func() (StageOutcome, error) {
		var teams map[string]int
		teams["t1"] = 1
		return StageOutcome{}, nil
	})

	if outcome.Failures != 1 || len(outcome.Issues) != 1 || outcome.Issues[0].Kind != scoringrun.IssueInternal {
		t.Fatalf("expected recovered panic to be a failure: %+v", outcome)
	}
}

func TestNormalizeScoringWorkerCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value, tasks, want int
	}{
		{value: 0, tasks: 5, want: 1},
		{value: 4, tasks: 2, want: 2},
		{value: 100, tasks: 100, want: maxScoringWorkers},
		{value: 3, tasks: 0, want: 1},
	}
	for _, tc := range cases {
		if got := normalizeScoringWorkerCount(tc.value, tc.tasks); got != tc.want {
			t.Fatalf("normalizeScoringWorkerCount(%d, %d)=%d want=%d", tc.value, tc.tasks, got, tc.want)
		}
	}
}
