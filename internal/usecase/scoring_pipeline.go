package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/bracket"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/league"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/season"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/id"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
)

var stageOrder = []string{
	scoringrun.StageBracket,
	scoringrun.StageSchoolPoints,
	scoringrun.StageEventBonus,
	scoringrun.StageOwnership,
	scoringrun.StageTeamPoints,
	scoringrun.StageStandings,
}

const maxScoringWorkers = 16

type ScoringPipelineConfig struct {
	MaxWorkers int
}

type ScoringPipelineDeps struct {
	Brackets     *BracketService
	SchoolPoints *SchoolPointsService
	EventBonuses *EventBonusService
	Ownership    *OwnershipService
	TeamPoints   *TeamPointsService
	Standings    *StandingsService
	SeasonRepo   season.Repository
	LeagueRepo   league.Repository
	GameRepo     game.Repository
	RunRepo      scoringrun.Repository
	IDGenerator  id.Generator
	Logger       *logging.Logger
	// AfterRun hooks run once a summary is persisted, e.g. read cache resets.
	AfterRun []func(context.Context)
}

// ScoringPipeline runs the scoring stages in dependency order over a week,
// a season or a single league. Leagues are processed on a bounded pool.
type ScoringPipeline struct {
	deps ScoringPipelineDeps
	cfg  ScoringPipelineConfig
	now  func() time.Time
}

func NewScoringPipeline(deps ScoringPipelineDeps, cfg ScoringPipelineConfig) *ScoringPipeline {
	if deps.Logger == nil {
		deps.Logger = logging.Default()
	}
	if deps.IDGenerator == nil {
		deps.IDGenerator = id.NewUUIDGenerator()
	}
	return &ScoringPipeline{
		deps: deps,
		cfg:  cfg,
		now:  time.Now,
	}
}

func (p *ScoringPipeline) Run(ctx context.Context, req scoringrun.Request) (scoringrun.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringPipeline.Run")
	defer span.End()

	req.SeasonID = strings.TrimSpace(req.SeasonID)
	req.LeagueID = strings.TrimSpace(req.LeagueID)
	if err := req.Validate(); err != nil {
		return scoringrun.Summary{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := p.deps.SeasonRepo.GetByID(ctx, req.SeasonID)
	if err != nil {
		return scoringrun.Summary{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return scoringrun.Summary{}, fmt.Errorf("%w: season=%s", ErrNotFound, req.SeasonID)
	}

	leagues, err := p.resolveLeagues(ctx, req)
	if err != nil {
		return scoringrun.Summary{}, err
	}

	runID, err := p.deps.IDGenerator.NewID()
	if err != nil {
		return scoringrun.Summary{}, fmt.Errorf("generate run id: %w", err)
	}

	summary := scoringrun.Summary{
		RunID:     runID,
		Mode:      req.Mode,
		SeasonID:  req.SeasonID,
		LeagueID:  req.LeagueID,
		StartedAt: p.now().UTC(),
	}
	if req.Mode == scoringrun.ModeWeek {
		week := req.Week
		summary.Week = &week
	}

	logger := p.deps.Logger.With("run_id", runID, "mode", string(req.Mode), "season_id", req.SeasonID)
	logger.InfoContext(ctx, "scoring run started", "leagues", len(leagues))

	outcomes := make(map[string]StageOutcome, len(stageOrder))
	durations := make(map[string]time.Duration, len(stageOrder))
	skipped := make(map[string]string)
	// weeks is the week-mode scope: the requested week plus any week a game
	// moved into or out of.
	weeks := []int{req.Week}

	if req.Mode == scoringrun.ModeLeague {
		skipped[scoringrun.StageBracket] = "league mode reuses the stored bracket"
		skipped[scoringrun.StageSchoolPoints] = "league mode leaves school points untouched"
	} else {
		var moved []bracket.WeekChange
		start := time.Now()
		outcomes[scoringrun.StageBracket] = p.runSeasonStage(scoringrun.StageBracket, req.SeasonID, func() (StageOutcome, error) {
			result, err := p.deps.Brackets.NormalizeSeason(ctx, req.SeasonID)
			moved = result.Changes
			return result.StageOutcome, err
		})
		durations[scoringrun.StageBracket] = time.Since(start)

		if req.Mode == scoringrun.ModeWeek {
			scope, err := p.weekScope(ctx, req, moved)
			if err != nil {
				return scoringrun.Summary{}, err
			}
			weeks = scope
			if len(weeks) > 1 {
				logger.InfoContext(ctx, "week run widened to moved weeks", "weeks", weeks)
			}
		}

		start = time.Now()
		outcomes[scoringrun.StageSchoolPoints] = p.runSeasonStage(scoringrun.StageSchoolPoints, req.SeasonID, func() (StageOutcome, error) {
			if req.Mode == scoringrun.ModeWeek {
				return p.deps.SchoolPoints.RecalculateWeeks(ctx, req.SeasonID, weeks)
			}
			return p.deps.SchoolPoints.RecalculateSeason(ctx, req.SeasonID)
		})
		durations[scoringrun.StageSchoolPoints] = time.Since(start)
	}

	if len(leagues) == 0 {
		for _, stage := range stageOrder[2:] {
			skipped[stage] = "no leagues in scope"
		}
	} else {
		if req.Mode != scoringrun.ModeWeek {
			seasonWeeks, err := p.seasonWeeks(ctx, req.SeasonID)
			if err != nil {
				return scoringrun.Summary{}, err
			}
			weeks = seasonWeeks
		}
		leagueOutcomes, leagueDurations, err := p.runLeagues(ctx, req, leagues, weeks)
		if err != nil {
			return scoringrun.Summary{}, err
		}
		for stage, outcome := range leagueOutcomes {
			outcomes[stage] = outcome
			durations[stage] = leagueDurations[stage]
		}
	}

	for _, stage := range stageOrder {
		if message, ok := skipped[stage]; ok {
			summary.Stages = append(summary.Stages, scoringrun.StageResult{
				Stage:   stage,
				Status:  scoringrun.StatusSkipped,
				Message: message,
			})
			continue
		}
		outcome := outcomes[stage]
		result := outcome.result(stage)
		result.DurationMs = durations[stage].Milliseconds()
		summary.Stages = append(summary.Stages, result)
		summary.Issues = append(summary.Issues, outcome.Issues...)
	}
	sortIssues(summary.Issues)
	summary.Finalize(p.now().UTC())

	if p.deps.RunRepo != nil {
		if err := p.deps.RunRepo.Save(ctx, summary); err != nil {
			logger.ErrorContext(ctx, "persist scoring run failed", "error", err)
		}
	}
	for _, hook := range p.deps.AfterRun {
		hook(ctx)
	}

	logger.InfoContext(ctx, "scoring run finished",
		"status", summary.Status,
		"success_count", summary.SuccessCount,
		"skipped_count", summary.SkippedCount,
		"failed_count", summary.FailedCount,
		"issues", len(summary.Issues),
	)
	return summary, nil
}

func (p *ScoringPipeline) GetRun(ctx context.Context, runID string) (scoringrun.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringPipeline.GetRun")
	defer span.End()

	runID = strings.TrimSpace(runID)
	if runID == "" {
		return scoringrun.Summary{}, fmt.Errorf("%w: run id is required", ErrInvalidInput)
	}
	if p.deps.RunRepo == nil {
		return scoringrun.Summary{}, fmt.Errorf("%w: scoring run store is not configured", ErrDependencyUnavailable)
	}

	item, exists, err := p.deps.RunRepo.GetByID(ctx, runID)
	if err != nil {
		return scoringrun.Summary{}, fmt.Errorf("get scoring run: %w", err)
	}
	if !exists {
		return scoringrun.Summary{}, fmt.Errorf("%w: run=%s", ErrNotFound, runID)
	}
	return item, nil
}

func (p *ScoringPipeline) resolveLeagues(ctx context.Context, req scoringrun.Request) ([]league.League, error) {
	if req.Mode != scoringrun.ModeLeague {
		items, err := p.deps.LeagueRepo.ListBySeason(ctx, req.SeasonID)
		if err != nil {
			return nil, fmt.Errorf("list season leagues: %w", err)
		}
		sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
		return items, nil
	}

	item, exists, err := p.deps.LeagueRepo.GetByID(ctx, req.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, req.LeagueID)
	}
	if item.SeasonID != req.SeasonID {
		return nil, fmt.Errorf("%w: league %s plays season %s, not %s", ErrInvalidInput, item.ID, item.SeasonID, req.SeasonID)
	}
	return []league.League{item}, nil
}

func (p *ScoringPipeline) seasonWeeks(ctx context.Context, seasonID string) ([]int, error) {
	games, err := p.deps.GameRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season games: %w", err)
	}
	weeks := make([]int, 0, len(games))
	for _, g := range games {
		weeks = append(weeks, g.Week)
	}
	return unionWeeks(weeks), nil
}

// weekScope extends a week run to every week a game left or entered, so rows
// credited at a game's previous week do not survive next to the new ones.
func (p *ScoringPipeline) weekScope(ctx context.Context, req scoringrun.Request, moved []bracket.WeekChange) ([]int, error) {
	weeks := []int{req.Week}
	for _, change := range moved {
		weeks = append(weeks, change.From, change.To)
	}
	displaced, err := p.deps.SchoolPoints.DisplacedWeeks(ctx, req.SeasonID)
	if err != nil {
		return nil, err
	}
	return unionWeeks(weeks, displaced), nil
}

// runLeagues runs the per-league stages for every league on a worker pool.
// Inside one league the stages run in order; a failing stage does not stop
// the ones after it.
func (p *ScoringPipeline) runLeagues(
	ctx context.Context,
	req scoringrun.Request,
	leagues []league.League,
	weeks []int,
) (map[string]StageOutcome, map[string]time.Duration, error) {
	var (
		mu        sync.Mutex
		outcomes  = make(map[string]StageOutcome)
		durations = make(map[string]time.Duration)
	)
	record := func(stage string, outcome StageOutcome, took time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		merged := outcomes[stage]
		merged.merge(outcome)
		outcomes[stage] = merged
		durations[stage] += took
	}

	workerCount := normalizeScoringWorkerCount(p.cfg.MaxWorkers, len(leagues))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, item := range leagues {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			for _, unit := range p.leagueUnits(ctx, req, item.ID, weeks) {
				start := time.Now()
				outcome := p.runGuarded(unit.stage, "league="+item.ID, unit.run)
				record(unit.stage, outcome, time.Since(start))
			}
		}); err != nil {
			workers.Done()
			return nil, nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	return outcomes, durations, nil
}

type leagueUnit struct {
	stage string
	run   func() (StageOutcome, error)
}

func (p *ScoringPipeline) leagueUnits(ctx context.Context, req scoringrun.Request, leagueID string, weeks []int) []leagueUnit {
	perWeek := req.Mode == scoringrun.ModeWeek
	return []leagueUnit{
		{stage: scoringrun.StageEventBonus, run: func() (StageOutcome, error) {
			if perWeek {
				return p.deps.EventBonuses.ResolveWeeks(ctx, leagueID, weeks)
			}
			return p.deps.EventBonuses.ResolveSeason(ctx, leagueID)
		}},
		{stage: scoringrun.StageOwnership, run: func() (StageOutcome, error) {
			outcome, _, err := p.deps.Ownership.CheckWeeks(ctx, leagueID, weeks)
			return outcome, err
		}},
		{stage: scoringrun.StageTeamPoints, run: func() (StageOutcome, error) {
			if perWeek {
				return p.deps.TeamPoints.RecalculateWeeks(ctx, leagueID, weeks)
			}
			return p.deps.TeamPoints.RecalculateSeason(ctx, leagueID)
		}},
		{stage: scoringrun.StageStandings, run: func() (StageOutcome, error) {
			return p.deps.Standings.Recompute(ctx, leagueID)
		}},
	}
}

func (p *ScoringPipeline) runSeasonStage(stage, seasonID string, fn func() (StageOutcome, error)) StageOutcome {
	return p.runGuarded(stage, "season="+seasonID, fn)
}

// runGuarded converts a stage error or panic into a recorded failure.
func (p *ScoringPipeline) runGuarded(stage, entity string, fn func() (StageOutcome, error)) StageOutcome {
	var (
		outcome StageOutcome
		err     error
		catcher panics.Catcher
	)
	catcher.Try(func() { outcome, err = fn() })
	if recovered := catcher.Recovered(); recovered != nil {
		outcome = StageOutcome{}
		err = fmt.Errorf("stage %s panicked: %w", stage, recovered.AsError())
	}
	if err != nil {
		outcome.fail(stage, entity, err)
		p.deps.Logger.Warn("scoring stage failed", "stage", stage, "entity", entity, "error", err)
	}
	return outcome
}

func normalizeScoringWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > maxScoringWorkers {
		value = maxScoringWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
