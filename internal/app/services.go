package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/config"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/bracket"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/id"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/resilience"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/usecase"
)

type ScoringOptions struct {
	DefaultBracketFormat string
	MaxWorkers           int
	Retry                resilience.RetryConfig
	Breaker              resilience.CircuitBreakerConfig
}

func ScoringOptionsFromConfig(cfg config.Config) ScoringOptions {
	return ScoringOptions{
		DefaultBracketFormat: cfg.ScoringDefaultBracketFormat,
		MaxWorkers:           cfg.ScoringMaxWorkers,
		Retry: resilience.RetryConfig{
			MaxAttempts:     cfg.ScoringWriteRetries,
			InitialInterval: cfg.ScoringRetryInitialInterval,
			MaxInterval:     cfg.ScoringRetryMaxInterval,
		},
		Breaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ScoringCircuitEnabled,
			FailureThreshold: cfg.ScoringCircuitFailureCount,
			OpenTimeout:      cfg.ScoringCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ScoringCircuitHalfOpenMaxReq,
		},
	}
}

type Services struct {
	Brackets     *usecase.BracketService
	SchoolPoints *usecase.SchoolPointsService
	EventBonuses *usecase.EventBonusService
	Ownership    *usecase.OwnershipService
	TeamPoints   *usecase.TeamPointsService
	Standings    *usecase.StandingsService
	Pipeline     *usecase.ScoringPipeline
}

// NewServices builds the scoring services over repos. All writers share one
// retrier so a failing store trips a single breaker.
func NewServices(repos Repositories, opts ScoringOptions, logger *logging.Logger, afterRun ...func(context.Context)) (Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	format := bracket.DefaultFormat
	if opts.DefaultBracketFormat != "" {
		parsed, err := bracket.ParseFormat(opts.DefaultBracketFormat)
		if err != nil {
			return Services{}, fmt.Errorf("default bracket format: %w", err)
		}
		format = parsed
	}

	var breaker *resilience.CircuitBreaker
	if opts.Breaker.Enabled {
		breakerCfg := resilience.NormalizeCircuitBreakerConfig(opts.Breaker)
		breaker = resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq)
	}
	writer := resilience.NewRetrier(opts.Retry, breaker)

	svc := Services{}
	svc.Brackets = usecase.NewBracketService(repos.Seasons, repos.Games, format, writer, logger.Named("bracket"))
	svc.SchoolPoints = usecase.NewSchoolPointsService(
		repos.Seasons,
		repos.Schools,
		repos.Rankings,
		repos.Games,
		repos.SchoolPoints,
		writer,
		logger.Named("school_points"),
	)
	svc.EventBonuses = usecase.NewEventBonusService(
		repos.Leagues,
		repos.Seasons,
		repos.Games,
		repos.EventBonuses,
		svc.Brackets,
		writer,
		logger.Named("event_bonus"),
	)
	svc.Ownership = usecase.NewOwnershipService(repos.Rosters, logger.Named("ownership"))
	svc.TeamPoints = usecase.NewTeamPointsService(
		repos.Leagues,
		repos.FantasyTeams,
		repos.Rosters,
		repos.SchoolPoints,
		repos.EventBonuses,
		writer,
		logger.Named("team_points"),
	)
	svc.Standings = usecase.NewStandingsService(repos.Leagues, repos.FantasyTeams, writer, logger.Named("standings"))
	svc.Pipeline = usecase.NewScoringPipeline(usecase.ScoringPipelineDeps{
		Brackets:     svc.Brackets,
		SchoolPoints: svc.SchoolPoints,
		EventBonuses: svc.EventBonuses,
		Ownership:    svc.Ownership,
		TeamPoints:   svc.TeamPoints,
		Standings:    svc.Standings,
		SeasonRepo:   repos.Seasons,
		LeagueRepo:   repos.Leagues,
		GameRepo:     repos.Games,
		RunRepo:      repos.Runs,
		IDGenerator:  id.NewUUIDGenerator(),
		Logger:       logger.Named("pipeline"),
		AfterRun:     afterRun,
	}, usecase.ScoringPipelineConfig{MaxWorkers: opts.MaxWorkers})

	return svc, nil
}
