package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/fantasyteam"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/league"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/resilience"
)

type StandingsService struct {
	leagueRepo league.Repository
	teamRepo   fantasyteam.Repository
	writer     *resilience.Retrier
	logger     *logging.Logger
}

func NewStandingsService(
	leagueRepo league.Repository,
	teamRepo fantasyteam.Repository,
	writer *resilience.Retrier,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		writer:     writer,
		logger:     logger,
	}
}

// Recompute overwrites every team total with the sum of its weekly rows.
func (s *StandingsService) Recompute(ctx context.Context, leagueID string) (StageOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Recompute")
	defer span.End()

	item, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return StageOutcome{}, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return StageOutcome{}, fmt.Errorf("list fantasy teams: %w", err)
	}
	rows, err := s.teamRepo.ListWeeklyPointsByLeague(ctx, item.ID)
	if err != nil {
		return StageOutcome{}, fmt.Errorf("list team weekly points: %w", err)
	}

	totals := fantasyteam.Totals(teams, rows)

	var outcome StageOutcome
	err = s.writer.Do(ctx, func(ctx context.Context) error {
		return s.teamRepo.UpdateTotalPoints(ctx, item.ID, totals)
	})
	if err != nil {
		outcome.fail(scoringrun.StageStandings, "league="+item.ID, fmt.Errorf("update team totals: %w", err))
		s.logger.WarnContext(ctx, "update team totals failed", "league_id", item.ID, "error", err)
		return outcome, nil
	}

	outcome.Records = len(totals)
	return outcome, nil
}

func (s *StandingsService) Standings(ctx context.Context, leagueID string) ([]fantasyteam.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Standings")
	defer span.End()

	item, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list fantasy teams: %w", err)
	}
	return fantasyteam.RankStandings(teams), nil
}

func (s *StandingsService) getLeague(ctx context.Context, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return item, nil
}
