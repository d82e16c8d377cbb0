package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/eventbonus"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/league"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/season"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/resilience"
)

type EventBonusService struct {
	leagueRepo league.Repository
	seasonRepo season.Repository
	gameRepo   game.Repository
	bonusRepo  eventbonus.Repository
	brackets   *BracketService
	writer     *resilience.Retrier
	logger     *logging.Logger
}

func NewEventBonusService(
	leagueRepo league.Repository,
	seasonRepo season.Repository,
	gameRepo game.Repository,
	bonusRepo eventbonus.Repository,
	brackets *BracketService,
	writer *resilience.Retrier,
	logger *logging.Logger,
) *EventBonusService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EventBonusService{
		leagueRepo: leagueRepo,
		seasonRepo: seasonRepo,
		gameRepo:   gameRepo,
		bonusRepo:  bonusRepo,
		brackets:   brackets,
		writer:     writer,
		logger:     logger,
	}
}

// ResolveSeason replaces the league's whole season of bonuses with the set
// derived from the current bracket state.
func (s *EventBonusService) ResolveSeason(ctx context.Context, leagueID string) (StageOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventBonusService.ResolveSeason")
	defer span.End()

	item, items, err := s.resolve(ctx, leagueID)
	if err != nil {
		return StageOutcome{}, err
	}

	var outcome StageOutcome
	err = s.writer.Do(ctx, func(ctx context.Context) error {
		return s.bonusRepo.ReplaceSeason(ctx, item.ID, item.SeasonID, items)
	})
	if err != nil {
		outcome.fail(scoringrun.StageEventBonus, "league="+item.ID, fmt.Errorf("replace season bonuses: %w", err))
		s.logger.WarnContext(ctx, "replace season bonuses failed", "league_id", item.ID, "error", err)
		return outcome, nil
	}

	outcome.Records = len(items)
	return outcome, nil
}

// ResolveWeek replaces only the (league, season, week) scope.
func (s *EventBonusService) ResolveWeek(ctx context.Context, leagueID string, week int) (StageOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventBonusService.ResolveWeek")
	defer span.End()

	if week < 0 {
		return StageOutcome{}, fmt.Errorf("%w: week must be >= 0", ErrInvalidInput)
	}
	item, items, err := s.resolve(ctx, leagueID)
	if err != nil {
		return StageOutcome{}, err
	}
	items = eventbonus.FilterWeek(items, week)

	var outcome StageOutcome
	err = s.writer.Do(ctx, func(ctx context.Context) error {
		return s.bonusRepo.ReplaceWeek(ctx, item.ID, item.SeasonID, week, items)
	})
	if err != nil {
		outcome.fail(scoringrun.StageEventBonus, fmt.Sprintf("league=%s week=%d", item.ID, week), fmt.Errorf("replace week bonuses: %w", err))
		s.logger.WarnContext(ctx, "replace week bonuses failed", "league_id", item.ID, "week", week, "error", err)
		return outcome, nil
	}

	outcome.Records = len(items)
	return outcome, nil
}

// ResolveWeeks replaces each listed (league, season, week) scope from one
// resolution of the league's bonuses.
func (s *EventBonusService) ResolveWeeks(ctx context.Context, leagueID string, weeks []int) (StageOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventBonusService.ResolveWeeks")
	defer span.End()

	for _, week := range weeks {
		if week < 0 {
			return StageOutcome{}, fmt.Errorf("%w: week must be >= 0", ErrInvalidInput)
		}
	}
	item, items, err := s.resolve(ctx, leagueID)
	if err != nil {
		return StageOutcome{}, err
	}

	var outcome StageOutcome
	for _, week := range unionWeeks(weeks) {
		weekItems := eventbonus.FilterWeek(items, week)
		err := s.writer.Do(ctx, func(ctx context.Context) error {
			return s.bonusRepo.ReplaceWeek(ctx, item.ID, item.SeasonID, week, weekItems)
		})
		if err != nil {
			outcome.fail(scoringrun.StageEventBonus, fmt.Sprintf("league=%s week=%d", item.ID, week), fmt.Errorf("replace week bonuses: %w", err))
			s.logger.WarnContext(ctx, "replace week bonuses failed", "league_id", item.ID, "week", week, "error", err)
			continue
		}
		outcome.Records += len(weekItems)
	}
	return outcome, nil
}

func (s *EventBonusService) ListByLeague(ctx context.Context, leagueID string) ([]eventbonus.Bonus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventBonusService.ListByLeague")
	defer span.End()

	item, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	items, err := s.bonusRepo.ListByLeagueSeason(ctx, item.ID, item.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("list league bonuses: %w", err)
	}
	eventbonus.Sort(items)
	return items, nil
}

func (s *EventBonusService) resolve(ctx context.Context, leagueID string) (league.League, []eventbonus.Bonus, error) {
	item, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return league.League{}, nil, err
	}

	mapper, err := s.brackets.MapperForSeason(ctx, item.SeasonID)
	if err != nil {
		return league.League{}, nil, err
	}

	games, err := s.gameRepo.ListBySeason(ctx, item.SeasonID)
	if err != nil {
		return league.League{}, nil, fmt.Errorf("list season games: %w", err)
	}
	awards, err := s.seasonRepo.ListAwards(ctx, item.SeasonID)
	if err != nil {
		return league.League{}, nil, fmt.Errorf("list season awards: %w", err)
	}

	items := eventbonus.Resolve(eventbonus.Input{
		LeagueID: item.ID,
		SeasonID: item.SeasonID,
		Mapper:   mapper,
		Games:    games,
		Awards:   awards,
		Values:   item.BonusPoints,
	})
	return item, items, nil
}

func (s *EventBonusService) getLeague(ctx context.Context, leagueID string) (league.League, error) {
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
	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: league=%s: %v", ErrDataIntegrity, leagueID, err)
	}
	return item, nil
}
