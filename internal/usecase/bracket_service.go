package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/bracket"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/season"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/resilience"
)

type BracketService struct {
	seasonRepo    season.Repository
	gameRepo      game.Repository
	defaultFormat bracket.Format
	writer        *resilience.Retrier
	logger        *logging.Logger
}

func NewBracketService(
	seasonRepo season.Repository,
	gameRepo game.Repository,
	defaultFormat bracket.Format,
	writer *resilience.Retrier,
	logger *logging.Logger,
) *BracketService {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultFormat == "" {
		defaultFormat = bracket.DefaultFormat
	}
	return &BracketService{
		seasonRepo:    seasonRepo,
		gameRepo:      gameRepo,
		defaultFormat: defaultFormat,
		writer:        writer,
		logger:        logger,
	}
}

// MapperForSeason returns the week mapper of the season's bracket format.
func (s *BracketService) MapperForSeason(ctx context.Context, seasonID string) (bracket.Mapper, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.MapperForSeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return bracket.Mapper{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return bracket.Mapper{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return bracket.Mapper{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	if err := item.Validate(); err != nil {
		return bracket.Mapper{}, fmt.Errorf("%w: season=%s: %v", ErrDataIntegrity, seasonID, err)
	}

	format := s.defaultFormat
	if strings.TrimSpace(item.BracketFormat) != "" {
		format, err = bracket.ParseFormat(item.BracketFormat)
		if err != nil {
			return bracket.Mapper{}, fmt.Errorf("%w: season=%s: %v", ErrDataIntegrity, seasonID, err)
		}
	}

	mapper, err := bracket.NewMapper(format)
	if err != nil {
		return bracket.Mapper{}, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}
	return mapper, nil
}

type NormalizeResult struct {
	StageOutcome
	Changes    []bracket.WeekChange
	Violations []bracket.Violation
}

// NormalizeSeason rewrites stored postseason weeks to the canonical timeline.
// Bracket violations are reported, never corrected.
func (s *BracketService) NormalizeSeason(ctx context.Context, seasonID string) (NormalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.NormalizeSeason")
	defer span.End()

	mapper, err := s.MapperForSeason(ctx, seasonID)
	if err != nil {
		return NormalizeResult{}, err
	}

	games, err := s.gameRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return NormalizeResult{}, fmt.Errorf("list season games: %w", err)
	}

	changes, violations := bracket.Plan(mapper, games)
	result := NormalizeResult{Violations: violations}
	for _, v := range violations {
		result.flag(scoringrun.StageBracket, scoringrun.IssueDataIntegrity, "game="+v.GameID, string(v.Code)+": "+v.Detail)
		s.logger.WarnContext(ctx, "bracket violation",
			"season_id", seasonID,
			"game_id", v.GameID,
			"code", string(v.Code),
			"blocking", v.Blocking(),
		)
	}

	for _, change := range changes {
		change := change
		err := s.writer.Do(ctx, func(ctx context.Context) error {
			return s.gameRepo.UpdateWeek(ctx, change.GameID, change.To)
		})
		if err != nil {
			result.fail(scoringrun.StageBracket, "game="+change.GameID, fmt.Errorf("update game week: %w", err))
			s.logger.WarnContext(ctx, "rewrite game week failed", "game_id", change.GameID, "error", err)
			continue
		}
		result.Records++
		result.Changes = append(result.Changes, change)
		s.logger.InfoContext(ctx, "game week normalized",
			"game_id", change.GameID,
			"from_week", change.From,
			"to_week", change.To,
			"format", string(mapper.Format()),
		)
	}

	return result, nil
}
