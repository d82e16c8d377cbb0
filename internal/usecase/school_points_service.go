package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/ranking"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/school"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/schoolpoints"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/season"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/resilience"
)

type SchoolPointsService struct {
	seasonRepo  season.Repository
	schoolRepo  school.Repository
	rankingRepo ranking.Repository
	gameRepo    game.Repository
	pointsRepo  schoolpoints.Repository
	writer      *resilience.Retrier
	logger      *logging.Logger
}

func NewSchoolPointsService(
	seasonRepo season.Repository,
	schoolRepo school.Repository,
	rankingRepo ranking.Repository,
	gameRepo game.Repository,
	pointsRepo schoolpoints.Repository,
	writer *resilience.Retrier,
	logger *logging.Logger,
) *SchoolPointsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SchoolPointsService{
		seasonRepo:  seasonRepo,
		schoolRepo:  schoolRepo,
		rankingRepo: rankingRepo,
		gameRepo:    gameRepo,
		pointsRepo:  pointsRepo,
		writer:      writer,
		logger:      logger,
	}
}

type schoolScoringData struct {
	seasonID string
	schools  map[string]school.School
	rankings []ranking.Entry
	rules    schoolpoints.Rules
	games    []game.Game
}

// RecalculateWeek recomputes and replaces every school row of one season-week.
func (s *SchoolPointsService) RecalculateWeek(ctx context.Context, seasonID string, week int) (StageOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SchoolPointsService.RecalculateWeek")
	defer span.End()

	if week < 0 {
		return StageOutcome{}, fmt.Errorf("%w: week must be >= 0", ErrInvalidInput)
	}
	data, err := s.load(ctx, seasonID, func(ctx context.Context) ([]game.Game, error) {
		return s.gameRepo.ListBySeasonWeek(ctx, seasonID, week)
	})
	if err != nil {
		return StageOutcome{}, err
	}

	return s.recalculate(ctx, data, week), nil
}

// RecalculateSeason recomputes every week that has games or stored rows, so
// weeks whose games moved away are emptied.
func (s *SchoolPointsService) RecalculateSeason(ctx context.Context, seasonID string) (StageOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SchoolPointsService.RecalculateSeason")
	defer span.End()

	data, err := s.load(ctx, seasonID, func(ctx context.Context) ([]game.Game, error) {
		return s.gameRepo.ListBySeason(ctx, seasonID)
	})
	if err != nil {
		return StageOutcome{}, err
	}

	existing, err := s.pointsRepo.ListBySeason(ctx, data.seasonID)
	if err != nil {
		return StageOutcome{}, fmt.Errorf("list school points: %w", err)
	}

	gameWeeks := make([]int, 0, len(data.games))
	for _, g := range data.games {
		gameWeeks = append(gameWeeks, g.Week)
	}
	rowWeeks := make([]int, 0, len(existing))
	for _, row := range existing {
		rowWeeks = append(rowWeeks, row.Week)
	}

	var outcome StageOutcome
	for _, week := range unionWeeks(gameWeeks, rowWeeks) {
		outcome.merge(s.recalculate(ctx, data, week))
	}
	return outcome, nil
}

// RecalculateWeeks recomputes each listed week against one snapshot of the
// season's games.
func (s *SchoolPointsService) RecalculateWeeks(ctx context.Context, seasonID string, weeks []int) (StageOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SchoolPointsService.RecalculateWeeks")
	defer span.End()

	for _, week := range weeks {
		if week < 0 {
			return StageOutcome{}, fmt.Errorf("%w: week must be >= 0", ErrInvalidInput)
		}
	}
	data, err := s.load(ctx, seasonID, func(ctx context.Context) ([]game.Game, error) {
		return s.gameRepo.ListBySeason(ctx, seasonID)
	})
	if err != nil {
		return StageOutcome{}, err
	}

	var outcome StageOutcome
	for _, week := range unionWeeks(weeks) {
		outcome.merge(s.recalculate(ctx, data, week))
	}
	return outcome, nil
}

// DisplacedWeeks lists the weeks holding stored rows whose source game is no
// longer stored at that week, together with the week the game moved to.
func (s *SchoolPointsService) DisplacedWeeks(ctx context.Context, seasonID string) ([]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SchoolPointsService.DisplacedWeeks")
	defer span.End()

	games, err := s.gameRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season games: %w", err)
	}
	rows, err := s.pointsRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list school points: %w", err)
	}

	gameWeeks := make(map[string]int, len(games))
	for _, g := range games {
		gameWeeks[g.ID] = g.Week
	}
	var weeks []int
	for _, row := range rows {
		if row.SourceGameID == "" {
			continue
		}
		week, ok := gameWeeks[row.SourceGameID]
		switch {
		case !ok:
			weeks = append(weeks, row.Week)
		case week != row.Week:
			weeks = append(weeks, row.Week, week)
		}
	}
	return unionWeeks(weeks), nil
}

func (s *SchoolPointsService) ListSchoolPoints(ctx context.Context, seasonID, schoolID string) ([]schoolpoints.WeeklyPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SchoolPointsService.ListSchoolPoints")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	schoolID = strings.TrimSpace(schoolID)
	if seasonID == "" || schoolID == "" {
		return nil, fmt.Errorf("%w: season id and school id are required", ErrInvalidInput)
	}

	items, err := s.pointsRepo.ListBySchool(ctx, seasonID, schoolID)
	if err != nil {
		return nil, fmt.Errorf("list school points: %w", err)
	}
	return items, nil
}

func (s *SchoolPointsService) load(
	ctx context.Context,
	seasonID string,
	listGames func(context.Context) ([]game.Game, error),
) (schoolScoringData, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return schoolScoringData{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return schoolScoringData{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return schoolScoringData{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	rules, ok, err := s.pointsRepo.GetRules(ctx, seasonID)
	if err != nil {
		return schoolScoringData{}, fmt.Errorf("get scoring rules: %w", err)
	}
	if !ok {
		rules = schoolpoints.DefaultRules()
	}
	if err := rules.Validate(); err != nil {
		return schoolScoringData{}, fmt.Errorf("%w: season=%s: %v", ErrDataIntegrity, seasonID, err)
	}

	schools, err := s.schoolRepo.List(ctx)
	if err != nil {
		return schoolScoringData{}, fmt.Errorf("list schools: %w", err)
	}
	byID := make(map[string]school.School, len(schools))
	for _, item := range schools {
		byID[item.ID] = item
	}

	rankings, err := s.rankingRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return schoolScoringData{}, fmt.Errorf("list rankings: %w", err)
	}

	games, err := listGames(ctx)
	if err != nil {
		return schoolScoringData{}, fmt.Errorf("list games: %w", err)
	}

	return schoolScoringData{
		seasonID: seasonID,
		schools:  byID,
		rankings: rankings,
		rules:    rules,
		games:    games,
	}, nil
}

func (s *SchoolPointsService) recalculate(ctx context.Context, data schoolScoringData, week int) StageOutcome {
	result := schoolpoints.Calculate(schoolpoints.Input{
		SeasonID: data.seasonID,
		Week:     week,
		Games:    data.games,
		Schools:  data.schools,
		Rankings: ranking.AsOf(data.rankings, week),
		Rules:    data.rules,
	})

	var outcome StageOutcome
	for _, m := range result.Missing {
		err := fmt.Errorf("%w: school=%s", ErrNotFound, m.SchoolID)
		outcome.fail(scoringrun.StageSchoolPoints, "game="+m.GameID, err)
		s.logger.WarnContext(ctx, "game skipped, unknown school",
			"season_id", data.seasonID,
			"week", week,
			"game_id", m.GameID,
			"school_id", m.SchoolID,
		)
	}

	err := s.writer.Do(ctx, func(ctx context.Context) error {
		return s.pointsRepo.ReplaceWeek(ctx, data.seasonID, week, result.Rows, result.Retain)
	})
	if err != nil {
		outcome.fail(scoringrun.StageSchoolPoints, "week="+strconv.Itoa(week), fmt.Errorf("replace school points: %w", err))
		s.logger.WarnContext(ctx, "replace school points failed", "season_id", data.seasonID, "week", week, "error", err)
		return outcome
	}

	outcome.Records += len(result.Rows)
	s.logger.DebugContext(ctx, "school points recalculated",
		"season_id", data.seasonID,
		"week", week,
		"rows", len(result.Rows),
		"pending_games", result.Pending,
	)
	return outcome
}
