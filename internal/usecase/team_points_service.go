package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/eventbonus"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/fantasyteam"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/league"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/roster"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/schoolpoints"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/resilience"
)

type TeamPointsService struct {
	leagueRepo league.Repository
	teamRepo   fantasyteam.Repository
	rosterRepo roster.Repository
	pointsRepo schoolpoints.Repository
	bonusRepo  eventbonus.Repository
	writer     *resilience.Retrier
	logger     *logging.Logger
}

func NewTeamPointsService(
	leagueRepo league.Repository,
	teamRepo fantasyteam.Repository,
	rosterRepo roster.Repository,
	pointsRepo schoolpoints.Repository,
	bonusRepo eventbonus.Repository,
	writer *resilience.Retrier,
	logger *logging.Logger,
) *TeamPointsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamPointsService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		rosterRepo: rosterRepo,
		pointsRepo: pointsRepo,
		bonusRepo:  bonusRepo,
		writer:     writer,
		logger:     logger,
	}
}

type teamScoringData struct {
	league  league.League
	teams   []fantasyteam.Team
	periods []roster.Period
	points  []schoolpoints.WeeklyPoints
	bonuses []eventbonus.Bonus
}

func (s *TeamPointsService) RecalculateWeek(ctx context.Context, leagueID string, week int) (StageOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamPointsService.RecalculateWeek")
	defer span.End()

	if week < 0 {
		return StageOutcome{}, fmt.Errorf("%w: week must be >= 0", ErrInvalidInput)
	}
	data, err := s.load(ctx, leagueID)
	if err != nil {
		return StageOutcome{}, err
	}
	return s.recalculate(ctx, data, week), nil
}

// RecalculateWeeks rewrites each listed week from one load of the league's
// sources.
func (s *TeamPointsService) RecalculateWeeks(ctx context.Context, leagueID string, weeks []int) (StageOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamPointsService.RecalculateWeeks")
	defer span.End()

	for _, week := range weeks {
		if week < 0 {
			return StageOutcome{}, fmt.Errorf("%w: week must be >= 0", ErrInvalidInput)
		}
	}
	data, err := s.load(ctx, leagueID)
	if err != nil {
		return StageOutcome{}, err
	}

	var outcome StageOutcome
	for _, week := range unionWeeks(weeks) {
		outcome.merge(s.recalculate(ctx, data, week))
	}
	return outcome, nil
}

// RecalculateSeason rewrites every week that has school points, bonuses or
// stored team rows, so weeks that no longer score are emptied.
func (s *TeamPointsService) RecalculateSeason(ctx context.Context, leagueID string) (StageOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamPointsService.RecalculateSeason")
	defer span.End()

	data, err := s.load(ctx, leagueID)
	if err != nil {
		return StageOutcome{}, err
	}

	existing, err := s.teamRepo.ListWeeklyPointsByLeague(ctx, data.league.ID)
	if err != nil {
		return StageOutcome{}, fmt.Errorf("list team weekly points: %w", err)
	}

	weeks := make([]int, 0, len(data.points)+len(data.bonuses)+len(existing))
	for _, row := range data.points {
		weeks = append(weeks, row.Week)
	}
	for _, row := range data.bonuses {
		weeks = append(weeks, row.Week)
	}
	for _, row := range existing {
		weeks = append(weeks, row.Week)
	}

	var outcome StageOutcome
	for _, week := range unionWeeks(weeks) {
		outcome.merge(s.recalculate(ctx, data, week))
	}
	return outcome, nil
}

func (s *TeamPointsService) ListTeamWeeklyPoints(ctx context.Context, leagueID, teamID string) ([]fantasyteam.WeeklyPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamPointsService.ListTeamWeeklyPoints")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	teamID = strings.TrimSpace(teamID)
	if leagueID == "" || teamID == "" {
		return nil, fmt.Errorf("%w: league id and team id are required", ErrInvalidInput)
	}

	team, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get fantasy team: %w", err)
	}
	if !exists || team.LeagueID != leagueID {
		return nil, fmt.Errorf("%w: team=%s league=%s", ErrNotFound, teamID, leagueID)
	}

	items, err := s.teamRepo.ListWeeklyPointsByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team weekly points: %w", err)
	}
	return items, nil
}

func (s *TeamPointsService) load(ctx context.Context, leagueID string) (teamScoringData, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return teamScoringData{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return teamScoringData{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return teamScoringData{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if err := item.Validate(); err != nil {
		return teamScoringData{}, fmt.Errorf("%w: league=%s: %v", ErrDataIntegrity, leagueID, err)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return teamScoringData{}, fmt.Errorf("list fantasy teams: %w", err)
	}
	periods, err := s.rosterRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return teamScoringData{}, fmt.Errorf("list roster periods: %w", err)
	}
	points, err := s.pointsRepo.ListBySeason(ctx, item.SeasonID)
	if err != nil {
		return teamScoringData{}, fmt.Errorf("list school points: %w", err)
	}
	bonuses, err := s.bonusRepo.ListByLeagueSeason(ctx, item.ID, item.SeasonID)
	if err != nil {
		return teamScoringData{}, fmt.Errorf("list league bonuses: %w", err)
	}

	return teamScoringData{
		league:  item,
		teams:   teams,
		periods: periods,
		points:  points,
		bonuses: bonuses,
	}, nil
}

func (s *TeamPointsService) recalculate(ctx context.Context, data teamScoringData, week int) StageOutcome {
	schoolTotals := make(map[string]int)
	for _, row := range data.points {
		if row.Week == week {
			schoolTotals[row.SchoolID] += row.TotalPoints
		}
	}

	rows := fantasyteam.AggregateWeek(fantasyteam.WeekInput{
		LeagueID:     data.league.ID,
		Week:         week,
		Teams:        data.teams,
		Periods:      data.periods,
		SchoolPoints: schoolTotals,
		BonusPoints:  eventbonus.PointsBySchool(data.bonuses, week),
	})

	var outcome StageOutcome
	err := s.writer.Do(ctx, func(ctx context.Context) error {
		return s.teamRepo.ReplaceWeeklyPoints(ctx, data.league.ID, week, rows)
	})
	if err != nil {
		outcome.fail(scoringrun.StageTeamPoints, fmt.Sprintf("league=%s week=%d", data.league.ID, week), fmt.Errorf("replace team weekly points: %w", err))
		s.logger.WarnContext(ctx, "replace team weekly points failed", "league_id", data.league.ID, "week", week, "error", err)
		return outcome
	}

	outcome.Records = len(rows)
	return outcome
}
