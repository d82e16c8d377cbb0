package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/roster"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
)

// OwnershipService checks roster exclusivity. It reports, it never repairs.
type OwnershipService struct {
	rosterRepo roster.Repository
	logger     *logging.Logger
}

func NewOwnershipService(rosterRepo roster.Repository, logger *logging.Logger) *OwnershipService {
	if logger == nil {
		logger = logging.Default()
	}
	return &OwnershipService{rosterRepo: rosterRepo, logger: logger}
}

func (s *OwnershipService) OwnedSchools(ctx context.Context, leagueID, teamID string, week int) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OwnershipService.OwnedSchools")
	defer span.End()

	periods, err := s.listPeriods(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return roster.OwnedSchools(periods, strings.TrimSpace(teamID), week), nil
}

// CheckWeeks flags every week in weeks where a drafted school has zero or
// several owners.
func (s *OwnershipService) CheckWeeks(ctx context.Context, leagueID string, weeks []int) (StageOutcome, []roster.IntegrityIssue, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OwnershipService.CheckWeeks")
	defer span.End()

	periods, err := s.listPeriods(ctx, leagueID)
	if err != nil {
		return StageOutcome{}, nil, err
	}

	var (
		outcome StageOutcome
		found   []roster.IntegrityIssue
	)
	invalidSeen := make(map[string]struct{})
	for _, week := range weeks {
		for _, issue := range roster.CheckWeek(leagueID, periods, week) {
			if issue.Kind == roster.IssueInvalidPeriod {
				key := issue.SchoolID + "|" + strings.Join(issue.Owners, ",")
				if _, ok := invalidSeen[key]; ok {
					continue
				}
				invalidSeen[key] = struct{}{}
			}
			found = append(found, issue)
			entity := fmt.Sprintf("league=%s school=%s week=%d", leagueID, issue.SchoolID, issue.Week)
			outcome.flag(scoringrun.StageOwnership, scoringrun.IssueDataIntegrity, entity, ownershipMessage(issue))
			s.logger.WarnContext(ctx, "roster ownership violation",
				"league_id", leagueID,
				"school_id", issue.SchoolID,
				"week", issue.Week,
				"kind", string(issue.Kind),
				"owners", issue.Owners,
			)
		}
		outcome.Records++
	}
	return outcome, found, nil
}

func (s *OwnershipService) listPeriods(ctx context.Context, leagueID string) ([]roster.Period, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	periods, err := s.rosterRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list roster periods: %w", err)
	}
	return periods, nil
}

func ownershipMessage(issue roster.IntegrityIssue) string {
	switch issue.Kind {
	case roster.IssueUnowned:
		return "school has no owner"
	case roster.IssueMultipleOwners:
		return "school owned by " + strings.Join(issue.Owners, ", ")
	default:
		return issue.Detail
	}
}
