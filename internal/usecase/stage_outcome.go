package usecase

import (
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/resilience"
)

// StageOutcome is what one unit of stage work reports back to the pipeline.
// Failures are entities that could not be written; flagged issues are
// recorded without counting as failures.
type StageOutcome struct {
	Records  int
	Failures int
	Issues   []scoringrun.Issue
}

func (o *StageOutcome) fail(stage, entity string, err error) {
	o.Failures++
	o.Issues = append(o.Issues, scoringrun.Issue{
		Kind:    issueKindOf(err),
		Stage:   stage,
		Entity:  entity,
		Message: err.Error(),
	})
}

func (o *StageOutcome) flag(stage string, kind scoringrun.IssueKind, entity, message string) {
	o.Issues = append(o.Issues, scoringrun.Issue{
		Kind:    kind,
		Stage:   stage,
		Entity:  entity,
		Message: message,
	})
}

func (o *StageOutcome) merge(other StageOutcome) {
	o.Records += other.Records
	o.Failures += other.Failures
	o.Issues = append(o.Issues, other.Issues...)
}

func (o StageOutcome) result(stage string) scoringrun.StageResult {
	out := scoringrun.StageResult{
		Stage:    stage,
		Status:   scoringrun.StatusSuccess,
		Records:  o.Records,
		Failures: o.Failures,
	}
	if o.Failures > 0 {
		out.Status = scoringrun.StatusFailed
		out.Message = fmt.Sprintf("%d entities failed", o.Failures)
	}
	return out
}

func issueKindOf(err error) scoringrun.IssueKind {
	switch {
	case errors.Is(err, ErrNotFound):
		return scoringrun.IssueNotFound
	case errors.Is(err, ErrDataIntegrity):
		return scoringrun.IssueDataIntegrity
	case resilience.IsTransient(err), errors.Is(err, resilience.ErrCircuitOpen):
		return scoringrun.IssueTransient
	default:
		return scoringrun.IssueInternal
	}
}

func sortIssues(items []scoringrun.Issue) {
	order := make(map[string]int, len(stageOrder))
	for i, stage := range stageOrder {
		order[stage] = i
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Stage != items[j].Stage {
			return order[items[i].Stage] < order[items[j].Stage]
		}
		return items[i].Entity < items[j].Entity
	})
}

func unionWeeks(sets ...[]int) []int {
	seen := make(map[int]struct{})
	for _, set := range sets {
		for _, w := range set {
			seen[w] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Ints(out)
	return out
}
