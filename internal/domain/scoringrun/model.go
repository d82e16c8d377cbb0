package scoringrun

import (
	"fmt"
	"strings"
	"time"
)

type Mode string

const (
	ModeWeek   Mode = "week"
	ModeSeason Mode = "season"
	ModeLeague Mode = "league"
)

func ParseMode(value string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(value))); m {
	case ModeWeek, ModeSeason, ModeLeague:
		return m, nil
	default:
		return "", fmt.Errorf("unknown scoring mode %q", value)
	}
}

// Stage names, in pipeline order.
const (
	StageBracket      = "bracket_normalize"
	StageSchoolPoints = "school_points"
	StageEventBonus   = "event_bonuses"
	StageOwnership    = "ownership_check"
	StageTeamPoints   = "team_points"
	StageStandings    = "standings"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

type IssueKind string

const (
	IssueNotFound      IssueKind = "not_found"
	IssueDataIntegrity IssueKind = "data_integrity"
	IssueTransient     IssueKind = "transient"
	IssueInternal      IssueKind = "internal"
)

// Issue is one recoverable problem reported by a stage.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Stage   string    `json:"stage"`
	Entity  string    `json:"entity,omitempty"`
	Message string    `json:"message"`
}

type StageResult struct {
	Stage      string `json:"stage"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	Failures   int    `json:"failures"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// Request selects what a run recomputes.
type Request struct {
	Mode     Mode
	SeasonID string
	Week     int
	LeagueID string
}

func (r Request) Validate() error {
	if r.SeasonID == "" {
		return fmt.Errorf("season id is required")
	}
	switch r.Mode {
	case ModeWeek:
		if r.Week < 0 {
			return fmt.Errorf("week must be >= 0")
		}
	case ModeSeason:
	case ModeLeague:
		if r.LeagueID == "" {
			return fmt.Errorf("league id is required in league mode")
		}
	default:
		return fmt.Errorf("unknown scoring mode %q", r.Mode)
	}
	return nil
}

// Summary is the persisted outcome of one pipeline run.
type Summary struct {
	RunID        string        `json:"run_id"`
	Mode         Mode          `json:"mode"`
	SeasonID     string        `json:"season_id"`
	Week         *int          `json:"week,omitempty"`
	LeagueID     string        `json:"league_id,omitempty"`
	Status       string        `json:"status"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
	Stages       []StageResult `json:"stages"`
	Issues       []Issue       `json:"issues"`
	SuccessCount int           `json:"success_count"`
	SkippedCount int           `json:"skipped_count"`
	FailedCount  int           `json:"failed_count"`
}

// Finalize derives the stage counters and the overall status.
func (s *Summary) Finalize(finishedAt time.Time) {
	s.FinishedAt = finishedAt
	s.SuccessCount, s.SkippedCount, s.FailedCount = 0, 0, 0
	for _, st := range s.Stages {
		switch st.Status {
		case StatusSuccess:
			s.SuccessCount++
		case StatusSkipped:
			s.SkippedCount++
		default:
			s.FailedCount++
		}
	}
	s.Status = StatusSuccess
	if s.FailedCount > 0 {
		s.Status = StatusFailed
	}
}
