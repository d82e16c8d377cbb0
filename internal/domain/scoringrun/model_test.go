package scoringrun

import (
	"testing"
	"time"
)

func TestRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{name: "week", req: Request{Mode: ModeWeek, SeasonID: "2025", Week: 3}},
		{name: "season", req: Request{Mode: ModeSeason, SeasonID: "2025"}},
		{name: "league", req: Request{Mode: ModeLeague, SeasonID: "2025", LeagueID: "l1"}},
		{name: "league without id", req: Request{Mode: ModeLeague, SeasonID: "2025"}, wantErr: true},
		{name: "missing season", req: Request{Mode: ModeSeason}, wantErr: true},
		{name: "unknown mode", req: Request{Mode: "all", SeasonID: "2025"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() err=%v wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestSummaryFinalize(t *testing.T) {
	s := Summary{Stages: []StageResult{
		{Stage: StageBracket, Status: StatusSuccess},
		{Stage: StageSchoolPoints, Status: StatusFailed},
		{Stage: StageStandings, Status: StatusSkipped},
	}}
	s.Finalize(time.Unix(10, 0))

	if s.Status != StatusFailed || s.SuccessCount != 1 || s.FailedCount != 1 || s.SkippedCount != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
