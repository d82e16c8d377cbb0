package roster

import "sort"

// OwnedSchools returns the schools the team owned during week, sorted.
func OwnedSchools(periods []Period, teamID string, week int) []string {
	seen := make(map[string]struct{})
	for _, p := range periods {
		if p.TeamID != teamID || !p.Covers(week) {
			continue
		}
		seen[p.SchoolID] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// OwnersByWeek maps each school to the teams owning it during week.
func OwnersByWeek(periods []Period, week int) map[string][]string {
	out := make(map[string][]string)
	for _, p := range periods {
		if !p.Covers(week) {
			continue
		}
		out[p.SchoolID] = appendUnique(out[p.SchoolID], p.TeamID)
	}
	for id := range out {
		sort.Strings(out[id])
	}
	return out
}

type IssueKind string

const (
	IssueUnowned        IssueKind = "unowned"
	IssueMultipleOwners IssueKind = "multiple_owners"
	IssueInvalidPeriod  IssueKind = "invalid_period"
)

// IntegrityIssue flags a week in which a drafted school does not have exactly
// one owner, or a period that is malformed.
type IntegrityIssue struct {
	LeagueID string
	SchoolID string
	Week     int
	Kind     IssueKind
	Owners   []string
	Detail   string
}

// CheckWeek verifies ownership exclusivity for every school rostered in the
// league at or before week. Schools first rostered after week are not
// drafted yet and are ignored.
func CheckWeek(leagueID string, periods []Period, week int) []IntegrityIssue {
	firstWeek := make(map[string]int)
	var out []IntegrityIssue
	for _, p := range periods {
		if err := p.Validate(); err != nil {
			out = append(out, IntegrityIssue{
				LeagueID: leagueID,
				SchoolID: p.SchoolID,
				Week:     week,
				Kind:     IssueInvalidPeriod,
				Owners:   []string{p.TeamID},
				Detail:   err.Error(),
			})
			continue
		}
		if start, ok := firstWeek[p.SchoolID]; !ok || p.StartWeek < start {
			firstWeek[p.SchoolID] = p.StartWeek
		}
	}

	owners := OwnersByWeek(periods, week)
	schools := make([]string, 0, len(firstWeek))
	for id := range firstWeek {
		schools = append(schools, id)
	}
	sort.Strings(schools)

	for _, id := range schools {
		if firstWeek[id] > week {
			continue
		}
		switch n := len(owners[id]); {
		case n == 0:
			out = append(out, IntegrityIssue{
				LeagueID: leagueID,
				SchoolID: id,
				Week:     week,
				Kind:     IssueUnowned,
			})
		case n > 1:
			out = append(out, IntegrityIssue{
				LeagueID: leagueID,
				SchoolID: id,
				Week:     week,
				Kind:     IssueMultipleOwners,
				Owners:   owners[id],
			})
		}
	}
	return out
}

func appendUnique(items []string, v string) []string {
	for _, item := range items {
		if item == v {
			return items
		}
	}
	return append(items, v)
}
