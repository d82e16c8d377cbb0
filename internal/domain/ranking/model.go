package ranking

const (
	Top25 = 25
	Top10 = 10
)

// Entry is one school's poll position in a weekly ranking snapshot.
type Entry struct {
	SeasonID string
	Week     int
	SchoolID string
	Rank     int
}

// Snapshot maps school id to rank for a single poll.
type Snapshot map[string]int

// Rank returns the school's rank, or false when it is unranked.
func (s Snapshot) Rank(schoolID string) (int, bool) {
	rank, ok := s[schoolID]
	if !ok || rank <= 0 {
		return 0, false
	}
	return rank, true
}

// AsOf returns the most recent poll published at or before week. Polls are
// taken whole: a school missing from that poll is unranked even if an older
// poll listed it.
func AsOf(entries []Entry, week int) Snapshot {
	latest := -1
	for _, item := range entries {
		if item.Week <= week && item.Week > latest {
			latest = item.Week
		}
	}
	out := make(Snapshot)
	if latest < 0 {
		return out
	}
	for _, item := range entries {
		if item.Week != latest || item.Rank <= 0 {
			continue
		}
		out[item.SchoolID] = item.Rank
	}
	return out
}
