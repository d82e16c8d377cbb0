package ranking

import "testing"

func TestAsOf_UsesLatestPollAtOrBeforeWeek(t *testing.T) {
	entries := []Entry{
		{Week: 5, SchoolID: "ohio-state", Rank: 3},
		{Week: 5, SchoolID: "texas", Rank: 9},
		{Week: 6, SchoolID: "ohio-state", Rank: 2},
		{Week: 8, SchoolID: "texas", Rank: 1},
	}

	snap := AsOf(entries, 7)
	if rank, ok := snap.Rank("ohio-state"); !ok || rank != 2 {
		t.Fatalf("unexpected ohio-state rank: rank=%d ok=%v", rank, ok)
	}
	if _, ok := snap.Rank("texas"); ok {
		t.Fatalf("texas dropped out of week 6 poll and must be unranked")
	}

	if got := AsOf(entries, 4); len(got) != 0 {
		t.Fatalf("expected empty snapshot before first poll, got %v", got)
	}
}
