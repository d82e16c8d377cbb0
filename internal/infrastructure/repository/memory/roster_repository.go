package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/roster"
)

type RosterRepository struct {
	mu       sync.RWMutex
	byLeague map[string][]roster.Period
}

func NewRosterRepository(periods []roster.Period) *RosterRepository {
	byLeague := make(map[string][]roster.Period)
	for _, p := range periods {
		byLeague[p.LeagueID] = append(byLeague[p.LeagueID], p)
	}
	return &RosterRepository{byLeague: byLeague}
}

func (r *RosterRepository) ListByLeague(_ context.Context, leagueID string) ([]roster.Period, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]roster.Period(nil), r.byLeague[leagueID]...), nil
}
