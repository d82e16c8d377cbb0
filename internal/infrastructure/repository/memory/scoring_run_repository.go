package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
)

type ScoringRunRepository struct {
	mu    sync.RWMutex
	items map[string]scoringrun.Summary
}

func NewScoringRunRepository() *ScoringRunRepository {
	return &ScoringRunRepository{items: make(map[string]scoringrun.Summary)}
}

func (r *ScoringRunRepository) Save(_ context.Context, summary scoringrun.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[summary.RunID] = summary
	return nil
}

func (r *ScoringRunRepository) GetByID(_ context.Context, runID string) (scoringrun.Summary, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[runID]
	return s, ok, nil
}
