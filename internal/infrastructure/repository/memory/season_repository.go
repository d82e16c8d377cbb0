package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/season"
)

type SeasonRepository struct {
	mu     sync.RWMutex
	items  map[string]season.Season
	awards map[string][]season.Award
}

func NewSeasonRepository(seasons []season.Season, awards []season.Award) *SeasonRepository {
	items := make(map[string]season.Season, len(seasons))
	for _, s := range seasons {
		items[s.ID] = s
	}
	bySeason := make(map[string][]season.Award)
	for _, a := range awards {
		bySeason[a.SeasonID] = append(bySeason[a.SeasonID], a)
	}

	return &SeasonRepository{items: items, awards: bySeason}
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[seasonID]
	return s, ok, nil
}

func (r *SeasonRepository) ListAwards(_ context.Context, seasonID string) ([]season.Award, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]season.Award(nil), r.awards[seasonID]...), nil
}
