package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/ranking"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/school"
)

type SchoolRepository struct {
	mu    sync.RWMutex
	items []school.School
}

func NewSchoolRepository(schools []school.School) *SchoolRepository {
	items := append([]school.School(nil), schools...)
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return &SchoolRepository{items: items}
}

func (r *SchoolRepository) List(_ context.Context) ([]school.School, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]school.School(nil), r.items...), nil
}

type RankingRepository struct {
	mu       sync.RWMutex
	bySeason map[string][]ranking.Entry
}

func NewRankingRepository(entries []ranking.Entry) *RankingRepository {
	bySeason := make(map[string][]ranking.Entry)
	for _, e := range entries {
		bySeason[e.SeasonID] = append(bySeason[e.SeasonID], e)
	}
	return &RankingRepository{bySeason: bySeason}
}

func (r *RankingRepository) ListBySeason(_ context.Context, seasonID string) ([]ranking.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]ranking.Entry(nil), r.bySeason[seasonID]...), nil
}
