package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	items map[string]game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := make(map[string]game.Game, len(games))
	for _, g := range games {
		items[g.ID] = g
	}
	return &GameRepository{items: items}
}

func (r *GameRepository) ListBySeason(_ context.Context, seasonID string) ([]game.Game, error) {
	return r.filter(func(g game.Game) bool { return g.SeasonID == seasonID }), nil
}

func (r *GameRepository) ListBySeasonWeek(_ context.Context, seasonID string, week int) ([]game.Game, error) {
	return r.filter(func(g game.Game) bool { return g.SeasonID == seasonID && g.Week == week }), nil
}

func (r *GameRepository) UpdateWeek(_ context.Context, gameID string, week int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.items[gameID]
	if !ok {
		return fmt.Errorf("game %s not found", gameID)
	}
	g.Week = week
	r.items[gameID] = g
	return nil
}

// Upsert stores g, replacing any game with the same id.
func (r *GameRepository) Upsert(g game.Game) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[g.ID] = g
}

func (r *GameRepository) filter(keep func(game.Game) bool) []game.Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, g := range r.items {
		if keep(g) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
