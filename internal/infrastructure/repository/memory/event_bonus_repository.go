package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/eventbonus"
)

type EventBonusRepository struct {
	mu    sync.RWMutex
	items map[eventbonus.Key]eventbonus.Bonus
}

func NewEventBonusRepository() *EventBonusRepository {
	return &EventBonusRepository{items: make(map[eventbonus.Key]eventbonus.Bonus)}
}

func (r *EventBonusRepository) ListByLeagueSeason(_ context.Context, leagueID, seasonID string) ([]eventbonus.Bonus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]eventbonus.Bonus, 0)
	for key, item := range r.items {
		if key.LeagueID == leagueID && key.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	eventbonus.Sort(out)
	return out, nil
}

func (r *EventBonusRepository) ReplaceSeason(_ context.Context, leagueID, seasonID string, items []eventbonus.Bonus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.items {
		if key.LeagueID == leagueID && key.SeasonID == seasonID {
			delete(r.items, key)
		}
	}
	for _, item := range items {
		r.items[item.Key()] = item
	}
	return nil
}

func (r *EventBonusRepository) ReplaceWeek(_ context.Context, leagueID, seasonID string, week int, items []eventbonus.Bonus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.items {
		if key.LeagueID == leagueID && key.SeasonID == seasonID && key.Week == week {
			delete(r.items, key)
		}
	}
	for _, item := range items {
		if item.Week != week {
			continue
		}
		r.items[item.Key()] = item
	}
	return nil
}
