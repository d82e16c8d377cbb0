package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/schoolpoints"
)

type SchoolPointsRepository struct {
	mu    sync.RWMutex
	rules map[string]schoolpoints.Rules
	rows  map[schoolpoints.Key]schoolpoints.WeeklyPoints
}

func NewSchoolPointsRepository(rules map[string]schoolpoints.Rules) *SchoolPointsRepository {
	copied := make(map[string]schoolpoints.Rules, len(rules))
	for k, v := range rules {
		copied[k] = v
	}
	return &SchoolPointsRepository{
		rules: copied,
		rows:  make(map[schoolpoints.Key]schoolpoints.WeeklyPoints),
	}
}

func (r *SchoolPointsRepository) GetRules(_ context.Context, seasonID string) (schoolpoints.Rules, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules, ok := r.rules[seasonID]
	return rules, ok, nil
}

func (r *SchoolPointsRepository) ListBySeason(_ context.Context, seasonID string) ([]schoolpoints.WeeklyPoints, error) {
	return r.filter(func(p schoolpoints.WeeklyPoints) bool { return p.SeasonID == seasonID }), nil
}

func (r *SchoolPointsRepository) ListBySeasonWeek(_ context.Context, seasonID string, week int) ([]schoolpoints.WeeklyPoints, error) {
	return r.filter(func(p schoolpoints.WeeklyPoints) bool { return p.SeasonID == seasonID && p.Week == week }), nil
}

func (r *SchoolPointsRepository) ListBySchool(_ context.Context, seasonID, schoolID string) ([]schoolpoints.WeeklyPoints, error) {
	return r.filter(func(p schoolpoints.WeeklyPoints) bool { return p.SeasonID == seasonID && p.SchoolID == schoolID }), nil
}

func (r *SchoolPointsRepository) ReplaceWeek(_ context.Context, seasonID string, week int, rows []schoolpoints.WeeklyPoints, retain []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keep := make(map[string]struct{}, len(retain))
	for _, id := range retain {
		keep[id] = struct{}{}
	}
	for key := range r.rows {
		if key.SeasonID != seasonID || key.Week != week {
			continue
		}
		if _, ok := keep[key.SchoolID]; ok {
			continue
		}
		delete(r.rows, key)
	}
	for _, row := range rows {
		r.rows[row.Key()] = row
	}
	return nil
}

func (r *SchoolPointsRepository) filter(keep func(schoolpoints.WeeklyPoints) bool) []schoolpoints.WeeklyPoints {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schoolpoints.WeeklyPoints, 0)
	for _, row := range r.rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		return out[i].SchoolID < out[j].SchoolID
	})
	return out
}
