package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/eventbonus"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/league"
	qb "github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *LeagueRepository) ListBySeason(ctx context.Context, seasonID string) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues by season query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, dbError(err, "get league by id")
	}

	settings, err := r.bonusSettings(ctx, []string{row.PublicID})
	if err != nil {
		return league.League{}, false, err
	}
	return toLeague(row, settings[row.PublicID]), true, nil
}

func (r *LeagueRepository) list(ctx context.Context, query string, args []any) ([]league.League, error) {
	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "select leagues")
	}
	if len(rows) == 0 {
		return []league.League{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PublicID)
	}
	settings, err := r.bonusSettings(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, toLeague(row, settings[row.PublicID]))
	}
	return out, nil
}

func (r *LeagueRepository) bonusSettings(ctx context.Context, leagueIDs []string) (map[string]map[eventbonus.Type]int, error) {
	query, args, err := qb.Select("*").From("league_bonus_settings").
		Where(qb.In("league_public_id", stringsToAny(leagueIDs))).
		OrderBy("league_public_id", "bonus_type").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league bonus settings query: %w", err)
	}

	var rows []leagueBonusSettingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "select league bonus settings")
	}

	out := make(map[string]map[eventbonus.Type]int, len(leagueIDs))
	for _, row := range rows {
		if out[row.LeagueID] == nil {
			out[row.LeagueID] = make(map[eventbonus.Type]int)
		}
		out[row.LeagueID][eventbonus.Type(row.BonusType)] = row.Points
	}
	return out, nil
}

func toLeague(row leagueTableModel, settings map[eventbonus.Type]int) league.League {
	if settings == nil {
		settings = map[eventbonus.Type]int{}
	}
	return league.League{
		ID:          row.PublicID,
		Name:        row.Name,
		SeasonID:    row.SeasonID,
		BonusPoints: settings,
	}
}
