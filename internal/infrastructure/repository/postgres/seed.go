package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo season into an empty database. It is a no-op
// once any season exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons WHERE deleted_at IS NULL`); err != nil {
		return dbError(err, "count seasons for bootstrap seed")
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return dbError(err, "begin seed tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, s := range memory.SeedSeasons() {
		if err := execNamed(ctx, tx, `
INSERT INTO seasons (public_id, year, bracket_format)
VALUES (:public_id, :year, :bracket_format)
ON CONFLICT (public_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"public_id":      s.ID,
			"year":           s.Year,
			"bracket_format": s.BracketFormat,
		}); err != nil {
			return fmt.Errorf("seed season %s: %w", s.ID, err)
		}
	}

	for _, a := range memory.SeedAwards() {
		if err := execNamed(ctx, tx, `
INSERT INTO season_awards (season_public_id, kind, school_public_id, week_number)
VALUES (:season_public_id, :kind, :school_public_id, :week_number)`, map[string]any{
			"season_public_id": a.SeasonID,
			"kind":             string(a.Kind),
			"school_public_id": a.SchoolID,
			"week_number":      a.Week,
		}); err != nil {
			return fmt.Errorf("seed award %s/%s: %w", a.SeasonID, a.Kind, err)
		}
	}

	for _, s := range memory.SeedSchools() {
		if err := execNamed(ctx, tx, `
INSERT INTO schools (public_id, name, conference)
VALUES (:public_id, :name, :conference)
ON CONFLICT (public_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"public_id":  s.ID,
			"name":       s.Name,
			"conference": s.Conference,
		}); err != nil {
			return fmt.Errorf("seed school %s: %w", s.ID, err)
		}
	}

	for _, e := range memory.SeedRankings() {
		if err := execNamed(ctx, tx, `
INSERT INTO ranking_snapshots (season_public_id, week_number, school_public_id, rank)
VALUES (:season_public_id, :week_number, :school_public_id, :rank)
ON CONFLICT (season_public_id, week_number, school_public_id) DO NOTHING`, map[string]any{
			"season_public_id": e.SeasonID,
			"week_number":      e.Week,
			"school_public_id": e.SchoolID,
			"rank":             e.Rank,
		}); err != nil {
			return fmt.Errorf("seed ranking %s week=%d: %w", e.SchoolID, e.Week, err)
		}
	}

	for _, g := range memory.SeedGames() {
		if err := execNamed(ctx, tx, `
INSERT INTO games (
    public_id, season_public_id, week_number, home_school_public_id, away_school_public_id,
    home_score, away_score, status, is_bowl_game, is_playoff_game, playoff_round,
    is_conference_championship, bowl_name
)
VALUES (
    :public_id, :season_public_id, :week_number, :home_school_public_id, :away_school_public_id,
    :home_score, :away_score, :status, :is_bowl_game, :is_playoff_game, :playoff_round,
    :is_conference_championship, :bowl_name
)
ON CONFLICT (public_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"public_id":                  g.ID,
			"season_public_id":           g.SeasonID,
			"week_number":                g.Week,
			"home_school_public_id":      g.HomeSchoolID,
			"away_school_public_id":      g.AwaySchoolID,
			"home_score":                 intPtrToNullInt(g.HomeScore),
			"away_score":                 intPtrToNullInt(g.AwayScore),
			"status":                     string(g.Status),
			"is_bowl_game":               g.IsBowlGame,
			"is_playoff_game":            g.IsPlayoffGame,
			"playoff_round":              string(g.PlayoffRound),
			"is_conference_championship": g.IsConferenceChampionship,
			"bowl_name":                  g.BowlName,
		}); err != nil {
			return fmt.Errorf("seed game %s: %w", g.ID, err)
		}
	}

	for _, l := range memory.SeedLeagues() {
		if err := execNamed(ctx, tx, `
INSERT INTO leagues (public_id, name, season_public_id)
VALUES (:public_id, :name, :season_public_id)
ON CONFLICT (public_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"public_id":        l.ID,
			"name":             l.Name,
			"season_public_id": l.SeasonID,
		}); err != nil {
			return fmt.Errorf("seed league %s: %w", l.ID, err)
		}
		for bonusType, points := range l.BonusPoints {
			if err := execNamed(ctx, tx, `
INSERT INTO league_bonus_settings (league_public_id, bonus_type, points)
VALUES (:league_public_id, :bonus_type, :points)
ON CONFLICT (league_public_id, bonus_type) DO NOTHING`, map[string]any{
				"league_public_id": l.ID,
				"bonus_type":       string(bonusType),
				"points":           points,
			}); err != nil {
				return fmt.Errorf("seed league %s bonus %s: %w", l.ID, bonusType, err)
			}
		}
	}

	for _, t := range memory.SeedFantasyTeams() {
		if err := execNamed(ctx, tx, `
INSERT INTO fantasy_teams (public_id, league_public_id, name)
VALUES (:public_id, :league_public_id, :name)
ON CONFLICT (public_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"public_id":        t.ID,
			"league_public_id": t.LeagueID,
			"name":             t.Name,
		}); err != nil {
			return fmt.Errorf("seed fantasy team %s: %w", t.ID, err)
		}
	}

	for _, p := range memory.SeedRosterPeriods() {
		if err := execNamed(ctx, tx, `
INSERT INTO roster_periods (league_public_id, fantasy_team_public_id, school_public_id, start_week, end_week)
VALUES (:league_public_id, :fantasy_team_public_id, :school_public_id, :start_week, :end_week)`, map[string]any{
			"league_public_id":       p.LeagueID,
			"fantasy_team_public_id": p.TeamID,
			"school_public_id":       p.SchoolID,
			"start_week":             p.StartWeek,
			"end_week":               intPtrToNullInt(p.EndWeek),
		}); err != nil {
			return fmt.Errorf("seed roster period team=%s school=%s: %w", p.TeamID, p.SchoolID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "commit seed tx")
	}
	return nil
}

func execNamed(ctx context.Context, tx *sqlx.Tx, query string, arg map[string]any) error {
	sqlQuery, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("bind named query: %w", err)
	}
	sqlQuery = tx.Rebind(sqlQuery)
	if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
		return dbError(err, "exec seed insert")
	}
	return nil
}
