package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/usecase"
)

func (h *Handler) GetLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	standings, err := h.standingsService.Standings(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, item := range standings {
		items = append(items, standingToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamWeeklyPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamWeeklyPoints")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	rows, err := h.teamPointsService.ListTeamWeeklyPoints(ctx, leagueID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team weekly points failed", "league_id", leagueID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	total := 0
	items := make([]teamWeeklyPointsDTO, 0, len(rows))
	for _, row := range rows {
		total += row.Points
		items = append(items, teamWeeklyPointsToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, teamPointsResponseDTO{
		LeagueID:    leagueID,
		TeamID:      teamID,
		TotalPoints: total,
		Weeks:       items,
	})
}

func (h *Handler) ListTeamSchools(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamSchools")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	rawWeek := strings.TrimSpace(r.URL.Query().Get("week"))
	week, err := strconv.Atoi(rawWeek)
	if err != nil || week < 0 {
		writeError(ctx, w, fmt.Errorf("%w: week must be a non-negative integer", usecase.ErrInvalidInput))
		return
	}

	schools, err := h.ownershipService.OwnedSchools(ctx, leagueID, teamID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list team schools failed", "league_id", leagueID, "team_id", teamID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}
	if schools == nil {
		schools = []string{}
	}

	writeSuccess(ctx, w, http.StatusOK, teamSchoolsDTO{
		LeagueID:  leagueID,
		TeamID:    teamID,
		Week:      week,
		SchoolIDs: schools,
	})
}

func (h *Handler) ListLeagueEventBonuses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueEventBonuses")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	bonuses, err := h.eventBonusService.ListByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list league event bonuses failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventBonusDTO, 0, len(bonuses))
	for _, item := range bonuses {
		items = append(items, eventBonusToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListSchoolWeeklyPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSchoolWeeklyPoints")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	schoolID := strings.TrimSpace(r.PathValue("schoolID"))
	rows, err := h.schoolPointsService.ListSchoolPoints(ctx, seasonID, schoolID)
	if err != nil {
		h.logger.WarnContext(ctx, "list school weekly points failed", "season_id", seasonID, "school_id", schoolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]schoolWeeklyPointsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, schoolWeeklyPointsToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
