package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicScoringRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.GetLeagueStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/event-bonuses", handler.ListLeagueEventBonuses)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams/{teamID}/points", handler.ListTeamWeeklyPoints)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams/{teamID}/schools", handler.ListTeamSchools)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/schools/{schoolID}/points", handler.ListSchoolWeeklyPoints)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/scoring-runs", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunScoring)))
	mux.Handle("GET /v1/internal/jobs/scoring-runs/{runID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GetScoringRun)))
}
