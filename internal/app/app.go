package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/interfaces/httpapi"
)

func NewHTTPServer(rt *Runtime) (*http.Server, error) {
	if rt == nil {
		return nil, fmt.Errorf("runtime cannot be nil")
	}
	cfg := rt.Config

	handler := httpapi.NewHandler(httpapi.HandlerDeps{
		Standings:    rt.Services.Standings,
		TeamPoints:   rt.Services.TeamPoints,
		Ownership:    rt.Services.Ownership,
		EventBonuses: rt.Services.EventBonuses,
		SchoolPoints: rt.Services.SchoolPoints,
		Pipeline:     rt.Services.Pipeline,
		Logger:       rt.Logger.Named("httpapi"),
	})
	router := httpapi.NewRouter(handler, rt.Logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
