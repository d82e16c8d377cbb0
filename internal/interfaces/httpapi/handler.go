package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/usecase"
)

type Handler struct {
	standingsService    *usecase.StandingsService
	teamPointsService   *usecase.TeamPointsService
	ownershipService    *usecase.OwnershipService
	eventBonusService   *usecase.EventBonusService
	schoolPointsService *usecase.SchoolPointsService
	pipeline            *usecase.ScoringPipeline
	logger              *logging.Logger
	validator           *validator.Validate
}

type HandlerDeps struct {
	Standings    *usecase.StandingsService
	TeamPoints   *usecase.TeamPointsService
	Ownership    *usecase.OwnershipService
	EventBonuses *usecase.EventBonusService
	SchoolPoints *usecase.SchoolPointsService
	Pipeline     *usecase.ScoringPipeline
	Logger       *logging.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingsService:    deps.Standings,
		teamPointsService:   deps.TeamPoints,
		ownershipService:    deps.Ownership,
		eventBonusService:   deps.EventBonuses,
		schoolPointsService: deps.SchoolPoints,
		pipeline:            deps.Pipeline,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
