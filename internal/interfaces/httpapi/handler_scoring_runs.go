package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/usecase"
)

const maxScoringRunBodyBytes = 1 << 16

type scoringRunRequest struct {
	Mode     string `json:"mode" validate:"required,oneof=week season league"`
	SeasonID string `json:"season_id" validate:"required,max=64"`
	Week     *int   `json:"week" validate:"required_if=Mode week,omitempty,min=0"`
	LeagueID string `json:"league_id" validate:"required_if=Mode league,max=64"`
}

func (h *Handler) RunScoring(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScoring")
	defer span.End()

	if h.pipeline == nil {
		writeError(ctx, w, fmt.Errorf("%w: scoring pipeline is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxScoringRunBodyBytes+1))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if len(body) > maxScoringRunBodyBytes {
		writeError(ctx, w, fmt.Errorf("%w: request body too large", usecase.ErrInvalidInput))
		return
	}

	var req scoringRunRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid json body: %v", usecase.ErrInvalidInput, err))
		return
	}
	req.Mode = strings.ToLower(strings.TrimSpace(req.Mode))
	req.SeasonID = strings.TrimSpace(req.SeasonID)
	req.LeagueID = strings.TrimSpace(req.LeagueID)
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	mode, err := scoringrun.ParseMode(req.Mode)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}
	runReq := scoringrun.Request{
		Mode:     mode,
		SeasonID: req.SeasonID,
		LeagueID: req.LeagueID,
	}
	if req.Week != nil {
		runReq.Week = *req.Week
	}

	summary, err := h.pipeline.Run(ctx, runReq)
	if err != nil {
		h.logger.WarnContext(ctx, "scoring run failed", "mode", req.Mode, "season_id", req.SeasonID, "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "scoring run finished",
		"run_id", summary.RunID,
		"status", summary.Status,
		"failed_stages", summary.FailedCount,
		"issues", len(summary.Issues),
	)
	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) GetScoringRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoringRun")
	defer span.End()

	if h.pipeline == nil {
		writeError(ctx, w, fmt.Errorf("%w: scoring pipeline is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	runID := strings.TrimSpace(r.PathValue("runID"))
	summary, err := h.pipeline.GetRun(ctx, runID)
	if err != nil {
		if !errors.Is(err, usecase.ErrNotFound) {
			h.logger.WarnContext(ctx, "get scoring run failed", "run_id", runID, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}
