package jobqueue

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ScoringRunsPath is the internal job route QStash delivers scoring runs to.
const ScoringRunsPath = "/v1/internal/jobs/scoring-runs"

type QStashPublisherConfig struct {
	BaseURL          string
	Token            string
	TargetBaseURL    string
	Retries          int
	InternalJobToken string
	Timeout          time.Duration
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// QStashPublisher hands scoring runs to Upstash QStash, which calls back the
// internal job endpoint with its own retry and delay handling.
type QStashPublisher struct {
	client           *http.Client
	baseURL          string
	token            string
	targetBaseURL    string
	retries          int
	internalJobToken string
	logger           *logging.Logger
	breaker          *resilience.CircuitBreaker
}

type scoringRunPayload struct {
	Mode     string `json:"mode"`
	SeasonID string `json:"season_id"`
	Week     *int   `json:"week,omitempty"`
	LeagueID string `json:"league_id,omitempty"`
}

type publishResponse struct {
	MessageID string `json:"messageId"`
}

func NewQStashPublisher(cfg QStashPublisherConfig, logger *logging.Logger) *QStashPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	var breaker *resilience.CircuitBreaker
	if cfg.CircuitBreaker.Enabled {
		breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
		breaker = resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq)
	}

	return &QStashPublisher{
		client:           &http.Client{Timeout: timeout},
		baseURL:          strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:            strings.TrimSpace(cfg.Token),
		targetBaseURL:    strings.TrimRight(strings.TrimSpace(cfg.TargetBaseURL), "/"),
		retries:          cfg.Retries,
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		logger:           logger,
		breaker:          breaker,
	}
}

// PublishScoringRun enqueues req for delivery after delay and returns the
// QStash message id. Identical requests share a deduplication id.
func (p *QStashPublisher) PublishScoringRun(ctx context.Context, req scoringrun.Request, delay time.Duration) (string, error) {
	if err := req.Validate(); err != nil {
		return "", crerr.Wrap(err, "invalid scoring run request")
	}
	if p.token == "" {
		return "", crerr.New("QSTASH_TOKEN is required")
	}
	if p.breaker != nil {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "qstash circuit breaker rejected request", "state", p.breaker.State())
			return "", crerr.Wrap(err, "qstash is temporarily unavailable")
		}
	}

	baseURL, err := validateHTTPBaseURL(p.baseURL)
	if err != nil {
		return "", crerr.Wrap(err, "invalid QSTASH_BASE_URL")
	}
	targetBaseURL, err := validateHTTPBaseURL(p.targetBaseURL)
	if err != nil {
		return "", crerr.Wrap(err, "invalid QSTASH_TARGET_BASE_URL")
	}

	targetURL := targetBaseURL + ScoringRunsPath
	publishURL := baseURL + "/v2/publish/" + targetURL

	payload := scoringRunPayload{Mode: string(req.Mode), SeasonID: req.SeasonID, LeagueID: req.LeagueID}
	if req.Mode == scoringrun.ModeWeek {
		week := req.Week
		payload.Week = &week
	}
	body, err := jsoniter.Marshal(payload)
	if err != nil {
		return "", crerr.Wrap(err, "marshal scoring run payload")
	}
	dedupID := deduplicationID(req)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("qstash.target_url", targetURL),
			attribute.String("qstash.deduplication_id", dedupID),
			attribute.String("qstash.request_body", string(body)),
		)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, strings.NewReader(string(body)))
	if err != nil {
		return "", crerr.Wrap(err, "create qstash request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Upstash-Method", http.MethodPost)
	httpReq.Header.Set("Upstash-Deduplication-Id", dedupID)
	if p.retries > 0 {
		httpReq.Header.Set("Upstash-Retries", strconv.Itoa(p.retries))
	}
	if delay > 0 {
		httpReq.Header.Set("Upstash-Delay", normalizeDelay(delay))
	}
	if p.internalJobToken != "" {
		httpReq.Header.Set("Upstash-Forward-X-Internal-Job-Token", p.internalJobToken)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		callErr := resilience.MarkTransient(crerr.Wrapf(err, "publish qstash job target_url=%s", targetURL))
		p.record(callErr)
		return "", callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode/100 != 2 {
		callErr := fmt.Errorf("publish qstash job status=%d target_url=%s body=%s", resp.StatusCode, targetURL, strings.TrimSpace(string(raw)))
		if isRetryableStatus(resp.StatusCode) {
			callErr = resilience.MarkTransient(callErr)
		}
		p.record(callErr)
		return "", callErr
	}
	p.record(nil)

	var out publishResponse
	if err := jsoniter.Unmarshal(raw, &out); err != nil {
		return "", crerr.Wrap(err, "decode qstash publish response")
	}

	p.logger.InfoContext(ctx, "scoring run published",
		"message_id", out.MessageID,
		"mode", string(req.Mode),
		"season_id", req.SeasonID,
		"delay", normalizeDelay(delay),
		"deduplication_id", dedupID,
	)
	return out.MessageID, nil
}

func (p *QStashPublisher) record(err error) {
	if p.breaker == nil {
		return
	}
	if resilience.IsTransient(err) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

func deduplicationID(req scoringrun.Request) string {
	parts := []string{"scoring-run", string(req.Mode), req.SeasonID}
	switch req.Mode {
	case scoringrun.ModeWeek:
		parts = append(parts, "w"+strconv.Itoa(req.Week))
	case scoringrun.ModeLeague:
		parts = append(parts, req.LeagueID)
	}
	return strings.Join(parts, ":")
}

func normalizeDelay(delay time.Duration) string {
	if delay <= 0 {
		return "0s"
	}
	return strconv.Itoa(int(delay.Round(time.Second).Seconds())) + "s"
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
