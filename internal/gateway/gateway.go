// Package gateway is the typed HTTP client for the analysis backend. It
// issues exactly one request per call: failures surface immediately so the
// panels can tell the user instead of silently retrying against a backend
// that may be computing an expensive analysis.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/weathervibes/weathervibes/internal/config"
	"github.com/weathervibes/weathervibes/internal/logging"
	"github.com/weathervibes/weathervibes/internal/metrics"
	"github.com/weathervibes/weathervibes/pkg/errors"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// Backend endpoint paths.
const (
	pathWhere   = "/api/where"
	pathWhen    = "/api/when"
	pathAdvisor = "/api/advisor"
)

const defaultUserAgent = "weathervibes-client/0.1.0"

// Gateway is the panel-facing surface of the backend client. Panels depend
// on this interface so tests can substitute a recording fake.
type Gateway interface {
	Where(ctx context.Context, req types.WhereRequest) (*types.WhereResponse, error)
	When(ctx context.Context, req types.WhenRequest) (*types.WhenResponse, error)
	Advisor(ctx context.Context, req types.AdvisorRequest) (*types.AdvisorResponse, error)
}

// Client implements Gateway over plain HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	log        logging.Logger
	metrics    *metrics.Metrics
}

var _ Gateway = (*Client)(nil)

// New validates the configured base URL and builds a Client. The config's
// timeout bounds every request end to end; callers can still cancel earlier
// through the context.
func New(cfg config.GatewayConfig, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New(errors.CodeValidation, "gateway base URL is required")
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "invalid gateway base URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Newf(errors.CodeValidation, "gateway base URL scheme must be http or https, got %q", parsed.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  defaultUserAgent,
		log:        logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("gateway")
	return c, nil
}

// Where requests location scores for a vibe across the current viewport.
func (c *Client) Where(ctx context.Context, req types.WhereRequest) (*types.WhereResponse, error) {
	var resp types.WhereResponse
	if err := c.post(ctx, pathWhere, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// When requests the time analysis for a vibe at a fixed location.
func (c *Client) When(ctx context.Context, req types.WhenRequest) (*types.WhenResponse, error) {
	var resp types.WhenResponse
	if err := c.post(ctx, pathWhen, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Advisor requests persona recommendations for a location and month.
func (c *Client) Advisor(ctx context.Context, req types.AdvisorRequest) (*types.AdvisorResponse, error) {
	var resp types.AdvisorResponse
	if err := c.post(ctx, pathAdvisor, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// post issues a single JSON POST and decodes the response into result.
// There is no retry loop here on purpose: one user action maps to at most
// one backend request.
func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "encode request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "build request")
	}

	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(path, "unreachable", elapsed)
		c.log.Warn("backend unreachable",
			logging.String("path", path),
			logging.String("request_id", requestID),
			logging.Err(err))
		return errors.Wrap(err, errors.CodeBackendUnreachable, "backend unreachable")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(path, "read_error", elapsed)
		return errors.Wrap(err, errors.CodeBackendUnreachable, "read response body")
	}

	c.log.Debug("backend call",
		logging.String("path", path),
		logging.String("request_id", requestID),
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", elapsed))

	if resp.StatusCode >= 400 {
		c.observe(path, "backend_error", elapsed)
		return c.backendError(path, resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		c.observe(path, "malformed", elapsed)
		return errors.Wrap(err, errors.CodeResponseMalformed, "decode backend response")
	}

	c.observe(path, "ok", elapsed)
	return nil
}

// backendError turns an error response body into an AppError. The backend
// reports failures as {"detail": "..."}; anything else degrades to a
// status-code-only message.
func (c *Client) backendError(path string, status int, body []byte) error {
	appErr := errors.Newf(errors.CodeBackendError, "%s failed: backend returned HTTP %d", Describe(path), status)
	var wire types.ErrorResponse
	if jsonErr := json.Unmarshal(body, &wire); jsonErr == nil && wire.Detail != "" {
		appErr = appErr.WithDetail(wire.Detail)
	}
	return appErr
}

func (c *Client) observe(path, outcome string, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.GatewayRequests.WithLabelValues(path, outcome).Inc()
	c.metrics.GatewayDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}

// Describe is a convenience for log and notification text.
func Describe(path string) string {
	switch path {
	case pathWhere:
		return "where analysis"
	case pathWhen:
		return "when analysis"
	case pathAdvisor:
		return "advisor analysis"
	default:
		return fmt.Sprintf("backend call %s", path)
	}
}
