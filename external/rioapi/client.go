package rioapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/rio-stats/internal/domain/webstats"
	"github.com/riskibarqy/rio-stats/internal/platform/cache"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
	"github.com/riskibarqy/rio-stats/internal/platform/resilience"
	"github.com/riskibarqy/rio-stats/internal/usecase"
)

const (
	defaultBaseURL      = "https://api.projectrio.app"
	defaultRetryBackoff = time.Second
	maxResponseBytes    = 16 << 20
)

var (
	rioKeyParamRegex = regexp.MustCompile(`rio_key"?\s*[:=]\s*"?[^&\s"',}]+`)
	htmlMessageRegex = regexp.MustCompile(`(?s)<p>(.*?)</p>`)
	errRioTransient  = crerr.New("rio api transient failure")
)

// RequestObserver receives one call per logical request, after retries.
type RequestObserver interface {
	ObserveRequest(endpoint, outcome string, elapsed time.Duration)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	RioKey         string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Cache          cache.Store
	Observer       RequestObserver
}

type Client struct {
	httpClient   *http.Client
	baseURL      string
	rioKey       string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	cache        *cache.Loader
	flight       resilience.SingleFlight
	observer     RequestObserver
}

// StatusError is a non-2xx answer. Message is the server's description with
// any HTML stripped.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rio api status=%d: %s", e.StatusCode, e.Message)
}

func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	c := &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		rioKey:       strings.TrimSpace(cfg.RioKey),
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logging.OrDefault(cfg.Logger).Named("rioapi"),
		breaker:      resilience.NewFromConfig(cfg.CircuitBreaker),
		observer:     cfg.Observer,
	}
	if cfg.Cache != nil {
		c.cache = cache.NewLoader(cfg.Cache)
	}
	return c
}

// Breaker is nil when the circuit breaker is disabled.
func (c *Client) Breaker() *resilience.CircuitBreaker {
	return c.breaker
}

// Invalidate drops cached responses of one endpoint, e.g. "/stats/".
func (c *Client) Invalidate(ctx context.Context, endpoint string) {
	if c.cache == nil {
		return
	}
	c.cache.Store().DeletePrefix(ctx, endpoint)
}

type request struct {
	method string
	path   string
	params []webstats.Param
	body   map[string]any
}

func (r request) cacheKey() (string, error) {
	if r.method == http.MethodPost {
		raw, err := sonic.ConfigStd.Marshal(r.body)
		if err != nil {
			return "", err
		}
		return r.path + "#" + string(raw), nil
	}
	return r.path + "?" + encodeParams(r.params), nil
}

func (c *Client) fetch(ctx context.Context, req request) ([]byte, error) {
	key, err := req.cacheKey()
	if err != nil {
		return nil, fmt.Errorf("build cache key: %w", err)
	}

	load := func(ctx context.Context) ([]byte, error) {
		return c.send(ctx, req)
	}
	if c.cache != nil {
		return c.cache.GetOrLoad(ctx, key, load)
	}

	out, err, _ := c.flight.Do(key, func() (any, error) {
		return load(ctx)
	})
	if err != nil {
		return nil, err
	}
	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) send(ctx context.Context, req request) ([]byte, error) {
	started := time.Now()
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "rio api circuit breaker rejected request", "endpoint", req.path, "state", c.breaker.State())
			c.observe(req.path, "rejected", started)
			return nil, fmt.Errorf("%w: rio api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	raw, err := c.executeRequest(ctx, req)
	if c.breaker != nil {
		if err != nil && isCircuitFailure(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		c.observe(req.path, "error", started)
		return nil, err
	}
	c.observe(req.path, "ok", started)
	return raw, nil
}

func (c *Client) observe(endpoint, outcome string, started time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(endpoint, outcome, time.Since(started))
	}
}

func (c *Client) newHTTPRequest(ctx context.Context, req request) (*http.Request, error) {
	fullURL := c.baseURL + req.path
	var body io.Reader
	if req.method == http.MethodPost {
		payload := make(map[string]any, len(req.body)+1)
		for k, v := range req.body {
			payload[k] = v
		}
		payload["rio_key"] = c.rioKey
		raw, err := sonic.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	} else if encoded := encodeParams(req.params); encoded != "" {
		fullURL += "?" + encoded
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, fullURL, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("accept", "application/json")
	if body != nil {
		httpReq.Header.Set("content-type", "application/json")
	}
	return httpReq, nil
}

func (c *Client) executeRequest(ctx context.Context, req request) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		httpReq, err := c.newHTTPRequest(ctx, req)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = crerr.Wrapf(errRioTransient, "send request: %s", c.sanitize(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errRioTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				statusErr := &StatusError{
					StatusCode: resp.StatusCode,
					Message:    c.sanitize(errorMessage(resp.Header.Get("content-type"), raw)),
				}
				if !isRetryableStatus(resp.StatusCode) {
					c.logger.WarnContext(ctx, "rio api request rejected", "endpoint", req.path, "status", resp.StatusCode, "message", statusErr.Message)
					return nil, statusErr
				}
				lastErr = crerr.Mark(statusErr, errRioTransient)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("rio api request failed")
	}
	c.logger.WarnContext(ctx, "rio api request failed", "endpoint", req.path, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if c.rioKey != "" {
		value = strings.ReplaceAll(value, c.rioKey, "REDACTED")
	}
	return rioKeyParamRegex.ReplaceAllString(value, "rio_key=REDACTED")
}

// errorMessage prefers the JSON "description", then the first HTML paragraph.
func errorMessage(contentType string, body []byte) string {
	switch {
	case strings.Contains(contentType, "application/json"):
		var payload struct {
			Description string `json:"description"`
		}
		if err := sonic.Unmarshal(body, &payload); err == nil && payload.Description != "" {
			return payload.Description
		}
	case strings.Contains(contentType, "text/html"):
		if match := htmlMessageRegex.FindSubmatch(body); match != nil {
			return strings.TrimSpace(string(match[1]))
		}
	}
	return abbreviateBody(body)
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errRioTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	const limit = 240
	text := strings.TrimSpace(string(body))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
