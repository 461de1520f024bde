// Package gateway is the HTTP client for the remote REST API that owns all
// dashboard data.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// Error is a non-2xx answer from the gateway
type Error struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("gateway %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a gateway 404
func IsNotFound(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.StatusCode == http.StatusNotFound
}

// StatusCode returns the gateway status carried by err, or 0.
func StatusCode(err error) int {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.StatusCode
	}
	return 0
}

type tokenKey struct{}

// WithToken returns a context whose gateway calls carry the given bearer
// token, so the gateway sees the same session as the viewer.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Metrics counts gateway calls
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the gateway collectors and registers them when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_requests_total",
				Help: "Total number of calls to the remote REST API",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_request_duration_seconds",
				Help:    "Remote REST API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requestsTotal, m.requestDuration)
	}
	return m
}

// Client talks JSON to the remote REST API
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logger.Logger
	metrics    *Metrics
}

// New creates a gateway client from configuration
func New(cfg config.GatewayConfig, appLogger *logger.Logger, metrics *Metrics) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse gateway base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	if appLogger == nil {
		appLogger = logger.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
		logger:     appLogger.WithComponent("gateway"),
		metrics:    metrics,
	}, nil
}

// do sends one request. route is the path template used as metric label.
func (c *Client) do(ctx context.Context, method, route, path string, query url.Values, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("gateway rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := *c.baseURL
	target.Path = c.baseURL.Path + path
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	c.metrics.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	if err != nil {
		c.metrics.requestsTotal.WithLabelValues(method, route, "error").Inc()
		c.logger.LogGatewayCall(method, path, 0, duration, err)
		return fmt.Errorf("gateway %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.metrics.requestsTotal.WithLabelValues(method, route, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.LogGatewayCall(method, path, resp.StatusCode, duration, err)
		return fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		gwErr := &Error{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    errorMessage(data),
		}
		c.logger.LogGatewayCall(method, path, resp.StatusCode, duration, gwErr)
		return gwErr
	}

	c.logger.LogGatewayCall(method, path, resp.StatusCode, duration, nil)

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode gateway response for %s %s: %w", method, path, err)
	}
	if r, ok := out.(dateReporter); ok {
		for _, bad := range r.badDates() {
			c.logger.Warnw("Ignoring unparsable gateway date", "method", method, "path", path, "value", bad)
		}
	}
	return nil
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}

func escape(id fmt.Stringer) string {
	return url.PathEscape(id.String())
}

// mapNotFound joins a gateway 404 with the domain sentinel so callers can
// match either.
func mapNotFound(err error, sentinel error) error {
	if err == nil {
		return nil
	}
	if IsNotFound(err) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}

var _ ports.Gateway = (*Client)(nil)
