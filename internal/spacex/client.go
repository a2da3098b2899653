package spacex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"launchscroll/internal/logging"
)

const maxResponseBytes = 8 << 20

// Client queries the launch API
type Client struct {
	endpoint  string
	userAgent string
	timeout   time.Duration
	client    *http.Client
	breaker   circuitbreaker.CircuitBreaker[*http.Response]
	executor  failsafe.Executor[*http.Response]
	flights   singleflight.Group
	log       logrus.FieldLogger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

// WithTimeout bounds each round trip. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithCircuitBreaker makes the client fail fast for delay after threshold
// consecutive failures. No request is ever retried.
func WithCircuitBreaker(threshold uint, delay time.Duration) Option {
	return func(c *Client) {
		if threshold == 0 {
			c.breaker = nil
			return
		}
		c.breaker = newBreaker(threshold, delay, c)
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient creates a client for the given query endpoint
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:  endpoint,
		userAgent: "launchscroll",
		timeout:   10 * time.Second,
		client:    &http.Client{},
		log:       logging.Discard(),
	}
	c.breaker = newBreaker(3, 15*time.Second, c)
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "spacex")

	if c.breaker != nil {
		c.executor = failsafe.With[*http.Response](c.breaker)
	}
	return c
}

func newBreaker(threshold uint, delay time.Duration, c *Client) circuitbreaker.CircuitBreaker[*http.Response] {
	return circuitbreaker.NewBuilder[*http.Response]().
		HandleIf(func(resp *http.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode >= 500
		}).
		WithFailureThreshold(threshold).
		WithDelay(delay).
		WithSuccessThreshold(1).
		OnStateChanged(func(event circuitbreaker.StateChangedEvent) {
			c.log.WithFields(logrus.Fields{
				"from_state": stateName(event.OldState),
				"to_state":   stateName(event.NewState),
			}).Warn("circuit breaker state change")
		}).
		Build()
}

func stateName(state circuitbreaker.State) string {
	switch state {
	case circuitbreaker.ClosedState:
		return "closed"
	case circuitbreaker.HalfOpenState:
		return "half-open"
	case circuitbreaker.OpenState:
		return "open"
	default:
		return "unknown"
	}
}

// QueryLaunches fetches one page of launches whose name matches q.Search
// case-insensitively. Identical queries in flight at the same time share a
// single round trip; a caller whose ctx ends stops waiting for it.
func (c *Client) QueryLaunches(ctx context.Context, q Query) (*Page, error) {
	flightCtx := context.WithoutCancel(ctx)
	ch := c.flights.DoChan(q.key(), func() (interface{}, error) {
		return c.query(flightCtx, q)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		page := res.Val.(*Page)
		if res.Shared {
			// Callers must not share the backing array
			cp := *page
			cp.Docs = append(cp.Docs[:0:0], page.Docs...)
			page = &cp
		}
		return page, nil
	case <-ctx.Done():
		return nil, &NetworkError{Op: "query launches", Query: q, Err: ctx.Err()}
	}
}

func (c *Client) query(ctx context.Context, q Query) (*Page, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(newRequestBody(q))
	if err != nil {
		return nil, &NetworkError{Op: "encode query", Query: q, Err: err}
	}

	requestID := uuid.NewString()
	log := c.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"search":     q.Search,
		"page":       q.Page,
	})
	start := time.Now()

	resp, err := c.do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("X-Request-ID", requestID)
		return req, nil
	})
	if err != nil {
		log.WithError(err).Debug("launch query failed")
		return nil, &NetworkError{Op: "query launches", Query: q, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
		log.WithField("status", resp.StatusCode).Debug("launch query rejected")
		return nil, &NetworkError{Op: "query launches", Query: q, Err: apiErr}
	}

	var body responseBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, &NetworkError{Op: "decode launches", Query: q, Err: fmt.Errorf("%w: %v", ErrUnexpectedShape, err)}
	}
	if body.Docs == nil {
		return nil, &NetworkError{Op: "decode launches", Query: q, Err: fmt.Errorf("%w: missing docs", ErrUnexpectedShape)}
	}

	log.WithFields(logrus.Fields{
		"count":    len(*body.Docs),
		"duration": time.Since(start),
	}).Debug("launch query completed")

	return &Page{
		Docs:      *body.Docs,
		TotalDocs: body.TotalDocs,
	}, nil
}

func (c *Client) do(ctx context.Context, build func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	if c.executor == nil {
		req, err := build(ctx)
		if err != nil {
			return nil, err
		}
		return c.client.Do(req)
	}

	return c.executor.WithContext(ctx).Get(func() (*http.Response, error) {
		req, err := build(ctx)
		if err != nil {
			return nil, err
		}
		return c.client.Do(req)
	})
}
