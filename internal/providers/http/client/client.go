package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/resilience"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "RecipeDeck/1.0"

// Options configures an outbound client
type Options struct {
	Name            string
	BaseURL         string
	UserAgent       string
	Timeout         time.Duration
	RequestsPerSec  float64
	BreakerFailures uint32
	OnStateChange   func(name string, from, to resilience.State)
}

// Client wraps resty with rate limiting and a circuit breaker.
// It never retries: a failed call is reported once and the caller degrades.
type Client struct {
	Resty   *resty.Client
	Limiter *rate.Limiter
	Breaker *resilience.Breaker
	Mu      sync.RWMutex
}

// StatusError reports a non-2xx response
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// AsStatus unwraps a StatusError from err
func AsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// NewClient creates an HTTP client with circuit breaker protection
func NewClient(opts Options) *Client {
	if opts.Name == "" {
		opts.Name = "http-external"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 10
	}

	restyClient := resty.New()
	restyClient.
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", opts.UserAgent).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)
	if opts.BaseURL != "" {
		restyClient.SetBaseURL(opts.BaseURL)
	}

	breaker := resilience.New(opts.Name, resilience.Settings{
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: resilience.ConsecutiveFailures(opts.BreakerFailures),
		// A 4xx means the remote answered; only transport errors and 5xx count against it.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			se, ok := AsStatus(err)
			return ok && se.Code < http.StatusInternalServerError
		},
		OnStateChange: opts.OnStateChange,
	})

	c := &Client{
		Resty:   restyClient,
		Breaker: breaker,
	}
	c.SetRateLimit(opts.RequestsPerSec)
	return c
}

// SetBaseURL points the client at a different host
func (c *Client) SetBaseURL(url string) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetBaseURL(url)
}

// SetRateLimit configures rate limiting (requests per second, 0 is unlimited)
func (c *Client) SetRateLimit(rps float64) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if rps <= 0 {
		c.Limiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	c.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// Request creates a new request after the breaker and rate limiter admit it
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	if c.Breaker.State() == resilience.StateOpen {
		return nil, resilience.ErrCircuitOpen
	}

	c.Mu.RLock()
	limiter := c.Limiter
	c.Mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.Resty.R().SetContext(ctx), nil
}

// Do builds a request, sends it through the breaker and converts non-2xx
// responses into a StatusError. The response is returned in both cases.
func (c *Client) Do(ctx context.Context, send func(req *resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	req, err := c.Request(ctx)
	if err != nil {
		return nil, err
	}

	return resilience.Do(c.Breaker, func() (*resty.Response, error) {
		resp, err := send(req)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return resp, &StatusError{Code: resp.StatusCode(), Body: resp.Body()}
		}
		return resp, nil
	})
}

// BreakerState returns the current circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.Breaker.State()
}
