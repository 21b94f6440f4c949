package resilience

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// ClientConfig groups HTTPClient construction options.
type ClientConfig struct {
	Transport         http.RoundTripper
	Timeout           time.Duration
	RequestsPerSecond float64
}

// HTTPClient wraps an http.Client with pacing and a per-call timeout. Every
// request is attempted exactly once.
type HTTPClient struct {
	Client  *http.Client
	Limiter *rate.Limiter
	Timeout time.Duration
}

// NewHTTPClient builds an instrumented client. A zero Timeout means requests
// block until the server answers; a zero RequestsPerSecond disables pacing.
func NewHTTPClient(cfg ClientConfig) HTTPClient {
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return HTTPClient{
		Client:  &http.Client{Transport: otelhttp.NewTransport(base)},
		Limiter: rate.NewLimiter(limit, 1),
		Timeout: cfg.Timeout,
	}
}

// Do executes req once. The call timeout, when set, stays in force until the
// caller closes the response body.
func (cl HTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if cl.Client == nil {
		return nil, errors.New("resilience: http client not configured")
	}
	if cl.Limiter != nil {
		if err := cl.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return cl.doOnce(ctx, req)
}

func (cl HTTPClient) doOnce(ctx context.Context, req *http.Request) (*http.Response, error) {
	timeout := cl.Timeout
	if timeout <= 0 {
		timeout = cl.Client.Timeout
	}
	var callCtx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		callCtx, cancel = context.WithCancel(ctx)
	}
	resp, err := cl.Client.Do(req.WithContext(callCtx))
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
