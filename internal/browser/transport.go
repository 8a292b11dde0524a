package browser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	apperrors "github.com/emurenMRz/vdeck/internal/errors"
	"github.com/emurenMRz/vdeck/internal/logging"
)

// Transport performs a GET and returns the response body.
type Transport interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// HTTPTransport is a Transport over net/http. Any status other than 200 is
// an error.
type HTTPTransport struct {
	Client *http.Client
}

// NewHTTPTransport returns a transport with a request timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{Client: &http.Client{Timeout: timeout}}
}

func (t *HTTPTransport) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.ValidationError("build request").WithContext("url", url)
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, apperrors.ConnectionError("GET "+url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ConnectionError("read response", err).WithContext("url", url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ConnectionError(fmt.Sprintf("GET %s: %s", url, resp.Status), nil).
			WithContext("status", resp.StatusCode)
	}
	return body, nil
}

// Fetcher runs requests off the scheduler and posts their results back to
// it, so continuations never run concurrently with each other.
type Fetcher struct {
	ctx       context.Context
	transport Transport
	sched     Scheduler
	log       logging.Logger
	inflight  sync.WaitGroup
}

// NewFetcher returns a fetcher whose requests are bound to ctx.
func NewFetcher(ctx context.Context, transport Transport, sched Scheduler, log logging.Logger) *Fetcher {
	return &Fetcher{ctx: ctx, transport: transport, sched: sched, log: log}
}

// Get requests url and calls apply on the scheduler with the outcome.
func (f *Fetcher) Get(url string, apply func(body []byte, err error)) {
	f.inflight.Add(1)
	go func() {
		start := time.Now()
		body, err := f.transport.Get(f.ctx, url)
		f.log.Debug("Fetched", logging.String("url", url), logging.Duration("elapsed", time.Since(start)), logging.Bool("ok", err == nil))

		done := sync.OnceFunc(f.inflight.Done)
		if !f.sched.Post(func() {
			defer done()
			apply(body, err)
		}) {
			done()
		}
	}()
}

// Wait blocks until every request has been applied or dropped.
func (f *Fetcher) Wait() {
	f.inflight.Wait()
}
