package jenkins

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultTimeout     = 30 * time.Second
	DefaultRetryMax    = 2
	DefaultConcurrency = 8

	defaultMaxIdleConns        = 100
	defaultMaxConnsPerHost     = 100
	defaultMaxIdleConnsPerHost = 100
)

// Response is a fetched document.
type Response struct {
	URL        string
	StatusCode int
	Body       string
}

// NotFound reports if the server answered with 404.
func (r *Response) NotFound() bool {
	return r.StatusCode == http.StatusNotFound
}

// Fetcher retrieves a document by URL. Implementations must be safe for
// concurrent use. A 404 answer is returned as a Response, not as an error, so
// callers can decide whether a missing document is recoverable.
type Fetcher interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// ClientOptions tunes the HTTP client.
type ClientOptions struct {
	// Timeout is applied to each request attempt.
	Timeout time.Duration
	// RetryMax is the number of retries on connection errors and 5xx answers.
	RetryMax int
	// Concurrency bounds the number of requests in flight across the client.
	Concurrency int64
}

// Client is the HTTP Fetcher used against the CI server.
type Client struct {
	client *retryablehttp.Client
	sem    *semaphore.Weighted
}

// NewClient creates a client setting the http attributes to improve the
// connection reuse, with retries and a bound on concurrent requests.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RetryMax < 0 {
		opts.RetryMax = 0
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = defaultMaxIdleConns
	t.MaxConnsPerHost = defaultMaxConnsPerHost
	t.MaxIdleConnsPerHost = defaultMaxIdleConnsPerHost

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{
		Timeout:   opts.Timeout,
		Transport: t,
	}
	retryClient.RetryMax = opts.RetryMax
	retryLogger := log.New()
	retryLogger.SetLevel(log.WarnLevel)
	retryClient.Logger = retryLogger

	return &Client{
		client: retryClient,
		sem:    semaphore.NewWeighted(opts.Concurrency),
	}
}

// Get fetches url. Any status outside 2xx other than 404 is a TransportError.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer c.sem.Release(1)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	log.Debugf("Fetching %s", url)
	res, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	if res.StatusCode != http.StatusNotFound && (res.StatusCode < 200 || res.StatusCode > 299) {
		return nil, &TransportError{URL: url, StatusCode: res.StatusCode}
	}
	return &Response{URL: url, StatusCode: res.StatusCode, Body: string(body)}, nil
}
