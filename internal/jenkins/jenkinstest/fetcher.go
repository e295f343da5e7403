// Package jenkinstest provides an in-memory jenkins.Fetcher for tests.
package jenkinstest

import (
	"context"
	"net/http"
	"sync"

	"github.com/kreyling/cragg/internal/jenkins"
)

// Fetcher serves documents registered by URL. Unknown URLs are answered with
// a 404 response.
type Fetcher struct {
	mu        sync.Mutex
	documents map[string]*jenkins.Response
	errors    map[string]error
	requests  map[string]int
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		documents: map[string]*jenkins.Response{},
		errors:    map[string]error{},
		requests:  map[string]int{},
	}
}

// Add registers body as a 200 answer for url.
func (f *Fetcher) Add(url, body string) *Fetcher {
	return f.AddStatus(url, http.StatusOK, body)
}

// AddStatus registers an answer with an explicit status code.
func (f *Fetcher) AddStatus(url string, status int, body string) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents[url] = &jenkins.Response{URL: url, StatusCode: status, Body: body}
	return f
}

// AddError makes every request to url fail with err.
func (f *Fetcher) AddError(url string, err error) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[url] = err
	return f
}

func (f *Fetcher) Get(ctx context.Context, url string) (*jenkins.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, &jenkins.TransportError{URL: url, Err: err}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests[url]++
	if err, ok := f.errors[url]; ok {
		return nil, &jenkins.TransportError{URL: url, Err: err}
	}
	if res, ok := f.documents[url]; ok {
		cp := *res
		return &cp, nil
	}
	return &jenkins.Response{URL: url, StatusCode: http.StatusNotFound, Body: "Not found"}, nil
}

// Requests returns how many times url was requested.
func (f *Fetcher) Requests(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[url]
}

// Total returns the number of requests served.
func (f *Fetcher) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.requests {
		total += n
	}
	return total
}
