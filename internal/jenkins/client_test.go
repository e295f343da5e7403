package jenkins

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("<build/>"))
		case "/forbidden":
			w.WriteHeader(http.StatusForbidden)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{Timeout: 5 * time.Second, RetryMax: 0, Concurrency: 2})
	ctx := context.Background()

	res, err := client.Get(ctx, srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "<build/>", res.Body)

	res, err = client.Get(ctx, srv.URL+"/missing")
	require.NoError(t, err)
	assert.True(t, res.NotFound())

	_, err = client.Get(ctx, srv.URL+"/forbidden")
	var transport *TransportError
	require.True(t, errors.As(err, &transport))
	assert.Equal(t, http.StatusForbidden, transport.StatusCode)
}

func TestClientCancelled(t *testing.T) {
	client := NewClient(ClientOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "http://127.0.0.1:1/never")
	var transport *TransportError
	assert.True(t, errors.As(err, &transport))
}
