package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/platform/pkg/config"
	"github.com/stockpulse/platform/pkg/logger"
)

func testClient(t *testing.T, maxRetries int) *Client {
	t.Helper()
	c := New(config.SourceConfig{
		RequestsPerMinute: 1000,
		MinDelay:          0,
		Timeout:           5 * time.Second,
		MaxRetries:        maxRetries,
		BackoffFactor:     2.0,
	}, logger.Nop())
	c.backoffUnit = time.Millisecond
	return c
}

func TestGetSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := testClient(t, 3)
	body, err := c.GetBytes(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestGetRetriesServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(t, 3)
	resp, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, 2, c.Retries())
}

func TestRetriesCounterAccumulates(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1)%2 == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(t, 3)
	for i := 0; i < 2; i++ {
		resp, err := c.Get(context.Background(), srv.URL, nil)
		require.NoError(t, err)
		resp.Body.Close()
	}
	// Each GET took one retry; the counter is cumulative so callers
	// can snapshot deltas around a request batch.
	assert.Equal(t, 2, c.Retries())
}

func TestGetRetriesTooManyRequests(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(t, 2)
	resp, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetFailsImmediatelyOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := testClient(t, 3)
	_, err := c.Get(context.Background(), srv.URL, nil)
	require.Error(t, err)

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
	// 404 must not be retried.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(t, 2)
	_, err := c.Get(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetSetsHeaders(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(t, 0).WithUserAgent("stockpulse-test")
	resp, err := c.Get(context.Background(), srv.URL, map[string]string{"Accept": "text/csv"})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "stockpulse-test", gotUA)
	assert.Equal(t, "text/csv", gotAccept)
}

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{200, false},
		{301, false},
		{403, false},
		{404, false},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
	}

	for _, tt := range tests {
		if got := IsRetryableStatus(tt.code); got != tt.want {
			t.Errorf("IsRetryableStatus(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestRateLimiterWindow(t *testing.T) {
	rl := NewRateLimiter(2, 0)

	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }

	var slept []time.Duration
	rl.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		now = now.Add(d)
		return nil
	}

	ctx := context.Background()
	require.NoError(t, rl.Acquire(ctx))
	require.NoError(t, rl.Acquire(ctx))
	assert.Empty(t, slept)
	assert.Equal(t, 2, rl.Pending())

	// Third acquire must wait for the oldest timestamp to age out.
	require.NoError(t, rl.Acquire(ctx))
	require.Len(t, slept, 1)
	assert.Equal(t, time.Minute, slept[0])
}

func TestRateLimiterPrunesOldTimestamps(t *testing.T) {
	rl := NewRateLimiter(5, 0)

	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, rl.Acquire(ctx))
	}
	assert.Equal(t, 5, rl.Pending())

	now = now.Add(61 * time.Second)
	assert.Equal(t, 0, rl.Pending())
	require.NoError(t, rl.Acquire(ctx))
	assert.Equal(t, 1, rl.Pending())
}

func TestRateLimiterContextCancelled(t *testing.T) {
	rl := NewRateLimiter(1, 0)

	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, rl.Acquire(ctx))

	cancel()
	err := rl.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
