package httpmiddleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedHandler(t *testing.T, max int, window time.Duration) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	mw := RateLimitWithCleanup(ctx, RateLimitConfig{
		Max:    max,
		Window: window,
		KeyFunc: func(r *http.Request) string {
			return r.Header.Get("X-Client")
		},
	})
	return mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doRequest(h http.Handler, client string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("X-Client", client)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_BlocksOverBudget(t *testing.T) {
	h := newLimitedHandler(t, 2, time.Minute)

	assert.Equal(t, http.StatusOK, doRequest(h, "a").Code)
	assert.Equal(t, http.StatusOK, doRequest(h, "a").Code)

	rec := doRequest(h, "a")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_KeysAreIndependent(t *testing.T) {
	h := newLimitedHandler(t, 1, time.Minute)

	assert.Equal(t, http.StatusOK, doRequest(h, "a").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "a").Code)
	assert.Equal(t, http.StatusOK, doRequest(h, "b").Code)
}

func TestRateLimit_WindowResets(t *testing.T) {
	h := newLimitedHandler(t, 1, 20*time.Millisecond)

	assert.Equal(t, http.StatusOK, doRequest(h, "a").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "a").Code)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, http.StatusOK, doRequest(h, "a").Code)
}
