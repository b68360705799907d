package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"

	"github.com/dmitrijs2005/portfolio/internal/logging"
)

func quietLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func limitedHandler(t *testing.T, store limiter.Store, limit int64) http.Handler {
	t.Helper()
	rl := NewRateLimit("auth", store, limit, time.Minute, quietLogger(), NewMetrics())
	return rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func hit(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_MemoryStore(t *testing.T) {
	store, closeFn, err := NewLimiterStore(context.Background(), "")
	require.NoError(t, err)
	defer closeFn()

	h := limitedHandler(t, store, 2)

	assert.Equal(t, http.StatusNoContent, hit(h, "192.0.2.1:1000").Code)
	rec := hit(h, "192.0.2.1:1001")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = hit(h, "192.0.2.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Too many requests, please try again later"}`, rec.Body.String())

	assert.Equal(t, http.StatusNoContent, hit(h, "198.51.100.7:1000").Code, "limits are per client address")
}

func TestRateLimit_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	store, closeFn, err := NewLimiterStore(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer closeFn()

	h := limitedHandler(t, store, 1)
	assert.Equal(t, http.StatusNoContent, hit(h, "192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "192.0.2.1:1000").Code)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "portfolio:ratelimit")
}

func TestRateLimit_StoreOutageFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	store, closeFn, err := NewLimiterStore(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer closeFn()

	h := limitedHandler(t, store, 1)
	mr.Close()

	assert.Equal(t, http.StatusNoContent, hit(h, "192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusNoContent, hit(h, "192.0.2.1:1000").Code)
}

func TestNewLimiterStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := NewLimiterStore(context.Background(), addr)
	assert.ErrorContains(t, err, "redis ping")
}

func TestRateLimit_NilPassesThrough(t *testing.T) {
	var rl *RateLimit
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for range 5 {
		assert.Equal(t, http.StatusNoContent, hit(h, "192.0.2.1:1000").Code)
	}
}

func TestRoutes_AuthLimitApplies(t *testing.T) {
	store, _, err := NewLimiterStore(context.Background(), "")
	require.NoError(t, err)

	e := newTestEnv(t, Options{
		AuthLimit: NewRateLimit("auth", store, 1, time.Minute, quietLogger(), nil),
	})
	body := map[string]string{"email": "a@example.com", "password": "x"}

	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodPost, "/api/auth/login", "", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, e.do(t, http.MethodPost, "/api/auth/login", "", body).Code)

	// reads are not throttled
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/api/projects", "", nil).Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.5:4431"
	assert.Equal(t, "203.0.113.5", clientIP(req))

	req.RemoteAddr = "203.0.113.5"
	assert.Equal(t, "203.0.113.5", clientIP(req))
}
