package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedRouter(store CounterStore, cfg RateLimiterConfig) *gin.Engine {
	router := gin.New()
	router.GET("/ping", RateLimiter(store, cfg), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestRateLimiterFixedWindow(t *testing.T) {
	store := NewMemoryCounterStore()
	router := newLimitedRouter(store, RateLimiterConfig{
		Scope:   "general",
		Window:  time.Minute,
		Max:     3,
		Message: "Too many requests, please try again later",
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the window quota is exceeded, got %d", w.Code)
	}
}

func TestRateLimiterHeaders(t *testing.T) {
	store := NewMemoryCounterStore()
	router := newLimitedRouter(store, RateLimiterConfig{
		Scope:   "general",
		Window:  time.Minute,
		Max:     5,
		Message: "Too many requests, please try again later",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)

	if got := w.Header().Get("RateLimit-Limit"); got != "5" {
		t.Errorf("RateLimit-Limit: expected 5, got %q", got)
	}
	if got := w.Header().Get("RateLimit-Remaining"); got != "4" {
		t.Errorf("RateLimit-Remaining: expected 4, got %q", got)
	}
	if got := w.Header().Get("RateLimit-Reset"); got == "" {
		t.Error("RateLimit-Reset header missing")
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "" {
		t.Error("legacy X-RateLimit headers must not be set")
	}
}

func TestRateLimiterKeyedByAPIKey(t *testing.T) {
	store := NewMemoryCounterStore()
	router := newLimitedRouter(store, RateLimiterConfig{
		Scope:   "search",
		Window:  time.Minute,
		Max:     1,
		Message: "Too many search requests, please try again later",
	})

	// First caller exhausts their quota
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("x-api-key", "key-one")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("x-api-key", "key-one")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for exhausted credential, got %d", w.Code)
	}

	// A different credential still has its own window
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("x-api-key", "key-two")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected separate window per credential, got %d", w.Code)
	}
}

func TestMemoryCounterStoreWindowReset(t *testing.T) {
	store := NewMemoryCounterStore()
	ctx := context.Background()

	count, _, err := store.Incr(ctx, "k", 10*time.Millisecond)
	if err != nil || count != 1 {
		t.Fatalf("expected count 1, got %d (err %v)", count, err)
	}

	count, _, _ = store.Incr(ctx, "k", 10*time.Millisecond)
	if count != 2 {
		t.Fatalf("expected count 2 inside window, got %d", count)
	}

	time.Sleep(15 * time.Millisecond)

	count, _, _ = store.Incr(ctx, "k", 10*time.Millisecond)
	if count != 1 {
		t.Fatalf("expected counter reset after window elapsed, got %d", count)
	}
}
