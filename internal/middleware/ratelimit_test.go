package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-back-office/internal/config"
)

func keyContext(t *testing.T, userID any) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/v1/rooms")
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c
}

func TestBucketKeyStrategies(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "hbo:rl"}
	cases := []struct {
		strategy string
		contains []string
	}{
		{"ip", []string{"ip", "192.0.2.10"}},
		{"user", []string{"user", "7"}},
		{"route", []string{"route", "GET /api/v1/rooms"}},
		{"ip_user_route", []string{"192.0.2.10", "7", "GET /api/v1/rooms"}},
	}
	for _, tc := range cases {
		t.Run(tc.strategy, func(t *testing.T) {
			cfg.KeyStrategy = tc.strategy
			key := bucketKey(cfg, keyContext(t, float64(7)))
			if !strings.HasPrefix(key, "hbo:rl:") {
				t.Fatalf("key %q missing prefix", key)
			}
			for _, part := range tc.contains {
				if !strings.Contains(key, part) {
					t.Fatalf("key %q missing %q", key, part)
				}
			}
		})
	}
}

func TestSubjectID(t *testing.T) {
	if got := subjectID(keyContext(t, float64(31))); got != "31" {
		t.Fatalf("float subject = %q, want 31", got)
	}
	if got := subjectID(keyContext(t, "abc")); got != "abc" {
		t.Fatalf("string subject = %q, want abc", got)
	}
	if got := subjectID(keyContext(t, nil)); got != "anon" {
		t.Fatalf("missing subject = %q, want anon", got)
	}
}

func TestDisabledLimiterPassesThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)
	c := keyContext(t, nil)
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned %v", err)
	}
	if !called {
		t.Fatal("next handler was not called")
	}
}
