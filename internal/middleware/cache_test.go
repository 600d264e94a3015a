package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/config"
)

func availabilityContext(e *echo.Echo, target string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	// Echo resolves every concrete path to the same route pattern.
	c.SetPath("/v1/locations/:id/availability")
	return c
}

func TestCacheKeyDistinguishesPathParams(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	q := "?start=2026-03-01T00:00:00Z&end=2026-03-03T00:00:00Z"
	k1 := cacheKey(cfg, availabilityContext(e, "/v1/locations/1/availability"+q))
	k2 := cacheKey(cfg, availabilityContext(e, "/v1/locations/2/availability"+q))
	if k1 == k2 {
		t.Fatalf("identical key %q for two different locations", k1)
	}
}

func TestCacheKeyDistinguishesQueries(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	base := "/v1/locations/1/availability"
	k1 := cacheKey(cfg, availabilityContext(e, base+"?start=2026-03-01T00:00:00Z&end=2026-03-03T00:00:00Z"))
	k2 := cacheKey(cfg, availabilityContext(e, base+"?start=2026-03-05T00:00:00Z&end=2026-03-07T00:00:00Z"))
	if k1 == k2 {
		t.Fatalf("identical key %q for two different windows", k1)
	}
}

func TestCacheKeyStableAcrossIdenticalRequests(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	target := "/v1/locations/1/availability?start=2026-03-01T00:00:00Z&end=2026-03-03T00:00:00Z"
	k1 := cacheKey(cfg, availabilityContext(e, target))
	k2 := cacheKey(cfg, availabilityContext(e, target))
	if k1 != k2 {
		t.Fatalf("keys differ for identical requests: %q vs %q", k1, k2)
	}
}
