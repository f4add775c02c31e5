package shared_test

import (
	"testing"
	"time"

	"propcomfy/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	c := shared.Load()
	if c.StoreBackend != "memory" || c.HTTPAddr != ":8080" || c.CacheTTL != 900*time.Second {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("SEED_WORKERS", "nope")
	t.Setenv("PAY_RATE_PER_SEC", "9")
	c := shared.Load()
	if c.StoreBackend != "redis" || c.RedisAddr != "localhost:6379" {
		t.Fatalf("redis backend should default its addr: %+v", c)
	}
	if c.Workers != 4 || c.PayRate != 9 {
		t.Fatalf("numeric parsing: workers=%d rate=%d", c.Workers, c.PayRate)
	}

	t.Setenv("STORE_BACKEND", "sqlite")
	if got := shared.Load().StoreBackend; got != "memory" {
		t.Fatalf("unknown backend should fall back, got %q", got)
	}
}
