package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveHTTP_CountsByStatus(t *testing.T) {
	reg := InitRegistry()

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("/v1/properties", "GET", "200"))
	ObserveHTTP("/v1/properties", "GET", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("/v1/properties", "GET", "200"))

	if after != before+1 {
		t.Fatalf("expected counter to increment, before=%v after=%v", before, after)
	}
	if n := testutil.CollectAndCount(reg, "catalog_http_requests_total"); n == 0 {
		t.Fatalf("expected http requests metric to be registered")
	}
}

func TestObserveCache_Events(t *testing.T) {
	before := testutil.ToFloat64(CacheEvents.WithLabelValues("redis", "hit"))
	ObserveCache("redis", "hit")
	after := testutil.ToFloat64(CacheEvents.WithLabelValues("redis", "hit"))
	if after != before+1 {
		t.Fatalf("expected cache hit counter to increment, before=%v after=%v", before, after)
	}
}
