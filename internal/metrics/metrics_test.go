package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDefault_Shared(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestMetrics_Counters(t *testing.T) {
	m := Default()

	before := testutil.ToFloat64(m.Operations.WithLabelValues("service", "publish"))
	m.IncOperation("service", "publish")
	m.IncOperation("service", "publish")
	assert.Equal(t, before+2, testutil.ToFloat64(m.Operations.WithLabelValues("service", "publish")))

	before = testutil.ToFloat64(m.OperationErrors.WithLabelValues("service", "update", "Aborted"))
	m.IncError("service", "update", "Aborted")
	assert.Equal(t, before+1, testutil.ToFloat64(m.OperationErrors.WithLabelValues("service", "update", "Aborted")))

	hits := testutil.ToFloat64(m.CacheRequests.WithLabelValues("hit"))
	misses := testutil.ToFloat64(m.CacheRequests.WithLabelValues("miss"))
	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()
	assert.Equal(t, hits+1, testutil.ToFloat64(m.CacheRequests.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(m.CacheRequests.WithLabelValues("miss")))
}

func TestMetrics_Handler(t *testing.T) {
	m := Default()
	m.LocksReaped.Add(3)
	m.ObserveRequest("/ptv.v1.Catalog/GetEntity", time.Now().Add(-20*time.Millisecond))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(body, "ptv_jobs_locks_reaped_total"))
	assert.True(t, strings.Contains(body, `ptv_grpc_request_duration_seconds_count{method="/ptv.v1.Catalog/GetEntity"}`))
}
