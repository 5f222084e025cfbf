package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/edgecharge/mcsd/core/metrics"
	"github.com/edgecharge/mcsd/core/model"
)

// fakeInflux records line protocol writes and answers health checks.
type fakeInflux struct {
	mu     sync.Mutex
	bodies []string
}

func (f *fakeInflux) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/health":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"influxdb","status":"pass"}`))
		case strings.HasSuffix(r.URL.Path, "/write"):
			body, _ := io.ReadAll(r.Body)
			f.mu.Lock()
			f.bodies = append(f.bodies, string(body))
			f.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (f *fakeInflux) lines() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Join(f.bodies, "\n")
}

func TestInfluxSinkWrites(t *testing.T) {
	fake := &fakeInflux{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL, "token", "org", "bucket")
	influx, ok := sink.(*InfluxSink)
	require.True(t, ok, "healthy endpoint must yield a real sink")
	defer influx.Close()

	require.NoError(t, sink.RecordRegionSummaries([]model.RegionSummary{
		{Region: "north", AverageWait: 1.23456, QueueLength: 3},
	}))
	require.NoError(t, influx.RecordEdgeStep(coremetrics.EdgeStepEvent{Region: "north", Round: 7, Reward: 0.5}))
	require.NoError(t, influx.RecordPolicyUpdate(coremetrics.PolicyUpdateEvent{Tier: "cloud", Round: 50, BatchSize: 5, Metrics: map[string]float64{"loss": 0.123456}}))

	lines := fake.lines()
	assert.Contains(t, lines, "region_summary,region=north")
	assert.Contains(t, lines, "average_wait=1.235")
	assert.Contains(t, lines, "edge_step,region=north")
	assert.Contains(t, lines, "policy_update,tier=cloud")
	assert.Contains(t, lines, "loss=0.123")
}

func TestInfluxSinkFallsBackWhenUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL, "token", "org", "bucket")
	_, ok := sink.(coremetrics.NopSink)
	assert.True(t, ok)
}

func TestRound3(t *testing.T) {
	assert.Equal(t, 1.235, round3(1.23456))
	assert.Equal(t, -0.1, round3(-0.1))
	assert.Equal(t, 0.0, round3(0))
}
