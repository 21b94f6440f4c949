package obs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timecost/internal/obs"
)

func TestCatalogMetricsRegistered(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewCatalogMetrics("timecost", []float64{10, 1}, registry)

	metrics.PagesFetched.Inc()
	metrics.FetchErrors.WithLabelValues("decode").Inc()
	metrics.FetchDur.Observe(12)
	metrics.Variants.WithLabelValues("unavailable").Add(2)

	require.Equal(t, float64(1), testutil.ToFloat64(metrics.PagesFetched))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.FetchErrors.WithLabelValues("decode")))
	require.Equal(t, float64(2), testutil.ToFloat64(metrics.Variants.WithLabelValues("unavailable")))
	require.Equal(t, 1, testutil.CollectAndCount(metrics.FetchDur))

	require.Panics(t, func() { obs.NewCatalogMetrics("timecost", nil, registry) })
}

func TestWriteTextfile(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewCatalogMetrics("timecost", nil, registry)
	metrics.TotalCost.Set(10.5)

	path := filepath.Join(t.TempDir(), "timecost.prom")
	require.NoError(t, obs.WriteTextfile(path, registry))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "timecost_total_cost 10.5")

	require.NoError(t, obs.WriteTextfile("", registry))
}

func TestParseBucketsCSV(t *testing.T) {
	require.Nil(t, obs.ParseBucketsCSV(" "))
	require.Equal(t, []float64{5, 10}, obs.ParseBucketsCSV("5, x, -1, 10"))
	require.Equal(t, float64(1500), obs.DurationMillis(1500*time.Millisecond))
}
