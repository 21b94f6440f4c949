package obs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics groups Prometheus collectors describing one catalog sweep and
// the cost computed from it.
type CatalogMetrics struct {
	PagesFetched    prometheus.Counter
	ProductsFetched prometheus.Counter
	FetchErrors     *prometheus.CounterVec
	FetchDur        prometheus.Histogram
	Timepieces      prometheus.Gauge
	Variants        *prometheus.CounterVec
	TotalCost       prometheus.Gauge
}

// NewCatalogMetrics registers and returns the catalog collectors on reg.
func NewCatalogMetrics(namespace string, buckets []float64, reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if len(buckets) == 0 {
		buckets = []float64{25, 50, 100, 250, 500, 1000, 2500, 5000}
	} else {
		buckets = append([]float64(nil), buckets...)
		sort.Float64s(buckets)
	}
	m := &CatalogMetrics{
		PagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_pages_fetched_total",
			Help:      "Number of non-empty catalog pages retrieved.",
		}),
		ProductsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_products_fetched_total",
			Help:      "Number of products decoded from catalog pages.",
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_fetch_errors_total",
			Help:      "Catalog page failures by kind.",
		}, []string{"kind"}),
		FetchDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_page_fetch_duration_ms",
			Help:      "Latency of a single catalog page fetch in milliseconds.",
			Buckets:   buckets,
		}),
		Timepieces: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "timepieces_selected",
			Help:      "Number of watch and clock products selected from the catalog.",
		}),
		Variants: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "variants_priced_total",
			Help:      "Variants visited by the cost aggregator by outcome.",
		}, []string{"outcome"}),
		TotalCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_cost",
			Help:      "Grand total of the last computation including tax.",
		}),
	}
	reg.MustRegister(m.PagesFetched, m.ProductsFetched, m.FetchErrors, m.FetchDur, m.Timepieces, m.Variants, m.TotalCost)
	return m
}

// WriteTextfile dumps everything gathered by g in the node exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// ParseBucketsCSV converts a comma-separated list of bucket boundaries (milliseconds) into floats.
func ParseBucketsCSV(csv string) []float64 {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			continue
		}
		if v <= 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
