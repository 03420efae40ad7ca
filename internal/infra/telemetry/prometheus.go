package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"aidex/internal/domain"
)

type PrometheusMetrics struct {
	cacheLookups   *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	unmappedAssets *prometheus.CounterVec
	filterRatio    prometheus.Histogram
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aidex_list_cache_lookups_total",
				Help: "Total number of list cache lookups by outcome",
			},
			[]string{"tab", "outcome"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aidex_upstream_fetch_duration_seconds",
				Help:    "Duration of upstream tool list fetches in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"tab", "status"},
		),
		unmappedAssets: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aidex_unmapped_assets_total",
				Help: "Total number of image lookups that fell back to defaults",
			},
			[]string{"kind"},
		),
		filterRatio: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "aidex_filter_match_ratio",
				Help:    "Ratio of tools kept by the keyword and price filter",
				Buckets: []float64{0, .1, .25, .5, .75, .9, 1},
			},
		),
	}
}

func (p *PrometheusMetrics) ObserveCacheLookup(tab string, outcome domain.CacheOutcome) {
	p.cacheLookups.WithLabelValues(tab, string(outcome)).Inc()
}

func (p *PrometheusMetrics) ObserveFetch(tab string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	p.fetchDuration.WithLabelValues(tab, status).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) ObserveUnmappedAsset(kind domain.AssetKind) {
	p.unmappedAssets.WithLabelValues(string(kind)).Inc()
}

func (p *PrometheusMetrics) ObserveFilter(total int, matched int) {
	if total <= 0 {
		return
	}
	p.filterRatio.Observe(float64(matched) / float64(total))
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
