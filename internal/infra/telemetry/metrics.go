package telemetry

import (
	"time"

	"aidex/internal/domain"
)

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveCacheLookup(_ string, _ domain.CacheOutcome) {}

func (n *NoopMetrics) ObserveFetch(_ string, _ time.Duration, _ error) {}

func (n *NoopMetrics) ObserveUnmappedAsset(_ domain.AssetKind) {}

func (n *NoopMetrics) ObserveFilter(_ int, _ int) {}

var _ domain.Metrics = (*NoopMetrics)(nil)
