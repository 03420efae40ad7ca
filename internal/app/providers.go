package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"aidex/internal/domain"
	"aidex/internal/infra/apiclient"
	"aidex/internal/infra/images"
	"aidex/internal/infra/listcache"
	"aidex/internal/infra/session"
	"aidex/internal/infra/telemetry"
)

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())
	return registry
}

func NewMetrics(registry *prometheus.Registry) domain.Metrics {
	return telemetry.NewPrometheusMetrics(registry)
}

func NewHealthTracker() *telemetry.HealthTracker {
	return telemetry.NewHealthTracker()
}

// NewSessionStore prepares the token store; the file is opened on first use.
// The cleanup closes it.
func NewSessionStore(cfg domain.Config, logger *zap.Logger) (*session.Store, func(), error) {
	store, err := session.NewStore(cfg.Session.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("session store: %w", err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("session store close failed", zap.Error(err))
		}
	}
	return store, cleanup, nil
}

func NewAPIClient(cfg domain.Config, store *session.Store, logger *zap.Logger) (*apiclient.Client, error) {
	return apiclient.New(apiclient.Options{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout(),
		PageSize: cfg.API.PageSize,
		Tokens:   store,
		Logger:   logger,
	})
}

func NewListCache(client *apiclient.Client, metrics domain.Metrics, logger *zap.Logger) *listcache.Cache {
	return listcache.New(client, listcache.Options{Logger: logger, Metrics: metrics})
}

func NewImageResolver(cfg domain.Config, metrics domain.Metrics, logger *zap.Logger) *images.Resolver {
	return images.NewResolver(cfg.Assets.BaseURL, cfg.Assets.Services, logger, metrics)
}
