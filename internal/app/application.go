package app

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aidex/internal/domain"
	"aidex/internal/infra/catalog"
	"aidex/internal/infra/images"
	"aidex/internal/infra/listcache"
	"aidex/internal/infra/session"
	"aidex/internal/infra/telemetry"
)

// Application holds the wired services. CLI commands use them directly;
// Serve exposes them over HTTP.
type Application struct {
	cfgMu     sync.RWMutex
	cfg       domain.Config
	logger    *zap.Logger
	registry  *prometheus.Registry
	metrics   domain.Metrics
	health    *telemetry.HealthTracker
	store     *session.Store
	cache     *listcache.Cache
	images    *images.Resolver
	listing   *ListingService
	page      *ListPage
	details   *DetailService
	bookmarks *BookmarkService
	auth      *AuthService
}

// ApplicationOptions captures dependencies for Application.
type ApplicationOptions struct {
	Config    domain.Config
	Logger    *zap.Logger
	Registry  *prometheus.Registry
	Metrics   domain.Metrics
	Health    *telemetry.HealthTracker
	Store     *session.Store
	Cache     *listcache.Cache
	Images    *images.Resolver
	Listing   *ListingService
	Page      *ListPage
	Details   *DetailService
	Bookmarks *BookmarkService
	Auth      *AuthService
}

func NewApplication(opts ApplicationOptions) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Application{
		cfg:       opts.Config,
		logger:    logger,
		registry:  opts.Registry,
		metrics:   opts.Metrics,
		health:    opts.Health,
		store:     opts.Store,
		cache:     opts.Cache,
		images:    opts.Images,
		listing:   opts.Listing,
		page:      opts.Page,
		details:   opts.Details,
		bookmarks: opts.Bookmarks,
		auth:      opts.Auth,
	}
}

func (a *Application) Config() domain.Config {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	return a.cfg
}

func (a *Application) Listing() *ListingService { return a.listing }
func (a *Application) Page() *ListPage { return a.page }
func (a *Application) Details() *DetailService { return a.details }
func (a *Application) Bookmarks() *BookmarkService { return a.bookmarks }
func (a *Application) Auth() *AuthService { return a.auth }
func (a *Application) Images() *images.Resolver { return a.images }
func (a *Application) Cache() *listcache.Cache { return a.cache }
func (a *Application) Health() *telemetry.HealthTracker { return a.health }

// Handler returns the JSON API router.
func (a *Application) Handler() http.Handler {
	return NewHTTPHandler(HTTPOptions{
		Config:    a.Config(),
		Listing:   a.listing,
		Details:   a.details,
		Bookmarks: a.bookmarks,
		Auth:      a.auth,
		Images:    a.images,
		Health:    a.health,
		Logger:    a.logger,
	})
}

// Reload applies a freshly loaded configuration. The featured count and the
// asset tables change in place; every other section only takes effect after
// a restart, and changes to them are reported in the returned list.
func (a *Application) Reload(next domain.Config) []string {
	a.cfgMu.Lock()
	prev := a.cfg
	pending := restartRequired(prev, next)
	a.cfg.Listing.FeaturedCount = next.Listing.FeaturedCount
	a.cfg.Assets = next.Assets
	a.cfgMu.Unlock()

	if prev.Listing.FeaturedCount != next.Listing.FeaturedCount {
		a.listing.SetFeaturedCount(next.Listing.FeaturedCount)
	}
	if !reflect.DeepEqual(prev.Assets, next.Assets) {
		a.images.Reconfigure(next.Assets.BaseURL, next.Assets.Services)
	}
	if len(pending) > 0 {
		a.logger.Warn("config sections changed that require a restart", zap.Strings("sections", pending))
	}
	a.logger.Info("config applied", zap.Int("featured_count", a.listing.FeaturedCount()))
	return pending
}

func restartRequired(prev, next domain.Config) []string {
	var sections []string
	check := func(name string, a, b any) {
		if !reflect.DeepEqual(a, b) {
			sections = append(sections, name)
		}
	}
	check("api", prev.API, next.API)
	check("listing.defaultTab", prev.Listing.DefaultTab, next.Listing.DefaultTab)
	check("listing.defaultSort", prev.Listing.DefaultSort, next.Listing.DefaultSort)
	check("session", prev.Session, next.Session)
	check("observability", prev.Observability, next.Observability)
	check("server", prev.Server, next.Server)
	check("oauth", prev.OAuth, next.OAuth)
	return sections
}

// ServeOptions tunes Serve.
type ServeOptions struct {
	// ConfigPath enables hot reload of the given file when set.
	ConfigPath string
	// Adjust is applied to every reloaded config before it is compared, so
	// command-line overrides survive reloads.
	Adjust func(cfg *domain.Config)
}

// Serve runs the API listener and the observability listener until ctx is
// canceled or one of them fails.
func (a *Application) Serve(ctx context.Context, opts ServeOptions) error {
	cfg := a.Config()
	handler := a.Handler()
	var watcher *catalog.Watcher
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		var err error
		watcher, err = catalog.NewWatcher(catalog.WatcherOptions{
			Path:   path,
			Loader: catalog.NewLoader(a.logger),
			Apply: func(next domain.Config) {
				if opts.Adjust != nil {
					opts.Adjust(&next)
				}
				a.Reload(next)
			},
			Logger: a.logger,
		})
		if err != nil {
			return err
		}
	}
	a.logger.Info("serving catalog",
		zap.String("api", cfg.API.BaseURL),
		zap.String("listen", cfg.Server.ListenAddress),
		zap.String("session", a.store.Path()),
	)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return telemetry.Serve(ctx, "api", cfg.Server.ListenAddress, handler, a.logger)
	})
	group.Go(func() error {
		return telemetry.StartHTTPServer(ctx, telemetry.HTTPServerOptions{
			Addr:          cfg.Observability.ListenAddress,
			EnableMetrics: cfg.Observability.MetricsEnabled,
			EnableHealthz: cfg.Observability.HealthzEnabled,
			Health:        a.health,
			Registry:      a.registry,
		}, a.logger)
	})
	if watcher != nil {
		group.Go(func() error {
			return watcher.Run(ctx)
		})
	}
	return group.Wait()
}
