//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"aidex/internal/infra/apiclient"
	"aidex/internal/infra/listcache"
	"aidex/internal/infra/session"
)

var CoreInfraSet = wire.NewSet(
	NewLogging,
	NewLogger,
	NewMetricsRegistry,
	NewMetrics,
	NewHealthTracker,
	NewSessionStore,
	NewAPIClient,
	NewListCache,
	NewImageResolver,
)

var ServiceSet = wire.NewSet(
	NewListingService,
	NewListPage,
	NewBookmarkService,
	NewDetailService,
	NewAuthService,
	wire.Bind(new(ToolLister), new(*listcache.Cache)),
	wire.Bind(new(ToolFinder), new(*listcache.Cache)),
	wire.Bind(new(ToolFetcher), new(*apiclient.Client)),
	wire.Bind(new(BookmarkClient), new(*apiclient.Client)),
	wire.Bind(new(LoginURLBuilder), new(*apiclient.Client)),
	wire.Bind(new(TokenStore), new(*session.Store)),
)

var AppSet = wire.NewSet(
	CoreInfraSet,
	ServiceSet,
	wire.Struct(new(ApplicationOptions), "*"),
	NewApplication,
)
