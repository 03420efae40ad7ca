package images

import (
	"strings"
	"sync/atomic"
	"unicode"

	"go.uber.org/zap"

	"aidex/internal/domain"
	"aidex/internal/infra/telemetry"
)

// Resolver derives asset URLs from a service name and category slug. It never
// fails: unknown inputs degrade to the placeholder or a derived file name.
type Resolver struct {
	state   atomic.Pointer[resolverState]
	logger  *zap.Logger
	metrics domain.Metrics
}

type resolverState struct {
	baseURL  string
	services map[string]string
}

// NewResolver builds a resolver rooted at baseURL. overrides extend or replace
// entries of the built-in service name table.
func NewResolver(baseURL string, overrides map[string]string, logger *zap.Logger, metrics domain.Metrics) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	r := &Resolver{
		logger:  logger.Named("images"),
		metrics: metrics,
	}
	r.state.Store(newResolverState(baseURL, overrides))
	return r
}

// Reconfigure swaps the base URL and service overrides. Resolutions already
// in flight finish against the previous tables.
func (r *Resolver) Reconfigure(baseURL string, overrides map[string]string) {
	r.state.Store(newResolverState(baseURL, overrides))
	r.logger.Info("image tables reconfigured", zap.String("base_url", baseURL), zap.Int("overrides", len(overrides)))
}

func newResolverState(baseURL string, overrides map[string]string) *resolverState {
	services := make(map[string]string, len(serviceTable)+len(overrides))
	for name, file := range serviceTable {
		services[strings.ToLower(name)] = file
	}
	for name, file := range overrides {
		name = strings.TrimSpace(name)
		file = strings.TrimSpace(file)
		if name == "" || file == "" {
			continue
		}
		services[strings.ToLower(name)] = file
	}
	return &resolverState{
		baseURL:  strings.TrimRight(baseURL, "/"),
		services: services,
	}
}

// Resolve returns the four asset URLs for a tool.
func (r *Resolver) Resolve(serviceName, categorySlug string) domain.ImageMapping {
	state := r.state.Load()
	category := strings.ToLower(strings.TrimSpace(categorySlug))
	paths, ok := categoryTable[category]
	if !ok {
		r.warn(domain.AssetCategory, zap.String("category", categorySlug), zap.String("service", serviceName))
		return state.placeholder()
	}

	file, ok := state.serviceFile(serviceName)
	if !ok {
		file = FileName(serviceName)
		r.warn(domain.AssetService, zap.String("service", serviceName), zap.String("file", file))
	}

	return domain.ImageMapping{
		Logo:          state.join(paths.logo, file),
		ServiceImage:  state.join(paths.serviceImage, file),
		PriceImage:    state.join(paths.priceImage, file),
		SearchbarLogo: state.join(paths.searchbarLogo, file),
	}
}

// serviceFile matches names case-insensitively; config overrides arrive
// lower-cased.
func (s *resolverState) serviceFile(serviceName string) (string, bool) {
	file, ok := s.services[strings.ToLower(strings.TrimSpace(serviceName))]
	return file, ok
}

// Default is the mapping used for unknown categories: every field points at
// the shared placeholder.
func (r *Resolver) Default() domain.ImageMapping {
	return r.state.Load().placeholder()
}

func (s *resolverState) placeholder() domain.ImageMapping {
	placeholder := s.join("", placeholderFile)
	return domain.ImageMapping{
		Logo:          placeholder,
		ServiceImage:  placeholder,
		PriceImage:    placeholder,
		SearchbarLogo: placeholder,
	}
}

// FileName derives an asset file name from a display name by replacing
// whitespace and characters that are unsafe in paths with underscores.
func FileName(serviceName string) string {
	name := strings.TrimSpace(serviceName)
	if name == "" {
		return placeholderFile
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		if unicode.IsSpace(r) || strings.ContainsRune(`\/:*?"<>|`, r) || unicode.IsControl(r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	b.WriteString(".png")
	return b.String()
}

func (s *resolverState) join(dir, file string) string {
	parts := make([]string, 0, 3)
	if s.baseURL != "" {
		parts = append(parts, s.baseURL)
	}
	if dir != "" {
		parts = append(parts, dir)
	}
	parts = append(parts, file)
	return strings.Join(parts, "/")
}

func (r *Resolver) warn(kind domain.AssetKind, fields ...zap.Field) {
	r.metrics.ObserveUnmappedAsset(kind)
	fields = append(fields, telemetry.EventField(telemetry.EventUnmappedAsset), zap.String("kind", string(kind)))
	r.logger.Warn("unmapped asset, using fallback", fields...)
}
