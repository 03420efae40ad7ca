// Package catalog loads the application configuration from YAML or TOML, the
// environment and an optional .env file, and watches the file for changes.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"aidex/internal/domain"
)

// EnvPrefix prefixes environment overrides, e.g. AIDEX_API_BASEURL.
const EnvPrefix = "AIDEX"

type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		return &Loader{logger: zap.NewNop()}
	}
	return &Loader{logger: logger.Named("catalog")}
}

func newConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setConfigDefaults(v)
	return v
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("api.baseURL", domain.DefaultAPIBaseURL)
	v.SetDefault("api.timeoutSeconds", domain.DefaultAPITimeoutSeconds)
	v.SetDefault("api.pageSize", domain.DefaultPageSize)
	v.SetDefault("listing.featuredCount", domain.DefaultFeaturedCount)
	v.SetDefault("listing.defaultTab", domain.DefaultTab)
	v.SetDefault("listing.defaultSort", string(domain.DefaultSort))
	v.SetDefault("assets.baseURL", domain.DefaultAssetsBaseURL)
	v.SetDefault("session.path", domain.DefaultSessionPath)
	v.SetDefault("observability.listenAddress", domain.DefaultObservabilityListenAddress)
	v.SetDefault("observability.metricsEnabled", true)
	v.SetDefault("observability.healthzEnabled", true)
	v.SetDefault("server.listenAddress", domain.DefaultServerListenAddress)
	v.SetDefault("oauth.redirectURI", domain.DefaultOAuthRedirectURI)
}

type rawConfig struct {
	API struct {
		BaseURL        string `mapstructure:"baseURL"`
		TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
		PageSize       int    `mapstructure:"pageSize"`
	} `mapstructure:"api"`
	Listing struct {
		FeaturedCount int    `mapstructure:"featuredCount"`
		DefaultTab    string `mapstructure:"defaultTab"`
		DefaultSort   string `mapstructure:"defaultSort"`
	} `mapstructure:"listing"`
	Assets struct {
		BaseURL  string            `mapstructure:"baseURL"`
		Services map[string]string `mapstructure:"services"`
	} `mapstructure:"assets"`
	Session struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"session"`
	Observability struct {
		ListenAddress  string `mapstructure:"listenAddress"`
		MetricsEnabled bool   `mapstructure:"metricsEnabled"`
		HealthzEnabled bool   `mapstructure:"healthzEnabled"`
	} `mapstructure:"observability"`
	Server struct {
		ListenAddress string `mapstructure:"listenAddress"`
	} `mapstructure:"server"`
	OAuth struct {
		RedirectURI string `mapstructure:"redirectURI"`
	} `mapstructure:"oauth"`
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are skipped and existing variables win.
func (l *Loader) LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		l.logger.Debug("loaded env file", zap.String("path", path))
	}
	return nil
}

// Load reads path and returns the validated configuration. An empty path
// yields the defaults with environment overrides applied.
func (l *Loader) Load(ctx context.Context, path string) (domain.Config, error) {
	expanded := ""
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
		if isTOML(path) {
			if data, err = tomlToYAML(data); err != nil {
				return domain.Config{}, err
			}
		}
		var missing []string
		expanded, missing, err = expandConfigEnv(data)
		if err != nil {
			return domain.Config{}, err
		}
		if len(missing) > 0 {
			l.logger.Warn("missing environment variables in config", zap.String("path", path), zap.Strings("missing", missing))
		}
	}
	return l.decode(ctx, expanded)
}

// Parse decodes an in-memory YAML document.
func (l *Loader) Parse(ctx context.Context, raw []byte) (domain.Config, error) {
	expanded, missing, err := expandConfigEnv(raw)
	if err != nil {
		return domain.Config{}, err
	}
	if len(missing) > 0 {
		l.logger.Warn("missing environment variables in config", zap.Strings("missing", missing))
	}
	return l.decode(ctx, expanded)
}

func (l *Loader) decode(ctx context.Context, expanded string) (domain.Config, error) {
	v := newConfigViper()
	if strings.TrimSpace(expanded) != "" {
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return domain.Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return domain.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return domain.Config{}, err
	}

	cfg, errs := normalizeConfig(raw)
	if len(errs) > 0 {
		return domain.Config{}, errors.New(strings.Join(errs, "; "))
	}
	return cfg, nil
}

func normalizeConfig(raw rawConfig) (domain.Config, []string) {
	var errs []string

	baseURL := strings.TrimRight(strings.TrimSpace(raw.API.BaseURL), "/")
	if parsed, err := url.ParseRequestURI(baseURL); err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		errs = append(errs, "api.baseURL must be a valid http(s) URL")
	}
	if raw.API.TimeoutSeconds <= 0 {
		errs = append(errs, "api.timeoutSeconds must be > 0")
	}
	if raw.API.PageSize <= 0 {
		errs = append(errs, "api.pageSize must be > 0")
	}
	if raw.Listing.FeaturedCount < 0 {
		errs = append(errs, "listing.featuredCount must be >= 0")
	}
	tab := strings.ToLower(strings.TrimSpace(raw.Listing.DefaultTab))
	if tab == "" {
		errs = append(errs, "listing.defaultTab is required")
	}
	sortType, err := domain.ParseSortType(raw.Listing.DefaultSort)
	if err != nil {
		errs = append(errs, "listing.defaultSort must be popular or newest")
	}
	sessionPath := strings.TrimSpace(raw.Session.Path)
	if sessionPath == "" {
		errs = append(errs, "session.path is required")
	}

	services := make(map[string]string, len(raw.Assets.Services))
	for name, file := range raw.Assets.Services {
		name = strings.TrimSpace(name)
		file = strings.TrimSpace(file)
		if name == "" || file == "" {
			errs = append(errs, "assets.services entries need a name and a file")
			continue
		}
		services[name] = file
	}

	cfg := domain.Config{
		API: domain.APIConfig{
			BaseURL:        baseURL,
			TimeoutSeconds: raw.API.TimeoutSeconds,
			PageSize:       raw.API.PageSize,
		},
		Listing: domain.ListingConfig{
			FeaturedCount: raw.Listing.FeaturedCount,
			DefaultTab:    tab,
			DefaultSort:   sortType,
		},
		Assets: domain.AssetsConfig{
			BaseURL:  strings.TrimRight(strings.TrimSpace(raw.Assets.BaseURL), "/"),
			Services: services,
		},
		Session:       domain.SessionConfig{Path: sessionPath},
		Observability: domain.ObservabilityConfig{
			ListenAddress:  strings.TrimSpace(raw.Observability.ListenAddress),
			MetricsEnabled: raw.Observability.MetricsEnabled,
			HealthzEnabled: raw.Observability.HealthzEnabled,
		},
		Server:        domain.ServerConfig{ListenAddress: strings.TrimSpace(raw.Server.ListenAddress)},
		OAuth:         domain.OAuthConfig{RedirectURI: strings.TrimSpace(raw.OAuth.RedirectURI)},
	}
	return cfg, errs
}
