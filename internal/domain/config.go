package domain

import "time"

// Config is the validated application configuration.
type Config struct {
	API           APIConfig           `json:"api"`
	Listing       ListingConfig       `json:"listing"`
	Assets        AssetsConfig        `json:"assets"`
	Session       SessionConfig       `json:"session"`
	Observability ObservabilityConfig `json:"observability"`
	Server        ServerConfig        `json:"server"`
	OAuth         OAuthConfig         `json:"oauth"`
}

type APIConfig struct {
	BaseURL        string `json:"baseURL"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	PageSize       int    `json:"pageSize"`
}

// Timeout returns the per-request upstream timeout.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return time.Duration(DefaultAPITimeoutSeconds) * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ListingConfig struct {
	FeaturedCount int      `json:"featuredCount"`
	DefaultTab    string   `json:"defaultTab"`
	DefaultSort   SortType `json:"defaultSort"`
}

type AssetsConfig struct {
	BaseURL  string            `json:"baseURL"`
	Services map[string]string `json:"services,omitempty"`
}

type SessionConfig struct {
	Path string `json:"path"`
}

type ObservabilityConfig struct {
	ListenAddress  string `json:"listenAddress"`
	MetricsEnabled bool   `json:"metricsEnabled"`
	HealthzEnabled bool   `json:"healthzEnabled"`
}

type ServerConfig struct {
	ListenAddress string `json:"listenAddress"`
}

type OAuthConfig struct {
	RedirectURI string `json:"redirectURI"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:        DefaultAPIBaseURL,
			TimeoutSeconds: DefaultAPITimeoutSeconds,
			PageSize:       DefaultPageSize,
		},
		Listing: ListingConfig{
			FeaturedCount: DefaultFeaturedCount,
			DefaultTab:    DefaultTab,
			DefaultSort:   DefaultSort,
		},
		Assets:        AssetsConfig{BaseURL: DefaultAssetsBaseURL},
		Session:       SessionConfig{Path: DefaultSessionPath},
		Observability: ObservabilityConfig{
			ListenAddress:  DefaultObservabilityListenAddress,
			MetricsEnabled: true,
			HealthzEnabled: true,
		},
		Server:        ServerConfig{ListenAddress: DefaultServerListenAddress},
		OAuth:         OAuthConfig{RedirectURI: DefaultOAuthRedirectURI},
	}
}
