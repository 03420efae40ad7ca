package domain

const (
	// KeywordAll is the keyword chip meaning "no keyword restriction".
	KeywordAll = "전체"

	DefaultFeaturedCount = 3
	DefaultSort          = SortPopular
	DefaultTab           = "chatbot"
	DefaultPageSize      = 100

	DefaultAPIBaseURL                 = "http://localhost:8080"
	DefaultAPITimeoutSeconds          = 10
	DefaultAssetsBaseURL              = "/images"
	DefaultSessionPath                = ".aidex/session.db"
	DefaultObservabilityListenAddress = "0.0.0.0:9090"
	DefaultServerListenAddress        = "0.0.0.0:8081"
	DefaultOAuthRedirectURI           = "http://localhost:8081/oauth/callback"
)
