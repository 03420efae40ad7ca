package app

import (
	"strings"

	"go.uber.org/zap"

	"aidex/internal/domain"
	"aidex/internal/infra/apiclient"
	"aidex/internal/infra/telemetry"
)

// TokenStore persists the signed-in user's access token.
type TokenStore interface {
	SaveToken(token string) error
	Clear() error
	IsAuthenticated() bool
}

// LoginURLBuilder builds the upstream OAuth authorization URL.
type LoginURLBuilder interface {
	LoginURL(provider, redirectURI string) (string, error)
}

type AuthService struct {
	urls        LoginURLBuilder
	store       TokenStore
	redirectURI string
	logger      *zap.Logger
}

func NewAuthService(urls LoginURLBuilder, store TokenStore, cfg domain.Config, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		urls:        urls,
		store:       store,
		redirectURI: cfg.OAuth.RedirectURI,
		logger:      logger.Named("auth"),
	}
}

// LoginURL returns the URL the user opens to sign in with provider.
func (s *AuthService) LoginURL(provider string) (string, error) {
	return s.urls.LoginURL(provider, s.redirectURI)
}

// CompleteLogin stores the token carried by input, which is either the OAuth
// callback URL or the bare token.
func (s *AuthService) CompleteLogin(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.E(domain.CodeInvalidArgument, "complete login", "token or callback url is required", domain.ErrInvalidArgument)
	}
	token := input
	if strings.Contains(input, "://") {
		parsed, err := apiclient.TokenFromCallback(input)
		if err != nil {
			return err
		}
		token = parsed
	}
	if err := s.store.SaveToken(token); err != nil {
		return domain.Wrap(domain.CodeInternal, "save session token", err)
	}
	s.logger.Info("signed in", telemetry.EventField(telemetry.EventLogin))
	return nil
}

// Logout forgets the stored token.
func (s *AuthService) Logout() error {
	if err := s.store.Clear(); err != nil {
		return domain.Wrap(domain.CodeInternal, "clear session token", err)
	}
	s.logger.Info("signed out", telemetry.EventField(telemetry.EventLogout))
	return nil
}

func (s *AuthService) IsAuthenticated() bool {
	return s.store.IsAuthenticated()
}
