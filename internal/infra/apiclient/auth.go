package apiclient

import (
	"net/url"
	"strings"

	"aidex/internal/domain"
)

var tokenParams = []string{"token", "accessToken", "access_token"}

// LoginURL returns the upstream OAuth authorization URL for provider. After
// sign-in the upstream redirects to redirectURI with the token in the query.
func (c *Client) LoginURL(provider, redirectURI string) (string, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return "", domain.E(domain.CodeInvalidArgument, "login url", "provider is required", domain.ErrInvalidArgument)
	}
	endpoint := c.baseURL.JoinPath("/oauth2/authorization", provider)
	if redirectURI != "" {
		endpoint.RawQuery = url.Values{"redirect_uri": {redirectURI}}.Encode()
	}
	return endpoint.String(), nil
}

// TokenFromCallback extracts the access token from the OAuth redirect URL.
// The token may arrive in the query string or the fragment.
func TokenFromCallback(raw string) (string, error) {
	const op = "parse oauth callback"
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", domain.E(domain.CodeInvalidArgument, op, "", err)
	}
	if token := firstParam(parsed.Query()); token != "" {
		return token, nil
	}
	if parsed.Fragment != "" {
		fragment, err := url.ParseQuery(parsed.Fragment)
		if err == nil {
			if token := firstParam(fragment); token != "" {
				return token, nil
			}
		}
	}
	return "", domain.E(domain.CodeInvalidArgument, op, "callback url carries no token", domain.ErrInvalidArgument)
}

func firstParam(values url.Values) string {
	for _, key := range tokenParams {
		if v := strings.TrimSpace(values.Get(key)); v != "" {
			return v
		}
	}
	return ""
}
