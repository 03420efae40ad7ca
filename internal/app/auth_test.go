package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidex/internal/domain"
	"aidex/internal/infra/apiclient"
)

type memoryTokenStore struct {
	token   string
	saveErr error
}

func (m *memoryTokenStore) SaveToken(token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memoryTokenStore) Clear() error {
	m.token = ""
	return nil
}

func (m *memoryTokenStore) IsAuthenticated() bool { return m.token != "" }

func newTestAuth(t *testing.T, store TokenStore) *AuthService {
	t.Helper()
	client, err := apiclient.New(apiclient.Options{BaseURL: "https://api.example.com"})
	require.NoError(t, err)
	return NewAuthService(client, store, domain.DefaultConfig(), nil)
}

func TestAuthService_LoginURL(t *testing.T) {
	auth := newTestAuth(t, &memoryTokenStore{})

	got, err := auth.LoginURL("kakao")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/oauth2/authorization/kakao?redirect_uri=http%3A%2F%2Flocalhost%3A8081%2Foauth%2Fcallback", got)
}

func TestAuthService_CompleteLoginAndLogout(t *testing.T) {
	store := &memoryTokenStore{}
	auth := newTestAuth(t, store)

	require.NoError(t, auth.CompleteLogin("http://localhost:8081/oauth/callback?accessToken=abc"))
	assert.Equal(t, "abc", store.token)
	assert.True(t, auth.IsAuthenticated())

	require.NoError(t, auth.CompleteLogin(" raw-token "))
	assert.Equal(t, "raw-token", store.token)

	require.NoError(t, auth.Logout())
	assert.False(t, auth.IsAuthenticated())
}

func TestAuthService_CompleteLoginErrors(t *testing.T) {
	auth := newTestAuth(t, &memoryTokenStore{saveErr: errors.New("disk full")})

	require.ErrorIs(t, auth.CompleteLogin(""), domain.ErrInvalidArgument)
	require.ErrorIs(t, auth.CompleteLogin("http://localhost/callback?error=denied"), domain.ErrInvalidArgument)

	err := auth.CompleteLogin("token")
	require.Error(t, err)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeInternal, code)
}
