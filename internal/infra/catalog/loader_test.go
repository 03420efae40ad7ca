package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"aidex/internal/domain"
)

func TestLoader_DefaultsWithoutFile(t *testing.T) {
	cfg, err := NewLoader(zap.NewNop()).Load(context.Background(), "")
	require.NoError(t, err)

	want := domain.DefaultConfig()
	want.Assets.Services = map[string]string{}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Success(t *testing.T) {
	file := writeTempConfig(t, `
api:
  baseURL: https://api.example.com/
  timeoutSeconds: 3
  pageSize: 40
listing:
  featuredCount: 5
  defaultTab: Image
  defaultSort: newest
assets:
  baseURL: https://cdn.example.com/images/
  services:
    Midjourney: mj.png
session:
  path: /tmp/aidex/session.db
`)

	cfg, err := NewLoader(zap.NewNop()).Load(context.Background(), file)
	require.NoError(t, err)

	require.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	require.Equal(t, 3, cfg.API.TimeoutSeconds)
	require.Equal(t, 40, cfg.API.PageSize)
	require.Equal(t, 5, cfg.Listing.FeaturedCount)
	require.Equal(t, "image", cfg.Listing.DefaultTab)
	require.Equal(t, domain.SortNewest, cfg.Listing.DefaultSort)
	require.Equal(t, "https://cdn.example.com/images", cfg.Assets.BaseURL)
	require.Equal(t, map[string]string{"midjourney": "mj.png"}, cfg.Assets.Services)
	require.Equal(t, "/tmp/aidex/session.db", cfg.Session.Path)
	require.Equal(t, domain.DefaultServerListenAddress, cfg.Server.ListenAddress)
	require.Equal(t, domain.DefaultObservabilityListenAddress, cfg.Observability.ListenAddress)
}

func TestLoader_EnvExpansion(t *testing.T) {
	t.Setenv("CATALOG_API", "https://catalog.internal")
	t.Setenv("FEATURED", "7")
	core, logs := observer.New(zapcore.WarnLevel)
	file := writeTempConfig(t, `
api:
  baseURL: ${CATALOG_API}
listing:
  featuredCount: ${FEATURED}
oauth:
  redirectURI: ${AIDEX_TEST_REDIRECT:-http://127.0.0.1:9000/cb}
session:
  path: ${AIDEX_TEST_UNSET_DIR}/session.db
`)

	cfg, err := NewLoader(zap.New(core)).Load(context.Background(), file)
	require.NoError(t, err)
	require.Equal(t, "https://catalog.internal", cfg.API.BaseURL)
	require.Equal(t, 7, cfg.Listing.FeaturedCount)
	require.Equal(t, "http://127.0.0.1:9000/cb", cfg.OAuth.RedirectURI)
	require.Equal(t, "/session.db", cfg.Session.Path)

	require.Equal(t, 1, logs.Len())
	require.Equal(t, []any{"AIDEX_TEST_UNSET_DIR"}, logs.All()[0].ContextMap()["missing"])
}

func TestLoader_EnvironmentOverride(t *testing.T) {
	t.Setenv("AIDEX_API_BASEURL", "https://override.example.com")
	t.Setenv("AIDEX_LISTING_FEATUREDCOUNT", "1")

	cfg, err := NewLoader(nil).Load(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "https://override.example.com", cfg.API.BaseURL)
	require.Equal(t, 1, cfg.Listing.FeaturedCount)
}

func TestLoader_ValidationErrorsAreJoined(t *testing.T) {
	file := writeTempConfig(t, `
api:
  baseURL: ftp://example.com
  pageSize: 0
listing:
  featuredCount: -1
  defaultSort: oldest
`)

	_, err := NewLoader(nil).Load(context.Background(), file)
	require.Error(t, err)
	require.Contains(t, err.Error(), "api.baseURL must be a valid http(s) URL")
	require.Contains(t, err.Error(), "; api.pageSize must be > 0")
	require.Contains(t, err.Error(), "listing.featuredCount must be >= 0")
	require.Contains(t, err.Error(), "listing.defaultSort must be popular or newest")
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader(nil).Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, err, "read config")
}

func TestLoader_InvalidYAML(t *testing.T) {
	_, err := NewLoader(nil).Parse(context.Background(), []byte("api: [unterminated"))
	require.ErrorContains(t, err, "parse config")
}

func TestLoader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader(nil).Parse(ctx, []byte("api:\n  pageSize: 10\n"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoader_LoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("AIDEX_TEST_DOTENV=from-file\nAIDEX_TEST_PRESET=from-file\n"), 0o600))
	t.Setenv("AIDEX_TEST_PRESET", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("AIDEX_TEST_DOTENV") })

	loader := NewLoader(nil)
	require.NoError(t, loader.LoadDotEnv(filepath.Join(dir, "missing.env"), envFile))
	require.Equal(t, "from-file", os.Getenv("AIDEX_TEST_DOTENV"))
	require.Equal(t, "from-env", os.Getenv("AIDEX_TEST_PRESET"))
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aidex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoader_TOML(t *testing.T) {
	t.Setenv("AIDEX_TEST_CDN", "https://cdn.example.com")
	path := filepath.Join(t.TempDir(), "aidex.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
baseURL = "https://api.example.com"
pageSize = 25

[listing]
featuredCount = 4
defaultSort = "newest"

[assets]
baseURL = "${AIDEX_TEST_CDN}/img"
`), 0o600))

	cfg, err := NewLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	require.Equal(t, 25, cfg.API.PageSize)
	require.Equal(t, 4, cfg.Listing.FeaturedCount)
	require.Equal(t, domain.SortNewest, cfg.Listing.DefaultSort)
	require.Equal(t, "https://cdn.example.com/img", cfg.Assets.BaseURL)
	require.Equal(t, domain.DefaultTab, cfg.Listing.DefaultTab)
}

func TestLoader_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aidex.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api\nbaseURL ="), 0o600))
	_, err := NewLoader(nil).Load(context.Background(), path)
	require.ErrorContains(t, err, "parse toml config")
}
