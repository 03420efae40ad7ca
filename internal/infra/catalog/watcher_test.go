package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidex/internal/domain"
)

type appliedConfigs struct {
	mu   sync.Mutex
	cfgs []domain.Config
}

func (a *appliedConfigs) apply(cfg domain.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfgs = append(a.cfgs, cfg)
}

func (a *appliedConfigs) snapshot() []domain.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.Config(nil), a.cfgs...)
}

func startWatcher(t *testing.T, path string, applied *appliedConfigs) {
	t.Helper()
	watcher, err := NewWatcher(WatcherOptions{Path: path, Apply: applied.apply, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeTempConfig(t, "listing:\n  featuredCount: 2\n")
	applied := &appliedConfigs{}
	startWatcher(t, path, applied)

	require.NoError(t, os.WriteFile(path, []byte("listing:\n  featuredCount: 6\n"), 0o600))

	require.Eventually(t, func() bool {
		cfgs := applied.snapshot()
		return len(cfgs) > 0 && cfgs[len(cfgs)-1].Listing.FeaturedCount == 6
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_InvalidConfigIsNotApplied(t *testing.T) {
	path := writeTempConfig(t, "listing:\n  featuredCount: 2\n")
	applied := &appliedConfigs{}
	startWatcher(t, path, applied)

	require.NoError(t, os.WriteFile(path, []byte("listing:\n  featuredCount: -1\n"), 0o600))
	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, applied.snapshot())
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	path := writeTempConfig(t, "listing:\n  featuredCount: 2\n")
	applied := &appliedConfigs{}
	startWatcher(t, path, applied)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "notes.txt"), []byte("hi"), 0o600))
	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, applied.snapshot())
}

func TestNewWatcher_Validation(t *testing.T) {
	_, err := NewWatcher(WatcherOptions{Apply: func(domain.Config) {}})
	require.Error(t, err)
	_, err = NewWatcher(WatcherOptions{Path: "aidex.yaml"})
	require.Error(t, err)
}

func TestShouldReloadForPath(t *testing.T) {
	assert.True(t, shouldReloadForPath("/etc/aidex/./aidex.yaml", "/etc/aidex/aidex.yaml"))
	assert.False(t, shouldReloadForPath("/etc/aidex/other.yaml", "/etc/aidex/aidex.yaml"))
	assert.False(t, shouldReloadForPath("", "/etc/aidex/aidex.yaml"))
}
