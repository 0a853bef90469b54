package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsValidChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skagent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prefix: a\n"), 0o644))

	var (
		mu   sync.Mutex
		seen []*Config
	)
	w := NewWatcher(path, func(cfg *Config) {
		mu.Lock()
		seen = append(seen, cfg)
		mu.Unlock()
	}).WithDebounce(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	last := func() *Config {
		mu.Lock()
		defer mu.Unlock()
		if len(seen) == 0 {
			return nil
		}
		return seen[len(seen)-1]
	}

	// Invalid content is never handed to the callback.
	require.NoError(t, os.WriteFile(path, []byte("prefix: [broken\n"), 0o644))
	time.Sleep(50 * time.Millisecond)
	assert.Nil(t, last())

	// The watch is registered asynchronously; rewrite until it is noticed.
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("prefix: b\n"), 0o644)
		cfg := last()
		return cfg != nil && cfg.Prefix == "b"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "skagent.yaml"), func(*Config) {})
	assert.Error(t, err)
}
