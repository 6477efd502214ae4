package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dixieflatline76/setwallpaper/pkg/crop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("crop_mode: center\n"), 0644))

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { changes <- c }, nil)
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("crop_mode: none\n"), 0644))

	select {
	case cfg := <-changes:
		assert.Equal(t, crop.ModeNone, cfg.CropMode)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_ReportsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	errs := make(chan error, 4)
	w, err := NewWatcher(path, func(*Config) { t.Error("unexpected reload") }, func(err error) { errs <- err })
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte("default_target: 9\n"), 0644))

	select {
	case err := <-errs:
		assert.Contains(t, err.Error(), "reloading config")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	changes := make(chan *Config, 1)
	w, err := NewWatcher(path, func(c *Config) { changes <- c }, nil)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))

	select {
	case <-changes:
		t.Fatal("reloaded for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_KeepsConfigWhenFileMovesAway(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("crop_mode: smart\n"), 0644))

	changes := make(chan *Config, 4)
	errs := make(chan error, 4)
	w, err := NewWatcher(path, func(c *Config) { changes <- c }, func(err error) { errs <- err })
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	moved := filepath.Join(dir, "config.yaml.bak")
	require.NoError(t, os.Rename(path, moved))

	select {
	case err := <-errs:
		assert.Contains(t, err.Error(), "keeping the current config")
	case cfg := <-changes:
		t.Fatalf("reloaded defaults for a missing file: %+v", cfg)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the removal to be reported")
	}

	require.NoError(t, os.Rename(moved, path))
	select {
	case cfg := <-changes:
		assert.Equal(t, crop.ModeSmart, cfg.CropMode)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload after the file came back")
	}
}
