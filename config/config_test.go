package config_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensura/mensura/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.LoadWithViper(config.NewViper())
	require.NoError(t, err)

	assert.Empty(t, cfg.Catalog.Paths)
	assert.Equal(t, "quantities", cfg.Generate.Out)
	assert.Equal(t, "quantities", cfg.Generate.Package)
	assert.False(t, cfg.Generate.Watch)
	assert.Equal(t, 500, cfg.Generate.WatchDebounceMs)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, 0, cfg.Log.Verbosity)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("MENSURA_GENERATE_OUT", "internal/si")
	t.Setenv("MENSURA_LOG_JSON", "true")

	cfg, err := config.LoadWithViper(config.NewViper())
	require.NoError(t, err)

	assert.Equal(t, "internal/si", cfg.Generate.Out)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mensura.toml")
	doc := `
[catalog]
paths = ["units.toml", "extra.toml"]

[generate]
out = "gen"
package = "si"

[log]
verbosity = 2
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"units.toml", "extra.toml"}, cfg.Catalog.Paths)
	assert.Equal(t, "gen", cfg.Generate.Out)
	assert.Equal(t, "si", cfg.Generate.Package)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	// Unset fields keep their defaults.
	assert.Equal(t, 500, cfg.Generate.WatchDebounceMs)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := config.LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestWatcherRequiresPaths(t *testing.T) {
	_, err := config.NewWatcher(nil, 0)
	assert.Error(t, err)
}

func TestWatcherDebouncesBurstIntoOneCallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.toml")
	require.NoError(t, os.WriteFile(path, []byte("schema_version = \"1.0.0\"\n"), 0o644))

	w, err := config.NewWatcher([]string{path}, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	var calls atomic.Int32
	fired := make(chan struct{}, 8)
	w.OnChange(func() error {
		calls.Add(1)
		fired <- struct{}{}
		return nil
	})
	w.Start()

	// A burst of writes inside the debounce window.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("schema_version = \"1.0.1\"\n"), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}
	// Allow any stray timer to fire before counting.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "burst must coalesce into one callback")
}
