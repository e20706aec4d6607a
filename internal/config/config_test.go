package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the config file", func(t *testing.T) {
		// Given: a config file choosing plain minimax and redis storage
		path := writeConfig(t, `
log-level: debug
algorithm: minimax
seed: 42
storage:
  driver: redis
redis:
  host: cache
  port: "6380"
timings:
  csv-path: out/timings.csv
  hide-chart: true
`)

		// When: loading it
		conf, err := Load(path)

		// Then: every section is filled from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "minimax", conf.Algorithm)
		assert.Equal(t, uint64(42), conf.Seed)
		assert.Equal(t, StorageRedis, conf.Storage.Driver)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "out/timings.csv", conf.Timings.CSVPath)
		assert.False(t, conf.Timings.ShowChart())
	})

	t.Run("Falls back to the environment without a file", func(t *testing.T) {
		// Given: no config file and a couple of variables set
		t.Setenv("ALGORITHM", "minimax")
		t.Setenv("SEED", "7")

		// When: loading a missing path
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: environment and defaults are used
		require.NoError(t, err)
		assert.Equal(t, "minimax", conf.Algorithm)
		assert.Equal(t, uint64(7), conf.Seed)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, StorageMemory, conf.Storage.Driver)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.True(t, conf.Timings.ShowChart())
	})

	t.Run("Unknown storage driver", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  driver: sqlite\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrUnknownStorage)
	})
}

func TestLoad_Chart(t *testing.T) {
	t.Run("Hidden from the file", func(t *testing.T) {
		// Given: a file that only hides the chart
		path := writeConfig(t, "timings:\n  hide-chart: true\n")

		// When: loading it
		conf, err := Load(path)

		// Then: the file value survives the defaults
		require.NoError(t, err)
		assert.False(t, conf.Timings.ShowChart())
	})

	t.Run("Shown when the file omits it", func(t *testing.T) {
		path := writeConfig(t, "timings:\n  csv-path: timings.csv\n")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.True(t, conf.Timings.ShowChart())
	})

	t.Run("Hidden from the environment", func(t *testing.T) {
		t.Setenv("TIMINGS_HIDE_CHART", "true")

		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.NoError(t, err)
		assert.False(t, conf.Timings.ShowChart())
	})
}

func TestMustLoad(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: etcd\n")

	assert.Panics(t, func() {
		MustLoad(path)
	})
}
