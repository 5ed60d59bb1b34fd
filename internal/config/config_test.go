package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/gridlands/internal/world"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
world:
  width: 32
  height: 24
  strategy: lazy
  cache_capacity: 100
  seed: 7
run:
  ticks: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.World.Width)
	assert.Equal(t, 24, cfg.World.Height)
	assert.Equal(t, StrategyLazy, cfg.World.Strategy)
	assert.Equal(t, 100, cfg.World.CacheCapacity)
	assert.Equal(t, int64(7), cfg.World.Seed)
	assert.Equal(t, 50, cfg.Run.Ticks)
	// Untouched sections keep their defaults.
	assert.Equal(t, 8, cfg.Run.Agents)
}

func TestLoad_MissingFile_Fails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML_Fails(t *testing.T) {
	path := writeConfig(t, "world: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.World.Width = 0 }},
		{"negative height", func(c *Config) { c.World.Height = -1 }},
		{"unknown strategy", func(c *Config) { c.World.Strategy = "clairvoyant" }},
		{"lazy without capacity", func(c *Config) {
			c.World.Strategy = StrategyLazy
			c.World.CacheCapacity = 0
		}},
		{"density above one", func(c *Config) { c.World.ResourceDensity = 1.2 }},
		{"negative ticks", func(c *Config) { c.Run.Ticks = -1 }},
		{"negative agents", func(c *Config) { c.Run.Agents = -1 }},
		{"zero perception radius", func(c *Config) { c.Run.PerceptionRadius = 0 }},
		{"unknown metric", func(c *Config) { c.Run.Metric = "taxicab" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), world.ErrInvalidConfig)
		})
	}
}

func TestDistanceMetric_Mapping(t *testing.T) {
	cfg := Default()

	cfg.Run.Metric = ""
	m, err := cfg.DistanceMetric()
	require.NoError(t, err)
	assert.Equal(t, world.MetricChebyshev, m)

	cfg.Run.Metric = "euclidean"
	m, err = cfg.DistanceMetric()
	require.NoError(t, err)
	assert.Equal(t, world.MetricEuclidean, m)
}

func TestBuildStore_EagerAndLazy(t *testing.T) {
	cfg := Default()
	cfg.World.Width = 8
	cfg.World.Height = 8

	eager, err := cfg.BuildStore()
	require.NoError(t, err)
	assert.Equal(t, 64, eager.Resident())

	cfg.World.Strategy = StrategyLazy
	cfg.World.CacheCapacity = 16
	lazy, err := cfg.BuildStore()
	require.NoError(t, err)
	assert.Equal(t, 0, lazy.Resident())
}
