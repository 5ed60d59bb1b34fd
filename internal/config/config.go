// Package config loads and validates the simulation run configuration.
// Validation failures are fatal at startup, before any tick runs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/gridlands/internal/world"
)

// Strategy names the cell store backing strategy.
type Strategy string

const (
	StrategyEager Strategy = "eager"
	StrategyLazy  Strategy = "lazy"
)

// Config is the full run configuration.
type Config struct {
	World WorldConfig `yaml:"world"`
	Run   RunConfig   `yaml:"run"`
	Sink  SinkConfig  `yaml:"sink"`
}

// WorldConfig shapes the grid and its backing strategy.
type WorldConfig struct {
	Width           int      `yaml:"width"`
	Height          int      `yaml:"height"`
	Strategy        Strategy `yaml:"strategy"`
	CacheCapacity   int      `yaml:"cache_capacity"` // Lazy strategy only
	ResourceDensity float64  `yaml:"resource_density"`
	Seed            int64    `yaml:"seed"`
}

// RunConfig shapes the scheduler run.
type RunConfig struct {
	Ticks            int    `yaml:"ticks"`
	Agents           int    `yaml:"agents"`
	PerceptionRadius int    `yaml:"perception_radius"`
	Metric           string `yaml:"metric"` // chebyshev | euclidean
}

// SinkConfig names the optional event sinks.
type SinkConfig struct {
	Database string `yaml:"database"`  // SQLite event sink ("" = disabled)
	EventLog string `yaml:"event_log"` // Plain-text event file ("" = disabled)
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		World: WorldConfig{
			Width:           64,
			Height:          64,
			Strategy:        StrategyEager,
			CacheCapacity:   256,
			ResourceDensity: 0.15,
			Seed:            42,
		},
		Run: RunConfig{
			Ticks:            100,
			Agents:           8,
			PerceptionRadius: 3,
			Metric:           "chebyshev",
		},
	}
}

// Load reads a YAML config file over the defaults and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot produce a working world.
func (c Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world dimensions %dx%d: %w", c.World.Width, c.World.Height, world.ErrInvalidConfig)
	}
	switch c.World.Strategy {
	case StrategyEager:
	case StrategyLazy:
		if c.World.CacheCapacity <= 0 {
			return fmt.Errorf("cache capacity %d: %w", c.World.CacheCapacity, world.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("strategy %q: %w", c.World.Strategy, world.ErrInvalidConfig)
	}
	if c.World.ResourceDensity < 0 || c.World.ResourceDensity > 1 {
		return fmt.Errorf("resource density %.2f: %w", c.World.ResourceDensity, world.ErrInvalidConfig)
	}
	if c.Run.Ticks < 0 {
		return fmt.Errorf("tick budget %d: %w", c.Run.Ticks, world.ErrInvalidConfig)
	}
	if c.Run.Agents < 0 {
		return fmt.Errorf("agent count %d: %w", c.Run.Agents, world.ErrInvalidConfig)
	}
	if c.Run.PerceptionRadius <= 0 {
		return fmt.Errorf("perception radius %d: %w", c.Run.PerceptionRadius, world.ErrInvalidConfig)
	}
	if _, err := c.DistanceMetric(); err != nil {
		return err
	}
	return nil
}

// DistanceMetric maps the configured metric name.
func (c Config) DistanceMetric() (world.DistanceMetric, error) {
	switch c.Run.Metric {
	case "", "chebyshev":
		return world.MetricChebyshev, nil
	case "euclidean":
		return world.MetricEuclidean, nil
	default:
		return world.MetricChebyshev, fmt.Errorf("metric %q: %w", c.Run.Metric, world.ErrInvalidConfig)
	}
}

// GenConfig builds the generation parameters from the world section.
func (c Config) GenConfig() world.GenConfig {
	return world.GenConfig{
		Width:           c.World.Width,
		Height:          c.World.Height,
		ResourceDensity: c.World.ResourceDensity,
		Seed:            c.World.Seed,
	}
}

// BuildStore constructs the configured backing store.
func (c Config) BuildStore() (world.CellStore, error) {
	if c.World.Strategy == StrategyLazy {
		return world.GenerateLazy(c.GenConfig(), c.World.CacheCapacity)
	}
	return world.GenerateEager(c.GenConfig())
}
