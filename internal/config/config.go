// Package config loads atlas generation settings from YAML with
// environment-variable fallbacks.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/talgya/mini-atlas/internal/noise"
	"github.com/talgya/mini-atlas/internal/world"
)

// Config is the root of an atlas config file.
type Config struct {
	Map      MapConfig     `yaml:"map"`
	Noise    NoiseConfig   `yaml:"noise"`
	Features FeatureConfig `yaml:"features"`
}

type MapConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Seed        int64   `yaml:"seed"`
	Spacing     float64 `yaml:"spacing"`
	Sites       int     `yaml:"sites"`
	Relaxations *int    `yaml:"relaxations"`
}

type NoiseConfig struct {
	Kernel        string  `yaml:"kernel"`
	ElevationBias float64 `yaml:"elevation_bias"`
	Continents    int     `yaml:"continents"`
}

// FeatureConfig fields are pointers so an explicit zero in the file
// overrides the default.
type FeatureConfig struct {
	MountainCutoff  *float64 `yaml:"mountain_cutoff"`
	AcceptThreshold *float64 `yaml:"accept_threshold"`
	MinRangeSites   *int     `yaml:"min_range_sites"`
}

// Load reads a YAML config file.
// With an empty path it tries ATLAS_CONFIG, and returns nil, nil when that
// is unset too; callers then fall back to defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("ATLAS_CONFIG")
		if path == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// GenConfig resolves the file settings into a generation config.
// Each field is taken from the file, then the environment, then the
// world defaults. A nil Config resolves from environment and defaults only.
func (c *Config) GenConfig() (world.GenConfig, error) {
	if c == nil {
		c = &Config{}
	}
	def := world.DefaultGenConfig()
	gc := def

	gc.Width = intWithEnvFallback(c.Map.Width, "ATLAS_WIDTH", def.Width)
	gc.Height = intWithEnvFallback(c.Map.Height, "ATLAS_HEIGHT", def.Height)
	gc.Seed = int64WithEnvFallback(c.Map.Seed, "ATLAS_SEED", def.Seed)
	gc.SiteCount = intWithEnvFallback(c.Map.Sites, "ATLAS_SITES", 0)
	gc.MinSpacing = floatWithEnvFallback(c.Map.Spacing, "ATLAS_SPACING", def.MinSpacing)
	if gc.SiteCount > 0 && c.Map.Spacing == 0 && os.Getenv("ATLAS_SPACING") == "" {
		gc.MinSpacing = 0
	}
	if c.Map.Relaxations != nil {
		gc.Relaxations = *c.Map.Relaxations
	}

	kernel := c.Noise.Kernel
	if kernel == "" {
		kernel = os.Getenv("ATLAS_KERNEL")
	}
	if kernel != "" {
		k, err := noise.ParseKernel(kernel)
		if err != nil {
			return world.GenConfig{}, err
		}
		gc.Kernel = k
	}
	gc.ElevationBias = c.Noise.ElevationBias
	if c.Noise.Continents > 0 {
		gc.NumContinents = c.Noise.Continents
	}

	if v := c.Features.MountainCutoff; v != nil {
		gc.MountainCutoff = *v
	}
	if v := c.Features.AcceptThreshold; v != nil {
		gc.RangeAcceptThreshold = *v
	}
	if v := c.Features.MinRangeSites; v != nil {
		gc.MinRangeSites = *v
	}
	return gc, nil
}

// intWithEnvFallback resolves a value with priority config -> env -> default.
func intWithEnvFallback(v int, envVar string, def int) int {
	if v > 0 {
		return v
	}
	if s := os.Getenv(envVar); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func int64WithEnvFallback(v int64, envVar string, def int64) int64 {
	if v != 0 {
		return v
	}
	if s := os.Getenv(envVar); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func floatWithEnvFallback(v float64, envVar string, def float64) float64 {
	if v > 0 {
		return v
	}
	if s := os.Getenv(envVar); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}
