package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-atlas/internal/noise"
	"github.com/talgya/mini-atlas/internal/world"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atlas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadWithoutPathOrEnv(t *testing.T) {
	t.Setenv("ATLAS_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromEnvPath(t *testing.T) {
	path := writeConfig(t, "map:\n  seed: 77\n")
	t.Setenv("ATLAS_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, int64(77), cfg.Map.Seed)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "map: [unclosed\n"))
	assert.Error(t, err)
}

func TestGenConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
map:
  width: 400
  height: 300
  seed: 9
  spacing: 12
  relaxations: 0
noise:
  kernel: perlin
  elevation_bias: -0.25
  continents: 2
features:
  mountain_cutoff: 0.7
  accept_threshold: 0.9
  min_range_sites: 20
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	gc, err := cfg.GenConfig()
	require.NoError(t, err)
	assert.Equal(t, 400, gc.Width)
	assert.Equal(t, 300, gc.Height)
	assert.Equal(t, int64(9), gc.Seed)
	assert.Equal(t, 12.0, gc.MinSpacing)
	assert.Equal(t, 0, gc.Relaxations)
	assert.Equal(t, noise.KernelPerlin, gc.Kernel)
	assert.Equal(t, -0.25, gc.ElevationBias)
	assert.Equal(t, 2, gc.NumContinents)
	assert.Equal(t, 0.7, gc.MountainCutoff)
	assert.Equal(t, 0.9, gc.RangeAcceptThreshold)
	assert.Equal(t, 20, gc.MinRangeSites)
	assert.NoError(t, gc.Validate())
}

func TestGenConfigPriority(t *testing.T) {
	t.Setenv("ATLAS_WIDTH", "500")
	t.Setenv("ATLAS_HEIGHT", "250")
	t.Setenv("ATLAS_SEED", "1234")
	t.Setenv("ATLAS_SPACING", "")
	t.Setenv("ATLAS_SITES", "")
	t.Setenv("ATLAS_KERNEL", "")

	cfg := &Config{Map: MapConfig{Width: 320}}
	gc, err := cfg.GenConfig()
	require.NoError(t, err)

	def := world.DefaultGenConfig()
	assert.Equal(t, 320, gc.Width, "file beats env")
	assert.Equal(t, 250, gc.Height, "env beats default")
	assert.Equal(t, int64(1234), gc.Seed)
	assert.Equal(t, def.MinSpacing, gc.MinSpacing)
	assert.Equal(t, def.Relaxations, gc.Relaxations)
	assert.Equal(t, def.Kernel, gc.Kernel)
}

func TestNilConfigUsesDefaults(t *testing.T) {
	for _, k := range []string{"ATLAS_WIDTH", "ATLAS_HEIGHT", "ATLAS_SEED", "ATLAS_SPACING", "ATLAS_SITES", "ATLAS_KERNEL"} {
		t.Setenv(k, "")
	}

	var cfg *Config
	gc, err := cfg.GenConfig()
	require.NoError(t, err)
	assert.Equal(t, world.DefaultGenConfig(), gc)
}

func TestSiteCountClearsDefaultSpacing(t *testing.T) {
	t.Setenv("ATLAS_SPACING", "")
	t.Setenv("ATLAS_SITES", "800")

	gc, err := (&Config{}).GenConfig()
	require.NoError(t, err)
	assert.Equal(t, 800, gc.SiteCount)
	assert.Zero(t, gc.MinSpacing)
	assert.Greater(t, gc.Spacing(), 0.0)
}

func TestGenConfigRejectsUnknownKernel(t *testing.T) {
	cfg := &Config{Noise: NoiseConfig{Kernel: "worley"}}
	_, err := cfg.GenConfig()
	assert.Error(t, err)
}

func TestGenConfigExplicitZeroFeatures(t *testing.T) {
	path := writeConfig(t, `
features:
  mountain_cutoff: 0
  accept_threshold: 0
  min_range_sites: 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	gc, err := cfg.GenConfig()
	require.NoError(t, err)
	assert.Zero(t, gc.MountainCutoff)
	assert.Zero(t, gc.RangeAcceptThreshold)
	assert.Zero(t, gc.MinRangeSites)
	assert.NoError(t, gc.Validate())
}
