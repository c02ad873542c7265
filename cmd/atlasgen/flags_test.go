package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-atlas/internal/noise"
	"github.com/talgya/mini-atlas/internal/world"
)

func TestApplyOnlySetFlags(t *testing.T) {
	f := NewFlags()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-seed", "5", "-kernel", "perlin", "-relax", "0"}))

	cfg := world.SmallTestConfig()
	require.NoError(t, f.Apply(fs, &cfg))

	assert.Equal(t, int64(5), cfg.Seed)
	assert.Equal(t, noise.KernelPerlin, cfg.Kernel)
	assert.Equal(t, 0, cfg.Relaxations)
	assert.Equal(t, 240, cfg.Width, "unset flags keep the config value")
	assert.Equal(t, 8.0, cfg.MinSpacing)
}

func TestApplyRejectsUnknownKernel(t *testing.T) {
	f := NewFlags()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-kernel", "value"}))

	cfg := world.DefaultGenConfig()
	assert.Error(t, f.Apply(fs, &cfg))
}

func TestApplySitesClearsSpacing(t *testing.T) {
	f := NewFlags()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-sites", "500"}))

	cfg := world.SmallTestConfig()
	require.NoError(t, f.Apply(fs, &cfg))

	assert.Equal(t, 500, cfg.SiteCount)
	assert.Zero(t, cfg.MinSpacing)
	assert.NoError(t, cfg.Validate())
}

func TestApplySitesKeepsExplicitSpacing(t *testing.T) {
	f := NewFlags()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-sites", "500", "-spacing", "6"}))

	cfg := world.SmallTestConfig()
	require.NoError(t, f.Apply(fs, &cfg))

	assert.Equal(t, 6.0, cfg.MinSpacing)
}
