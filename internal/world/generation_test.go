package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-atlas/internal/entropy"
	"github.com/talgya/mini-atlas/internal/features"
	"github.com/talgya/mini-atlas/internal/noise"
)

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := SmallTestConfig()

	a, err := Generate(cfg)
	require.NoError(t, err)
	b, err := Generate(cfg)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Mesh.Points, b.Mesh.Points)
	assert.Equal(t, a.Features.Classes, b.Features.Classes)
	assert.Equal(t, a.Features.Ranges, b.Features.Ranges)
	assert.Equal(t, a.Features.Rivers.Roots, b.Features.Rivers.Roots)
	assert.Equal(t, a.Features.Coast.Loops, b.Features.Coast.Loops)
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	cfg := SmallTestConfig()
	a, err := Generate(cfg)
	require.NoError(t, err)

	cfg.Seed++
	b, err := Generate(cfg)
	require.NoError(t, err)

	assert.NotEqual(t, a.Mesh.Points, b.Mesh.Points)
}

func TestGenerateSiteDensity(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Width, cfg.Height = 100, 100
	cfg.MinSpacing = 10
	cfg.Seed = 1

	a, err := Generate(cfg)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, a.Mesh.NumSites(), 60)
	assert.LessOrEqual(t, a.Mesh.NumSites(), 90)
}

func TestGenerateFromSiteCount(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.MinSpacing = 0
	cfg.SiteCount = 400

	a, err := Generate(cfg)
	require.NoError(t, err)
	assert.Greater(t, a.Mesh.NumSites(), 200)
	assert.Less(t, a.Mesh.NumSites(), 600)
}

func TestSubmergedMapHasNoLand(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.ElevationBias = -10

	a, err := Generate(cfg)
	require.NoError(t, err)

	counts := a.ClassCounts()
	assert.Zero(t, counts[features.ClassLand])
	assert.Zero(t, counts[features.ClassCoast])
	assert.Equal(t, a.Mesh.NumTriangles(), counts[features.ClassWater])
	assert.Empty(t, a.Features.Ranges)
	assert.Empty(t, a.Features.Coast.Loops)
	assert.Zero(t, a.LandSites())
}

func TestGenerateRiversAreSized(t *testing.T) {
	a, err := Generate(SmallTestConfig())
	require.NoError(t, err)

	require.NotEmpty(t, a.Features.Rivers.Roots)
	assert.GreaterOrEqual(t, a.LargestRiver(), 1)
	for id, n := range a.Features.Rivers.Nodes {
		assert.GreaterOrEqual(t, n.Size, 1, "river node %d", id)
	}
	assert.Len(t, a.Features.Bounds(), len(a.Features.Ranges))
	assert.Contains(t, a.String(), "seed=42")
}

func TestGenerateWithSourceUsesStreamInOrder(t *testing.T) {
	cfg := SmallTestConfig()
	a, err := GenerateWithSource(cfg, entropy.NewAlea(cfg.Seed))
	require.NoError(t, err)
	b, err := Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Mesh.Points, b.Mesh.Points)
	assert.Equal(t, a.Noise.SiteElevation, b.Noise.SiteElevation)

	c, err := GenerateWithSource(cfg, entropy.NewPCG(cfg.Seed))
	require.NoError(t, err)
	assert.NotEqual(t, a.Mesh.Points, c.Mesh.Points)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GenConfig)
	}{
		{"zero width", func(c *GenConfig) { c.Width = 0 }},
		{"negative height", func(c *GenConfig) { c.Height = -1 }},
		{"negative spacing", func(c *GenConfig) { c.MinSpacing = -2 }},
		{"spacing too large", func(c *GenConfig) { c.MinSpacing = float64(c.Height) }},
		{"too few sites", func(c *GenConfig) { c.MinSpacing = 0; c.SiteCount = 2 }},
		{"negative relaxations", func(c *GenConfig) { c.Relaxations = -1 }},
		{"no continents", func(c *GenConfig) { c.NumContinents = 0 }},
		{"negative range size", func(c *GenConfig) { c.MinRangeSites = -1 }},
		{"seed too large", func(c *GenConfig) { c.Seed = 1_000_000_000_000 }},
		{"seed too small", func(c *GenConfig) { c.Seed = -noise.MaxSeed - 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SmallTestConfig()
			tt.mutate(&cfg)

			a, err := Generate(cfg)
			assert.Nil(t, a)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	assert.NoError(t, DefaultGenConfig().Validate())
}

func TestSeedZeroPicksRandomSeed(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.Seed = 0

	a, err := Generate(cfg)
	require.NoError(t, err)
	assert.NotZero(t, a.Config.Seed)
}
