// World generation: mesh, layered noise, then feature extraction.
// One call rebuilds everything from the seed; nothing is incremental.
package world

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/talgya/mini-atlas/internal/entropy"
	"github.com/talgya/mini-atlas/internal/features"
	"github.com/talgya/mini-atlas/internal/mesh"
	"github.com/talgya/mini-atlas/internal/noise"
)

// ErrInvalidConfig wraps every configuration rejected before generation starts.
var ErrInvalidConfig = errors.New("invalid generation config")

// packingDensity is the share of a canvas a Bridson sampler fills, in
// sites per spacing², used to turn a site count into a spacing.
const packingDensity = 0.7

// GenConfig holds map generation parameters.
type GenConfig struct {
	Width  int   // Canvas width in pixels
	Height int   // Canvas height in pixels
	Seed   int64 // Random seed (0 = random)

	MinSpacing float64 // Poisson-disk spacing between sites
	SiteCount  int     // Target site count; used only when MinSpacing is 0

	Relaxations   int          // Lloyd passes before sampling noise
	NumContinents int          // Legacy continent count (1 = tuned mask)
	Kernel        noise.Kernel // Coherent-noise kernel
	ElevationBias float64      // Added to every signed elevation

	MountainCutoff       float64 // Propensity needed to seed a range
	RangeAcceptThreshold float64 // Draw needed for a sub-cutoff site to join
	MinRangeSites        int     // Smaller ranges are discarded
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:                960,
		Height:               640,
		Seed:                 1,
		MinSpacing:           10,
		Relaxations:          1,
		NumContinents:        1,
		Kernel:               noise.KernelSimplex,
		MountainCutoff:       features.MountainRangeCutoff,
		RangeAcceptThreshold: features.RangeAcceptThreshold,
		MinRangeSites:        features.MinMountainRangeSites,
	}
}

// SmallTestConfig returns a tiny map for rapid iteration.
func SmallTestConfig() GenConfig {
	cfg := DefaultGenConfig()
	cfg.Width = 240
	cfg.Height = 180
	cfg.Seed = 42
	cfg.MinSpacing = 8
	return cfg
}

// Spacing returns the Poisson-disk spacing the config asks for, deriving it
// from SiteCount when no explicit spacing is set.
func (c GenConfig) Spacing() float64 {
	if c.MinSpacing > 0 || c.SiteCount <= 0 {
		return c.MinSpacing
	}
	return math.Sqrt(packingDensity * float64(c.Width) * float64(c.Height) / float64(c.SiteCount))
}

// Validate reports the first problem that would stop generation.
func (c GenConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Seed < -noise.MaxSeed || c.Seed > noise.MaxSeed {
		return fmt.Errorf("%w: seed %d outside ±%d", ErrInvalidConfig, c.Seed, noise.MaxSeed)
	}
	if c.MinSpacing < 0 {
		return fmt.Errorf("%w: negative spacing %.3f", ErrInvalidConfig, c.MinSpacing)
	}
	if c.MinSpacing == 0 && c.SiteCount < 3 {
		return fmt.Errorf("%w: site count %d must be at least 3", ErrInvalidConfig, c.SiteCount)
	}
	if s := c.Spacing(); s >= float64(min(c.Width, c.Height)) {
		return fmt.Errorf("%w: spacing %.3f does not fit a %dx%d canvas", ErrInvalidConfig, s, c.Width, c.Height)
	}
	if c.Relaxations < 0 {
		return fmt.Errorf("%w: negative relaxation count %d", ErrInvalidConfig, c.Relaxations)
	}
	if c.NumContinents < 1 {
		return fmt.Errorf("%w: continent count %d must be at least 1", ErrInvalidConfig, c.NumContinents)
	}
	if c.MinRangeSites < 0 {
		return fmt.Errorf("%w: negative minimum range size %d", ErrInvalidConfig, c.MinRangeSites)
	}
	return nil
}

// Generate builds a complete atlas, seeding an Alea stream from cfg.Seed.
func Generate(cfg GenConfig) (*Atlas, error) {
	if cfg.Seed == 0 {
		cfg.Seed = entropy.RandomSeed()
	}
	return GenerateWithSource(cfg, entropy.NewAlea(cfg.Seed))
}

// GenerateWithSource builds a complete atlas drawing every random value
// from src, in a fixed order: mesh sampling, noise sub-seeds, mountain
// clustering, river growth.
func GenerateWithSource(cfg GenConfig, src entropy.Source) (*Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	log := slog.With("run", runID, "seed", cfg.Seed)

	w, h := float64(cfg.Width), float64(cfg.Height)
	m, err := mesh.Build(w, h, cfg.Spacing(), src)
	if err != nil {
		return nil, fmt.Errorf("build mesh: %w", err)
	}
	if err := m.Relax(cfg.Relaxations); err != nil {
		return nil, fmt.Errorf("relax mesh: %w", err)
	}
	log.Debug("mesh built", "sites", m.NumSites(), "triangles", m.NumTriangles(), "relaxations", cfg.Relaxations)

	field, err := noise.Synthesize(noise.Options{
		Seed:          cfg.Seed,
		Kernel:        cfg.Kernel,
		ElevationBias: cfg.ElevationBias,
		NumContinents: cfg.NumContinents,
	}, src, cfg.Width, cfg.Height, m)
	if err != nil {
		return nil, fmt.Errorf("synthesize noise: %w", err)
	}

	set, err := features.Extract(m, field, w, h, src, features.RangeOptions{
		Cutoff:          cfg.MountainCutoff,
		AcceptThreshold: cfg.RangeAcceptThreshold,
		MinSites:        cfg.MinRangeSites,
	})
	if err != nil {
		return nil, err
	}

	a := &Atlas{
		RunID:    runID,
		Config:   cfg,
		Mesh:     m,
		Noise:    field,
		Features: set,
	}
	log.Debug("atlas generated", "summary", a.String())
	return a, nil
}
