// Package noise synthesizes the layered coherent-noise rasters behind a map
// and pre-samples them at mesh sites and triangle circumcenters.
package noise

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/mini-atlas/internal/entropy"
	"github.com/talgya/mini-atlas/internal/mesh"
)

var (
	// ErrInvalidExtent is returned for a non-positive raster size.
	ErrInvalidExtent = errors.New("noise: width and height must be positive")
	// ErrSeedRange is returned for a seed outside [-MaxSeed, MaxSeed].
	ErrSeedRange = errors.New("noise: seed out of range")
)

// MaxSeed bounds the map seed so every derived seed fits an int64 exactly.
const MaxSeed = math.MaxInt32

// Options controls field synthesis.
type Options struct {
	Seed   int64
	Kernel Kernel

	// ElevationBias is added to every signed elevation. Zero keeps the
	// tuned land/water balance; a large negative value drowns the map.
	ElevationBias float64

	// NumContinents > 1 raises the continent-mask frequency by its square
	// root, breaking the silhouette into more landmasses.
	NumContinents int
}

// Field holds the synthesized rasters and the per-site and per-triangle
// samples the feature extractors read.
type Field struct {
	Elevation *Raster
	Mountain  *Raster
	Continent *Raster

	// BasicX and BasicY are single-octave jitter rasters for glyph placement.
	BasicX *Raster
	BasicY *Raster

	// SiteElevation is the signed elevation per site; > 0 is land.
	SiteElevation []float64
	// SiteMountain is the mountain propensity per site, rescaled by *0.5+0.5.
	SiteMountain []float64
	// TriangleElevation is the signed elevation at each triangle's circumcenter.
	TriangleElevation []float64
}

// Synthesize builds every raster for a width×height canvas and samples them
// over m. It draws exactly three values from src, in order: the mountain,
// continent and basic-Y sub-seeds.
func Synthesize(opts Options, src entropy.Source, width, height int, m *mesh.Mesh) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("synthesize %dx%d: %w", width, height, ErrInvalidExtent)
	}
	if opts.Seed < -MaxSeed || opts.Seed > MaxSeed {
		return nil, fmt.Errorf("synthesize seed %d: %w", opts.Seed, ErrSeedRange)
	}

	base := NewSampler(opts.Kernel, opts.Seed)
	mountainSeed := DeriveSeed(opts.Seed, src)
	continentSeed := DeriveSeed(opts.Seed, src)
	basicSeed := DeriveSeed(opts.Seed, src)

	continent := ContinentLayer
	if opts.NumContinents > 1 {
		continent.Frequency *= math.Sqrt(float64(opts.NumContinents))
	}

	f := &Field{
		Elevation: NewRaster(width, height, base, ElevationLayer),
		Mountain:  NewRaster(width, height, NewSampler(opts.Kernel, mountainSeed), MountainLayer),
		Continent: NewRaster(width, height, NewSampler(opts.Kernel, continentSeed), continent),
		BasicX:    NewRaster(width, height, base, BasicLayer),
		BasicY:    NewRaster(width, height, NewSampler(opts.Kernel, basicSeed), BasicLayer),
	}

	f.SiteElevation = make([]float64, m.NumSites())
	f.SiteMountain = make([]float64, m.NumSites())
	for i, p := range m.Points {
		f.SiteElevation[i] = f.signedElevation(p) + opts.ElevationBias
		f.SiteMountain[i] = f.Mountain.Sample(p)*0.5 + 0.5
	}

	f.TriangleElevation = make([]float64, m.NumTriangles())
	for t, c := range m.Circumcenters {
		f.TriangleElevation[t] = f.signedElevation(c) + opts.ElevationBias
	}

	slog.Debug("noise field synthesized",
		"kernel", opts.Kernel.String(),
		"seed", opts.Seed,
		"mountain_seed", mountainSeed,
		"continent_seed", continentSeed,
		"sites", len(f.SiteElevation),
		"triangles", len(f.TriangleElevation),
	)
	return f, nil
}

// signedElevation combines the elevation and continent rasters at p.
// The continent term pulls cells towards water; the sign decides land.
func (f *Field) signedElevation(p mesh.Point) float64 {
	return (f.Elevation.Sample(p)*0.5 + 0.5) - (f.Continent.Sample(p)*-0.5 + 0.5)
}

// IsLand reports whether the site's signed elevation is positive.
func (f *Field) IsLand(site int) bool {
	return f.SiteElevation[site] > 0
}

// DeriveSeed draws one value from src and turns it into a secondary seed:
// seed*r*10,000,000 - 5,000,000. seed must lie within ±MaxSeed.
func DeriveSeed(seed int64, src entropy.Source) int64 {
	return int64(float64(seed)*src.Float64()*10_000_000 - 5_000_000)
}
