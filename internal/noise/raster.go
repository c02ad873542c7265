package noise

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/talgya/mini-atlas/internal/mesh"
)

// Layer tunes one fractal raster.
type Layer struct {
	Frequency   float64
	Octaves     int
	Persistence float64
	Amplitude   float64
}

// Tunings for the map rasters.
var (
	ElevationLayer = Layer{Frequency: 0.009, Octaves: 3, Persistence: 0.7, Amplitude: 1}
	MountainLayer  = Layer{Frequency: 0.0035, Octaves: 3, Persistence: 0.5, Amplitude: 4.5}
	ContinentLayer = Layer{Frequency: 0.0025, Octaves: 4, Persistence: 0.1, Amplitude: 4.5}
	BasicLayer     = Layer{Frequency: 1, Octaves: 1, Persistence: 0.5, Amplitude: 1}
)

// Raster is a width×height grid of noise values addressed by integer pixel.
type Raster struct {
	Width  int
	Height int
	values []float64 // column-major: x*Height + y
}

// NewRaster evaluates a fractal stack of kernel over every pixel.
// Each octave doubles the frequency and scales amplitude by persistence; the
// sum is normalised by 2 - 1/2^(octaves-1).
func NewRaster(width, height int, kernel Sampler, l Layer) *Raster {
	r := &Raster{Width: width, Height: height, values: make([]float64, width*height)}
	octaves := l.Octaves
	if octaves < 1 {
		octaves = 1
	}
	norm := 2 - 1/math.Pow(2, float64(octaves-1))

	freqs := make([]float64, octaves)
	amps := make([]float64, octaves)
	for o := 0; o < octaves; o++ {
		freqs[o] = l.Frequency * math.Pow(2, float64(o))
		amps[o] = l.Amplitude * math.Pow(l.Persistence, float64(o))
	}

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			v := 0.0
			for o := 0; o < octaves; o++ {
				v += kernel.Eval2(float64(x)*freqs[o], float64(y)*freqs[o]) * amps[o]
			}
			r.values[x*height+y] = v / norm
		}
	}
	return r
}

// At returns the value at pixel (x, y), clamping both coordinates into the raster.
func (r *Raster) At(x, y int) float64 {
	x = clamp(x, 0, r.Width-1)
	y = clamp(y, 0, r.Height-1)
	return r.values[x*r.Height+y]
}

// Sample returns the value at the pixel containing p.
func (r *Raster) Sample(p mesh.Point) float64 {
	return r.At(pixel(p.X), pixel(p.Y))
}

// pixel floors a coordinate, mapping NaN and infinities to pixel 0 or the far edge.
func pixel(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v < math.MinInt32:
		return math.MinInt32
	case v > math.MaxInt32:
		return math.MaxInt32
	}
	return int(math.Floor(v))
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
