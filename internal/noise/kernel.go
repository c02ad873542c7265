package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Sampler is a seeded 2D coherent-noise function returning roughly [-1, 1].
type Sampler interface {
	Eval2(x, y float64) float64
}

// Kernel selects the coherent-noise function under every raster.
type Kernel uint8

const (
	KernelSimplex Kernel = iota // OpenSimplex, the default
	KernelPerlin                // classic Perlin
)

// String returns the kernel's config name.
func (k Kernel) String() string {
	switch k {
	case KernelSimplex:
		return "simplex"
	case KernelPerlin:
		return "perlin"
	default:
		return "unknown"
	}
}

// ParseKernel maps a config name to a Kernel. The empty string selects simplex.
func ParseKernel(name string) (Kernel, error) {
	switch name {
	case "", "simplex":
		return KernelSimplex, nil
	case "perlin":
		return KernelPerlin, nil
	}
	return 0, fmt.Errorf("unknown noise kernel %q", name)
}

// NewSampler creates a seeded sampler of the given kind.
func NewSampler(k Kernel, seed int64) Sampler {
	if k == KernelPerlin {
		// One octave: the raster stacks octaves itself.
		return perlinSampler{p: perlin.NewPerlin(2, 2, 1, seed)}
	}
	return opensimplex.New(seed)
}

// perlinOffset keeps unit-frequency lookups off the integer lattice, where
// Perlin noise is identically zero.
const perlinOffset = 0.381966

type perlinSampler struct {
	p *perlin.Perlin
}

func (s perlinSampler) Eval2(x, y float64) float64 {
	return s.p.Noise2D(x+perlinOffset, y+perlinOffset)
}
