package world

import (
	"fmt"

	"github.com/talgya/mini-atlas/internal/features"
	"github.com/talgya/mini-atlas/internal/mesh"
	"github.com/talgya/mini-atlas/internal/noise"
)

// Atlas is one generated map: the mesh, its noise field and the extracted
// features. It is read-only once returned; regenerate to change it.
type Atlas struct {
	RunID  string
	Config GenConfig

	Mesh     *mesh.Mesh
	Noise    *noise.Field
	Features *features.Set
}

// ClassCounts returns a summary of triangle class distribution.
func (a *Atlas) ClassCounts() map[features.TriangleClass]int {
	counts := make(map[features.TriangleClass]int)
	for _, c := range a.Features.Classes {
		counts[c]++
	}
	return counts
}

// LandSites returns the number of sites above water.
func (a *Atlas) LandSites() int {
	n := 0
	for i := range a.Noise.SiteElevation {
		if a.Noise.IsLand(i) {
			n++
		}
	}
	return n
}

// LargestRiver returns the size of the biggest river root, 0 without rivers.
func (a *Atlas) LargestRiver() int {
	best := 0
	for _, r := range a.Features.Rivers.Roots {
		best = max(best, a.Features.Rivers.Nodes[r].Size)
	}
	return best
}

// String returns a summary of the atlas.
func (a *Atlas) String() string {
	return fmt.Sprintf("Atlas(%dx%d, seed=%d, sites=%d, coast_loops=%d, rivers=%d, ranges=%d)",
		a.Config.Width, a.Config.Height, a.Config.Seed, a.Mesh.NumSites(),
		len(a.Features.Coast.Loops), len(a.Features.Rivers.Roots), len(a.Features.Ranges))
}
