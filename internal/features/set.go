package features

import (
	"fmt"
	"log/slog"

	"github.com/talgya/mini-atlas/internal/entropy"
	"github.com/talgya/mini-atlas/internal/mesh"
	"github.com/talgya/mini-atlas/internal/noise"
)

// Set is everything the extractors produce for one map.
type Set struct {
	Classes []TriangleClass
	Coast   *Coastline
	Rivers  *RiverForest
	Ranges  []MountainRange
}

// Extract runs the three extractors over (m, f). Random draws are taken by
// mountain clustering first and river growth second.
func Extract(m *mesh.Mesh, f *noise.Field, width, height float64, src entropy.Source, opts RangeOptions) (*Set, error) {
	coast := ExtractCoasts(m, f)
	ranges := FindRanges(m, f, src, opts)

	rivers, err := BuildRivers(m, f, width, height, src)
	if err != nil {
		return nil, fmt.Errorf("extract features: %w", err)
	}
	rivers.SizeTree()

	slog.Debug("features extracted",
		"coast_triangles", len(coast.Nodes),
		"coast_loops", len(coast.Loops),
		"river_roots", len(rivers.Roots),
		"mountain_ranges", len(ranges),
	)

	return &Set{
		Classes: coast.Classes,
		Coast:   coast,
		Rivers:  rivers,
		Ranges:  ranges,
	}, nil
}

// Bounds returns the bounding box of every range, index-aligned with Ranges.
func (s *Set) Bounds() []Bounds {
	out := make([]Bounds, len(s.Ranges))
	for i, r := range s.Ranges {
		out[i] = r.Bounds
	}
	return out
}
