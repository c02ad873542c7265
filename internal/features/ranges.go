package features

import (
	"math"

	"github.com/talgya/mini-atlas/internal/entropy"
	"github.com/talgya/mini-atlas/internal/mesh"
	"github.com/talgya/mini-atlas/internal/noise"
)

// Mountain clustering defaults.
const (
	MountainRangeCutoff   = 0.8
	RangeAcceptThreshold  = 0.8
	MinMountainRangeSites = 100
)

// RangeOptions tunes mountain clustering.
type RangeOptions struct {
	// Cutoff is the propensity a land site needs to seed or join a range outright.
	Cutoff float64
	// AcceptThreshold lets a land site under Cutoff join anyway when the next
	// random draw is >= the threshold. Zero accepts every land neighbour.
	AcceptThreshold float64
	// MinSites discards finished clusters smaller than this.
	MinSites int
}

// DefaultRangeOptions returns the tuned clustering parameters.
func DefaultRangeOptions() RangeOptions {
	return RangeOptions{
		Cutoff:          MountainRangeCutoff,
		AcceptThreshold: RangeAcceptThreshold,
		MinSites:        MinMountainRangeSites,
	}
}

// Bounds is an axis-aligned box over site coordinates.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func emptyBounds() Bounds {
	return Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

func (b *Bounds) extend(p mesh.Point) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// Width returns the horizontal extent, treating a zero extent as 1 so it
// can safely divide.
func (b Bounds) Width() float64 {
	if w := b.MaxX - b.MinX; w > 0 {
		return w
	}
	return 1
}

// Height returns the vertical extent, treating a zero extent as 1.
func (b Bounds) Height() float64 {
	if h := b.MaxY - b.MinY; h > 0 {
		return h
	}
	return 1
}

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p mesh.Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// MountainRange is a contiguous cluster of high-propensity land sites.
type MountainRange struct {
	Sites  []int
	Bounds Bounds
}

// FindRanges flood-fills clusters of mountainous land sites.
//
// Sites are scanned in index order; an unclaimed land site at or above the
// cutoff seeds a cluster that grows depth-first through mesh neighbours.
// A land neighbour joins when it is above the cutoff, or when a draw from
// src passes the accept threshold. Clusters under MinSites are dropped once
// grown; their sites stay claimed.
func FindRanges(m *mesh.Mesh, f *noise.Field, src entropy.Source, opts RangeOptions) []MountainRange {
	n := m.NumSites()
	claimed := make([]bool, n)

	type frame struct {
		site int
		next int // index into the site's neighbour list
	}

	var ranges []MountainRange
	for seed := 0; seed < n; seed++ {
		if claimed[seed] || !f.IsLand(seed) || f.SiteMountain[seed] < opts.Cutoff {
			continue
		}

		r := MountainRange{Bounds: emptyBounds()}
		visit := func(site int) {
			claimed[site] = true
			r.Sites = append(r.Sites, site)
			r.Bounds.extend(m.Points[site])
		}

		visit(seed)
		stack := []frame{{site: seed}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := m.Neighbors(top.site)
			if top.next >= len(neighbors) {
				stack = stack[:len(stack)-1]
				continue
			}
			nb := neighbors[top.next]
			top.next++

			if claimed[nb] || !f.IsLand(nb) {
				continue
			}
			// The coin is only tossed for sites under the cutoff.
			if f.SiteMountain[nb] < opts.Cutoff && src.Float64() < opts.AcceptThreshold {
				continue
			}
			visit(nb)
			stack = append(stack, frame{site: nb})
		}

		if len(r.Sites) < opts.MinSites {
			continue
		}
		ranges = append(ranges, r)
	}
	return ranges
}
