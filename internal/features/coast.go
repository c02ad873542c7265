// Package features extracts the structured geography a renderer paints:
// triangle classes and coastlines, river forests and mountain ranges.
package features

import (
	"github.com/talgya/mini-atlas/internal/mesh"
	"github.com/talgya/mini-atlas/internal/noise"
)

// TriangleClass is the land/water classification of a triangle.
type TriangleClass uint8

const (
	ClassLand  TriangleClass = iota // all three sites above water
	ClassWater                      // all three sites below water
	ClassCoast                      // mixed; a shoreline crosses it
)

// String returns a human-readable name for the class.
func (c TriangleClass) String() string {
	switch c {
	case ClassLand:
		return "Land"
	case ClassWater:
		return "Water"
	case ClassCoast:
		return "Coast"
	default:
		return "Unknown"
	}
}

// CoastNode is one coast triangle in the shoreline chains.
type CoastNode struct {
	Triangle int
	Next     int // node index, -1 when the chain ends here
	Prev     int // node index, -1 at a chain head

	// Neighbors lists the coast triangles across this triangle's
	// shoreline-crossing edges, in edge order.
	Neighbors []int
	// Boundary is set when a shoreline-crossing edge lies on the mesh hull.
	Boundary bool

	visited bool
}

// Loop is one traced shoreline, starting at node Head.
type Loop struct {
	Head     int
	Boundary bool // seeded from a hull crossing
	Closed   bool // the last node links back to Head
}

// Coastline holds triangle classes and the traced shoreline chains.
type Coastline struct {
	Classes []TriangleClass
	Nodes   []CoastNode
	Loops   []Loop

	nodeOf []int
}

// ExtractCoasts classifies every triangle from the land sign of its sites
// and links coast triangles into chains. Chains seeded at the hull are traced
// first so shorelines running off the canvas stay whole.
func ExtractCoasts(m *mesh.Mesh, f *noise.Field) *Coastline {
	n := m.NumTriangles()
	c := &Coastline{
		Classes: make([]TriangleClass, n),
		nodeOf:  make([]int, n),
	}

	var boundary []int
	for t := 0; t < n; t++ {
		sites := m.TriangleSites(t)
		land := [3]bool{f.IsLand(sites[0]), f.IsLand(sites[1]), f.IsLand(sites[2])}

		if land[0] == land[1] && land[0] == land[2] {
			c.nodeOf[t] = -1
			if land[0] {
				c.Classes[t] = ClassLand
			} else {
				c.Classes[t] = ClassWater
			}
			continue
		}

		node := CoastNode{Triangle: t, Next: -1, Prev: -1}
		// Edge k runs from site k to site k+1.
		for k := 0; k < 3; k++ {
			if land[k] == land[(k+1)%3] {
				continue
			}
			h := m.Halfedges[3*t+k]
			if h == -1 {
				node.Boundary = true
				continue
			}
			node.Neighbors = append(node.Neighbors, mesh.TriangleOf(h))
		}

		c.Classes[t] = ClassCoast
		c.nodeOf[t] = len(c.Nodes)
		if node.Boundary {
			boundary = append(boundary, len(c.Nodes))
		}
		c.Nodes = append(c.Nodes, node)
	}

	for _, id := range boundary {
		if c.Nodes[id].visited {
			continue
		}
		c.trace(id, true)
	}
	for id := range c.Nodes {
		if c.Nodes[id].visited {
			continue
		}
		c.trace(id, false)
	}
	return c
}

// trace grows a chain from head until it closes on itself or runs out of
// unvisited neighbours.
func (c *Coastline) trace(head int, boundary bool) {
	loop := Loop{Head: head, Boundary: boundary}
	c.Nodes[head].visited = true

	cur := head
	for {
		next := -1
		for _, t := range c.Nodes[cur].Neighbors {
			cand := c.nodeOf[t]
			if cand == -1 || c.Nodes[cand].Next == cur {
				continue
			}
			if !c.Nodes[cand].visited || (cand == head && cur != head) {
				next = cand
				break
			}
		}
		if next == -1 {
			break
		}

		c.Nodes[cur].Next = next
		c.Nodes[next].Prev = cur
		if next == head {
			loop.Closed = true
			break
		}
		c.Nodes[next].visited = true
		cur = next
	}

	c.Loops = append(c.Loops, loop)
}

// NodeOf returns the coast node of triangle t, or -1 if t is not coast.
func (c *Coastline) NodeOf(t int) int {
	return c.nodeOf[t]
}

// Walk returns the triangles of a loop in traversal order.
func (c *Coastline) Walk(l Loop) []int {
	var out []int
	for id := l.Head; id != -1; id = c.Nodes[id].Next {
		out = append(out, c.Nodes[id].Triangle)
		if c.Nodes[id].Next == l.Head {
			break
		}
	}
	return out
}

// Count returns the number of triangles of class k.
func (c *Coastline) Count(k TriangleClass) int {
	n := 0
	for _, cls := range c.Classes {
		if cls == k {
			n++
		}
	}
	return n
}
