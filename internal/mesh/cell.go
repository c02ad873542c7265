package mesh

import (
	"fmt"
	"math"
	"sort"
)

// CellPolygon returns the Voronoi cell of site clipped to the canvas
// rectangle [0,Width]×[0,Height], as a counter-clockwise polygon.
//
// An interior cell is the ring of circumcenters of the triangles around the
// site, cut to the canvas. A hull cell is unbounded, so it is built from the
// canvas rectangle cut by the bisector of every Delaunay neighbour.
func (m *Mesh) CellPolygon(site int) []Point {
	if m.hull[site] {
		return m.clippedCell(site)
	}
	return clipRect(m.circumcenterRing(site), m.Width, m.Height)
}

// CellArea returns the area of the site's clipped cell.
func (m *Mesh) CellArea(site int) float64 {
	return math.Abs(polygonArea(m.CellPolygon(site)))
}

// CellCentroid returns the centroid of the site's clipped cell.
func (m *Mesh) CellCentroid(site int) Point {
	return polygonCentroid(m.CellPolygon(site), m.Points[site])
}

// Relax runs Lloyd relaxation: each pass moves every site to the centroid
// of its current cell and then rebuilds the triangulation. Sites are never
// added or removed.
func (m *Mesh) Relax(iterations int) error {
	if iterations < 0 {
		return fmt.Errorf("relax %d iterations: negative count", iterations)
	}
	for it := 0; it < iterations; it++ {
		moved := make([]Point, len(m.Points))
		for i := range m.Points {
			moved[i] = m.CellCentroid(i)
		}
		m.Points = moved
		if err := m.update(); err != nil {
			return fmt.Errorf("relax pass %d: %w", it, err)
		}
	}
	return nil
}

// circumcenterRing returns the circumcenters of the triangles around site
// ordered by angle about the site.
func (m *Mesh) circumcenterRing(site int) []Point {
	s := m.Points[site]
	type vertex struct {
		p Point
		a float64
	}
	ring := make([]vertex, 0, len(m.incident[site]))
	for _, t := range m.incident[site] {
		c := m.Circumcenters[t]
		ring = append(ring, vertex{p: c, a: math.Atan2(c.Y-s.Y, c.X-s.X)})
	}
	sort.Slice(ring, func(i, j int) bool { return ring[i].a < ring[j].a })

	out := make([]Point, len(ring))
	for i, v := range ring {
		out[i] = v.p
	}
	return out
}

// clippedCell cuts the canvas rectangle down to the points closer to site
// than to any Delaunay neighbour.
func (m *Mesh) clippedCell(site int) []Point {
	poly := []Point{
		{X: 0, Y: 0},
		{X: m.Width, Y: 0},
		{X: m.Width, Y: m.Height},
		{X: 0, Y: m.Height},
	}
	s := m.Points[site]
	for _, j := range m.adjacency[site] {
		poly = clipBisector(poly, s, m.Points[j])
		if len(poly) == 0 {
			break
		}
	}
	return poly
}

// clipRect cuts poly to the rectangle [0,w]×[0,h].
func clipRect(poly []Point, w, h float64) []Point {
	edges := []struct{ at, normal Point }{
		{Point{X: 0, Y: 0}, Point{X: -1, Y: 0}},
		{Point{X: w, Y: 0}, Point{X: 1, Y: 0}},
		{Point{X: 0, Y: 0}, Point{X: 0, Y: -1}},
		{Point{X: 0, Y: h}, Point{X: 0, Y: 1}},
	}
	for _, e := range edges {
		if len(poly) == 0 {
			break
		}
		poly = clipHalfPlane(poly, e.at, e.normal)
	}
	return poly
}

// clipBisector keeps the part of poly closer to s than to o.
func clipBisector(poly []Point, s, o Point) []Point {
	mid := Point{X: (o.X + s.X) / 2, Y: (o.Y + s.Y) / 2}
	return clipHalfPlane(poly, mid, Point{X: o.X - s.X, Y: o.Y - s.Y})
}

// clipHalfPlane keeps the part of poly on the side of the line through at
// that normal points away from (Sutherland-Hodgman against one edge).
func clipHalfPlane(poly []Point, at, normal Point) []Point {
	side := func(p Point) float64 {
		return (p.X-at.X)*normal.X + (p.Y-at.Y)*normal.Y
	}

	out := make([]Point, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	fp := side(prev)
	for _, cur := range poly {
		fc := side(cur)
		if fc <= 0 {
			if fp > 0 {
				out = append(out, lerp(prev, cur, fp/(fp-fc)))
			}
			out = append(out, cur)
		} else if fp <= 0 {
			out = append(out, lerp(prev, cur, fp/(fp-fc)))
		}
		prev, fp = cur, fc
	}
	return out
}

func lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// polygonArea is the signed shoelace area; positive when counter-clockwise.
func polygonArea(poly []Point) float64 {
	if len(poly) < 3 {
		return 0
	}
	area := 0.0
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		area += prev.X*cur.Y - cur.X*prev.Y
		prev = cur
	}
	return area / 2
}

// polygonCentroid returns the area centroid of poly, or fallback when the
// polygon has no area.
func polygonCentroid(poly []Point, fallback Point) Point {
	area := polygonArea(poly)
	if math.Abs(area) < 1e-12 {
		return fallback
	}
	var cx, cy float64
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		cross := prev.X*cur.Y - cur.X*prev.Y
		cx += (prev.X + cur.X) * cross
		cy += (prev.Y + cur.Y) * cross
		prev = cur
	}
	return Point{X: cx / (6 * area), Y: cy / (6 * area)}
}
