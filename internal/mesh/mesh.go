// Package mesh builds the planar cell mesh a map is painted on: blue-noise
// sites, their Delaunay triangulation in half-edge form, per-triangle
// circumcenters, and the clipped Voronoi cells around each site.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/talgya/mini-atlas/internal/entropy"
)

var (
	// ErrInvalidExtent is returned for a non-positive canvas size.
	ErrInvalidExtent = errors.New("mesh: width and height must be positive")
	// ErrInvalidSpacing is returned when the disk spacing cannot fit the canvas.
	ErrInvalidSpacing = errors.New("mesh: spacing must be positive and smaller than the canvas")
	// ErrTooFewPoints is returned when fewer than 3 sites are available.
	ErrTooFewPoints = errors.New("mesh: at least 3 points are required")
	// ErrDegenerate is returned when the sites admit no triangle (all collinear).
	ErrDegenerate = errors.New("mesh: points are collinear")
)

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Mesh is a triangulated set of sites covering a width×height canvas.
//
// Triangle t owns half-edges 3t, 3t+1 and 3t+2; half-edge e starts at site
// Triangles[e] and ends at Triangles[NextHalfedge(e)]. Halfedges[e] is the
// opposite half-edge in the neighbouring triangle, or -1 on the outer hull.
type Mesh struct {
	Width  float64
	Height float64

	Points        []Point
	Triangles     []int
	Halfedges     []int
	Circumcenters []Point

	adjacency [][]int
	incident  [][]int
	hull      []bool
}

// New triangulates the given points. The slice is copied.
func New(width, height float64, points []Point) (*Mesh, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidExtent
	}
	if len(points) < 3 {
		return nil, fmt.Errorf("new mesh with %d points: %w", len(points), ErrTooFewPoints)
	}
	m := &Mesh{
		Width:  width,
		Height: height,
		Points: append([]Point(nil), points...),
	}
	if err := m.update(); err != nil {
		return nil, err
	}
	return m, nil
}

// Build samples Poisson-disk sites no closer than minSpacing and triangulates them.
// Every random draw comes from src, so the same stream yields the same mesh.
func Build(width, height, minSpacing float64, src entropy.Source) (*Mesh, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidExtent
	}
	if minSpacing <= 0 || minSpacing >= math.Min(width, height) {
		return nil, fmt.Errorf("spacing %.3f on %.0fx%.0f: %w", minSpacing, width, height, ErrInvalidSpacing)
	}
	points := SamplePoisson(width, height, minSpacing, src)
	return New(width, height, points)
}

// update rebuilds every derived structure from Points.
func (m *Mesh) update() error {
	triangles, halfedges, err := Triangulate(m.Points)
	if err != nil {
		return err
	}
	m.Triangles = triangles
	m.Halfedges = halfedges

	m.Circumcenters = make([]Point, len(triangles)/3)
	for t := range m.Circumcenters {
		a := m.Points[triangles[3*t]]
		b := m.Points[triangles[3*t+1]]
		c := m.Points[triangles[3*t+2]]
		m.Circumcenters[t] = circumcenter(a, b, c)
	}

	m.adjacency = make([][]int, len(m.Points))
	m.incident = make([][]int, len(m.Points))
	m.hull = make([]bool, len(m.Points))
	for e, from := range triangles {
		to := triangles[NextHalfedge(e)]
		m.adjacency[from] = append(m.adjacency[from], to)
		m.incident[from] = append(m.incident[from], TriangleOf(e))
		if halfedges[e] == -1 {
			// Hull edges exist in one direction only.
			m.adjacency[to] = append(m.adjacency[to], from)
			m.hull[from] = true
			m.hull[to] = true
		}
	}
	return nil
}

// NumSites returns the number of cells.
func (m *Mesh) NumSites() int { return len(m.Points) }

// NumTriangles returns the number of Delaunay triangles.
func (m *Mesh) NumTriangles() int { return len(m.Triangles) / 3 }

// NextHalfedge returns the half-edge following e inside its triangle.
func NextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

// PrevHalfedge returns the half-edge preceding e inside its triangle.
func PrevHalfedge(e int) int {
	if e%3 == 0 {
		return e + 2
	}
	return e - 1
}

// TriangleOf returns the triangle owning half-edge e.
func TriangleOf(e int) int { return e / 3 }

// TriangleSites returns the three site indices of triangle t.
func (m *Mesh) TriangleSites(t int) [3]int {
	return [3]int{m.Triangles[3*t], m.Triangles[3*t+1], m.Triangles[3*t+2]}
}

// TriangleNeighbors returns the triangles across edges 0, 1 and 2 of t,
// with -1 where the edge lies on the hull.
func (m *Mesh) TriangleNeighbors(t int) [3]int {
	var out [3]int
	for k := 0; k < 3; k++ {
		h := m.Halfedges[3*t+k]
		if h == -1 {
			out[k] = -1
			continue
		}
		out[k] = TriangleOf(h)
	}
	return out
}

// Neighbors returns the sites sharing a Delaunay edge with site,
// in half-edge order. The returned slice must not be modified.
func (m *Mesh) Neighbors(site int) []int {
	return m.adjacency[site]
}

// OnHull reports whether the site lies on the triangulation's outer boundary.
func (m *Mesh) OnHull(site int) bool {
	return m.hull[site]
}

// String returns a summary of the mesh.
func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh(%.0fx%.0f, sites=%d, triangles=%d)", m.Width, m.Height, m.NumSites(), m.NumTriangles())
}

// circumcenter returns the circumcenter of (a, b, c), or the centroid when
// the triangle is degenerate.
func circumcenter(a, b, c Point) Point {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	const eps = 1e-12
	if math.Abs(d) < eps {
		return Point{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return Point{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}
}
