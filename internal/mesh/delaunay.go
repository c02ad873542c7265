package mesh

import (
	"fmt"

	"github.com/fogleman/delaunay"
)

// Triangulate computes the Delaunay triangulation of points and returns it
// in half-edge form: three site indices per triangle and, for every
// half-edge, its opposite or -1 on the convex hull.
// The output depends only on the input points and their order.
func Triangulate(points []Point) (triangles, halfedges []int, err error) {
	n := len(points)
	if n < 3 {
		return nil, nil, fmt.Errorf("triangulate %d points: %w", n, ErrTooFewPoints)
	}

	pts := make([]delaunay.Point, n)
	for i, p := range points {
		pts[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	tr, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, nil, fmt.Errorf("triangulate %d points: %w: %v", n, ErrDegenerate, err)
	}
	if len(tr.Triangles) == 0 {
		return nil, nil, fmt.Errorf("triangulate %d points: %w", n, ErrDegenerate)
	}
	return tr.Triangles, tr.Halfedges, nil
}
