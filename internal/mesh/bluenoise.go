package mesh

import (
	"math"

	"github.com/talgya/mini-atlas/internal/entropy"
)

// maxSampleTries is the number of annulus candidates tried per active point.
const maxSampleTries = 30

// SamplePoisson generates Poisson-disk distributed points in [0,width)×[0,height)
// using Bridson's algorithm. No two points are closer than minDist.
func SamplePoisson(width, height, minDist float64, src entropy.Source) []Point {
	if minDist <= 0 || width <= 0 || height <= 0 {
		return nil
	}

	// r/sqrt(2) cells hold at most one point each.
	cellSize := minDist / math.Sqrt2
	gridW := int(math.Ceil(width / cellSize))
	gridH := int(math.Ceil(height / cellSize))

	grid := make([]int, gridW*gridH)
	for i := range grid {
		grid[i] = -1
	}

	points := make([]Point, 0, gridW*gridH/4+1)
	active := make([]int, 0, 128)

	toGrid := func(p Point) (int, int) {
		gx := int(p.X / cellSize)
		gy := int(p.Y / cellSize)
		if gx >= gridW {
			gx = gridW - 1
		}
		if gy >= gridH {
			gy = gridH - 1
		}
		return gx, gy
	}

	r2 := minDist * minDist
	isValid := func(p Point) bool {
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			return false
		}
		gx, gy := toGrid(p)
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				nx, ny := gx+dx, gy+dy
				if nx < 0 || nx >= gridW || ny < 0 || ny >= gridH {
					continue
				}
				idx := grid[ny*gridW+nx]
				if idx == -1 {
					continue
				}
				ddx := points[idx].X - p.X
				ddy := points[idx].Y - p.Y
				if ddx*ddx+ddy*ddy < r2 {
					return false
				}
			}
		}
		return true
	}

	insert := func(p Point) {
		idx := len(points)
		points = append(points, p)
		active = append(active, idx)
		gx, gy := toGrid(p)
		grid[gy*gridW+gx] = idx
	}

	insert(Point{X: src.Float64() * width, Y: src.Float64() * height})

	for len(active) > 0 {
		ai := entropy.Intn(src, len(active))
		p := points[active[ai]]

		found := false
		for k := 0; k < maxSampleTries; k++ {
			angle := src.Float64() * 2 * math.Pi
			dist := minDist + src.Float64()*minDist
			candidate := Point{
				X: p.X + dist*math.Cos(angle),
				Y: p.Y + dist*math.Sin(angle),
			}
			if isValid(candidate) {
				insert(candidate)
				found = true
				break
			}
		}

		if !found {
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}

	return points
}
