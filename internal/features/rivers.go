package features

import (
	"errors"
	"fmt"

	"github.com/talgya/mini-atlas/internal/entropy"
	"github.com/talgya/mini-atlas/internal/mesh"
	"github.com/talgya/mini-atlas/internal/noise"
)

// ErrNoBoundaryTriangles is returned when no circumcenter lies outside the
// canvas, so no river could ever reach the map edge.
var ErrNoBoundaryTriangles = errors.New("features: no boundary triangles to root rivers at")

// RiverState tracks a triangle through river growth.
type RiverState uint8

const (
	RiverUnvisited RiverState = iota
	RiverQueued
	RiverResolved
)

// RiverNode is one triangle in the river forest. Water flows from a node to
// its Parent, towards the root on the canvas edge.
type RiverNode struct {
	Triangle int
	Left     int // child node, -1 if free
	Right    int // child node, -1 if free
	Parent   int // -1 at a root
	Size     int
	State    RiverState
}

func (n *RiverNode) hasFreeSlot() bool {
	return n.Left == -1 || n.Right == -1
}

func (n *RiverNode) attach(child int) {
	if n.Left == -1 {
		n.Left = child
	} else {
		n.Right = child
	}
}

// RiverForest is the set of river trees over all triangles.
// Node i describes triangle i.
type RiverForest struct {
	Nodes []RiverNode
	Roots []int
}

// BuildRivers grows a random forest of flow paths inward from the triangles
// whose circumcenters fall outside [0,width]×[0,height].
//
// Triangles are evicted from the work queue uniformly at random. Each one
// attaches to its lowest resolved neighbour that still has a free child
// slot; a boundary triangle with no such neighbour becomes a root, anything
// else is queued again. Sizes are left at zero; call SizeTree.
func BuildRivers(m *mesh.Mesh, f *noise.Field, width, height float64, src entropy.Source) (*RiverForest, error) {
	n := m.NumTriangles()
	rf := &RiverForest{Nodes: make([]RiverNode, n)}

	edge := make([]bool, n)
	queue := make([]int, 0, n)
	for t := 0; t < n; t++ {
		rf.Nodes[t] = RiverNode{Triangle: t, Left: -1, Right: -1, Parent: -1}
		c := m.Circumcenters[t]
		edge[t] = c.X <= 0 || c.X >= width || c.Y <= 0 || c.Y >= height
	}
	for t := n - 1; t >= 0; t-- {
		if edge[t] {
			rf.Nodes[t].State = RiverQueued
			queue = append(queue, t)
		}
	}
	if len(queue) == 0 {
		return nil, fmt.Errorf("build rivers over %d triangles: %w", n, ErrNoBoundaryTriangles)
	}

	stalled := 0
	for len(queue) > 0 {
		pick := entropy.Intn(src, len(queue))
		t := queue[pick]
		queue[pick] = queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		node := &rf.Nodes[t]
		if node.State == RiverResolved {
			continue
		}

		parent := -1
		lowest := 0.0
		pending := false
		for _, nb := range m.TriangleNeighbors(t) {
			if nb == -1 {
				continue
			}
			other := &rf.Nodes[nb]
			if other.State == RiverUnvisited {
				other.State = RiverQueued
				queue = append(queue, nb)
			}
			if other.State != RiverResolved {
				pending = true
				continue
			}
			if !other.hasFreeSlot() {
				continue
			}
			if e := f.TriangleElevation[nb]; parent == -1 || e < lowest {
				parent = nb
				lowest = e
			}
		}

		switch {
		case parent != -1:
			node.State = RiverResolved
			node.Parent = parent
			rf.Nodes[parent].attach(t)
			stalled = 0
		case edge[t] || !pending || stalled > 4*len(queue)+3:
			// Edge triangles start their own river. So does a triangle no
			// neighbour can ever take, rather than waiting forever.
			node.State = RiverResolved
			rf.Roots = append(rf.Roots, t)
			stalled = 0
		default:
			queue = append(queue, t)
			stalled++
		}
	}

	return rf, nil
}

// SizeTree assigns every node its size bottom-up: the larger child size when
// the children differ, otherwise the shared size plus one. Two equal
// tributaries therefore widen the river; a leaf has size 1.
func (rf *RiverForest) SizeTree() {
	order := make([]int, 0, len(rf.Nodes))
	stack := make([]int, 0, 64)
	for _, root := range rf.Roots {
		stack = append(stack, root)
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			order = append(order, id)
			if l := rf.Nodes[id].Left; l != -1 {
				stack = append(stack, l)
			}
			if r := rf.Nodes[id].Right; r != -1 {
				stack = append(stack, r)
			}
		}
	}

	// Children always come after their parent in order.
	for i := len(order) - 1; i >= 0; i-- {
		node := &rf.Nodes[order[i]]
		left, right := 0, 0
		if node.Left != -1 {
			left = rf.Nodes[node.Left].Size
		}
		if node.Right != -1 {
			right = rf.Nodes[node.Right].Size
		}
		if left == right {
			node.Size = left + 1
		} else {
			node.Size = max(left, right)
		}
	}
}

// Depth returns the number of edges between node id and its root.
func (rf *RiverForest) Depth(id int) int {
	d := 0
	for p := rf.Nodes[id].Parent; p != -1; p = rf.Nodes[p].Parent {
		d++
	}
	return d
}
