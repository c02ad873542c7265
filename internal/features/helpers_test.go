package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-atlas/internal/entropy"
	"github.com/talgya/mini-atlas/internal/mesh"
	"github.com/talgya/mini-atlas/internal/noise"
)

// generatedMap builds a mesh and synthesized field the way the pipeline does.
func generatedMap(t *testing.T, seed int64) (*mesh.Mesh, *noise.Field, entropy.Source) {
	t.Helper()
	src := entropy.NewAlea(seed)
	m, err := mesh.Build(320, 240, 6, src)
	require.NoError(t, err)
	require.NoError(t, m.Relax(1))
	f, err := noise.Synthesize(noise.Options{Seed: seed}, src, 320, 240, m)
	require.NoError(t, err)
	return m, f, src
}

// shapedField builds a field whose signed elevation is elev(site position)
// and whose mountain propensity is mountain(site position).
func shapedField(m *mesh.Mesh, elev, mountain func(p mesh.Point) float64) *noise.Field {
	f := &noise.Field{
		SiteElevation:     make([]float64, m.NumSites()),
		SiteMountain:      make([]float64, m.NumSites()),
		TriangleElevation: make([]float64, m.NumTriangles()),
	}
	for i, p := range m.Points {
		f.SiteElevation[i] = elev(p)
		f.SiteMountain[i] = mountain(p)
	}
	for i, c := range m.Circumcenters {
		f.TriangleElevation[i] = elev(c)
	}
	return f
}

func island(cx, cy, radius float64) func(p mesh.Point) float64 {
	return func(p mesh.Point) float64 {
		return radius - math.Hypot(p.X-cx, p.Y-cy)
	}
}

func constant(v float64) func(p mesh.Point) float64 {
	return func(mesh.Point) float64 { return v }
}

func sampledMesh(t *testing.T, w, h, spacing float64, seed int64) *mesh.Mesh {
	t.Helper()
	m, err := mesh.Build(w, h, spacing, entropy.NewAlea(seed))
	require.NoError(t, err)
	return m
}
