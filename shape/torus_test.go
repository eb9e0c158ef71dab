package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"glaze/glazegl"
)

func TestTorusCounts(t *testing.T) {
	m := Torus(0.6, 0.25, 24, 12)
	assert.Len(t, m.Vertices, 24*12)
	assert.Len(t, m.Indices, 24*12*6)
}

func TestTorusMinimumSegments(t *testing.T) {
	m := Torus(1, 0.3, 0, 0)
	assert.Len(t, m.Vertices, 3*3)
	assert.Len(t, m.Indices, 3*3*6)
}

func TestTorusNormalsUnit(t *testing.T) {
	m := Torus(0.6, 0.25, 16, 8)
	for i, v := range m.Vertices {
		l := glazegl.Len(v.Normal)
		assert.InDelta(t, 1.0, float64(l), 1e-4, "vertex %d", i)
	}
}

func TestTorusWindingMatchesNormals(t *testing.T) {
	m := Torus(0.6, 0.25, 16, 8)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		v0 := m.Vertices[m.Indices[i+0]]
		v1 := m.Vertices[m.Indices[i+1]]
		v2 := m.Vertices[m.Indices[i+2]]
		face := glazegl.Cross(v1.Pos.Sub(v0.Pos), v2.Pos.Sub(v0.Pos))
		avg := v0.Normal.Add(v1.Normal).Add(v2.Normal)
		assert.Greater(t, float64(glazegl.Dot(face, avg)), 0.0,
			"triangle %d winds against its normals", i/3)
	}
}

func TestTorusBounds(t *testing.T) {
	const major, minor = 0.6, 0.25
	m := Torus(major, minor, 32, 16)
	var maxY, maxR float32
	for _, v := range m.Vertices {
		if y := abs32(v.Pos.Y); y > maxY {
			maxY = y
		}
		r := v.Pos.X*v.Pos.X + v.Pos.Z*v.Pos.Z
		if r > maxR {
			maxR = r
		}
	}
	assert.InDelta(t, minor, float64(maxY), 1e-3)
	outer := float64(major + minor)
	assert.InDelta(t, outer*outer, float64(maxR), 1e-2)
}
