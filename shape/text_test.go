package shape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"glaze/glazegl"
)

func textFont(t *testing.T) *sfnt.Font {
	t.Helper()
	f, err := sfnt.Parse(goregular.TTF)
	require.NoError(t, err)
	return f
}

func meshBounds(t *testing.T, m glazegl.Mesh) (min, max glazegl.Vec3) {
	t.Helper()
	require.NotEmpty(t, m.Vertices)
	min = m.Vertices[0].Pos
	max = min
	for _, v := range m.Vertices {
		p := v.Pos
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max
}

func TestTextBlankFallsBackToPlaceholder(t *testing.T) {
	f := textFont(t)
	o := TextOptions{Size: 1.6, Depth: 0.4}

	ref := Text(f, PlaceholderText, o)
	require.NotEmpty(t, ref.Vertices)
	require.NotEmpty(t, ref.Indices)

	for _, s := range []string{"", "   ", " \t "} {
		m := Text(f, s, o)
		assert.Len(t, m.Vertices, len(ref.Vertices), "input %q", s)
		assert.Len(t, m.Indices, len(ref.Indices), "input %q", s)
	}
}

func TestTextMeshWellFormed(t *testing.T) {
	f := textFont(t)
	m := Text(f, "glaze", TextOptions{Size: 1.6, Depth: 0.4})

	require.NotEmpty(t, m.Vertices)
	require.Zero(t, len(m.Indices)%3)
	for i, ix := range m.Indices {
		assert.Less(t, int(ix), len(m.Vertices), "index %d out of range", i)
	}
	for i, v := range m.Vertices {
		assert.InDelta(t, 1.0, float64(glazegl.Len(v.Normal)), 1e-3, "vertex %d", i)
	}
}

func TestTextCentered(t *testing.T) {
	f := textFont(t)
	min, max := meshBounds(t, Text(f, "glaze", TextOptions{Size: 1.6, Depth: 0.4}))

	assert.InDelta(t, 0, float64(min.X+max.X), 1e-3)
	assert.InDelta(t, 0, float64(min.Y+max.Y), 1e-3)
	assert.InDelta(t, 0, float64(min.Z+max.Z), 1e-3)
}

func TestTextDepthExtent(t *testing.T) {
	f := textFont(t)

	min, max := meshBounds(t, Text(f, "go", TextOptions{Size: 1.6, Depth: 0.4}))
	assert.InDelta(t, 0.4, float64(max.Z-min.Z), 1e-3)

	flat := Text(f, "go", TextOptions{Size: 1.6, Depth: 0})
	min, max = meshBounds(t, flat)
	assert.InDelta(t, 0, float64(max.Z-min.Z), 1e-4)
	for i, v := range flat.Vertices {
		assert.InDelta(t, 1.0, float64(abs32(v.Normal.Z)), 1e-3,
			"vertex %d should be a face vertex when depth is zero", i)
	}
}

// Front cap triangles wind counter-clockwise seen from +z, back caps the
// other way round, so culling keeps whichever side faces the camera.
func TestTextCapWinding(t *testing.T) {
	f := textFont(t)
	m := Text(f, "ab", TextOptions{Size: 1.6, Depth: 0.4})

	var frontArea, backArea float64
	for i := 0; i+2 < len(m.Indices); i += 3 {
		v0 := m.Vertices[m.Indices[i+0]]
		v1 := m.Vertices[m.Indices[i+1]]
		v2 := m.Vertices[m.Indices[i+2]]
		nz := v0.Normal.Z + v1.Normal.Z + v2.Normal.Z
		area := float64((v1.Pos.X-v0.Pos.X)*(v2.Pos.Y-v0.Pos.Y) -
			(v1.Pos.Y-v0.Pos.Y)*(v2.Pos.X-v0.Pos.X))
		switch {
		case nz > 2.7:
			assert.GreaterOrEqual(t, area, -1e-4, "front triangle %d", i/3)
			frontArea += area
		case nz < -2.7:
			assert.LessOrEqual(t, area, 1e-4, "back triangle %d", i/3)
			backArea += area
		}
	}
	assert.Greater(t, frontArea, 0.0)
	assert.InDelta(t, frontArea, -backArea, 1e-3)
}

func TestTextHoleGlyphHasWalls(t *testing.T) {
	f := textFont(t)
	m := Text(f, "o", TextOptions{Size: 1.6, Depth: 0.5})

	var faces, walls int
	for _, v := range m.Vertices {
		switch {
		case abs32(v.Normal.Z) > 0.99:
			faces++
		case abs32(v.Normal.Z) < 1e-3:
			walls++
		}
	}
	assert.Positive(t, faces)
	assert.Positive(t, walls)
	assert.Equal(t, len(m.Vertices), faces+walls, "every vertex is a cap or a wall")
}

func TestTextSizeScalesLinearly(t *testing.T) {
	f := textFont(t)

	min1, max1 := meshBounds(t, Text(f, "glaze", TextOptions{Size: 1.6, Depth: 0.4}))
	min2, max2 := meshBounds(t, Text(f, "glaze", TextOptions{Size: 3.2, Depth: 0.4}))

	assert.InEpsilon(t, 2*float64(max1.X-min1.X), float64(max2.X-min2.X), 1e-3)
	assert.InEpsilon(t, 2*float64(max1.Y-min1.Y), float64(max2.Y-min2.Y), 1e-3)
}

func TestTextSkipsUnmappedRunes(t *testing.T) {
	f := textFont(t)
	o := TextOptions{Size: 1.6, Depth: 0.4}

	ref := Text(f, "AB", o)
	m := Text(f, "A\uE000B", o)

	assert.Len(t, m.Vertices, len(ref.Vertices))
	assert.Len(t, m.Indices, len(ref.Indices))
}

func TestTextSpaceAdvances(t *testing.T) {
	f := textFont(t)
	o := TextOptions{Size: 1.6, Depth: 0.4}

	minTight, maxTight := meshBounds(t, Text(f, "ab", o))
	minSpaced, maxSpaced := meshBounds(t, Text(f, "a b", o))

	assert.Greater(t, float64(maxSpaced.X-minSpaced.X), float64(maxTight.X-minTight.X))
}

func TestTextVertexCap(t *testing.T) {
	f := textFont(t)
	m := Text(f, strings.Repeat(PlaceholderText, 200), TextOptions{Size: 1.6, Depth: 0.4})

	assert.NotEmpty(t, m.Vertices)
	assert.LessOrEqual(t, len(m.Vertices), maxTextVertices)
	for i, ix := range m.Indices {
		assert.Less(t, int(ix), len(m.Vertices), "index %d out of range", i)
	}
}

func TestTextNilFont(t *testing.T) {
	m := Text(nil, "glaze", TextOptions{Size: 1.6, Depth: 0.4})
	assert.Empty(t, m.Vertices)
	assert.Empty(t, m.Indices)
}
