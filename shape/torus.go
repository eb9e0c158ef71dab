package shape

import (
	"github.com/chewxy/math32"

	"glaze/glazegl"
)

// Torus builds an indexed torus mesh around the y axis, centered at the
// origin. major is the ring radius, minor the tube radius. Triangles wind
// counter-clockwise seen from outside; normals point outward.
func Torus(major, minor float32, segU, segV int) glazegl.Mesh {
	if segU < 3 {
		segU = 3
	}
	if segV < 3 {
		segV = 3
	}

	verts := make([]glazegl.Vertex, 0, segU*segV)
	indices := make([]uint16, 0, segU*segV*6)

	twoPi := 2 * math32.Pi
	for u := 0; u < segU; u++ {
		theta := twoPi * float32(u) / float32(segU)
		ct := math32.Cos(theta)
		st := math32.Sin(theta)
		for v := 0; v < segV; v++ {
			phi := twoPi * float32(v) / float32(segV)
			cp := math32.Cos(phi)
			sp := math32.Sin(phi)

			r := major + minor*cp
			verts = append(verts, glazegl.Vertex{
				Pos:    glazegl.V3(r*ct, minor*sp, r*st),
				Normal: glazegl.V3(cp*ct, sp, cp*st),
			})
		}
	}

	idx := func(u, v int) uint16 {
		uu := u % segU
		vv := v % segV
		return uint16(uu*segV + vv)
	}

	for u := 0; u < segU; u++ {
		for v := 0; v < segV; v++ {
			i0 := idx(u, v)
			i1 := idx(u+1, v)
			i2 := idx(u+1, v+1)
			i3 := idx(u, v+1)

			indices = append(indices, i0, i2, i1)
			indices = append(indices, i0, i3, i2)
		}
	}

	return glazegl.Mesh{
		Vertices: verts,
		Indices:  indices,
	}
}
