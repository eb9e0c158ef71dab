// Package shape builds the procedural triangle meshes rendered by glaze:
// tori and extruded 3D text generated from font glyph outlines.
package shape

import (
	"strings"

	"github.com/chewxy/math32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"glaze/glazegl"
)

// PlaceholderText substitutes empty or blank text input.
const PlaceholderText = "glaze"

// glyphPPEM is the pixel size outlines are loaded at before scaling to
// world units.
const glyphPPEM = 64

// maxTextVertices caps mesh size so indices stay in uint16 range. Glyph
// parts past the cap are dropped.
const maxTextVertices = 60000

// TextOptions control procedural text meshes. The zero value produces a
// flat mesh one world unit tall.
type TextOptions struct {
	// Size is the em height in world units.
	Size float32
	// Depth is the extrusion depth in world units.
	Depth float32
	// CurveSteps is the number of line segments per quadratic bezier;
	// cubics use twice as many. Zero selects a default.
	CurveSteps int
}

// Text builds an extruded mesh for s, centered at the origin. Construction
// always succeeds: blank input falls back to PlaceholderText and runes the
// font cannot map are skipped.
func Text(f *sfnt.Font, s string, o TextOptions) glazegl.Mesh {
	if o.Size <= 0 {
		o.Size = 1
	}
	if o.Depth < 0 {
		o.Depth = 0
	}
	if o.CurveSteps <= 0 {
		o.CurveSteps = 8
	}
	if strings.TrimSpace(s) == "" {
		s = PlaceholderText
	}
	if f == nil {
		return glazegl.Mesh{}
	}

	var (
		buf sfnt.Buffer
		b   meshBuilder
	)
	ppem := fixed.I(glyphPPEM)
	scale := o.Size / glyphPPEM
	penX := float32(0)

	for _, r := range s {
		gi, err := f.GlyphIndex(&buf, r)
		if err != nil || gi == 0 {
			continue
		}
		segs, err := f.LoadGlyph(&buf, gi, ppem, nil)
		if err != nil {
			continue
		}
		for _, p := range classifyContours(flattenSegments(segs, o.CurveSteps)) {
			b.extrude(p, penX, scale, o.Depth)
		}
		if adv, err := f.GlyphAdvance(&buf, gi, ppem, font.HintingNone); err == nil {
			penX += float32(adv) / 64
		}
	}

	m := glazegl.Mesh{Vertices: b.verts, Indices: b.idx}
	centerMesh(&m)
	return m
}

// flattenSegments converts glyph outline segments into closed contours,
// sampling beziers at a fixed step count. sfnt reports y growing downward;
// contours come out y up.
func flattenSegments(segs sfnt.Segments, steps int) []contour {
	var out []contour
	var cur contour
	var pos vec2

	pt := func(p fixed.Point26_6) vec2 {
		return vec2{X: float32(p.X) / 64, Y: -float32(p.Y) / 64}
	}
	flush := func() {
		cur = trimContour(cur)
		if len(cur) >= 3 {
			out = append(out, cur)
		}
		cur = nil
	}

	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			pos = pt(seg.Args[0])
			cur = append(cur, pos)
		case sfnt.SegmentOpLineTo:
			pos = pt(seg.Args[0])
			cur = append(cur, pos)
		case sfnt.SegmentOpQuadTo:
			c := pt(seg.Args[0])
			e := pt(seg.Args[1])
			for i := 1; i <= steps; i++ {
				t := float32(i) / float32(steps)
				cur = append(cur, quadPoint(pos, c, e, t))
			}
			pos = e
		case sfnt.SegmentOpCubeTo:
			c1 := pt(seg.Args[0])
			c2 := pt(seg.Args[1])
			e := pt(seg.Args[2])
			n := steps * 2
			for i := 1; i <= n; i++ {
				t := float32(i) / float32(n)
				cur = append(cur, cubePoint(pos, c1, c2, e, t))
			}
			pos = e
		}
	}
	flush()
	return out
}

// trimContour drops consecutive duplicates and the closing point when it
// repeats the start.
func trimContour(c contour) contour {
	const eps = 1e-4
	same := func(a, b vec2) bool {
		return abs32(a.X-b.X) < eps && abs32(a.Y-b.Y) < eps
	}
	out := c[:0]
	for _, q := range c {
		if len(out) > 0 && same(out[len(out)-1], q) {
			continue
		}
		out = append(out, q)
	}
	for len(out) > 1 && same(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func quadPoint(p, c, e vec2, t float32) vec2 {
	u := 1 - t
	return vec2{
		X: u*u*p.X + 2*u*t*c.X + t*t*e.X,
		Y: u*u*p.Y + 2*u*t*c.Y + t*t*e.Y,
	}
}

func cubePoint(p, c1, c2, e vec2, t float32) vec2 {
	u := 1 - t
	return vec2{
		X: u*u*u*p.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*e.X,
		Y: u*u*u*p.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*e.Y,
	}
}

// meshBuilder accumulates extruded glyph geometry.
type meshBuilder struct {
	verts []glazegl.Vertex
	idx   []uint16
}

// extrude emits front and back faces for the triangulated polygon plus
// side walls along its source rings. penX offsets the glyph in pixel
// space; scale converts pixels to world units.
func (b *meshBuilder) extrude(p polygon, penX, scale, depth float32) {
	pts, tris := triangulate(p)
	if len(tris) == 0 {
		return
	}

	wallEdges := len(p.outer)
	for _, h := range p.holes {
		wallEdges += len(h)
	}
	needed := 2*len(pts) + 4*wallEdges
	if len(b.verts)+needed > maxTextVertices {
		return
	}

	half := depth / 2

	frontBase := uint16(len(b.verts))
	for _, q := range pts {
		b.verts = append(b.verts, glazegl.Vertex{
			Pos:    glazegl.V3((penX+q.X)*scale, q.Y*scale, half),
			Normal: glazegl.V3(0, 0, 1),
		})
	}
	backBase := uint16(len(b.verts))
	for _, q := range pts {
		b.verts = append(b.verts, glazegl.Vertex{
			Pos:    glazegl.V3((penX+q.X)*scale, q.Y*scale, -half),
			Normal: glazegl.V3(0, 0, -1),
		})
	}
	for _, t := range tris {
		b.idx = append(b.idx,
			frontBase+uint16(t[0]), frontBase+uint16(t[1]), frontBase+uint16(t[2]),
			backBase+uint16(t[0]), backBase+uint16(t[2]), backBase+uint16(t[1]),
		)
	}

	if half > 0 {
		b.walls(p.outer, penX, scale, half)
		for _, h := range p.holes {
			b.walls(h, penX, scale, half)
		}
	}
}

// walls emits one quad per ring edge. With outers counter-clockwise and
// holes clockwise, the (dy, -dx) edge normal always points out of the
// solid.
func (b *meshBuilder) walls(c contour, penX, scale, half float32) {
	n := len(c)
	for i := 0; i < n; i++ {
		p := c[i]
		q := c[(i+1)%n]
		dx := q.X - p.X
		dy := q.Y - p.Y
		l := math32.Sqrt(dx*dx + dy*dy)
		if l == 0 {
			continue
		}
		nx := dy / l
		ny := -dx / l

		vb := uint16(len(b.verts))
		for _, corner := range [4]struct {
			pt vec2
			z  float32
		}{
			{p, half},  // vb+0 front p
			{q, half},  // vb+1 front q
			{q, -half}, // vb+2 back q
			{p, -half}, // vb+3 back p
		} {
			b.verts = append(b.verts, glazegl.Vertex{
				Pos:    glazegl.V3((penX+corner.pt.X)*scale, corner.pt.Y*scale, corner.z),
				Normal: glazegl.V3(nx, ny, 0),
			})
		}
		b.idx = append(b.idx,
			vb+3, vb+2, vb+1,
			vb+3, vb+1, vb,
		)
	}
}

// centerMesh translates vertices so the bounding box midpoint sits at the
// origin.
func centerMesh(m *glazegl.Mesh) {
	if len(m.Vertices) == 0 {
		return
	}
	min := m.Vertices[0].Pos
	max := min
	for i := range m.Vertices {
		p := m.Vertices[i].Pos
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
	c := glazegl.V3((min.X+max.X)/2, (min.Y+max.Y)/2, (min.Z+max.Z)/2)
	for i := range m.Vertices {
		m.Vertices[i].Pos = m.Vertices[i].Pos.Sub(c)
	}
}
