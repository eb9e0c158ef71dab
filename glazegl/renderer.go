package glazegl

import (
	"image"
	"image/color"
	"sort"

	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderMode selects the rasterization mode.
type RenderMode uint8

const (
	RenderSolid RenderMode = iota
	RenderWireframe
)

// maxBatchTriangles bounds one DrawTriangles call so vertex indices fit
// in uint16.
const maxBatchTriangles = 21845

// maxBatchVertices leaves room for one more wireframe triangle (three edge
// quads, 12 vertices) before the uint16 index space runs out.
const maxBatchVertices = 65524

// nearEpsilon is the clip-space w cutoff. Triangles with a vertex at or
// behind the eye plane are dropped whole.
const nearEpsilon = 1e-4

// whiteImage backs flat-shaded triangles. Rendering samples the center
// pixel of a 3x3 image so filtering never bleeds past the edge.
var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Renderer transforms scene meshes on the CPU and hands rasterization to
// (*ebiten.Image).DrawTriangles.
//
// Visible triangles are depth sorted back to front across all meshes
// (painter's algorithm); closed meshes additionally rely on backface
// culling. Create the renderer once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	ClearColor Color

	// WireWidth is the wireframe stroke width in pixels.
	WireWidth float32

	verts []ebiten.Vertex
	index []uint16
	proj  []projVertex
	tris  []triRef
	topts ebiten.DrawTrianglesOptions
}

// projVertex is a mesh vertex after the view transform.
type projVertex struct {
	sx, sy     float32 // screen position
	vz         float32 // view-space depth; negative in front of the camera
	nx, ny, nz float32 // view-space unit normal
	ok         bool    // false when clipped at the eye plane
}

// triRef is one visible triangle awaiting the depth sort.
type triRef struct {
	i0, i1, i2 int32
	depth      float32
	src        *ebiten.Image
	r, g, b, a float32
}

// NewRenderer creates a renderer with solid shading and a black clear color.
func NewRenderer() *Renderer {
	return &Renderer{
		Mode:       RenderSolid,
		ClearColor: RGB(0, 0, 0),
		WireWidth:  1,
	}
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

// Render renders a scene into dst.
func (r *Renderer) Render(dst *ebiten.Image, s *Scene) {
	if r == nil || dst == nil || s == nil {
		return
	}
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	dst.Fill(r.ClearColor.NRGBA())

	aspect := Scalar(float32(w) / float32(h))
	view := s.Camera.View()
	proj := s.Camera.Projection(aspect)
	lightDir := Normalize(Mat4MulDir(view, s.Light.Dir))

	r.proj = r.proj[:0]
	r.tris = r.tris[:0]

	s.eachMesh(func(m *Mesh) {
		if m == nil || !m.Enabled {
			return
		}
		r.collectMesh(w, h, proj, view, m, s.Light, lightDir)
	})

	sort.Slice(r.tris, func(i, j int) bool {
		return r.tris[i].depth < r.tris[j].depth
	})

	if r.Mode == RenderWireframe {
		r.submitWire(dst)
		return
	}
	r.submitSolid(dst)
}

func (r *Renderer) collectMesh(w, h int, proj, view Mat4, m *Mesh, light Light, lightDir Vec3) {
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	model := m.Transform
	if model == (Mat4{}) {
		model = Mat4Identity()
	}
	mv := Mat4Mul(view, model)

	base := len(r.proj)
	for i := range m.Vertices {
		v := &m.Vertices[i]
		p := Mat4MulV4(mv, Vec4{X: v.Pos.X, Y: v.Pos.Y, Z: v.Pos.Z, W: 1})
		clip := Mat4MulV4(proj, p)

		pv := projVertex{vz: p.Z}
		if clip.W > nearEpsilon {
			invW := 1 / clip.W
			pv.sx = (clip.X*invW*0.5 + 0.5) * float32(w)
			pv.sy = (1 - (clip.Y*invW*0.5 + 0.5)) * float32(h)
			pv.ok = true
		}
		n := Normalize(Mat4MulDir(mv, v.Normal))
		pv.nx, pv.ny, pv.nz = n.X, n.Y, n.Z
		r.proj = append(r.proj, pv)
	}

	matcap := m.Material.Matcap
	alpha := float32(m.Material.Opacity) / 255

	for i := 0; i+2 < len(m.Indices); i += 3 {
		j0 := int(m.Indices[i+0])
		j1 := int(m.Indices[i+1])
		j2 := int(m.Indices[i+2])
		if j0 >= len(m.Vertices) || j1 >= len(m.Vertices) || j2 >= len(m.Vertices) {
			continue
		}
		p0 := &r.proj[base+j0]
		p1 := &r.proj[base+j1]
		p2 := &r.proj[base+j2]
		if !p0.ok || !p1.ok || !p2.ok {
			continue
		}
		// Counter-clockwise front faces project to negative screen area.
		if screenArea(p0, p1, p2) >= 0 {
			continue
		}

		t := triRef{
			i0:    int32(base + j0),
			i1:    int32(base + j1),
			i2:    int32(base + j2),
			depth: (p0.vz + p1.vz + p2.vz) * (1.0 / 3.0),
			a:     alpha,
		}
		c := m.Material.BaseColor
		if matcap != nil {
			t.src = matcap
		} else {
			t.src = whiteSubImage
			if light.Mode == LightAmbientDirectional {
				n := Normalize(V3(
					p0.nx+p1.nx+p2.nx,
					p0.ny+p1.ny+p2.ny,
					p0.nz+p1.nz+p2.nz,
				))
				c = c.MulScalar(lightIntensity(light, lightDir, n))
			}
		}
		t.r = float32(c.R) / 255
		t.g = float32(c.G) / 255
		t.b = float32(c.B) / 255
		r.tris = append(r.tris, t)
	}
}

// screenArea is the signed parallelogram area of a projected triangle.
// Screen y grows downward, so front faces come out negative.
func screenArea(p0, p1, p2 *projVertex) float32 {
	return (p1.sx-p0.sx)*(p2.sy-p0.sy) - (p1.sy-p0.sy)*(p2.sx-p0.sx)
}

func lightIntensity(l Light, dir Vec3, n Vec3) Scalar {
	amb := Clamp01(l.Ambient)
	da := Clamp01(l.DirAmount)
	if dir == (Vec3{}) {
		return amb
	}
	d := Dot(n, dir.Mul(-1))
	if d < 0 {
		d = 0
	}
	return Clamp01(amb + d*da)
}

func (r *Renderer) submitSolid(dst *ebiten.Image) {
	r.verts = r.verts[:0]
	r.index = r.index[:0]
	var cur *ebiten.Image

	for ti := range r.tris {
		t := &r.tris[ti]
		if t.src != cur || len(r.index) >= maxBatchTriangles*3 {
			r.flush(dst, cur)
			cur = t.src
		}
		sb := t.src.Bounds()
		minX := float32(sb.Min.X) + 0.5
		minY := float32(sb.Min.Y) + 0.5
		spanX := float32(sb.Dx() - 1)
		spanY := float32(sb.Dy() - 1)

		vbase := uint16(len(r.verts))
		for _, pi := range [3]int32{t.i0, t.i1, t.i2} {
			p := &r.proj[pi]
			r.verts = append(r.verts, ebiten.Vertex{
				DstX:   p.sx,
				DstY:   p.sy,
				SrcX:   minX + clamp01f(p.nx*0.5+0.5)*spanX,
				SrcY:   minY + clamp01f(0.5-p.ny*0.5)*spanY,
				ColorR: t.r,
				ColorG: t.g,
				ColorB: t.b,
				ColorA: t.a,
			})
		}
		r.index = append(r.index, vbase, vbase+1, vbase+2)
	}
	r.flush(dst, cur)
}

func (r *Renderer) submitWire(dst *ebiten.Image) {
	r.verts = r.verts[:0]
	r.index = r.index[:0]

	half := r.WireWidth / 2
	if half <= 0 {
		half = 0.5
	}
	for ti := range r.tris {
		t := &r.tris[ti]
		if len(r.verts)+12 > maxBatchVertices {
			r.flush(dst, whiteSubImage)
		}
		r.appendEdge(t.i0, t.i1, half, t)
		r.appendEdge(t.i1, t.i2, half, t)
		r.appendEdge(t.i2, t.i0, half, t)
	}
	r.flush(dst, whiteSubImage)
}

// appendEdge expands a screen-space edge into a thin quad.
func (r *Renderer) appendEdge(a, b int32, half float32, t *triRef) {
	p0 := &r.proj[a]
	p1 := &r.proj[b]
	dx := p1.sx - p0.sx
	dy := p1.sy - p0.sy
	l := math32.Sqrt(dx*dx + dy*dy)
	if l == 0 {
		return
	}
	nx := -dy / l * half
	ny := dx / l * half

	sb := whiteSubImage.Bounds()
	sx := float32(sb.Min.X) + 0.5
	sy := float32(sb.Min.Y) + 0.5

	vbase := uint16(len(r.verts))
	for _, q := range [4][2]float32{
		{p0.sx + nx, p0.sy + ny},
		{p0.sx - nx, p0.sy - ny},
		{p1.sx + nx, p1.sy + ny},
		{p1.sx - nx, p1.sy - ny},
	} {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   q[0],
			DstY:   q[1],
			SrcX:   sx,
			SrcY:   sy,
			ColorR: t.r,
			ColorG: t.g,
			ColorB: t.b,
			ColorA: t.a,
		})
	}
	r.index = append(r.index, vbase, vbase+1, vbase+2, vbase+1, vbase+3, vbase+2)
}

func (r *Renderer) flush(dst *ebiten.Image, src *ebiten.Image) {
	if len(r.index) == 0 || src == nil {
		r.verts = r.verts[:0]
		r.index = r.index[:0]
		return
	}
	dst.DrawTriangles(r.verts, r.index, src, &r.topts)
	r.verts = r.verts[:0]
	r.index = r.index[:0]
}

func clamp01f(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
