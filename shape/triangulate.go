package shape

// vec2 is a 2D point in glyph pixel space, y up.
type vec2 struct {
	X, Y float32
}

// contour is a closed ring of points; the closing edge is implicit.
type contour []vec2

// polygon is one outer ring with zero or more hole rings. After
// classifyContours the outer winds counter-clockwise and holes clockwise.
type polygon struct {
	outer contour
	holes []contour
}

const areaEpsilon = 1e-6

// signedArea is the shoelace area. Counter-clockwise rings are positive.
func (c contour) signedArea() float32 {
	var sum float32
	n := len(c)
	j := n - 1
	for i := 0; i < n; i++ {
		sum += c[j].X*c[i].Y - c[i].X*c[j].Y
		j = i
	}
	return sum / 2
}

func (c contour) reverse() {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}

// contains reports whether p lies inside the ring (even-odd rule).
func (c contour) contains(p vec2) bool {
	in := false
	n := len(c)
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := c[i], c[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				in = !in
			}
		}
		j = i
	}
	return in
}

// classifyContours groups raw rings into polygons. Rings contained by an
// even number of other rings are outers; odd-depth rings become holes of
// the innermost outer around them. Orientations are normalized in place.
func classifyContours(raw []contour) []polygon {
	rings := raw[:0:0]
	for _, c := range raw {
		if len(c) < 3 {
			continue
		}
		a := c.signedArea()
		if a > -areaEpsilon && a < areaEpsilon {
			continue
		}
		rings = append(rings, c)
	}
	if len(rings) == 0 {
		return nil
	}

	depth := make([]int, len(rings))
	for i, c := range rings {
		for j, o := range rings {
			if i == j {
				continue
			}
			if o.contains(c[0]) {
				depth[i]++
			}
		}
	}

	var polys []polygon
	outerOf := make(map[int]int, len(rings))
	for i, c := range rings {
		if depth[i]%2 != 0 {
			continue
		}
		if c.signedArea() < 0 {
			c.reverse()
		}
		outerOf[i] = len(polys)
		polys = append(polys, polygon{outer: c})
	}

	for i, c := range rings {
		if depth[i]%2 == 0 {
			continue
		}
		// Innermost containing outer: the one with the smallest area.
		best := -1
		var bestArea float32
		for j := range rings {
			pi, isOuter := outerOf[j]
			if !isOuter || !rings[j].contains(c[0]) {
				continue
			}
			a := rings[j].signedArea()
			if a < 0 {
				a = -a
			}
			if best < 0 || a < bestArea {
				best, bestArea = pi, a
			}
		}
		if best < 0 {
			continue
		}
		if c.signedArea() > 0 {
			c.reverse()
		}
		polys[best].holes = append(polys[best].holes, c)
	}
	return polys
}

// triangulate merges the polygon's holes into its outer ring and ear-clips
// the result. It returns the merged ring and counter-clockwise triangles as
// index triples into it.
func triangulate(p polygon) ([]vec2, [][3]int) {
	ring := mergeHoles(p)
	if len(ring) < 3 {
		return nil, nil
	}
	return ring, earClip(ring)
}

// mergeHoles splices every hole into the outer ring with a bridge edge,
// rightmost hole first.
func mergeHoles(p polygon) contour {
	ring := append(contour(nil), p.outer...)
	if len(p.holes) == 0 {
		return ring
	}

	holes := append([]contour(nil), p.holes...)
	maxX := func(c contour) (int, float32) {
		mi, mx := 0, c[0].X
		for i, q := range c {
			if q.X > mx {
				mi, mx = i, q.X
			}
		}
		return mi, mx
	}
	for i := 0; i < len(holes); i++ {
		for j := i + 1; j < len(holes); j++ {
			_, xi := maxX(holes[i])
			_, xj := maxX(holes[j])
			if xj > xi {
				holes[i], holes[j] = holes[j], holes[i]
			}
		}
	}

	for _, h := range holes {
		mi, _ := maxX(h)
		ring = spliceHole(ring, h, mi)
	}
	return ring
}

// spliceHole connects hole[mi] to a visible outer vertex and rebuilds the
// ring walking outer → bridge → hole → bridge → outer.
func spliceHole(ring, hole contour, mi int) contour {
	m := hole[mi]

	// Cast a ray toward +x and find the nearest crossed ring edge.
	bestX := float32(0)
	bestEdge := -1
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		if (a.Y > m.Y) == (b.Y > m.Y) {
			continue
		}
		x := a.X + (m.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
		if x < m.X {
			continue
		}
		if bestEdge < 0 || x < bestX {
			bestEdge, bestX = i, x
		}
	}
	if bestEdge < 0 {
		// Hole not enclosed by the ring; drop it.
		return ring
	}

	// Bridge to the crossed edge endpoint on the far side of the ray, unless
	// a reflex ring vertex sits inside the candidate triangle; then bridge to
	// the one closest in angle to the ray.
	a := ring[bestEdge]
	b := ring[(bestEdge+1)%n]
	pi := bestEdge
	if b.X > a.X {
		pi = (bestEdge + 1) % n
	}
	ip := vec2{X: bestX, Y: m.Y}
	for i := 0; i < n; i++ {
		q := ring[i]
		if i == pi || !inTriangleAnyWinding(m, ip, ring[pi], q) {
			continue
		}
		dx := q.X - m.X
		if dx <= 0 {
			continue
		}
		tq := abs32(q.Y-m.Y) / dx
		dp := ring[pi].X - m.X
		tp := float32(0)
		if dp > 0 {
			tp = abs32(ring[pi].Y-m.Y) / dp
		}
		if tq < tp || (tq == tp && q.X < ring[pi].X) {
			pi = i
		}
	}

	out := make(contour, 0, len(ring)+len(hole)+2)
	out = append(out, ring[:pi+1]...)
	for i := 0; i <= len(hole); i++ {
		out = append(out, hole[(mi+i)%len(hole)])
	}
	out = append(out, ring[pi:]...)
	return out
}

// earClip triangulates a simple counter-clockwise ring. Bridge duplicates
// from mergeHoles are tolerated; on fully degenerate input it still makes
// progress by clipping the most convex corner.
func earClip(ring contour) [][3]int {
	n := len(ring)
	if n < 3 {
		return nil
	}
	prev := make([]int, n)
	next := make([]int, n)
	for i := 0; i < n; i++ {
		prev[i] = (i + n - 1) % n
		next[i] = (i + 1) % n
	}

	tris := make([][3]int, 0, n-2)
	remaining := n
	i := 0
	stuck := 0
	for remaining > 3 {
		p, c, nx := prev[i], i, next[i]
		if isEar(ring, prev, next, c) {
			tris = append(tris, [3]int{p, c, nx})
			next[p] = nx
			prev[nx] = p
			remaining--
			i = p
			stuck = 0
			continue
		}
		i = nx
		stuck++
		if stuck <= remaining {
			continue
		}
		// No ear found; force progress at the most convex corner.
		c = mostConvex(ring, prev, next, i, remaining)
		p, nx = prev[c], next[c]
		tris = append(tris, [3]int{p, c, nx})
		next[p] = nx
		prev[nx] = p
		remaining--
		i = p
		stuck = 0
	}
	tris = append(tris, [3]int{prev[i], i, next[i]})
	return tris
}

func isEar(ring contour, prev, next []int, c int) bool {
	p, nx := prev[c], next[c]
	if cross2(ring[p], ring[c], ring[nx]) <= areaEpsilon {
		return false
	}
	for i := next[nx]; i != p; i = next[i] {
		if strictlyInTriangle(ring[p], ring[c], ring[nx], ring[i]) {
			return false
		}
	}
	return true
}

func mostConvex(ring contour, prev, next []int, start, remaining int) int {
	best := start
	bestCross := cross2(ring[prev[start]], ring[start], ring[next[start]])
	i := next[start]
	for k := 1; k < remaining; k++ {
		cr := cross2(ring[prev[i]], ring[i], ring[next[i]])
		if cr > bestCross {
			best, bestCross = i, cr
		}
		i = next[i]
	}
	return best
}

// cross2 is the z component of (b-a) x (c-b).
func cross2(a, b, c vec2) float32 {
	return (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
}

func strictlyInTriangle(a, b, c, p vec2) bool {
	d0 := cross2(a, b, p)
	d1 := cross2(b, c, p)
	d2 := cross2(c, a, p)
	return d0 > areaEpsilon && d1 > areaEpsilon && d2 > areaEpsilon
}

// inTriangleAnyWinding accepts the triangle in either orientation.
func inTriangleAnyWinding(a, b, c, p vec2) bool {
	d0 := cross2(a, b, p)
	d1 := cross2(b, c, p)
	d2 := cross2(c, a, p)
	if d0 > areaEpsilon && d1 > areaEpsilon && d2 > areaEpsilon {
		return true
	}
	return d0 < -areaEpsilon && d1 < -areaEpsilon && d2 < -areaEpsilon
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
