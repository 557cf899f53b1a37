package mesh

import "orthoview.app/internal/ortho"

// Build synthesizes the renderable surface for a cell set at resolution r.
// Each cell is generated in its own unit-cell-centered frame, scaled by unit
// and translated so the full R×R×R grid is centered at the world origin.
// Returns nil when the cell set is empty.
//
// Unrecognized cell kinds fall back to a full cube; that is the documented
// fallback, not an error path.
func Build(cells []ortho.Cell, r int, unit float32, pal Palette) *Mesh {
	if len(cells) == 0 {
		return nil
	}
	m := &Mesh{}
	for _, c := range cells {
		center := cellCenter(c, r, unit)
		switch c.Kind {
		case ortho.SlopeFront:
			addWedge(m, center, unit, c.Slope, frontFrame, pal)
		case ortho.SlopeSide:
			addWedge(m, center, unit, c.Slope, sideFrame, pal)
		default:
			addCube(m, center, unit, pal)
		}
	}
	return m
}

func cellCenter(c ortho.Cell, r int, unit float32) vec3 {
	half := float32(r) / 2
	return vec3{
		(float32(c.X) + 0.5 - half) * unit,
		(float32(c.Y) + 0.5 - half) * unit,
		(float32(c.Z) + 0.5 - half) * unit,
	}
}

// addQuad emits two independent triangles (a,b,c) and (a,c,d) sharing one
// flat normal. Callers wind a→b→c→d counter-clockwise seen from outside.
func addQuad(m *Mesh, a, b, c, d, n vec3, col Color) {
	m.addTriangle(a, b, c, n, col)
	m.addTriangle(a, c, d, n, col)
}

func addCube(m *Mesh, center vec3, unit float32, pal Palette) {
	h := unit / 2
	p := func(x, y, z float32) vec3 {
		return center.add(vec3{x * h, y * h, z * h})
	}
	type face struct {
		a, b, c, d vec3
		n          vec3
	}
	faces := []face{
		{p(1, -1, -1), p(1, 1, -1), p(1, 1, 1), p(1, -1, 1), vec3{1, 0, 0}},
		{p(-1, -1, -1), p(-1, -1, 1), p(-1, 1, 1), p(-1, 1, -1), vec3{-1, 0, 0}},
		{p(-1, 1, -1), p(-1, 1, 1), p(1, 1, 1), p(1, 1, -1), vec3{0, 1, 0}},
		{p(-1, -1, -1), p(1, -1, -1), p(1, -1, 1), p(-1, -1, 1), vec3{0, -1, 0}},
		{p(-1, -1, 1), p(1, -1, 1), p(1, 1, 1), p(-1, 1, 1), vec3{0, 0, 1}},
		{p(-1, -1, -1), p(-1, 1, -1), p(1, 1, -1), p(1, -1, -1), vec3{0, 0, -1}},
	}
	for _, f := range faces {
		addQuad(m, f.a, f.b, f.c, f.d, f.n, pal.ColorFor(f.n))
	}
}

// footprint returns the wedge cross-section as a counter-clockwise 2D
// triangle in the local (u,v) plane, u and v in [-0.5,0.5]. The orientation
// names the corner carrying the right angle, in view screen space.
func footprint(o ortho.Orientation) [3][2]float32 {
	const h = 0.5
	switch o {
	case ortho.BR:
		return [3][2]float32{{-h, -h}, {h, -h}, {h, h}}
	case ortho.TR:
		return [3][2]float32{{h, -h}, {h, h}, {-h, h}}
	case ortho.TL:
		return [3][2]float32{{-h, -h}, {h, h}, {-h, h}}
	default: // BL, and any out-of-range orientation
		return [3][2]float32{{-h, -h}, {h, -h}, {-h, h}}
	}
}

// frame maps the wedge-local (u, v, w) triple — footprint u/v plus extrusion
// w — into the cell-local 3D frame. Both frames below are orientation
// preserving, so windings and normals carry over unchanged.
type frame func(u, v, w float32) vec3

// frontFrame: footprint lives in the x–y plane, extruded along z. The front
// view reads x directly, so no flip.
func frontFrame(u, v, w float32) vec3 { return vec3{u, v, w} }

// sideFrame: footprint lives in the z–y plane, extruded along x. The side
// view is mirrored in its first coordinate (screen x = R−1−z), hence u maps
// to −z; the extrusion sign keeps the frame right-handed.
func sideFrame(u, v, w float32) vec3 { return vec3{w, v, -u} }

// addWedge emits a right-triangular prism as 5 faces / 8 independent
// triangles: two triangular caps and three rectangular sides, one of them
// the 45° hypotenuse face.
func addWedge(m *Mesh, center vec3, unit float32, o ortho.Orientation, fr frame, pal Palette) {
	const h = float32(0.5)
	tri := footprint(o)

	place := func(u, v, w float32) vec3 {
		return center.add(fr(u, v, w).scale(unit))
	}
	normal := func(u, v, w float32) vec3 {
		return fr(u, v, w).norm()
	}

	// Caps.
	nTop := normal(0, 0, 1)
	addTriFace(m,
		place(tri[0][0], tri[0][1], h),
		place(tri[1][0], tri[1][1], h),
		place(tri[2][0], tri[2][1], h),
		nTop, pal)
	nBot := normal(0, 0, -1)
	addTriFace(m,
		place(tri[0][0], tri[0][1], -h),
		place(tri[2][0], tri[2][1], -h),
		place(tri[1][0], tri[1][1], -h),
		nBot, pal)

	// Sides: one rectangle per footprint edge, outward normal from the CCW
	// winding.
	for i := 0; i < 3; i++ {
		p0 := tri[i]
		p1 := tri[(i+1)%3]
		du := p1[0] - p0[0]
		dv := p1[1] - p0[1]
		n := normal(dv, -du, 0)
		addQuad(m,
			place(p0[0], p0[1], -h),
			place(p1[0], p1[1], -h),
			place(p1[0], p1[1], h),
			place(p0[0], p0[1], h),
			n, pal.ColorFor(n))
	}
}

func addTriFace(m *Mesh, a, b, c, n vec3, pal Palette) {
	m.addTriangle(a, b, c, n, pal.ColorFor(n))
}
