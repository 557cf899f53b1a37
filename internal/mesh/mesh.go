package mesh

import "math"

// Mesh is a flat-shaded triangle soup ready for a render host. All arrays
// are flat with 9 float32 per triangle: vertex positions, per-vertex normals
// and per-vertex colors. There is deliberately no index array and no vertex
// sharing: deduplicating vertices would average normals across touching
// faces and destroy the flat per-face coloring the six-color scheme needs.
type Mesh struct {
	Positions []float32 `json:"positions"`
	Normals   []float32 `json:"normals"`
	Colors    []float32 `json:"colors"`
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Positions) / 9
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Positions) == 0
}

type vec3 struct{ x, y, z float32 }

func (a vec3) add(b vec3) vec3      { return vec3{a.x + b.x, a.y + b.y, a.z + b.z} }
func (a vec3) scale(s float32) vec3 { return vec3{a.x * s, a.y * s, a.z * s} }

func (a vec3) dot(b vec3) float32 {
	return a.x*b.x + a.y*b.y + a.z*b.z
}

func (a vec3) cross(b vec3) vec3 {
	return vec3{
		a.y*b.z - a.z*b.y,
		a.z*b.x - a.x*b.z,
		a.x*b.y - a.y*b.x,
	}
}

func (a vec3) norm() vec3 {
	d := a.dot(a)
	if d == 0 {
		return a
	}
	inv := 1 / float32(math.Sqrt(float64(d)))
	return a.scale(inv)
}

// addTriangle appends one triangle with a single flat normal and color.
func (m *Mesh) addTriangle(a, b, c, n vec3, col Color) {
	m.Positions = append(m.Positions,
		a.x, a.y, a.z,
		b.x, b.y, b.z,
		c.x, c.y, c.z,
	)
	for i := 0; i < 3; i++ {
		m.Normals = append(m.Normals, n.x, n.y, n.z)
		m.Colors = append(m.Colors, col[0], col[1], col[2])
	}
}
