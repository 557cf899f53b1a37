package mesh

import (
	"math"
	"sort"
)

// Wireframe derives the geometric-edge overlay from a triangle soup: every
// edge whose adjacent faces' normals diverge by more than angleDeg is kept.
// The result is a flat line-segment list, 6 float32 per segment, sharing the
// mesh's transform. Segment order is deterministic.
//
// The soup has no shared vertices, so edges are matched by quantizing
// endpoints; coincident edges from touching cells merge into one candidate
// with all their face normals attached.
func Wireframe(m *Mesh, angleDeg float64) []float32 {
	if m.IsEmpty() {
		return nil
	}
	minDot := float32(math.Cos(angleDeg * math.Pi / 180))

	type edge struct {
		a, b    qpoint
		normals []vec3
	}
	edges := map[[2]qpoint]*edge{}

	tris := m.TriangleCount()
	for t := 0; t < tris; t++ {
		n := vec3{m.Normals[t*9], m.Normals[t*9+1], m.Normals[t*9+2]}
		var pts [3]qpoint
		for v := 0; v < 3; v++ {
			o := t*9 + v*3
			pts[v] = quantize(m.Positions[o], m.Positions[o+1], m.Positions[o+2])
		}
		for v := 0; v < 3; v++ {
			a, b := pts[v], pts[(v+1)%3]
			if b.less(a) {
				a, b = b, a
			}
			k := [2]qpoint{a, b}
			e := edges[k]
			if e == nil {
				e = &edge{a: a, b: b}
				edges[k] = e
			}
			e.normals = append(e.normals, n)
		}
	}

	keys := make([][2]qpoint, 0, len(edges))
	for k, e := range edges {
		if keepEdge(e.normals, minDot) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0].less(keys[j][0])
		}
		return keys[i][1].less(keys[j][1])
	})

	out := make([]float32, 0, len(keys)*6)
	for _, k := range keys {
		ax, ay, az := k[0].coords()
		bx, by, bz := k[1].coords()
		out = append(out, ax, ay, az, bx, by, bz)
	}
	return out
}

func keepEdge(normals []vec3, minDot float32) bool {
	for i := 0; i < len(normals); i++ {
		for j := i + 1; j < len(normals); j++ {
			if normals[i].dot(normals[j]) < minDot {
				return true
			}
		}
	}
	return false
}

// qpoint is a position snapped to a 1/1024 lattice so coincident vertices
// from independent triangles compare equal.
type qpoint struct{ x, y, z int32 }

const quantScale = 1024

func quantize(x, y, z float32) qpoint {
	return qpoint{
		int32(math.Round(float64(x) * quantScale)),
		int32(math.Round(float64(y) * quantScale)),
		int32(math.Round(float64(z) * quantScale)),
	}
}

func (p qpoint) less(o qpoint) bool {
	if p.x != o.x {
		return p.x < o.x
	}
	if p.y != o.y {
		return p.y < o.y
	}
	return p.z < o.z
}

func (p qpoint) coords() (float32, float32, float32) {
	return float32(p.x) / quantScale, float32(p.y) / quantScale, float32(p.z) / quantScale
}
