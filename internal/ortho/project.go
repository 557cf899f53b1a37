package ortho

// Fixed axis mappings from a 3D cell to the three 2D view grids.
//
//	top:   index z·R + x           depth y
//	front: index (R−1−y)·R + x     depth z
//	side:  index (R−1−y)·R + (R−1−z), depth x
//
// The side view is mirrored in its first coordinate relative to front; that
// is the convention of a first-angle three-view drawing and is relied on by
// the reconstruction direction and by the wedge footprint flip in the mesh
// builder.
func topIndex(r, x, _, z int) int   { return z*r + x }
func frontIndex(r, x, y, _ int) int { return (r-1-y)*r + x }
func sideIndex(r, _, y, z int) int  { return (r-1-y)*r + (r - 1 - z) }

// Project computes the three orthographic projections of cells at resolution
// r. Only the silhouette matters here: wedge cells fill their view cells the
// same as cubes. Cells outside [0,r) on any axis are silently skipped.
//
// The result depends only on the set of in-bounds cells, not on input order,
// and projecting twice yields identical views.
func Project(cells []Cell, r int) Views {
	views := NewViews(r)

	// Depth metric per filled view cell: the maximum source coordinate on
	// the view's depth axis. −1 marks an empty view cell.
	topDepth := newDepth(r)
	frontDepth := newDepth(r)
	sideDepth := newDepth(r)

	for _, c := range cells {
		if !c.InBounds(r) {
			continue
		}
		fill(&views.Top, topDepth, topIndex(r, c.X, c.Y, c.Z), c.Y)
		fill(&views.Front, frontDepth, frontIndex(r, c.X, c.Y, c.Z), c.Z)
		fill(&views.Side, sideDepth, sideIndex(r, c.X, c.Y, c.Z), c.X)
	}

	markEdges(&views.Top, topDepth)
	markEdges(&views.Front, frontDepth)
	markEdges(&views.Side, sideDepth)
	return views
}

func newDepth(r int) []int {
	d := make([]int, r*r)
	for i := range d {
		d[i] = -1
	}
	return d
}

func fill(v *View, depth []int, idx, d int) {
	v.Cells[idx] = ViewFull
	if d > depth[idx] {
		depth[idx] = d
	}
}

// markEdges sets an edge flag between every pair of adjacent filled cells
// whose recorded depth metrics differ. A drawn edge signals a depth step in
// the solid, not an outline.
func markEdges(v *View, depth []int) {
	r := v.R
	for row := 0; row < r; row++ {
		for col := 0; col < r-1; col++ {
			a := v.CellIndex(row, col)
			b := v.CellIndex(row, col+1)
			if v.Cells[a] != 0 && v.Cells[b] != 0 && depth[a] != depth[b] {
				v.V[v.VIndex(row, col)] = 1
			}
		}
	}
	for row := 0; row < r-1; row++ {
		for col := 0; col < r; col++ {
			a := v.CellIndex(row, col)
			b := v.CellIndex(row+1, col)
			if v.Cells[a] != 0 && v.Cells[b] != 0 && depth[a] != depth[b] {
				v.H[v.HIndex(row, col)] = 1
			}
		}
	}
}
