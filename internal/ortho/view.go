package ortho

import "fmt"

// View cell codes: 0 empty, 1 full square, 2..5 triangular half squares
// (same values as Orientation).
const (
	ViewEmpty = 0
	ViewFull  = 1
)

// View is one 2D projection grid plus its two edge-flag arrays.
//
// Cells is row-major R×R. V holds one flag per horizontal adjacency inside a
// row (R rows × R−1 gaps); H holds one flag per vertical adjacency inside a
// column (R−1 gaps × R columns). A set flag marks a depth discontinuity
// between two filled neighbours.
//
// Views are value snapshots: every edit op returns a new View and leaves the
// receiver untouched.
type View struct {
	R     int
	Cells []uint8
	V     []uint8
	H     []uint8
}

// NewView returns an empty view at resolution r.
// r must be positive; array sizing is fixed by r and never revalidated later.
func NewView(r int) View {
	if r <= 0 {
		panic(fmt.Sprintf("ortho: bad view resolution %d", r))
	}
	return View{
		R:     r,
		Cells: make([]uint8, r*r),
		V:     make([]uint8, r*(r-1)),
		H:     make([]uint8, (r-1)*r),
	}
}

// CellIndex maps (row, col) to the Cells index.
func (v View) CellIndex(row, col int) int { return row*v.R + col }

// VIndex maps the gap between (row,col) and (row,col+1) to the V index.
func (v View) VIndex(row, col int) int { return row*(v.R-1) + col }

// HIndex maps the gap between (row,col) and (row+1,col) to the H index.
func (v View) HIndex(row, col int) int { return row*v.R + col }

func (v View) clone() View {
	out := View{R: v.R}
	out.Cells = append([]uint8(nil), v.Cells...)
	out.V = append([]uint8(nil), v.V...)
	out.H = append([]uint8(nil), v.H...)
	return out
}

// SetCell returns a copy of v with the cell at (row, col) set to code.
func (v View) SetCell(row, col int, code uint8) View {
	out := v.clone()
	out.Cells[out.CellIndex(row, col)] = code
	return out
}

// CycleBlock returns a copy of v with the cell toggled between empty and
// full, the behaviour of the block tool.
func (v View) CycleBlock(row, col int) View {
	out := v.clone()
	i := out.CellIndex(row, col)
	if out.Cells[i] == ViewEmpty {
		out.Cells[i] = ViewFull
	} else {
		out.Cells[i] = ViewEmpty
	}
	return out
}

// CycleSlope returns a copy of v with the cell advanced through the slope
// orientations 2→3→4→5→2. A cell that is not currently a slope starts at 2.
func (v View) CycleSlope(row, col int) View {
	out := v.clone()
	i := out.CellIndex(row, col)
	c := out.Cells[i]
	if c < uint8(BL) || c >= uint8(TL) {
		out.Cells[i] = uint8(BL)
	} else {
		out.Cells[i] = c + 1
	}
	return out
}

// ToggleV returns a copy of v with the vertical-edge flag between (row,col)
// and (row,col+1) flipped.
func (v View) ToggleV(row, col int) View {
	out := v.clone()
	i := out.VIndex(row, col)
	out.V[i] ^= 1
	return out
}

// ToggleH returns a copy of v with the horizontal-edge flag between (row,col)
// and (row+1,col) flipped.
func (v View) ToggleH(row, col int) View {
	out := v.clone()
	i := out.HIndex(row, col)
	out.H[i] ^= 1
	return out
}

// Equal reports exact structural equality of cells and both edge arrays.
func (v View) Equal(o View) bool {
	if v.R != o.R {
		return false
	}
	return bytesEqual(v.Cells, o.Cells) && bytesEqual(v.V, o.V) && bytesEqual(v.H, o.H)
}

// SilhouetteEqual compares v against o with cells reduced to filled/empty,
// edges compared exactly. This is the analysis-mode check: the user draws
// plain squares while the projection may carry slope codes.
func (v View) SilhouetteEqual(o View) bool {
	if v.R != o.R {
		return false
	}
	for i := range v.Cells {
		if (v.Cells[i] != 0) != (o.Cells[i] != 0) {
			return false
		}
	}
	return bytesEqual(v.V, o.V) && bytesEqual(v.H, o.H)
}

func bytesEqual(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Views bundles the three canonical projections at a shared resolution.
type Views struct {
	Top   View
	Front View
	Side  View
}

// NewViews returns three empty views at resolution r.
func NewViews(r int) Views {
	return Views{Top: NewView(r), Front: NewView(r), Side: NewView(r)}
}
