package ortho

// Orientation picks one of the four half-square triangle footprints by the
// corner holding the right angle. The numeric values are the legacy view-cell
// codes and must not change: they appear in progress codes and on the wire.
type Orientation uint8

const (
	BL Orientation = 2 // bottom-left
	BR Orientation = 3 // bottom-right
	TR Orientation = 4 // top-right
	TL Orientation = 5 // top-left
)

// ValidOrientation reports whether o is one of the four slope codes.
func ValidOrientation(o Orientation) bool {
	return o >= BL && o <= TL
}

// Kind is the cell shape variant. Full is a unit cube; SlopeFront and
// SlopeSide are right-triangular prisms whose footprint orientation comes
// from the front respectively side view.
type Kind uint8

const (
	Full Kind = iota
	SlopeFront
	SlopeSide
)

// Cell is one unit of the solid, at integer grid coordinates in [0,R).
// Slope is meaningful only when Kind != Full.
type Cell struct {
	X, Y, Z int
	Kind    Kind
	Slope   Orientation
}

// Legacy numeric cell-type codes: 1 full cube, 10+k front-slope wedge,
// 20+k side-slope wedge with k in 2..5.
const (
	codeFull      = 1
	codeSlopeFron = 10
	codeSlopeSide = 20
)

// Code returns the legacy numeric type code for the cell.
func (c Cell) Code() int {
	switch c.Kind {
	case SlopeFront:
		return codeSlopeFron + int(c.Slope)
	case SlopeSide:
		return codeSlopeSide + int(c.Slope)
	default:
		return codeFull
	}
}

// CellFromCode builds a cell at (x,y,z) from a legacy numeric type code.
// Unrecognized codes fall back to a full cube; that mirrors the renderer's
// fallback and keeps old progress codes loadable.
func CellFromCode(x, y, z, code int) Cell {
	c := Cell{X: x, Y: y, Z: z, Kind: Full}
	switch {
	case code >= codeSlopeFron+int(BL) && code <= codeSlopeFron+int(TL):
		c.Kind = SlopeFront
		c.Slope = Orientation(code - codeSlopeFron)
	case code >= codeSlopeSide+int(BL) && code <= codeSlopeSide+int(TL):
		c.Kind = SlopeSide
		c.Slope = Orientation(code - codeSlopeSide)
	}
	return c
}

// InBounds reports whether the cell lies inside the R-cube. Cells outside
// are not an error anywhere in the engine; they are silently excluded.
func (c Cell) InBounds(r int) bool {
	return c.X >= 0 && c.X < r &&
		c.Y >= 0 && c.Y < r &&
		c.Z >= 0 && c.Z < r
}
