package ortho

// Reconstruct intersects the three silhouettes into the maximal consistent
// solid (the visual hull). Every grid position whose three projected view
// cells are all non-empty is emitted; nothing else is. The hull may contain
// phantom cells — positions consistent with all three views that no single
// intended solid contains. That is accepted behaviour: pruning phantoms is
// an interactive affordance layered on top, never done here.
//
// Type resolution per emitted cell, in strict priority order:
//  1. front view cell holds a slope code → SlopeFront with that orientation;
//  2. else side view cell holds a slope code → SlopeSide with it;
//  3. else a full cube.
//
// Front beats side by convention, not geometry; the tie-break is load-bearing
// for progress-code compatibility and must not be reordered.
//
// Cells are emitted with x fastest, then y, then z, so the output is
// deterministic and directly comparable across calls.
func Reconstruct(front, top, side View, r int) []Cell {
	var out []Cell
	for z := 0; z < r; z++ {
		for y := 0; y < r; y++ {
			for x := 0; x < r; x++ {
				f := front.Cells[frontIndex(r, x, y, z)]
				t := top.Cells[topIndex(r, x, y, z)]
				s := side.Cells[sideIndex(r, x, y, z)]
				if f == 0 || t == 0 || s == 0 {
					continue
				}
				c := Cell{X: x, Y: y, Z: z, Kind: Full}
				switch {
				case f >= uint8(BL) && f <= uint8(TL):
					c.Kind = SlopeFront
					c.Slope = Orientation(f)
				case s >= uint8(BL) && s <= uint8(TL):
					c.Kind = SlopeSide
					c.Slope = Orientation(s)
				}
				out = append(out, c)
			}
		}
	}
	return out
}
