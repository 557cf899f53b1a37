package ortho

import "testing"

func TestView_Sizes(t *testing.T) {
	v := NewView(4)
	if len(v.Cells) != 16 || len(v.V) != 12 || len(v.H) != 12 {
		t.Fatalf("sizes: cells=%d v=%d h=%d", len(v.Cells), len(v.V), len(v.H))
	}
}

func TestView_EditsAreCopyOnWrite(t *testing.T) {
	v0 := NewView(2)
	v1 := v0.SetCell(1, 0, 1)
	if v0.Cells[v0.CellIndex(1, 0)] != 0 {
		t.Fatalf("SetCell mutated the original snapshot")
	}
	if v1.Cells[v1.CellIndex(1, 0)] != 1 {
		t.Fatalf("SetCell did not apply")
	}

	v2 := v1.ToggleV(0, 0)
	if v1.V[0] != 0 || v2.V[0] != 1 {
		t.Fatalf("ToggleV: old=%d new=%d", v1.V[0], v2.V[0])
	}
	if v3 := v2.ToggleV(0, 0); v3.V[0] != 0 {
		t.Fatalf("ToggleV did not round-trip")
	}

	h1 := v0.ToggleH(0, 1)
	if v0.H[v0.HIndex(0, 1)] != 0 || h1.H[h1.HIndex(0, 1)] != 1 {
		t.Fatalf("ToggleH copy-on-write broken")
	}
}

func TestView_CycleBlock(t *testing.T) {
	v := NewView(2)
	v = v.CycleBlock(0, 0)
	if v.Cells[0] != 1 {
		t.Fatalf("empty should cycle to full, got %d", v.Cells[0])
	}
	v = v.CycleBlock(0, 0)
	if v.Cells[0] != 0 {
		t.Fatalf("full should cycle to empty, got %d", v.Cells[0])
	}
	// The block tool clears slopes too.
	v = v.SetCell(0, 0, 4).CycleBlock(0, 0)
	if v.Cells[0] != 0 {
		t.Fatalf("slope should cycle to empty, got %d", v.Cells[0])
	}
}

func TestView_CycleSlope(t *testing.T) {
	v := NewView(2)
	want := []uint8{2, 3, 4, 5, 2}
	for i, w := range want {
		v = v.CycleSlope(0, 0)
		if v.Cells[0] != w {
			t.Fatalf("cycle %d: got %d want %d", i, v.Cells[0], w)
		}
	}
	// A full square enters the cycle at BL.
	v = NewView(2).SetCell(0, 0, 1).CycleSlope(0, 0)
	if v.Cells[0] != 2 {
		t.Fatalf("full→slope: got %d want 2", v.Cells[0])
	}
}

func TestView_Equality(t *testing.T) {
	a := NewView(2).SetCell(0, 1, 1)
	b := NewView(2).SetCell(0, 1, 1)
	if !a.Equal(b) {
		t.Fatalf("identical views not equal")
	}
	if a.Equal(b.ToggleV(0, 0)) {
		t.Fatalf("edge flag ignored by Equal")
	}
	if a.Equal(NewView(3)) {
		t.Fatalf("resolution mismatch not detected")
	}

	// Silhouette comparison treats slope codes as filled.
	c := NewView(2).SetCell(0, 1, 4)
	if !a.SilhouetteEqual(c) {
		t.Fatalf("slope cell should silhouette-match a full cell")
	}
	if a.Equal(c) {
		t.Fatalf("Equal must stay exact")
	}
}

func TestCell_CodeRoundTrip(t *testing.T) {
	cases := []struct {
		cell Cell
		code int
	}{
		{Cell{Kind: Full}, 1},
		{Cell{Kind: SlopeFront, Slope: BL}, 12},
		{Cell{Kind: SlopeFront, Slope: TL}, 15},
		{Cell{Kind: SlopeSide, Slope: BR}, 23},
		{Cell{Kind: SlopeSide, Slope: TR}, 24},
	}
	for _, tc := range cases {
		if got := tc.cell.Code(); got != tc.code {
			t.Fatalf("Code(%v): got %d want %d", tc.cell, got, tc.code)
		}
		back := CellFromCode(0, 0, 0, tc.code)
		if back.Kind != tc.cell.Kind || back.Slope != tc.cell.Slope {
			t.Fatalf("CellFromCode(%d): got %v", tc.code, back)
		}
	}
	// Unknown codes collapse to a full cube.
	if c := CellFromCode(0, 0, 0, 99); c.Kind != Full {
		t.Fatalf("unknown code: got kind %d want Full", c.Kind)
	}
}
