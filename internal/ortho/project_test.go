package ortho

import (
	"reflect"
	"testing"
)

func TestProject_SingleCell(t *testing.T) {
	views := Project([]Cell{{X: 0, Y: 0, Z: 0, Kind: Full}}, 2)

	wantFront := 1*2 + 0 // row R−1−y, col x
	for i, c := range views.Front.Cells {
		want := uint8(0)
		if i == wantFront {
			want = 1
		}
		if c != want {
			t.Fatalf("front cell %d: got %d want %d", i, c, want)
		}
	}
	if views.Top.Cells[0] != 1 {
		t.Fatalf("top cell 0: got %d want 1", views.Top.Cells[0])
	}
	if views.Side.Cells[1*2+1] != 1 {
		t.Fatalf("side cell 3: got %d want 1", views.Side.Cells[3])
	}

	for _, v := range []View{views.Top, views.Front, views.Side} {
		for i, f := range v.V {
			if f != 0 {
				t.Fatalf("unexpected v edge at %d", i)
			}
		}
		for i, f := range v.H {
			if f != 0 {
				t.Fatalf("unexpected h edge at %d", i)
			}
		}
	}
}

func TestProject_EqualDepthNoEdge(t *testing.T) {
	// 2×1×1 box: both front cells share depth z=0, so no edge between them.
	cells := []Cell{
		{X: 0, Y: 0, Z: 0, Kind: Full},
		{X: 1, Y: 0, Z: 0, Kind: Full},
	}
	views := Project(cells, 2)

	row := 2 - 1 - 0
	if views.Front.Cells[views.Front.CellIndex(row, 0)] != 1 ||
		views.Front.Cells[views.Front.CellIndex(row, 1)] != 1 {
		t.Fatalf("front row not filled: %v", views.Front.Cells)
	}
	if got := views.Front.V[views.Front.VIndex(row, 0)]; got != 0 {
		t.Fatalf("front v edge: got %d want 0", got)
	}
}

func TestProject_DepthStepMarksEdge(t *testing.T) {
	// Two cells side by side at different depths: front view must mark the
	// vertical edge between them.
	cells := []Cell{
		{X: 0, Y: 0, Z: 0, Kind: Full},
		{X: 1, Y: 0, Z: 1, Kind: Full},
	}
	views := Project(cells, 2)

	row := 2 - 1 - 0
	if got := views.Front.V[views.Front.VIndex(row, 0)]; got != 1 {
		t.Fatalf("front v edge: got %d want 1", got)
	}
	// Top view sees both cells at depth y=0: edges stay clear.
	for i, f := range views.Top.V {
		if f != 0 {
			t.Fatalf("top v edge at %d", i)
		}
	}
	for i, f := range views.Top.H {
		if f != 0 {
			t.Fatalf("top h edge at %d", i)
		}
	}
}

func TestProject_MaxDepthWins(t *testing.T) {
	// A column of two cells projects to one front cell whose depth metric is
	// the max z, and one top cell whose depth metric is the max y.
	cells := []Cell{
		{X: 0, Y: 0, Z: 0, Kind: Full},
		{X: 0, Y: 0, Z: 1, Kind: Full},
		{X: 1, Y: 0, Z: 1, Kind: Full},
	}
	views := Project(cells, 2)

	// Front cells (0,·) at row 1: left column max depth 1, right column depth
	// 1 — equal, no edge.
	row := 1
	if got := views.Front.V[views.Front.VIndex(row, 0)]; got != 0 {
		t.Fatalf("front v edge: got %d want 0", got)
	}
}

func TestProject_OutOfRangeExcluded(t *testing.T) {
	cells := []Cell{
		{X: 2, Y: 0, Z: 0, Kind: Full},  // x == R
		{X: 0, Y: -1, Z: 0, Kind: Full}, // negative
	}
	views := Project(cells, 2)
	for _, v := range []View{views.Top, views.Front, views.Side} {
		for i, c := range v.Cells {
			if c != 0 {
				t.Fatalf("cell %d filled by out-of-range input", i)
			}
		}
	}
}

func TestProject_Deterministic(t *testing.T) {
	cells := []Cell{
		{X: 0, Y: 0, Z: 0, Kind: Full},
		{X: 1, Y: 1, Z: 0, Kind: Full},
		{X: 1, Y: 0, Z: 1, Kind: Full},
	}
	a := Project(cells, 2)
	b := Project(cells, 2)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated projection differs")
	}

	// Order independence.
	rev := []Cell{cells[2], cells[1], cells[0]}
	c := Project(rev, 2)
	if !reflect.DeepEqual(a, c) {
		t.Fatalf("projection depends on input order")
	}
}

func TestProject_WedgeFillsLikeCube(t *testing.T) {
	cube := Project([]Cell{{X: 1, Y: 0, Z: 1, Kind: Full}}, 2)
	wedge := Project([]Cell{{X: 1, Y: 0, Z: 1, Kind: SlopeFront, Slope: TR}}, 2)
	if !reflect.DeepEqual(cube, wedge) {
		t.Fatalf("wedge silhouette differs from cube silhouette")
	}
}
