// levelcheck lints a level catalog: it projects every level's ground truth,
// reconstructs the visual hull from those projections and reports whether the
// level is hull-tight. Levels with phantom cells are still playable — the
// deletion affordance exists for exactly that — but authors usually want to
// know.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"orthoview.app/internal/levels"
	"orthoview.app/internal/ortho"
)

func main() {
	var (
		dir     = flag.String("levels", "./configs/levels", "level catalog directory")
		verbose = flag.Bool("v", false, "list phantom cells per level")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[levelcheck] ", 0)

	catalog, err := levels.Load(*dir)
	if err != nil {
		logger.Fatalf("load: %v", err)
	}

	loose := 0
	for _, id := range catalog.Order {
		lv := catalog.ByID[id]
		solid := lv.Solid()
		views := ortho.Project(solid, lv.Resolution)
		hull := ortho.Reconstruct(views.Front, views.Top, views.Side, lv.Resolution)

		phantoms := phantomCells(solid, hull)
		dropped := droppedCells(solid, lv.Resolution)

		status := "tight"
		if len(phantoms) > 0 {
			status = fmt.Sprintf("%d phantom(s)", len(phantoms))
			loose++
		}
		fmt.Printf("%-16s R=%d cells=%d hull=%d %s", lv.ID, lv.Resolution, len(solid), len(hull), status)
		if dropped > 0 {
			fmt.Printf("  (%d out-of-range cell(s) ignored)", dropped)
		}
		fmt.Println()

		if *verbose {
			for _, p := range phantoms {
				fmt.Printf("    phantom at (%d,%d,%d)\n", p.X, p.Y, p.Z)
			}
		}
	}

	fmt.Printf("%d level(s), %d with phantoms\n", len(catalog.Order), loose)
}

func phantomCells(solid, hull []ortho.Cell) []ortho.Cell {
	have := map[[3]int]bool{}
	for _, c := range solid {
		have[[3]int{c.X, c.Y, c.Z}] = true
	}
	var out []ortho.Cell
	for _, c := range hull {
		if !have[[3]int{c.X, c.Y, c.Z}] {
			out = append(out, c)
		}
	}
	return out
}

func droppedCells(solid []ortho.Cell, r int) int {
	n := 0
	for _, c := range solid {
		if !c.InBounds(r) {
			n++
		}
	}
	return n
}
