package session

import (
	"fmt"
	"sync"

	"orthoview.app/internal/levels"
	"orthoview.app/internal/mesh"
	"orthoview.app/internal/ortho"
	"orthoview.app/internal/tuning"
)

// Mode selects which engine direction a session exercises.
//
// build:   the user draws the three views; the hull and the surface are
//          derived from them. Deleting hull cells prunes phantoms.
// analyze: a level supplies the ground-truth solid; the user re-draws the
//          views and is checked against the engine's projections.
type Mode string

const (
	ModeBuild   Mode = "build"
	ModeAnalyze Mode = "analyze"
)

// Session is the recompute glue between the UI intents and the pure engine
// functions. Every mutation fully re-derives the dependent outputs; there
// are no incremental updates, and a resolution change rebuilds all
// per-resolution state together.
type Session struct {
	mu      sync.Mutex
	tune    tuning.Tuning
	catalog *levels.Catalog

	mode    Mode
	levelID string
	r       int
	solid   []ortho.Cell // analyze mode ground truth
	views   ortho.Views  // user-edited views
	deleted map[[3]int]bool

	// Derived, rebuilt by recompute.
	projections ortho.Views // engine projections of the ground truth
	hull        []ortho.Cell
	surface     *mesh.Mesh
	wire        []float32
	solved      bool
}

func New(tune tuning.Tuning, catalog *levels.Catalog) *Session {
	s := &Session{
		tune:    tune,
		catalog: catalog,
		mode:    ModeBuild,
		r:       tune.DefaultResolution,
	}
	s.resetLocked(s.r)
	return s
}

// resetLocked rebuilds every per-resolution structure at once. Keeping an
// old array sized for a different resolution is a correctness hazard, so
// nothing survives a reset except the mode and level binding.
func (s *Session) resetLocked(r int) {
	s.r = r
	s.views = ortho.NewViews(r)
	s.deleted = map[[3]int]bool{}
	s.recomputeLocked()
}

func (s *Session) recomputeLocked() {
	pal := s.tune.Palette()

	switch s.mode {
	case ModeAnalyze:
		s.projections = ortho.Project(s.solid, s.r)
		s.hull = nil
		s.solved = len(s.solid) > 0 &&
			s.views.Front.SilhouetteEqual(s.projections.Front) &&
			s.views.Top.SilhouetteEqual(s.projections.Top) &&
			s.views.Side.SilhouetteEqual(s.projections.Side)
		s.surface = mesh.Build(s.solid, s.r, s.tune.UnitSize, pal)
	default:
		s.projections = ortho.Views{}
		full := ortho.Reconstruct(s.views.Front, s.views.Top, s.views.Side, s.r)
		s.hull = s.hull[:0]
		for _, c := range full {
			if !s.deleted[[3]int{c.X, c.Y, c.Z}] {
				s.hull = append(s.hull, c)
			}
		}
		s.solved = false
		s.surface = mesh.Build(s.hull, s.r, s.tune.UnitSize, pal)
	}
	s.wire = mesh.Wireframe(s.surface, s.tune.WireframeAngleDeg)
}

// SetMode switches the engine direction and clears derived state.
func (s *Session) SetMode(m Mode) error {
	if m != ModeBuild && m != ModeAnalyze {
		return fmt.Errorf("unknown mode %q", m)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	s.resetLocked(s.r)
	return nil
}

// SelectLevel binds a catalog level, switches to analyze mode and resets to
// the level's resolution.
func (s *Session) SelectLevel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lv, ok := s.catalog.ByID[id]
	if !ok {
		return fmt.Errorf("unknown level %q", id)
	}
	s.levelID = id
	s.mode = ModeAnalyze
	s.solid = lv.Solid()
	s.resetLocked(lv.Resolution)
	return nil
}

// SetResolution rebuilds the session at a new grid resolution.
func (s *Session) SetResolution(r int) error {
	if r <= 0 || r > s.tune.MaxResolution {
		return fmt.Errorf("resolution %d out of range 1..%d", r, s.tune.MaxResolution)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(r)
	return nil
}

// viewByName returns a pointer to the named user view.
func (s *Session) viewByName(name string) (*ortho.View, error) {
	switch name {
	case "front":
		return &s.views.Front, nil
	case "top":
		return &s.views.Top, nil
	case "side":
		return &s.views.Side, nil
	}
	return nil, fmt.Errorf("unknown view %q", name)
}

// EditCell applies one cell tool to a user view. Tool is "block" (0↔1),
// "slope" (2→3→4→5→2) or "set" with an explicit code.
func (s *Session) EditCell(view string, row, col int, tool string, code uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.viewByName(view)
	if err != nil {
		return err
	}
	if row < 0 || row >= s.r || col < 0 || col >= s.r {
		return fmt.Errorf("cell (%d,%d) out of range", row, col)
	}
	switch tool {
	case "block":
		*v = v.CycleBlock(row, col)
	case "slope":
		*v = v.CycleSlope(row, col)
	case "set":
		if code != 0 && code != 1 && (code < uint8(ortho.BL) || code > uint8(ortho.TL)) {
			return fmt.Errorf("bad cell code %d", code)
		}
		*v = v.SetCell(row, col, code)
	default:
		return fmt.Errorf("unknown tool %q", tool)
	}
	s.recomputeLocked()
	return nil
}

// ToggleEdge flips one edge flag. Kind is "v" (between columns) or "h"
// (between rows).
func (s *Session) ToggleEdge(view, kind string, row, col int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.viewByName(view)
	if err != nil {
		return err
	}
	switch kind {
	case "v":
		if row < 0 || row >= s.r || col < 0 || col >= s.r-1 {
			return fmt.Errorf("v edge (%d,%d) out of range", row, col)
		}
		*v = v.ToggleV(row, col)
	case "h":
		if row < 0 || row >= s.r-1 || col < 0 || col >= s.r {
			return fmt.Errorf("h edge (%d,%d) out of range", row, col)
		}
		*v = v.ToggleH(row, col)
	default:
		return fmt.Errorf("unknown edge kind %q", kind)
	}
	s.recomputeLocked()
	return nil
}

// DeleteCell marks a hull position as user-deleted: the phantom pruning
// affordance. The deletion persists across recomputes until the resolution
// or mode changes.
func (s *Session) DeleteCell(x, y, z int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeBuild {
		return fmt.Errorf("delete only applies in build mode")
	}
	if x < 0 || x >= s.r || y < 0 || y >= s.r || z < 0 || z >= s.r {
		return fmt.Errorf("cell (%d,%d,%d) out of range", x, y, z)
	}
	s.deleted[[3]int{x, y, z}] = true
	s.recomputeLocked()
	return nil
}

// Snapshot is the full derived state handed to the render host.
type Snapshot struct {
	Mode        Mode
	LevelID     string
	R           int
	Views       ortho.Views
	Projections ortho.Views
	Hull        []ortho.Cell
	Surface     *mesh.Mesh
	Wireframe   []float32
	Solved      bool
}

// State returns a copy of the current state. The engine outputs are value
// snapshots already; only the hull slice needs cloning.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Mode:        s.mode,
		LevelID:     s.levelID,
		R:           s.r,
		Views:       s.views,
		Projections: s.projections,
		Hull:        append([]ortho.Cell(nil), s.hull...),
		Surface:     s.surface,
		Wireframe:   s.wire,
		Solved:      s.solved,
	}
}
