package session

import (
	"fmt"
	"sort"

	"orthoview.app/internal/ortho"
)

// ExportV1 is the durable form of a session for snapshot files. Views carry
// the legacy numeric codes so old snapshots stay loadable.
type ExportV1 struct {
	Mode    string   `json:"mode"`
	LevelID string   `json:"level_id,omitempty"`
	R       int      `json:"r"`
	Front   ViewV1   `json:"front"`
	Top     ViewV1   `json:"top"`
	Side    ViewV1   `json:"side"`
	Deleted [][3]int `json:"deleted,omitempty"`
}

type ViewV1 struct {
	Cells []uint8 `json:"cells"`
	V     []uint8 `json:"v"`
	H     []uint8 `json:"h"`
}

func exportView(v ortho.View) ViewV1 {
	return ViewV1{
		Cells: append([]uint8(nil), v.Cells...),
		V:     append([]uint8(nil), v.V...),
		H:     append([]uint8(nil), v.H...),
	}
}

func restoreView(r int, v ViewV1) (ortho.View, error) {
	out := ortho.NewView(r)
	if len(v.Cells) != len(out.Cells) || len(v.V) != len(out.V) || len(v.H) != len(out.H) {
		return out, fmt.Errorf("view arrays do not match resolution %d", r)
	}
	copy(out.Cells, v.Cells)
	copy(out.V, v.V)
	copy(out.H, v.H)
	return out, nil
}

// Export captures the session's editable state.
func (s *Session) Export() ExportV1 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := ExportV1{
		Mode:    string(s.mode),
		LevelID: s.levelID,
		R:       s.r,
		Front:   exportView(s.views.Front),
		Top:     exportView(s.views.Top),
		Side:    exportView(s.views.Side),
	}
	for p := range s.deleted {
		out.Deleted = append(out.Deleted, p)
	}
	sort.Slice(out.Deleted, func(i, j int) bool {
		a, b := out.Deleted[i], out.Deleted[j]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return a[2] < b[2]
	})
	return out
}

// Restore replaces the session's state from an export and re-derives
// everything.
func (s *Session) Restore(e ExportV1) error {
	if e.R <= 0 || e.R > s.tune.MaxResolution {
		return fmt.Errorf("snapshot resolution %d out of range", e.R)
	}
	mode := Mode(e.Mode)
	if mode != ModeBuild && mode != ModeAnalyze {
		return fmt.Errorf("snapshot has unknown mode %q", e.Mode)
	}

	front, err := restoreView(e.R, e.Front)
	if err != nil {
		return err
	}
	top, err := restoreView(e.R, e.Top)
	if err != nil {
		return err
	}
	side, err := restoreView(e.R, e.Side)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == ModeAnalyze {
		lv, ok := s.catalog.ByID[e.LevelID]
		if !ok {
			return fmt.Errorf("snapshot references unknown level %q", e.LevelID)
		}
		if lv.Resolution != e.R {
			return fmt.Errorf("snapshot resolution %d does not match level %q", e.R, e.LevelID)
		}
		s.levelID = e.LevelID
		s.solid = lv.Solid()
	} else {
		s.levelID = ""
		s.solid = nil
	}
	s.mode = mode
	s.r = e.R
	s.views = ortho.Views{Front: front, Top: top, Side: side}
	s.deleted = map[[3]int]bool{}
	for _, p := range e.Deleted {
		s.deleted[p] = true
	}
	s.recomputeLocked()
	return nil
}
