package session

import (
	"fmt"

	"orthoview.app/internal/ortho"
)

// ImportViews replaces the user views wholesale, e.g. from a decoded
// progress code. The triplet's resolution must match the session's; loading
// a code never silently resizes the grids.
func (s *Session) ImportViews(v ortho.Views) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.Front.R != s.r || v.Top.R != s.r || v.Side.R != s.r {
		return fmt.Errorf("views at resolution %d, session at %d", v.Front.R, s.r)
	}
	s.views = v
	s.recomputeLocked()
	return nil
}
