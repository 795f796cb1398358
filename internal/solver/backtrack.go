package solver

import "svw.info/dotlink/internal/domain"

// BacktrackingSolver assigns one simple path per color and backtracks
// until the whole board is covered.
type BacktrackingSolver struct{}

func NewBacktrackingSolver() *BacktrackingSolver { return &BacktrackingSolver{} }

// Search order for neighbor expansion: up, right, down, left. Fixed so
// that enumeration is reproducible; variety comes from caller-side
// shuffling, never from the enumerator itself.
var directions = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// --- helpers shared by Solve/Unique (in other files) ---

// placePath claims every cell of path for color.
func placePath(b *domain.Board, c domain.ColorID, path domain.Path) {
	for _, p := range path {
		b.SetColor(p, c)
	}
}

// liftPath clears the path's interior; anchors stay colored.
func liftPath(b *domain.Board, path domain.Path) {
	for _, p := range path {
		if !b.IsAnchor(p) {
			b.SetColor(p, domain.None)
		}
	}
}
