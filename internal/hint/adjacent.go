package hint

import (
	"context"

	"svw.info/dotlink/internal/domain"
	"svw.info/dotlink/internal/ports"
	"svw.info/dotlink/internal/validator"
)

// AdjacentHinter suggests a next cell in two tiers: first a local
// extension of an existing partial path, then a full solve whose
// canonical solution is diffed against the player's progress.
type AdjacentHinter struct {
	Solver ports.Solver
}

func New(s ports.Solver) *AdjacentHinter { return &AdjacentHinter{Solver: s} }

var steps = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// Hint returns a suggested (color, cell) move for the current board, or
// found == false when neither tier produces one. The caller's board is
// never mutated; tentative placements happen on a private clone.
func (h *AdjacentHinter) Hint(ctx context.Context, l *domain.Level, b *domain.Board) (domain.Hint, bool, error) {
	if hint, ok := h.localExtension(l, b); ok {
		return hint, true, nil
	}
	return h.solveAndDiff(ctx, l, b)
}

// localExtension scans colors in the level's iteration order. For each
// color not yet connected, every empty neighbor of an existing cell is
// tried: place it tentatively and accept it if the color's cells then
// have exactly two open ends (cells with at most one same-colored
// neighbor). The first qualifying candidate wins.
//
// The open-end count is an approximation of "still looks like a path":
// it can miss valid extensions and occasionally accept a dead one. That
// behavior is intentional; the global tier backstops it.
func (h *AdjacentHinter) localExtension(l *domain.Level, b *domain.Board) (domain.Hint, bool) {
	scratch := b.Clone()
	for _, c := range l.Colors() {
		anchors := l.Anchors[c]
		if validator.Connected(scratch, c, anchors[0], anchors[1]) {
			continue
		}
		for _, cell := range scratch.ColorCells(c) {
			for _, d := range steps {
				next := domain.Point{Row: cell.Row + d[0], Col: cell.Col + d[1]}
				if !scratch.InBounds(next) || scratch.ColorAt(next) != domain.None {
					continue
				}
				scratch.SetColor(next, c)
				ends := openEnds(scratch, c)
				scratch.SetColor(next, domain.None)
				if ends == 2 {
					return domain.Hint{Color: c, ColorName: c.Name(), Cell: next}, true
				}
			}
		}
	}
	return domain.Hint{}, false
}

// openEnds counts cells of color with at most one same-colored neighbor.
func openEnds(b *domain.Board, c domain.ColorID) int {
	ends := 0
	for _, cell := range b.ColorCells(c) {
		n := 0
		for _, d := range steps {
			p := domain.Point{Row: cell.Row + d[0], Col: cell.Col + d[1]}
			if b.InBounds(p) && b.ColorAt(p) == c {
				n++
			}
		}
		if n <= 1 {
			ends++
		}
	}
	return ends
}

// solveAndDiff solves the whole level once and, for the first color
// whose placed cells fall short of the canonical path, returns the
// first canonical cell not yet placed that touches the player's
// partial path.
func (h *AdjacentHinter) solveAndDiff(ctx context.Context, l *domain.Level, b *domain.Board) (domain.Hint, bool, error) {
	sol, _, err := h.Solver.Solve(ctx, l, nil)
	if err != nil {
		return domain.Hint{}, false, err
	}
	if sol == nil {
		return domain.Hint{}, false, nil
	}
	for _, c := range l.Colors() {
		current := b.ColorCells(c)
		canonical := sol[c]
		if len(current) >= len(canonical) {
			continue
		}
		for _, p := range canonical {
			if containsPoint(current, p) {
				continue
			}
			if !extendsPath(b, current, p, c) {
				continue
			}
			return domain.Hint{Color: c, ColorName: c.Name(), Cell: p}, true, nil
		}
	}
	return domain.Hint{}, false, nil
}

// extendsPath reports whether p is a usable next step: an empty cell or
// a loose end of the color's own cells, orthogonally adjacent to at
// least one cell already placed.
func extendsPath(b *domain.Board, current []domain.Point, p domain.Point, c domain.ColorID) bool {
	if len(current) == 0 {
		return true
	}
	if b.ColorAt(p) != domain.None && !looseEnd(b, p) {
		return false
	}
	for _, q := range current {
		if p.Adjacent(q) {
			return true
		}
	}
	return false
}

// looseEnd reports whether the occupied cell at p has at most one
// same-colored neighbor, i.e. it still terminates a path.
func looseEnd(b *domain.Board, p domain.Point) bool {
	c := b.ColorAt(p)
	if c == domain.None {
		return false
	}
	n := 0
	for _, d := range steps {
		q := domain.Point{Row: p.Row + d[0], Col: p.Col + d[1]}
		if b.InBounds(q) && b.ColorAt(q) == c {
			n++
		}
	}
	return n <= 1
}

func containsPoint(pts []domain.Point, p domain.Point) bool {
	for _, q := range pts {
		if q == p {
			return true
		}
	}
	return false
}
