package validator

import (
	"context"

	"svw.info/dotlink/internal/domain"
)

// PathValidator checks committed paths against the game rules.
type PathValidator struct{}

func New() *PathValidator { return &PathValidator{} }

var steps = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// ValidatePath checks a proposed path for color against the board:
// endpoints must be the color's two anchors (in either order), every
// step orthogonal, no cell revisited, and every interior cell either
// empty or not claimed by another color. Offending cells are returned
// as conflicts; ok is true when there are none.
func (v *PathValidator) ValidatePath(ctx context.Context, l *domain.Level, b *domain.Board, c domain.ColorID, path domain.Path) (bool, []domain.Point, error) {
	conflicts := make([]domain.Point, 0, 4)
	if len(path) < 2 {
		return false, conflicts, nil
	}

	anchors, known := l.Anchors[c]
	if !known {
		return false, conflicts, nil
	}
	first, last := path[0], path[len(path)-1]
	endpointsOK := (first == anchors[0] && last == anchors[1]) ||
		(first == anchors[1] && last == anchors[0])
	if !endpointsOK {
		return false, conflicts, nil
	}

	seen := make(map[domain.Point]bool, len(path))
	for i, p := range path {
		if !l.InBounds(p) {
			conflicts = append(conflicts, p)
			continue
		}
		if seen[p] {
			conflicts = append(conflicts, p)
			continue
		}
		seen[p] = true
		if i > 0 && !p.Adjacent(path[i-1]) {
			conflicts = append(conflicts, p)
		}
		// Overlap: interior cells must be empty or already ours, and an
		// occupied anchor is only legal when it is this color's own.
		cur := b.ColorAt(p)
		if cur != domain.None && cur != c {
			conflicts = append(conflicts, p)
		}
	}
	return len(conflicts) == 0, conflicts, nil
}

// Win reports whether the puzzle is finished: each color's anchors are
// connected through same-colored cells, and no empty cell remains.
func (v *PathValidator) Win(ctx context.Context, l *domain.Level, b *domain.Board) (bool, error) {
	for _, c := range l.Colors() {
		anchors := l.Anchors[c]
		if !Connected(b, c, anchors[0], anchors[1]) {
			return false, nil
		}
	}
	return b.Full(), nil
}

// Connected reports whether from reaches to through cells holding
// color, via breadth-first search.
func Connected(b *domain.Board, color domain.ColorID, from, to domain.Point) bool {
	visited := make([][]bool, b.Rows)
	for r := range visited {
		visited[r] = make([]bool, b.Cols)
	}
	queue := []domain.Point{from}
	visited[from.Row][from.Col] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return true
		}
		for _, d := range steps {
			next := domain.Point{Row: cur.Row + d[0], Col: cur.Col + d[1]}
			if !b.InBounds(next) || visited[next.Row][next.Col] {
				continue
			}
			if b.ColorAt(next) != color {
				continue
			}
			visited[next.Row][next.Col] = true
			queue = append(queue, next)
		}
	}
	return false
}
