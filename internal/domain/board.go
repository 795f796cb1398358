package domain

import "fmt"

// Board holds the mutable per-cell color state for one puzzle session.
// Anchor cells are colored at construction and keep their color for the
// board's lifetime; RemoveColorPath and solver backtracking only ever
// clear non-anchor cells.
type Board struct {
	Rows   int         `json:"rows"`
	Cols   int         `json:"cols"`
	Cells  [][]ColorID `json:"cells"`
	Anchor [][]bool    `json:"anchor,omitempty"`
}

// NewBoard creates a board for the level with only the anchors placed.
func NewBoard(l *Level) *Board {
	b := &Board{
		Rows:   l.Rows,
		Cols:   l.Cols,
		Cells:  make([][]ColorID, l.Rows),
		Anchor: make([][]bool, l.Rows),
	}
	for r := 0; r < l.Rows; r++ {
		b.Cells[r] = make([]ColorID, l.Cols)
		b.Anchor[r] = make([]bool, l.Cols)
	}
	for c, anchors := range l.Anchors {
		for _, p := range anchors {
			b.Cells[p.Row][p.Col] = c
			b.Anchor[p.Row][p.Col] = true
		}
	}
	return b
}

// BoardFromCells rebuilds a board from a wire snapshot of cell colors,
// re-deriving anchor flags from the level. The snapshot must agree with
// the level's dimensions and anchor colors.
func BoardFromCells(l *Level, cells [][]ColorID) (*Board, error) {
	if len(cells) != l.Rows {
		return nil, fmt.Errorf("board has %d rows, level wants %d", len(cells), l.Rows)
	}
	b := NewBoard(l)
	for r := 0; r < l.Rows; r++ {
		if len(cells[r]) != l.Cols {
			return nil, fmt.Errorf("row %d has %d cols, level wants %d", r, len(cells[r]), l.Cols)
		}
		for c := 0; c < l.Cols; c++ {
			if b.Anchor[r][c] {
				if cells[r][c] != b.Cells[r][c] {
					return nil, fmt.Errorf("cell (%d,%d) is a %s anchor, snapshot says %s",
						r, c, b.Cells[r][c].Name(), cells[r][c].Name())
				}
				continue
			}
			b.Cells[r][c] = cells[r][c]
		}
	}
	return b, nil
}

// Clone returns a deep copy. Solvers take a clone so in-flight searches
// never alias a board visible to other callers.
func (b *Board) Clone() *Board {
	cp := &Board{
		Rows:   b.Rows,
		Cols:   b.Cols,
		Cells:  make([][]ColorID, b.Rows),
		Anchor: make([][]bool, b.Rows),
	}
	for r := 0; r < b.Rows; r++ {
		cp.Cells[r] = append([]ColorID(nil), b.Cells[r]...)
		cp.Anchor[r] = append([]bool(nil), b.Anchor[r]...)
	}
	return cp
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < b.Rows && p.Col >= 0 && p.Col < b.Cols
}

// ColorAt returns the color at p, or None if the cell is empty.
func (b *Board) ColorAt(p Point) ColorID { return b.Cells[p.Row][p.Col] }

// SetColor writes color into the cell at p.
func (b *Board) SetColor(p Point, c ColorID) { b.Cells[p.Row][p.Col] = c }

// IsAnchor reports whether the cell at p is an anchor.
func (b *Board) IsAnchor(p Point) bool { return b.Anchor[p.Row][p.Col] }

// Available reports whether p may be claimed by color: the cell is
// empty, or it is one of that color's own anchors.
func (b *Board) Available(p Point, c ColorID) bool {
	cur := b.Cells[p.Row][p.Col]
	return cur == None || (b.Anchor[p.Row][p.Col] && cur == c)
}

// Full reports whether no empty cells remain.
func (b *Board) Full() bool {
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if b.Cells[r][c] == None {
				return false
			}
		}
	}
	return true
}

// ApplyPath writes every cell of path as color. Any previous path of
// that color is removed first, matching the commit semantics of the
// interactive layer: redrawing a color replaces its old route.
func (b *Board) ApplyPath(c ColorID, path Path) {
	b.RemoveColorPath(c)
	for _, p := range path {
		b.Cells[p.Row][p.Col] = c
	}
}

// RemoveColorPath clears every non-anchor cell holding color.
func (b *Board) RemoveColorPath(c ColorID) {
	for r := 0; r < b.Rows; r++ {
		for col := 0; col < b.Cols; col++ {
			if b.Cells[r][col] == c && !b.Anchor[r][col] {
				b.Cells[r][col] = None
			}
		}
	}
}

// ColorCells returns every cell currently holding color, in row-major order.
func (b *Board) ColorCells(c ColorID) []Point {
	var out []Point
	for r := 0; r < b.Rows; r++ {
		for col := 0; col < b.Cols; col++ {
			if b.Cells[r][col] == c {
				out = append(out, Point{Row: r, Col: col})
			}
		}
	}
	return out
}
