package domain

import (
	"fmt"
	"sort"
)

// Point identifies a cell on the board.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Adjacent reports whether p and q are orthogonal neighbors.
func (p Point) Adjacent(q Point) bool {
	dr, dc := p.Row-q.Row, p.Col-q.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Path is an ordered sequence of orthogonally adjacent cells.
type Path []Point

// Contains reports whether the path visits p.
func (pa Path) Contains(p Point) bool {
	for _, q := range pa {
		if q == p {
			return true
		}
	}
	return false
}

// Solution maps each color to the path connecting its anchors.
// A solution produced by the solver covers every cell exactly once.
type Solution map[ColorID]Path

// Level is an immutable puzzle definition: dimensions plus the two
// anchor positions for each color. Never mutated after construction.
type Level struct {
	Rows    int                  `json:"rows"`
	Cols    int                  `json:"cols"`
	Anchors map[ColorID][2]Point `json:"anchors"`
}

// InBounds reports whether p lies on the board.
func (l *Level) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < l.Rows && p.Col >= 0 && p.Col < l.Cols
}

// Validate checks a level definition before any board is built from it.
// Levels arrive over the wire, so nothing here may be assumed: positive
// dimensions, at least one color, and for each color two distinct
// in-bounds anchors on cells no other anchor claims.
func (l *Level) Validate() error {
	if l.Rows < 1 || l.Cols < 1 {
		return fmt.Errorf("level: bad dimensions %dx%d", l.Rows, l.Cols)
	}
	if len(l.Anchors) == 0 {
		return fmt.Errorf("level: no anchor pairs")
	}
	used := make(map[Point]ColorID, 2*len(l.Anchors))
	for _, c := range l.Colors() {
		if c == None || int(c) > PaletteSize {
			return fmt.Errorf("level: unknown color %d", c)
		}
		anchors := l.Anchors[c]
		if anchors[0] == anchors[1] {
			return fmt.Errorf("level: %s anchors coincide at (%d,%d)", c.Name(), anchors[0].Row, anchors[0].Col)
		}
		for _, p := range anchors {
			if !l.InBounds(p) {
				return fmt.Errorf("level: %s anchor (%d,%d) out of bounds on %dx%d", c.Name(), p.Row, p.Col, l.Rows, l.Cols)
			}
			if prev, taken := used[p]; taken {
				return fmt.Errorf("level: cell (%d,%d) anchors both %s and %s", p.Row, p.Col, prev.Name(), c.Name())
			}
			used[p] = c
		}
	}
	return nil
}

// Colors returns the level's colors in ascending order so that every
// component iterates the anchor map deterministically.
func (l *Level) Colors() []ColorID {
	out := make([]ColorID, 0, len(l.Anchors))
	for c := range l.Anchors {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Hint is a suggested next cell for a color, paired with a display label.
type Hint struct {
	Color     ColorID `json:"color"`
	ColorName string  `json:"colorName,omitempty"`
	Cell      Point   `json:"cell"`
}

// Puzzle is a persisted level with metadata.
type Puzzle struct {
	ID        string `json:"id,omitempty"`
	Seed      int64  `json:"seed,omitempty"`
	Level     Level  `json:"level"`
	Unique    bool   `json:"unique,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"`
	// Optional user metadata
	Name string `json:"name,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	Pairs     int    `json:"pairs"`
	CreatedAt int64  `json:"createdAt"`
}
