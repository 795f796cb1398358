// Package guard implements the fast post-commit solvability check: after
// a path is committed, every other still-unconnected color must be able
// to reach its far anchor through empty cells. The check is necessary
// but not sufficient — open colors also compete for the same empty
// cells, which only the full solver accounts for.
package guard

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"

	"svw.info/dotlink/internal/domain"
	"svw.info/dotlink/internal/validator"
)

// SolvabilityGuard runs per-color reachability over the committed board.
type SolvabilityGuard struct{}

func New() *SolvabilityGuard { return &SolvabilityGuard{} }

// StillSolvable reports whether, after committing a path for the given
// color, every other unconnected color can still reach its far anchor.
// Every occupied cell except that color's own two anchors counts as
// blocked; every empty cell is passable.
func (g *SolvabilityGuard) StillSolvable(ctx context.Context, l *domain.Level, b *domain.Board, committed domain.ColorID) (bool, error) {
	for _, c := range l.Colors() {
		if c == committed {
			continue
		}
		anchors := l.Anchors[c]
		if validator.Connected(b, c, anchors[0], anchors[1]) {
			continue
		}
		ok, err := reachable(ctx, b, anchors[0], anchors[1])
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// reachable answers anchor-to-anchor reachability over empty cells by
// building the passable subgrid as an unweighted graph and breadth-first
// searching it.
func reachable(ctx context.Context, b *domain.Board, from, to domain.Point) (bool, error) {
	passable := func(p domain.Point) bool {
		return p == from || p == to || b.ColorAt(p) == domain.None
	}

	g := core.NewGraph()
	if err := g.AddVertex(vertexID(from)); err != nil {
		return false, err
	}
	if err := g.AddVertex(vertexID(to)); err != nil {
		return false, err
	}
	for r := 0; r < b.Rows; r++ {
		for col := 0; col < b.Cols; col++ {
			p := domain.Point{Row: r, Col: col}
			if !passable(p) {
				continue
			}
			// Right and down neighbors cover each edge once; AddEdge
			// mirrors the undirected reverse.
			for _, q := range []domain.Point{{Row: r, Col: col + 1}, {Row: r + 1, Col: col}} {
				if !b.InBounds(q) || !passable(q) {
					continue
				}
				if _, err := g.AddEdge(vertexID(p), vertexID(q), 0); err != nil {
					return false, err
				}
			}
		}
	}

	res, err := bfs.BFS(g, vertexID(from), bfs.WithContext(ctx))
	if err != nil {
		return false, err
	}
	_, seen := res.Depth[vertexID(to)]
	return seen, nil
}

func vertexID(p domain.Point) string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}
