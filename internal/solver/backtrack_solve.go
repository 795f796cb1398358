package solver

import (
	"context"
	"math/rand"
	"time"

	"svw.info/dotlink/internal/domain"
	"svw.info/dotlink/internal/ports"
)

// Solve searches for a full-coverage assignment of one path per color.
// It works on a private board initialized from the level; the caller's
// state is never touched. A nil Solution with a nil error means no
// assignment covers the board. rng, when non-nil, shuffles the color
// order and each color's candidate paths for variety.
func (s *BacktrackingSolver) Solve(ctx context.Context, l *domain.Level, rng *rand.Rand) (domain.Solution, ports.Stats, error) {
	start := time.Now()
	b := domain.NewBoard(l)
	colors := l.Colors()
	if rng != nil {
		rng.Shuffle(len(colors), func(i, j int) { colors[i], colors[j] = colors[j], colors[i] })
	}
	sol := make(domain.Solution, len(colors))
	nodes := 0

	var dfs func(i int) bool
	dfs = func(i int) bool {
		if ctx.Err() != nil {
			return false
		}
		if i == len(colors) {
			// Connecting every pair is not enough; the grid must be covered.
			return b.Full()
		}
		c := colors[i]
		anchors := l.Anchors[c]
		cands := enumeratePaths(b, anchors[0], anchors[1])
		if rng != nil {
			rng.Shuffle(len(cands), func(x, y int) { cands[x], cands[y] = cands[y], cands[x] })
		}
		for _, p := range cands {
			nodes++
			placePath(b, c, p)
			sol[c] = p
			if dfs(i + 1) {
				return true
			}
			liftPath(b, p)
			delete(sol, c)
		}
		return false
	}

	if !dfs(0) {
		st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		return nil, st, nil
	}
	return sol, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
