package solver

import (
	"context"
	"math/rand"
	"time"

	"svw.info/dotlink/internal/domain"
	"svw.info/dotlink/internal/ports"
)

// Unique runs the same search as Solve but keeps going past the first
// full-coverage leaf, looking for a second one. The whole search aborts
// the moment a second solution is seen. Uniqueness is judged on the
// exact color-to-cells assignment; color identities are fixed.
func (s *BacktrackingSolver) Unique(ctx context.Context, l *domain.Level, rng *rand.Rand) (bool, ports.Stats, error) {
	start := time.Now()
	b := domain.NewBoard(l)
	colors := l.Colors()
	if rng != nil {
		rng.Shuffle(len(colors), func(i, j int) { colors[i], colors[j] = colors[j], colors[i] })
	}
	nodes := 0
	count := 0

	var dfs func(i int) bool
	dfs = func(i int) bool {
		if ctx.Err() != nil || count >= 2 {
			return true // stop early
		}
		if i == len(colors) {
			if b.Full() {
				count++
			}
			return count >= 2
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
			stop := dfs(i + 1)
			liftPath(b, p)
			if stop {
				return true
			}
		}
		return false
	}

	_ = dfs(0)
	st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return false, st, err
	}
	return count == 1, st, nil
}
