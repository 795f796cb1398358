package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"svw.info/dotlink/internal/domain"
	"svw.info/dotlink/internal/ports"
)

// Generate produces a solvable level by sampling disjoint anchor pairs
// and asking the solver to accept them, retrying up to maxAttempts.
// The same seed with the same spec yields the same puzzle.
func (g *AnchorGenerator) Generate(ctx context.Context, seed int64, spec ports.LevelSpec) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	if err := checkSpec(spec); err != nil {
		return nil, ports.Stats{}, err
	}
	rng := rand.New(rand.NewSource(seed))
	nodes := 0

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}

		l := &domain.Level{
			Rows:    spec.Rows,
			Cols:    spec.Cols,
			Anchors: placeRandomAnchors(rng, spec.Rows, spec.Cols, spec.Pairs),
		}

		sol, st, err := g.Solver.Solve(ctx, l, rng)
		nodes += st.Nodes
		if err != nil {
			return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		if sol == nil {
			continue
		}

		if spec.RequireUnique {
			unique, st, err := g.Solver.Unique(ctx, l, rng)
			nodes += st.Nodes
			if err != nil {
				return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
			}
			if !unique {
				continue
			}
		}

		p := &domain.Puzzle{
			Seed:      seed,
			Level:     *l,
			Unique:    spec.RequireUnique,
			CreatedAt: time.Now().UnixNano(),
		}
		return p, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
	}

	return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)},
		fmt.Errorf("%w: %d attempts for %dx%d with %d pairs",
			ErrRetryExhausted, maxAttempts, spec.Rows, spec.Cols, spec.Pairs)
}

func checkSpec(spec ports.LevelSpec) error {
	switch {
	case spec.Rows < 1 || spec.Cols < 1:
		return fmt.Errorf("%w: %dx%d board", ErrBadSpec, spec.Rows, spec.Cols)
	case spec.Pairs < 1 || spec.Pairs > domain.PaletteSize:
		return fmt.Errorf("%w: %d pairs, palette holds %d", ErrBadSpec, spec.Pairs, domain.PaletteSize)
	case 2*spec.Pairs > spec.Rows*spec.Cols:
		// Anchor sampling needs 2*pairs distinct cells; without this the
		// rejection sampling below would never terminate.
		return fmt.Errorf("%w: %d anchors on %d cells", ErrBadSpec, 2*spec.Pairs, spec.Rows*spec.Cols)
	}
	return nil
}

// placeRandomAnchors picks pairs distinct palette colors and, for each,
// two distinct cells not used by any other anchor.
func placeRandomAnchors(rng *rand.Rand, rows, cols, pairs int) map[domain.ColorID][2]domain.Point {
	palette := domain.Palette()
	rng.Shuffle(len(palette), func(i, j int) { palette[i], palette[j] = palette[j], palette[i] })

	anchors := make(map[domain.ColorID][2]domain.Point, pairs)
	used := make(map[domain.Point]bool, 2*pairs)
	sample := func() domain.Point {
		for {
			p := domain.Point{Row: rng.Intn(rows), Col: rng.Intn(cols)}
			if !used[p] {
				used[p] = true
				return p
			}
		}
	}
	for i := 0; i < pairs; i++ {
		anchors[palette[i]] = [2]domain.Point{sample(), sample()}
	}
	return anchors
}
