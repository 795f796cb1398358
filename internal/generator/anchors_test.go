package generator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/dotlink/internal/domain"
	"svw.info/dotlink/internal/ports"
	"svw.info/dotlink/internal/solver"
)

func TestGenerateSolvableLevel(t *testing.T) {
	s := solver.NewBacktrackingSolver()
	g := NewAnchorGenerator(s)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	spec := ports.LevelSpec{Rows: 4, Cols: 4, Pairs: 2}
	p, st, err := g.Generate(ctx, 12345, spec)
	require.NoError(t, err, "nodes=%d dur=%v", st.Nodes, st.Duration)

	l := &p.Level
	assert.Equal(t, 4, l.Rows)
	assert.Equal(t, 4, l.Cols)
	require.Len(t, l.Anchors, 2)

	// Anchors pairwise distinct across colors.
	seen := make(map[domain.Point]bool)
	for c, pair := range l.Anchors {
		require.NotEqual(t, pair[0], pair[1], "%s anchors collide", c.Name())
		for _, a := range pair {
			require.True(t, l.InBounds(a))
			require.False(t, seen[a], "anchor %v reused", a)
			seen[a] = true
		}
	}

	// The returned level really is solvable.
	sol, _, err := s.Solve(ctx, l, nil)
	require.NoError(t, err)
	assert.NotNil(t, sol)
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	s := solver.NewBacktrackingSolver()
	g := NewAnchorGenerator(s)
	ctx := context.Background()
	spec := ports.LevelSpec{Rows: 4, Cols: 4, Pairs: 2}

	first, _, err := g.Generate(ctx, 7, spec)
	require.NoError(t, err)
	second, _, err := g.Generate(ctx, 7, spec)
	require.NoError(t, err)
	assert.Equal(t, first.Level, second.Level)
}

func TestGenerateUniqueLevel(t *testing.T) {
	s := solver.NewBacktrackingSolver()
	g := NewAnchorGenerator(s)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	spec := ports.LevelSpec{Rows: 3, Cols: 3, Pairs: 2, RequireUnique: true}
	p, _, err := g.Generate(ctx, 99, spec)
	require.NoError(t, err)
	assert.True(t, p.Unique)

	ok, _, err := s.Unique(ctx, &p.Level, nil)
	require.NoError(t, err)
	assert.True(t, ok, "generator returned a non-unique level")
}

func TestGenerateRejectsBadSpecs(t *testing.T) {
	g := NewAnchorGenerator(solver.NewBacktrackingSolver())
	ctx := context.Background()

	cases := []struct {
		name string
		spec ports.LevelSpec
	}{
		{"zero rows", ports.LevelSpec{Rows: 0, Cols: 4, Pairs: 1}},
		{"zero pairs", ports.LevelSpec{Rows: 4, Cols: 4, Pairs: 0}},
		{"beyond palette", ports.LevelSpec{Rows: 9, Cols: 9, Pairs: domain.PaletteSize + 1}},
		{"more anchors than cells", ports.LevelSpec{Rows: 2, Cols: 2, Pairs: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := g.Generate(ctx, 1, tc.spec)
			assert.ErrorIs(t, err, ErrBadSpec)
		})
	}
}
