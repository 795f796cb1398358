package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/dotlink/internal/domain"
)

func twoPairLevel() *domain.Level {
	return &domain.Level{
		Rows: 3, Cols: 3,
		Anchors: map[domain.ColorID][2]domain.Point{
			domain.Indigo: {{Row: 0, Col: 0}, {Row: 0, Col: 2}},
			domain.Coral:  {{Row: 2, Col: 0}, {Row: 2, Col: 2}},
		},
	}
}

func TestValidatePathAccepts(t *testing.T) {
	l := twoPairLevel()
	b := domain.NewBoard(l)
	v := New()

	ok, conflicts, err := v.ValidatePath(context.Background(), l, b, domain.Indigo,
		domain.Path{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, conflicts)

	// Anchor order reversed is just as valid.
	ok, _, err = v.ValidatePath(context.Background(), l, b, domain.Indigo,
		domain.Path{{Row: 0, Col: 2}, {Row: 0, Col: 1}, {Row: 0, Col: 0}})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidatePathRejects(t *testing.T) {
	l := twoPairLevel()
	v := New()
	ctx := context.Background()

	t.Run("wrong endpoints", func(t *testing.T) {
		b := domain.NewBoard(l)
		ok, _, err := v.ValidatePath(ctx, l, b, domain.Indigo,
			domain.Path{{Row: 0, Col: 0}, {Row: 1, Col: 0}})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("diagonal step", func(t *testing.T) {
		b := domain.NewBoard(l)
		ok, conflicts, err := v.ValidatePath(ctx, l, b, domain.Indigo,
			domain.Path{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 2}})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NotEmpty(t, conflicts)
	})

	t.Run("revisit", func(t *testing.T) {
		b := domain.NewBoard(l)
		ok, _, err := v.ValidatePath(ctx, l, b, domain.Indigo,
			domain.Path{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 0}})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("out of bounds", func(t *testing.T) {
		b := domain.NewBoard(l)
		ok, _, err := v.ValidatePath(ctx, l, b, domain.Indigo,
			domain.Path{{Row: 0, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 2}})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("crosses another color", func(t *testing.T) {
		b := domain.NewBoard(l)
		b.SetColor(domain.Point{Row: 0, Col: 1}, domain.Coral)
		ok, conflicts, err := v.ValidatePath(ctx, l, b, domain.Indigo,
			domain.Path{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, conflicts, domain.Point{Row: 0, Col: 1})
	})

	t.Run("unknown color", func(t *testing.T) {
		b := domain.NewBoard(l)
		ok, _, err := v.ValidatePath(ctx, l, b, domain.Gray,
			domain.Path{{Row: 0, Col: 0}, {Row: 0, Col: 1}})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestConnected(t *testing.T) {
	l := twoPairLevel()
	b := domain.NewBoard(l)
	anchors := l.Anchors[domain.Indigo]
	assert.False(t, Connected(b, domain.Indigo, anchors[0], anchors[1]))

	b.SetColor(domain.Point{Row: 0, Col: 1}, domain.Indigo)
	assert.True(t, Connected(b, domain.Indigo, anchors[0], anchors[1]))
}

func TestWin(t *testing.T) {
	l := twoPairLevel()
	b := domain.NewBoard(l)
	v := New()
	ctx := context.Background()

	won, err := v.Win(ctx, l, b)
	require.NoError(t, err)
	assert.False(t, won, "empty board is not a win")

	// Connect both pairs but leave the middle row empty.
	b.SetColor(domain.Point{Row: 0, Col: 1}, domain.Indigo)
	b.SetColor(domain.Point{Row: 2, Col: 1}, domain.Coral)
	won, err = v.Win(ctx, l, b)
	require.NoError(t, err)
	assert.False(t, won, "connected but uncovered board is not a win")

	for col := 0; col < 3; col++ {
		b.SetColor(domain.Point{Row: 1, Col: col}, domain.Indigo)
	}
	// Middle row belongs to indigo but does not join the two pairs'
	// connectivity; coverage plus per-color connectivity is the test.
	won, err = v.Win(ctx, l, b)
	require.NoError(t, err)
	assert.True(t, won)
}
