package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/dotlink/internal/domain"
)

func emptyBoard(rows, cols int) *domain.Board {
	return domain.NewBoard(&domain.Level{Rows: rows, Cols: cols})
}

func TestEnumeratePathsSmallBoard(t *testing.T) {
	// 2x2, start and end in the same row: the direct path and the detour
	// around the bottom row.
	b := emptyBoard(2, 2)
	got := enumeratePaths(b, domain.Point{Row: 0, Col: 0}, domain.Point{Row: 0, Col: 1})
	require.Len(t, got, 2)
	assert.Equal(t, domain.Path{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, got[0])
	assert.Equal(t, domain.Path{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 1}}, got[1])
}

func TestEnumeratePathsDeterministic(t *testing.T) {
	b := emptyBoard(3, 3)
	start, end := domain.Point{Row: 0, Col: 0}, domain.Point{Row: 2, Col: 2}
	first := enumeratePaths(b, start, end)
	second := enumeratePaths(b, start, end)
	require.Equal(t, first, second, "same immutable board must enumerate identically")
	require.NotEmpty(t, first)
}

func TestEnumeratePathsSkipsOccupiedCells(t *testing.T) {
	// A wall of another color down the middle column leaves no route.
	l := &domain.Level{
		Rows: 3, Cols: 3,
		Anchors: map[domain.ColorID][2]domain.Point{
			domain.Coral: {{Row: 0, Col: 1}, {Row: 2, Col: 1}},
		},
	}
	b := domain.NewBoard(l)
	b.SetColor(domain.Point{Row: 1, Col: 1}, domain.Coral)

	got := enumeratePaths(b, domain.Point{Row: 0, Col: 0}, domain.Point{Row: 2, Col: 0})
	// Only the left column remains passable.
	require.Len(t, got, 1)
	assert.Equal(t, domain.Path{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}}, got[0])
}

func TestEnumeratePathsEndsOnOccupiedAnchor(t *testing.T) {
	l := &domain.Level{
		Rows: 1, Cols: 3,
		Anchors: map[domain.ColorID][2]domain.Point{
			domain.Indigo: {{Row: 0, Col: 0}, {Row: 0, Col: 2}},
		},
	}
	b := domain.NewBoard(l)
	got := enumeratePaths(b, domain.Point{Row: 0, Col: 0}, domain.Point{Row: 0, Col: 2})
	require.Len(t, got, 1)
	assert.Equal(t, domain.Path{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, got[0])
}

func TestBestFirstPathFindsRoute(t *testing.T) {
	b := emptyBoard(4, 4)
	p := bestFirstPath(b, domain.Point{Row: 0, Col: 0}, domain.Point{Row: 3, Col: 3})
	require.NotNil(t, p)
	assert.Equal(t, domain.Point{Row: 0, Col: 0}, p[0])
	assert.Equal(t, domain.Point{Row: 3, Col: 3}, p[len(p)-1])
	for i := 1; i < len(p); i++ {
		assert.True(t, p[i].Adjacent(p[i-1]), "step %d not orthogonal", i)
	}
}

func TestBestFirstPathUnreachable(t *testing.T) {
	l := &domain.Level{
		Rows: 3, Cols: 3,
		Anchors: map[domain.ColorID][2]domain.Point{
			domain.Coral: {{Row: 0, Col: 1}, {Row: 2, Col: 1}},
		},
	}
	b := domain.NewBoard(l)
	b.SetColor(domain.Point{Row: 1, Col: 1}, domain.Coral)

	p := bestFirstPath(b, domain.Point{Row: 1, Col: 0}, domain.Point{Row: 1, Col: 2})
	assert.Nil(t, p)
}
