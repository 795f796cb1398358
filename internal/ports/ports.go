package ports

import (
	"context"
	"math/rand"
	"time"

	"svw.info/dotlink/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// LevelSpec describes the level the generator should produce.
type LevelSpec struct {
	Rows          int
	Cols          int
	Pairs         int
	RequireUnique bool
}

// Solver finds full-coverage path assignments for a level and can test
// uniqueness. A nil rng gives the canonical deterministic search order;
// callers wanting variety pass a seeded rand.Rand. A nil Solution with a
// nil error means the level has no solution.
type Solver interface {
	Solve(ctx context.Context, l *domain.Level, rng *rand.Rand) (domain.Solution, Stats, error)
	Unique(ctx context.Context, l *domain.Level, rng *rand.Rand) (bool, Stats, error)
}

// Generator creates solvable (optionally unique) levels by random
// anchor placement with bounded retry.
type Generator interface {
	Generate(ctx context.Context, seed int64, spec LevelSpec) (*domain.Puzzle, Stats, error)
}

// Validator checks proposed paths against the game rules and computes
// the win condition.
type Validator interface {
	ValidatePath(ctx context.Context, l *domain.Level, b *domain.Board, c domain.ColorID, path domain.Path) (ok bool, conflicts []domain.Point, err error)
	Win(ctx context.Context, l *domain.Level, b *domain.Board) (bool, error)
}

// Hinter suggests a next cell for an in-progress board.
// found == false means no hint is available, which is a normal outcome.
type Hinter interface {
	Hint(ctx context.Context, l *domain.Level, b *domain.Board) (domain.Hint, bool, error)
}

// Guard is the fast post-commit solvability check. It is necessary but
// not sufficient: a false return means the board is dead for certain,
// a true return only means no single color is walled off yet.
type Guard interface {
	StillSolvable(ctx context.Context, l *domain.Level, b *domain.Board, committed domain.ColorID) (bool, error)
}

// Storage persists and retrieves puzzles as JSON.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
