package usecase

import (
	"context"
	"errors"
	"sync/atomic"

	"svw.info/dotlink/internal/domain"
	"svw.info/dotlink/internal/ports"
)

// Service is the facade the adapters talk to. Generation is
// single-flight: while one generate call is outstanding, further ones
// fail fast with ErrGenerationBusy instead of queueing.
type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Guard     ports.Guard
	Storage   ports.Storage

	generating atomic.Bool
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, h ports.Hinter, gd ports.Guard, st ports.Storage) *Service {
	return &Service{Solver: s, Generator: g, Validator: v, Hinter: h, Guard: gd, Storage: st}
}

var (
	errNotConfigured = errors.New("usecase dependency not configured")

	// ErrGenerationBusy rejects a generate request issued while another
	// one is still in flight.
	ErrGenerationBusy = errors.New("a generation task is already running")
)

func (u *Service) Generate(ctx context.Context, seed int64, spec ports.LevelSpec) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	if !u.generating.CompareAndSwap(false, true) {
		return nil, ports.Stats{}, ErrGenerationBusy
	}
	defer u.generating.Store(false)
	return u.Generator.Generate(ctx, seed, spec)
}

func (u *Service) Solve(ctx context.Context, l *domain.Level) (domain.Solution, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, l, nil)
}

func (u *Service) Unique(ctx context.Context, l *domain.Level) (bool, ports.Stats, error) {
	if u.Solver == nil {
		return false, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Unique(ctx, l, nil)
}

func (u *Service) ValidatePath(ctx context.Context, l *domain.Level, b *domain.Board, c domain.ColorID, path domain.Path) (bool, []domain.Point, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.ValidatePath(ctx, l, b, c, path)
}

func (u *Service) Win(ctx context.Context, l *domain.Level, b *domain.Board) (bool, error) {
	if u.Validator == nil {
		return false, errNotConfigured
	}
	return u.Validator.Win(ctx, l, b)
}

func (u *Service) Hint(ctx context.Context, l *domain.Level, b *domain.Board) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, l, b)
}

func (u *Service) StillSolvable(ctx context.Context, l *domain.Level, b *domain.Board, committed domain.ColorID) (bool, error) {
	if u.Guard == nil {
		return false, errNotConfigured
	}
	return u.Guard.StillSolvable(ctx, l, b, committed)
}

// Persistence
func (u *Service) Save(ctx context.Context, p *domain.Puzzle) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, p)
}

func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}

func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
