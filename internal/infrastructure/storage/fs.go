package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"svw.info/dotlink/internal/domain"
)

// FS persists puzzles as JSON files under dir/<rows>x<cols>/<id>.json.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func sizeDir(rows, cols int) string {
	return fmt.Sprintf("%dx%d", rows, cols)
}

// safeID rejects IDs that would reach outside the persist dir once
// joined into a path. IDs come from clients; a "../x" must never
// resolve to a sibling directory.
func safeID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return id == filepath.Base(id)
}

func (s *FS) pathFor(p *domain.Puzzle) string {
	sub := sizeDir(p.Level.Rows, p.Level.Cols)
	return filepath.Join(s.dir, sub, strings.TrimSpace(p.ID)+".json")
}

func (s *FS) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || !safeID(strings.TrimSpace(p.ID)) {
		return errors.New("invalid puzzle: missing or unsafe ID")
	}
	target := s.pathFor(p)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	id = strings.TrimSpace(id)
	if !safeID(id) {
		return nil, os.ErrNotExist
	}
	// Size buckets are not known from the ID alone; scan them.
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	for _, e := range ents {
		if !e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name(), id+".json"))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		var out domain.Puzzle
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, os.ErrNotExist
}

func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	var out []domain.PuzzleMeta
	buckets, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	for _, bkt := range buckets {
		if !bkt.IsDir() {
			continue
		}
		ents, err := os.ReadDir(filepath.Join(s.dir, bkt.Name()))
		if err != nil {
			continue
		}
		for _, e := range ents {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(s.dir, bkt.Name(), name))
			if err != nil {
				continue
			}
			var p domain.Puzzle
			if err := json.Unmarshal(data, &p); err != nil || p.ID == "" {
				continue
			}
			out = append(out, domain.PuzzleMeta{
				ID:        p.ID,
				Name:      p.Name,
				Rows:      p.Level.Rows,
				Cols:      p.Level.Cols,
				Pairs:     len(p.Level.Anchors),
				CreatedAt: p.CreatedAt,
			})
		}
	}
	return out, nil
}
