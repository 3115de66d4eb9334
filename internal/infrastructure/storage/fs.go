package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"svw.info/sudoku-insight/internal/domain"
	"svw.info/sudoku-insight/internal/ports"
	"svw.info/sudoku-insight/internal/rating"
)

// FS stores puzzles as JSON files under a root directory, bucketed by
// difficulty tier.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

// record is the on-disk shape. The grid is the 81-character flat form
// and the rating its serialized form, so files stay greppable.
type record struct {
	ID       string `json:"id"`
	Puzzle   string `json:"puzzle"`
	Rating   string `json:"rating,omitempty"`
	Symmetry string `json:"symmetry,omitempty"`
	Created  int64  `json:"created"`
}

func tierDir(r *rating.Rating) string {
	if r == nil {
		return "unrated"
	}
	switch r.Difficulty {
	case rating.SimpleDisproofs:
		return "simple-disproofs"
	case rating.RecursiveDisproofs:
		return "recursive-disproofs"
	default:
		return "no-disproofs"
	}
}

var tierDirs = []string{"unrated", "no-disproofs", "simple-disproofs", "recursive-disproofs"}

func (s *FS) pathFor(id, tier string) string {
	return filepath.Join(s.dir, tier, strings.TrimSpace(id)+".json")
}

// Save writes the puzzle into its tier bucket, assigning an ID when the
// puzzle has none.
func (s *FS) Save(ctx context.Context, p *ports.Puzzle) error {
	if p == nil {
		return fmt.Errorf("storage: nil puzzle")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Created.IsZero() {
		p.Created = time.Now()
	}
	rec := record{
		ID:       p.ID,
		Puzzle:   p.Grid.Flat(),
		Symmetry: p.Symmetry,
		Created:  p.Created.Unix(),
	}
	if p.Rating != nil {
		rec.Rating = p.Rating.Serialize()
	}
	target := s.pathFor(p.ID, tierDir(p.Rating))
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
	return enc.Encode(rec)
}

func (s *FS) Load(ctx context.Context, id string) (*ports.Puzzle, error) {
	candidates := make([]string, 0, len(tierDirs)+1)
	for _, tier := range tierDirs {
		candidates = append(candidates, s.pathFor(id, tier))
	}
	// legacy flat layout
	candidates = append(candidates, filepath.Join(s.dir, id+".json"))

	var data []byte
	for _, path := range candidates {
		b, err := os.ReadFile(path)
		if err == nil {
			data = b
			break
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	if data == nil {
		return nil, os.ErrNotExist
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return recordPuzzle(rec)
}

func recordPuzzle(rec record) (*ports.Puzzle, error) {
	g, err := domain.ParseGrid(rec.Puzzle)
	if err != nil {
		return nil, fmt.Errorf("storage: puzzle %s: %w", rec.ID, err)
	}
	p := &ports.Puzzle{
		ID:       rec.ID,
		Grid:     g,
		Symmetry: rec.Symmetry,
		Created:  time.Unix(rec.Created, 0),
	}
	if rec.Rating != "" {
		r, err := rating.Parse(rec.Rating)
		if err != nil {
			return nil, fmt.Errorf("storage: puzzle %s: %w", rec.ID, err)
		}
		p.Rating = &r
	}
	return p, nil
}

// GetGrid implements ports.GridSource over the stored puzzles.
func (s *FS) GetGrid(ctx context.Context, id string) (domain.Grid, error) {
	p, err := s.Load(ctx, id)
	if err != nil {
		return domain.Grid{}, err
	}
	return p.Grid, nil
}

func (s *FS) List(ctx context.Context) ([]ports.PuzzleMeta, error) {
	var out []ports.PuzzleMeta

	dirs := make([]string, 0, len(tierDirs)+1)
	for _, tier := range tierDirs {
		dirs = append(dirs, filepath.Join(s.dir, tier))
	}
	dirs = append(dirs, s.dir) // legacy flat files

	for _, dir := range dirs {
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var rec record
			if err := json.Unmarshal(data, &rec); err != nil || rec.ID == "" {
				continue
			}
			meta := ports.PuzzleMeta{
				ID:      rec.ID,
				Created: time.Unix(rec.Created, 0),
			}
			if rec.Rating != "" {
				r, err := rating.Parse(rec.Rating)
				if err != nil {
					continue
				}
				meta.Rated = true
				meta.Difficulty = r.Difficulty
				meta.Score = r.Score
			}
			out = append(out, meta)
		}
	}
	return out, nil
}
