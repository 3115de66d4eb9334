// Package ports declares the interfaces the engine exposes to callers
// and consumes from the outside.
package ports

import (
	"context"
	"time"

	"svw.info/sudoku-insight/internal/domain"
	"svw.info/sudoku-insight/internal/generator"
	"svw.info/sudoku-insight/internal/insight"
	"svw.info/sudoku-insight/internal/rating"
	"svw.info/sudoku-insight/internal/solver"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Steps    int
	Duration time.Duration
}

// Solver enumerates solutions of a starting grid.
type Solver interface {
	Solve(ctx context.Context, start domain.Grid, maxSolutions int) (solver.Result, Stats, error)
}

// Analyzer streams the insights visible in a grid.
type Analyzer interface {
	Analyze(ctx context.Context, g domain.Grid, take insight.Callback) (Stats, error)
}

// Rater evaluates the difficulty of a puzzle.
type Rater interface {
	Rate(ctx context.Context, g domain.Grid) (rating.Rating, Stats, error)
}

// Generator produces puzzles under a clue symmetry.
type Generator interface {
	Generate(ctx context.Context, sym generator.Symmetry) (domain.Grid, Stats, error)
}

// Puzzle is a stored puzzle record.
type Puzzle struct {
	ID       string
	Grid     domain.Grid
	Rating   *rating.Rating
	Symmetry string
	Created  time.Time
}

// PuzzleMeta is the listing view of a stored puzzle.
type PuzzleMeta struct {
	ID         string
	Difficulty rating.Difficulty
	Rated      bool
	Score      float64
	Created    time.Time
}

// PuzzleStore persists generated puzzles with their ratings.
type PuzzleStore interface {
	Save(ctx context.Context, p *Puzzle) error
	Load(ctx context.Context, id string) (*Puzzle, error)
	List(ctx context.Context) ([]PuzzleMeta, error)
}

// GridSource resolves opaque identifiers to grids, for session layers
// that keep puzzles elsewhere.
type GridSource interface {
	GetGrid(ctx context.Context, id string) (domain.Grid, error)
}
