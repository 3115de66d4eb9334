package usecase

import (
	"context"
	"errors"

	"svw.info/sudoku-insight/internal/domain"
	"svw.info/sudoku-insight/internal/generator"
	"svw.info/sudoku-insight/internal/insight"
	"svw.info/sudoku-insight/internal/ports"
	"svw.info/sudoku-insight/internal/rating"
	"svw.info/sudoku-insight/internal/solver"
)

type Service struct {
	Solver    ports.Solver
	Analyzer  ports.Analyzer
	Rater     ports.Rater
	Generator ports.Generator
	Store     ports.PuzzleStore
}

func NewService(s ports.Solver, a ports.Analyzer, r ports.Rater, g ports.Generator, st ports.PuzzleStore) *Service {
	return &Service{Solver: s, Analyzer: a, Rater: r, Generator: g, Store: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Solve(ctx context.Context, start domain.Grid, maxSolutions int) (solver.Result, ports.Stats, error) {
	if u.Solver == nil {
		return solver.Result{}, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, start, maxSolutions)
}

func (u *Service) Analyze(ctx context.Context, g domain.Grid, take insight.Callback) (ports.Stats, error) {
	if u.Analyzer == nil {
		return ports.Stats{}, errNotConfigured
	}
	return u.Analyzer.Analyze(ctx, g, take)
}

func (u *Service) Rate(ctx context.Context, g domain.Grid) (rating.Rating, ports.Stats, error) {
	if u.Rater == nil {
		return rating.Rating{}, ports.Stats{}, errNotConfigured
	}
	return u.Rater.Rate(ctx, g)
}

func (u *Service) Generate(ctx context.Context, sym generator.Symmetry) (domain.Grid, ports.Stats, error) {
	if u.Generator == nil {
		return domain.Grid{}, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, sym)
}

// Persistence
func (u *Service) Save(ctx context.Context, p *ports.Puzzle) error {
	if u.Store == nil {
		return errNotConfigured
	}
	return u.Store.Save(ctx, p)
}
func (u *Service) Load(ctx context.Context, id string) (*ports.Puzzle, error) {
	if u.Store == nil {
		return nil, errNotConfigured
	}
	return u.Store.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]ports.PuzzleMeta, error) {
	if u.Store == nil {
		return nil, errNotConfigured
	}
	return u.Store.List(ctx)
}
