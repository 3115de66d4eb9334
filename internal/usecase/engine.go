package usecase

import (
	"context"
	"math/rand"
	"time"

	"svw.info/sudoku-insight/internal/domain"
	"svw.info/sudoku-insight/internal/generator"
	"svw.info/sudoku-insight/internal/insight"
	"svw.info/sudoku-insight/internal/ports"
	"svw.info/sudoku-insight/internal/rating"
	"svw.info/sudoku-insight/internal/solver"
)

// The engine adapters run the in-process packages behind the ports
// interfaces. Each call derives its randomness from Seed, so repeated
// calls with the same inputs reproduce the same output.

type SolverEngine struct {
	Seed int64
}

func (e *SolverEngine) Solve(ctx context.Context, start domain.Grid, maxSolutions int) (solver.Result, ports.Stats, error) {
	t0 := time.Now()
	res := solver.Solve(ctx, start, maxSolutions, rand.New(rand.NewSource(e.Seed)))
	stats := ports.Stats{Steps: res.NumSteps, Duration: time.Since(t0)}
	if res.Interrupted {
		return res, stats, ctx.Err()
	}
	return res, stats, nil
}

type AnalyzerEngine struct{}

func (e *AnalyzerEngine) Analyze(ctx context.Context, g domain.Grid, take insight.Callback) (ports.Stats, error) {
	t0 := time.Now()
	n := 0
	counted := func(ins insight.Insight) bool {
		n++
		return take(ins)
	}
	complete := insight.Analyze(ctx, insight.New(g), counted)
	stats := ports.Stats{Steps: n, Duration: time.Since(t0)}
	if !complete && ctx.Err() != nil {
		return stats, ctx.Err()
	}
	return stats, nil
}

type RaterEngine struct {
	Seed int64
	// Estimates receives intermediate difficulty estimates, optional.
	Estimates rating.Callback
}

func (e *RaterEngine) Rate(ctx context.Context, g domain.Grid) (rating.Rating, ports.Stats, error) {
	t0 := time.Now()
	ev, err := rating.NewEvaluator(ctx, g, rand.New(rand.NewSource(e.Seed)))
	if err != nil {
		return rating.Rating{}, ports.Stats{Duration: time.Since(t0)}, err
	}
	r := ev.Evaluate(ctx, e.Estimates)
	stats := ports.Stats{Steps: rating.NumTrials, Duration: time.Since(t0)}
	if !r.EvalComplete && ctx.Err() != nil {
		return r, stats, ctx.Err()
	}
	return r, stats, nil
}

type GeneratorEngine struct {
	Seed int64
}

func (e *GeneratorEngine) Generate(ctx context.Context, sym generator.Symmetry) (domain.Grid, ports.Stats, error) {
	t0 := time.Now()
	g, err := generator.Generate(ctx, rand.New(rand.NewSource(e.Seed)), sym)
	return g, ports.Stats{Steps: g.Size(), Duration: time.Since(t0)}, err
}
