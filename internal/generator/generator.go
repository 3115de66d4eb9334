package generator

import (
	"context"
	"fmt"
	"math/rand"

	"svw.info/sudoku-insight/internal/domain"
	"svw.info/sudoku-insight/internal/marks"
	"svw.info/sudoku-insight/internal/rating"
	"svw.info/sudoku-insight/internal/solver"
)

// Strategy selects how clues are carved out of the target solution.
type Strategy int

const (
	// StrategySimple keeps the maximal clue set: every clue the symmetry
	// placed that propagation had not already implied.
	StrategySimple Strategy = iota
	// StrategySubtractive then removes whole symmetric clue groups while
	// the solutions stay within bounds.
	StrategySubtractive
	// StrategySubtractiveRandom adds a final clue-by-clue pass that
	// ignores the symmetry, so the pattern usually survives only in
	// traces.
	StrategySubtractiveRandom
)

// Generate builds a puzzle solvable as the given fully solved target,
// with at most maxSolutions solutions and at most maxHoles cells
// undetermined across them. Cancellation surfaces as an interrupted
// solver result.
func (s Strategy) Generate(ctx context.Context, rnd *rand.Rand, sym Symmetry, target domain.Grid, maxSolutions, maxHoles int) solver.Result {
	var used []domain.Loc
	gb := buildToMaximal(rnd, sym, target, &used)
	if s == StrategySimple {
		return solver.Solve(ctx, gb.Build(), maxSolutions, rnd)
	}
	res := subtract(ctx, rnd, sym, maxSolutions, maxHoles, gb, used)
	if s == StrategySubtractive || sym == SymmetryRandom {
		return res
	}
	start := res.Start
	return subtract(ctx, rnd, SymmetryRandom, maxSolutions, maxHoles, start.Builder(), clueLocs(start))
}

// MakeTarget builds a complete random solution: propagation-guided random
// assignment, restarted on the rare contradiction.
func MakeTarget(ctx context.Context, rnd *rand.Rand) (domain.Grid, error) {
	locs := append([]domain.Loc(nil), domain.AllLocs()...)
	for {
		if ctx.Err() != nil {
			return domain.Grid{}, ctx.Err()
		}
		rnd.Shuffle(len(locs), func(i, j int) { locs[i], locs[j] = locs[j], locs[i] })
		b := marks.NewBuilder()
		ok := true
		for _, loc := range locs {
			m := b.Snapshot()
			if m.HasAssignment(loc) {
				continue
			}
			nums := m.PossibleNums(loc)
			if nums.IsEmpty() {
				ok = false
				break
			}
			if !b.AssignRecursively(domain.AssignmentOf(loc, nums.Get(rnd.Intn(nums.Size())))) {
				ok = false
				break
			}
		}
		if ok {
			g := b.Build().AssignedGrid()
			if g.IsSolved() {
				return g, nil
			}
		}
	}
}

// buildToMaximal seeds a starting grid with target values, expanding each
// visited cell through the symmetry, skipping cells propagation has
// already decided. The visited cells land in used.
func buildToMaximal(rnd *rand.Rand, sym Symmetry, target domain.Grid, used *[]domain.Loc) *domain.GridBuilder {
	gb := domain.NewGridBuilder()
	mb := marks.NewBuilder()
	for _, randomLoc := range shuffledLocs(rnd) {
		if mb.Snapshot().PossibleNums(randomLoc).Size() <= 1 {
			continue
		}
		*used = append(*used, randomLoc)
		for _, loc := range sym.Expand(randomLoc) {
			num := target.Get(loc)
			gb.Put(loc, num)
			mb.AssignRecursively(domain.AssignmentOf(loc, num))
		}
	}
	return gb
}

// subtract removes as many clue groups as the symmetry allows while the
// grid keeps at most maxSolutions solutions agreeing on all but maxHoles
// cells.
func subtract(ctx context.Context, rnd *rand.Rand, sym Symmetry, maxSolutions, maxHoles int, gb *domain.GridBuilder, used []domain.Loc) solver.Result {
	rnd.Shuffle(len(used), func(i, j int) { used[i], used[j] = used[j], used[i] })
	result := solver.Solve(ctx, gb.Build(), maxSolutions, rnd)
	for _, usedLoc := range used {
		if ctx.Err() != nil {
			break
		}
		prev := gb.Build()
		for _, loc := range sym.Expand(usedLoc) {
			gb.Remove(loc)
		}
		res := solver.Solve(ctx, gb.Build(), maxSolutions, rnd)
		if res.Intersection == nil || domain.LocCount-res.Intersection.Size() > maxHoles {
			gb.PutAll(prev)
		} else {
			result = res
		}
	}
	return result
}

// Generate carves a proper puzzle under the given symmetry.
func Generate(ctx context.Context, rnd *rand.Rand, sym Symmetry) (domain.Grid, error) {
	target, err := MakeTarget(ctx, rnd)
	if err != nil {
		return domain.Grid{}, err
	}
	res := StrategySubtractiveRandom.Generate(ctx, rnd, sym, target, 1, 0)
	if res.Interrupted {
		return domain.Grid{}, ctx.Err()
	}
	return res.Start, nil
}

// GenerateRated regenerates until a puzzle rates at the wanted difficulty
// tier, up to maxAttempts puzzles.
func GenerateRated(ctx context.Context, rnd *rand.Rand, sym Symmetry, want rating.Difficulty, maxAttempts int) (domain.Grid, rating.Rating, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		g, err := Generate(ctx, rnd, sym)
		if err != nil {
			return domain.Grid{}, rating.Rating{}, err
		}
		ev, err := rating.NewEvaluator(ctx, g, rnd)
		if err != nil {
			return domain.Grid{}, rating.Rating{}, err
		}
		r := ev.Evaluate(ctx, nil)
		if !r.EvalComplete {
			return g, r, ctx.Err()
		}
		if r.Difficulty == want {
			return g, r, nil
		}
	}
	return domain.Grid{}, rating.Rating{}, fmt.Errorf("generator: no %v puzzle in %d attempts", want, maxAttempts)
}

func shuffledLocs(rnd *rand.Rand) []domain.Loc {
	locs := append([]domain.Loc(nil), domain.AllLocs()...)
	rnd.Shuffle(len(locs), func(i, j int) { locs[i], locs[j] = locs[j], locs[i] })
	return locs
}

func clueLocs(g domain.Grid) []domain.Loc {
	var out []domain.Loc
	for _, loc := range domain.AllLocs() {
		if g.Has(loc) {
			out = append(out, loc)
		}
	}
	return out
}
