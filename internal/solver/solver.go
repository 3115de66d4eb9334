// Package solver enumerates Sudoku solutions with a randomized, worklist
// based depth-first search over the constraint store.
package solver

import (
	"context"
	"math/rand"

	"svw.info/sudoku-insight/internal/domain"
	"svw.info/sudoku-insight/internal/marks"
)

// Strategy selects where the search looks for choice points.
type Strategy int

const (
	// StrategyLoc branches on cells with the fewest candidate numerals.
	StrategyLoc Strategy = iota
	// StrategyUnit branches on (unit, numeral) pairs with the fewest
	// candidate positions.
	StrategyUnit
	// StrategyAll considers both families.
	StrategyAll
)

// Options tunes a solve run. The zero value picks sensible defaults.
type Options struct {
	Strategy Strategy
	// Factor bounds the choice-point scan: after finding a point of size
	// s the scan looks at most (s-2)*Factor further points.
	Factor int
	// MaxSolutions caps enumeration; the reported count saturates at
	// MaxSolutions+1 to signal more exist.
	MaxSolutions int
	// LongBudget is the step budget of the first attempt. Inconclusive
	// attempts alternate with short reshuffled retries while the long
	// budget grows geometrically, bounding pathological branches.
	LongBudget int
}

const (
	defaultFactor     = 300
	defaultLongBudget = 20000
)

// Result summarizes a solve run.
type Result struct {
	Start domain.Grid
	// NumSolutions is the number found, saturating at MaxSolutions+1.
	NumSolutions int
	NumSteps     int
	// NumStepsAfterSolution counts steps taken after the first solution
	// surfaced, a difficulty proxy.
	NumStepsAfterSolution int
	// Solution is set when exactly one solution was found.
	Solution *domain.Grid
	// Intersection holds the cells agreeing across every enumerated
	// solution; nil when there are none.
	Intersection *domain.Grid
	// Interrupted marks a run cut short by cancellation; counts so far
	// are still valid.
	Interrupted bool
}

// Solve enumerates up to maxSolutions+1 solutions of start.
func Solve(ctx context.Context, start domain.Grid, maxSolutions int, rnd *rand.Rand) Result {
	return SolveWith(ctx, start, rnd, Options{MaxSolutions: maxSolutions, Strategy: StrategyAll})
}

// SolveWith is Solve with explicit options.
func SolveWith(ctx context.Context, start domain.Grid, rnd *rand.Rand, opts Options) Result {
	if opts.Factor <= 0 {
		opts.Factor = defaultFactor
	}
	if opts.MaxSolutions <= 0 {
		opts.MaxSolutions = 1
	}
	if opts.LongBudget <= 0 {
		opts.LongBudget = defaultLongBudget
	}
	s := &search{ctx: ctx, rnd: rnd, opts: opts}
	res := Result{Start: start}

	b := marks.NewBuilder()
	if !b.AssignAllRecursively(start) {
		// Inconsistent givens: no solutions, nothing to search.
		return res
	}
	initial := b.Build()
	s.collectPoints(initial)

	long := opts.LongBudget
	short := long / 8
	if short < 1 {
		short = 1
	}
	for attempt := 0; ; attempt++ {
		budget := short
		if attempt%2 == 0 {
			budget = long
			if attempt > 0 {
				long *= 2
			}
		}
		s.shuffle()
		outcome := s.run(initial, budget, &res)
		if outcome != inconclusive {
			res.Interrupted = outcome == interrupted
			return res
		}
		// Restart: drop the partial worklist and whatever solutions it
		// yielded, reshuffle, try again under the next budget.
		res.NumSolutions = 0
		res.NumStepsAfterSolution = 0
		res.Solution = nil
		res.Intersection = nil
	}
}

type outcome int

const (
	exhausted outcome = iota
	inconclusive
	interrupted
)

type search struct {
	ctx    context.Context
	rnd    *rand.Rand
	opts   Options
	points []choicePoint
	cursor int
}

// workItem is one pending branch: a store snapshot plus the assignment to
// try on it.
type workItem struct {
	marks *marks.Marks
	loc   domain.Loc
	num   domain.Numeral
}

func (s *search) run(initial *marks.Marks, budget int, res *Result) outcome {
	var worklist []workItem
	var firstSolutionSteps int
	var intersection [domain.LocCount]domain.Numeral

	record := func(g domain.Grid) {
		if res.NumSolutions == 0 {
			firstSolutionSteps = res.NumSteps
			sol := g
			res.Solution = &sol
			for _, loc := range domain.AllLocs() {
				intersection[loc] = g.Get(loc)
			}
		} else {
			res.Solution = nil
			for _, loc := range domain.AllLocs() {
				if intersection[loc] != g.Get(loc) {
					intersection[loc] = 0
				}
			}
		}
		res.NumSolutions++
	}
	finish := func() {
		if res.NumSolutions > 0 {
			res.NumStepsAfterSolution = res.NumSteps - firstSolutionSteps
			gb := domain.NewGridBuilder()
			for _, loc := range domain.AllLocs() {
				if intersection[loc] != 0 {
					gb.Put(loc, intersection[loc])
				}
			}
			g := gb.Build()
			res.Intersection = &g
		}
	}

	if initial.IsComplete() {
		record(initial.Grid())
		finish()
		return exhausted
	}
	worklist = s.push(worklist, initial)

	steps := 0
	for len(worklist) > 0 {
		if steps&0xff == 0 && s.ctx != nil && s.ctx.Err() != nil {
			finish()
			return interrupted
		}
		if steps >= budget {
			return inconclusive
		}
		steps++
		res.NumSteps++
		item := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		b := item.marks.Builder()
		if !b.AssignRecursively(domain.AssignmentOf(item.loc, item.num)) {
			continue
		}
		m := b.Build()
		if m.IsComplete() {
			record(m.Grid())
			if res.NumSolutions > s.opts.MaxSolutions {
				break
			}
			continue
		}
		worklist = s.push(worklist, m)
	}
	finish()
	return exhausted
}

// push appends the alternatives of the next choice point in random order.
func (s *search) push(worklist []workItem, m *marks.Marks) []workItem {
	list := s.chooseNext(m)
	for last := len(list); last > 0; last-- {
		index := s.rnd.Intn(last)
		worklist = append(worklist, list[index])
		list[index] = list[last-1]
	}
	return worklist
}

// chooseNext scans the cycled choice points for the smallest set of
// mutually exclusive assignments, breaking ties uniformly at random by
// reservoir sampling, and cutting the scan off at (size-2)*Factor points
// once a candidate is in hand.
func (s *search) chooseNext(m *marks.Marks) []workItem {
	size := 10
	max := len(s.points)
	ties := 0
	var current choicePoint
	for scanned := 0; scanned < max; scanned++ {
		p := s.points[s.cursor]
		s.cursor++
		if s.cursor == len(s.points) {
			s.cursor = 0
		}
		ps := p.size(m)
		if ps <= 1 {
			continue
		}
		if ps < size {
			current, size, ties = p, ps, 1
			if cut := (size - 2) * s.opts.Factor; cut < max {
				max = cut
			}
		} else if ps == size {
			ties++
			if s.rnd.Intn(ties) == 0 {
				current = p
			}
		}
	}
	if current == nil {
		return nil
	}
	return current.choices(m)
}

func (s *search) shuffle() {
	s.rnd.Shuffle(len(s.points), func(i, j int) {
		s.points[i], s.points[j] = s.points[j], s.points[i]
	})
	s.cursor = 0
}

// collectPoints keeps the choice points that still have more than one
// alternative under the initial store.
func (s *search) collectPoints(initial *marks.Marks) {
	st := s.opts.Strategy
	if st == StrategyLoc || st == StrategyAll {
		for _, loc := range domain.AllLocs() {
			if initial.PossibleNums(loc).Size() > 1 {
				s.points = append(s.points, locPoint(loc))
			}
		}
	}
	if st == StrategyUnit || st == StrategyAll {
		for i := 0; i < domain.UnitNumCount; i++ {
			un := domain.UnitNumAt(i)
			if initial.NumPossibleLocs(un) > 1 {
				s.points = append(s.points, unitPoint(un))
			}
		}
	}
}

// A choicePoint is a place with mutually exclusive possible assignments:
// either a cell and its candidate numerals, or a (unit, numeral) pair and
// its candidate positions.
type choicePoint interface {
	size(m *marks.Marks) int
	choices(m *marks.Marks) []workItem
}

type locPoint domain.Loc

func (p locPoint) size(m *marks.Marks) int {
	return m.PossibleNums(domain.Loc(p)).Size()
}

func (p locPoint) choices(m *marks.Marks) []workItem {
	set := m.PossibleNums(domain.Loc(p))
	items := make([]workItem, 0, set.Size())
	for _, num := range set.Nums() {
		items = append(items, workItem{marks: m, loc: domain.Loc(p), num: num})
	}
	return items
}

type unitPoint domain.UnitNum

func (p unitPoint) size(m *marks.Marks) int {
	return m.NumPossibleLocs(domain.UnitNum(p))
}

func (p unitPoint) choices(m *marks.Marks) []workItem {
	un := domain.UnitNum(p)
	set := m.PossibleLocs(un)
	items := make([]workItem, 0, set.Size())
	for _, loc := range set.Locs() {
		items = append(items, workItem{marks: m, loc: loc, num: un.Num})
	}
	return items
}
