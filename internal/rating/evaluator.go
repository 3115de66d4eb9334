package rating

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sort"

	"svw.info/sudoku-insight/internal/domain"
	"svw.info/sudoku-insight/internal/insight"
	"svw.info/sudoku-insight/internal/solver"
)

// CurrentVersion is the version of the estimation algorithm.
const CurrentVersion = 2

// NumTrials is the default number of disproof trials per evaluation.
const NumTrials = 10

// Callback receives monotonically increasing score estimates while an
// evaluation runs.
type Callback interface {
	UpdateEstimate(minutes float64)
	DisproofsRequired()
}

// ErrNoSolution is returned for puzzles the solver finds unsolvable.
var ErrNoSolution = errors.New("rating: puzzle has no solution")

// Evaluator rates one puzzle. The solution intersection computed at
// construction tells it which open cells are safe to guess.
type Evaluator struct {
	puzzle       domain.Grid
	improper     bool
	intersection domain.Grid
	rnd          *rand.Rand
}

// NewEvaluator solves the puzzle once, capped at NumTrials solutions, to
// establish properness and the solution intersection.
func NewEvaluator(ctx context.Context, puzzle domain.Grid, rnd *rand.Rand) (*Evaluator, error) {
	res := solver.Solve(ctx, puzzle, NumTrials, rnd)
	if res.Intersection == nil {
		if res.Interrupted {
			return nil, ctx.Err()
		}
		return nil, ErrNoSolution
	}
	return &Evaluator{
		puzzle:       puzzle,
		improper:     res.NumSolutions > 1,
		intersection: *res.Intersection,
		rnd:          rnd,
	}, nil
}

// Evaluate rates a puzzle with a fixed default seed.
func Evaluate(ctx context.Context, puzzle domain.Grid, cb Callback) (Rating, error) {
	ev, err := NewEvaluator(ctx, puzzle, rand.New(rand.NewSource(0)))
	if err != nil {
		return Rating{}, err
	}
	return ev.Evaluate(ctx, cb), nil
}

// Evaluate runs the standard number of trials.
func (e *Evaluator) Evaluate(ctx context.Context, cb Callback) Rating {
	return e.EvaluateTrials(ctx, cb, NumTrials)
}

// EvaluateTrials runs one straight shot and, when it gets stuck, the
// given number of disproof trials, averaging their scores. Cancellation
// leaves a valid rating marked incomplete.
func (e *Evaluator) EvaluateTrials(ctx context.Context, cb Callback, trialCount int) Rating {
	if trialCount < 1 {
		trialCount = 1
	}
	outer := &run{ev: e, gm: insight.New(e.puzzle)}
	outer.runStraightShot(ctx, cb)
	score := outer.score
	uninterrupted := outer.status != statusInterrupted
	difficulty := NoDisproofs
	var stddev float64
	if outer.status == statusInconclusive {
		difficulty = SimpleDisproofs
		if cb != nil {
			cb.DisproofsRequired()
		}
		var total float64
		trialScores := make([]float64, 0, trialCount)
		for uninterrupted && len(trialScores) < trialCount {
			inner := &run{ev: e, gm: outer.gm}
			inner.runDisproof(ctx, &innerCallback{
				cb:     cb,
				base:   score + total/float64(trialCount),
				trials: trialCount,
			})
			uninterrupted = inner.status != statusInterrupted
			total += inner.score
			trialScores = append(trialScores, inner.score)
			if inner.recursiveDisproofs {
				difficulty = RecursiveDisproofs
			}
		}
		score += total / float64(len(trialScores))
		stddev = deviation(trialScores)
	}
	return Rating{
		Version:           CurrentVersion,
		Score:             score,
		StandardDeviation: stddev,
		EvalComplete:      uninterrupted,
		Difficulty:        difficulty,
		Improper:          e.improper,
	}
}

// innerCallback scales a trial's running score into the whole-evaluation
// estimate so updates stay monotonic across trials.
type innerCallback struct {
	cb     Callback
	base   float64
	trials int
}

func (ic *innerCallback) UpdateEstimate(minutes float64) {
	if ic.cb != nil {
		ic.cb.UpdateEstimate(ic.base + minutes/float64(ic.trials))
	}
}

func (ic *innerCallback) DisproofsRequired() {}

type runStatus int

const (
	statusNone runStatus = iota
	statusInterrupted
	statusComplete
	statusError
	statusInconclusive
)

// run is one simulated solve attempt over an evolving board state.
type run struct {
	ev                 *Evaluator
	gm                 insight.GridMarks
	score              float64
	status             runStatus
	foundSolution      bool
	recursiveDisproofs bool
}

// runStraightShot plays the best visible move until the board is solved,
// broken, or out of moves. When only ambiguous cells remain it guesses
// one at random; a wrong guess surfaces later as an error.
func (r *run) runStraightShot(ctx context.Context, cb Callback) {
	if r.status == statusInterrupted {
		return
	}
	r.status = statusNone
	var prevNum domain.Numeral
	for r.status == statusNone {
		col := newCollector(r.gm, prevNum)
		prevNum = 0
		if !insight.Analyze(ctx, r.gm, col.take) {
			r.status = statusInterrupted
			continue
		}
		r.score += col.elapsedMinutes()
		if cb != nil {
			cb.UpdateEstimate(r.score)
		}
		switch {
		case col.hasMove():
			move := col.selectedMove()
			r.gm = r.gm.Builder().Apply(move).Build()
			if a, ok := move.ImpliedAssignment(); ok {
				prevNum = a.Num
			}
			if r.gm.Grid.IsSolved() {
				r.status = statusComplete
			}
		case col.hasVisibleErrors():
			r.status = statusError
		case r.onlyAmbiguousAssignmentsRemaining():
			r.gm = r.gm.Builder().Assign(r.randomAssignment()).Build()
		default:
			r.status = statusInconclusive
		}
	}
}

func (r *run) runDisproof(ctx context.Context, cb Callback) {
	for {
		r.eliminateOne(ctx, cb)
		r.runStraightShot(ctx, cb)
		if r.status != statusInconclusive {
			return
		}
	}
}

// eliminateOne disproves one candidate: it assigns each remaining
// candidate in turn and straight-shoots until one leads to an error, then
// eliminates that candidate from the start state. When no candidate can
// be disproved that way, it picks a known-wrong assignment and runs a
// recursive error search, marking the run as needing recursive disproofs.
func (r *run) eliminateOne(ctx context.Context, cb Callback) {
	start := r.gm
	if !r.recursiveDisproofs {
		for _, a := range r.shuffledRemainingAssignments() {
			if r.status == statusInterrupted {
				return
			}
			if r.foundSolution && r.ev.intersection.Get(a.Loc) == a.Num {
				continue
			}
			r.gm = start.Builder().Assign(a).Build()
			r.runStraightShot(ctx, cb)
			switch r.status {
			case statusError:
				r.gm = start.Builder().Eliminate(a).Build()
				return
			case statusComplete:
				r.foundSolution = true
			}
		}
	}
	r.recursiveDisproofs = true
	impossible := r.randomErroneousAssignment()
	r.gm = start.Builder().Assign(impossible).Build()
	r.runErrorSearch(ctx, cb)
	r.gm = start.Builder().Eliminate(impossible).Build()
}

func (r *run) runErrorSearch(ctx context.Context, cb Callback) {
	r.runStraightShot(ctx, cb)
	if r.status != statusInconclusive {
		return
	}
	loc := r.randomOpenLoc(false)
	nums := r.gm.Marks.PossibleNums(loc)
	start := r.gm
	for _, num := range nums.Nums() {
		r.gm = start.Builder().Assign(domain.AssignmentOf(loc, num)).Build()
		r.runErrorSearch(ctx, cb)
	}
}

// onlyAmbiguousAssignmentsRemaining reports whether no open cell has a
// value in the solution intersection, so nothing left is provable.
func (r *run) onlyAmbiguousAssignmentsRemaining() bool {
	for _, loc := range domain.AllLocs() {
		if !r.gm.Grid.Has(loc) && r.ev.intersection.Has(loc) {
			return false
		}
	}
	return true
}

func (r *run) randomAssignment() domain.Assignment {
	loc := r.randomOpenLoc(false)
	return r.pickAssignment(loc, r.gm.Marks.PossibleNums(loc))
}

func (r *run) randomErroneousAssignment() domain.Assignment {
	loc := r.randomOpenLoc(true)
	nums := r.gm.Marks.PossibleNums(loc).Without(r.ev.intersection.Get(loc))
	return r.pickAssignment(loc, nums)
}

func (r *run) pickAssignment(loc domain.Loc, nums domain.NumSet) domain.Assignment {
	return domain.AssignmentOf(loc, nums.Get(r.ev.rnd.Intn(nums.Size())))
}

// randomOpenLoc picks uniformly among the open cells with the fewest
// candidates, two at minimum. Callers only reach here when such a cell
// exists.
func (r *run) randomOpenLoc(inIntersectionOnly bool) domain.Loc {
	size := domain.NumCount
	count := 0
	var current domain.Loc
	for _, loc := range domain.AllLocs() {
		if inIntersectionOnly && !r.ev.intersection.Has(loc) {
			continue
		}
		possible := r.gm.Marks.PossibleNums(loc)
		if possible.Size() < 2 || possible.Size() > size {
			continue
		}
		if possible.Size() < size {
			count = 0
			size = possible.Size()
		}
		count++
		if r.ev.rnd.Intn(count) == 0 {
			current = loc
		}
	}
	return current
}

// shuffledRemainingAssignments lists every open candidate ranked by how
// constrained it is, most constrained first, each rank shuffled
// separately.
func (r *run) shuffledRemainingAssignments() []domain.Assignment {
	byRank := make(map[int][]domain.Assignment)
	for _, loc := range domain.AllLocs() {
		if r.gm.Grid.Has(loc) {
			continue
		}
		nums := r.gm.Marks.PossibleNums(loc)
		for _, num := range nums.Nums() {
			rank := nums.Size()
			for _, t := range []domain.UnitType{domain.RowType, domain.ColType, domain.BlockType} {
				locs := r.gm.Marks.PossibleLocs(domain.UnitNumOf(loc.Unit(t), num))
				if s := locs.Size(); s < rank {
					rank = s
				}
			}
			byRank[rank] = append(byRank[rank], domain.AssignmentOf(loc, num))
		}
	}
	ranks := make([]int, 0, len(byRank))
	for rank := range byRank {
		ranks = append(ranks, rank)
	}
	sort.Ints(ranks)
	var out []domain.Assignment
	for _, rank := range ranks {
		start := len(out)
		out = append(out, byRank[rank]...)
		group := out[start:]
		r.ev.rnd.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
	}
	return out
}

// deviation is the sample standard deviation of the trial scores.
func deviation(scores []float64) float64 {
	if len(scores) < 2 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))
	var ss float64
	for _, s := range scores {
		d := s - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(scores)-1))
}
