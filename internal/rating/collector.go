package rating

import (
	"svw.info/sudoku-insight/internal/domain"
	"svw.info/sudoku-insight/internal/insight"
)

// moveKind classifies assignment insights by how hard they are for a
// person to spot, easiest first. The per-kind scan rates come from
// empirical timing of human solvers and must not be re-derived.
type moveKind int

const (
	kindEasyDirect moveKind = iota
	kindDirect
	kindSimplyImpliedEasy
	kindSimplyImplied
	kindImpliedEasy
	kindImplied // catch-all, including errors
)

const (
	minKind = kindEasyDirect
	maxKind = kindImplied
)

// Minutes to scan one point for each kind of move. The number of points
// at a grid position is four times the open locations divided by the
// targets covered by at least one insight.
var kindMinutesPerScanPoint = [...]float64{
	kindEasyDirect:        1.3 / 60,
	kindDirect:            1.4 / 60,
	kindSimplyImpliedEasy: 1.7 / 60,
	kindSimplyImplied:     1.8 / 60,
	kindImpliedEasy:       3.4 / 60,
	kindImplied:           4.0 / 60,
}

// When a direct block-numeral move repeats the previous move's numeral,
// the scan points are instead the open block-numeral moves for that
// numeral, at this rate.
const blockNumeralMinutesPerScanPoint = 0.75 / 60

// Fixed pause before looking for disproofs when no move is implied.
const minutesBeforeDisproof = 83.2 / 60

// collector watches one analyzer pass, tracking the best visible move,
// the scan targets touched, and the per-cell move kinds that feed the
// elapsed-time model.
type collector struct {
	gm                   insight.GridMarks
	prevNum              domain.Numeral
	locTargets           domain.LocSet
	unitNumTargets       domain.UnitNumSet
	kinds                map[domain.Loc]moveKind
	best                 moveKind
	hasBest              bool
	move                 insight.Insight
	blockNumeralMove     *insight.ForcedLoc
	errors               bool
	numDirectMoves       int
	numDirectErrors      int
	numBlockNumeralMoves int
}

func newCollector(gm insight.GridMarks, prevNum domain.Numeral) *collector {
	return &collector{gm: gm, prevNum: prevNum, kinds: make(map[domain.Loc]moveKind)}
}

func (c *collector) take(ins insight.Insight) bool {
	if a, ok := ins.ImpliedAssignment(); ok {
		ins.AddScanTargets(&c.locTargets, &c.unitNumTargets)
		prev, hasPrev := c.kinds[a.Loc]
		kind := c.kindForInsight(ins, prev, hasPrev)
		c.kinds[a.Loc] = kind
		if !c.hasBest || kind < c.best {
			c.best = kind
			c.hasBest = true
			c.move = ins
		}
		if ins.Type().IsAssignment() {
			c.numDirectMoves++
		}
		if fl, ok := ins.(insight.ForcedLoc); ok && fl.Unit.Type() == domain.BlockType {
			c.numBlockNumeralMoves++
			if fl.Num == c.prevNum {
				c.blockNumeralMove = &fl
			}
		}
	} else if ins.Nub().Type().IsError() {
		ins.AddScanTargets(&c.locTargets, &c.unitNumTargets)
		c.errors = true
		if ins.Type().IsError() {
			c.numDirectErrors++
		}
	}
	return true
}

// elapsedMinutes estimates how long a person took to find the move this
// pass settled on, or the pause before hunting disproofs when there is
// none.
func (c *collector) elapsedMinutes() float64 {
	if c.blockNumeralMove != nil {
		openMoves := 0
		for b := 0; b < 9; b++ {
			locs := c.gm.Marks.PossibleLocs(domain.UnitNumOf(domain.Block(b), c.prevNum))
			if locs.Size() > 1 || locs.Size() == 1 && !c.gm.Grid.Has(locs.Get(0)) {
				openMoves++
			}
		}
		return blockNumeralMinutesPerScanPoint * float64(openMoves) / float64(c.numBlockNumeralMoves)
	}
	if c.move == nil {
		return minutesBeforeDisproof
	}
	kind := maxKind
	if !c.errors && len(c.kinds) > 0 {
		kind = minKind
		for _, k := range c.kinds {
			if k > kind {
				kind = k
			}
		}
	}
	openLocs := domain.LocCount - c.gm.Grid.Size()
	scanTargets := c.locTargets.Size() + c.unitNumTargets.Size()
	scanPoints := 4 * float64(openLocs) / float64(scanTargets)
	return kindMinutesPerScanPoint[kind] * scanPoints * float64(insight.ScanTargetCount(c.move))
}

func (c *collector) hasMove() bool {
	return c.move != nil
}

func (c *collector) selectedMove() insight.Insight {
	if c.blockNumeralMove != nil {
		return *c.blockNumeralMove
	}
	return c.move
}

// hasVisibleErrors reports whether the errors on the board outnumber the
// direct moves, so a person would notice something is wrong before
// finding a move.
func (c *collector) hasVisibleErrors() bool {
	return c.numDirectErrors > c.numDirectMoves
}

// kindForInsight classifies one insight, capped at max when a kind for
// the same cell is already known.
func (c *collector) kindForInsight(ins insight.Insight, max moveKind, hasMax bool) moveKind {
	if hasMax && max == minKind {
		return max
	}
	if !hasMax {
		max = maxKind
	}
	switch v := ins.(type) {
	case insight.ForcedLoc:
		return kindEasyDirect
	case insight.ForcedNum:
		if c.isEasyForcedNum(v) {
			return kindEasyDirect
		}
		return kindDirect
	case insight.Implication:
		if max <= kindDirect {
			return max
		}
		easy := c.isEasyMove(v.Nub())
		var kind moveKind
		if c.isSimple(v, max) {
			if easy {
				kind = kindSimplyImpliedEasy
			} else {
				kind = kindSimplyImplied
			}
		} else {
			if easy {
				kind = kindImpliedEasy
			} else {
				kind = kindImplied
			}
		}
		if kind > max {
			kind = max
		}
		return kind
	}
	return max
}

// isEasyForcedNum: at most 2 open cells in the target's block besides the
// target, and the numerals assigned in at most one of the row or column
// are needed to force the target.
func (c *collector) isEasyForcedNum(fn insight.ForcedNum) bool {
	target := fn.Loc
	openInBlock := 0
	var inBlock domain.NumSet
	for _, loc := range target.Block().Locs() {
		if loc == target {
			continue
		}
		if c.gm.Grid.Has(loc) {
			inBlock = inBlock.With(c.gm.Grid.Get(loc))
		} else {
			openInBlock++
		}
	}
	if openInBlock > 2 {
		return false
	}
	inRow := c.inLine(target.Row(), target).Minus(inBlock)
	inCol := c.inLine(target.Col(), target).Minus(inBlock)
	return inRow.Minus(inCol).IsEmpty() || inCol.Minus(inRow).IsEmpty()
}

// inLine collects the numerals assigned in the unit outside the target's
// block.
func (c *collector) inLine(u domain.Unit, target domain.Loc) domain.NumSet {
	var set domain.NumSet
	for _, loc := range u.Locs() {
		if loc.Block() != target.Block() && c.gm.Grid.Has(loc) {
			set = set.With(c.gm.Grid.Get(loc))
		}
	}
	return set
}

func (c *collector) isEasyMove(ins insight.Insight) bool {
	switch v := ins.(type) {
	case insight.ForcedLoc:
		return true
	case insight.ForcedNum:
		return c.isEasyForcedNum(v)
	}
	return false
}

// isSimple reports whether the implication still works when stripped to
// its simple antecedents. The test is skipped when max already answers.
func (c *collector) isSimple(impl insight.Implication, max moveKind) bool {
	if max <= kindSimplyImplied {
		return true
	}
	_, ok := minimizeForSimplicityTest(c.gm, impl)
	return ok
}

// Simple antecedents are overlaps and hidden sets confined to a block
// with at most 3 cells.
func isSimpleAntecedent(ins insight.Insight) bool {
	switch v := ins.(type) {
	case insight.Overlap:
		return true
	case insight.LockedSet:
		return !v.Naked && v.Locs.Unit.Type() == domain.BlockType && v.Locs.Size() <= 3
	}
	return false
}

// minimizeForSimplicityTest rebuilds the implication from only its simple
// antecedents, recursively through nested implications. It reports false
// when the consequent no longer follows.
func minimizeForSimplicityTest(gm insight.GridMarks, impl insight.Implication) (insight.Insight, bool) {
	consequent := impl.Consequent
	if nested, ok := consequent.(insight.Implication); ok {
		reduced, ok := minimizeForSimplicityTest(
			gm.Builder().ApplyAll(impl.Antecedents).Build(), nested)
		if !ok {
			return nil, false
		}
		consequent = reduced
	}
	var simple []insight.Insight
	for _, a := range impl.Antecedents {
		if isSimpleAntecedent(a) {
			simple = append(simple, a)
		}
	}
	if consequent.IsImpliedBy(gm.Builder().ApplyAll(simple).Build()) {
		return insight.Implication{Antecedents: simple, Consequent: consequent}, true
	}
	return nil, false
}
