package insight

import (
	"context"
	"sort"

	"svw.info/sudoku-insight/internal/domain"
)

// Callback receives each insight as it is found. Returning false stops
// the analysis early.
type Callback func(ins Insight) bool

const maxSetSize = 4

// Analyze walks a board state in phases of increasing sophistication:
// errors when the state has any, then an elimination fixed point of
// overlaps and locked sets, then the forced moves visible in the settled
// candidates. Insights that only hold after earlier eliminations are
// wrapped in an Implication naming those eliminations as antecedents.
// Returns false if the context was cancelled before the analysis finished.
func Analyze(ctx context.Context, gm GridMarks, take Callback) bool {
	c := &collector{start: gm, take: take, seen: make(map[string]bool)}
	work := gm

	if work.HasErrors {
		if ctx.Err() != nil {
			return false
		}
		findErrors(work, c)
		if c.stopped {
			return true
		}
	}

	for {
		if ctx.Err() != nil {
			return false
		}
		c.found = false
		findOverlaps(work, c)
		if c.stopped {
			return true
		}
		work = c.flush(work)
		findSets(work, c)
		if c.stopped {
			return true
		}
		work = c.flush(work)
		if !c.found {
			break
		}
	}

	if ctx.Err() != nil {
		return false
	}
	findSingletonLocs(work, c)
	if c.stopped {
		return true
	}
	findSingletonNums(work, c)
	return true
}

// collector dedups insights, wraps consequents of earlier eliminations in
// Implications, and batches eliminations to fold into the working state.
type collector struct {
	start   GridMarks
	take    Callback
	seen    map[string]bool
	elims   []Insight
	pending []domain.Assignment
	found   bool
	stopped bool
}

func (c *collector) emit(ins Insight) {
	key := ins.String()
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	out := ins
	if len(c.elims) > 0 && !ins.IsImpliedBy(c.start) {
		if ants := c.antecedents(ins); len(ants) > 0 {
			out = Implication{Antecedents: ants, Consequent: ins}
		}
	}
	if c.take != nil && !c.stopped && !c.take(out) {
		c.stopped = true
	}
	if ins.Type().IsElimination() {
		c.elims = append(c.elims, ins)
		c.pending = append(c.pending, ins.Eliminations()...)
		c.found = true
	}
}

// antecedents picks the earlier eliminations that can have contributed to
// the insight, using the per-variant reveal filter.
func (c *collector) antecedents(ins Insight) []Insight {
	var ants []Insight
	for _, e := range c.elims {
		for _, a := range e.Eliminations() {
			if ins.MightBeRevealedByElimination(a) {
				ants = append(ants, e)
				break
			}
		}
	}
	return ants
}

func (c *collector) flush(work GridMarks) GridMarks {
	if len(c.pending) == 0 {
		return work
	}
	b := work.Builder()
	for _, a := range c.pending {
		b.Eliminate(a)
	}
	c.pending = c.pending[:0]
	return b.Build()
}

func findErrors(gm GridMarks, c *collector) {
	for _, u := range domain.AllUnits() {
		var seen, conflicting domain.NumSet
		for _, loc := range u.Locs() {
			if num := gm.Grid.Get(loc); num != 0 {
				if seen.Has(num) {
					conflicting = conflicting.With(num)
				}
				seen = seen.With(num)
			}
		}
		for _, num := range conflicting.Nums() {
			locs := domain.UnitSubset{Unit: u}
			for _, loc := range u.Locs() {
				if gm.Grid.Get(loc) == num {
					locs = locs.With(loc)
				}
			}
			c.emit(Conflict{Num: num, Locs: locs})
			if c.stopped {
				return
			}
		}
		for _, num := range conflicting.Not().Nums() {
			if gm.Marks.PossibleLocs(domain.UnitNumOf(u, num)).IsEmpty() {
				c.emit(BarredNum{Unit: u, Num: num})
				if c.stopped {
					return
				}
			}
		}
	}
	for _, loc := range domain.AllLocs() {
		if gm.Marks.PossibleNums(loc).IsEmpty() {
			c.emit(BarredLoc{Loc: loc})
			if c.stopped {
				return
			}
		}
	}
}

// The candidate bit patterns of 2 or 3 cells confined to the intersection
// of two units: block rows and the block segments of rows and columns use
// overlapBits, block columns use overlapBits2 (stride-3 within a block).
var (
	overlapBits  = []uint16{0o007, 0o006, 0o005, 0o003, 0o070, 0o060, 0o050, 0o030, 0o700, 0o600, 0o500, 0o300}
	overlapBits2 = []uint16{0o111, 0o110, 0o101, 0o011, 0o222, 0o220, 0o202, 0o022, 0o444, 0o440, 0o404, 0o044}
)

func init() {
	sort.Slice(overlapBits, func(i, j int) bool { return overlapBits[i] < overlapBits[j] })
	sort.Slice(overlapBits2, func(i, j int) bool { return overlapBits2[i] < overlapBits2[j] })
}

func hasBits(table []uint16, v uint16) bool {
	i := sort.Search(len(table), func(i int) bool { return table[i] >= v })
	return i < len(table) && table[i] == v
}

func findOverlaps(gm GridMarks, c *collector) {
	all := domain.AllUnits()
	rows, cols, blocks := all[0:9], all[9:18], all[18:27]
	for _, num := range domain.AllNumerals() {
		findOverlapsIn(gm, c, num, blocks, domain.RowType, overlapBits)
		findOverlapsIn(gm, c, num, blocks, domain.ColType, overlapBits2)
		findOverlapsIn(gm, c, num, rows, domain.BlockType, overlapBits)
		findOverlapsIn(gm, c, num, cols, domain.BlockType, overlapBits)
		if c.stopped {
			return
		}
	}
}

func findOverlapsIn(gm GridMarks, c *collector, num domain.Numeral,
	units []domain.Unit, overlapping domain.UnitType, table []uint16) {
	for _, u := range units {
		bits := gm.Marks.PossibleLocBits(domain.UnitNumOf(u, num))
		if !hasBits(table, bits) {
			continue
		}
		set := domain.UnitSubset{Unit: u, Bits: bits}
		other := set.Get(0).Unit(overlapping)
		otherSet := gm.Marks.PossibleLocs(domain.UnitNumOf(other, num))
		if otherSet.Size() > set.Size() {
			extra := domain.UnitSubset{Unit: other}
			for _, loc := range otherSet.Locs() {
				if !set.Has(loc) {
					extra = extra.With(loc)
				}
			}
			c.emit(Overlap{Unit: u, Num: num, Extra: extra})
			if c.stopped {
				return
			}
		}
	}
}

// setState tracks the numerals and cells already claimed by a locked set
// in each unit, so supersets of found sets are not reported again.
type setState struct {
	nums [domain.UnitCount]domain.NumSet
	locs [domain.UnitCount]uint16
}

func (s *setState) add(nums domain.NumSet, locs domain.UnitSubset) {
	s.nums[locs.Unit] = s.nums[locs.Unit].Or(nums)
	s.locs[locs.Unit] |= locs.Bits
}

func findSets(gm GridMarks, c *collector) {
	var state setState
	var indices [maxSetSize]int
	for _, u := range domain.AllUnits() {
		for size := 2; size <= maxSetSize; size++ {
			// Hidden sets are typically easier to see than naked ones.
			findHiddenSets(gm, c, &state, u, size, &indices)
			if c.stopped {
				return
			}
			findNakedSets(gm, c, &state, u, size, &indices)
			if c.stopped {
				return
			}
		}
	}
}

func findNakedSets(gm GridMarks, c *collector, state *setState,
	u domain.Unit, size int, indices *[maxSetSize]int) {
	inSets := domain.UnitSubset{Unit: u, Bits: state.locs[u]}
	toCheck := domain.UnitSubset{Unit: u}
	unset := 0
	for _, loc := range u.Locs() {
		possible := gm.Marks.PossibleNums(loc)
		if possible.Size() > 1 {
			unset++
			if possible.Size() <= size && !inSets.Has(loc) {
				toCheck = toCheck.With(loc)
			}
		}
	}
	if toCheck.Size() < size || unset <= size {
		return
	}
	firstSubset(size, indices)
	for {
		var nums domain.NumSet
		used := false
		for i := 0; i < size; i++ {
			loc := toCheck.Get(indices[i])
			nums = nums.Or(gm.Marks.PossibleNums(loc))
			used = used || inSets.Has(loc)
		}
		if !used && nums.Size() == size {
			locs := domain.UnitSubset{Unit: u}
			for i := 0; i < size; i++ {
				locs = locs.With(toCheck.Get(indices[i]))
			}
			state.add(nums, locs)
			c.emit(LockedSet{Nums: nums, Locs: locs, Naked: true})
			if c.stopped {
				return
			}
			inSets = inSets.Or(locs)
		}
		if !nextSubset(size, indices, toCheck.Size()) {
			return
		}
	}
}

func findHiddenSets(gm GridMarks, c *collector, state *setState,
	u domain.Unit, size int, indices *[maxSetSize]int) {
	inSets := state.nums[u]
	var toCheck domain.NumSet
	unset := 0
	for _, num := range domain.AllNumerals() {
		possible := gm.Marks.PossibleLocs(domain.UnitNumOf(u, num))
		if possible.Size() > 1 {
			unset++
			if possible.Size() <= size && !inSets.Has(num) {
				toCheck = toCheck.With(num)
			}
		}
	}
	if toCheck.Size() < size || unset <= size {
		return
	}
	firstSubset(size, indices)
	for {
		locs := domain.UnitSubset{Unit: u}
		used := false
		for i := 0; i < size; i++ {
			num := toCheck.Get(indices[i])
			locs = locs.Or(gm.Marks.PossibleLocs(domain.UnitNumOf(u, num)))
			used = used || inSets.Has(num)
		}
		if !used && locs.Size() == size {
			var nums domain.NumSet
			for i := 0; i < size; i++ {
				nums = nums.With(toCheck.Get(indices[i]))
			}
			state.add(nums, locs)
			c.emit(LockedSet{Nums: nums, Locs: locs, Naked: false})
			if c.stopped {
				return
			}
			inSets = inSets.Or(nums)
		}
		if !nextSubset(size, indices, toCheck.Size()) {
			return
		}
	}
}

func firstSubset(size int, indices *[maxSetSize]int) {
	for i := 0; i < size; i++ {
		indices[i] = i
	}
}

// nextSubset advances indices to the next k-subset of [0, count), in
// lexicographic order. Returns false when exhausted.
func nextSubset(size int, indices *[maxSetSize]int, count int) bool {
	for i := size - 1; i >= 0; i, count = i-1, count-1 {
		indices[i]++
		if indices[i] < count {
			for j := i + 1; j < size; j++ {
				indices[j] = indices[j-1] + 1
			}
			return true
		}
	}
	return false
}

func findSingletonLocs(gm GridMarks, c *collector) {
	for _, u := range domain.AllUnits() {
		for _, num := range domain.AllNumerals() {
			loc, ok := gm.Marks.OnlyPossibleLoc(domain.UnitNumOf(u, num))
			if ok && !gm.Grid.Has(loc) {
				c.emit(ForcedLoc{Unit: u, Num: num, Loc: loc})
				if c.stopped {
					return
				}
			}
		}
	}
}

func findSingletonNums(gm GridMarks, c *collector) {
	for _, loc := range domain.AllLocs() {
		if gm.Grid.Has(loc) {
			continue
		}
		set := gm.Marks.PossibleNums(loc)
		if set.Size() == 1 {
			c.emit(ForcedNum{Loc: loc, Num: set.Get(0)})
			if c.stopped {
				return
			}
		}
	}
}
