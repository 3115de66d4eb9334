// Package marks implements the bit-packed constraint store: for every cell
// the set of numerals still possible there, and for every (unit, numeral)
// pair the set of positions still eligible within the unit. The two views
// are kept mutually consistent by construction.
package marks

import (
	"math/bits"

	"svw.info/sudoku-insight/internal/domain"
)

// Slot layout. Cell slots hold 9 candidate bits plus a 4-bit assigned
// numeral; unit-numeral slots hold 9 position bits plus a 4-bit assigned
// position (stored +1). Two trailing slot groups track, per unit, the
// still-unassigned numerals and positions. The error bit lives in the top
// bit of slot 0 and is monotonic within one Marks value.
const (
	locBase      = 0
	unitNumBase  = locBase + domain.LocCount
	unitNumsBase = unitNumBase + domain.UnitNumCount
	unitLocsBase = unitNumsBase + domain.UnitCount
	dataSize     = unitLocsBase + domain.UnitCount

	candMask      = 0x1ff
	assignedShift = 9
	assignedMask  = 0xf << assignedShift
	errorsBit     = 1 << 15
)

// Marks is an immutable snapshot of the constraint store. All mutation
// goes through a Builder.
type Marks struct {
	data [dataSize]uint16
}

// New returns a store with every candidate still open.
func New() *Marks {
	var m Marks
	for i := locBase; i < unitNumsBase; i++ {
		m.data[i] = candMask
	}
	for i := unitNumsBase; i < dataSize; i++ {
		m.data[i] = candMask
	}
	return &m
}

// PossibleNums returns the candidate numerals for a cell.
func (m *Marks) PossibleNums(loc domain.Loc) domain.NumSet {
	return domain.NumSet(m.data[locBase+int(loc)] & candMask)
}

// PossibleLocs returns the candidate positions for a (unit, numeral) pair.
func (m *Marks) PossibleLocs(un domain.UnitNum) domain.UnitSubset {
	return domain.UnitSubset{Unit: un.Unit, Bits: m.data[unitNumBase+un.Index()] & candMask}
}

// PossibleLocBits returns the raw position bits for a (unit, numeral) pair.
func (m *Marks) PossibleLocBits(un domain.UnitNum) uint16 {
	return m.data[unitNumBase+un.Index()] & candMask
}

// NumPossibleLocs counts the candidate positions for a (unit, numeral) pair.
func (m *Marks) NumPossibleLocs(un domain.UnitNum) int {
	return bits.OnesCount16(m.data[unitNumBase+un.Index()] & candMask)
}

// OnlyPossibleLoc returns the single remaining position for the pair, if
// exactly one remains.
func (m *Marks) OnlyPossibleLoc(un domain.UnitNum) (domain.Loc, bool) {
	b := m.data[unitNumBase+un.Index()] & candMask
	if bits.OnesCount16(b) != 1 {
		return 0, false
	}
	return un.Unit.At(bits.TrailingZeros16(b)), true
}

// AssignedNum returns the numeral recorded as assigned at loc, zero if none.
func (m *Marks) AssignedNum(loc domain.Loc) domain.Numeral {
	return domain.Numeral((m.data[locBase+int(loc)] & assignedMask) >> assignedShift)
}

// HasAssignment tells whether loc has a recorded assignment.
func (m *Marks) HasAssignment(loc domain.Loc) bool {
	return m.data[locBase+int(loc)]&assignedMask != 0
}

// UnitHasAssignment tells whether the (unit, numeral) pair has a recorded
// assignment.
func (m *Marks) UnitHasAssignment(un domain.UnitNum) bool {
	return m.data[unitNumBase+un.Index()]&assignedMask != 0
}

// UnassignedNums returns the numerals not yet assigned within the unit.
func (m *Marks) UnassignedNums(u domain.Unit) domain.NumSet {
	return domain.NumSet(m.data[unitNumsBase+int(u)] & candMask)
}

// UnassignedLocs returns the positions not yet assigned within the unit.
func (m *Marks) UnassignedLocs(u domain.Unit) domain.UnitSubset {
	return domain.UnitSubset{Unit: u, Bits: m.data[unitLocsBase+int(u)] & candMask}
}

// HasErrors tells whether any candidate set emptied while building this
// value or an ancestor.
func (m *Marks) HasErrors() bool {
	return m.data[locBase]&errorsBit != 0
}

// NumOpenLocs counts the cells without a recorded assignment.
func (m *Marks) NumOpenLocs() int {
	n := 0
	for i := 0; i < domain.LocCount; i++ {
		if m.data[locBase+i]&assignedMask == 0 {
			n++
		}
	}
	return n
}

// Grid returns the cells whose candidate sets are singletons, as a grid.
// After a successful recursive assignment pass this is the solved board.
func (m *Marks) Grid() domain.Grid {
	b := domain.NewGridBuilder()
	for _, loc := range domain.AllLocs() {
		set := m.PossibleNums(loc)
		if set.Size() == 1 {
			b.Put(loc, set.Get(0))
		}
	}
	return b.Build()
}

// AssignedGrid returns the cells with recorded assignments, as a grid.
func (m *Marks) AssignedGrid() domain.Grid {
	b := domain.NewGridBuilder()
	for _, loc := range domain.AllLocs() {
		if n := m.AssignedNum(loc); n != 0 {
			b.Put(loc, n)
		}
	}
	return b.Build()
}

// IsComplete tells whether every cell is down to one candidate.
func (m *Marks) IsComplete() bool {
	for i := 0; i < domain.LocCount; i++ {
		if bits.OnesCount16(m.data[locBase+i]&candMask) != 1 {
			return false
		}
	}
	return true
}

// Builder returns a builder sharing this value's backing array until the
// first mutation.
func (m *Marks) Builder() *Builder {
	return &Builder{m: m, built: true}
}

// Builder mutates a Marks with clone-on-first-write semantics: after each
// Build, the next mutation clones the backing array, so discarded branches
// never pay for a copy.
type Builder struct {
	m     *Marks
	built bool
}

// NewBuilder returns a builder over a fresh all-open store.
func NewBuilder() *Builder {
	return &Builder{m: New()}
}

// Snapshot gives read access to the builder's current state without
// publishing it.
func (b *Builder) Snapshot() *Marks {
	return b.m
}

// Build publishes the current state. The returned value is immutable;
// further builder mutations operate on a clone.
func (b *Builder) Build() *Marks {
	b.built = true
	return b.m
}

func (b *Builder) mut() *Marks {
	if b.built {
		clone := *b.m
		b.m = &clone
		b.built = false
	}
	return b.m
}

func (b *Builder) setError() {
	b.mut().data[locBase] |= errorsBit
}

// HasErrors reports the error flag of the state under construction.
func (b *Builder) HasErrors() bool {
	return b.m.HasErrors()
}

// Assign records num at loc: the cell's candidates collapse to the
// singleton, the numeral is eliminated from all 20 peers, and the
// assignment fields and per-unit bookkeeping are updated. Returns false,
// with the error flag set, if any candidate set empties.
func (b *Builder) Assign(a domain.Assignment) bool {
	loc, num := a.Loc, a.Num
	ok := true
	for _, peer := range loc.Peers() {
		ok = b.Eliminate(domain.AssignmentOf(peer, num)) && ok
	}
	for _, other := range b.m.PossibleNums(loc).Without(num).Nums() {
		ok = b.Eliminate(domain.AssignmentOf(loc, other)) && ok
	}
	m := b.mut()
	slot := &m.data[locBase+int(loc)]
	*slot = (*slot &^ assignedMask) | uint16(num)<<assignedShift
	for t := domain.RowType; t <= domain.BlockType; t++ {
		u := loc.Unit(t)
		pos := loc.IndexIn(t)
		un := domain.UnitNumOf(u, num)
		us := &m.data[unitNumBase+un.Index()]
		*us = (*us &^ assignedMask) | uint16(pos+1)<<assignedShift
		m.data[unitNumsBase+int(u)] &^= uint16(num.Bit())
		m.data[unitLocsBase+int(u)] &^= 1 << pos
	}
	if b.m.PossibleNums(loc) != domain.NumSetOf(num) {
		b.setError()
		return false
	}
	return ok
}

// Eliminate removes num as a candidate at loc, in both views. Returns
// false, with the error flag set, if a candidate set empties.
func (b *Builder) Eliminate(a domain.Assignment) bool {
	loc, num := a.Loc, a.Num
	if !b.m.PossibleNums(loc).Has(num) {
		return true
	}
	m := b.mut()
	m.data[locBase+int(loc)] &^= uint16(num.Bit())
	ok := true
	if m.data[locBase+int(loc)]&candMask == 0 {
		ok = false
	}
	for t := domain.RowType; t <= domain.BlockType; t++ {
		un := domain.UnitNumOf(loc.Unit(t), num)
		slot := &m.data[unitNumBase+un.Index()]
		*slot &^= 1 << loc.IndexIn(t)
		if *slot&candMask == 0 {
			ok = false
		}
	}
	if !ok {
		b.setError()
	}
	return ok
}

// AssignAll assigns every filled cell of the grid. Returns false if the
// givens are inconsistent.
func (b *Builder) AssignAll(g domain.Grid) bool {
	ok := true
	for _, loc := range domain.AllLocs() {
		if n := g.Get(loc); n != 0 {
			ok = b.Assign(domain.AssignmentOf(loc, n)) && ok
		}
	}
	return ok
}

// AssignRecursively assigns num at loc with full propagation: peers losing
// their next-to-last candidate assign the remainder, unit-numerals down to
// one position assign there. Failure short-circuits as false.
func (b *Builder) AssignRecursively(a domain.Assignment) bool {
	loc, num := a.Loc, a.Num
	if !b.m.PossibleNums(loc).Has(num) {
		b.setError()
		return false
	}
	for _, other := range b.m.PossibleNums(loc).Without(num).Nums() {
		if !b.EliminateRecursively(domain.AssignmentOf(loc, other)) {
			return false
		}
	}
	return true
}

// EliminateRecursively removes the candidate and propagates singletons in
// both views. The mutual recursion with AssignRecursively is bounded by
// the 81x9 candidates that can be removed.
func (b *Builder) EliminateRecursively(a domain.Assignment) bool {
	loc, num := a.Loc, a.Num
	if !b.m.PossibleNums(loc).Has(num) {
		return true
	}
	m := b.mut()
	m.data[locBase+int(loc)] &^= uint16(num.Bit())
	remaining := b.m.PossibleNums(loc)
	if remaining.IsEmpty() {
		b.setError()
		return false
	}
	if remaining.Size() == 1 {
		only := remaining.Get(0)
		for _, peer := range loc.Peers() {
			if !b.EliminateRecursively(domain.AssignmentOf(peer, only)) {
				return false
			}
		}
	}
	for t := domain.RowType; t <= domain.BlockType; t++ {
		un := domain.UnitNumOf(loc.Unit(t), num)
		slot := &m.data[unitNumBase+un.Index()]
		*slot &^= 1 << loc.IndexIn(t)
		left := b.m.PossibleLocs(un)
		switch left.Size() {
		case 0:
			b.setError()
			return false
		case 1:
			target := left.Get(0)
			tset := b.m.PossibleNums(target)
			if tset.Size() == 1 {
				if tset.Get(0) != num {
					b.setError()
					return false
				}
			} else if !b.AssignRecursively(domain.AssignmentOf(target, num)) {
				return false
			}
		}
	}
	return true
}

// AssignAllRecursively assigns every filled cell with propagation.
func (b *Builder) AssignAllRecursively(g domain.Grid) bool {
	for _, loc := range domain.AllLocs() {
		if n := g.Get(loc); n != 0 {
			if !b.AssignRecursively(domain.AssignmentOf(loc, n)) {
				return false
			}
		}
	}
	return true
}
