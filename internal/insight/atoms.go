package insight

import "svw.info/sudoku-insight/internal/domain"

// Conflict is a set of cells in one unit all assigned the same numeral.
type Conflict struct {
	Num  domain.Numeral
	Locs domain.UnitSubset
}

func (c Conflict) Type() Type { return TypeConflict }

func (c Conflict) ImpliedAssignment() (domain.Assignment, bool) {
	return domain.Assignment{}, false
}

func (c Conflict) Eliminations() []domain.Assignment { return nil }

func (c Conflict) IsImpliedBy(gm GridMarks) bool {
	for _, loc := range c.Locs.Locs() {
		if gm.Grid.Get(loc) != c.Num {
			return false
		}
	}
	return true
}

// Conflicts come from assignments, never from eliminations.
func (c Conflict) MightBeRevealedByElimination(elim domain.Assignment) bool {
	return false
}

func (c Conflict) Nub() Insight { return c }

func (c Conflict) AddScanTargets(locs *domain.LocSet, uns *domain.UnitNumSet) {
	for _, loc := range c.Locs.Locs() {
		locs.Add(loc)
	}
}

func (c Conflict) String() string {
	return "conflict: " + c.Num.String() + " in " + c.Locs.Unit.String() + " " + c.Locs.String()
}

func (c Conflict) apply(b *Builder) {
	b.markError()
}

// BarredLoc is a cell with no candidates left.
type BarredLoc struct {
	Loc domain.Loc
}

func (bl BarredLoc) Type() Type { return TypeBarredLoc }

func (bl BarredLoc) ImpliedAssignment() (domain.Assignment, bool) {
	return domain.Assignment{}, false
}

func (bl BarredLoc) Eliminations() []domain.Assignment { return nil }

func (bl BarredLoc) IsImpliedBy(gm GridMarks) bool {
	return gm.Marks.PossibleNums(bl.Loc).IsEmpty()
}

func (bl BarredLoc) MightBeRevealedByElimination(elim domain.Assignment) bool {
	return elim.Loc == bl.Loc
}

func (bl BarredLoc) Nub() Insight { return bl }

func (bl BarredLoc) AddScanTargets(locs *domain.LocSet, uns *domain.UnitNumSet) {
	locs.Add(bl.Loc)
}

func (bl BarredLoc) String() string {
	return "barred: " + bl.Loc.String()
}

func (bl BarredLoc) apply(b *Builder) {
	b.markError()
}

// BarredNum is a numeral with no possible cell left in a unit.
type BarredNum struct {
	Unit domain.Unit
	Num  domain.Numeral
}

func (bn BarredNum) Type() Type { return TypeBarredNum }

func (bn BarredNum) ImpliedAssignment() (domain.Assignment, bool) {
	return domain.Assignment{}, false
}

func (bn BarredNum) Eliminations() []domain.Assignment { return nil }

func (bn BarredNum) IsImpliedBy(gm GridMarks) bool {
	return gm.Marks.PossibleLocs(domain.UnitNumOf(bn.Unit, bn.Num)).IsEmpty()
}

func (bn BarredNum) MightBeRevealedByElimination(elim domain.Assignment) bool {
	return elim.Num == bn.Num && bn.Unit.Contains(elim.Loc)
}

func (bn BarredNum) Nub() Insight { return bn }

func (bn BarredNum) AddScanTargets(locs *domain.LocSet, uns *domain.UnitNumSet) {
	uns.Add(domain.UnitNumOf(bn.Unit, bn.Num))
}

func (bn BarredNum) String() string {
	return "barred: " + bn.Num.String() + " in " + bn.Unit.String()
}

func (bn BarredNum) apply(b *Builder) {
	b.markError()
}

// ForcedLoc is a numeral with a single possible cell left in a unit.
type ForcedLoc struct {
	Unit domain.Unit
	Num  domain.Numeral
	Loc  domain.Loc
}

func (fl ForcedLoc) Type() Type { return TypeForcedLoc }

func (fl ForcedLoc) ImpliedAssignment() (domain.Assignment, bool) {
	return domain.AssignmentOf(fl.Loc, fl.Num), true
}

func (fl ForcedLoc) Eliminations() []domain.Assignment { return nil }

func (fl ForcedLoc) IsImpliedBy(gm GridMarks) bool {
	loc, ok := gm.Marks.OnlyPossibleLoc(domain.UnitNumOf(fl.Unit, fl.Num))
	return ok && loc == fl.Loc && !gm.Grid.Has(fl.Loc)
}

func (fl ForcedLoc) MightBeRevealedByElimination(elim domain.Assignment) bool {
	return elim.Num == fl.Num && fl.Unit.Contains(elim.Loc)
}

func (fl ForcedLoc) Nub() Insight { return fl }

func (fl ForcedLoc) AddScanTargets(locs *domain.LocSet, uns *domain.UnitNumSet) {
	uns.Add(domain.UnitNumOf(fl.Unit, fl.Num))
}

func (fl ForcedLoc) String() string {
	return fl.Num.String() + " in " + fl.Unit.String() + " -> " + fl.Loc.String()
}

func (fl ForcedLoc) apply(b *Builder) {
	b.Assign(domain.AssignmentOf(fl.Loc, fl.Num))
}

// ForcedNum is a cell with a single candidate left.
type ForcedNum struct {
	Loc domain.Loc
	Num domain.Numeral
}

func (fn ForcedNum) Type() Type { return TypeForcedNum }

func (fn ForcedNum) ImpliedAssignment() (domain.Assignment, bool) {
	return domain.AssignmentOf(fn.Loc, fn.Num), true
}

func (fn ForcedNum) Eliminations() []domain.Assignment { return nil }

func (fn ForcedNum) IsImpliedBy(gm GridMarks) bool {
	set := gm.Marks.PossibleNums(fn.Loc)
	return set.Size() == 1 && set.Get(0) == fn.Num && !gm.Grid.Has(fn.Loc)
}

func (fn ForcedNum) MightBeRevealedByElimination(elim domain.Assignment) bool {
	return elim.Loc == fn.Loc
}

func (fn ForcedNum) Nub() Insight { return fn }

func (fn ForcedNum) AddScanTargets(locs *domain.LocSet, uns *domain.UnitNumSet) {
	locs.Add(fn.Loc)
}

func (fn ForcedNum) String() string {
	return fn.Loc.String() + " <- " + fn.Num.String()
}

func (fn ForcedNum) apply(b *Builder) {
	b.Assign(domain.AssignmentOf(fn.Loc, fn.Num))
}
