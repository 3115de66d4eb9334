package insight

import "svw.info/sudoku-insight/internal/domain"

// Overlap says that within Unit, all possible cells for Num lie in the
// overlap with Extra's unit, so Num can be eliminated from the rest of
// that unit. Extra holds exactly the cells being eliminated. Identity is
// the unit pair plus the numeral; Extra does not distinguish overlaps.
type Overlap struct {
	Unit  domain.Unit
	Num   domain.Numeral
	Extra domain.UnitSubset
}

func (o Overlap) Type() Type { return TypeOverlap }

func (o Overlap) ImpliedAssignment() (domain.Assignment, bool) {
	return domain.Assignment{}, false
}

func (o Overlap) Eliminations() []domain.Assignment {
	out := make([]domain.Assignment, 0, o.Extra.Size())
	for _, loc := range o.Extra.Locs() {
		out = append(out, domain.AssignmentOf(loc, o.Num))
	}
	return out
}

func (o Overlap) IsImpliedBy(gm GridMarks) bool {
	set := gm.Marks.PossibleLocs(domain.UnitNumOf(o.Unit, o.Num))
	for _, loc := range set.Locs() {
		if !o.Extra.Unit.Contains(loc) {
			return false
		}
	}
	return true
}

func (o Overlap) MightBeRevealedByElimination(elim domain.Assignment) bool {
	return elim.Num == o.Num && o.Unit.Contains(elim.Loc) && !o.Extra.Unit.Contains(elim.Loc)
}

func (o Overlap) Nub() Insight { return o }

func (o Overlap) AddScanTargets(locs *domain.LocSet, uns *domain.UnitNumSet) {
	uns.Add(domain.UnitNumOf(o.Unit, o.Num))
	uns.Add(domain.UnitNumOf(o.Extra.Unit, o.Num))
}

func (o Overlap) String() string {
	return o.Num.String() + " in " + o.Unit.String() + " ^ " + o.Extra.Unit.String()
}

func (o Overlap) apply(b *Builder) {
	for _, loc := range o.Extra.Locs() {
		b.Eliminate(domain.AssignmentOf(loc, o.Num))
	}
}

// LockedSet is a set of numerals and a same-sized set of cells in one unit
// such that each numeral must land on one of the cells. A naked set
// eliminates its numerals from the rest of the unit; a hidden set
// eliminates the remaining numerals from its cells.
type LockedSet struct {
	Nums  domain.NumSet
	Locs  domain.UnitSubset
	Naked bool
}

func (ls LockedSet) Type() Type { return TypeLockedSet }

func (ls LockedSet) ImpliedAssignment() (domain.Assignment, bool) {
	return domain.Assignment{}, false
}

func (ls LockedSet) Eliminations() []domain.Assignment {
	nums := ls.Nums
	locs := ls.Locs.Not()
	if !ls.Naked {
		nums = ls.Nums.Not()
		locs = ls.Locs
	}
	var out []domain.Assignment
	for _, num := range nums.Nums() {
		for _, loc := range locs.Locs() {
			out = append(out, domain.AssignmentOf(loc, num))
		}
	}
	return out
}

func (ls LockedSet) IsImpliedBy(gm GridMarks) bool {
	if ls.Naked {
		for _, loc := range ls.Locs.Locs() {
			if !gm.Marks.PossibleNums(loc).IsSubsetOf(ls.Nums) {
				return false
			}
		}
		return true
	}
	for _, num := range ls.Nums.Nums() {
		set := gm.Marks.PossibleLocs(domain.UnitNumOf(ls.Locs.Unit, num))
		if !set.IsSubsetOf(ls.Locs) {
			return false
		}
	}
	return true
}

func (ls LockedSet) MightBeRevealedByElimination(elim domain.Assignment) bool {
	if ls.Naked {
		return ls.Locs.Has(elim.Loc)
	}
	return ls.Nums.Has(elim.Num) && ls.Locs.Unit.Contains(elim.Loc) && !ls.Locs.Has(elim.Loc)
}

func (ls LockedSet) Nub() Insight { return ls }

func (ls LockedSet) AddScanTargets(locs *domain.LocSet, uns *domain.UnitNumSet) {
	if ls.Naked {
		for _, loc := range ls.Locs.Locs() {
			locs.Add(loc)
		}
		return
	}
	for _, num := range ls.Nums.Nums() {
		uns.Add(domain.UnitNumOf(ls.Locs.Unit, num))
	}
}

func (ls LockedSet) String() string {
	kind := "hidden"
	if ls.Naked {
		kind = "naked"
	}
	return kind + " " + ls.Nums.String() + " in " + ls.Locs.Unit.String() + " " + ls.Locs.String()
}

func (ls LockedSet) apply(b *Builder) {
	for _, a := range ls.Eliminations() {
		b.Eliminate(a)
	}
}
