package insight

import (
	"testing"

	"svw.info/sudoku-insight/internal/domain"
)

const classicFlat = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"

func mustParse(t *testing.T, s string) domain.Grid {
	t.Helper()
	g, err := domain.ParseGrid(s)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	return g
}

func TestNewGridMarks(t *testing.T) {
	gm := New(mustParse(t, classicFlat))
	if gm.HasErrors {
		t.Fatal("clean puzzle reported errors")
	}
	loc := domain.LocAt(0, 0)
	set := gm.Marks.PossibleNums(loc)
	if set.Size() != 1 || set.Get(0) != 5 {
		t.Errorf("candidates at %v = %v, want {5}", loc, set)
	}
}

func TestConflictValue(t *testing.T) {
	g := domain.NewGridBuilder().
		Put(domain.LocAt(2, 0), 5).
		Put(domain.LocAt(2, 7), 5).
		Build()
	gm := New(g)
	if !gm.HasErrors {
		t.Fatal("duplicate 5s not flagged")
	}
	locs := domain.UnitSubset{Unit: domain.Row(2)}.
		With(domain.LocAt(2, 0)).
		With(domain.LocAt(2, 7))
	c := Conflict{Num: 5, Locs: locs}
	if !c.IsImpliedBy(gm) {
		t.Error("conflict not implied by the grid that contains it")
	}
	if c.MightBeRevealedByElimination(domain.AssignmentOf(domain.LocAt(2, 3), 5)) {
		t.Error("conflicts cannot come from eliminations")
	}
	b := gm.Builder().Apply(c)
	if !b.HasErrors() {
		t.Error("applying a conflict must keep the error flag")
	}
}

func TestForcedInsightsApply(t *testing.T) {
	gm := New(mustParse(t, classicFlat))
	fl := ForcedLoc{Unit: domain.Row(0), Num: 4, Loc: domain.LocAt(0, 2)}
	a, ok := fl.ImpliedAssignment()
	if !ok || a.Loc != domain.LocAt(0, 2) || a.Num != 4 {
		t.Fatalf("implied assignment = %v, %v", a, ok)
	}
	next := gm.Builder().Apply(fl).Build()
	if next.Grid.Get(domain.LocAt(0, 2)) != 4 {
		t.Error("forced location not written to the grid")
	}
	if next.HasErrors {
		t.Error("legal move flagged as error")
	}
}

func TestLockedSetEliminations(t *testing.T) {
	locs := domain.UnitSubset{Unit: domain.Row(0)}.
		With(domain.LocAt(0, 0)).
		With(domain.LocAt(0, 1))
	nums := domain.NumSetOf(1, 2)

	naked := LockedSet{Nums: nums, Locs: locs, Naked: true}
	if got := len(naked.Eliminations()); got != 14 {
		t.Errorf("naked pair eliminations = %d, want 14", got)
	}
	for _, e := range naked.Eliminations() {
		if locs.Has(e.Loc) || !nums.Has(e.Num) {
			t.Errorf("unexpected naked elimination %v", e)
		}
	}

	hidden := LockedSet{Nums: nums, Locs: locs, Naked: false}
	if got := len(hidden.Eliminations()); got != 14 {
		t.Errorf("hidden pair eliminations = %d, want 14", got)
	}
	for _, e := range hidden.Eliminations() {
		if !locs.Has(e.Loc) || nums.Has(e.Num) {
			t.Errorf("unexpected hidden elimination %v", e)
		}
	}
}

func TestOverlapValue(t *testing.T) {
	// 1s at (2, 9) and (3, 6) confine block 1's candidates for 1 to row 1.
	g := domain.NewGridBuilder().
		Put(domain.LocAt(1, 8), 1).
		Put(domain.LocAt(2, 5), 1).
		Build()
	gm := New(g)
	extra := domain.UnitSubset{Unit: domain.Row(0)}
	for col := 3; col < 9; col++ {
		extra = extra.With(domain.LocAt(0, col))
	}
	o := Overlap{Unit: domain.Block(0), Num: 1, Extra: extra}
	if !o.IsImpliedBy(gm) {
		t.Error("overlap not implied")
	}
	if got := len(o.Eliminations()); got != 6 {
		t.Errorf("eliminations = %d, want 6", got)
	}
	if o.MightBeRevealedByElimination(domain.AssignmentOf(domain.LocAt(0, 1), 1)) {
		t.Error("eliminations inside the overlapping unit cannot reveal it")
	}
	if !o.MightBeRevealedByElimination(domain.AssignmentOf(domain.LocAt(1, 1), 1)) {
		t.Error("eliminations in the rest of the block can reveal it")
	}
}

func TestDisprovedAssignmentReplay(t *testing.T) {
	// Row 1 leaves (1, 1) and (1, 2) open on {1, 2}; the 2 at (5, 2)
	// restricts (1, 2) to {1}, so assigning 1 at (1, 1) bars (1, 2).
	b := domain.NewGridBuilder()
	for col := 2; col < 9; col++ {
		b.Put(domain.LocAt(0, col), domain.NumeralOf(col))
	}
	b.Put(domain.LocAt(4, 1), 2)
	gm := New(b.Build())

	da := DisprovedAssignment{
		Assignment:     domain.AssignmentOf(domain.LocAt(0, 0), 1),
		ResultingError: BarredLoc{Loc: domain.LocAt(0, 1)},
	}
	if !da.IsImpliedBy(gm) {
		t.Error("disproof did not replay")
	}
	next := gm.Builder().Apply(da).Build()
	if next.Marks.PossibleNums(domain.LocAt(0, 0)).Has(1) {
		t.Error("disproved candidate still present")
	}
	if !da.MightBeRevealedByElimination(domain.AssignmentOf(domain.LocAt(0, 1), 2)) {
		t.Error("reveal filter should delegate to the resulting error")
	}
}

func TestImplicationDelegation(t *testing.T) {
	ant := Overlap{Unit: domain.Block(0), Num: 1, Extra: domain.UnitSubset{Unit: domain.Row(0), Bits: 0o070}}
	fn := ForcedNum{Loc: domain.LocAt(0, 3), Num: 7}
	im := Implication{Antecedents: []Insight{ant}, Consequent: fn}

	if im.Nub() != Insight(fn) {
		t.Errorf("nub = %v, want %v", im.Nub(), fn)
	}
	if a, ok := im.ImpliedAssignment(); !ok || a != domain.AssignmentOf(domain.LocAt(0, 3), 7) {
		t.Errorf("implied assignment = %v, %v", a, ok)
	}
	if im.IsError() {
		t.Error("assignment chain reported as error")
	}
	chain := Implication{Antecedents: []Insight{ant}, Consequent: im}
	if chain.Nub() != Insight(fn) {
		t.Error("nub must unwrap nested implications")
	}
}

func TestScanTargetCount(t *testing.T) {
	fl := ForcedLoc{Unit: domain.Row(0), Num: 4, Loc: domain.LocAt(0, 4)}
	if got := ScanTargetCount(fl); got != 1 {
		t.Errorf("ForcedLoc targets = %d, want 1", got)
	}
	o := Overlap{Unit: domain.Block(0), Num: 1, Extra: domain.UnitSubset{Unit: domain.Row(0), Bits: 0o070}}
	if got := ScanTargetCount(o); got != 2 {
		t.Errorf("Overlap targets = %d, want 2", got)
	}
	im := Implication{Antecedents: []Insight{o}, Consequent: fl}
	if got := ScanTargetCount(im); got != 3 {
		t.Errorf("Implication targets = %d, want 3", got)
	}
}
