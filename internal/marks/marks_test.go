package marks

import (
	"math/rand"
	"testing"

	"svw.info/sudoku-insight/internal/domain"
)

const sampleFlat = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"

// checkConsistent verifies the cell view and unit-numeral view agree: a
// numeral is a candidate at a cell iff each containing unit's pair set
// holds the cell's position.
func checkConsistent(t *testing.T, m *Marks) {
	t.Helper()
	for _, loc := range domain.AllLocs() {
		for _, num := range domain.AllNumerals() {
			has := m.PossibleNums(loc).Has(num)
			for tp := domain.RowType; tp <= domain.BlockType; tp++ {
				un := domain.UnitNumOf(loc.Unit(tp), num)
				inUnit := m.PossibleLocs(un).Has(loc)
				if has != inUnit {
					t.Fatalf("views disagree at %v num %v unit %v: cell %v, unit %v",
						loc, num, un.Unit, has, inUnit)
				}
			}
		}
	}
}

func TestNewAllOpen(t *testing.T) {
	m := New()
	for _, loc := range domain.AllLocs() {
		if m.PossibleNums(loc) != domain.AllNums {
			t.Fatalf("%v not fully open", loc)
		}
	}
	checkConsistent(t, m)
}

func TestAssignBasics(t *testing.T) {
	b := NewBuilder()
	loc := domain.LocAt(2, 3)
	if !b.Assign(domain.AssignmentOf(loc, 7)) {
		t.Fatal("assign on a fresh store must succeed")
	}
	m := b.Build()
	if m.PossibleNums(loc) != domain.NumSetOf(7) {
		t.Errorf("cell candidates = %v", m.PossibleNums(loc))
	}
	if m.AssignedNum(loc) != 7 || !m.HasAssignment(loc) {
		t.Error("assignment fields not recorded")
	}
	for _, peer := range loc.Peers() {
		if m.PossibleNums(peer).Has(7) {
			t.Errorf("peer %v still allows 7", peer)
		}
	}
	if m.UnassignedNums(loc.Row()).Has(7) {
		t.Error("7 still unassigned in the row")
	}
	if m.UnassignedLocs(loc.Block()).Has(loc) {
		t.Error("cell still counted open in its block")
	}
	checkConsistent(t, m)
}

func TestConflictSetsError(t *testing.T) {
	b := NewBuilder()
	b.Assign(domain.AssignmentOf(domain.LocAt(0, 0), 5))
	if b.Assign(domain.AssignmentOf(domain.LocAt(0, 4), 5)) {
		t.Fatal("conflicting assign must fail")
	}
	if !b.Build().HasErrors() {
		t.Fatal("error flag must be set")
	}
}

func TestErrorFlagMonotonic(t *testing.T) {
	b := NewBuilder()
	b.Assign(domain.AssignmentOf(domain.LocAt(0, 0), 5))
	b.Assign(domain.AssignmentOf(domain.LocAt(0, 4), 5))
	b.Assign(domain.AssignmentOf(domain.LocAt(8, 8), 1))
	if !b.Build().HasErrors() {
		t.Fatal("error flag must survive later successful mutations")
	}
}

func TestAssignThenEliminate(t *testing.T) {
	b := NewBuilder()
	loc := domain.LocAt(4, 4)
	b.Assign(domain.AssignmentOf(loc, 3))
	if b.Eliminate(domain.AssignmentOf(loc, 3)) {
		t.Fatal("eliminating the assigned numeral must report failure")
	}
	if !b.Build().HasErrors() {
		t.Fatal("store must be error-flagged, never silently inconsistent")
	}
}

func TestBuilderCopyOnWrite(t *testing.T) {
	b := NewBuilder()
	b.Assign(domain.AssignmentOf(domain.LocAt(0, 0), 5))
	first := b.Build()
	b.Assign(domain.AssignmentOf(domain.LocAt(8, 8), 5))
	second := b.Build()
	if first.HasAssignment(domain.LocAt(8, 8)) {
		t.Fatal("published snapshot changed by a later mutation")
	}
	if !second.HasAssignment(domain.LocAt(0, 0)) || !second.HasAssignment(domain.LocAt(8, 8)) {
		t.Fatal("second snapshot missing state")
	}
}

func TestRandomOpsStayConsistent(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	b := NewBuilder()
	for i := 0; i < 200; i++ {
		loc := domain.Loc(rnd.Intn(domain.LocCount))
		num := domain.NumeralOf(rnd.Intn(9))
		if rnd.Intn(3) == 0 {
			b.Assign(domain.AssignmentOf(loc, num))
		} else {
			b.Eliminate(domain.AssignmentOf(loc, num))
		}
	}
	checkConsistent(t, b.Build())
}

func TestRecursivePropagationSolves(t *testing.T) {
	g, err := domain.ParseGrid(sampleFlat)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder()
	if !b.AssignAllRecursively(g) {
		t.Fatal("valid puzzle must propagate cleanly")
	}
	m := b.Build()
	checkConsistent(t, m)
	if m.HasErrors() {
		t.Fatal("no errors expected")
	}
	// The classic sample is solved outright by singleton propagation.
	if !m.IsComplete() {
		t.Fatal("expected propagation to complete the sample grid")
	}
	solved := m.Grid()
	if !solved.IsSolved() {
		t.Fatalf("propagated grid not solved:\n%v", &solved)
	}
	for _, loc := range domain.AllLocs() {
		if n := g.Get(loc); n != 0 && solved.Get(loc) != n {
			t.Fatalf("clue at %v changed", loc)
		}
	}
}

func TestRecursivePropagationDetectsContradiction(t *testing.T) {
	b := NewBuilder()
	if !b.AssignRecursively(domain.AssignmentOf(domain.LocAt(0, 0), 5)) {
		t.Fatal("first assign fine")
	}
	if b.AssignRecursively(domain.AssignmentOf(domain.LocAt(0, 8), 5)) {
		t.Fatal("same numeral twice in a row must fail")
	}
	if !b.Build().HasErrors() {
		t.Fatal("error flag expected")
	}
}
