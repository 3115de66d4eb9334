package insight

import (
	"testing"

	"svw.info/sudoku-insight/internal/domain"
)

func TestPatternIDs(t *testing.T) {
	if got := ConflictPattern(domain.Row(0)).String(); got != "Conflict:LINE" {
		t.Errorf("row conflict = %q", got)
	}
	if got := ConflictPattern(domain.Block(2)).String(); got != "Conflict:BLOCK" {
		t.Errorf("block conflict = %q", got)
	}
	if got := LastLocPattern(domain.Col(5)).String(); got != "LastLoc:LINE" {
		t.Errorf("last location = %q", got)
	}
}

func TestParsePattern(t *testing.T) {
	for _, s := range []string{
		"Conflict:BLOCK",
		"BarredLoc:2,3,1",
		"ForcedLoc:LINE,4,1",
		"HiddenSet:BLOCK,3,5,2",
	} {
		p, err := ParsePattern(s)
		if err != nil {
			t.Errorf("ParsePattern(%q): %v", s, err)
			continue
		}
		if got := p.String(); got != s {
			t.Errorf("round trip of %q = %q", s, got)
		}
	}
	for _, s := range []string{"", "NoColon", ":LINE", "ForcedLoc:wide"} {
		if _, err := ParsePattern(s); err == nil {
			t.Errorf("ParsePattern(%q) succeeded", s)
		}
	}
}

func TestForcedNumPattern(t *testing.T) {
	// Five numerals assigned in the block of (1, 1), two more in its row
	// outside the block, one in its column: eight exclusions, three from
	// lines only, one of them unique to the column.
	g := domain.NewGridBuilder().
		Put(domain.LocAt(1, 0), 1).
		Put(domain.LocAt(1, 1), 2).
		Put(domain.LocAt(1, 2), 3).
		Put(domain.LocAt(2, 1), 4).
		Put(domain.LocAt(2, 2), 5).
		Put(domain.LocAt(0, 4), 6).
		Put(domain.LocAt(0, 7), 7).
		Put(domain.LocAt(4, 0), 8).
		Build()
	loc := domain.LocAt(0, 0)
	if set := New(g).Marks.PossibleNums(loc); set.Size() != 1 || set.Get(0) != 9 {
		t.Fatalf("fixture broken: candidates at %v = %v", loc, set)
	}
	if got := ForcedNumPattern(&g, loc).String(); got != "ForcedNum:0,3,1" {
		t.Errorf("pattern = %q, want ForcedNum:0,3,1", got)
	}
}

func TestForcedLocPattern(t *testing.T) {
	// Row 1 is open in its last three cells; the 7s at (5, 7) and (7, 8)
	// force 7 into (1, 9). Neither open non-target cell is implicitly
	// barred, and the target never counts.
	b := domain.NewGridBuilder()
	for col := 0; col < 6; col++ {
		b.Put(domain.LocAt(0, col), domain.NumeralOf(col))
	}
	b.Put(domain.LocAt(4, 6), 7)
	b.Put(domain.LocAt(6, 7), 7)
	g := b.Build()
	if got := ForcedLocPattern(&g, domain.Row(0), 7).String(); got != "ForcedLoc:LINE,3,0" {
		t.Errorf("pattern = %q, want ForcedLoc:LINE,3,0", got)
	}
}

func TestOverlapPattern(t *testing.T) {
	g := domain.NewGridBuilder().
		Put(domain.LocAt(1, 8), 1).
		Put(domain.LocAt(2, 5), 1).
		Build()
	got := OverlapPattern(&g, domain.Block(0), domain.Row(0), 1).String()
	if got != "Overlap:BLOCK,6,0" {
		t.Errorf("pattern = %q, want Overlap:BLOCK,6,0", got)
	}
}

func TestNakedSetPattern(t *testing.T) {
	b := domain.NewGridBuilder()
	for col := 3; col < 9; col++ {
		b.Put(domain.LocAt(0, col), domain.NumeralOf(col))
	}
	b.Put(domain.LocAt(4, 0), 3)
	b.Put(domain.LocAt(5, 1), 3)
	g := b.Build()
	locs := domain.UnitSubset{Unit: domain.Row(0)}.
		With(domain.LocAt(0, 0)).
		With(domain.LocAt(0, 1))
	got := NakedSetPattern(&g, domain.NumSetOf(1, 2), locs).String()
	if got != "NakedSet:LINE,2,1,0" {
		t.Errorf("pattern = %q, want NakedSet:LINE,2,1,0", got)
	}
}

func TestPatternOfDispatch(t *testing.T) {
	g := mustParse(t, classicSolved)
	missing := domain.LocAt(4, 4)
	open := g.Builder().Remove(missing).Build()

	fl := ForcedLoc{Unit: missing.Row(), Num: open.Get(missing), Loc: missing}
	p, ok := PatternOf(&open, fl)
	if !ok || p.String() != "LastLoc:LINE" {
		t.Errorf("80-clue forced location = %q, %v", p, ok)
	}

	im := Implication{
		Antecedents: []Insight{Overlap{Unit: domain.Block(0), Num: 1, Extra: domain.UnitSubset{Unit: domain.Row(0), Bits: 0o070}}},
		Consequent:  ForcedNum{Loc: missing, Num: open.Get(missing)},
	}
	if _, ok := PatternOf(&open, im); ok {
		t.Error("molecules have no single pattern")
	}
	if got := len(Patterns(&open, im)); got != 2 {
		t.Errorf("molecule atom patterns = %d, want 2", got)
	}
}
