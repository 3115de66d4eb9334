package domain

import "testing"

const sampleFlat = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"

func TestParseGridRoundTrip(t *testing.T) {
	g, err := ParseGrid(sampleFlat)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Flat(); got != sampleFlat {
		t.Errorf("round trip:\n got %s\nwant %s", got, sampleFlat)
	}
	again, err := ParseGrid(g.String())
	if err != nil {
		t.Fatal(err)
	}
	if again != g {
		t.Error("parsing the pretty form should give the same grid")
	}
}

func TestParseGridIgnoresNoise(t *testing.T) {
	noisy := "5 3|..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
	g, err := ParseGrid(noisy)
	if err != nil {
		t.Fatal(err)
	}
	if g.Flat() != sampleFlat {
		t.Error("separators should be ignored")
	}
}

func TestParseGridBadLength(t *testing.T) {
	if _, err := ParseGrid("123"); err == nil {
		t.Error("short input should fail")
	}
	if _, err := ParseGrid(sampleFlat + "5"); err == nil {
		t.Error("long input should fail")
	}
}

func TestGridBuilder(t *testing.T) {
	g, _ := ParseGrid(sampleFlat)
	b := g.Builder()
	b.Put(LocAt(0, 2), 4)
	built := b.Build()
	if g.Get(LocAt(0, 2)) != 0 {
		t.Error("building must not mutate the source grid")
	}
	if built.Get(LocAt(0, 2)) != 4 {
		t.Error("built grid missing the edit")
	}
	b.Remove(LocAt(0, 2))
	if built.Get(LocAt(0, 2)) != 4 {
		t.Error("later edits must not alias an earlier build")
	}
}

func TestBrokenLocs(t *testing.T) {
	b := NewGridBuilder()
	b.Put(LocAt(3, 1), 5).Put(LocAt(3, 6), 5)
	g := b.Build()
	broken := g.BrokenLocs()
	if broken.Size() != 2 {
		t.Fatalf("broken size = %d, want 2", broken.Size())
	}
	if !broken.Has(LocAt(3, 1)) || !broken.Has(LocAt(3, 6)) {
		t.Error("wrong broken cells")
	}
	if g.IsSolved() {
		t.Error("broken grid cannot be solved")
	}
}
