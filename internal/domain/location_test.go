package domain

import "testing"

func TestLocUnits(t *testing.T) {
	loc := LocAt(4, 7)
	if loc.Row() != Row(4) || loc.Col() != Col(7) || loc.Block() != Block(5) {
		t.Fatalf("units of %v: %v %v %v", loc, loc.Row(), loc.Col(), loc.Block())
	}
	if loc.IndexIn(RowType) != 7 || loc.IndexIn(ColType) != 4 {
		t.Errorf("row/col positions wrong for %v", loc)
	}
}

func TestPeers(t *testing.T) {
	for _, loc := range AllLocs() {
		peers := loc.Peers()
		if len(peers) != PeerCount {
			t.Fatalf("%v has %d peers", loc, len(peers))
		}
		seen := map[Loc]bool{}
		for _, p := range peers {
			if p == loc {
				t.Fatalf("%v is its own peer", loc)
			}
			if seen[p] {
				t.Fatalf("%v has duplicate peer %v", loc, p)
			}
			seen[p] = true
			if p.Row() != loc.Row() && p.Col() != loc.Col() && p.Block() != loc.Block() {
				t.Fatalf("%v and %v share no unit", loc, p)
			}
		}
	}
}

func TestUnitMembership(t *testing.T) {
	for _, u := range AllUnits() {
		for i, loc := range u.Locs() {
			if !u.Contains(loc) {
				t.Fatalf("%v should contain %v", u, loc)
			}
			if got := u.IndexOf(loc); got != i {
				t.Fatalf("%v.IndexOf(%v) = %d, want %d", u, loc, got, i)
			}
		}
	}
}

func TestUnitIntersect(t *testing.T) {
	got := Row(0).Intersect(Block(0))
	if got.Size() != 3 {
		t.Fatalf("row 1 x block 1 overlap size = %d", got.Size())
	}
	for _, loc := range got.Locs() {
		if loc.RowIndex() != 0 || loc.ColIndex() > 2 {
			t.Errorf("unexpected overlap member %v", loc)
		}
	}
	if !Row(0).Intersect(Col(8)).Has(LocAt(0, 8)) {
		t.Error("row x column overlap missing the shared cell")
	}
	if s := Row(0).Subtract(Block(0)); s.Size() != 6 {
		t.Errorf("subtract size = %d, want 6", s.Size())
	}
}
