package generator

import (
	"testing"

	"svw.info/sudoku-insight/internal/domain"
)

func TestSymmetryNameRoundTrip(t *testing.T) {
	for _, s := range Symmetries() {
		got, err := SymmetryByName(s.Name())
		if err != nil {
			t.Fatal(err)
		}
		if got != s {
			t.Errorf("SymmetryByName(%q) = %v, want %v", s.Name(), got, s)
		}
	}
	if _, err := SymmetryByName("spiral"); err == nil {
		t.Error("SymmetryByName accepted an unknown name")
	}
}

func expandSet(s Symmetry, loc domain.Loc) domain.LocSet {
	var set domain.LocSet
	for _, exp := range s.Expand(loc) {
		set.Add(exp)
	}
	return set
}

func TestExpandOrbits(t *testing.T) {
	for _, s := range Symmetries() {
		for _, loc := range domain.AllLocs() {
			orbit := expandSet(s, loc)
			if !orbit.Has(loc) {
				t.Fatalf("%v: Expand(%v) misses the location itself", s, loc)
			}
			for _, member := range s.Expand(loc) {
				if got := expandSet(s, member); got != orbit {
					t.Fatalf("%v: orbit of %v differs from orbit of its member %v", s, loc, member)
				}
			}
		}
	}
}

func TestExpandCenter(t *testing.T) {
	center := domain.LocAt(4, 4)
	for _, s := range []Symmetry{SymmetryClassic, SymmetryRotational, SymmetryMirror, SymmetryDoubleMirror, SymmetryDiagonal} {
		if got := s.Expand(center); len(got) != 1 || got[0] != center {
			t.Errorf("%v: Expand(center) = %v", s, got)
		}
	}
}

func TestDescribesAndMeasure(t *testing.T) {
	b := domain.NewGridBuilder()
	for _, seed := range []domain.Loc{domain.LocAt(0, 2), domain.LocAt(3, 7), domain.LocAt(5, 5)} {
		for _, loc := range SymmetryClassic.Expand(seed) {
			b.Put(loc, 1)
		}
	}
	g := b.Build()
	if !SymmetryClassic.Describes(g) {
		t.Error("Describes = false for a grid built from classic orbits")
	}
	if m := SymmetryClassic.Measure(g); m != 1 {
		t.Errorf("Measure = %v, want 1", m)
	}
	if !SymmetryRandom.Describes(g) {
		t.Error("the no-pattern symmetry describes every grid")
	}

	broken := g.Builder().Remove(domain.LocAt(0, 2)).Build()
	if SymmetryClassic.Describes(broken) {
		t.Error("Describes = true after breaking an orbit")
	}
	if m := SymmetryClassic.Measure(broken); m <= 0.9 || m >= 1 {
		t.Errorf("Measure of a barely broken grid = %v", m)
	}
}
