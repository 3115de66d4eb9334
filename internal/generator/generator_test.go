package generator

import (
	"context"
	"math/rand"
	"testing"

	"svw.info/sudoku-insight/internal/rating"
	"svw.info/sudoku-insight/internal/solver"
)

func TestMakeTarget(t *testing.T) {
	g, err := MakeTarget(context.Background(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsSolved() {
		t.Fatalf("target not solved:\n%v", g.String())
	}
}

func TestGenerateUnique(t *testing.T) {
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(2))
	g, err := Generate(ctx, rnd, SymmetryClassic)
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() < 17 {
		t.Errorf("only %d clues, below the proper-puzzle minimum", g.Size())
	}
	res := solver.Solve(ctx, g, 2, rand.New(rand.NewSource(3)))
	if res.NumSolutions != 1 {
		t.Errorf("NumSolutions = %d, want 1", res.NumSolutions)
	}
}

func TestStrategySimple(t *testing.T) {
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(4))
	target, err := MakeTarget(ctx, rnd)
	if err != nil {
		t.Fatal(err)
	}
	res := StrategySimple.Generate(ctx, rnd, SymmetryRandom, target, 1, 0)
	if res.NumSolutions != 1 {
		t.Fatalf("NumSolutions = %d, want 1", res.NumSolutions)
	}
	if res.Solution == nil || res.Solution.Flat() != target.Flat() {
		t.Error("puzzle does not solve to its target")
	}
}

func TestSubtractiveKeepsSymmetry(t *testing.T) {
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(5))
	target, err := MakeTarget(ctx, rnd)
	if err != nil {
		t.Fatal(err)
	}
	res := StrategySubtractive.Generate(ctx, rnd, SymmetryClassic, target, 1, 0)
	if !SymmetryClassic.Describes(res.Start) {
		t.Errorf("clue layout broke the symmetry:\n%v", res.Start.String())
	}
	if res.Start.Size() >= target.Size() {
		t.Errorf("nothing subtracted: %d clues", res.Start.Size())
	}
}

func TestNameRoundTrip(t *testing.T) {
	n := Name{Version: BasicVersion, Stream: 3, Year: 2026, Month: 8, Counter: 41}
	got, err := ParseName(n.String())
	if err != nil {
		t.Fatal(err)
	}
	if got != n {
		t.Errorf("ParseName(%q) = %+v", n.String(), got)
	}
	for _, s := range []string{"", "1:2:3", "1:2:2026:4", "1:2:2026-x:4"} {
		if _, err := ParseName(s); err == nil {
			t.Errorf("ParseName(%q) succeeded, want error", s)
		}
	}
}

func TestGeneratePuzzleDeterministic(t *testing.T) {
	ctx := context.Background()
	n := Name{Version: BasicVersion, Stream: 1, Year: 2026, Month: 8, Counter: 1}
	first, err := GeneratePuzzle(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	second, err := GeneratePuzzle(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	if first.Grid.Flat() != second.Grid.Flat() {
		t.Error("same name, different puzzles")
	}
	if first.Symmetry != second.Symmetry || first.NumSolutions != second.NumSolutions {
		t.Errorf("descriptors differ: %+v vs %+v", first, second)
	}
	if first.NumSolutions < 1 || first.NumSolutions > MaxSolutions {
		t.Errorf("NumSolutions = %d", first.NumSolutions)
	}
}

func TestGeneratePuzzleUnknownVersion(t *testing.T) {
	if _, err := GeneratePuzzle(context.Background(), Name{Version: 99}); err == nil {
		t.Error("unknown version accepted")
	}
}

func TestGenerateRatedNoAttempts(t *testing.T) {
	_, _, err := GenerateRated(context.Background(), rand.New(rand.NewSource(6)), SymmetryRandom, rating.NoDisproofs, 0)
	if err == nil {
		t.Error("zero attempts succeeded")
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Generate(ctx, rand.New(rand.NewSource(7)), SymmetryMirror); err == nil {
		t.Error("Generate succeeded under a cancelled context")
	}
}
