// Package generator produces Sudoku starting grids: a full solution from
// the solver, clues carved away under a symmetry while the puzzle keeps a
// unique solution.
package generator

import (
	"fmt"
	"math/rand"

	"svw.info/sudoku-insight/internal/domain"
)

// Symmetry describes the pattern the clues of a starting grid follow.
type Symmetry int

const (
	// SymmetryRandom is the lack of a pattern.
	SymmetryRandom Symmetry = iota
	// SymmetryClassic is the 180-degree rotational symmetry.
	SymmetryClassic
	// SymmetryMirror mirrors left-right.
	SymmetryMirror
	// SymmetryDoubleMirror mirrors left-right and top-bottom.
	SymmetryDoubleMirror
	// SymmetryDiagonal mirrors across the main diagonal.
	SymmetryDiagonal
	// SymmetryRotational is the 90-degree rotational symmetry.
	SymmetryRotational
	// SymmetryBlockwise repeats positions in diagonally adjacent blocks.
	SymmetryBlockwise

	numSymmetries
)

// Symmetries lists every symmetry.
func Symmetries() []Symmetry {
	out := make([]Symmetry, numSymmetries)
	for i := range out {
		out[i] = Symmetry(i)
	}
	return out
}

// ChooseSymmetry picks a symmetry at random.
func ChooseSymmetry(rnd *rand.Rand) Symmetry {
	return Symmetry(rnd.Intn(int(numSymmetries)))
}

var symmetryNames = [numSymmetries]string{
	"none",
	"classic",
	"mirror",
	"double mirror",
	"diagonal",
	"rotational",
	"blockwise",
}

// Name returns the human-readable name SymmetryByName reverses.
func (s Symmetry) Name() string {
	if s < 0 || s >= numSymmetries {
		return "unknown"
	}
	return symmetryNames[s]
}

func (s Symmetry) String() string {
	return s.Name()
}

// SymmetryByName finds the symmetry with the given name.
func SymmetryByName(name string) (Symmetry, error) {
	for i, n := range symmetryNames {
		if n == name {
			return Symmetry(i), nil
		}
	}
	return 0, fmt.Errorf("generator: no symmetry named %q", name)
}

// Expand returns the locations that accompany loc in this symmetry's
// pattern, loc included.
func (s Symmetry) Expand(loc domain.Loc) []domain.Loc {
	ri, ci := loc.RowIndex(), loc.ColIndex()
	switch s {
	case SymmetryClassic:
		if loc == 40 {
			return []domain.Loc{loc}
		}
		return []domain.Loc{loc, domain.Loc(80 - loc)}
	case SymmetryMirror:
		if ci == 4 {
			return []domain.Loc{loc}
		}
		return []domain.Loc{loc, domain.LocAt(ri, 8-ci)}
	case SymmetryDoubleMirror:
		if ri == 4 {
			return SymmetryMirror.Expand(loc)
		}
		vert := domain.LocAt(8-ri, ci)
		return append(SymmetryMirror.Expand(loc), SymmetryMirror.Expand(vert)...)
	case SymmetryDiagonal:
		if ri == ci {
			return []domain.Loc{loc}
		}
		return []domain.Loc{loc, domain.LocAt(ci, ri)}
	case SymmetryRotational:
		if loc == 40 {
			return []domain.Loc{loc}
		}
		return []domain.Loc{
			loc,
			domain.LocAt(ci, 8-ri),
			domain.LocAt(8-ri, 8-ci),
			domain.LocAt(8-ci, ri),
		}
	case SymmetryBlockwise:
		within := loc.IndexIn(domain.BlockType)
		bi, bj := ri/3, ci/3
		return []domain.Loc{
			loc,
			domain.Block(((bi+1)%3)*3 + (bj+1)%3).At(within),
			domain.Block(((bi+2)%3)*3 + (bj+2)%3).At(within),
		}
	}
	return []domain.Loc{loc}
}

// Describes reports whether the clues of the grid follow this symmetry.
func (s Symmetry) Describes(g domain.Grid) bool {
	for _, loc := range domain.AllLocs() {
		hasClue := g.Has(loc)
		for _, exp := range s.Expand(loc) {
			if hasClue != g.Has(exp) {
				return false
			}
		}
	}
	return true
}

// Measure tells to what degree the clues follow this symmetry, 0 meaning
// not at all and 1 completely.
func (s Symmetry) Measure(g domain.Grid) float64 {
	matching := 0
	var seen domain.LocSet
	for _, loc := range domain.AllLocs() {
		if seen.Has(loc) {
			continue
		}
		clues, blanks := 0, 0
		for _, exp := range s.Expand(loc) {
			seen.Add(exp)
			if g.Has(exp) {
				clues++
			} else {
				blanks++
			}
		}
		if clues > blanks {
			matching += clues
		} else {
			matching += blanks
		}
	}
	return float64(matching) / domain.LocCount
}
