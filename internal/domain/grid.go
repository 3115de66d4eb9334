package domain

import (
	"fmt"
	"strings"
)

// Grid maps each cell to a numeral or zero for blank. It is a value type;
// treat exposed Grids as immutable and go through a Builder for edits.
type Grid struct {
	cells [LocCount]Numeral
}

// Get returns the numeral at loc, zero when blank.
func (g *Grid) Get(loc Loc) Numeral {
	return g.cells[loc]
}

// Has tells whether loc is filled.
func (g *Grid) Has(loc Loc) bool {
	return g.cells[loc] != 0
}

// Size counts the filled cells.
func (g *Grid) Size() int {
	n := 0
	for _, v := range g.cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// BrokenLocs returns the cells involved in duplicate assignments within a
// unit.
func (g *Grid) BrokenLocs() LocSet {
	var broken LocSet
	for _, u := range AllUnits() {
		var seen, dup NumSet
		for _, loc := range u.Locs() {
			n := g.cells[loc]
			if n == 0 {
				continue
			}
			if seen.Has(n) {
				dup = dup.With(n)
			}
			seen = seen.With(n)
		}
		if dup.IsEmpty() {
			continue
		}
		for _, loc := range u.Locs() {
			if n := g.cells[loc]; n != 0 && dup.Has(n) {
				broken.Add(loc)
			}
		}
	}
	return broken
}

// IsSolved tells whether every cell is filled with no duplicates.
func (g *Grid) IsSolved() bool {
	if g.Size() != LocCount {
		return false
	}
	b := g.BrokenLocs()
	return b.Size() == 0
}

// Flat renders the grid as 81 characters, '.' for blanks.
func (g *Grid) Flat() string {
	var b strings.Builder
	b.Grow(LocCount)
	for _, v := range g.cells {
		if v == 0 {
			b.WriteByte('.')
		} else {
			b.WriteByte(byte('0' + v))
		}
	}
	return b.String()
}

// String renders the grid as nine lines of nine characters.
func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			v := g.cells[LocAt(r, c)]
			if v == 0 {
				b.WriteByte('.')
			} else {
				b.WriteByte(byte('0' + v))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseGrid reads a grid from text. Cells are '.', '0', or digits '1'-'9';
// every other rune is ignored, so grids may be embedded in delimited or
// pretty-printed text. The text must contain exactly 81 cells.
func ParseGrid(s string) (Grid, error) {
	var g Grid
	n := 0
	for _, r := range s {
		switch {
		case r == '.' || r == '0':
			if n >= LocCount {
				return Grid{}, fmt.Errorf("grid text has more than %d cells", LocCount)
			}
			n++
		case r >= '1' && r <= '9':
			if n >= LocCount {
				return Grid{}, fmt.Errorf("grid text has more than %d cells", LocCount)
			}
			g.cells[n] = Numeral(r - '0')
			n++
		}
	}
	if n != LocCount {
		return Grid{}, fmt.Errorf("grid text has %d cells, want %d", n, LocCount)
	}
	return g, nil
}

// Builder returns a mutable copy-based builder seeded with g's contents.
func (g *Grid) Builder() *GridBuilder {
	return &GridBuilder{grid: *g}
}

// GridBuilder edits a grid in place. Build returns a snapshot by value, so
// later edits never alias a previously built grid.
type GridBuilder struct {
	grid Grid
}

// NewGridBuilder returns a builder over an empty grid.
func NewGridBuilder() *GridBuilder {
	return &GridBuilder{}
}

func (b *GridBuilder) Get(loc Loc) Numeral { return b.grid.cells[loc] }
func (b *GridBuilder) Has(loc Loc) bool    { return b.grid.cells[loc] != 0 }

func (b *GridBuilder) Put(loc Loc, num Numeral) *GridBuilder {
	b.grid.cells[loc] = num
	return b
}

func (b *GridBuilder) Remove(loc Loc) *GridBuilder {
	b.grid.cells[loc] = 0
	return b
}

func (b *GridBuilder) PutAll(g Grid) *GridBuilder {
	for i, v := range g.cells {
		if v != 0 {
			b.grid.cells[i] = v
		}
	}
	return b
}

func (b *GridBuilder) Build() Grid {
	return b.grid
}
