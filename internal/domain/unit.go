package domain

import "fmt"

// UnitType distinguishes the three unit families.
type UnitType uint8

const (
	RowType UnitType = iota
	ColType
	BlockType
)

func (t UnitType) String() string {
	switch t {
	case RowType:
		return "row"
	case ColType:
		return "column"
	default:
		return "block"
	}
}

// Unit identifies one of the 27 units: rows 0-8, columns 9-17, blocks 18-26.
type Unit uint8

// UnitCount is the number of units on the board.
const UnitCount = 27

// UnitSize is the number of cells in a unit.
const UnitSize = 9

func Row(i int) Unit   { return Unit(i) }
func Col(i int) Unit   { return Unit(9 + i) }
func Block(i int) Unit { return Unit(18 + i) }

// AllUnits lists every unit, rows then columns then blocks.
func AllUnits() []Unit {
	return allUnits[:]
}

func (u Unit) Type() UnitType {
	switch {
	case u < 9:
		return RowType
	case u < 18:
		return ColType
	default:
		return BlockType
	}
}

// Number returns the unit's 0-based number within its family.
func (u Unit) Number() int {
	return int(u) % 9
}

// At returns the i-th cell of the unit.
func (u Unit) At(i int) Loc {
	return unitLocs[u][i]
}

// Locs returns the unit's nine cells in board order.
func (u Unit) Locs() *[UnitSize]Loc {
	return &unitLocs[u]
}

// IndexOf returns the position of loc within the unit, or -1.
func (u Unit) IndexOf(loc Loc) int {
	if !u.Contains(loc) {
		return -1
	}
	return loc.IndexIn(u.Type())
}

func (u Unit) Contains(loc Loc) bool {
	return loc.Unit(u.Type()) == u
}

// Intersect returns u's cells that also lie in v, as a subset of u.
func (u Unit) Intersect(v Unit) UnitSubset {
	var bits uint16
	for i, loc := range unitLocs[u] {
		if v.Contains(loc) {
			bits |= 1 << i
		}
	}
	return UnitSubset{Unit: u, Bits: bits}
}

// Subtract returns u's cells not in v.
func (u Unit) Subtract(v Unit) UnitSubset {
	whole := UnitSubset{Unit: u, Bits: 0x1ff}
	return whole.Minus(u.Intersect(v))
}

func (u Unit) String() string {
	return fmt.Sprintf("%s %d", u.Type(), u.Number()+1)
}
