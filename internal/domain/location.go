package domain

import "fmt"

// Loc identifies a board cell, 0 through 80 in row-major order.
type Loc uint8

// LocCount is the number of cells on the board.
const LocCount = 81

// PeerCount is the number of cells sharing a unit with any given cell.
const PeerCount = 20

// LocAt returns the cell at the given 0-based row and column.
func LocAt(row, col int) Loc {
	return Loc(row*9 + col)
}

// AllLocs lists the 81 cells in board order.
func AllLocs() []Loc {
	return allLocs[:]
}

func (l Loc) RowIndex() int { return int(l) / 9 }
func (l Loc) ColIndex() int { return int(l) % 9 }

func (l Loc) Row() Unit   { return Row(l.RowIndex()) }
func (l Loc) Col() Unit   { return Col(l.ColIndex()) }
func (l Loc) Block() Unit { return Block((l.RowIndex()/3)*3 + l.ColIndex()/3) }

// Unit returns the cell's containing unit of the given type.
func (l Loc) Unit(t UnitType) Unit {
	return locUnits[l][t]
}

// IndexIn returns the cell's position within its unit of the given type.
func (l Loc) IndexIn(t UnitType) int {
	return int(locUnitIndex[l][t])
}

// UnitSubsetIn returns the cell as a singleton subset of its unit of the
// given type.
func (l Loc) UnitSubsetIn(t UnitType) UnitSubset {
	return UnitSubset{Unit: locUnits[l][t], Bits: 1 << locUnitIndex[l][t]}
}

// Peers returns the 20 cells sharing a unit with this one. The slice is a
// shared table and must not be modified.
func (l Loc) Peers() []Loc {
	return locPeers[l][:]
}

func (l Loc) String() string {
	return fmt.Sprintf("(%d, %d)", l.RowIndex()+1, l.ColIndex()+1)
}
