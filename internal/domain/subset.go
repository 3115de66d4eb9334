package domain

import (
	"math/bits"
	"strings"
)

// UnitSubset is an immutable set of cells within one unit, packed into 9
// bits by position.
type UnitSubset struct {
	Unit Unit
	Bits uint16
}

// WholeUnit returns the subset containing all nine cells of the unit.
func WholeUnit(u Unit) UnitSubset {
	return UnitSubset{Unit: u, Bits: 0x1ff}
}

// SubsetBitsSize counts the members of a raw 9-bit position set.
func SubsetBitsSize(b uint16) int {
	return bits.OnesCount16(b & 0x1ff)
}

func (s UnitSubset) Size() int     { return SubsetBitsSize(s.Bits) }
func (s UnitSubset) IsEmpty() bool { return s.Bits&0x1ff == 0 }

func (s UnitSubset) Has(loc Loc) bool {
	i := s.Unit.IndexOf(loc)
	return i >= 0 && s.Bits&(1<<i) != 0
}

func (s UnitSubset) With(loc Loc) UnitSubset {
	return UnitSubset{Unit: s.Unit, Bits: s.Bits | 1<<s.Unit.IndexOf(loc)}
}

func (s UnitSubset) Without(loc Loc) UnitSubset {
	i := s.Unit.IndexOf(loc)
	if i < 0 {
		return s
	}
	return UnitSubset{Unit: s.Unit, Bits: s.Bits &^ (1 << i)}
}

func (s UnitSubset) And(o UnitSubset) UnitSubset {
	return UnitSubset{Unit: s.Unit, Bits: s.Bits & o.Bits}
}

func (s UnitSubset) Or(o UnitSubset) UnitSubset {
	return UnitSubset{Unit: s.Unit, Bits: s.Bits | o.Bits}
}

func (s UnitSubset) Minus(o UnitSubset) UnitSubset {
	return UnitSubset{Unit: s.Unit, Bits: s.Bits &^ o.Bits}
}

func (s UnitSubset) Not() UnitSubset {
	return UnitSubset{Unit: s.Unit, Bits: ^s.Bits & 0x1ff}
}

// IsSubsetOf tells whether every member of s is in o; both must be subsets
// of the same unit.
func (s UnitSubset) IsSubsetOf(o UnitSubset) bool {
	return s.Bits&^o.Bits == 0
}

// Get returns the i-th member in unit order.
func (s UnitSubset) Get(i int) Loc {
	b := s.Bits & 0x1ff
	for ; i > 0; i-- {
		b &= b - 1
	}
	return s.Unit.At(bits.TrailingZeros16(b))
}

// Locs returns the members in unit order.
func (s UnitSubset) Locs() []Loc {
	out := make([]Loc, 0, s.Size())
	for b := s.Bits & 0x1ff; b != 0; b &= b - 1 {
		out = append(out, s.Unit.At(bits.TrailingZeros16(b)))
	}
	return out
}

func (s UnitSubset) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, loc := range s.Locs() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(loc.String())
	}
	b.WriteByte('}')
	return b.String()
}

// UnitNum is a (unit, numeral) pair with a dense index 0..242.
type UnitNum struct {
	Unit Unit
	Num  Numeral
}

// UnitNumCount is the number of (unit, numeral) pairs.
const UnitNumCount = UnitCount * NumCount

func UnitNumOf(u Unit, n Numeral) UnitNum {
	return UnitNum{Unit: u, Num: n}
}

// UnitNumAt returns the pair for a dense index.
func UnitNumAt(index int) UnitNum {
	return UnitNum{Unit: Unit(index / NumCount), Num: NumeralOf(index % NumCount)}
}

// Index returns the pair's dense index.
func (un UnitNum) Index() int {
	return int(un.Unit)*NumCount + un.Num.Index()
}

func (un UnitNum) String() string {
	return un.Unit.String() + ":" + un.Num.String()
}
