package domain

import (
	"math/bits"
	"strconv"
	"strings"
)

// Numeral is a Sudoku digit, 1 through 9. The zero value means "no digit".
type Numeral uint8

// NumCount is the number of distinct numerals.
const NumCount = 9

// NumeralOf returns the numeral for a 0-based index.
func NumeralOf(index int) Numeral {
	return Numeral(index + 1)
}

// Index returns the numeral's 0-based index.
func (n Numeral) Index() int {
	return int(n) - 1
}

// Bit returns the numeral's bit within a 9-bit set.
func (n Numeral) Bit() uint16 {
	return 1 << (n - 1)
}

func (n Numeral) String() string {
	return strconv.Itoa(int(n))
}

// AllNumerals lists the nine numerals in order.
func AllNumerals() [NumCount]Numeral {
	return [NumCount]Numeral{1, 2, 3, 4, 5, 6, 7, 8, 9}
}

// NumSet is an immutable set of numerals packed into 9 bits.
type NumSet uint16

// AllNums contains every numeral; NoNums is empty.
const (
	NoNums  NumSet = 0
	AllNums NumSet = 0x1ff
)

// NumSetOf builds a set from the given numerals.
func NumSetOf(nums ...Numeral) NumSet {
	var s NumSet
	for _, n := range nums {
		s |= NumSet(n.Bit())
	}
	return s
}

func (s NumSet) Has(n Numeral) bool       { return s&NumSet(n.Bit()) != 0 }
func (s NumSet) With(n Numeral) NumSet    { return s | NumSet(n.Bit()) }
func (s NumSet) Without(n Numeral) NumSet { return s &^ NumSet(n.Bit()) }
func (s NumSet) And(o NumSet) NumSet      { return s & o }
func (s NumSet) Or(o NumSet) NumSet       { return s | o }
func (s NumSet) Minus(o NumSet) NumSet    { return s &^ o }
func (s NumSet) Xor(o NumSet) NumSet      { return (s ^ o) & AllNums }
func (s NumSet) Not() NumSet              { return ^s & AllNums }
func (s NumSet) IsEmpty() bool            { return s == 0 }

// Size returns the number of members via popcount.
func (s NumSet) Size() int {
	return bits.OnesCount16(uint16(s))
}

// IsSubsetOf tells whether every member of s is in o.
func (s NumSet) IsSubsetOf(o NumSet) bool {
	return s&^o == 0
}

// Get returns the i-th smallest member.
func (s NumSet) Get(i int) Numeral {
	return numSetMembers[s][i]
}

// Nums returns the members in increasing order. The slice is shared across
// all equal sets and must not be modified.
func (s NumSet) Nums() []Numeral {
	return numSetMembers[s]
}

func (s NumSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, n := range s.Nums() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n.String())
	}
	b.WriteByte('}')
	return b.String()
}

// numSetMembers is the canonical member-slice table: one precomputed slice
// per possible 9-bit set.
var numSetMembers [512][]Numeral

func init() {
	for bits := 0; bits < 512; bits++ {
		var members []Numeral
		for i := 0; i < NumCount; i++ {
			if bits&(1<<i) != 0 {
				members = append(members, NumeralOf(i))
			}
		}
		numSetMembers[bits] = members
	}
}
