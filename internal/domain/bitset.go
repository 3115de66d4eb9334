package domain

import "math/bits"

// LocSet is a mutable set of cells, used for scan-target accounting.
type LocSet struct {
	lo, hi uint64
}

func (s *LocSet) Add(loc Loc) {
	if loc < 64 {
		s.lo |= 1 << loc
	} else {
		s.hi |= 1 << (loc - 64)
	}
}

func (s *LocSet) Has(loc Loc) bool {
	if loc < 64 {
		return s.lo&(1<<loc) != 0
	}
	return s.hi&(1<<(loc-64)) != 0
}

func (s *LocSet) Size() int {
	return bits.OnesCount64(s.lo) + bits.OnesCount64(s.hi)
}

// UnitNumSet is a mutable set of (unit, numeral) pairs by dense index.
type UnitNumSet struct {
	words [4]uint64
}

func (s *UnitNumSet) Add(un UnitNum) {
	i := un.Index()
	s.words[i/64] |= 1 << (i % 64)
}

func (s *UnitNumSet) Has(un UnitNum) bool {
	i := un.Index()
	return s.words[i/64]&(1<<(i%64)) != 0
}

func (s *UnitNumSet) Size() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}
