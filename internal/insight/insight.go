package insight

import "svw.info/sudoku-insight/internal/domain"

// Type identifies the kind of fact an Insight states.
type Type int

const (
	TypeConflict Type = iota
	TypeBarredLoc
	TypeBarredNum
	TypeForcedLoc
	TypeForcedNum
	TypeOverlap
	TypeLockedSet
	TypeImplication
	TypeDisprovedAssignment
)

// IsError reports whether insights of this type describe a broken board.
func (t Type) IsError() bool {
	return t == TypeConflict || t == TypeBarredLoc || t == TypeBarredNum
}

// IsAssignment reports whether insights of this type imply a move.
func (t Type) IsAssignment() bool {
	return t == TypeForcedLoc || t == TypeForcedNum
}

// IsElimination reports whether insights of this type disprove candidates.
func (t Type) IsElimination() bool {
	return t == TypeOverlap || t == TypeLockedSet || t == TypeDisprovedAssignment
}

// IsMolecule reports whether insights of this type are built from others.
func (t Type) IsMolecule() bool {
	return t == TypeImplication || t == TypeDisprovedAssignment
}

func (t Type) String() string {
	switch t {
	case TypeConflict:
		return "conflict"
	case TypeBarredLoc:
		return "barred location"
	case TypeBarredNum:
		return "barred numeral"
	case TypeForcedLoc:
		return "forced location"
	case TypeForcedNum:
		return "forced numeral"
	case TypeOverlap:
		return "overlap"
	case TypeLockedSet:
		return "locked set"
	case TypeImplication:
		return "implication"
	case TypeDisprovedAssignment:
		return "disproved assignment"
	}
	return "unknown"
}

// Insight is a fact about a board: a move it implies, candidates it rules
// out, or an error it contains. The variant set is closed; the unexported
// apply method keeps it that way.
type Insight interface {
	// Type returns the variant tag.
	Type() Type

	// ImpliedAssignment returns the move this insight implies, if any.
	ImpliedAssignment() (domain.Assignment, bool)

	// Eliminations returns the candidates this insight disproves.
	Eliminations() []domain.Assignment

	// IsImpliedBy reports whether the given state alone justifies this
	// insight, with no help from prior eliminations.
	IsImpliedBy(gm GridMarks) bool

	// MightBeRevealedByElimination is a cheap filter: it reports whether
	// eliminating the given candidate could possibly have contributed to
	// this insight. False positives are allowed, false negatives are not.
	MightBeRevealedByElimination(elim domain.Assignment) bool

	// Nub returns the ultimate consequent of this insight, unwrapping any
	// chain of implications.
	Nub() Insight

	// AddScanTargets records the cells and unit-numerals a person has to
	// inspect to spot this insight.
	AddScanTargets(locs *domain.LocSet, uns *domain.UnitNumSet)

	// String is a stable identifier usable as a map key: two insights are
	// the same fact exactly when their strings are equal.
	String() string

	apply(b *Builder)
}

// ScanTargetCount counts the distinct scan targets of an insight.
func ScanTargetCount(ins Insight) int {
	var locs domain.LocSet
	var uns domain.UnitNumSet
	ins.AddScanTargets(&locs, &uns)
	return locs.Size() + uns.Size()
}
