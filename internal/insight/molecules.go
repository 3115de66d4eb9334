package insight

import (
	"strings"

	"svw.info/sudoku-insight/internal/domain"
)

// Implication is an insight that only holds after the eliminations of its
// antecedents have been made.
type Implication struct {
	Antecedents []Insight
	Consequent  Insight
}

func (im Implication) Type() Type { return TypeImplication }

func (im Implication) ImpliedAssignment() (domain.Assignment, bool) {
	return im.Consequent.ImpliedAssignment()
}

func (im Implication) Eliminations() []domain.Assignment {
	return im.Consequent.Eliminations()
}

// IsError reports whether the chain terminates in an error insight.
func (im Implication) IsError() bool {
	return im.Nub().Type().IsError()
}

func (im Implication) IsImpliedBy(gm GridMarks) bool {
	b := gm.Builder()
	for _, ant := range im.Antecedents {
		if !ant.IsImpliedBy(gm) {
			return false
		}
		b.Apply(ant)
	}
	return im.Consequent.IsImpliedBy(b.Build())
}

func (im Implication) MightBeRevealedByElimination(elim domain.Assignment) bool {
	for _, ant := range im.Antecedents {
		if ant.MightBeRevealedByElimination(elim) {
			return true
		}
	}
	return im.Consequent.MightBeRevealedByElimination(elim)
}

func (im Implication) Nub() Insight {
	return im.Consequent.Nub()
}

func (im Implication) AddScanTargets(locs *domain.LocSet, uns *domain.UnitNumSet) {
	for _, ant := range im.Antecedents {
		ant.AddScanTargets(locs, uns)
	}
	im.Consequent.AddScanTargets(locs, uns)
}

func (im Implication) String() string {
	var b strings.Builder
	b.WriteString(im.Consequent.String())
	b.WriteString(" <= [")
	for i, ant := range im.Antecedents {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ant.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (im Implication) apply(b *Builder) {
	im.Consequent.apply(b)
}

// DisprovedAssignment eliminates a candidate by showing that assigning it
// forces an error through a chain of implied assignments.
type DisprovedAssignment struct {
	Assignment         domain.Assignment
	ImpliedAssignments []Insight
	ResultingError     Insight
}

func (da DisprovedAssignment) Type() Type { return TypeDisprovedAssignment }

func (da DisprovedAssignment) ImpliedAssignment() (domain.Assignment, bool) {
	return domain.Assignment{}, false
}

func (da DisprovedAssignment) Eliminations() []domain.Assignment {
	return []domain.Assignment{da.Assignment}
}

// IsImpliedBy replays the disproof: the trial assignment, then each implied
// assignment, must be justified step by step, ending in the error.
func (da DisprovedAssignment) IsImpliedBy(gm GridMarks) bool {
	b := gm.Builder()
	b.Assign(da.Assignment)
	for _, ins := range da.ImpliedAssignments {
		if !ins.IsImpliedBy(b.Build()) {
			return false
		}
		b.Apply(ins)
	}
	return da.ResultingError.IsImpliedBy(b.Build())
}

func (da DisprovedAssignment) MightBeRevealedByElimination(elim domain.Assignment) bool {
	for _, ins := range da.ImpliedAssignments {
		if ins.MightBeRevealedByElimination(elim) {
			return true
		}
	}
	return da.ResultingError.MightBeRevealedByElimination(elim)
}

func (da DisprovedAssignment) Nub() Insight { return da }

func (da DisprovedAssignment) AddScanTargets(locs *domain.LocSet, uns *domain.UnitNumSet) {
	for _, ins := range da.ImpliedAssignments {
		ins.AddScanTargets(locs, uns)
	}
	da.ResultingError.AddScanTargets(locs, uns)
}

func (da DisprovedAssignment) String() string {
	return "not " + da.Assignment.String() + ": " + da.ResultingError.String()
}

func (da DisprovedAssignment) apply(b *Builder) {
	b.Eliminate(da.Assignment)
}
