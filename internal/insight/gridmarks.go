// Package insight derives the deductions a human solver could make from a
// board state: errors, forced moves, overlaps, locked sets, and compound
// implications built from them.
package insight

import (
	"svw.info/sudoku-insight/internal/domain"
	"svw.info/sudoku-insight/internal/marks"
)

// GridMarks bundles a grid with the candidate store implied by its
// assignments. HasErrors is sticky: once a state has broken a constraint,
// every state derived from it keeps the flag.
type GridMarks struct {
	Grid      domain.Grid
	Marks     *marks.Marks
	HasErrors bool
}

// New builds the candidate store for the given grid.
func New(grid domain.Grid) GridMarks {
	b := marks.NewBuilder()
	ok := b.AssignAll(grid)
	return GridMarks{Grid: grid, Marks: b.Build(), HasErrors: !ok}
}

// Builder starts a derived state.
func (gm GridMarks) Builder() *Builder {
	return &Builder{
		grid:      gm.Grid.Builder(),
		marks:     gm.Marks.Builder(),
		hasErrors: gm.HasErrors,
	}
}

// Builder accumulates assignments and eliminations on top of a GridMarks.
type Builder struct {
	grid      *domain.GridBuilder
	marks     *marks.Builder
	hasErrors bool
}

// Apply writes the insight's consequences into the builder.
func (b *Builder) Apply(ins Insight) *Builder {
	ins.apply(b)
	return b
}

// ApplyAll applies each insight in order.
func (b *Builder) ApplyAll(list []Insight) *Builder {
	for _, ins := range list {
		ins.apply(b)
	}
	return b
}

// Assign places num at loc in both the grid and the candidate store.
func (b *Builder) Assign(a domain.Assignment) *Builder {
	b.grid.Put(a.Loc, a.Num)
	if !b.marks.Assign(a) {
		b.hasErrors = true
	}
	return b
}

// Eliminate removes a candidate from the store. The grid is untouched.
func (b *Builder) Eliminate(a domain.Assignment) *Builder {
	if !b.marks.Eliminate(a) {
		b.hasErrors = true
	}
	return b
}

func (b *Builder) markError() {
	b.hasErrors = true
}

// HasErrors reports whether any applied insight broke a constraint.
func (b *Builder) HasErrors() bool {
	return b.hasErrors
}

// Build publishes the derived state.
func (b *Builder) Build() GridMarks {
	return GridMarks{Grid: b.grid.Build(), Marks: b.marks.Build(), HasErrors: b.hasErrors}
}
