package insight

import (
	"fmt"
	"strconv"
	"strings"

	"svw.info/sudoku-insight/internal/domain"
)

// UnitCategory splits units into blocks and lines: most patterns are
// easier to spot in a block than in a row or column.
type UnitCategory int

const (
	BlockCategory UnitCategory = iota
	LineCategory
)

// CategoryOf returns the category of a unit.
func CategoryOf(u domain.Unit) UnitCategory {
	if u.Type() == domain.BlockType {
		return BlockCategory
	}
	return LineCategory
}

func (c UnitCategory) String() string {
	if c == BlockCategory {
		return "BLOCK"
	}
	return "LINE"
}

// Pattern classifies an atomic insight by the shape a solver has to
// perceive to find it. Its String form, "Name:dim,dim,...", is the stable
// key used for offline frequency and timing statistics.
type Pattern struct {
	Name        string
	Category    UnitCategory
	HasCategory bool
	Dims        []int
}

func (p Pattern) String() string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteByte(':')
	first := true
	if p.HasCategory {
		b.WriteString(p.Category.String())
		first = false
	}
	for _, d := range p.Dims {
		if !first {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(d))
		first = false
	}
	return b.String()
}

// ParsePattern inverts String.
func ParsePattern(s string) (Pattern, error) {
	name, rest, ok := strings.Cut(s, ":")
	if !ok || name == "" {
		return Pattern{}, fmt.Errorf("malformed pattern %q", s)
	}
	p := Pattern{Name: name}
	if rest == "" {
		return p, nil
	}
	for i, tok := range strings.Split(rest, ",") {
		if i == 0 && (tok == "BLOCK" || tok == "LINE") {
			p.HasCategory = true
			if tok == "LINE" {
				p.Category = LineCategory
			}
			continue
		}
		d, err := strconv.Atoi(tok)
		if err != nil {
			return Pattern{}, fmt.Errorf("malformed pattern %q: %v", s, err)
		}
		p.Dims = append(p.Dims, d)
	}
	return p, nil
}

func categoryPattern(name string, u domain.Unit, dims ...int) Pattern {
	return Pattern{Name: name, Category: CategoryOf(u), HasCategory: true, Dims: dims}
}

// isImplicit reports whether no peer of loc holds num, so ruling num out
// of loc takes more than a direct scan of its peers.
func isImplicit(g *domain.Grid, loc domain.Loc, num domain.Numeral) bool {
	for _, peer := range loc.Peers() {
		if g.Get(peer) == num {
			return false
		}
	}
	return true
}

func countImplicit(g *domain.Grid, nums domain.NumSet, locs domain.UnitSubset, max int) int {
	n := 0
	for _, loc := range locs.Locs() {
		for _, num := range nums.Nums() {
			if isImplicit(g, loc, num) {
				n++
				if n >= max {
					return max
				}
			}
		}
	}
	return n
}

func countOpenLocs(g *domain.Grid, locs domain.UnitSubset) int {
	n := 0
	for _, loc := range locs.Locs() {
		if !g.Has(loc) {
			n++
		}
	}
	return n
}

// cellExclusions breaks down how a cell's candidates were excluded: how
// many numerals only implicitly (capped at cap), how many assigned in its
// lines but not its block, and how many of those are unique to the line
// with fewer such assignments.
func cellExclusions(g *domain.Grid, loc domain.Loc, numExcluded int) (numImplicit, inLinesOnly, inMinorLineOnly int) {
	var inBlock domain.NumSet
	for _, l := range loc.Block().Locs() {
		if num := g.Get(l); num != 0 {
			inBlock = inBlock.With(num)
		}
	}
	var inRowOnly, inColOnly domain.NumSet
	for _, l := range loc.Row().Subtract(loc.Block()).Locs() {
		if num := g.Get(l); num != 0 && !inBlock.Has(num) {
			inRowOnly = inRowOnly.With(num)
		}
	}
	for _, l := range loc.Col().Subtract(loc.Block()).Locs() {
		if num := g.Get(l); num != 0 && !inBlock.Has(num) {
			inColOnly = inColOnly.With(num)
		}
	}
	minor := inColOnly.Minus(inRowOnly)
	if inRowOnly.Size() < inColOnly.Size() {
		minor = inRowOnly.Minus(inColOnly)
	}
	lines := inRowOnly.Or(inColOnly)
	all := inBlock.Or(lines)
	numImplicit = numExcluded - all.Size()
	if numImplicit > 2 {
		numImplicit = 2
	}
	return numImplicit, lines.Size(), minor.Size()
}

// ConflictPattern has one dimension, the unit category.
func ConflictPattern(u domain.Unit) Pattern {
	return categoryPattern("Conflict", u)
}

// BarredLocPattern describes how the nine numerals were excluded from the
// barred cell.
func BarredLocPattern(g *domain.Grid, loc domain.Loc) Pattern {
	numImplicit, inLinesOnly, inMinorLineOnly := cellExclusions(g, loc, 9)
	return Pattern{Name: "BarredLoc", Dims: []int{numImplicit, inLinesOnly, inMinorLineOnly}}
}

// BarredNumPattern counts the open cells of the unit and how many of them
// exclude the numeral only implicitly.
func BarredNumPattern(g *domain.Grid, u domain.Unit, num domain.Numeral) Pattern {
	numOpen, numImplicit := 0, 0
	for _, loc := range u.Locs() {
		if !g.Has(loc) {
			numOpen++
			if numImplicit < 2 && isImplicit(g, loc, num) {
				numImplicit++
			}
		}
	}
	return categoryPattern("BarredNum", u, numOpen, numImplicit)
}

// LastLocPattern is the degenerate forced location: a unit with a single
// open cell.
func LastLocPattern(u domain.Unit) Pattern {
	return categoryPattern("LastLoc", u)
}

// ForcedLocPattern counts the open cells of the unit and how many exclude
// the numeral only implicitly. The forced cell itself never has a peer
// holding the numeral, so the implicit count starts at -1.
func ForcedLocPattern(g *domain.Grid, u domain.Unit, num domain.Numeral) Pattern {
	numOpen, numImplicit := 0, -1
	for _, loc := range u.Locs() {
		if !g.Has(loc) {
			numOpen++
			if numImplicit < 2 && isImplicit(g, loc, num) {
				numImplicit++
			}
		}
	}
	return categoryPattern("ForcedLoc", u, numOpen, numImplicit)
}

// ForcedNumPattern describes how the other eight numerals were excluded
// from the forced cell.
func ForcedNumPattern(g *domain.Grid, loc domain.Loc) Pattern {
	numImplicit, inLinesOnly, inMinorLineOnly := cellExclusions(g, loc, 8)
	return Pattern{Name: "ForcedNum", Dims: []int{numImplicit, inLinesOnly, inMinorLineOnly}}
}

// OverlapPattern counts the open cells of the first unit outside the
// overlap and how many exclude the numeral only implicitly.
func OverlapPattern(g *domain.Grid, u, overlapping domain.Unit, num domain.Numeral) Pattern {
	numOpen, numImplicit := 0, 0
	for _, loc := range u.Subtract(overlapping).Locs() {
		if !g.Has(loc) {
			numOpen++
			if numImplicit < 2 && isImplicit(g, loc, num) {
				numImplicit++
			}
		}
	}
	return categoryPattern("Overlap", u, numOpen, numImplicit)
}

// NakedSetPattern has the set size, the open cells outside the set, and
// how many excluded numerals only implicitly avoid the set's cells.
func NakedSetPattern(g *domain.Grid, nums domain.NumSet, locs domain.UnitSubset) Pattern {
	numOpen := countOpenLocs(g, locs.Not())
	numImplicit := countImplicit(g, nums.Not(), locs, 2)
	return categoryPattern("NakedSet", locs.Unit, nums.Size(), numOpen, numImplicit)
}

// HiddenSetPattern has the set size, the open cells outside the set, and
// how many of those cells exclude the set's numerals only implicitly.
func HiddenSetPattern(g *domain.Grid, nums domain.NumSet, locs domain.UnitSubset) Pattern {
	numOpen := countOpenLocs(g, locs.Not())
	numImplicit := countImplicit(g, nums, locs.Not(), 2)
	return categoryPattern("HiddenSet", locs.Unit, nums.Size(), numOpen, numImplicit)
}

// PatternOf classifies an atomic insight against the grid it was found on.
// Molecules have no single pattern; use Patterns for them.
func PatternOf(g *domain.Grid, ins Insight) (Pattern, bool) {
	switch v := ins.(type) {
	case Conflict:
		return ConflictPattern(v.Locs.Unit), true
	case BarredLoc:
		return BarredLocPattern(g, v.Loc), true
	case BarredNum:
		return BarredNumPattern(g, v.Unit, v.Num), true
	case ForcedLoc:
		if countOpenLocs(g, domain.WholeUnit(v.Unit)) == 1 {
			return LastLocPattern(v.Unit), true
		}
		return ForcedLocPattern(g, v.Unit, v.Num), true
	case ForcedNum:
		return ForcedNumPattern(g, v.Loc), true
	case Overlap:
		return OverlapPattern(g, v.Unit, v.Extra.Unit, v.Num), true
	case LockedSet:
		if v.Naked {
			return NakedSetPattern(g, v.Nums, v.Locs), true
		}
		return HiddenSetPattern(g, v.Nums, v.Locs), true
	}
	return Pattern{}, false
}

// Patterns returns the patterns of all atoms of an insight, antecedents
// included.
func Patterns(g *domain.Grid, ins Insight) []Pattern {
	var out []Pattern
	var walk func(Insight)
	walk = func(ins Insight) {
		switch v := ins.(type) {
		case Implication:
			for _, ant := range v.Antecedents {
				walk(ant)
			}
			walk(v.Consequent)
		case DisprovedAssignment:
			for _, ia := range v.ImpliedAssignments {
				walk(ia)
			}
			walk(v.ResultingError)
		default:
			if p, ok := PatternOf(g, ins); ok {
				out = append(out, p)
			}
		}
	}
	walk(ins)
	return out
}
