package generator

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"svw.info/sudoku-insight/internal/domain"
)

// BasicVersion identifies the generation algorithm behind GeneratePuzzle.
const BasicVersion = 1

// NumStreams is the number of streams puzzle consumers shard into.
const NumStreams = 5

// Chance that a puzzle is generated with parameters allowing several
// solutions. Changing it, MaxSolutions, or MaxHoles requires bumping
// BasicVersion.
const chanceOfImproper = 0.125

// MaxSolutions bounds the solutions of any generated puzzle.
const MaxSolutions = 3

// MaxHoles bounds the undetermined cells across the solutions of a
// generated improper puzzle.
const MaxHoles = 7

// Name identifies a generated puzzle. The same name always regenerates
// the same puzzle.
type Name struct {
	Version int
	Stream  int
	Year    int
	Month   int
	Counter int
}

func (n Name) String() string {
	return fmt.Sprintf("%d:%d:%d-%d:%d", n.Version, n.Stream, n.Year, n.Month, n.Counter)
}

// ParseName reads a name in the form version:stream:year-month:counter.
func ParseName(s string) (Name, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return Name{}, fmt.Errorf("generator: malformed puzzle name %q", s)
	}
	yearMonth := strings.Split(parts[2], "-")
	if len(yearMonth) != 2 {
		return Name{}, fmt.Errorf("generator: malformed puzzle name %q", s)
	}
	fields := []string{parts[0], parts[1], yearMonth[0], yearMonth[1], parts[3]}
	nums := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Name{}, fmt.Errorf("generator: malformed puzzle name %q: %w", s, err)
		}
		nums[i] = v
	}
	return Name{
		Version: nums[0],
		Stream:  nums[1],
		Year:    nums[2],
		Month:   nums[3],
		Counter: nums[4],
	}, nil
}

func (n Name) seed() int64 {
	h := fnv.New64a()
	io.WriteString(h, n.String())
	return int64(h.Sum64())
}

// Puzzle is a generated puzzle and how it was made.
type Puzzle struct {
	Grid     domain.Grid
	Name     Name
	Symmetry Symmetry
	// SymmetryBroken marks puzzles whose final clue layout no longer
	// matches the symmetry that seeded them.
	SymmetryBroken bool
	NumSolutions   int
}

// GeneratePuzzle generates the puzzle the given name implies.
func GeneratePuzzle(ctx context.Context, n Name) (Puzzle, error) {
	if n.Version != BasicVersion {
		return Puzzle{}, fmt.Errorf("generator: unrecognized algorithm version %d", n.Version)
	}
	rnd := rand.New(rand.NewSource(n.seed()))
	maxSolutions, maxHoles := 1, 0
	if rnd.Float64() < chanceOfImproper {
		maxSolutions, maxHoles = MaxSolutions, MaxHoles
	}
	sym := ChooseSymmetry(rnd)
	target, err := MakeTarget(ctx, rnd)
	if err != nil {
		return Puzzle{}, err
	}
	res := StrategySubtractiveRandom.Generate(ctx, rnd, sym, target, maxSolutions, maxHoles)
	if res.Interrupted {
		return Puzzle{}, ctx.Err()
	}
	return Puzzle{
		Grid:           res.Start,
		Name:           n,
		Symmetry:       sym,
		SymmetryBroken: !sym.Describes(res.Start),
		NumSolutions:   res.NumSolutions,
	}, nil
}
