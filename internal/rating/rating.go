// Package rating estimates how long a human would take to solve a puzzle,
// in minutes, by simulating solve attempts built from the insights a
// person could actually spot.
package rating

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty is the intrinsic difficulty tier of a puzzle. NoDisproofs
// means the basic solution insights suffice. SimpleDisproofs means some
// candidates must be disproved by assigning them and watching the basic
// insights run into an error. RecursiveDisproofs means simple disproofs
// run out and disproofs must nest. Ordinals are serialized.
type Difficulty int

const (
	NoDisproofs Difficulty = iota
	SimpleDisproofs
	RecursiveDisproofs
)

func (d Difficulty) String() string {
	switch d {
	case NoDisproofs:
		return "no disproofs"
	case SimpleDisproofs:
		return "simple disproofs"
	case RecursiveDisproofs:
		return "recursive disproofs"
	}
	return "unknown"
}

// Rating is the result of evaluating a puzzle.
type Rating struct {
	// Version of the estimation algorithm that produced this rating.
	Version int
	// Score estimates the expected solution time in minutes.
	Score float64
	// StandardDeviation of the per-trial scores.
	StandardDeviation float64
	// EvalComplete is false when the evaluation was cancelled; the score
	// is then probably lower than a finished run would have produced.
	EvalComplete bool
	Difficulty   Difficulty
	// Improper marks a puzzle with more than one solution.
	Improper bool
}

// Serialize renders the rating in the form Parse reverses.
func (r Rating) Serialize() string {
	return strings.Join([]string{
		strconv.Itoa(r.Version),
		strconv.FormatFloat(r.Score, 'g', -1, 64),
		strconv.FormatBool(r.EvalComplete),
		strconv.Itoa(int(r.Difficulty)),
		strconv.FormatBool(r.Improper),
		strconv.FormatFloat(r.StandardDeviation, 'g', -1, 64),
	}, ",")
}

func (r Rating) String() string {
	return "Rating:" + r.Serialize()
}

// Parse restores a serialized rating. The standard deviation field is
// optional; older serializations omit it.
func Parse(s string) (Rating, error) {
	fields := strings.Split(s, ",")
	if len(fields) < 5 {
		return Rating{}, fmt.Errorf("rating: malformed %q", s)
	}
	version, err := strconv.Atoi(fields[0])
	if err != nil {
		return Rating{}, fmt.Errorf("rating: bad version in %q: %w", s, err)
	}
	score, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Rating{}, fmt.Errorf("rating: bad score in %q: %w", s, err)
	}
	complete, err := strconv.ParseBool(fields[2])
	if err != nil {
		return Rating{}, fmt.Errorf("rating: bad completeness in %q: %w", s, err)
	}
	ordinal, err := strconv.Atoi(fields[3])
	if err != nil || ordinal < int(NoDisproofs) || ordinal > int(RecursiveDisproofs) {
		return Rating{}, fmt.Errorf("rating: bad difficulty in %q", s)
	}
	improper, err := strconv.ParseBool(fields[4])
	if err != nil {
		return Rating{}, fmt.Errorf("rating: bad properness in %q: %w", s, err)
	}
	var stddev float64
	if len(fields) > 5 {
		stddev, err = strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return Rating{}, fmt.Errorf("rating: bad deviation in %q: %w", s, err)
		}
	}
	return Rating{
		Version:           version,
		Score:             score,
		StandardDeviation: stddev,
		EvalComplete:      complete,
		Difficulty:        Difficulty(ordinal),
		Improper:          improper,
	}, nil
}
