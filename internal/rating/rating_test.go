package rating

import (
	"math"
	"testing"
)

func TestRatingRoundTrip(t *testing.T) {
	in := Rating{
		Version:           CurrentVersion,
		Score:             12.375,
		StandardDeviation: 1.25,
		EvalComplete:      true,
		Difficulty:        SimpleDisproofs,
		Improper:          false,
	}
	out, err := Parse(in.Serialize())
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("Parse(Serialize) = %+v, want %+v", out, in)
	}
}

func TestParseWithoutDeviation(t *testing.T) {
	r, err := Parse("2,3.5,true,1,false")
	if err != nil {
		t.Fatal(err)
	}
	if r.StandardDeviation != 0 {
		t.Errorf("StandardDeviation = %v, want 0", r.StandardDeviation)
	}
	if r.Score != 3.5 || r.Difficulty != SimpleDisproofs || !r.EvalComplete || r.Improper {
		t.Errorf("unexpected fields: %+v", r)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"2,3.5,true",
		"x,3.5,true,1,false",
		"2,score,true,1,false",
		"2,3.5,maybe,1,false",
		"2,3.5,true,9,false",
		"2,3.5,true,1,false,wide",
	} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", s)
		}
	}
}

func TestDifficultyString(t *testing.T) {
	if got := RecursiveDisproofs.String(); got != "recursive disproofs" {
		t.Errorf("String() = %q", got)
	}
}

func TestDeviation(t *testing.T) {
	if d := deviation(nil); d != 0 {
		t.Errorf("deviation(nil) = %v, want 0", d)
	}
	if d := deviation([]float64{4.2}); d != 0 {
		t.Errorf("deviation of one sample = %v, want 0", d)
	}
	if d := deviation([]float64{1, 2, 3}); math.Abs(d-1) > 1e-12 {
		t.Errorf("deviation(1,2,3) = %v, want 1", d)
	}
}
