package marks

import (
	"strings"
	"testing"

	"svw.info/sudoku-insight/internal/domain"
)

func TestFormatRoundTrip(t *testing.T) {
	g, err := domain.ParseGrid(sampleFlat)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder()
	if !b.AssignAll(g) {
		t.Fatal("sample grid must assign cleanly")
	}
	m := b.Build()
	text := m.String()
	if !strings.Contains(text, "5!") {
		t.Fatalf("expected an assigned token in:\n%s", text)
	}
	back, err := Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	for _, loc := range domain.AllLocs() {
		if back.PossibleNums(loc) != m.PossibleNums(loc) {
			t.Fatalf("candidates differ at %v: %v vs %v",
				loc, back.PossibleNums(loc), m.PossibleNums(loc))
		}
		if back.AssignedNum(loc) != m.AssignedNum(loc) {
			t.Fatalf("assignment differs at %v", loc)
		}
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	if _, err := Parse("12 34"); err == nil {
		t.Error("too few tokens should fail")
	}
	if _, err := Parse("!" + strings.Repeat("1 ", 81)); err == nil {
		t.Error("stray bang should fail")
	}
	if _, err := Parse(strings.Repeat("12! ", 81)); err == nil {
		t.Error("multi-digit assigned token should fail")
	}
}
