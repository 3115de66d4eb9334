package marks

import (
	"fmt"
	"strings"

	"svw.info/sudoku-insight/internal/domain"
)

// String renders the store as nine rows of 81 tokens total: each token is
// the cell's candidate digits, with a trailing '!' when the cell has a
// recorded assignment.
func (m *Marks) String() string {
	var b strings.Builder
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			loc := domain.LocAt(r, c)
			if n := m.AssignedNum(loc); n != 0 {
				b.WriteString(n.String())
				b.WriteByte('!')
				continue
			}
			for _, n := range m.PossibleNums(loc).Nums() {
				b.WriteString(n.String())
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse reads the token format back into a store: 81 tokens of digits with
// an optional trailing '!', separated by anything else. Assigned tokens are
// replayed as assignments and open tokens as eliminations, so the two
// candidate views come out mutually consistent.
func Parse(s string) (*Marks, error) {
	type token struct {
		nums     domain.NumSet
		assigned bool
	}
	var tokens []token
	cur := token{}
	open := false
	flush := func() {
		if open {
			tokens = append(tokens, cur)
			cur = token{}
			open = false
		}
	}
	for _, r := range s {
		switch {
		case r >= '1' && r <= '9':
			cur.nums = cur.nums.With(domain.Numeral(r - '0'))
			open = true
		case r == '!':
			if !open {
				return nil, fmt.Errorf("stray '!' in marks text")
			}
			cur.assigned = true
			flush()
		default:
			flush()
		}
	}
	flush()
	if len(tokens) != domain.LocCount {
		return nil, fmt.Errorf("marks text has %d tokens, want %d", len(tokens), domain.LocCount)
	}
	b := NewBuilder()
	for i, tok := range tokens {
		loc := domain.Loc(i)
		if tok.assigned {
			if tok.nums.Size() != 1 {
				return nil, fmt.Errorf("cell %v: assigned token needs exactly one digit", loc)
			}
			b.Assign(domain.AssignmentOf(loc, tok.nums.Get(0)))
		}
	}
	for i, tok := range tokens {
		loc := domain.Loc(i)
		if tok.assigned {
			continue
		}
		for _, n := range tok.nums.Not().Nums() {
			b.Eliminate(domain.AssignmentOf(loc, n))
		}
	}
	return b.Build(), nil
}
