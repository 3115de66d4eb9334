package domain

// Assignment pairs a cell with the numeral placed (or considered) there.
type Assignment struct {
	Loc Loc
	Num Numeral
}

func AssignmentOf(loc Loc, num Numeral) Assignment {
	return Assignment{Loc: loc, Num: num}
}

func (a Assignment) String() string {
	return a.Loc.String() + " = " + a.Num.String()
}
