package domain

// Geometry tables, built once at startup. Everything downstream indexes
// into these by small integers.
var (
	allUnits [UnitCount]Unit

	// unitLocs maps each unit to its nine cells in board order.
	unitLocs [UnitCount][UnitSize]Loc

	allLocs      [LocCount]Loc
	locUnits     [LocCount][3]Unit
	locUnitIndex [LocCount][3]uint8
	locPeers     [LocCount][PeerCount]Loc
)

func init() {
	for i := range allUnits {
		allUnits[i] = Unit(i)
	}
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			unitLocs[Row(i)][j] = LocAt(i, j)
			unitLocs[Col(i)][j] = LocAt(j, i)
			r := (i/3)*3 + j/3
			c := (i%3)*3 + j%3
			unitLocs[Block(i)][j] = LocAt(r, c)
		}
	}
	for i := range allLocs {
		loc := Loc(i)
		allLocs[i] = loc
		locUnits[i] = [3]Unit{loc.Row(), loc.Col(), loc.Block()}
		for t := 0; t < 3; t++ {
			u := locUnits[i][t]
			for j, cell := range unitLocs[u] {
				if cell == loc {
					locUnitIndex[i][t] = uint8(j)
				}
			}
		}
	}
	for i := range allLocs {
		loc := Loc(i)
		seen := [LocCount]bool{}
		seen[loc] = true
		n := 0
		for t := 0; t < 3; t++ {
			for _, cell := range unitLocs[locUnits[i][t]] {
				if !seen[cell] {
					seen[cell] = true
					locPeers[i][n] = cell
					n++
				}
			}
		}
	}
}
