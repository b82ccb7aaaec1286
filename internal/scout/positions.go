package scout

// Position inference thresholds on per-game averages.
const (
	guardAssists   = 4.5
	forwardRebound = 6.0
	centerRebound  = 9.0
)

// InferPositions derives a position set from per-game assist and rebound
// averages. Players matching nothing default to the G/F wing profile.
func InferPositions(assists, rebounds float64) []string {
	var positions []string
	if assists > guardAssists {
		positions = append(positions, "G")
	}
	if rebounds > forwardRebound {
		positions = append(positions, "F")
	}
	if rebounds > centerRebound {
		positions = append(positions, "C")
	}
	if len(positions) == 0 {
		positions = []string{"G", "F"}
	}
	return positions
}

// positionsOverlap reports whether two position sets share an entry.
func positionsOverlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
