package shared

// TeamID identifies one of the two fixed partnerships. Teams are derived
// from seat parity and not stored independently.
type TeamID string

const (
	TeamAB TeamID = "AB" // seats 0 and 2
	TeamCD TeamID = "CD" // seats 1 and 3
)

// TeamOfSeat maps a seat index to its team.
func TeamOfSeat(seat int) TeamID {
	if seat%2 == 0 {
		return TeamAB
	}
	return TeamCD
}

// Opponent returns the other team.
func (t TeamID) Opponent() TeamID {
	if t == TeamAB {
		return TeamCD
	}
	return TeamAB
}

// Seats returns the two seat indices belonging to the team.
func (t TeamID) Seats() [2]int {
	if t == TeamAB {
		return [2]int{0, 2}
	}
	return [2]int{1, 3}
}
