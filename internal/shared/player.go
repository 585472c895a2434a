package shared

// Stats accumulates per-session statistics for a player.
type Stats struct {
	PhasesWon        int `json:"phases_won"`
	RoundsPlayed     int `json:"rounds_played"`
	HordagosDeclared int `json:"hordagos_declared"`
	GamesWon         int `json:"games_won"`
}

// Player represents one of the four seats in a Mus game. The seat index is
// stable for the life of a room membership; removal renumbers the remaining
// seats.
type Player struct {
	ID        string // Unique identifier for the player (connection or bot id)
	Seat      int    // Seat index 0-3; seats 0/2 form team AB, 1/3 team CD
	Name      string
	Hand      []Card // Exactly 4 cards while a round is live
	Connected bool
	IsBot     bool
	Stats     Stats
}

// NewPlayer creates a new player for the given seat.
func NewPlayer(id string, seat int, name string) *Player {
	return &Player{
		ID:        id,
		Seat:      seat,
		Name:      name,
		Hand:      []Card{},
		Connected: true,
	}
}

// SetHand replaces the player's hand wholesale at deal time.
func (p *Player) SetHand(cards []Card) {
	p.Hand = cards
}

// TakeCards removes the cards at the given indices from the hand and returns
// them, preserving the order of the remaining cards. Indices must be valid
// and deduplicated by the caller.
func (p *Player) TakeCards(indices []int) []Card {
	taken := make([]Card, 0, len(indices))
	marked := make(map[int]bool, len(indices))
	for _, idx := range indices {
		marked[idx] = true
		taken = append(taken, p.Hand[idx])
	}

	kept := p.Hand[:0]
	for i, c := range p.Hand {
		if !marked[i] {
			kept = append(kept, c)
		}
	}
	p.Hand = kept
	return taken
}

// AddCards appends replacement cards drawn from the deck.
func (p *Player) AddCards(cards []Card) {
	p.Hand = append(p.Hand, cards...)
}

// Team reports the team the player's seat belongs to.
func (p *Player) Team() TeamID {
	return TeamOfSeat(p.Seat)
}
