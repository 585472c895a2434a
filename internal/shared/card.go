package shared

// Suit represents the suit of a card. Suits are cosmetic in Mus: no phase
// ever compares them.
type Suit string

const (
	Urrea   Suit = "Urrea"   // coins
	Kopa    Suit = "Kopa"    // cups
	Ezpata  Suit = "Ezpata"  // swords
	Bastoia Suit = "Bastoia" // clubs
)

// Card represents a single card in the Mus game. Each rank carries three
// independent comparison values: GrandValue ranks high cards, PetitValue
// ranks low cards (inverted order from grand), and GameValue is the point
// value used for the 31-point Jeu combination and the Puntuak fallback.
type Card struct {
	Suit       Suit   `json:"suit"`
	Name       string `json:"name"`
	GrandValue int    `json:"grand_value"`
	PetitValue int    `json:"petit_value"`
	GameValue  int    `json:"game_value"`
}

// rankValues fixes the three comparison values per rank for the life of the
// process. The 3 plays just under the king and the ace is the lowest card.
var rankValues = []struct {
	name  string
	grand int
	petit int
	game  int
}{
	{"As", 1, 1, 1},
	{"2", 2, 2, 2},
	{"3", 13, 11, 10},
	{"4", 3, 3, 4},
	{"5", 4, 4, 5},
	{"6", 5, 5, 6},
	{"7", 6, 6, 7},
	{"V", 7, 7, 10},
	{"C", 8, 8, 10},
	{"R", 14, 12, 10},
}
