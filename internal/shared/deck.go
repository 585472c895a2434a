package shared

import (
	"math/rand/v2"
)

// Deck represents the shuffled 40-card sequence consumed during dealing and
// redraws, together with the shared discard pile fed by the mus exchange.
// At every point within a round: len(Cards) + dealt hands + len(Discards)
// equals 40.
type Deck struct {
	Cards    []Card
	Discards []Card
}

// NewDeck creates a standard 40-card Mus deck (4 suits x 10 ranks), already
// shuffled. Exactly one Card exists per physical card.
func NewDeck() *Deck {
	suits := []Suit{Urrea, Kopa, Ezpata, Bastoia}

	cards := make([]Card, 0, 40)
	for _, suit := range suits {
		for _, rv := range rankValues {
			cards = append(cards, Card{
				Suit:       suit,
				Name:       rv.name,
				GrandValue: rv.grand,
				PetitValue: rv.petit,
				GameValue:  rv.game,
			})
		}
	}

	d := &Deck{Cards: cards}
	d.Shuffle()
	return d
}

// Shuffle randomizes the order of the remaining cards in the deck.
func (d *Deck) Shuffle() {
	rand.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Deal distributes cardsPerPlayer cards to numPlayers hands from the front
// of the deck. Returns nil if the deck cannot cover the deal.
func (d *Deck) Deal(numPlayers, cardsPerPlayer int) [][]Card {
	if len(d.Cards) < numPlayers*cardsPerPlayer {
		return nil
	}

	dealt := make([][]Card, numPlayers)
	for i := 0; i < numPlayers; i++ {
		dealt[i] = d.Draw(cardsPerPlayer)
	}
	return dealt
}

// Draw removes and returns n cards from the front of the deck. When the deck
// runs short during a long mus exchange, the discard pile is shuffled back in
// first so the 40-card conservation invariant holds.
func (d *Deck) Draw(n int) []Card {
	if len(d.Cards) < n {
		d.Cards = append(d.Cards, d.Discards...)
		d.Discards = d.Discards[:0]
		d.Shuffle()
	}
	if len(d.Cards) < n {
		return nil
	}

	drawn := make([]Card, n)
	copy(drawn, d.Cards[:n])
	d.Cards = d.Cards[n:]
	return drawn
}

// Discard places cards on the shared discard pile.
func (d *Deck) Discard(cards []Card) {
	d.Discards = append(d.Discards, cards...)
}

// Remaining reports how many cards are left to draw.
func (d *Deck) Remaining() int {
	return len(d.Cards)
}
