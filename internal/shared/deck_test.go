package shared

import (
	"testing"
)

func TestNewDeckHasFortyUniqueCards(t *testing.T) {
	d := NewDeck()
	if d.Remaining() != 40 {
		t.Fatalf("deck holds %d cards, want 40", d.Remaining())
	}

	seen := make(map[string]bool, 40)
	for _, c := range d.Cards {
		key := string(c.Suit) + "/" + c.Name
		if seen[key] {
			t.Errorf("duplicate card %s", key)
		}
		seen[key] = true
		if c.GrandValue == 0 || c.PetitValue == 0 || c.GameValue == 0 {
			t.Errorf("card %s missing a value: %+v", key, c)
		}
	}
}

func TestCardValueTable(t *testing.T) {
	d := NewDeck()
	want := map[string][3]int{
		"As": {1, 1, 1},
		"3":  {13, 11, 10},
		"7":  {6, 6, 7},
		"V":  {7, 7, 10},
		"R":  {14, 12, 10},
	}
	for _, c := range d.Cards {
		v, ok := want[c.Name]
		if !ok {
			continue
		}
		if c.GrandValue != v[0] || c.PetitValue != v[1] || c.GameValue != v[2] {
			t.Errorf("%s = %d/%d/%d, want %d/%d/%d",
				c.Name, c.GrandValue, c.PetitValue, c.GameValue, v[0], v[1], v[2])
		}
	}
}

func TestDealAndDraw(t *testing.T) {
	d := NewDeck()
	hands := d.Deal(4, 4)
	if len(hands) != 4 {
		t.Fatalf("dealt %d hands", len(hands))
	}
	for i, h := range hands {
		if len(h) != 4 {
			t.Errorf("hand %d has %d cards", i, len(h))
		}
	}
	if d.Remaining() != 24 {
		t.Errorf("%d cards remain, want 24", d.Remaining())
	}

	if got := d.Deal(4, 7); got != nil {
		t.Error("a deal the deck cannot cover should return nil")
	}
}

func TestDrawRecyclesDiscardPile(t *testing.T) {
	d := NewDeck()
	drawn := d.Draw(38)
	if len(drawn) != 38 || d.Remaining() != 2 {
		t.Fatalf("drew %d, %d remain", len(drawn), d.Remaining())
	}

	d.Discard(drawn[:10])
	got := d.Draw(6)
	if len(got) != 6 {
		t.Fatalf("draw after recycle returned %d cards", len(got))
	}
	if d.Remaining() != 6 || len(d.Discards) != 0 {
		t.Errorf("remaining=%d discards=%d, want 6/0", d.Remaining(), len(d.Discards))
	}

	// More than the whole pool is simply not available.
	if got := d.Draw(20); got != nil {
		t.Error("overdraw should return nil")
	}
}

func TestTakeCardsPreservesOrder(t *testing.T) {
	p := NewPlayer("id", 0, "alice")
	d := NewDeck()
	p.SetHand(d.Draw(4))
	orig := append([]Card(nil), p.Hand...)

	taken := p.TakeCards([]int{1, 3})
	if len(taken) != 2 || taken[0] != orig[1] || taken[1] != orig[3] {
		t.Errorf("taken = %v, want cards 1 and 3", taken)
	}
	if len(p.Hand) != 2 || p.Hand[0] != orig[0] || p.Hand[1] != orig[2] {
		t.Errorf("hand = %v, want cards 0 and 2 in order", p.Hand)
	}

	p.AddCards(d.Draw(2))
	if len(p.Hand) != 4 {
		t.Errorf("hand has %d cards after redraw", len(p.Hand))
	}
}

func TestTeamOfSeat(t *testing.T) {
	for seat, want := range map[int]TeamID{0: TeamAB, 1: TeamCD, 2: TeamAB, 3: TeamCD} {
		if got := TeamOfSeat(seat); got != want {
			t.Errorf("TeamOfSeat(%d) = %s, want %s", seat, got, want)
		}
	}
	if TeamAB.Opponent() != TeamCD || TeamCD.Opponent() != TeamAB {
		t.Error("opponents mismatched")
	}
	if TeamAB.Seats() != [2]int{0, 2} || TeamCD.Seats() != [2]int{1, 3} {
		t.Error("seat pairs mismatched")
	}
}
