package game

import (
	"testing"

	"mus-game/internal/shared"
)

// card builds a test card by rank name with the fixed value table.
func card(name string) shared.Card {
	values := map[string][3]int{
		"As": {1, 1, 1},
		"2":  {2, 2, 2},
		"3":  {13, 11, 10},
		"4":  {3, 3, 4},
		"5":  {4, 4, 5},
		"6":  {5, 5, 6},
		"7":  {6, 6, 7},
		"V":  {7, 7, 10},
		"C":  {8, 8, 10},
		"R":  {14, 12, 10},
	}
	v := values[name]
	return shared.Card{Suit: shared.Urrea, Name: name, GrandValue: v[0], PetitValue: v[1], GameValue: v[2]}
}

func hand(names ...string) []shared.Card {
	cards := make([]shared.Card, len(names))
	for i, n := range names {
		cards[i] = card(n)
	}
	return cards
}

func TestBestGrandAndPetit(t *testing.T) {
	h := hand("As", "4", "R", "7")
	if got := BestGrand(h); got != 14 {
		t.Errorf("BestGrand = %d, want 14", got)
	}
	if got := BestPetit(h); got != 1 {
		t.Errorf("BestPetit = %d, want 1", got)
	}
}

func TestDetectPairPattern(t *testing.T) {
	cases := []struct {
		names []string
		want  PairPattern
	}{
		{[]string{"As", "2", "4", "7"}, PairNone},
		{[]string{"R", "R", "As", "2"}, PairSingle},
		{[]string{"5", "5", "5", "2"}, PairBrelan},
		{[]string{"R", "R", "As", "As"}, PairDouble},
		{[]string{"7", "7", "7", "7"}, PairDouble}, // four of a kind counts as double pair
	}
	for _, c := range cases {
		if got := DetectPairPattern(hand(c.names...)); got != c.want {
			t.Errorf("DetectPairPattern(%v) = %s, want %s", c.names, got, c.want)
		}
	}
}

func TestCalculateJeu(t *testing.T) {
	total, has := CalculateJeu(hand("R", "C", "V", "As")) // 10+10+10+1
	if total != 31 || !has {
		t.Errorf("got total=%d has=%v, want 31 true", total, has)
	}

	total, has = CalculateJeu(hand("R", "C", "5", "5")) // 10+10+5+5
	if total != 30 || has {
		t.Errorf("got total=%d has=%v, want 30 false", total, has)
	}
}

func TestCompareJeuTotals(t *testing.T) {
	// Desirability: 31 > 32 > 40 > 39 > ... > 33.
	if CompareJeuTotals(31, 32) <= 0 {
		t.Error("31 should beat 32")
	}
	if CompareJeuTotals(32, 40) <= 0 {
		t.Error("32 should beat 40")
	}
	if CompareJeuTotals(40, 39) <= 0 {
		t.Error("40 should beat 39")
	}
	if CompareJeuTotals(34, 33) <= 0 {
		t.Error("34 should beat 33")
	}
	if CompareJeuTotals(33, 30) <= 0 {
		t.Error("any jeu should beat a non-qualifying total")
	}
	if CompareJeuTotals(36, 36) != 0 {
		t.Error("equal totals should compare equal")
	}
}

func TestTeamAggregation(t *testing.T) {
	first := hand("R", "R", "As", "2")  // grand 14, petit 1, pair, sum 23
	second := hand("4", "5", "6", "7")  // grand 6, petit 3, none, sum 22

	if got := TeamGrand(first, second); got != 14 {
		t.Errorf("TeamGrand = %d, want 14", got)
	}
	if got := TeamPetit(first, second); got != 1 {
		t.Errorf("TeamPetit = %d, want 1", got)
	}
	if got := TeamPairPattern(first, second); got != PairSingle {
		t.Errorf("TeamPairPattern = %s, want pair", got)
	}
	if got := TeamPuntuak(first, second); got != 23 {
		t.Errorf("TeamPuntuak = %d, want 23", got)
	}
}

func TestTeamJeuPicksMostDesirable(t *testing.T) {
	with31 := hand("R", "C", "V", "As") // 31
	with40 := hand("R", "C", "V", "3")  // 40

	total, has := TeamJeu(with31, with40)
	if !has || total != 31 {
		t.Errorf("TeamJeu = %d/%v, want 31/true (31 outranks 40)", total, has)
	}

	// Only one member qualifies.
	under := hand("As", "2", "4", "5") // 12
	total, has = TeamJeu(under, with40)
	if !has || total != 40 {
		t.Errorf("TeamJeu = %d/%v, want 40/true", total, has)
	}

	// The threshold is per hand, never pooled.
	almost := hand("R", "C", "5", "4") // 29
	if _, has := TeamJeu(under, almost); has {
		t.Error("TeamJeu should not pool hands to reach 31")
	}
}

func TestTeamPairPatternKeepsFirstOnTie(t *testing.T) {
	a := hand("R", "R", "As", "2")
	b := hand("5", "5", "6", "7")
	// Both are single pairs; strict > keeps the first compared.
	if got := TeamPairPattern(a, b); got != PairSingle {
		t.Errorf("TeamPairPattern = %s, want pair", got)
	}
}
