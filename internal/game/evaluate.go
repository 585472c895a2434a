package game

import (
	"mus-game/internal/shared"
)

// Pure hand evaluation. All inputs are well-formed 4-card hands by
// construction; no user-facing errors originate here.

// PairPattern classifies the rank repetitions within one 4-card hand,
// ordered by strength.
type PairPattern int

const (
	PairNone   PairPattern = iota // no repeated rank
	PairSingle                    // one pair
	PairBrelan                    // three of a kind
	PairDouble                    // two distinct pairs or four of a kind
)

func (p PairPattern) String() string {
	switch p {
	case PairSingle:
		return "pair"
	case PairBrelan:
		return "brelan"
	case PairDouble:
		return "double_pair"
	default:
		return "none"
	}
}

// BestGrand returns the highest grand value among the cards.
func BestGrand(cards []shared.Card) int {
	best := 0
	for _, c := range cards {
		if c.GrandValue > best {
			best = c.GrandValue
		}
	}
	return best
}

// BestPetit returns the lowest petit value among the cards.
func BestPetit(cards []shared.Card) int {
	best := 0
	for i, c := range cards {
		if i == 0 || c.PetitValue < best {
			best = c.PetitValue
		}
	}
	return best
}

// DetectPairPattern classifies the pair pattern of a single 4-card hand.
// Four of a kind counts as a double pair.
func DetectPairPattern(hand []shared.Card) PairPattern {
	counts := make(map[string]int, 4)
	for _, c := range hand {
		counts[c.Name]++
	}

	pairs, triple, quad := 0, false, false
	for _, n := range counts {
		switch n {
		case 2:
			pairs++
		case 3:
			triple = true
		case 4:
			quad = true
		}
	}

	switch {
	case quad, pairs == 2:
		return PairDouble
	case triple:
		return PairBrelan
	case pairs == 1:
		return PairSingle
	default:
		return PairNone
	}
}

// CalculateJeu sums the game values of a 4-card hand. The hand "has jeu"
// iff the sum reaches 31; the threshold is a per-hand property, never a
// team-pooled one.
func CalculateJeu(hand []shared.Card) (total int, hasJeu bool) {
	for _, c := range hand {
		total += c.GameValue
	}
	return total, total >= 31
}

// jeuRank maps a jeu total to its desirability rank. Totals are ordered
// 31 > 32 > 40 > 39 > ... > 34 > 33; anything outside 31..40 is no jeu.
func jeuRank(total int) int {
	switch total {
	case 31:
		return 0
	case 32:
		return 1
	}
	if total >= 33 && total <= 40 {
		return 2 + (40 - total)
	}
	return 100 // no jeu
}

// CompareJeuTotals orders two jeu totals by desirability: positive when a
// beats b, negative when b beats a, zero on equal standing.
func CompareJeuTotals(a, b int) int {
	return jeuRank(b) - jeuRank(a)
}

// TeamGrand is the best grand value across both members' hands.
func TeamGrand(first, second []shared.Card) int {
	a, b := BestGrand(first), BestGrand(second)
	if b > a {
		return b
	}
	return a
}

// TeamPetit is the best (lowest) petit value across both members' hands.
func TeamPetit(first, second []shared.Card) int {
	a, b := BestPetit(first), BestPetit(second)
	if b < a {
		return b
	}
	return a
}

// TeamPairPattern is the stronger of the two members' patterns. Pair and
// jeu potential are per-player properties: the 8 cards are never pooled.
func TeamPairPattern(first, second []shared.Card) PairPattern {
	a, b := DetectPairPattern(first), DetectPairPattern(second)
	if b > a {
		return b
	}
	return a
}

// TeamJeu returns the team's best qualifying jeu total, taken as the more
// desirable of the members' sums that individually reach 31. hasJeu is
// false when neither member qualifies.
func TeamJeu(first, second []shared.Card) (total int, hasJeu bool) {
	ta, oka := CalculateJeu(first)
	tb, okb := CalculateJeu(second)
	switch {
	case oka && okb:
		if CompareJeuTotals(tb, ta) > 0 {
			return tb, true
		}
		return ta, true
	case oka:
		return ta, true
	case okb:
		return tb, true
	default:
		return 0, false
	}
}

// TeamPuntuak is the larger of the members' raw game-value sums, used when
// the jeu slot falls back to Puntuak.
func TeamPuntuak(first, second []shared.Card) int {
	ta, _ := CalculateJeu(first)
	tb, _ := CalculateJeu(second)
	if tb > ta {
		return tb
	}
	return ta
}
