package bot

import (
	"math/rand/v2"
	"sort"

	"mus-game/internal/game"
	"mus-game/internal/shared"
)

// Personality shapes how willing a bot is to open, raise and accept bets.
type Personality int

const (
	Aggressive Personality = iota
	Cautious
	Balanced
	Bluffer
)

func (p Personality) String() string {
	switch p {
	case Aggressive:
		return "aggressive"
	case Cautious:
		return "cautious"
	case Bluffer:
		return "bluffer"
	default:
		return "balanced"
	}
}

// Bot decides mus votes, discards and bets for one seat. It works from the
// same per-seat snapshot a human client receives, so it never sees hidden
// hands, and it issues the same action calls.
type Bot struct {
	Seat        int
	Name        string
	Personality Personality
}

// New creates a bot with a random personality.
func New(seat int, name string) *Bot {
	return &Bot{
		Seat:        seat,
		Name:        name,
		Personality: Personality(rand.IntN(4)),
	}
}

func (b *Bot) aggressiveness() float64 {
	switch b.Personality {
	case Aggressive:
		return 0.8
	case Cautious:
		return 0.3
	case Bluffer:
		return 0.9
	default:
		return 0.5
	}
}

// DecideVote returns true for MUS (renegotiate) and false for JOSTA (play).
func (b *Bot) DecideVote(snap game.Snapshot) bool {
	quality := handQuality(snap.MyCards)
	weak := quality < 0.5

	switch b.Personality {
	case Aggressive:
		return weak && rand.Float64() > 0.3
	case Cautious:
		return quality < 0.7
	case Bluffer:
		return rand.Float64() > 0.5
	default:
		return weak
	}
}

// DecideDiscard picks the 1-3 weakest cards to exchange, protecting pairs.
func (b *Bot) DecideDiscard(snap game.Snapshot) []int {
	type scored struct {
		idx   int
		score float64
	}
	cards := snap.MyCards
	loose := 0
	ranked := make([]scored, len(cards))
	for i, c := range cards {
		ranked[i] = scored{idx: i, score: cardValue(c, cards)}
		if !inPair(c, cards) {
			loose++
		}
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })

	count := rand.IntN(3) + 1
	if count > loose {
		count = loose
	}
	if count < 1 {
		count = 1
	}
	indices := make([]int, 0, count)
	for i := 0; i < count && i < len(ranked); i++ {
		indices = append(indices, ranked[i].idx)
	}
	return indices
}

// DecideBet chooses a betting action for the current phase.
func (b *Bot) DecideBet(snap game.Snapshot) game.BetAction {
	strength := b.phaseStrength(snap)

	if snap.Hordago {
		if strength > 0.75 {
			return game.BetAction{Kind: game.Kanta}
		}
		return game.BetAction{Kind: game.Tira}
	}

	if snap.BaseStake == 0 {
		return b.decideOpening(strength)
	}
	return b.decideResponse(strength, snap.RaiseCount)
}

func (b *Bot) decideOpening(strength float64) game.BetAction {
	aggr := b.aggressiveness()

	if strength > 0.8 && rand.Float64() < aggr*0.3 {
		return game.BetAction{Kind: game.Hordago}
	}
	if strength > 0.65 && rand.Float64() < aggr {
		return game.BetAction{Kind: game.Imido}
	}
	return game.BetAction{Kind: game.Paso}
}

func (b *Bot) decideResponse(strength float64, raiseCount int) game.BetAction {
	aggr := b.aggressiveness()

	if strength > 0.75 && raiseCount < 3 && rand.Float64() < aggr {
		return game.BetAction{Kind: game.Gehiago, Amount: rand.IntN(2) + 1}
	}
	if strength > 0.45 {
		return game.BetAction{Kind: game.Iduki}
	}
	return game.BetAction{Kind: game.Tira}
}

// phaseStrength estimates how strong the bot's own hand is for the phase
// being bet on, normalized to 0..1.
func (b *Bot) phaseStrength(snap game.Snapshot) float64 {
	cards := snap.MyCards

	switch snap.Phase {
	case game.PhaseGrand:
		return float64(game.BestGrand(cards)) / 14

	case game.PhasePetit:
		return float64(13-game.BestPetit(cards)) / 12

	case game.PhasePaires:
		return float64(game.DetectPairPattern(cards)) / 3

	case game.PhaseJeu, game.PhasePuntuak:
		total, hasJeu := game.CalculateJeu(cards)
		if !hasJeu {
			if snap.Phase == game.PhasePuntuak {
				return float64(total) / 40
			}
			return 0.3
		}
		// 31 is perfect; 32 then 40 down to 33 trail it.
		rank := map[int]int{31: 0, 32: 1, 40: 2, 39: 3, 38: 4, 37: 5, 36: 6, 35: 7, 34: 8, 33: 9}
		return 1 - float64(rank[total])/10

	default:
		return 0.5
	}
}

// handQuality blends the four phase outlooks into one 0..1 score.
func handQuality(cards []shared.Card) float64 {
	if len(cards) == 0 {
		return 0
	}

	score := (float64(game.BestGrand(cards)) / 14) * 0.25
	score += (float64(13-game.BestPetit(cards)) / 12) * 0.25
	score += (float64(game.DetectPairPattern(cards)) / 3) * 0.25

	total, hasJeu := game.CalculateJeu(cards)
	if hasJeu {
		score += 0.25
	} else {
		score += (float64(total) / 40) * 0.15
	}

	if score > 1 {
		return 1
	}
	return score
}

// inPair reports whether the card's rank appears more than once in the hand.
func inPair(card shared.Card, hand []shared.Card) bool {
	same := 0
	for _, c := range hand {
		if c.Name == card.Name {
			same++
		}
	}
	return same >= 2
}

// cardValue scores an individual card's worth across all phases; cards
// participating in a pair are kept.
func cardValue(card shared.Card, hand []shared.Card) float64 {
	score := float64(card.GrandValue) * 0.3
	score += float64(13-card.PetitValue) * 0.2
	score += float64(card.GameValue) * 0.3

	same := 0
	for _, c := range hand {
		if c.Name == card.Name {
			same++
		}
	}
	if same >= 2 {
		score += 20 * float64(same)
	}
	return score
}
