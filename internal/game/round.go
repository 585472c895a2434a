package game

import (
	"mus-game/internal/shared"
)

// Phase resolution and round lifecycle. Assumes the engine lock is held.

// comparePhase runs the phase's comparator over both teams' hands and
// returns the winner with the values compared. On exact equality the team
// holding the mano seat wins; this is the single universal tie-break.
func (e *Engine) comparePhase(phase Phase) (shared.TeamID, *ComparisonDetails) {
	ab0, ab1 := e.Players[0].Hand, e.Players[2].Hand
	cd0, cd1 := e.Players[1].Hand, e.Players[3].Hand

	var valAB, valCD, cmp int
	switch phase {
	case PhaseGrand:
		valAB, valCD = TeamGrand(ab0, ab1), TeamGrand(cd0, cd1)
		cmp = valAB - valCD
	case PhasePetit:
		valAB, valCD = TeamPetit(ab0, ab1), TeamPetit(cd0, cd1)
		cmp = valCD - valAB // lower is better
	case PhasePaires:
		valAB, valCD = int(TeamPairPattern(ab0, ab1)), int(TeamPairPattern(cd0, cd1))
		cmp = valAB - valCD
	case PhaseJeu:
		ja, _ := TeamJeu(ab0, ab1)
		jc, _ := TeamJeu(cd0, cd1)
		valAB, valCD = ja, jc
		cmp = CompareJeuTotals(ja, jc)
	case PhasePuntuak:
		valAB, valCD = TeamPuntuak(ab0, ab1), TeamPuntuak(cd0, cd1)
		cmp = valAB - valCD
	}

	details := &ComparisonDetails{TeamAB: valAB, TeamCD: valCD}
	switch {
	case cmp > 0:
		return shared.TeamAB, details
	case cmp < 0:
		return shared.TeamCD, details
	default:
		return shared.TeamOfSeat(e.Mano), details
	}
}

// enterPhase walks the remaining phase list, auto-resolving phases that are
// not playable, and opens betting on the first playable one. When the list
// is exhausted the round ends.
func (e *Engine) enterPhase() {
	for e.phaseIdx < len(e.phases) {
		phase := e.phases[e.phaseIdx]

		switch phase {
		case PhasePaires:
			if done := e.precheckPaires(); done {
				e.phaseIdx++
				continue
			}
		case PhaseJeu:
			relabeled, done := e.precheckJeu()
			if relabeled {
				// Neither team reaches 31: the slot plays as Puntuak.
				e.phases[e.phaseIdx] = PhasePuntuak
				continue
			}
			if done {
				e.phaseIdx++
				continue
			}
		}

		if e.State == StateGameOver {
			return
		}
		e.Betting = newBettingState(phase, e.Mano)
		e.State = StateBetting
		return
	}

	e.endRound()
}

// precheckPaires resolves the Paires phase without betting when fewer than
// two teams hold a pair pattern. Returns true when the phase was consumed.
func (e *Engine) precheckPaires() bool {
	pAB := TeamPairPattern(e.Players[0].Hand, e.Players[2].Hand)
	pCD := TeamPairPattern(e.Players[1].Hand, e.Players[3].Hand)

	switch {
	case pAB == PairNone && pCD == PairNone:
		e.Results = append(e.Results, PhaseResult{Phase: PhasePaires, Reason: ReasonSkip})
		return true
	case pCD == PairNone:
		e.resolvePhase(PhaseResult{Phase: PhasePaires, Winner: shared.TeamAB, Reason: ReasonWalkover,
			Details: &ComparisonDetails{TeamAB: int(pAB), TeamCD: int(pCD)}}, int(pAB))
		return true
	case pAB == PairNone:
		e.resolvePhase(PhaseResult{Phase: PhasePaires, Winner: shared.TeamCD, Reason: ReasonWalkover,
			Details: &ComparisonDetails{TeamAB: int(pAB), TeamCD: int(pCD)}}, int(pCD))
		return true
	default:
		return false
	}
}

// precheckJeu decides whether the Jeu slot is bet on, awarded one-sided, or
// relabeled Puntuak for this round.
func (e *Engine) precheckJeu() (relabeled, done bool) {
	jAB, hasAB := TeamJeu(e.Players[0].Hand, e.Players[2].Hand)
	jCD, hasCD := TeamJeu(e.Players[1].Hand, e.Players[3].Hand)

	switch {
	case !hasAB && !hasCD:
		return true, false
	case hasAB && !hasCD:
		e.resolvePhase(PhaseResult{Phase: PhaseJeu, Winner: shared.TeamAB, Reason: ReasonWalkover,
			Details: &ComparisonDetails{TeamAB: jAB, TeamCD: jCD}}, jeuPrime(jAB))
		return false, true
	case hasCD && !hasAB:
		e.resolvePhase(PhaseResult{Phase: PhaseJeu, Winner: shared.TeamCD, Reason: ReasonWalkover,
			Details: &ComparisonDetails{TeamAB: jAB, TeamCD: jCD}}, jeuPrime(jCD))
		return false, true
	default:
		return false, false
	}
}

// jeuPrime is the deferred bonus for an uncontested jeu: 3 for the perfect
// 31, 2 for any other qualifying total.
func jeuPrime(total int) int {
	if total == 31 {
		return 3
	}
	return 2
}

// allPassAward is the immediate award for a phase nobody opened: 1 point
// for Grand and Petit, 0 (plus a prime) for the card-combination phases.
func (e *Engine) allPassAward(phase Phase, winner shared.TeamID) (points, prime int) {
	switch phase {
	case PhaseGrand, PhasePetit:
		return 1, 0
	case PhasePaires:
		seats := winner.Seats()
		p := TeamPairPattern(e.Players[seats[0]].Hand, e.Players[seats[1]].Hand)
		return 0, int(p)
	case PhaseJeu:
		seats := winner.Seats()
		total, _ := TeamJeu(e.Players[seats[0]].Hand, e.Players[seats[1]].Hand)
		return 0, jeuPrime(total)
	default: // Puntuak
		return 0, 1
	}
}

// resolvePhase commits a resolved phase: immediate points now, any prime
// stashed for round end.
func (e *Engine) resolvePhase(res PhaseResult, prime int) {
	e.Results = append(e.Results, res)
	if res.Winner != "" {
		if res.Points > 0 {
			e.addScore(res.Winner, res.Points)
		}
		if prime > 0 {
			e.primes = append(e.primes, PendingPrime{Phase: res.Phase, Team: res.Winner, Points: prime})
		}
		for _, seat := range res.Winner.Seats() {
			e.Players[seat].Stats.PhasesWon++
		}
	}
}

// addScore credits points and checks the terminal threshold. Scores never
// decrease.
func (e *Engine) addScore(team shared.TeamID, points int) {
	e.Scores[team] += points
	if e.Scores[team] >= e.WinThreshold {
		e.finishGame(team)
	}
}

// endRound pays out stashed primes in phase order, then either finishes the
// game or rotates the mano and waits for the next deal.
func (e *Engine) endRound() {
	paid := make([]PendingPrime, 0, len(e.primes))
	for _, prime := range e.primes {
		if e.State == StateGameOver {
			break
		}
		e.addScore(prime.Team, prime.Points)
		paid = append(paid, prime)
	}
	e.paidPrimes = paid
	e.primes = nil
	e.Betting = nil

	if e.State == StateGameOver {
		return
	}
	e.Mano = (e.Mano + 1) % 4
	e.State = StateRoundOver
}

// finishGame marks the session terminal.
func (e *Engine) finishGame(team shared.TeamID) {
	if e.State == StateGameOver {
		return
	}
	e.State = StateGameOver
	e.Winner = team
	e.Betting = nil
	for _, seat := range team.Seats() {
		e.Players[seat].Stats.GamesWon++
	}
}
