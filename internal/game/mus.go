package game

// Mus negotiation: the pre-betting vote/discard loop.

// resetMus clears the per-loop vote and discard tracking.
func (e *Engine) resetMus() {
	e.musVotes = [4]*bool{}
	e.musDiscarded = [4]bool{}
}

// applyVote records one seat's MUS/JOSTA vote. A single JOSTA ends the
// negotiation immediately; four MUS votes open the discard exchange.
func (e *Engine) applyVote(seat int, wantsMus bool) *Result {
	v := wantsMus
	e.musVotes[seat] = &v

	if !wantsMus {
		// Remaining votes are irrelevant: betting begins on the first phase.
		e.resetMus()
		e.enterPhase()
		return e.result("mus_refused")
	}

	for i := range e.musVotes {
		if e.musVotes[i] == nil {
			return e.result("vote_recorded")
		}
	}

	// Unanimous mus: every seat now exchanges 1-4 cards.
	e.State = StateMusDiscard
	e.musDiscarded = [4]bool{}
	return e.result("mus_accepted")
}

// applyDiscard swaps the selected cards for an equal count drawn from the
// front of the shared deck. Once every seat has discarded, a fresh vote
// round begins.
func (e *Engine) applyDiscard(seat int, indices []int) *Result {
	player := e.Players[seat]
	taken := player.TakeCards(indices)
	e.Deck.Discard(taken)
	player.AddCards(e.Deck.Draw(len(taken)))
	e.musDiscarded[seat] = true

	for i := range e.musDiscarded {
		if !e.musDiscarded[i] {
			return e.result("discarded")
		}
	}

	e.State = StateMusDecision
	e.resetMus()
	return e.result("mus_reopened")
}

// validDiscard checks the cardinality and index range of a discard
// selection without mutating anything.
func validDiscard(indices []int) bool {
	if len(indices) < 1 || len(indices) > 4 {
		return false
	}
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx > 3 || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
