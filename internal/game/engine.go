package game

import (
	"sync"

	"mus-game/internal/shared"

	"github.com/google/uuid"
)

// DefaultWinThreshold is the classic target; 30 is the common short game.
const DefaultWinThreshold = 40

// Engine is the per-room game state machine. Exactly one action is
// processed at a time; every action is synchronous and either fully
// commits or is rejected up front.
type Engine struct {
	ID           string
	Players      [4]*shared.Player
	Deck         *shared.Deck
	State        State
	Mano         int
	WinThreshold int
	Scores       map[shared.TeamID]int
	Winner       shared.TeamID

	musVotes     [4]*bool
	musDiscarded [4]bool

	phases     []Phase
	phaseIdx   int
	Betting    *BettingState
	Results    []PhaseResult
	primes     []PendingPrime
	paidPrimes []PendingPrime

	// generation increments on every committed action; stale deferred bot
	// decisions compare against it before applying.
	generation uint64

	mu sync.Mutex
}

// NewEngine creates an engine for four seated players.
func NewEngine(players [4]*shared.Player, winThreshold int) *Engine {
	if winThreshold <= 0 {
		winThreshold = DefaultWinThreshold
	}
	return &Engine{
		ID:           uuid.NewString(),
		Players:      players,
		State:        StateRoundOver,
		WinThreshold: winThreshold,
		Scores:       map[shared.TeamID]int{shared.TeamAB: 0, shared.TeamCD: 0},
	}
}

// StartRound deals fresh hands and opens the mus negotiation. Legal when
// the previous round ended or at game start.
func (e *Engine) StartRound() (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.State != StateRoundOver {
		return nil, ErrInvalidState
	}

	e.Deck = shared.NewDeck()
	hands := e.Deck.Deal(4, 4)
	for i, hand := range hands {
		e.Players[i].SetHand(hand)
		e.Players[i].Stats.RoundsPlayed++
	}

	e.phases = []Phase{PhaseGrand, PhasePetit, PhasePaires, PhaseJeu}
	e.phaseIdx = 0
	e.Results = nil
	e.primes = nil
	e.paidPrimes = nil
	e.Betting = nil
	e.resetMus()
	e.State = StateMusDecision
	e.generation++

	return e.result("round_started"), nil
}

// Vote records a MUS (renegotiate) or JOSTA (play) vote for a seat.
func (e *Engine) Vote(seat int, wantsMus bool) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seat < 0 || seat > 3 {
		return nil, ErrInvalidSeat
	}
	if e.State != StateMusDecision {
		return nil, ErrInvalidState
	}
	if e.musVotes[seat] != nil {
		return nil, ErrAlreadyVoted
	}

	e.generation++
	return e.applyVote(seat, wantsMus), nil
}

// Discard swaps 1-4 of the seat's own cards for fresh ones from the deck.
func (e *Engine) Discard(seat int, indices []int) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seat < 0 || seat > 3 {
		return nil, ErrInvalidSeat
	}
	if e.State != StateMusDiscard {
		return nil, ErrInvalidState
	}
	if e.musDiscarded[seat] {
		return nil, ErrAlreadyDiscarded
	}
	if !validDiscard(indices) {
		return nil, ErrDiscardCount
	}

	e.generation++
	return e.applyDiscard(seat, indices), nil
}

// Bet submits a betting action for the seat currently obligated to act.
func (e *Engine) Bet(seat int, action BetAction) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seat < 0 || seat > 3 {
		return nil, ErrInvalidSeat
	}
	if e.State != StateBetting || e.Betting == nil {
		return nil, ErrInvalidState
	}

	bs := e.Betting
	outcome, err := bs.apply(seat, action)
	if err != nil {
		return nil, err
	}
	e.generation++

	if action.Kind == Hordago {
		e.Players[seat].Stats.HordagosDeclared++
	}

	if !outcome.resolved {
		return e.result("bet_recorded"), nil
	}

	phase := bs.Phase
	var res *PhaseResult

	switch {
	case outcome.allPass:
		winner, details := e.comparePhase(phase)
		points, prime := e.allPassAward(phase, winner)
		pr := PhaseResult{Phase: phase, Winner: winner, Points: points, Reason: ReasonAllPass, Details: details}
		e.resolvePhase(pr, prime)
		res = &pr

	case outcome.reveal:
		winner, details := e.comparePhase(phase)
		pr := PhaseResult{Phase: phase, Winner: winner, Points: bs.Stake(), Reason: ReasonReveal, Details: details}
		e.resolvePhase(pr, 0)
		res = &pr

	case outcome.kanta:
		// All-or-nothing accepted: the comparison winner takes the game
		// outright, regardless of prior score.
		winner, details := e.comparePhase(phase)
		points := e.WinThreshold - e.Scores[winner]
		pr := PhaseResult{Phase: phase, Winner: winner, Points: points, Reason: ReasonReveal, Details: details}
		e.resolvePhase(pr, 0)
		res = &pr

	case outcome.hordagoFold:
		// Folding against a hordago concedes the declarer's entire
		// remaining margin to the win threshold.
		winner := outcome.foldWinner
		points := e.WinThreshold - e.Scores[winner]
		pr := PhaseResult{Phase: phase, Winner: winner, Points: points, Reason: ReasonWalkover}
		e.resolvePhase(pr, 0)
		res = &pr

	default: // full-team fold at the accumulated stake
		pr := PhaseResult{Phase: phase, Winner: outcome.foldWinner, Points: bs.Stake(), Reason: ReasonWalkover}
		e.resolvePhase(pr, 0)
		res = &pr
	}

	e.Betting = nil
	if e.State != StateGameOver {
		e.phaseIdx++
		e.enterPhase()
	}

	out := e.result("phase_resolved")
	out.Resolved = res
	return out, nil
}

// result builds the action result object for the state just reached.
// Assumes the lock is held.
func (e *Engine) result(event string) *Result {
	r := &Result{
		Event:     event,
		State:     e.State,
		NextActor: e.currentActorLocked(),
		RoundOver: e.State == StateRoundOver,
		GameOver:  e.State == StateGameOver,
		Winner:    e.Winner,
	}
	if e.Betting != nil {
		r.Phase = e.Betting.Phase
	}
	if r.RoundOver || r.GameOver {
		r.Primes = e.paidPrimes
	}
	return r
}

// CurrentActor reports the single seat obligated to act, or -1 when the
// state accepts input from several seats (or none).
func (e *Engine) CurrentActor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentActorLocked()
}

func (e *Engine) currentActorLocked() int {
	if e.State == StateBetting && e.Betting != nil {
		return e.Betting.CurrentBettor
	}
	return -1
}

// CanAct reports whether the seat has a pending obligation in the current
// state. Used by the bot scheduler.
func (e *Engine) CanAct(seat int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.State {
	case StateMusDecision:
		return e.musVotes[seat] == nil
	case StateMusDiscard:
		return !e.musDiscarded[seat]
	case StateBetting:
		return e.Betting != nil && e.Betting.CurrentBettor == seat
	default:
		return false
	}
}

// Generation returns the commit counter. A deferred decision captured at
// generation g must not apply once the counter moved past g.
func (e *Engine) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}
