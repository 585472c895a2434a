package game

import (
	"errors"

	"mus-game/internal/shared"
)

// State represents the current state of the room's engine.
type State string

const (
	StateMusDecision State = "MUS_DECISION" // collecting mus/josta votes
	StateMusDiscard  State = "MUS_DISCARD"  // unanimous mus, collecting discards
	StateBetting     State = "BETTING"      // a phase's betting machine is live
	StateRoundOver   State = "ROUND_OVER"   // between rounds, waiting for a deal
	StateGameOver    State = "GAME_OVER"    // win threshold reached, session terminal
)

// Phase names the five comparative scoring phases. Jeu is relabeled Puntuak
// mid-round when neither team can reach 31.
type Phase string

const (
	PhaseGrand   Phase = "GRAND"
	PhasePetit   Phase = "PETIT"
	PhasePaires  Phase = "PAIRES"
	PhaseJeu     Phase = "JEU"
	PhasePuntuak Phase = "PUNTUAK"
)

// Reason codes why a phase resolved.
type Reason string

const (
	ReasonAllPass  Reason = "all_pass" // nobody opened a bet
	ReasonWalkover Reason = "walkover" // a full team folded, or only one team qualified
	ReasonReveal   Reason = "revealed" // bet accepted, hands compared
	ReasonSkip     Reason = "skipped"  // neither team qualified
)

// ComparisonDetails carries the per-team values a phase comparator looked at.
type ComparisonDetails struct {
	TeamAB int `json:"team_ab"`
	TeamCD int `json:"team_cd"`
}

// PhaseResult records how one phase of a round resolved.
type PhaseResult struct {
	Phase   Phase              `json:"phase"`
	Winner  shared.TeamID      `json:"winner,omitempty"` // empty when the phase was skipped
	Points  int                `json:"points"`
	Reason  Reason             `json:"reason"`
	Details *ComparisonDetails `json:"details,omitempty"`
}

// PendingPrime is a deferred bonus paid out at round end rather than
// immediately.
type PendingPrime struct {
	Phase  Phase         `json:"phase"`
	Team   shared.TeamID `json:"team"`
	Points int           `json:"points"`
}

// Result describes the machine state reached by a successful action.
type Result struct {
	Event     string         `json:"event"`
	State     State          `json:"state"`
	Phase     Phase          `json:"phase,omitempty"`
	NextActor int            `json:"next_actor"` // -1 when no single seat is obligated
	Resolved  *PhaseResult   `json:"resolved,omitempty"`
	RoundOver bool           `json:"round_over"`
	GameOver  bool           `json:"game_over"`
	Winner    shared.TeamID  `json:"winner,omitempty"`
	Primes    []PendingPrime `json:"primes,omitempty"` // bonuses paid at round end
}

// Rejection taxonomy. None of these mutate state.
var (
	ErrInvalidSeat      = errors.New("invalid seat index")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrSeatEliminated   = errors.New("seat already walked away from this phase")
	ErrInvalidState     = errors.New("action not valid in the current state")
	ErrAlreadyVoted     = errors.New("seat already voted this round")
	ErrAlreadyDiscarded = errors.New("seat already discarded this exchange")
	ErrDiscardCount     = errors.New("discard selection must cover 1 to 4 own cards")
	ErrInvalidRaise     = errors.New("raise amount must be positive")
	ErrInvalidAction    = errors.New("action not legal for the betting state")
)
