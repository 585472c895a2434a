package game

import (
	"mus-game/internal/shared"
)

// BetActionKind enumerates the seven betting actions as a closed set, so
// dispatch is an exhaustive switch instead of string comparison.
type BetActionKind int

const (
	Paso    BetActionKind = iota // pass
	Imido                        // open a base stake of 1
	Gehiago                      // raise by a positive amount
	Iduki                        // accept the outstanding bet, reveal hands
	Tira                         // fold
	Hordago                      // declare all-or-nothing
	Kanta                        // accept the all-or-nothing
)

var betActionNames = map[BetActionKind]string{
	Paso:    "PASO",
	Imido:   "IMIDO",
	Gehiago: "GEHIAGO",
	Iduki:   "IDUKI",
	Tira:    "TIRA",
	Hordago: "HORDAGO",
	Kanta:   "KANTA",
}

func (k BetActionKind) String() string {
	if s, ok := betActionNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseBetAction maps a wire action name back to its kind.
func ParseBetAction(name string) (BetActionKind, bool) {
	for k, s := range betActionNames {
		if s == name {
			return k, true
		}
	}
	return 0, false
}

// BetAction is a betting action with its payload. Only Gehiago carries an
// amount.
type BetAction struct {
	Kind   BetActionKind `json:"kind"`
	Amount int           `json:"amount,omitempty"`
}

// BetEvent is one entry in the ordered log of bets for a phase.
type BetEvent struct {
	Seat   int       `json:"seat"`
	Action BetAction `json:"action"`
}

// BettingState is the per-phase wagering machine. It is created fresh at
// the start of every phase and discarded when the phase resolves.
type BettingState struct {
	Phase         Phase      `json:"phase"`
	CurrentBettor int        `json:"current_bettor"`
	Bets          []BetEvent `json:"bets"`
	BaseStake     int        `json:"base_stake"`
	RaiseCount    int        `json:"raise_count"`
	HordagoOn     bool       `json:"hordago"`
	HordagoSeat   int        `json:"hordago_seat"`
	Eliminated    [4]bool    `json:"eliminated"`

	passes int // consecutive opening passes
}

func newBettingState(phase Phase, mano int) *BettingState {
	return &BettingState{
		Phase:         phase,
		CurrentBettor: mano,
		HordagoSeat:   -1,
	}
}

// Stake is the point value a non-Hordago resolution is worth: 1 for a bare
// IMIDO plus 1 per subsequent GEHIAGO.
func (bs *BettingState) Stake() int {
	return bs.BaseStake + bs.RaiseCount
}

// advance moves the turn to the next seat in ring order, skipping seats
// that walked away.
func (bs *BettingState) advance() {
	for i := 0; i < 4; i++ {
		bs.CurrentBettor = (bs.CurrentBettor + 1) % 4
		if !bs.Eliminated[bs.CurrentBettor] {
			return
		}
	}
}

// teamFolded reports whether every seat of a team is eliminated.
func (bs *BettingState) teamFolded(team shared.TeamID) bool {
	seats := team.Seats()
	return bs.Eliminated[seats[0]] && bs.Eliminated[seats[1]]
}

// betOutcome tells the round engine how an accepted action left the phase.
type betOutcome struct {
	resolved    bool
	allPass     bool          // four opening passes: uncontested comparison
	reveal      bool          // IDUKI: revealed comparison at the stake
	foldWinner  shared.TeamID // team awarded the phase by a full-team fold
	hordagoFold bool          // fold against a declared hordago
	kanta       bool          // hordago accepted: all-or-nothing reveal
}

// apply validates and executes one betting action for the obligated seat.
// Rejected actions leave the state untouched.
func (bs *BettingState) apply(seat int, action BetAction) (betOutcome, error) {
	if seat != bs.CurrentBettor {
		return betOutcome{}, ErrNotYourTurn
	}
	if bs.Eliminated[seat] {
		return betOutcome{}, ErrSeatEliminated
	}

	if bs.HordagoOn {
		return bs.applyHordagoResponse(seat, action)
	}
	if bs.BaseStake == 0 {
		return bs.applyOpening(seat, action)
	}
	return bs.applyResponse(seat, action)
}

// applyOpening handles the no-bet-yet state: PASO, IMIDO or HORDAGO.
func (bs *BettingState) applyOpening(seat int, action BetAction) (betOutcome, error) {
	switch action.Kind {
	case Paso:
		bs.record(seat, action)
		bs.passes++
		if bs.passes == 4 {
			return betOutcome{resolved: true, allPass: true}, nil
		}
		bs.advance()
		return betOutcome{}, nil

	case Imido:
		bs.record(seat, action)
		bs.BaseStake = 1
		bs.advance()
		return betOutcome{}, nil

	case Hordago:
		bs.record(seat, action)
		bs.HordagoOn = true
		bs.HordagoSeat = seat
		bs.advance()
		return betOutcome{}, nil

	default:
		return betOutcome{}, ErrInvalidAction
	}
}

// applyResponse handles an outstanding open bet: TIRA, IDUKI or GEHIAGO.
func (bs *BettingState) applyResponse(seat int, action BetAction) (betOutcome, error) {
	switch action.Kind {
	case Tira:
		bs.record(seat, action)
		bs.Eliminated[seat] = true
		team := shared.TeamOfSeat(seat)
		if bs.teamFolded(team) {
			return betOutcome{resolved: true, foldWinner: team.Opponent()}, nil
		}
		bs.advance()
		return betOutcome{}, nil

	case Iduki:
		bs.record(seat, action)
		return betOutcome{resolved: true, reveal: true}, nil

	case Gehiago:
		if action.Amount <= 0 {
			return betOutcome{}, ErrInvalidRaise
		}
		bs.record(seat, action)
		bs.RaiseCount++
		// A raise opens a new escalation round: previously folded seats
		// are obligated again.
		bs.Eliminated = [4]bool{}
		bs.advance()
		return betOutcome{}, nil

	default:
		return betOutcome{}, ErrInvalidAction
	}
}

// applyHordagoResponse handles a declared hordago: only TIRA or KANTA.
func (bs *BettingState) applyHordagoResponse(seat int, action BetAction) (betOutcome, error) {
	switch action.Kind {
	case Tira:
		bs.record(seat, action)
		bs.Eliminated[seat] = true
		team := shared.TeamOfSeat(seat)
		return betOutcome{resolved: true, hordagoFold: true, foldWinner: team.Opponent()}, nil

	case Kanta:
		bs.record(seat, action)
		return betOutcome{resolved: true, kanta: true}, nil

	default:
		return betOutcome{}, ErrInvalidAction
	}
}

func (bs *BettingState) record(seat int, action BetAction) {
	bs.Bets = append(bs.Bets, BetEvent{Seat: seat, Action: action})
}
