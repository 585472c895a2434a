package game

import (
	"mus-game/internal/shared"
)

// SeatInfo is the public view of a seated player.
type SeatInfo struct {
	Seat      int          `json:"seat"`
	Name      string       `json:"name"`
	Connected bool         `json:"connected"`
	IsBot     bool         `json:"is_bot"`
	Stats     shared.Stats `json:"stats"`
}

// Snapshot is the read-only state projection for one seat. It carries that
// seat's own hand plus all public state, and never another seat's hidden
// cards.
type Snapshot struct {
	GameID       string                `json:"game_id"`
	State        State                 `json:"state"`
	Phase        Phase                 `json:"phase,omitempty"`
	Mano         int                   `json:"mano"`
	CurrentTurn  int                   `json:"current_turn"` // -1 when no single obligated seat
	WinThreshold int                   `json:"win_threshold"`
	Scores       map[shared.TeamID]int `json:"scores"`
	Winner       shared.TeamID         `json:"winner,omitempty"`

	MySeat  int           `json:"my_seat"`
	MyCards []shared.Card `json:"my_cards"`
	MyTeam  shared.TeamID `json:"my_team"`

	Seats []SeatInfo `json:"seats"`

	MusVotes     map[int]bool `json:"mus_votes"`
	MusDiscarded []int        `json:"mus_discarded,omitempty"`

	Bets       []BetEvent `json:"bets,omitempty"`
	BaseStake  int        `json:"base_stake"`
	RaiseCount int        `json:"raise_count"`
	Hordago    bool       `json:"hordago"`
	Eliminated []int      `json:"eliminated,omitempty"`

	Results []PhaseResult `json:"results,omitempty"`
}

// Snapshot builds the projection the given seat is entitled to see.
func (e *Engine) Snapshot(seat int) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		GameID:       e.ID,
		State:        e.State,
		Mano:         e.Mano,
		CurrentTurn:  e.currentActorLocked(),
		WinThreshold: e.WinThreshold,
		Scores:       map[shared.TeamID]int{shared.TeamAB: e.Scores[shared.TeamAB], shared.TeamCD: e.Scores[shared.TeamCD]},
		Winner:       e.Winner,
		MySeat:       seat,
		MyTeam:       shared.TeamOfSeat(seat),
		MusVotes:     map[int]bool{},
		Results:      append([]PhaseResult(nil), e.Results...),
	}

	for i, p := range e.Players {
		snap.Seats = append(snap.Seats, SeatInfo{
			Seat:      i,
			Name:      p.Name,
			Connected: p.Connected,
			IsBot:     p.IsBot,
			Stats:     p.Stats,
		})
		if e.musVotes[i] != nil {
			snap.MusVotes[i] = *e.musVotes[i]
		}
		if e.musDiscarded[i] {
			snap.MusDiscarded = append(snap.MusDiscarded, i)
		}
	}

	if seat >= 0 && seat <= 3 {
		snap.MyCards = append([]shared.Card(nil), e.Players[seat].Hand...)
	}

	if bs := e.Betting; bs != nil {
		snap.Phase = bs.Phase
		snap.Bets = append([]BetEvent(nil), bs.Bets...)
		snap.BaseStake = bs.BaseStake
		snap.RaiseCount = bs.RaiseCount
		snap.Hordago = bs.HordagoOn
		for i, out := range bs.Eliminated {
			if out {
				snap.Eliminated = append(snap.Eliminated, i)
			}
		}
	}

	return snap
}
