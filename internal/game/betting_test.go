package game

import (
	"fmt"
	"testing"

	"mus-game/internal/shared"
)

// testHands is a fixed deterministic deal used across the betting and
// lifecycle tests:
//
//	seat 0 (AB): R R As 2  -> grand 14, petit 1, pair,  game sum 23
//	seat 1 (CD): C V 5 4   -> grand 8,  petit 3, none,  game sum 29
//	seat 2 (AB): 4 5 6 7   -> grand 6,  petit 3, none,  game sum 22
//	seat 3 (CD): 6 7 2 As  -> grand 6,  petit 1, none,  game sum 16
//
// Team AB wins Grand, ties Petit (mano breaks), holds the only pair and
// neither team has jeu, so the Jeu slot plays as Puntuak (CD ahead 29-23).
func testHands() [4][]shared.Card {
	return [4][]shared.Card{
		hand("R", "R", "As", "2"),
		hand("C", "V", "5", "4"),
		hand("4", "5", "6", "7"),
		hand("6", "7", "2", "As"),
	}
}

// newBettingEngine builds a started engine with the given hands, with the
// mus negotiation already refused so Grand betting is open and the mano
// (seat 0) is obligated.
func newBettingEngine(t *testing.T, hands [4][]shared.Card) *Engine {
	t.Helper()

	var players [4]*shared.Player
	for i := range players {
		players[i] = shared.NewPlayer(fmt.Sprintf("p%d", i), i, fmt.Sprintf("player%d", i))
	}
	e := NewEngine(players, DefaultWinThreshold)
	if _, err := e.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	for i := range hands {
		e.Players[i].SetHand(hands[i])
	}
	if _, err := e.Vote(1, false); err != nil {
		t.Fatalf("JOSTA vote: %v", err)
	}
	if e.State != StateBetting || e.Betting == nil || e.Betting.Phase != PhaseGrand {
		t.Fatalf("expected Grand betting after JOSTA, got state=%s", e.State)
	}
	return e
}

func mustBet(t *testing.T, e *Engine, seat int, kind BetActionKind, amount int) *Result {
	t.Helper()
	res, err := e.Bet(seat, BetAction{Kind: kind, Amount: amount})
	if err != nil {
		t.Fatalf("seat %d %s: %v", seat, kind, err)
	}
	return res
}

func TestBettingTurnOrderEnforced(t *testing.T) {
	e := newBettingEngine(t, testHands())

	before := *e.Betting
	if _, err := e.Bet(2, BetAction{Kind: Paso}); err != ErrNotYourTurn {
		t.Fatalf("out-of-turn bet: got %v, want ErrNotYourTurn", err)
	}
	after := *e.Betting
	if before.CurrentBettor != after.CurrentBettor || len(before.Bets) != len(after.Bets) {
		t.Error("rejected action mutated the betting state")
	}
	if e.Scores[shared.TeamAB] != 0 || e.Scores[shared.TeamCD] != 0 {
		t.Error("rejected action touched the scores")
	}
}

func TestBettingAllPassAwardsOnePoint(t *testing.T) {
	e := newBettingEngine(t, testHands())

	for seat := 0; seat < 3; seat++ {
		res := mustBet(t, e, seat, Paso, 0)
		if res.Resolved != nil {
			t.Fatalf("phase resolved after %d passes", seat+1)
		}
	}
	res := mustBet(t, e, 3, Paso, 0)
	if res.Resolved == nil {
		t.Fatal("four passes did not resolve the phase")
	}
	if res.Resolved.Reason != ReasonAllPass || res.Resolved.Winner != shared.TeamAB || res.Resolved.Points != 1 {
		t.Errorf("got %+v, want all_pass win for AB worth 1", res.Resolved)
	}
	if e.Scores[shared.TeamAB] != 1 {
		t.Errorf("score AB = %d, want 1", e.Scores[shared.TeamAB])
	}
	if e.Betting == nil || e.Betting.Phase != PhasePetit {
		t.Error("Petit betting should open after Grand resolves")
	}
}

func TestBettingPasoAfterOpenBetRejected(t *testing.T) {
	e := newBettingEngine(t, testHands())

	mustBet(t, e, 0, Imido, 0)
	if _, err := e.Bet(1, BetAction{Kind: Paso}); err != ErrInvalidAction {
		t.Errorf("PASO against an open bet: got %v, want ErrInvalidAction", err)
	}
	if _, err := e.Bet(1, BetAction{Kind: Kanta}); err != ErrInvalidAction {
		t.Errorf("KANTA without hordago: got %v, want ErrInvalidAction", err)
	}
}

func TestBettingIdukiResolvesAtStake(t *testing.T) {
	e := newBettingEngine(t, testHands())

	mustBet(t, e, 0, Imido, 0)
	mustBet(t, e, 1, Gehiago, 3)
	if got := e.Betting.Stake(); got != 2 {
		t.Fatalf("stake after IMIDO+GEHIAGO = %d, want 2 (raise amount does not change accounting)", got)
	}
	res := mustBet(t, e, 2, Iduki, 0)
	if res.Resolved == nil || res.Resolved.Reason != ReasonReveal {
		t.Fatalf("IDUKI should resolve with a reveal, got %+v", res.Resolved)
	}
	// Grand: AB 14 vs CD 8.
	if res.Resolved.Winner != shared.TeamAB || res.Resolved.Points != 2 {
		t.Errorf("got winner=%s points=%d, want AB at 2", res.Resolved.Winner, res.Resolved.Points)
	}
	if e.Scores[shared.TeamAB] != 2 {
		t.Errorf("score AB = %d, want 2", e.Scores[shared.TeamAB])
	}
}

func TestBettingInvalidRaiseRejected(t *testing.T) {
	e := newBettingEngine(t, testHands())

	mustBet(t, e, 0, Imido, 0)
	if _, err := e.Bet(1, BetAction{Kind: Gehiago, Amount: 0}); err != ErrInvalidRaise {
		t.Errorf("GEHIAGO(0): got %v, want ErrInvalidRaise", err)
	}
	if _, err := e.Bet(1, BetAction{Kind: Gehiago, Amount: -2}); err != ErrInvalidRaise {
		t.Errorf("GEHIAGO(-2): got %v, want ErrInvalidRaise", err)
	}
	if e.Betting.RaiseCount != 0 || e.Betting.CurrentBettor != 1 {
		t.Error("rejected raise mutated the betting state")
	}
}

func TestBettingRaiseReobligatesFoldedSeats(t *testing.T) {
	e := newBettingEngine(t, testHands())

	mustBet(t, e, 0, Imido, 0)
	mustBet(t, e, 1, Tira, 0)
	if !e.Betting.Eliminated[1] {
		t.Fatal("TIRA should eliminate the seat")
	}
	mustBet(t, e, 2, Gehiago, 2)
	if e.Betting.Eliminated != [4]bool{} {
		t.Error("a raise must clear all eliminations")
	}
	if e.Betting.RaiseCount != 1 {
		t.Errorf("raise count = %d, want 1", e.Betting.RaiseCount)
	}
	if e.Betting.CurrentBettor != 3 {
		t.Errorf("turn = %d, want 3", e.Betting.CurrentBettor)
	}
}

func TestBettingTeamFoldWalkover(t *testing.T) {
	e := newBettingEngine(t, testHands())

	mustBet(t, e, 0, Imido, 0)
	mustBet(t, e, 1, Tira, 0)
	mustBet(t, e, 2, Tira, 0)
	res := mustBet(t, e, 3, Tira, 0)
	if res.Resolved == nil {
		t.Fatal("full-team fold did not resolve the phase")
	}
	if res.Resolved.Reason != ReasonWalkover || res.Resolved.Winner != shared.TeamAB || res.Resolved.Points != 1 {
		t.Errorf("got %+v, want walkover for AB worth 1", res.Resolved)
	}
	if e.Scores[shared.TeamAB] != 1 || e.Scores[shared.TeamCD] != 0 {
		t.Errorf("scores = %d/%d, want 1/0", e.Scores[shared.TeamAB], e.Scores[shared.TeamCD])
	}
	// A partial-team fold must not end the phase: a fresh engine, seat 1
	// folds alone and the turn simply moves on.
	e2 := newBettingEngine(t, testHands())
	mustBet(t, e2, 0, Imido, 0)
	res = mustBet(t, e2, 1, Tira, 0)
	if res.Resolved != nil {
		t.Error("single fold resolved the phase with the partner still active")
	}
	if e2.Betting.CurrentBettor != 2 {
		t.Errorf("turn = %d, want 2", e2.Betting.CurrentBettor)
	}
}

func TestBettingHordagoKanta(t *testing.T) {
	e := newBettingEngine(t, testHands())

	mustBet(t, e, 0, Hordago, 0)
	if !e.Betting.HordagoOn || e.Betting.HordagoSeat != 0 {
		t.Fatal("hordago flag not set")
	}
	if _, err := e.Bet(1, BetAction{Kind: Imido}); err != ErrInvalidAction {
		t.Fatalf("IMIDO against hordago: got %v, want ErrInvalidAction", err)
	}
	res := mustBet(t, e, 1, Kanta, 0)
	if !res.GameOver {
		t.Fatal("accepted hordago must end the game")
	}
	// Grand comparison: AB wins, score jumps straight to the threshold.
	if res.Winner != shared.TeamAB || e.Scores[shared.TeamAB] != DefaultWinThreshold {
		t.Errorf("winner=%s score=%d, want AB at %d", res.Winner, e.Scores[shared.TeamAB], DefaultWinThreshold)
	}
	if e.Players[0].Stats.HordagosDeclared != 1 {
		t.Errorf("hordago stat = %d, want 1", e.Players[0].Stats.HordagosDeclared)
	}
}

func TestBettingHordagoFoldConcedesGame(t *testing.T) {
	e := newBettingEngine(t, testHands())
	e.Scores[shared.TeamAB] = 12

	mustBet(t, e, 0, Hordago, 0)
	res := mustBet(t, e, 1, Tira, 0)
	if !res.GameOver || res.Winner != shared.TeamAB {
		t.Fatalf("fold against hordago: got over=%v winner=%s, want AB game win", res.GameOver, res.Winner)
	}
	if e.Scores[shared.TeamAB] != DefaultWinThreshold {
		t.Errorf("score AB = %d, want the full threshold %d", e.Scores[shared.TeamAB], DefaultWinThreshold)
	}
	if res.Resolved == nil || res.Resolved.Points != DefaultWinThreshold-12 {
		t.Errorf("conceded points = %+v, want the remaining margin %d", res.Resolved, DefaultWinThreshold-12)
	}
}

func TestBettingActionOutsideBettingState(t *testing.T) {
	var players [4]*shared.Player
	for i := range players {
		players[i] = shared.NewPlayer(fmt.Sprintf("p%d", i), i, fmt.Sprintf("player%d", i))
	}
	e := NewEngine(players, 0)
	if _, err := e.Bet(0, BetAction{Kind: Paso}); err != ErrInvalidState {
		t.Errorf("bet before any round: got %v, want ErrInvalidState", err)
	}
	if _, err := e.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if _, err := e.Bet(0, BetAction{Kind: Imido}); err != ErrInvalidState {
		t.Errorf("bet during mus decision: got %v, want ErrInvalidState", err)
	}
	if _, err := e.Bet(5, BetAction{Kind: Paso}); err != ErrInvalidSeat {
		t.Errorf("bet from seat 5: got %v, want ErrInvalidSeat", err)
	}
}

func TestParseBetAction(t *testing.T) {
	for _, k := range []BetActionKind{Paso, Imido, Gehiago, Iduki, Tira, Hordago, Kanta} {
		got, ok := ParseBetAction(k.String())
		if !ok || got != k {
			t.Errorf("ParseBetAction(%q) = %v/%v", k.String(), got, ok)
		}
	}
	if _, ok := ParseBetAction("ENVIDO"); ok {
		t.Error("unknown action name should not parse")
	}
}
