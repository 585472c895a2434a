package server

import (
	"fmt"
	"sync"
	"time"

	"mus-game/internal/bot"
	"mus-game/internal/game"
	"mus-game/internal/log"
	"mus-game/internal/protocol"
	"mus-game/internal/shared"

	"github.com/google/uuid"
)

// disconnectGrace is how long a dropped player keeps their seat before the
// room gives it up for good.
const disconnectGrace = 60 * time.Second

// seatEntry binds a seat's player record to its driver: a websocket client
// or a bot, never both.
type seatEntry struct {
	player *shared.Player
	client *Client
	bot    *bot.Bot
	grace  *time.Timer
}

// Room owns one table: up to four seated players, the game engine once
// started, and the bot think-delay scheduler. All room actions serialize on
// its mutex; the engine never blocks.
type Room struct {
	Code string

	hub       *Hub
	mu        sync.Mutex
	seats     []*seatEntry
	engine    *game.Engine
	started   bool
	thinker   *bot.Scheduler
	botSerial int
}

func newRoom(code string, hub *Hub) *Room {
	minDelay := time.Duration(hub.cfg.BotDelayMinMs) * time.Millisecond
	maxDelay := time.Duration(hub.cfg.BotDelayMaxMs) * time.Millisecond
	return &Room{
		Code:    code,
		hub:     hub,
		thinker: bot.NewScheduler(minDelay, maxDelay),
	}
}

// addClient seats a human player. Returns the seat index.
func (r *Room) addClient(c *Client, name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.seats) >= 4 {
		return -1, fmt.Errorf("room %s is full", r.Code)
	}
	for _, s := range r.seats {
		if s.player.Name == name {
			return -1, fmt.Errorf("name already taken in this room")
		}
	}

	seat := len(r.seats)
	c.Name = name
	r.seats = append(r.seats, &seatEntry{
		player: shared.NewPlayer(c.ID, seat, name),
		client: c,
	})

	r.broadcastRoomUpdate()
	if len(r.seats) == 4 {
		r.broadcastTeams()
	}
	return seat, nil
}

// addBot fills the next free seat with a bot player.
func (r *Room) addBot() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.seats) >= 4 {
		return -1, fmt.Errorf("room %s is full", r.Code)
	}

	r.botSerial++
	seat := len(r.seats)
	name := fmt.Sprintf("Bot-%d", r.botSerial)
	b := bot.New(seat, name)
	player := shared.NewPlayer(uuid.NewString(), seat, name)
	player.IsBot = true
	r.seats = append(r.seats, &seatEntry{player: player, bot: b})

	log.Printf("Room %s: added %s (%s)", r.Code, name, b.Personality)

	r.broadcastRoomUpdate()
	if len(r.seats) == 4 {
		r.broadcastTeams()
	}
	return seat, nil
}

// start deals the first round. Requires exactly four seated players.
func (r *Room) start(winThreshold int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.seats) != 4 {
		return fmt.Errorf("4 players required, have %d", len(r.seats))
	}
	if r.started {
		return fmt.Errorf("game already running")
	}

	var players [4]*shared.Player
	for i, s := range r.seats {
		players[i] = s.player
	}
	r.engine = game.NewEngine(players, winThreshold)
	r.started = true

	res, err := r.engine.StartRound()
	if err != nil {
		r.started = false
		r.engine = nil
		return err
	}

	log.Printf("Room %s: game %s started (threshold %d)", r.Code, r.engine.ID, winThreshold)
	r.postAction(res)
	return nil
}

// seatOfClient maps a connection to its seat, -1 if not seated here.
func (r *Room) seatOfClient(c *Client) int {
	for i, s := range r.seats {
		if s.client == c {
			return i
		}
	}
	return -1
}

// handleVote / handleDiscard / handleBet run a human action through the
// engine and surface rejections back to the caller only.

func (r *Room) handleVote(c *Client, wantsMus bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seat := r.seatOfClient(c)
	if seat == -1 || !r.started {
		r.hub.sendErrorToClient(c, "You are not in an active game.")
		return
	}

	res, err := r.engine.Vote(seat, wantsMus)
	if err != nil {
		r.hub.sendErrorToClient(c, err.Error())
		return
	}
	r.ackAction(c, res)
	r.postAction(res)
}

func (r *Room) handleDiscard(c *Client, indices []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seat := r.seatOfClient(c)
	if seat == -1 || !r.started {
		r.hub.sendErrorToClient(c, "You are not in an active game.")
		return
	}

	res, err := r.engine.Discard(seat, indices)
	if err != nil {
		r.hub.sendErrorToClient(c, err.Error())
		return
	}
	r.ackAction(c, res)
	r.postAction(res)
}

func (r *Room) handleBet(c *Client, action game.BetAction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seat := r.seatOfClient(c)
	if seat == -1 || !r.started {
		r.hub.sendErrorToClient(c, "You are not in an active game.")
		return
	}

	res, err := r.engine.Bet(seat, action)
	if err != nil {
		r.hub.sendErrorToClient(c, err.Error())
		return
	}
	r.ackAction(c, res)
	r.postAction(res)
}

// ackAction confirms a committed action to the seat that made it. Assumes
// lock held.
func (r *Room) ackAction(c *Client, res *game.Result) {
	if msg, err := protocol.NewMessage("action_result", protocol.ActionResultPayload{Result: res}); err == nil {
		r.hub.sendMessageToClient(c.ID, msg)
	}
}

// postAction broadcasts the aftermath of a committed action and keeps the
// table moving: resolved phases, round rollover, game end, pending bot
// turns. Assumes the lock is held.
func (r *Room) postAction(res *game.Result) {
	if res.Resolved != nil {
		if msg, err := protocol.NewMessage("phase_result", protocol.PhaseResultPayload{Result: *res.Resolved}); err == nil {
			r.broadcast(msg)
		}
	}

	if res.GameOver {
		r.finishGame(res)
		return
	}

	if res.RoundOver {
		snap := r.engine.Snapshot(-1)
		if msg, err := protocol.NewMessage("round_end", protocol.RoundEndPayload{
			ScoreAB: snap.Scores[shared.TeamAB],
			ScoreCD: snap.Scores[shared.TeamCD],
			Primes:  res.Primes,
		}); err == nil {
			r.broadcast(msg)
		}

		// Deal the next round immediately; the mano already rotated.
		next, err := r.engine.StartRound()
		if err != nil {
			log.Errorf("Room %s: failed to start next round: %v", r.Code, err)
			return
		}
		res = next
	}

	r.broadcastState()
	r.scheduleBots()
}

// finishGame records the result and closes the table. Assumes lock held.
func (r *Room) finishGame(res *game.Result) {
	snap := r.engine.Snapshot(-1)
	log.Printf("Room %s: game over, team %s wins %d-%d",
		r.Code, res.Winner, snap.Scores[shared.TeamAB], snap.Scores[shared.TeamCD])

	r.hub.recordResult(r, snap, res.Winner)

	r.broadcastState()
	if msg, err := protocol.NewMessage("game_over", protocol.GameOverPayload{
		Winner:  string(res.Winner),
		ScoreAB: snap.Scores[shared.TeamAB],
		ScoreCD: snap.Scores[shared.TeamCD],
	}); err == nil {
		r.broadcast(msg)
	}

	r.thinker.CancelAll()
	r.started = false
}

// scheduleBots queues a deferred decision for every bot seat with a pending
// obligation. The engine generation captured here is re-checked after the
// think delay so a decision made stale by a human acting first never
// applies. Assumes lock held.
func (r *Room) scheduleBots() {
	if !r.started || r.engine == nil {
		return
	}
	for i, s := range r.seats {
		if s.bot == nil || !r.engine.CanAct(i) {
			continue
		}
		seat := i
		gen := r.engine.Generation()
		r.thinker.Schedule(seat, func() {
			r.botAct(seat, gen)
		})
	}
}

// botAct runs one deferred bot decision, dropping it if the table moved on.
func (r *Room) botAct(seat int, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started || r.engine == nil {
		return
	}
	if r.engine.Generation() != gen || !r.engine.CanAct(seat) {
		return // stale decision: the turn changed while thinking
	}

	b := r.seats[seat].bot
	snap := r.engine.Snapshot(seat)

	var (
		res *game.Result
		err error
	)
	switch snap.State {
	case game.StateMusDecision:
		res, err = r.engine.Vote(seat, b.DecideVote(snap))
	case game.StateMusDiscard:
		res, err = r.engine.Discard(seat, b.DecideDiscard(snap))
	case game.StateBetting:
		action := b.DecideBet(snap)
		log.Debugf("Room %s: %s bets %s", r.Code, b.Name, action.Kind)
		res, err = r.engine.Bet(seat, action)
	default:
		return
	}
	if err != nil {
		log.Errorf("Room %s: bot %s action rejected: %v", r.Code, b.Name, err)
		return
	}
	r.postAction(res)
}

// markDisconnected flags a dropped player and arms the grace timer that
// eventually frees the seat.
func (r *Room) markDisconnected(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat := r.seatOfClient(c)
	if seat == -1 {
		return
	}
	entry := r.seats[seat]
	entry.player.Connected = false
	entry.client = nil

	log.Printf("Room %s: %s disconnected, %s grace", r.Code, entry.player.Name, disconnectGrace)
	if msg, err := protocol.NewMessage("player_disconnected", protocol.PlayerDisconnectedPayload{
		Seat: entry.player.Seat,
		Name: entry.player.Name,
	}); err == nil {
		r.broadcast(msg)
	}

	entry.grace = time.AfterFunc(disconnectGrace, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if !entry.player.Connected {
			r.removeEntry(entry)
		}
	})
}

// removeClient frees a seat immediately (explicit leave).
func (r *Room) removeClient(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat := r.seatOfClient(c)
	if seat == -1 {
		return
	}
	r.removeEntry(r.seats[seat])
}

// removeEntry drops a seat, renumbers the remaining ones, and cancels the
// game in progress if the table fell below four players. Assumes lock held.
func (r *Room) removeEntry(entry *seatEntry) {
	idx := -1
	for i, s := range r.seats {
		if s == entry {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	if entry.grace != nil {
		entry.grace.Stop()
	}

	r.seats = append(r.seats[:idx], r.seats[idx+1:]...)
	for i, s := range r.seats {
		s.player.Seat = i
		if s.bot != nil {
			s.bot.Seat = i
		}
	}
	log.Printf("Room %s: %s removed, %d seats left", r.Code, entry.player.Name, len(r.seats))

	if r.started {
		r.cancelGame("Game cancelled - not enough players")
	}

	if r.humanCount() == 0 {
		r.hub.removeRoom(r.Code)
		return
	}
	r.broadcastRoomUpdate()
}

// cancelGame abandons the game in progress. Assumes lock held.
func (r *Room) cancelGame(reason string) {
	r.thinker.CancelAll()
	r.engine = nil
	r.started = false

	if msg, err := protocol.NewMessage("game_cancelled", protocol.GameCancelledPayload{Message: reason}); err == nil {
		r.broadcast(msg)
	}
}

func (r *Room) humanCount() int {
	n := 0
	for _, s := range r.seats {
		if s.bot == nil {
			n++
		}
	}
	return n
}

// --- Messaging helpers (assume lock held) ---

// broadcast sends a message to every connected human at the table.
func (r *Room) broadcast(message []byte) {
	for _, s := range r.seats {
		if s.client != nil {
			r.hub.sendMessageToClient(s.client.ID, message)
		}
	}
}

// broadcastState sends each seat its own projection of the engine state.
func (r *Room) broadcastState() {
	if r.engine == nil {
		return
	}
	for i, s := range r.seats {
		if s.client == nil {
			continue
		}
		snap := r.engine.Snapshot(i)
		msg, err := protocol.NewMessage("game_state_update", protocol.GameStatePayload{Snapshot: snap})
		if err != nil {
			log.Errorf("Room %s: error building state update: %v", r.Code, err)
			continue
		}
		r.hub.sendMessageToClient(s.client.ID, msg)
	}
}

func (r *Room) broadcastRoomUpdate() {
	msg, err := protocol.NewMessage("room_update", protocol.RoomUpdatePayload{
		RoomCode: r.Code,
		Players:  r.playerInfos(),
		Started:  r.started,
	})
	if err != nil {
		return
	}
	r.broadcast(msg)
}

func (r *Room) broadcastTeams() {
	infos := r.playerInfos()
	payload := protocol.TeamsAssignedPayload{}
	for _, info := range infos {
		if info.Seat%2 == 0 {
			payload.TeamAB = append(payload.TeamAB, info)
		} else {
			payload.TeamCD = append(payload.TeamCD, info)
		}
	}
	if msg, err := protocol.NewMessage("teams_assigned", payload); err == nil {
		r.broadcast(msg)
	}
}

func (r *Room) playerInfos() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, len(r.seats))
	for i, s := range r.seats {
		infos[i] = protocol.PlayerInfo{
			Seat:      s.player.Seat,
			Name:      s.player.Name,
			Connected: s.player.Connected,
			IsBot:     s.player.IsBot,
		}
	}
	return infos
}

// RoomStat is the public shape served by the /stats route.
type RoomStat struct {
	RoomID       string         `json:"room_id"`
	State        string         `json:"state"`
	PlayersCount int            `json:"players_count"`
	Scores       map[string]int `json:"scores"`
}

// stat snapshots the room for the stats endpoint.
func (r *Room) stat() RoomStat {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := RoomStat{
		RoomID:       r.Code,
		State:        "WAITING",
		PlayersCount: len(r.seats),
		Scores:       map[string]int{"AB": 0, "CD": 0},
	}
	if r.engine != nil {
		snap := r.engine.Snapshot(-1)
		st.State = string(snap.State)
		st.Scores["AB"] = snap.Scores[shared.TeamAB]
		st.Scores["CD"] = snap.Scores[shared.TeamCD]
	}
	return st
}
