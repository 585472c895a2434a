package server

import (
	"encoding/json"
	"math/rand"
	"strings"
	"sync"
	"time"

	"mus-game/internal/config"
	"mus-game/internal/database"
	"mus-game/internal/game"
	"mus-game/internal/log"
	"mus-game/internal/protocol"
	"mus-game/internal/shared"

	"github.com/google/uuid"
)

// clientMessage is a helper struct to pass messages along with the client reference.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

const roomCodeLength = 6 // Length of the unique room code

// Hub manages active WebSocket connections and game rooms. Rooms are an
// explicit store keyed by room code with a create/destroy lifecycle; no
// cross-room state is shared.
type Hub struct {
	cfg *config.Config
	db  *database.Service

	clients      map[*Client]bool
	rooms        map[string]*Room
	clientToRoom map[*Client]string

	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client

	clientMu sync.RWMutex
	roomMu   sync.RWMutex
	rng      *rand.Rand
}

// NewHub creates a new Hub instance.
func NewHub(cfg *config.Config, db *database.Service) *Hub {
	source := rand.NewSource(time.Now().UnixNano())

	return &Hub{
		cfg:            cfg,
		db:             db,
		clients:        make(map[*Client]bool),
		rooms:          make(map[string]*Room),
		clientToRoom:   make(map[*Client]string),
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		rng:            rand.New(source),
	}
}

// generateRoomCode creates a unique alphanumeric room code.
func (h *Hub) generateRoomCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for {
		var sb strings.Builder
		for i := 0; i < roomCodeLength; i++ {
			sb.WriteByte(letters[h.rng.Intn(len(letters))])
		}
		code := sb.String()

		h.roomMu.RLock()
		_, exists := h.rooms[code]
		h.roomMu.RUnlock()

		if !exists {
			return code
		}
		log.Printf("Generated room code %s collided, retrying...", code)
	}
}

// Run starts the Hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			client.ID = uuid.NewString() // Assign a unique ID upon registration
			log.Printf("Client %s (%s) connected", client.ID, client.conn.RemoteAddr())
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()

		case client := <-h.unregister:
			h.clientMu.Lock()
			roomCode, inRoom := h.clientToRoom[client]
			_, clientExists := h.clients[client]
			if clientExists {
				delete(h.clients, client)
				delete(h.clientToRoom, client)
				close(client.send)
				log.Printf("Client %s (%s) disconnected", client.ID, client.Name)
			}
			h.clientMu.Unlock()

			if inRoom {
				if room := h.roomByCode(roomCode); room != nil {
					// The room arms the grace timer; the seat stays
					// reserved until it fires.
					room.markDisconnected(client)
				}
			}

		case clientMsg := <-h.processMessage:
			h.handleMessage(clientMsg.client, clientMsg.message)
		}
	}
}

// handleMessage processes a message received from a client.
func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	switch msg.Type {
	case "create_room":
		h.handleCreateRoom(client, msg)
	case "join_room":
		h.handleJoinRoom(client, msg)
	case "add_bot":
		h.handleAddBot(client)
	case "start_game":
		h.handleStartGame(client)
	case "mus_vote", "discard", "bet":
		h.handleGameAction(client, msg)
	case "leave_room":
		h.handleLeaveRoom(client)
	case "ping":
		pongMsg, _ := protocol.NewMessage("pong", nil)
		client.send <- pongMsg
	default:
		log.Printf("Received unknown message type '%s' from client %s (%s)", msg.Type, client.ID, client.Name)
		h.sendErrorToClient(client, "Unknown message type.")
	}
}

// handleCreateRoom handles a request to create a new room.
func (h *Hub) handleCreateRoom(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, alreadyInRoom := h.clientToRoom[client]
	h.clientMu.RUnlock()
	if alreadyInRoom {
		h.sendErrorToClient(client, "Already in a room.")
		return
	}

	var payload protocol.CreateRoomPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendErrorToClient(client, "Invalid create_room message format.")
		return
	}
	if payload.Name == "" {
		h.sendErrorToClient(client, "Name cannot be empty.")
		return
	}

	code := h.generateRoomCode()
	room := newRoom(code, h)

	h.roomMu.Lock()
	h.rooms[code] = room
	h.roomMu.Unlock()

	if _, err := room.addClient(client, payload.Name); err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}

	h.clientMu.Lock()
	h.clientToRoom[client] = code
	h.clientMu.Unlock()

	log.Printf("Client %s (%s) created room %s", client.ID, payload.Name, code)

	createdMsg, _ := protocol.NewMessage("room_created", protocol.RoomCreatedPayload{RoomCode: code})
	h.sendMessageToClient(client.ID, createdMsg)
}

// handleJoinRoom handles a request to join an existing room.
func (h *Hub) handleJoinRoom(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, alreadyInRoom := h.clientToRoom[client]
	h.clientMu.RUnlock()
	if alreadyInRoom {
		h.sendErrorToClient(client, "Already in a room.")
		return
	}

	var payload protocol.JoinRoomPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendErrorToClient(client, "Invalid join_room message format.")
		return
	}
	if payload.Name == "" {
		h.sendErrorToClient(client, "Name cannot be empty.")
		return
	}
	code := strings.ToUpper(payload.RoomCode)

	room := h.roomByCode(code)
	if room == nil {
		h.sendErrorToClient(client, "Room code not found.")
		return
	}

	seat, err := room.addClient(client, payload.Name)
	if err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}

	h.clientMu.Lock()
	h.clientToRoom[client] = code
	h.clientMu.Unlock()

	log.Printf("Client %s (%s) joined room %s at seat %d", client.ID, payload.Name, code, seat)
}

// handleAddBot fills a free seat in the caller's room with a bot.
func (h *Hub) handleAddBot(client *Client) {
	room := h.roomOfClient(client)
	if room == nil {
		h.sendErrorToClient(client, "You are not in a room.")
		return
	}
	if _, err := room.addBot(); err != nil {
		h.sendErrorToClient(client, err.Error())
	}
}

// handleStartGame deals the first round once four players are seated.
func (h *Hub) handleStartGame(client *Client) {
	room := h.roomOfClient(client)
	if room == nil {
		h.sendErrorToClient(client, "You are not in a room.")
		return
	}
	if err := room.start(h.cfg.WinThreshold); err != nil {
		h.sendErrorToClient(client, err.Error())
	}
}

// handleGameAction forwards mus_vote/discard/bet to the caller's room.
func (h *Hub) handleGameAction(client *Client, msg protocol.Message) {
	room := h.roomOfClient(client)
	if room == nil {
		h.sendErrorToClient(client, "You are not in an active room.")
		return
	}

	switch msg.Type {
	case "mus_vote":
		var payload protocol.MusVotePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.sendErrorToClient(client, "Invalid mus_vote message.")
			return
		}
		room.handleVote(client, payload.WantsMus)

	case "discard":
		var payload protocol.DiscardPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.sendErrorToClient(client, "Invalid discard message.")
			return
		}
		room.handleDiscard(client, payload.Indices)

	case "bet":
		var payload protocol.BetPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.sendErrorToClient(client, "Invalid bet message.")
			return
		}
		kind, ok := game.ParseBetAction(payload.Action)
		if !ok {
			h.sendErrorToClient(client, "Unknown bet action.")
			return
		}
		room.handleBet(client, game.BetAction{Kind: kind, Amount: payload.Amount})
	}
}

// handleLeaveRoom frees the caller's seat immediately.
func (h *Hub) handleLeaveRoom(client *Client) {
	room := h.roomOfClient(client)
	if room == nil {
		return
	}

	h.clientMu.Lock()
	delete(h.clientToRoom, client)
	h.clientMu.Unlock()

	room.removeClient(client)
}

// roomByCode looks up a room without holding the lock across the call.
func (h *Hub) roomByCode(code string) *Room {
	h.roomMu.RLock()
	defer h.roomMu.RUnlock()
	return h.rooms[code]
}

// roomOfClient resolves the caller's room, nil if unseated.
func (h *Hub) roomOfClient(client *Client) *Room {
	h.clientMu.RLock()
	code, ok := h.clientToRoom[client]
	h.clientMu.RUnlock()
	if !ok {
		return nil
	}
	return h.roomByCode(code)
}

// removeRoom destroys an empty room.
func (h *Hub) removeRoom(code string) {
	h.roomMu.Lock()
	delete(h.rooms, code)
	h.roomMu.Unlock()
	log.Printf("Room %s deleted", code)
}

// recordResult persists a finished game.
func (h *Hub) recordResult(r *Room, snap game.Snapshot, winner shared.TeamID) {
	if h.db == nil {
		return
	}
	names := make([]string, 4)
	for i, s := range snap.Seats {
		if i < 4 {
			names[i] = s.Name
		}
	}
	result := database.GameResult{
		ID:         snap.GameID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Player1:    names[0],
		Player2:    names[1],
		Player3:    names[2],
		Player4:    names[3],
		WinnerTeam: string(winner),
		ScoreAB:    snap.Scores[shared.TeamAB],
		ScoreCD:    snap.Scores[shared.TeamCD],
	}
	if err := h.db.Insert(result); err != nil {
		log.Errorf("Failed to persist result for game %s: %v", snap.GameID, err)
	}
}

// sendMessageToClient allows room logic to send messages back via the hub.
func (h *Hub) sendMessageToClient(clientID string, message []byte) {
	h.clientMu.RLock()
	var targetClient *Client
	for client := range h.clients {
		if client.ID == clientID {
			targetClient = client
			break
		}
	}
	h.clientMu.RUnlock()

	if targetClient == nil {
		log.Debugf("Could not find client %s to send message (already disconnected?).", clientID)
		return
	}

	// Use a non-blocking send to avoid stalling the room on a dead peer.
	select {
	case targetClient.send <- message:
	default:
		log.Printf("Failed to send message to client %s (channel full or closed), initiating cleanup.", clientID)
		go func() {
			h.clientMu.RLock()
			_, stillConnected := h.clients[targetClient]
			h.clientMu.RUnlock()
			if stillConnected {
				h.unregister <- targetClient
			}
		}()
	}
}

// sendErrorToClient sends a generic error message to a specific client.
func (h *Hub) sendErrorToClient(client *Client, errorMsg string) {
	payload := protocol.ErrorPayload{Message: errorMsg}
	msgBytes, err := protocol.NewMessage("error", payload)
	if err != nil {
		log.Errorf("Error creating error message for client %s: %v", client.ID, err)
		return
	}
	h.sendMessageToClient(client.ID, msgBytes)
}

// Counts reports active rooms and connected clients for the health route.
func (h *Hub) Counts() (rooms, clients int) {
	h.roomMu.RLock()
	rooms = len(h.rooms)
	h.roomMu.RUnlock()

	h.clientMu.RLock()
	clients = len(h.clients)
	h.clientMu.RUnlock()
	return rooms, clients
}

// RoomStats snapshots every live room for the stats route.
func (h *Hub) RoomStats() []RoomStat {
	h.roomMu.RLock()
	roomList := make([]*Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		roomList = append(roomList, r)
	}
	h.roomMu.RUnlock()

	stats := make([]RoomStat, 0, len(roomList))
	for _, r := range roomList {
		stats = append(stats, r.stat())
	}
	return stats
}
