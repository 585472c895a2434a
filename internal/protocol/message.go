package protocol

import (
	"encoding/json"

	"mus-game/internal/game"
)

// Message represents a generic WebSocket message structure.
type Message struct {
	Type    string          `json:"type"`              // Type of the message (e.g., "join_room", "bet")
	Payload json.RawMessage `json:"payload,omitempty"` // Raw JSON payload, allows flexible structures
}

// --- Client -> Server Payload Structs ---

type CreateRoomPayload struct {
	Name string `json:"name"`
}

type JoinRoomPayload struct {
	Name     string `json:"name"`
	RoomCode string `json:"room_code"`
}

type MusVotePayload struct {
	WantsMus bool `json:"wants_mus"`
}

type DiscardPayload struct {
	Indices []int `json:"indices"`
}

type BetPayload struct {
	Action string `json:"action"` // PASO, IMIDO, GEHIAGO, IDUKI, TIRA, HORDAGO, KANTA
	Amount int    `json:"amount,omitempty"`
}

// --- Server -> Client Payload Structs ---

type RoomCreatedPayload struct {
	RoomCode string `json:"room_code"`
}

type PlayerInfo struct {
	Seat      int    `json:"seat"`
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
	IsBot     bool   `json:"is_bot"`
}

type RoomUpdatePayload struct {
	RoomCode string       `json:"room_code"`
	Players  []PlayerInfo `json:"players"`
	Started  bool         `json:"started"`
}

type TeamsAssignedPayload struct {
	TeamAB []PlayerInfo `json:"team_ab"`
	TeamCD []PlayerInfo `json:"team_cd"`
}

type GameStatePayload struct {
	Snapshot game.Snapshot `json:"snapshot"`
}

type ActionResultPayload struct {
	Result *game.Result `json:"result"`
}

type PhaseResultPayload struct {
	Result game.PhaseResult `json:"result"`
}

type RoundEndPayload struct {
	ScoreAB int                 `json:"score_ab"`
	ScoreCD int                 `json:"score_cd"`
	Primes  []game.PendingPrime `json:"primes,omitempty"`
}

type GameOverPayload struct {
	Winner  string `json:"winner"`
	ScoreAB int    `json:"score_ab"`
	ScoreCD int    `json:"score_cd"`
}

type PlayerDisconnectedPayload struct {
	Seat int    `json:"seat"`
	Name string `json:"name"`
}

type GameCancelledPayload struct {
	Message string `json:"message"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Helper function to create a JSON message
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	if payload == nil {
		msg := Message{Type: msgType}
		return json.Marshal(msg)
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg := Message{
		Type:    msgType,
		Payload: payloadBytes,
	}
	return json.Marshal(msg)
}
