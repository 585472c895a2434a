package server

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"mus-game/internal/database"
	"mus-game/internal/log"
)

func HandleRoutes(hub *Hub, db *database.Service) {
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		HealthHandler(hub, w, r)
	})

	http.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		StatsHandler(hub, w, r)
	})

	http.HandleFunc("/api/results/player/{name}", func(w http.ResponseWriter, r *http.Request) {
		GetResultsByPlayerHandler(db, w, r)
	})

	http.HandleFunc("/api/results", func(w http.ResponseWriter, r *http.Request) {
		GetResultsHandler(db, w, r)
	})

	log.Println("Registered routes: /health /stats /api/results /api/results/player/{name}")
}

func HealthHandler(hub *Hub, w http.ResponseWriter, r *http.Request) {
	rooms, clients := hub.Counts()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":        "OK",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"activeRooms":   rooms,
		"activePlayers": clients,
	})
}

func StatsHandler(hub *Hub, w http.ResponseWriter, r *http.Request) {
	stats := hub.RoomStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"rooms":      stats,
		"totalRooms": len(stats),
	})
}

func GetResultsByPlayerHandler(db *database.Service, w http.ResponseWriter, r *http.Request) {
	player := r.PathValue("name")
	if player == "" {
		http.Error(w, "Player name is required", http.StatusBadRequest)
		return
	}

	results, err := db.GetByPlayer(player)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "No results found for player", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

func GetResultsHandler(db *database.Service, w http.ResponseWriter, r *http.Request) {
	results, err := db.GetAll()
	if err != nil {
		http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
