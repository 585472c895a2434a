package main

import (
	"flag"
	"net/http"

	"mus-game/internal/config"
	"mus-game/internal/database"
	"mus-game/internal/log"
	"mus-game/internal/server"
)

func main() {
	configFile := flag.String("config", "", "optional config file (yaml/json/toml)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	log.Println("Starting Mus server...")

	db := database.New(cfg.DBPath)
	defer db.Close()

	hub := server.NewHub(cfg, &db)
	go hub.Run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		server.ServeWs(hub, w, r)
	})

	fs := http.FileServer(http.Dir(cfg.StaticDir))
	http.Handle("/", fs)

	server.HandleRoutes(hub, &db)

	log.Printf("Listening on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, nil))
}
