// tally - personal finance ingestion server
// Entry point for the HTTP API
package main

import (
	"log"
	"net/http"

	"github.com/hferris/tally/internal/config"
	"github.com/hferris/tally/internal/handlers"
	"github.com/hferris/tally/internal/store"
)

func main() {
	cfg := config.Load()

	st := store.New(cfg.DocumentPath)

	history, err := store.OpenHistory(cfg.HistoryDB)
	if err != nil {
		log.Fatalf("Failed to open history database: %v", err)
	}
	defer history.Close()

	h := handlers.New(cfg, st, history)

	mux := http.NewServeMux()
	h.Routes(mux)

	addr := ":" + cfg.Port
	log.Printf("tally listening on %s (document: %s)", addr, cfg.DocumentPath)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
