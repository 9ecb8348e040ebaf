// Package handlers provides the HTTP API over the import core.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/hferris/tally/internal/config"
	"github.com/hferris/tally/internal/services/importer"
	"github.com/hferris/tally/internal/store"
)

// Handler contains all HTTP handlers and dependencies
type Handler struct {
	cfg     *config.Config
	store   *store.Store
	history *store.History
}

// New creates a new handler with all dependencies
func New(cfg *config.Config, st *store.Store, history *store.History) *Handler {
	return &Handler{cfg: cfg, store: st, history: history}
}

// Routes registers every endpoint on the mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/import/positions", h.ImportPositions)
	mux.HandleFunc("/api/import/statement", h.ImportStatement)
	mux.HandleFunc("/api/undo-import", h.UndoImport)
	mux.HandleFunc("/api/clear-transactions", h.ClearTransactions)
	mux.HandleFunc("/api/recurring", h.Recurring)
	mux.HandleFunc("/api/recurring/suggestions", h.RecurringSuggestions)
	mux.HandleFunc("/api/recurring/apply", h.RecurringApply)
	mux.HandleFunc("/api/budget-data", h.BudgetData)
	mux.HandleFunc("/api/history", h.ImportHistory)
}

// statementReader builds a reader wired to the document's budget
// categories so parsed transactions land in the user's taxonomy.
func (h *Handler) statementReader(doc *store.Document) *importer.StatementReader {
	cat := importer.NewCategorizer(nil, doc.BudgetCategories())
	return importer.NewStatementReader(cat, h.cfg.DefaultStatementYear)
}

func (h *Handler) logAction(action, details string) {
	if h.history == nil {
		return
	}
	if err := h.history.Append(action, details); err != nil {
		log.Printf("history append failed: %v", err)
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func jsonError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}
