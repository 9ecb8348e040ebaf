package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/hferris/tally/internal/models"
	"github.com/hferris/tally/internal/services/ledger"
	"github.com/hferris/tally/internal/services/recurring"
)

// BudgetData handles GET /api/budget-data: the working set the budget
// view needs in one response.
func (h *Handler) BudgetData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	doc, err := h.store.Load()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"transactions":     doc.Transactions,
		"budget_cats":      doc.BudgetCategories(),
		"recurring":        doc.RecurringTransactions,
		"spending_history": doc.SpendingHistory,
	})
}

// Recurring handles /api/recurring: GET lists rules, POST appends one,
// DELETE removes by index.
func (h *Handler) Recurring(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Load()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodGet:
		rules := doc.RecurringTransactions
		if rules == nil {
			rules = []models.RecurringTransaction{}
		}
		respondJSON(w, http.StatusOK, rules)

	case http.MethodPost:
		var rule models.RecurringTransaction
		if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
			jsonError(w, "invalid recurring rule", http.StatusBadRequest)
			return
		}
		if rule.Category == "" {
			rule.Category = "Other"
		}
		if rule.Frequency == "" {
			rule.Frequency = "monthly"
		}
		doc.RecurringTransactions = append(doc.RecurringTransactions, rule)
		if err := h.store.Save(doc); err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})

	case http.MethodDelete:
		idx, err := strconv.Atoi(r.URL.Query().Get("idx"))
		if err != nil || idx < 0 || idx >= len(doc.RecurringTransactions) {
			jsonError(w, "index out of range", http.StatusBadRequest)
			return
		}
		doc.RecurringTransactions = append(
			doc.RecurringTransactions[:idx], doc.RecurringTransactions[idx+1:]...)
		if err := h.store.Save(doc); err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})

	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// RecurringSuggestions handles GET /api/recurring/suggestions: runs the
// detector over the stored transaction history.
func (h *Handler) RecurringSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	doc, err := h.store.Load()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	suggestions := recurring.Detect(doc.Transactions, doc.RecurringTransactions)
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	respondJSON(w, http.StatusOK, suggestions)
}

// RecurringApply handles POST /api/recurring/apply: posts configured
// recurring rules into the current month.
func (h *Handler) RecurringApply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	doc, err := h.store.Load()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(doc.RecurringTransactions) == 0 {
		jsonError(w, "no recurring transactions configured", http.StatusBadRequest)
		return
	}
	count := ledger.ApplyRecurring(doc, time.Now())
	if err := h.store.Save(doc); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	msg := fmt.Sprintf("Applied %d recurring transaction(s) for this month.", count)
	h.logAction("apply recurring", msg)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"applied": count,
		"message": msg,
	})
}
