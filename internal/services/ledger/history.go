package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hferris/tally/internal/models"
	"github.com/hferris/tally/internal/store"
)

// ErrNothingToUndo reports that no undoable import snapshot exists.
var ErrNothingToUndo = errors.New("no import to undo")

// RebuildSpendingHistory recomputes the month/category accumulator
// from scratch. Used after any operation that removes transactions;
// the accumulator is append-only otherwise and would drift.
func RebuildSpendingHistory(txns []models.Entry) models.SpendingHistory {
	history := make(models.SpendingHistory)
	for _, t := range txns {
		if len(t.Date) >= 7 {
			history.Add(t.Date[:7], t.Category, t.Amount)
		}
	}
	return history
}

// UndoLastImport removes the transactions added by the most recent
// statement import, trims the list back to its pre-import length, and
// rebuilds the spending history. Returns how many entries were removed.
func UndoLastImport(doc *store.Document) (int, error) {
	if doc.LastImport == nil || doc.LastImport.Count == 0 {
		return 0, ErrNothingToUndo
	}
	countBefore := doc.LastImport.CountBefore
	if countBefore < 0 || countBefore > len(doc.Transactions) {
		return 0, fmt.Errorf("undo snapshot out of range: %d of %d", countBefore, len(doc.Transactions))
	}
	removed := len(doc.Transactions) - countBefore
	doc.Transactions = doc.Transactions[:countBefore]
	doc.SpendingHistory = RebuildSpendingHistory(doc.Transactions)
	doc.LastImport = nil
	return removed, nil
}

// ClearTransactions drops every transaction and resets the spending
// history. Returns the number of cleared entries.
func ClearTransactions(doc *store.Document) int {
	count := len(doc.Transactions)
	doc.Transactions = nil
	doc.SpendingHistory = make(models.SpendingHistory)
	doc.LastImport = nil
	return count
}

// ApplyRecurring posts each configured recurring rule into the month
// of now: weekly rules four times, biweekly twice, monthly once;
// quarterly rules only in the first month of a quarter and yearly
// rules only in January. Returns the number of entries posted.
func ApplyRecurring(doc *store.Document, now time.Time) int {
	date := now.Format("2006-01-02")
	month := now.Format("2006-01")
	count := 0
	for _, rt := range doc.RecurringTransactions {
		multiplier := 1
		switch rt.Frequency {
		case "weekly":
			multiplier = 4
		case "biweekly":
			multiplier = 2
		case "quarterly":
			if int(now.Month())%3 != 1 {
				continue
			}
		case "yearly":
			if now.Month() != time.January {
				continue
			}
		}
		for n := 0; n < multiplier; n++ {
			entry := models.Entry{
				ID:       uuid.New(),
				Date:     date,
				Category: rt.Category,
				Amount:   rt.Amount,
				Note:     "[Recurring] " + rt.Name,
			}
			doc.Transactions = append(doc.Transactions, entry)
			doc.SpendingHistory.Add(month, entry.Category, entry.Amount)
			count++
		}
	}
	return count
}
