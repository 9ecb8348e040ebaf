// Package ledger applies parsed import records against the persisted
// document: replace-by-account for brokerages, accumulate-into-total
// for blended accounts, append-with-dedup for statements.
package ledger

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hferris/tally/internal/models"
	"github.com/hferris/tally/internal/services/importer"
	"github.com/hferris/tally/internal/store"
)

// ErrUnknownSource reports an unrecognized import source identifier.
var ErrUnknownSource = errors.New("unknown import source")

// FidelityAccount is the account name brokerage imports replace.
const FidelityAccount = "Fidelity"

// blendedAccountNames maps an import source to its canonical blended
// account name and asset class.
var blendedAccountNames = map[string]struct {
	name       string
	assetClass models.AssetClass
}{
	"stash":         {"Stash Total", models.AssetClassManagedBlend},
	"acorns":        {"Acorns Invest", models.AssetClassManagedBlend},
	"acorns_invest": {"Acorns Invest", models.AssetClassManagedBlend},
	"acorns_later":  {"Acorns Later", models.AssetClassManagedBlend},
	"fundrise":      {"Fundrise", models.AssetClassRealEstate},
}

// PositionSources lists every accepted -source value for position imports.
var PositionSources = []string{"fidelity", "stash", "acorns", "acorns_invest", "acorns_later", "fundrise"}

// dedupTolerance is how close two amounts must be for the statement
// dedup predicate to call them the same transaction.
var dedupTolerance = decimal.NewFromFloat(0.01)

// ApplyFidelityImport replaces the document's Fidelity holdings with
// the parsed positions. Holdings of other accounts are untouched; each
// lot stays its own row. Returns the number of holdings written.
func ApplyFidelityImport(doc *store.Document, positions []models.Position) int {
	var kept []models.Holding
	for _, h := range doc.Holdings {
		if strings.TrimSpace(h.Account) != FidelityAccount {
			kept = append(kept, h)
		}
	}

	var imported []models.Holding
	for _, p := range positions {
		if p.Symbol == "" && p.Value.IsZero() {
			continue
		}
		var override decimal.NullDecimal
		if !p.Value.IsZero() {
			override = decimal.NullDecimal{Decimal: p.Value.Round(2), Valid: true}
		}
		imported = append(imported, models.Holding{
			Account:       FidelityAccount,
			Ticker:        p.Symbol,
			AssetClass:    importer.AssetClassForTicker(p.Symbol),
			Qty:           p.Qty,
			ValueOverride: override,
			Notes:         p.Description,
		})
	}
	doc.Holdings = append(kept, imported...)
	return len(imported)
}

// ApplyBlendedImport folds the parsed rows into a single total and
// updates (or inserts) the blended account the source maps to. A total
// of zero or less is a no-op: it is far more likely a malformed CSV
// than a genuinely empty account.
func ApplyBlendedImport(doc *store.Document, positions []models.Position, source string) int {
	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(p.Value)
	}
	if !total.IsPositive() {
		return 0
	}
	target, ok := blendedAccountNames[source]
	if !ok {
		return 0
	}
	for i := range doc.BlendedAccounts {
		if doc.BlendedAccounts[i].Name == target.name {
			doc.BlendedAccounts[i].Value = total.Round(2)
			return 1
		}
	}
	doc.BlendedAccounts = append(doc.BlendedAccounts, models.BlendedAccount{
		Name:       target.name,
		Value:      total.Round(2),
		AssetClass: target.assetClass,
	})
	return 1
}

// ImportPositions loads the document, parses the CSV for the given
// source, applies it, and saves. The returned message is suitable for
// direct display; content problems come back as (0, message, nil) and
// only I/O failures as an error.
func ImportPositions(st *store.Store, csvPath, source string) (int, string, error) {
	source = strings.ToLower(strings.TrimSpace(source))
	if source != "fidelity" {
		if _, ok := blendedAccountNames[source]; !ok {
			return 0, fmt.Sprintf("Unknown source: %s. Use %s.", source, strings.Join(PositionSources, ", ")), nil
		}
	}

	doc, err := st.Load()
	if err != nil {
		return 0, "", err
	}
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	var updated int
	if source == "fidelity" {
		positions := importer.ParseFidelityCSV(f, importer.DefaultAccountFilter)
		if len(positions) == 0 {
			return 0, "No Fidelity positions found in CSV. Check column headers (Symbol, Quantity, Current Value).", nil
		}
		updated = ApplyFidelityImport(doc, positions)
	} else {
		positions := importer.ParseBlendedCSV(f, source)
		if len(positions) == 0 {
			return 0, "No rows with values found. Expected columns: Symbol/Name, Value (or Balance).", nil
		}
		updated = ApplyBlendedImport(doc, positions, source)
	}

	if err := st.Save(doc); err != nil {
		return 0, "", err
	}
	return updated, fmt.Sprintf("Updated %d position(s) from %s CSV. Run the dashboard update to refresh.", updated, source), nil
}

// StatementResult summarizes a statement import for user feedback.
type StatementResult struct {
	Added   int    `json:"added"`
	Parsed  int    `json:"parsed"`
	Skipped int    `json:"skipped"`
	Message string `json:"message"`
}

// ApplyStatementImport appends parsed transactions to the document,
// skipping heuristic duplicates (same date, same note case-insensitive,
// amount within a cent) and folding each added entry into the spending
// history. Re-importing an identical statement adds zero entries.
// overrides maps exact descriptions to corrected categories.
func ApplyStatementImport(doc *store.Document, txns []models.Transaction, overrides map[string]string) StatementResult {
	countBefore := len(doc.Transactions)
	added := 0
	for _, txn := range txns {
		if cat, ok := overrides[txn.Description]; ok {
			txn.Category = cat
		}
		if isDuplicate(doc.Transactions, txn) {
			continue
		}
		doc.Transactions = append(doc.Transactions, models.Entry{
			ID:       uuid.New(),
			Date:     txn.Date,
			Category: txn.Category,
			Amount:   txn.Amount,
			Note:     txn.Description,
		})
		added++
		if len(txn.Date) >= 7 {
			doc.SpendingHistory.Add(txn.Date[:7], txn.Category, txn.Amount)
		}
	}

	doc.LastImport = &store.ImportSnapshot{
		ID:          uuid.New(),
		Count:       added,
		Timestamp:   time.Now().Format(time.RFC3339),
		CountBefore: countBefore,
	}
	return StatementResult{
		Added:   added,
		Parsed:  len(txns),
		Skipped: len(txns) - added,
		Message: fmt.Sprintf("Imported %d new transactions (%d total parsed, %d duplicates skipped).", added, len(txns), len(txns)-added),
	}
}

func isDuplicate(existing []models.Entry, txn models.Transaction) bool {
	for _, e := range existing {
		if e.Date == txn.Date &&
			strings.EqualFold(e.Note, txn.Description) &&
			e.Amount.Sub(txn.Amount).Abs().LessThan(dedupTolerance) {
			return true
		}
	}
	return false
}

// ImportStatements parses every statement file, accumulating all
// transactions in memory, then applies them against one load/save
// cycle so a batch never leaves the document half-written.
func ImportStatements(st *store.Store, reader *importer.StatementReader, paths []string, overrides map[string]string) (StatementResult, []models.Transaction, error) {
	var all []models.Transaction
	for _, path := range paths {
		txns, err := reader.ParseFile(path)
		if err != nil {
			return StatementResult{}, nil, err
		}
		all = append(all, txns...)
	}
	if len(all) == 0 {
		return StatementResult{
			Message: "No transactions found. Check that the CSV has Date and Description columns.",
		}, nil, nil
	}

	doc, err := st.Load()
	if err != nil {
		return StatementResult{}, nil, err
	}
	result := ApplyStatementImport(doc, all, overrides)
	if err := st.Save(doc); err != nil {
		return StatementResult{}, nil, err
	}
	return result, all, nil
}
