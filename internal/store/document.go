// Package store persists the dashboard's whole-file JSON document and
// keeps a sqlite-backed log of import actions.
package store

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hferris/tally/internal/models"
)

func init() {
	// The document predates this program and stores amounts as JSON
	// numbers; keep writing them that way.
	decimal.MarshalJSONWithoutQuotes = true
}

// ImportSnapshot records the last statement import so it can be undone.
type ImportSnapshot struct {
	ID          uuid.UUID `json:"id"`
	Count       int       `json:"count"`
	Timestamp   string    `json:"timestamp"`
	CountBefore int       `json:"transaction_count_before"`
}

// Document is the persisted nested key/value store. The import core
// works against the typed fields; every key it does not understand
// (price caches, API keys, dashboard state) survives a load/save
// round-trip byte for byte. crypto_holdings and budget are held opaque
// on purpose: CSV imports must never rewrite them.
type Document struct {
	Holdings              []models.Holding
	BlendedAccounts       []models.BlendedAccount
	Transactions          []models.Entry
	SpendingHistory       models.SpendingHistory
	RecurringTransactions []models.RecurringTransaction
	CryptoHoldings        json.RawMessage
	Budget                json.RawMessage
	LastImport            *ImportSnapshot

	extra map[string]json.RawMessage
}

// NewDocument returns an empty document ready for imports.
func NewDocument() *Document {
	return &Document{SpendingHistory: make(models.SpendingHistory)}
}

func (d *Document) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	take := func(key string, v interface{}) error {
		msg, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		return json.Unmarshal(msg, v)
	}

	if err := take("holdings", &d.Holdings); err != nil {
		return err
	}
	if err := take("blended_accounts", &d.BlendedAccounts); err != nil {
		return err
	}
	if err := take("transactions", &d.Transactions); err != nil {
		return err
	}
	if err := take("spending_history", &d.SpendingHistory); err != nil {
		return err
	}
	if err := take("recurring_transactions", &d.RecurringTransactions); err != nil {
		return err
	}
	if err := take("_last_import", &d.LastImport); err != nil {
		return err
	}
	if msg, ok := raw["crypto_holdings"]; ok {
		d.CryptoHoldings = msg
		delete(raw, "crypto_holdings")
	}
	if msg, ok := raw["budget"]; ok {
		d.Budget = msg
		delete(raw, "budget")
	}

	if d.SpendingHistory == nil {
		d.SpendingHistory = make(models.SpendingHistory)
	}
	d.extra = raw
	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.extra)+8)
	for k, v := range d.extra {
		out[k] = v
	}

	put := func(key string, v interface{}) error {
		msg, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out[key] = msg
		return nil
	}

	holdings := d.Holdings
	if holdings == nil {
		holdings = []models.Holding{}
	}
	blended := d.BlendedAccounts
	if blended == nil {
		blended = []models.BlendedAccount{}
	}
	txns := d.Transactions
	if txns == nil {
		txns = []models.Entry{}
	}
	recurring := d.RecurringTransactions
	if recurring == nil {
		recurring = []models.RecurringTransaction{}
	}
	history := d.SpendingHistory
	if history == nil {
		history = make(models.SpendingHistory)
	}

	if err := put("holdings", holdings); err != nil {
		return nil, err
	}
	if err := put("blended_accounts", blended); err != nil {
		return nil, err
	}
	if err := put("transactions", txns); err != nil {
		return nil, err
	}
	if err := put("spending_history", history); err != nil {
		return nil, err
	}
	if err := put("recurring_transactions", recurring); err != nil {
		return nil, err
	}
	if d.LastImport != nil {
		if err := put("_last_import", d.LastImport); err != nil {
			return nil, err
		}
	}
	if d.CryptoHoldings != nil {
		out["crypto_holdings"] = d.CryptoHoldings
	}
	if d.Budget != nil {
		out["budget"] = d.Budget
	}
	return json.Marshal(out)
}

// BudgetCategories reads the configured budget category names out of
// the opaque budget blob. Returns nil when no budget is configured.
func (d *Document) BudgetCategories() []string {
	if d.Budget == nil {
		return nil
	}
	var budget struct {
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(d.Budget, &budget); err != nil {
		return nil
	}
	names := make([]string, 0, len(budget.Categories))
	for _, c := range budget.Categories {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return names
}
