// Package models defines the domain records shared by the parsers,
// the import orchestrators, and the persisted document store.
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetClass buckets a holding for allocation reporting
type AssetClass string

const (
	AssetClassCash         AssetClass = "Cash"
	AssetClassGold         AssetClass = "Gold"
	AssetClassSilver       AssetClass = "Silver"
	AssetClassEquities     AssetClass = "Equities"
	AssetClassManagedBlend AssetClass = "ManagedBlend"
	AssetClassRealEstate   AssetClass = "RealEstate"
)

// Position is the transient output of a brokerage CSV parse.
// One Position per exported row - lots are never aggregated, so a
// Margin lot and a Cash lot of the same ticker stay separate rows.
type Position struct {
	Symbol      string              `json:"symbol"`
	Qty         decimal.NullDecimal `json:"qty"`
	Price       decimal.NullDecimal `json:"price"`
	Value       decimal.Decimal     `json:"value"`
	Description string              `json:"description"`
}

// Holding is a persisted brokerage position. The full set of holdings
// for an account is replaced wholesale on each import of that account.
type Holding struct {
	Account       string              `json:"account"`
	Ticker        string              `json:"ticker"`
	AssetClass    AssetClass          `json:"asset_class"`
	Qty           decimal.NullDecimal `json:"qty"`
	ValueOverride decimal.NullDecimal `json:"value_override"`
	Notes         string              `json:"notes"`
}

// BlendedAccount is an account the provider reports only as a rolled-up
// balance (robo-advisors, REIT platforms). At most one entry per name;
// imports overwrite Value rather than accumulate history.
type BlendedAccount struct {
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	AssetClass AssetClass      `json:"asset_class"`
}

// TransactionType distinguishes spend from incoming money
type TransactionType string

const (
	TransactionExpense TransactionType = "expense"
	TransactionIncome  TransactionType = "income"
)

// Transaction is the transient output of a statement parse.
// Sign convention: expenses carry positive amounts, income negative,
// so a plain sum over a month yields net spend.
type Transaction struct {
	Date         string          `json:"date"` // YYYY-MM-DD
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Type         TransactionType `json:"type"`
	BankCategory string          `json:"bank_category"`
}

// Entry is the persisted form of a Transaction. Description becomes
// Note; the type and bank category are folded into Category upstream.
type Entry struct {
	ID       uuid.UUID       `json:"id"`
	Date     string          `json:"date"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note"`
}

// SpendingHistory accumulates amounts by "YYYY-MM" month then category.
// It is append-only during imports; undo and clear rebuild it fully.
type SpendingHistory map[string]map[string]decimal.Decimal

// Add folds an amount into the month/category bucket.
func (s SpendingHistory) Add(month, category string, amount decimal.Decimal) {
	if month == "" {
		return
	}
	byCat, ok := s[month]
	if !ok {
		byCat = make(map[string]decimal.Decimal)
		s[month] = byCat
	}
	byCat[category] = byCat[category].Add(amount)
}

// RecurringTransaction is a user-accepted recurring bill/subscription rule.
type RecurringTransaction struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Frequency string          `json:"frequency"` // weekly, biweekly, monthly, quarterly, yearly
}

// Suggestion is a detector-proposed recurring candidate. It is never
// persisted directly; accepting one creates a RecurringTransaction.
type Suggestion struct {
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Frequency   string          `json:"frequency"`
	Occurrences int             `json:"occurrences"`
	Months      []string        `json:"months"`
}
