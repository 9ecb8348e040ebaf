package store

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hferris/tally/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDocument_PreservesUnknownKeys(t *testing.T) {
	raw := `{
		"holdings": [],
		"transactions": [],
		"price_cache": {"BTC": 67000.12, "updated": "2026-01-15"},
		"api_keys": {"metals": "secret"},
		"dashboard_layout": ["holdings", "budget"]
	}`

	doc := NewDocument()
	if err := json.Unmarshal([]byte(raw), doc); err != nil {
		t.Fatal(err)
	}
	doc.Transactions = append(doc.Transactions, models.Entry{
		ID: uuid.New(), Date: "2026-01-15", Category: "Food", Amount: dec("42.50"), Note: "TRADER JOE'S",
	})

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	var round map[string]json.RawMessage
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"price_cache", "api_keys", "dashboard_layout"} {
		if _, ok := round[key]; !ok {
			t.Errorf("Unknown key %q lost in round-trip", key)
		}
	}
	var cache map[string]interface{}
	if err := json.Unmarshal(round["price_cache"], &cache); err != nil {
		t.Fatal(err)
	}
	if cache["updated"] != "2026-01-15" {
		t.Errorf("price_cache = %v", cache)
	}
}

func TestDocument_CryptoAndBudgetStayOpaque(t *testing.T) {
	raw := `{
		"crypto_holdings": [{"symbol": "BTC", "qty": 0.5}],
		"budget": {"categories": [{"name": "Food", "limit": 600}, {"name": "Housing"}]}
	}`

	doc := NewDocument()
	if err := json.Unmarshal([]byte(raw), doc); err != nil {
		t.Fatal(err)
	}

	cats := doc.BudgetCategories()
	if len(cats) != 2 || cats[0] != "Food" || cats[1] != "Housing" {
		t.Errorf("BudgetCategories = %v", cats)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	var round map[string]json.RawMessage
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatal(err)
	}
	var crypto []map[string]interface{}
	if err := json.Unmarshal(round["crypto_holdings"], &crypto); err != nil {
		t.Fatal(err)
	}
	if len(crypto) != 1 || crypto[0]["symbol"] != "BTC" {
		t.Errorf("crypto_holdings = %v", crypto)
	}
}

func TestDocument_AmountsAsPlainNumbers(t *testing.T) {
	doc := NewDocument()
	doc.Transactions = []models.Entry{
		{ID: uuid.New(), Date: "2026-01-15", Category: "Food", Amount: dec("42.50"), Note: "X"},
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	var round struct {
		Transactions []struct {
			Amount json.Number `json:"amount"`
		} `json:"transactions"`
	}
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("Amount not a JSON number: %v\n%s", err, out)
	}
	if round.Transactions[0].Amount.String() != "42.5" {
		t.Errorf("amount = %s", round.Transactions[0].Amount)
	}
}

func TestDocument_EmptyListsNotNull(t *testing.T) {
	out, err := json.Marshal(NewDocument())
	if err != nil {
		t.Fatal(err)
	}
	var round map[string]json.RawMessage
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"holdings", "blended_accounts", "transactions", "recurring_transactions"} {
		if string(round[key]) == "null" {
			t.Errorf("%q marshaled as null, want empty list", key)
		}
	}
	if _, ok := round["_last_import"]; ok {
		t.Errorf("_last_import should be omitted when no import happened")
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope.json"))
	doc, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc == nil || doc.SpendingHistory == nil {
		t.Errorf("Missing file should yield a usable empty document")
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "document.json"))

	doc := NewDocument()
	doc.Holdings = []models.Holding{{Account: "Fidelity", Ticker: "AAPL", AssetClass: models.AssetClassEquities}}
	doc.SpendingHistory.Add("2026-01", "Food", dec("42.50"))
	if err := st.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Holdings) != 1 || loaded.Holdings[0].Ticker != "AAPL" {
		t.Errorf("Holdings = %+v", loaded.Holdings)
	}
	if !loaded.SpendingHistory["2026-01"]["Food"].Equal(dec("42.50")) {
		t.Errorf("SpendingHistory = %v", loaded.SpendingHistory)
	}
}
