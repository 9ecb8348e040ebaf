package importer

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hferris/tally/internal/models"
)

// DefaultAccountFilter is the Fidelity sub-account imported when the
// caller does not choose one. Exports include rows for linked accounts
// (Stash, Portfolio) that would otherwise be double-counted.
const DefaultAccountFilter = "Individual"

// NormalizeSymbol strips the trailing * suffixes Fidelity appends to
// flag margin-related symbols and upper-cases the ticker for matching.
func NormalizeSymbol(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), "*")
	return strings.ToUpper(s)
}

// AssetClassForTicker maps a ticker to its allocation bucket.
func AssetClassForTicker(ticker string) models.AssetClass {
	switch NormalizeSymbol(ticker) {
	case "SPAXX":
		return models.AssetClassCash
	case "GLD", "GLDM", "IAU":
		return models.AssetClassGold
	case "SLV", "PSLV":
		return models.AssetClassSilver
	}
	return models.AssetClassEquities
}

// sentinel symbols Fidelity emits for non-position rows
var fidelitySentinels = map[string]bool{
	"CASH":    true,
	"MARGIN":  true,
	"TOTAL":   true,
	"ACCOUNT": true,
}

var fidelityFillerRows = map[string]bool{
	"pending activity": true,
	"pending":          true,
	"total":            true,
	"account total":    true,
}

// ParseFidelityCSV parses a Fidelity positions export. Column layout is
// auto-detected, so reordered or renamed exports still resolve. One
// Position is produced per row with no lot aggregation; the lot type
// (Cash/Margin) is appended to the description for traceability.
//
// accountFilter keeps only rows whose Account Name matches (case and
// formatting insensitive). Pass "" to import every sub-account.
func ParseFidelityCSV(r io.Reader, accountFilter string) []models.Position {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		return nil
	}

	header := records[0]
	idxSymbol := ResolveColumn(header, "symbol", "ticker")
	idxQty := ResolveColumn(header, "quantity", "qty", "shares")
	idxPrice := ResolveColumn(header, "last_price", "price", "close")
	idxValue := ResolveColumn(header, "current_value", "value", "market_value")
	idxDesc := ResolveColumn(header, "description", "security")
	idxType := ResolveColumn(header, "type") // Fidelity: Cash, Margin
	idxAccount := ResolveColumn(header, "account_name", "account")

	if idxSymbol < 0 && idxValue < 0 {
		return nil
	}

	maxIdx := -1
	for _, i := range []int{idxSymbol, idxQty, idxPrice, idxValue, idxDesc} {
		if i > maxIdx {
			maxIdx = i
		}
	}

	var positions []models.Position
	for _, row := range records[1:] {
		if maxIdx < 0 || len(row) <= maxIdx {
			continue
		}
		if accountFilter != "" && idxAccount >= 0 && idxAccount < len(row) {
			if NormalizeHeader(row[idxAccount]) != NormalizeHeader(accountFilter) {
				continue
			}
		}

		symbol := ""
		if idxSymbol >= 0 && idxSymbol < len(row) {
			symbol = strings.TrimSpace(row[idxSymbol])
		}
		if symbol == "" || fidelitySentinels[strings.ToUpper(symbol)] {
			continue
		}
		if NormalizeSymbol(symbol) == "" || symbol == "**" {
			continue
		}
		if fidelityFillerRows[strings.ToLower(symbol)] {
			continue
		}

		var qty, price decimal.NullDecimal
		if idxQty >= 0 && idxQty < len(row) {
			qty = decimal.NullDecimal{Decimal: ParseAmount(row[idxQty]), Valid: true}
		}
		if idxPrice >= 0 && idxPrice < len(row) {
			price = decimal.NullDecimal{Decimal: ParseAmount(row[idxPrice]), Valid: true}
		}

		var value decimal.Decimal
		switch {
		case idxValue >= 0 && idxValue < len(row):
			value = ParseAmount(row[idxValue])
		case qty.Valid && !qty.Decimal.IsZero() && price.Valid && !price.Decimal.IsZero():
			value = qty.Decimal.Mul(price.Decimal)
		}

		desc := ""
		if idxDesc >= 0 && idxDesc < len(row) {
			desc = strings.TrimSpace(row[idxDesc])
		}
		if idxType >= 0 && idxType < len(row) {
			if lot := strings.TrimSpace(row[idxType]); lot != "" {
				if desc != "" {
					desc = desc + " | " + lot
				} else {
					desc = lot
				}
			}
		}

		baseSym := strings.TrimRight(symbol, "*")
		if baseSym == "" {
			baseSym = symbol
		}
		// Zero quantities become null so downstream valuation relies on
		// the value override instead of a meaningless 0-share lot.
		if qty.Valid && qty.Decimal.IsZero() {
			qty.Valid = false
		}
		positions = append(positions, models.Position{
			Symbol:      baseSym,
			Qty:         qty,
			Price:       price,
			Value:       value,
			Description: desc,
		})
	}
	return positions
}
