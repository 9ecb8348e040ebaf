package importer

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hferris/tally/internal/models"
)

// ParseBlendedCSV parses a Stash/Acorns/Fundrise-style export: either
// per-holding rows (Symbol, Quantity, Value) or a single-total CSV with
// no identifying column at all. Columns are fuzzy-matched; when no
// value-like column exists the last cell of each row is taken as the
// value. Rows without a symbol fall back to the source name, so a bare
// balance export still yields one usable record.
func ParseBlendedCSV(r io.Reader, source string) []models.Position {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		return nil
	}

	header := records[0]
	idxSymbol := ResolveColumn(header, "symbol", "ticker", "security", "name")
	idxQty := ResolveColumn(header, "quantity", "qty", "shares")
	idxValue := ResolveColumn(header, "value", "balance", "current_value", "market_value", "amount")

	var positions []models.Position
	for _, row := range records[1:] {
		if len(row) == 0 {
			continue
		}

		var value decimal.Decimal
		if idxValue >= 0 && idxValue < len(row) {
			value = ParseAmount(row[idxValue])
		} else if idxValue < 0 {
			value = ParseAmount(row[len(row)-1])
		}

		symbol := ""
		if idxSymbol >= 0 && idxSymbol < len(row) {
			symbol = strings.TrimSpace(row[idxSymbol])
		}
		if symbol == "" {
			symbol = source
		}

		var qty decimal.NullDecimal
		if idxQty >= 0 && idxQty < len(row) {
			qty = decimal.NullDecimal{Decimal: ParseAmount(row[idxQty]), Valid: true}
		}

		positions = append(positions, models.Position{
			Symbol: symbol,
			Qty:    qty,
			Value:  value,
		})
	}
	return positions
}
