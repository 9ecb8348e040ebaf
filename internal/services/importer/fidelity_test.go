package importer

import (
	"strings"
	"testing"

	"github.com/hferris/tally/internal/models"
)

const fidelityCSV = `Account Name,Symbol,Description,Quantity,Last Price,Current Value,Type
Individual,AAPL,APPLE INC,10,$150.00,"$1,500.00",Cash
Individual,AAPL**,APPLE INC,5,$150.00,$750.00,Margin
Individual,SPAXX**,FIDELITY GOVERNMENT MONEY MARKET,,$1.00,$320.55,
Joint,VTI,VANGUARD TOTAL MARKET,3,$250.00,$750.00,Cash
Individual,Pending Activity,,,,$12.00,
Individual,**,,,,,
,Total,,,,"$3,332.55",
`

func TestParseFidelityCSV_AccountFilter(t *testing.T) {
	positions := ParseFidelityCSV(strings.NewReader(fidelityCSV), DefaultAccountFilter)

	if len(positions) != 3 {
		t.Fatalf("Expected 3 positions, got %d", len(positions))
	}
	for _, p := range positions {
		if p.Symbol == "VTI" {
			t.Error("Joint account row should have been filtered out")
		}
	}
}

func TestParseFidelityCSV_AllAccounts(t *testing.T) {
	positions := ParseFidelityCSV(strings.NewReader(fidelityCSV), "")

	if len(positions) != 4 {
		t.Fatalf("Expected 4 positions with no filter, got %d", len(positions))
	}
}

func TestParseFidelityCSV_LotsStaySeparate(t *testing.T) {
	positions := ParseFidelityCSV(strings.NewReader(fidelityCSV), DefaultAccountFilter)

	var apple []models.Position
	for _, p := range positions {
		if p.Symbol == "AAPL" {
			apple = append(apple, p)
		}
	}
	if len(apple) != 2 {
		t.Fatalf("Expected 2 AAPL lots, got %d", len(apple))
	}
	if !strings.Contains(apple[0].Description, "Cash") {
		t.Errorf("First lot should note Cash type, got %q", apple[0].Description)
	}
	if !strings.Contains(apple[1].Description, "Margin") {
		t.Errorf("Second lot should note Margin type, got %q", apple[1].Description)
	}
}

func TestParseFidelityCSV_SymbolCleanup(t *testing.T) {
	positions := ParseFidelityCSV(strings.NewReader(fidelityCSV), DefaultAccountFilter)

	for _, p := range positions {
		if strings.HasSuffix(p.Symbol, "*") {
			t.Errorf("Symbol %q should have margin suffix stripped", p.Symbol)
		}
	}
}

func TestParseFidelityCSV_ZeroQuantityBecomesNull(t *testing.T) {
	positions := ParseFidelityCSV(strings.NewReader(fidelityCSV), DefaultAccountFilter)

	for _, p := range positions {
		if p.Symbol == "SPAXX" {
			if p.Qty.Valid {
				t.Errorf("SPAXX quantity should be null, got %v", p.Qty.Decimal)
			}
			if p.Value.InexactFloat64() != 320.55 {
				t.Errorf("SPAXX value = %v, want 320.55", p.Value)
			}
			return
		}
	}
	t.Fatal("SPAXX position not found")
}

func TestParseFidelityCSV_ValueFallsBackToQtyTimesPrice(t *testing.T) {
	csv := "Symbol,Quantity,Last Price\nAAPL,10,150.00\n"
	positions := ParseFidelityCSV(strings.NewReader(csv), "")

	if len(positions) != 1 {
		t.Fatalf("Expected 1 position, got %d", len(positions))
	}
	if positions[0].Value.InexactFloat64() != 1500.0 {
		t.Errorf("Value = %v, want 1500 (qty * price)", positions[0].Value)
	}
}

func TestParseFidelityCSV_NoUsableColumns(t *testing.T) {
	csv := "Foo,Bar\n1,2\n"
	if positions := ParseFidelityCSV(strings.NewReader(csv), ""); positions != nil {
		t.Errorf("Expected nil for unrecognizable CSV, got %v", positions)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"AAPL", "AAPL"},
		{"spaxx**", "SPAXX"},
		{" GLD* ", "GLD"},
		{"**", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeSymbol(tt.input); got != tt.expected {
				t.Errorf("NormalizeSymbol(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAssetClassForTicker(t *testing.T) {
	tests := []struct {
		ticker   string
		expected models.AssetClass
	}{
		{"SPAXX", models.AssetClassCash},
		{"spaxx*", models.AssetClassCash},
		{"GLD", models.AssetClassGold},
		{"GLDM", models.AssetClassGold},
		{"IAU", models.AssetClassGold},
		{"SLV", models.AssetClassSilver},
		{"PSLV", models.AssetClassSilver},
		{"AAPL", models.AssetClassEquities},
		{"VTI**", models.AssetClassEquities},
	}

	for _, tt := range tests {
		t.Run(tt.ticker, func(t *testing.T) {
			if got := AssetClassForTicker(tt.ticker); got != tt.expected {
				t.Errorf("AssetClassForTicker(%q) = %s, want %s", tt.ticker, got, tt.expected)
			}
		})
	}
}
