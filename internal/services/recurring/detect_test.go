package recurring

import (
	"fmt"
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

func entry(date, note, amount, category string) models.Entry {
	return models.Entry{ID: uuid.New(), Date: date, Note: note, Amount: dec(amount), Category: category}
}

func TestMerchantKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NETFLIX.COM", "netflix.com"},
		{"NETFLIX.COM  ", "netflix.com"},
		{"TRADER JOE'S #1234", "trader joe's"},
		{"PAYPAL INST XFER 12/15 REF", "paypal inst xfer"},
		{"VERIZON WRLS 987654321", "verizon wrls"},
		{"A VERY LONG MERCHANT NAME THAT JUST KEEPS GOING AND GOING", "a very long merchant name that just keep"},
	}
	for _, tt := range tests {
		if got := merchantKey(tt.input); got != tt.expected {
			t.Errorf("merchantKey(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDetect_MonthlySubscription(t *testing.T) {
	txns := []models.Entry{
		entry("2026-01-15", "NETFLIX.COM", "15.99", "Utilities"),
		entry("2026-02-15", "NETFLIX.COM", "15.99", "Utilities"),
		entry("2026-03-15", "NETFLIX.COM", "15.99", "Utilities"),
	}

	suggestions := Detect(txns, nil)

	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d: %v", len(suggestions), suggestions)
	}
	s := suggestions[0]
	if s.Name != "NETFLIX.COM" {
		t.Errorf("Name = %q", s.Name)
	}
	if !s.Amount.Equal(dec("15.99")) {
		t.Errorf("Amount = %v, want median 15.99", s.Amount)
	}
	if s.Frequency != "monthly" {
		t.Errorf("Frequency = %q, want monthly", s.Frequency)
	}
	if s.Occurrences != 3 {
		t.Errorf("Occurrences = %d, want 3", s.Occurrences)
	}
	if len(s.Months) != 3 || s.Months[0] != "2026-01" {
		t.Errorf("Months = %v", s.Months)
	}
}

func TestDetect_SameMonthRepeatsNeverQualify(t *testing.T) {
	txns := []models.Entry{
		entry("2026-01-03", "CORNER DELI", "12.50", "Food"),
		entry("2026-01-10", "CORNER DELI", "12.50", "Food"),
		entry("2026-01-24", "CORNER DELI", "12.50", "Food"),
	}
	if suggestions := Detect(txns, nil); len(suggestions) != 0 {
		t.Errorf("Same-month repeats should not qualify, got %v", suggestions)
	}
}

func TestDetect_VariableAmountsRejected(t *testing.T) {
	txns := []models.Entry{
		entry("2026-01-05", "COSTCO WHOLESALE", "45.00", "Food"),
		entry("2026-02-09", "COSTCO WHOLESALE", "210.00", "Food"),
		entry("2026-03-02", "COSTCO WHOLESALE", "98.00", "Food"),
	}
	if suggestions := Detect(txns, nil); len(suggestions) != 0 {
		t.Errorf("Variable spend should not qualify, got %v", suggestions)
	}
}

func TestDetect_ExistingRulesExcluded(t *testing.T) {
	txns := []models.Entry{
		entry("2026-01-15", "NETFLIX.COM", "15.99", "Utilities"),
		entry("2026-02-15", "NETFLIX.COM", "15.99", "Utilities"),
	}
	existing := []models.RecurringTransaction{
		{Name: "netflix.com", Amount: dec("15.99"), Category: "Utilities", Frequency: "monthly"},
	}
	if suggestions := Detect(txns, existing); len(suggestions) != 0 {
		t.Errorf("Tracked merchants should be skipped, got %v", suggestions)
	}
}

func TestDetect_IncomeOnlyGroupsIgnored(t *testing.T) {
	txns := []models.Entry{
		entry("2026-01-01", "EMPLOYER PAYROLL", "-2000", "Income"),
		entry("2026-02-01", "EMPLOYER PAYROLL", "-2000", "Income"),
	}
	if suggestions := Detect(txns, nil); len(suggestions) != 0 {
		t.Errorf("Groups with no positive amounts should be skipped, got %v", suggestions)
	}
}

func TestDetect_SortedByOccurrencesThenAmount(t *testing.T) {
	txns := []models.Entry{
		entry("2026-01-02", "SPOTIFY", "10.99", "Utilities"),
		entry("2026-02-02", "SPOTIFY", "10.99", "Utilities"),
		entry("2026-01-15", "NETFLIX.COM", "15.99", "Utilities"),
		entry("2026-02-15", "NETFLIX.COM", "15.99", "Utilities"),
		entry("2026-03-15", "NETFLIX.COM", "15.99", "Utilities"),
	}

	suggestions := Detect(txns, nil)

	if len(suggestions) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Name != "NETFLIX.COM" || suggestions[1].Name != "SPOTIFY" {
		t.Errorf("Order = %q, %q; want occurrence-count order", suggestions[0].Name, suggestions[1].Name)
	}
}

func TestDetect_CapsSuggestions(t *testing.T) {
	var txns []models.Entry
	for i := 0; i < 30; i++ {
		note := fmt.Sprintf("MERCHANT NUMBER %c%c", 'A'+i/5, 'A'+i%5)
		txns = append(txns,
			entry("2026-01-10", note, "9.99", "Other"),
			entry("2026-02-10", note, "9.99", "Other"),
		)
	}

	if suggestions := Detect(txns, nil); len(suggestions) != MaxSuggestions {
		t.Errorf("Expected cap of %d, got %d", MaxSuggestions, len(suggestions))
	}
}

func TestInferFrequency(t *testing.T) {
	tests := []struct {
		name     string
		months   []string
		expected string
	}{
		{"consecutive months", []string{"2026-01", "2026-02", "2026-03"}, "monthly"},
		{"quarter gaps", []string{"2026-01", "2026-04", "2026-07"}, "quarterly"},
		{"year gap", []string{"2025-01", "2026-01"}, "yearly"},
		{"single month", []string{"2026-01"}, "monthly"},
		{"year boundary", []string{"2025-12", "2026-01"}, "monthly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferFrequency(tt.months); got != tt.expected {
				t.Errorf("inferFrequency(%v) = %q, want %q", tt.months, got, tt.expected)
			}
		})
	}
}
