package importer

import "testing"

func TestParseCSV_SingleAmountColumn(t *testing.T) {
	csv := "Date,Description,Amount,Category\n" +
		"01/15/2026,TRADER JOE'S #123,50.00,Groceries\n" +
		"01/16/2026,EMPLOYER PAYROLL DEP,-2000.00,\n" +
		"01/17/2026,AUTOPAY PAYMENT THANK YOU,120.00,\n"

	r := NewStatementReader(nil, 0)
	txns := r.ParseCSV(csv)

	if len(txns) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(txns))
	}

	grocery := txns[0]
	if grocery.Date != "2026-01-15" {
		t.Errorf("Date = %q, want 2026-01-15", grocery.Date)
	}
	if !grocery.Amount.Equal(dec("50")) {
		t.Errorf("Amount = %v, want positive 50 for an expense", grocery.Amount)
	}
	if grocery.Category == "Income" {
		t.Errorf("Grocery charge categorized as Income")
	}
	if grocery.BankCategory != "Groceries" {
		t.Errorf("BankCategory = %q, want Groceries", grocery.BankCategory)
	}

	payroll := txns[1]
	if !payroll.Amount.Equal(dec("-2000")) {
		t.Errorf("Amount = %v, want -2000 for income", payroll.Amount)
	}
	if payroll.Category != "Income" {
		t.Errorf("Category = %q, want Income", payroll.Category)
	}
}

func TestParseCSV_DebitCreditColumns(t *testing.T) {
	csv := "Date,Description,Debit,Credit\n" +
		"2026-02-01,COMCAST CABLE,89.99,\n" +
		"2026-02-03,MERCHANT CREDIT RETURN,,25.00\n"

	r := NewStatementReader(nil, 0)
	txns := r.ParseCSV(csv)

	if len(txns) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(txns))
	}
	if !txns[0].Amount.Equal(dec("89.99")) {
		t.Errorf("Debit amount = %v, want 89.99", txns[0].Amount)
	}
	if !txns[1].Amount.Equal(dec("-25")) || txns[1].Category != "Income" {
		t.Errorf("Credit row = %v/%q, want -25/Income", txns[1].Amount, txns[1].Category)
	}
}

func TestParseCSV_MetadataAboveHeader(t *testing.T) {
	csv := "Account Number: XXXX1234\n" +
		"Statement Period: 01/01/2026 - 01/31/2026\n" +
		"\n" +
		"Posting Date,Payee,Amount\n" +
		"01/10/2026,SHELL OIL 5744,42.10\n"

	r := NewStatementReader(nil, 0)
	txns := r.ParseCSV(csv)

	if len(txns) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(txns))
	}
	if txns[0].Description != "SHELL OIL 5744" {
		t.Errorf("Description = %q", txns[0].Description)
	}
}

func TestParseCSV_SkipsJunkRows(t *testing.T) {
	csv := "Date,Description,Amount\n" +
		"Totals for period,,\n" +
		"01/05/2026,,50.00\n" +
		"01/06/2026,ZERO CHARGE MERCHANT,0.00\n" +
		"not a date,SOMETHING,10.00\n"

	r := NewStatementReader(nil, 0)
	if txns := r.ParseCSV(csv); len(txns) != 0 {
		t.Errorf("Expected 0 transactions, got %d: %v", len(txns), txns)
	}
}

func TestParseCSV_Empty(t *testing.T) {
	r := NewStatementReader(nil, 0)
	if txns := r.ParseCSV(""); txns != nil {
		t.Errorf("Expected nil for empty content, got %v", txns)
	}
	if txns := r.ParseCSV("no,header,here\n1,2,3\n"); txns != nil {
		t.Errorf("Expected nil without a date column, got %v", txns)
	}
}
