package importer

import (
	"encoding/csv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hferris/tally/internal/models"
)

// ParseCSV parses a bank or credit-card statement CSV, auto-detecting
// the column layout. Handles single-amount-column formats (Chase, Citi,
// Discover style) and split debit/credit-column formats, and tolerates
// issuers that prepend metadata lines before the real header.
func (s *StatementReader) ParseCSV(content string) []models.Transaction {
	content = strings.TrimSpace(strings.TrimPrefix(strings.ToValidUTF8(content, "�"), "\uFEFF"))
	if content == "" {
		return nil
	}

	// Some banks put account metadata above the header; scan the first
	// 10 lines for a row that looks like one.
	lines := strings.Split(content, "\n")
	headerIdx := 0
	for i, line := range lines {
		if i >= 10 {
			break
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "date") &&
			(strings.Contains(lower, "description") || strings.Contains(lower, "memo") ||
				strings.Contains(lower, "payee") || strings.Contains(lower, "merchant") ||
				strings.Contains(lower, "amount")) {
			headerIdx = i
			break
		}
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[headerIdx:], "\n")))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		return nil
	}

	header := records[0]
	idxDate := ResolveColumn(header, "date", "transaction_date", "posting_date", "trans_date")
	idxDesc := ResolveColumn(header, "description", "memo", "payee", "merchant", "name", "merchant_name", "original_description")
	idxAmount := ResolveColumn(header, "amount", "transaction_amount")
	idxDebit := ResolveColumn(header, "debit", "withdrawals", "charges")
	idxCredit := ResolveColumn(header, "credit", "deposits", "payments")
	idxCategory := ResolveColumn(header, "category", "type")

	if idxDate < 0 {
		return nil
	}
	if idxDesc < 0 {
		// Best guess: the column next to the date.
		idxDesc = idxDate + 1
		if idxDesc > len(header)-1 {
			idxDesc = len(header) - 1
		}
	}

	var transactions []models.Transaction
	for _, row := range records[1:] {
		if len(row) <= idxDate {
			continue
		}
		dateRaw := strings.TrimSpace(row[idxDate])
		if dateRaw == "" || !strings.ContainsAny(dateRaw, "0123456789") {
			continue
		}
		date := ParseDate(dateRaw)
		if date == "" {
			continue
		}

		desc := ""
		if idxDesc >= 0 && idxDesc < len(row) {
			desc = strings.TrimSpace(row[idxDesc])
		}
		if desc == "" {
			continue
		}

		// Amount resolution priority: signed amount column, then debit
		// column (unsigned expense), then credit column as income.
		amount := decimal.Zero
		isCredit := false
		if idxAmount >= 0 && idxAmount < len(row) {
			amount = ParseAmount(row[idxAmount])
			if amount.IsNegative() {
				isCredit = true
				amount = amount.Abs()
			}
		} else if idxDebit >= 0 && idxDebit < len(row) {
			amount = ParseAmount(row[idxDebit])
		}
		if amount.IsZero() && idxCredit >= 0 && idxCredit < len(row) {
			if credit := ParseAmount(row[idxCredit]); credit.IsPositive() {
				amount = credit
				isCredit = true
			}
		}
		if amount.IsZero() {
			continue
		}

		descLower := strings.ToLower(desc)
		if containsAny(descLower, statementSkipKeywords) {
			continue
		}

		bankCat := ""
		if idxCategory >= 0 && idxCategory < len(row) {
			bankCat = strings.TrimSpace(row[idxCategory])
		}

		txn := models.Transaction{
			Date:         date,
			Description:  desc,
			BankCategory: bankCat,
		}
		if isCredit || containsAny(descLower, incomeKeywords) {
			txn.Type = models.TransactionIncome
			txn.Amount = amount.Round(2).Neg()
			txn.Category = "Income"
		} else {
			txn.Type = models.TransactionExpense
			txn.Amount = amount.Round(2)
			txn.Category = s.categorizer.Categorize(desc)
		}
		transactions = append(transactions, txn)
	}
	return transactions
}
