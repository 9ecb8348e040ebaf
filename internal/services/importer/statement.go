package importer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hferris/tally/internal/models"
)

// statementSkipKeywords marks lines that are card-account noise rather
// than real transactions. Shared by the CSV and generic PDF parsers.
var statementSkipKeywords = []string{
	"payment thank you", "autopay", "online payment",
	"cashback", "rewards redemption", "balance transfer",
}

// incomeKeywords signal incoming money when a statement format carries
// no reliable sign or credit column.
var incomeKeywords = []string{
	"direct deposit", "payroll", "salary", "wages",
	"deposit", "refund", "credit adjustment", "merchant credit",
	"interest earned", "dividend", "tax refund", "reimbursement",
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// StatementReader parses one statement file format.
type StatementReader struct {
	categorizer *Categorizer
	defaultYear int
}

// NewStatementReader builds a reader around the given categorizer
// (nil for the default rules). defaultYear fills in statement dates
// that omit the year; 0 means the current year.
func NewStatementReader(categorizer *Categorizer, defaultYear int) *StatementReader {
	if categorizer == nil {
		categorizer = NewCategorizer(nil, nil)
	}
	return &StatementReader{categorizer: categorizer, defaultYear: defaultYear}
}

// ParseFile parses a bank or credit-card statement, dispatching on the
// file extension: .pdf goes through text extraction and the issuer
// parsers, anything else is treated as CSV. An unrecognizable file
// yields an empty slice, not an error; only unreadable files fail.
func (s *StatementReader) ParseFile(path string) ([]models.Transaction, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text := ExtractPDFText(path)
		return s.ParsePDFText(text), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.ParseCSV(string(data)), nil
}
