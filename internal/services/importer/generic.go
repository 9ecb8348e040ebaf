package importer

import (
	"regexp"
	"strings"

	"github.com/hferris/tally/internal/models"
)

// GenericStatementParser is the fallback for PDF statements no issuer
// parser claims. A transaction line starts with a date-shaped token;
// the last dollar token on the line is the amount (layouts commonly end
// with amount then running balance is on its own column in fixed-width
// text, so the final token on the transaction line is the charge), and
// everything before it is the description. A negative raw amount also
// signals income in addition to the keyword heuristics.
type GenericStatementParser struct {
	Categorizer *Categorizer
	DefaultYear int
}

var (
	genericDateRe   = regexp.MustCompile(`^(\d{1,2}[/\-]\d{1,2}(?:[/\-]\d{2,4})?)`)
	genericAmountRe = regexp.MustCompile(`-?\$?[\d,]+\.\d{2}`)
)

func (p *GenericStatementParser) Name() string { return "generic" }

func (p *GenericStatementParser) Detect(string) bool { return true }

func (p *GenericStatementParser) Parse(text string) []models.Transaction {
	var transactions []models.Transaction
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		m := genericDateRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		date := ParseStatementDate(m[1], p.DefaultYear)
		if date == "" {
			continue
		}

		rest := strings.TrimSpace(line[len(m[0]):])
		amounts := genericAmountRe.FindAllString(rest, -1)
		if len(amounts) == 0 {
			continue
		}
		last := amounts[len(amounts)-1]
		amount := ParseAmount(last)
		if amount.IsZero() {
			continue
		}

		lastIdx := strings.LastIndex(rest, last)
		desc := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest[:lastIdx]), "-"))
		if desc == "" {
			continue
		}

		descLower := strings.ToLower(desc)
		if containsAny(descLower, statementSkipKeywords) {
			continue
		}

		if len(desc) > 60 {
			desc = strings.TrimSpace(desc[:60])
		}
		txn := models.Transaction{Date: date, Description: desc}
		if amount.IsNegative() || containsAny(descLower, incomeKeywords) {
			txn.Type = models.TransactionIncome
			txn.Amount = amount.Abs().Round(2).Neg()
			txn.Category = "Income"
		} else {
			txn.Type = models.TransactionExpense
			txn.Amount = amount.Abs().Round(2)
			txn.Category = p.Categorizer.Categorize(desc)
		}
		transactions = append(transactions, txn)
	}
	return transactions
}
