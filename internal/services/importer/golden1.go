package importer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hferris/tally/internal/models"
)

// Golden1Parser handles Golden 1 Credit Union checking statements. The
// grammar is multi-line: a line opening with MM/DD/YYYY (optionally a
// second effective date) starts a transaction, then up to six following
// lines contribute description fragments and numeric tokens. The first
// numeric token found is the transaction amount - the statement lists
// the withdrawal/deposit column before the running balance.
//
// This is the only source without a reliable sign or column, so income
// vs expense is decided by keyword heuristics on the full description.
// Credit-card payment lines are excluded outright: that spending is
// already captured on the card's own statement.
type Golden1Parser struct {
	Categorizer *Categorizer
}

var (
	golden1DateRe   = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})`)
	golden1AmountRe = regexp.MustCompile(`-?([\d,]+\.\d{2})`)
	golden1CodesRe  = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
)

var golden1SkipKeywords = []string{
	// Not actual transactions
	"beginning balance", "ending balance", "account summary",
	// Credit card payments duplicate spending on the card statements
	"applecard", "apple card", "gsbank", "coinbase card",
	"crcardpmt", "credit card",
}

var golden1IncomeKeywords = []string{
	"direct deposit", "payroll", "salary", "wages",
	"checking deposit", "mobile deposit", "atm deposit", "cash deposit",
	"ach deposit", "ach credit", "ach p2p credit",
	"zelle dep", "zelle credit", "zelle from", "zelle money received",
	"venmo cashout", "venmo credit",
	"interest earned", "interest paid", "dividend",
	"refund", "credit adjustment", "merchant credit",
	"from ach", "nowrtp", "moneyline", "ach p2p",
	"tax refund", "reimbursement",
}

var golden1SectionKeywords = []string{
	"account activity", "account number", "account summary", "page ",
}

func (p *Golden1Parser) Name() string { return "golden1" }

func (p *Golden1Parser) Detect(textLower string) bool {
	return strings.Contains(textLower, "golden 1") || strings.Contains(textLower, "golden1")
}

func (p *Golden1Parser) Parse(text string) []models.Transaction {
	var transactions []models.Transaction
	lines := strings.Split(text, "\n")

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		dm := golden1DateRe.FindStringSubmatch(line)
		if dm == nil {
			i++
			continue
		}
		date := ParseStatementDate(dm[1], 0)
		if date == "" {
			i++
			continue
		}

		rest := strings.TrimSpace(line[len(dm[0]):])
		// A second date is the effective date; drop it.
		if dm2 := golden1DateRe.FindStringSubmatch(rest); dm2 != nil {
			rest = strings.TrimSpace(rest[len(dm2[0]):])
		}

		var descParts []string
		if rest != "" {
			descParts = append(descParts, rest)
		}
		amounts := amountTokens(rest)

		j := i + 1
		for j < len(lines) {
			next := strings.TrimSpace(lines[j])
			if golden1DateRe.MatchString(next) {
				break // new transaction
			}
			if containsAny(strings.ToLower(next), golden1SectionKeywords) {
				j++
				continue
			}
			if tokens := amountTokens(next); len(tokens) > 0 {
				amounts = append(amounts, tokens...)
				// Keep the textual part of mixed lines, drop pure numbers.
				textPart := strings.TrimSpace(golden1AmountRe.ReplaceAllString(next, ""))
				if len(textPart) > 3 {
					descParts = append(descParts, textPart)
				}
			} else if next != "" && !strings.HasPrefix(next, "Total") {
				descParts = append(descParts, next)
			}
			j++
			if j-i > 6 {
				break
			}
		}

		desc := multiSpaceRe.ReplaceAllString(strings.TrimSpace(strings.Join(descParts, " ")), " ")

		amount := decimal.Zero
		if len(amounts) > 0 {
			amount = ParseAmount(amounts[0])
		}
		if desc == "" || amount.IsZero() {
			i = j
			continue
		}

		clean := golden1CodesRe.ReplaceAllString(desc, "")
		if len(clean) > 60 {
			clean = strings.TrimSpace(clean[:60])
		}

		descLower := strings.ToLower(desc)
		if containsAny(descLower, golden1SkipKeywords) {
			i = j
			continue
		}

		txn := models.Transaction{Date: date, Description: clean}
		if containsAny(descLower, golden1IncomeKeywords) {
			txn.Type = models.TransactionIncome
			txn.Amount = amount.Round(2).Neg()
			txn.Category = "Income"
		} else {
			txn.Type = models.TransactionExpense
			txn.Amount = amount.Round(2)
			txn.Category = p.Categorizer.Categorize(desc)
		}
		transactions = append(transactions, txn)
		i = j
	}
	return transactions
}

// amountTokens collects ####.##-shaped magnitudes from a line. The sign
// is deliberately discarded: the statement's columns already determine
// direction and stray minus signs are layout artifacts.
func amountTokens(line string) []string {
	var tokens []string
	for _, m := range golden1AmountRe.FindAllStringSubmatch(line, -1) {
		tokens = append(tokens, m[1])
	}
	return tokens
}
