package importer

import (
	"regexp"
	"strings"

	"github.com/hferris/tally/internal/models"
)

// CoinbaseCardParser handles Coinbase One Card statement PDFs. The
// transaction section is bounded by headings ("Transactions" opens it;
// totals, "Payments and credits", "Fees", "Interest" close it), and
// each entry is a month-name date, description, and dollar amount with
// up to two continuation lines folded into the description.
type CoinbaseCardParser struct {
	Categorizer *Categorizer
	DefaultYear int
}

var (
	coinbaseEntryRe = regexp.MustCompile(
		`^((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2},?\s*\d{4})\s+(.+?)\s+(-?\$[\d,]+\.\d{2})$`)
	coinbaseDateOnlyRe = regexp.MustCompile(
		`^((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2},?\s*\d{4})\s+(.+)$`)
	coinbaseRefRe = regexp.MustCompile(`\s+\d{5}\s+\d{3}\s+\d{3}$`)
	multiSpaceRe  = regexp.MustCompile(`\s{2,}`)
)

var (
	coinbaseSkipKeywords   = []string{"ach payment", "autopay", "refund", "credit adjustment"}
	coinbaseFooterKeywords = []string{"page ", "coinbase one card", "date description"}
	coinbaseContKeywords   = []string{"page ", "coinbase", "total"}
)

func (p *CoinbaseCardParser) Name() string { return "coinbase_card" }

func (p *CoinbaseCardParser) Detect(textLower string) bool {
	return strings.Contains(textLower, "coinbase") &&
		(strings.Contains(textLower, "coinbase one card") || strings.Contains(textLower, "cardless"))
}

func (p *CoinbaseCardParser) Parse(text string) []models.Transaction {
	var transactions []models.Transaction
	lines := strings.Split(text, "\n")
	inTransactions := false

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		// Section boundaries.
		switch {
		case strings.Contains(line, "Transactions") && !strings.Contains(line, "Date"):
			inTransactions = true
			i++
			continue
		case strings.HasPrefix(line, "Total") &&
			(strings.Contains(strings.ToLower(line), "period") || strings.Contains(strings.ToLower(line), "charges")):
			inTransactions = false
			i++
			continue
		case strings.Contains(line, "Payments and credits"),
			strings.HasPrefix(line, "Fees"),
			strings.HasPrefix(line, "Interest"):
			inTransactions = false
			i++
			continue
		}
		if !inTransactions {
			i++
			continue
		}
		if containsAny(strings.ToLower(line), coinbaseFooterKeywords) {
			i++
			continue
		}

		m := coinbaseEntryRe.FindStringSubmatch(line)
		if m == nil {
			i++
			continue
		}
		date := ParseStatementDate(m[1], p.DefaultYear)
		desc := strings.TrimSpace(m[2])
		amount := ParseAmount(m[3]).Abs()

		// Fold in up to two continuation lines unless they start a new
		// dated entry or are page/footer noise.
		j := i + 1
		for j < len(lines) && j < i+3 {
			next := strings.TrimSpace(lines[j])
			if next == "" || coinbaseDateOnlyRe.MatchString(next) || coinbaseEntryRe.MatchString(next) {
				break
			}
			if containsAny(strings.ToLower(next), coinbaseContKeywords) {
				j++
				continue
			}
			desc += " " + next
			j++
		}

		if date != "" && amount.IsPositive() {
			clean := coinbaseRefRe.ReplaceAllString(desc, "")
			clean = strings.TrimSpace(multiSpaceRe.ReplaceAllString(clean, " "))
			if len(clean) > 60 {
				clean = strings.TrimSpace(clean[:60])
			}
			if !containsAny(strings.ToLower(desc), coinbaseSkipKeywords) {
				transactions = append(transactions, models.Transaction{
					Date:        date,
					Description: clean,
					Amount:      amount.Round(2),
					Category:    p.Categorizer.Categorize(desc),
					Type:        models.TransactionExpense,
				})
			}
		}
		i = j
	}
	return transactions
}
