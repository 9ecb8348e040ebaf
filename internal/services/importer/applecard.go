package importer

import (
	"regexp"
	"strings"

	"github.com/hferris/tally/internal/models"
)

// AppleCardParser handles Apple Card statement PDFs. Each transaction
// is a single line: date, description (with address cruft appended),
// a Daily Cash percentage and dollar amount, then the charge amount.
//
//	01/01/2026 OPENAI *CHATGPT 3rd Street SAN FRANCISCO 94158 CA USA 1% $0.20 $20.00
type AppleCardParser struct {
	Categorizer *Categorizer
}

var (
	appleLineRe    = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+(.+?)\s+\d+%\s+\$[\d,.]+\s+\$([\d,.]+)$`)
	appleZipRe     = regexp.MustCompile(`\s+\d{4,5}\s+[A-Z]{2}\s+USA$`)
	appleAddressRe = regexp.MustCompile(`\s+\d+\s+\w+.*$`)
)

var appleSkipKeywords = []string{
	"ach deposit", "payment", "autopay", "refund", "credit adjustment",
}

func (p *AppleCardParser) Name() string { return "apple_card" }

func (p *AppleCardParser) Detect(textLower string) bool {
	return strings.Contains(textLower, "apple card") || strings.Contains(textLower, "daily cash")
}

func (p *AppleCardParser) Parse(text string) []models.Transaction {
	var transactions []models.Transaction
	for _, line := range strings.Split(text, "\n") {
		m := appleLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		date := ParseStatementDate(m[1], 0)
		if date == "" {
			continue
		}
		desc := strings.TrimSpace(m[2])
		amount := ParseAmount(m[3])
		if !amount.IsPositive() {
			continue
		}

		// Strip trailing address/ZIP/state/country fragments and keep
		// the description readable.
		clean := appleZipRe.ReplaceAllString(desc, "")
		if len(clean) > 60 {
			clean = appleAddressRe.ReplaceAllString(clean, "")
		}
		if len(clean) > 60 {
			clean = strings.TrimSpace(clean[:60])
		}

		if containsAny(strings.ToLower(desc), appleSkipKeywords) {
			continue
		}

		transactions = append(transactions, models.Transaction{
			Date:        date,
			Description: clean,
			Amount:      amount.Round(2),
			Category:    p.Categorizer.Categorize(desc),
			Type:        models.TransactionExpense,
		})
	}
	return transactions
}
