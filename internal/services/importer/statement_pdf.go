package importer

import (
	"strings"

	"github.com/hferris/tally/internal/models"
)

// StatementParser is one issuer-specific line grammar over extracted
// PDF text. Parsers are tried in order; the first whose Detect matches
// the text handles the whole statement.
type StatementParser interface {
	// Name identifies the parser in messages and logs.
	Name() string
	// Detect sniffs the lowercased text blob for issuer markers.
	Detect(textLower string) bool
	// Parse extracts normalized transactions from the raw text.
	Parse(text string) []models.Transaction
}

// ParsePDFText dispatches extracted statement text to the matching
// issuer parser, falling through to the generic line parser. Empty
// text yields an empty slice.
func (s *StatementReader) ParsePDFText(text string) []models.Transaction {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parsers := []StatementParser{
		&AppleCardParser{Categorizer: s.categorizer},
		&CoinbaseCardParser{Categorizer: s.categorizer, DefaultYear: s.defaultYear},
		&Golden1Parser{Categorizer: s.categorizer},
		&GenericStatementParser{Categorizer: s.categorizer, DefaultYear: s.defaultYear},
	}
	textLower := strings.ToLower(text)
	for _, p := range parsers {
		if p.Detect(textLower) {
			return p.Parse(text)
		}
	}
	return nil
}
