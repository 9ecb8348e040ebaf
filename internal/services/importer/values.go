package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parseAmountStrict parses a money string, reporting whether the input
// was actually a number. Handles currency symbols, thousands
// separators, and accounting-style parentheses for negatives.
func parseAmountStrict(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

// ParseAmount is the lenient form of parseAmountStrict: unparseable
// input becomes zero. Callers that must distinguish "zero" from "not a
// number" (empty quantity cells, say) use the strict form.
func ParseAmount(s string) decimal.Decimal {
	d, ok := parseAmountStrict(s)
	if !ok {
		return decimal.Zero
	}
	return d
}

var (
	isoDateRe   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	slashDateRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)

	// "Jan 15, 2026", "December 3 2025", "Feb 3" (year supplied by caller)
	statementDateRe = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2}),?(?:\s+(\d{4}))?$`)

	// "01/15" - card statements that rely on the statement period for the year
	shortSlashRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})$`)
)

// ParseDate converts common bank date layouts (ISO, M/D/YYYY, M/D/YY,
// MM-DD-YYYY) to ISO YYYY-MM-DD. Returns "" when the input is not a
// date. Two-digit years below 50 are read as 20xx, the rest as 19xx.
func ParseDate(s string) string {
	s = strings.TrimSpace(s)
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return isoDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := slashDateRe.FindStringSubmatch(s); m != nil {
		month, day, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if len(m[3]) == 2 {
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
		}
		return isoDate(year, month, day)
	}
	return ""
}

// ParseStatementDate extends ParseDate with the month-name layouts PDF
// statements use ("Jan 15, 2026", "Dec 22 2025", "Feb 3"). When the
// year is omitted, defaultYear fills it in; a defaultYear of 0 means
// the current year.
func ParseStatementDate(s string, defaultYear int) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ",")
	s = strings.TrimSpace(s)
	if d := ParseDate(s); d != "" {
		return d
	}
	if m := shortSlashRe.FindStringSubmatch(s); m != nil {
		year := defaultYear
		if year == 0 {
			year = time.Now().Year()
		}
		return isoDate(year, atoi(m[1]), atoi(m[2]))
	}
	m := statementDateRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	month := monthNumber(m[1])
	if month == 0 {
		return ""
	}
	day := atoi(m[2])
	year := defaultYear
	if m[3] != "" {
		year = atoi(m[3])
	} else if year == 0 {
		year = time.Now().Year()
	}
	return isoDate(year, month, day)
}

var monthNames = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

func monthNumber(name string) int {
	name = strings.ToLower(name)
	if len(name) > 3 {
		name = name[:3]
	}
	return monthNames[name]
}

func isoDate(year, month, day int) string {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
