// Package recurring scans transaction history for bills and
// subscriptions worth tracking as recurring rules.
package recurring

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hferris/tally/internal/models"
)

// MaxSuggestions caps how many candidates Detect returns.
const MaxSuggestions = 20

var (
	trailingIDRe   = regexp.MustCompile(`\s*#?\d{4,}$`)
	trailingDateRe = regexp.MustCompile(`\s*\d{1,2}/\d{1,2}.*$`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// merchantKey collapses a transaction description into a canonical
// grouping key: trailing reference numbers and date fragments dropped,
// whitespace normalized, lowercased, truncated to 40 characters so
// minor suffix variations land in the same group.
func merchantKey(desc string) string {
	d := strings.TrimSpace(desc)
	d = trailingIDRe.ReplaceAllString(d, "")
	d = trailingDateRe.ReplaceAllString(d, "")
	d = strings.TrimSpace(whitespaceRe.ReplaceAllString(d, " "))
	if len(d) > 40 {
		d = d[:40]
	}
	return strings.ToLower(strings.TrimSpace(d))
}

// Detect clusters the transaction history by merchant key and proposes
// recurring rules for merchants that recur across months with stable
// amounts. Same-month repeats (split grocery trips, multiple same-day
// charges) never qualify: recurrence must cross a month boundary, and
// at least 60% of the amounts must sit within 20% of the median.
// Merchants already tracked in existing are skipped. Results are
// ordered by occurrence count then amount, capped at MaxSuggestions.
func Detect(transactions []models.Entry, existing []models.RecurringTransaction) []models.Suggestion {
	existingNames := make(map[string]bool, len(existing))
	for _, r := range existing {
		existingNames[strings.ToLower(strings.TrimSpace(r.Name))] = true
	}

	groups := make(map[string][]models.Entry)
	var keyOrder []string
	for _, t := range transactions {
		key := merchantKey(t.Note)
		if len(key) < 3 {
			continue
		}
		if _, seen := groups[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		groups[key] = append(groups[key], t)
	}

	var suggestions []models.Suggestion
	for _, key := range keyOrder {
		group := groups[key]
		if len(group) < 2 {
			continue
		}

		monthSet := make(map[string]bool)
		var amounts []decimal.Decimal
		var categories []string
		var names []string
		for _, t := range group {
			if len(t.Date) >= 7 {
				monthSet[t.Date[:7]] = true
			}
			if t.Amount.IsPositive() {
				amounts = append(amounts, t.Amount)
			}
			cat := t.Category
			if cat == "" {
				cat = "Other"
			}
			categories = append(categories, cat)
			names = append(names, t.Note)
		}
		if len(monthSet) < 2 || len(amounts) == 0 {
			continue
		}

		sort.Slice(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })
		median := amounts[len(amounts)/2]
		if !amountsConsistent(amounts, median) {
			continue
		}

		months := make([]string, 0, len(monthSet))
		for m := range monthSet {
			months = append(months, m)
		}
		sort.Strings(months)

		name := modalString(names, titleCase(key))
		if existingNames[strings.ToLower(strings.TrimSpace(name))] {
			continue
		}
		if alreadyTracked(existingNames, key) {
			continue
		}

		suggestions = append(suggestions, models.Suggestion{
			Name:        name,
			Amount:      median.Round(2),
			Category:    modalString(categories, "Other"),
			Frequency:   inferFrequency(months),
			Occurrences: len(group),
			Months:      months,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Occurrences != suggestions[j].Occurrences {
			return suggestions[i].Occurrences > suggestions[j].Occurrences
		}
		return suggestions[i].Amount.GreaterThan(suggestions[j].Amount)
	})
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}

// amountsConsistent requires at least 60% of the amounts to lie within
// 20% of the median. Merchants with wildly variable spend (grocery
// stores, big-box retail) fail here and are never suggested.
func amountsConsistent(amounts []decimal.Decimal, median decimal.Decimal) bool {
	med := median.InexactFloat64()
	if med < 0.01 {
		med = 0.01
	}
	consistent := 0
	for _, a := range amounts {
		diff := a.Sub(median).Abs().InexactFloat64()
		if diff/med < 0.20 {
			consistent++
		}
	}
	return float64(consistent) >= 0.6*float64(len(amounts))
}

// inferFrequency classifies the average gap between consecutive
// distinct months. A single month pair defaults to monthly.
func inferFrequency(months []string) string {
	if len(months) < 2 {
		return "monthly"
	}
	indexes := make([]int, 0, len(months))
	for _, m := range months {
		parts := strings.SplitN(m, "-", 2)
		if len(parts) != 2 {
			continue
		}
		indexes = append(indexes, atoi(parts[0])*12+atoi(parts[1]))
	}
	if len(indexes) < 2 {
		return "monthly"
	}
	total := 0
	for i := 1; i < len(indexes); i++ {
		total += indexes[i] - indexes[i-1]
	}
	avg := float64(total) / float64(len(indexes)-1)
	switch {
	case avg <= 0.3:
		return "weekly"
	case avg <= 1.2:
		return "monthly"
	case avg <= 3.5:
		return "quarterly"
	default:
		return "yearly"
	}
}

// alreadyTracked reports whether any existing rule name normalizes to
// the same merchant key.
func alreadyTracked(existingNames map[string]bool, key string) bool {
	for name := range existingNames {
		if merchantKey(name) == key {
			return true
		}
	}
	return false
}

// modalString returns the most frequent non-empty value, first-seen
// order breaking ties.
func modalString(values []string, fallback string) string {
	counts := make(map[string]int)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			counts[v]++
		}
	}
	best, bestCount := fallback, 0
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// titleCase capitalizes the first letter of each word; used only when
// a merchant group contains no usable original description.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
