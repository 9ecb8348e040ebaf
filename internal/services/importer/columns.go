package importer

import "strings"

// NormalizeHeader canonicalizes a CSV header cell: trimmed, lowercased,
// spaces and hyphens collapsed to underscores. "Last Price" and
// "last-price" both come out as "last_price".
func NormalizeHeader(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(cell)
}

// ResolveColumn finds the index of the header cell matching one of the
// candidate names. An exact match on the normalized cell wins over any
// fuzzy match, no matter where either sits in the row; otherwise the
// leftmost cell with a substring match (in either direction) is used.
// Returns -1 when nothing matches.
func ResolveColumn(header []string, candidates ...string) int {
	firstFuzzy := -1
	for i, cell := range header {
		norm := NormalizeHeader(cell)
		if norm == "" {
			continue
		}
		for _, cand := range candidates {
			if norm == cand {
				return i
			}
			if firstFuzzy < 0 && (strings.Contains(norm, cand) || strings.Contains(cand, norm)) {
				firstFuzzy = i
				break
			}
		}
	}
	return firstFuzzy
}
