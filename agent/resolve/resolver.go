// Package resolve maps free-text item descriptions to canonical
// inventory names using a tiered strategy: exact match, case-insensitive
// match, normalized edit-distance similarity, then substring containment.
package resolve

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

// SimilarityCutoff is the minimum normalized similarity accepted by the
// edit-distance tier.
const SimilarityCutoff = 0.60

// Canonical resolves freeText against the inventory name set. Returns
// contract.ErrItemNotFound when every tier fails. Ties on equal
// similarity scores are broken alphabetically so resolution is
// deterministic regardless of the order names are supplied in.
func Canonical(freeText string, names []string) (string, error) {
	requested := strings.TrimSpace(freeText)
	if requested == "" || len(names) == 0 {
		return "", contractx.ErrItemNotFound
	}

	// Tier 1: exact.
	for _, name := range names {
		if name == requested {
			return name, nil
		}
	}

	// Tier 2: case-insensitive.
	for _, name := range names {
		if strings.EqualFold(name, requested) {
			return name, nil
		}
	}

	// Tier 3: similarity against every name, alphabetical tie-break.
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	best := ""
	bestScore := 0.0
	for _, name := range sorted {
		score := similarity(requested, name)
		if score > bestScore {
			best = name
			bestScore = score
		}
	}
	if bestScore >= SimilarityCutoff {
		return best, nil
	}

	// Tier 4: substring containment in either direction.
	requestedLower := strings.ToLower(requested)
	for _, name := range sorted {
		nameLower := strings.ToLower(name)
		if strings.Contains(requestedLower, nameLower) || strings.Contains(nameLower, requestedLower) {
			return name, nil
		}
	}

	return "", contractx.ErrItemNotFound
}

func similarity(a, b string) float64 {
	al := strings.ToLower(a)
	bl := strings.ToLower(b)
	if al == bl {
		return 1
	}
	longest := len([]rune(al))
	if n := len([]rune(bl)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(al, bl)
	return 1 - float64(dist)/float64(longest)
}
