// Package parse extracts quantity/item pairs from free-text requests,
// including bulleted multi-item lists.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

var (
	bulletPattern = regexp.MustCompile(`(?im)[-•*]\s*(\d+)\s+(?:sheets?|units?|pieces?)\s+(?:of\s+)?(.+?)(?:\n|$|,)`)
	inlinePattern = regexp.MustCompile(`(?im)(\d+)\s+(?:sheets?|units?|pieces?)\s+(?:of\s+)?(.+?)(?:\n|$|,)`)

	// Loose fallback for phrasing like "500 wedding invitations" that
	// names no unit word. Only consulted when the unit patterns match
	// nothing.
	loosePattern = regexp.MustCompile(`(?im)(\d+)\s+([a-z].+?)(?:\n|$|,|\?|\.)`)

	parenthetical = regexp.MustCompile(`\s*\([^)]*\)`)
	colorWords    = regexp.MustCompile(`(?i)\s+(white|black|colored|assorted\s+colors)`)
)

// LineItems parses a request into quantity/description pairs in order
// of appearance.
func LineItems(text string) []contractx.LineItem {
	items := collect(text, bulletPattern)
	items = append(items, collect(text, inlinePattern)...)
	items = dedupe(items)

	if len(items) == 0 {
		items = dedupe(collect(text, loosePattern))
	}
	return items
}

func collect(text string, pattern *regexp.Regexp) []contractx.LineItem {
	var items []contractx.LineItem
	for _, match := range pattern.FindAllStringSubmatch(text, -1) {
		quantity, err := strconv.Atoi(match[1])
		if err != nil || quantity <= 0 {
			continue
		}
		desc := cleanDescription(match[2])
		if desc == "" {
			continue
		}
		items = append(items, contractx.LineItem{
			Quantity:    quantity,
			Description: desc,
		})
	}
	return items
}

func cleanDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	desc = strings.TrimRight(desc, ".?!")
	desc = parenthetical.ReplaceAllString(desc, "")
	desc = colorWords.ReplaceAllString(desc, "")
	return strings.TrimSpace(desc)
}

// The bullet and inline patterns overlap on bulleted lines; keep the
// first occurrence of each description.
func dedupe(items []contractx.LineItem) []contractx.LineItem {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, it := range items {
		key := strings.ToLower(it.Description)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}
