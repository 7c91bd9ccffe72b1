// Package redact strips internal-only fields from customer-facing text.
// This is a pure transform, not a security boundary: every handler has
// full store access, redaction only shapes the outbound response.
package redact

import (
	"regexp"
	"strings"
)

var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s?\(?Transaction ID: \d+\)?`),
	regexp.MustCompile(`(?i)\(ID: \d+\)`),
	regexp.MustCompile(`(?i)Updated Cash Balance: \$-?[\d,\.]+`),
	regexp.MustCompile(`(?i)Current balance: \$-?[\d,\.]+`),
	regexp.MustCompile(`(?i)Remaining after purchase: \$-?[\d,\.]+`),
	regexp.MustCompile(`(?i)Safety buffer maintained: [\d\.]+%`),
	regexp.MustCompile(`(?i)profit margin[:\s]+[\d\.]+%?`),
	regexp.MustCompile(`(?i)internal cost[:\s]+\$?-?[\d,\.]+`),
	regexp.MustCompile(`(?i)ERROR:.*`),
	regexp.MustCompile(`(?i)FATAL:.*`),
	regexp.MustCompile(`(?i)SUPPLIER ORDER PLACED.*\n?`),
	regexp.MustCompile(`(?i)Expected Delivery: \d{4}-\d{2}-\d{2}`),
}

var blankRuns = regexp.MustCompile(`\n\s*\n\s*\n+`)

// Customer removes transaction ids, balances, cost basis, and raw error
// traces from text, then collapses the blank runs left behind.
func Customer(text string) string {
	filtered := text
	for _, pattern := range sensitivePatterns {
		filtered = pattern.ReplaceAllString(filtered, "")
	}
	filtered = blankRuns.ReplaceAllString(filtered, "\n\n")
	return strings.TrimSpace(filtered)
}
