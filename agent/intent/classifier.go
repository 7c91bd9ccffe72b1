// Package intent classifies free-text customer requests by ordered
// keyword membership. First matching rule wins; the phrase sets overlap,
// so rule order is load-bearing. A request matching no set falls through
// to IntentGeneral even when it is a valid business request.
package intent

import (
	"strings"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

type rule struct {
	intent  contractx.Intent
	phrases []string
}

// Evaluated in order. Explicit purchase verbs outrank request/need
// phrasing, which outranks stock-presence phrasing.
var rules = []rule{
	{
		intent: contractx.IntentOrderPlacement,
		phrases: []string{
			"buy", "purchase", "i'll take", "i will take",
			"confirm", "proceed", "complete order", "process my purchase",
		},
	},
	{
		intent: contractx.IntentQuoteRequest,
		phrases: []string{
			"quote", "how much", "price", "cost", "estimate",
			"pricing", "how expensive", "would like to request",
			"would like to place an order", "would like to order",
			"i need", "we need", "request for", "can you provide",
		},
	},
	{
		intent: contractx.IntentInventoryQuery,
		phrases: []string{
			"do you have", "in stock", "available", "stock level",
			"what items", "list", "inventory", "check stock",
			"restock", "reorder", "supplier order",
			"financial", "report", "balance",
		},
	},
}

func Classify(text string) contractx.Intent {
	lowered := strings.ToLower(text)
	for _, r := range rules {
		for _, phrase := range r.phrases {
			if strings.Contains(lowered, phrase) {
				return r.intent
			}
		}
	}
	return contractx.IntentGeneral
}
