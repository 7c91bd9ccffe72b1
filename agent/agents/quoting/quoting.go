// Package quoting prices multi-line quote requests with bulk discounts
// and looks up comparable past orders for context.
package quoting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
	parsex "github.com/kchia/paperflow-ai/agent/parse"
	"github.com/kchia/paperflow-ai/agent/pricing"
	resolvex "github.com/kchia/paperflow-ai/agent/resolve"
)

const quoteValidityDays = 30

var percentScale = decimal.NewFromInt(100)

// Keywords that link a request to past quote records.
var historyTerms = []string{
	"wedding", "invitation", "school", "education", "marketing",
	"brochure", "office", "event", "conference", "restaurant",
}

type Handler struct {
	inv     contractx.Inventory
	history contractx.QuoteHistory
}

var _ contractx.Handler = (*Handler)(nil)

func New(inv contractx.Inventory, history contractx.QuoteHistory) (*Handler, error) {
	if inv == nil {
		return nil, errors.New("inventory store is required")
	}
	return &Handler{inv: inv, history: history}, nil
}

// Handle parses the request into line items, prices each against the
// catalog, and assembles an itemized quote. Unrecognized items are
// reported per line rather than failing the whole quote.
func (h *Handler) Handle(ctx context.Context, req contractx.HandlerRequest) (contractx.HandlerResult, error) {
	lines := parsex.LineItems(req.Text)
	if len(lines) == 0 {
		return contractx.HandlerResult{
			Response: "To prepare a quote, please list the items and quantities you need, e.g. \"500 sheets of A4 paper\".",
		}, nil
	}

	names, err := h.inv.Names(ctx)
	if err != nil {
		return contractx.HandlerResult{}, err
	}

	var (
		quotes     []contractx.PriceQuote
		lineBlocks []string
		unmatched  []string
	)
	for _, line := range lines {
		canonical, err := resolvex.Canonical(line.Description, names)
		if err != nil {
			unmatched = append(unmatched, line.Description)
			continue
		}
		item, err := h.inv.Item(ctx, canonical)
		if err != nil {
			return contractx.HandlerResult{}, err
		}
		q := pricing.Quote(item, line.Quantity)
		quotes = append(quotes, q)
		lineBlocks = append(lineBlocks, formatLine(q))
	}

	if len(quotes) == 0 {
		return contractx.HandlerResult{
			Response: fmt.Sprintf("We could not match any requested items to our catalog: %s. Could you clarify the item names?",
				strings.Join(unmatched, ", ")),
		}, nil
	}

	var out []string
	out = append(out, fmt.Sprintf("QUOTE (date: %s)", req.AsOf.Format("2006-01-02")))
	out = append(out, lineBlocks...)
	out = append(out, fmt.Sprintf("TOTAL: $%s", pricing.Total(quotes).StringFixed(2)))
	if len(unmatched) > 0 {
		out = append(out, fmt.Sprintf("Not in our catalog: %s", strings.Join(unmatched, ", ")))
	}
	out = append(out, fmt.Sprintf("This quote is valid for %d days.", quoteValidityDays))

	if note := h.similarOrderNote(ctx, req.Text); note != "" {
		out = append(out, "", note)
	}

	return contractx.HandlerResult{Response: strings.Join(out, "\n")}, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func formatLine(q contractx.PriceQuote) string {
	line := fmt.Sprintf("- %s: %d units x $%s", q.ItemName, q.RequestedUnits, q.UnitPrice.StringFixed(2))
	if q.DiscountPct.IsPositive() {
		pct := q.DiscountPct.Mul(percentScale).StringFixed(0)
		line += fmt.Sprintf(" (%s%% bulk discount)", pct)
	}
	line += fmt.Sprintf(" = $%s", q.LineTotal.StringFixed(2))
	if q.BackorderedUnits > 0 {
		line += fmt.Sprintf("\n  Note: %d of %d units in stock now, %d on backorder",
			q.AvailableUnits, q.RequestedUnits, q.BackorderedUnits)
	}
	return line
}

// similarOrderNote searches past quotes for the request's topical terms.
// History lookup is best effort; failures are logged and the quote goes
// out without it.
func (h *Handler) similarOrderNote(ctx context.Context, text string) string {
	if h.history == nil {
		return ""
	}

	lowered := strings.ToLower(text)
	var terms []string
	for _, term := range historyTerms {
		if strings.Contains(lowered, term) {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return ""
	}

	records, err := h.history.Search(ctx, terms, 3)
	if err != nil {
		log.Warn().Err(err).Strs("terms", terms).Msg("quote history search failed")
		return ""
	}
	if len(records) == 0 {
		return ""
	}

	out := []string{"For reference, similar past orders:"}
	for _, rec := range records {
		line := fmt.Sprintf("- %s order on %s: $%s (%s)",
			rec.JobType, rec.OrderDate, rec.TotalAmount.StringFixed(2), rec.OrderSize)
		if excerpt := firstLine(rec.Response); excerpt != "" {
			line += "\n  Quoted then: " + excerpt
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
