// Package sales commits confirmed orders to the transaction ledger,
// fulfilling the in-stock portion of each line and backordering the
// rest.
package sales

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

type Handler struct {
	inv    contractx.Inventory
	ledger contractx.Ledger
}

var _ contractx.Handler = (*Handler)(nil)

func New(inv contractx.Inventory, ledger contractx.Ledger) (*Handler, error) {
	if inv == nil {
		return nil, errors.New("inventory store is required")
	}
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}
	return &Handler{inv: inv, ledger: ledger}, nil
}

// Handle commits a confirmed order. Each line is fulfilled up to the
// in-stock quantity and charged for the portion actually sold; the
// remainder is reported as backordered. A line with nothing in stock is
// skipped, not failed, so the rest of the order still goes through.
func (h *Handler) Handle(ctx context.Context, req contractx.HandlerRequest) (contractx.HandlerResult, error) {
	lines := parsex.LineItems(req.Text)
	if len(lines) == 0 {
		return contractx.HandlerResult{
			Response: "To place an order, please list the items and quantities, e.g. \"200 sheets of A4 paper\".",
		}, nil
	}

	names, err := h.inv.Names(ctx)
	if err != nil {
		return contractx.HandlerResult{}, err
	}

	var (
		out       []string
		orderSum  = decimal.Zero
		soldLines int
	)
	for _, line := range lines {
		canonical, err := resolvex.Canonical(line.Description, names)
		if err != nil {
			out = append(out, fmt.Sprintf("- %s: item not recognized, not included in this order", line.Description))
			continue
		}
		item, err := h.inv.Item(ctx, canonical)
		if err != nil {
			return contractx.HandlerResult{}, err
		}

		q := pricing.Quote(item, line.Quantity)
		if q.AvailableUnits == 0 {
			out = append(out, fmt.Sprintf("- %s: 0 of %d units in stock, all %d backordered",
				q.ItemName, q.RequestedUnits, q.RequestedUnits))
			continue
		}

		saleTotal := pricing.SaleTotal(q)
		txID, err := h.ledger.Append(ctx, contractx.TransactionInput{
			ItemName: q.ItemName,
			Type:     contractx.TransactionSale,
			Units:    q.AvailableUnits,
			Price:    saleTotal,
			Date:     req.AsOf,
		})
		if errors.Is(err, contractx.ErrInsufficientStock) {
			// Stock moved between the quote and the commit; report the
			// line as unavailable rather than failing the order.
			log.Warn().Str("item", q.ItemName).Int("units", q.AvailableUnits).
				Msg("stock changed during order commit")
			out = append(out, fmt.Sprintf("- %s: no longer in stock, all %d units backordered",
				q.ItemName, q.RequestedUnits))
			continue
		}
		if err != nil {
			return contractx.HandlerResult{}, err
		}

		soldLines++
		orderSum = orderSum.Add(saleTotal)
		out = append(out, formatSoldLine(q, saleTotal, txID))
	}

	if soldLines == 0 {
		header := "We cannot fulfill any part of this order right now."
		return contractx.HandlerResult{
			Response: header + "\n" + strings.Join(out, "\n"),
		}, nil
	}

	balance, err := h.ledger.CashBalance(ctx, req.AsOf)
	if err != nil {
		return contractx.HandlerResult{}, err
	}

	out = append(out,
		fmt.Sprintf("ORDER TOTAL: $%s", orderSum.StringFixed(2)),
		fmt.Sprintf("Updated Cash Balance: $%s", balance.StringFixed(2)),
		"Thank you for your order!")
	return contractx.HandlerResult{
		Response: "ORDER CONFIRMED\n" + strings.Join(out, "\n"),
	}, nil
}

func formatSoldLine(q contractx.PriceQuote, saleTotal decimal.Decimal, txID int64) string {
	line := fmt.Sprintf("- %s: %d units sold for $%s (Transaction ID: %d)",
		q.ItemName, q.AvailableUnits, saleTotal.StringFixed(2), txID)
	if q.BackorderedUnits > 0 {
		line += fmt.Sprintf("\n  %d of %d requested units backordered", q.BackorderedUnits, q.RequestedUnits)
	}
	return line
}
