// Package inventory answers stock and reorder queries and places
// supplier restock orders.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
	parsex "github.com/kchia/paperflow-ai/agent/parse"
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

// Handle dispatches on the query's phrasing: restock requests place a
// supplier order, reorder questions run the threshold check, financial
// phrasing produces the summary report, a recognizable item name gives
// its stock level, and anything else lists the full catalog.
func (h *Handler) Handle(ctx context.Context, req contractx.HandlerRequest) (contractx.HandlerResult, error) {
	lowered := strings.ToLower(req.Text)

	switch {
	case strings.Contains(lowered, "restock") || strings.Contains(lowered, "supplier order"):
		return h.handleRestock(ctx, req)
	case strings.Contains(lowered, "reorder"):
		return h.handleReorderCheck(ctx, req)
	case strings.Contains(lowered, "financial") || strings.Contains(lowered, "report") || strings.Contains(lowered, "balance"):
		return h.handleFinancialSummary(ctx, req)
	}

	name, err := h.resolveFromText(ctx, req.Text)
	if err == nil {
		return h.stockLevelResult(ctx, name, req.AsOf)
	}
	if !errors.Is(err, contractx.ErrItemNotFound) {
		return contractx.HandlerResult{}, err
	}
	return h.listAvailable(ctx, req.AsOf)
}

// StockLevel reports current availability for one item.
func (h *Handler) StockLevel(ctx context.Context, name string, asOf time.Time) (string, error) {
	item, err := h.inv.Item(ctx, name)
	if err != nil {
		return "", err
	}
	date := asOf.Format("2006-01-02")
	if item.CurrentStock <= 0 {
		return fmt.Sprintf("OUT OF STOCK: '%s' has 0 units available as of %s", item.Name, date), nil
	}
	return fmt.Sprintf("IN STOCK: '%s' has %d units available as of %s", item.Name, item.CurrentStock, date), nil
}

// ReorderCheck compares stock to the minimum level. Below the minimum it
// recommends ordering up to three times the minimum, the house rule for
// a safe buffer.
func (h *Handler) ReorderCheck(ctx context.Context, name string) (string, error) {
	item, err := h.inv.Item(ctx, name)
	if err != nil {
		return "", err
	}
	if item.CurrentStock <= item.MinStockLevel {
		recommended := item.MinStockLevel*3 - item.CurrentStock
		return fmt.Sprintf(
			"REORDER NEEDED: '%s' has %d units but minimum is %d. Recommend ordering at least %d units to reach safe stock level.",
			item.Name, item.CurrentStock, item.MinStockLevel, recommended), nil
	}
	buffer := item.CurrentStock - item.MinStockLevel
	return fmt.Sprintf(
		"STOCK OK: '%s' has %d units, which is %d above minimum of %d. No reorder needed at this time.",
		item.Name, item.CurrentStock, buffer, item.MinStockLevel), nil
}

// PlaceSupplierOrder records a stock_orders transaction: stock goes up,
// derived cash goes down by qty x unit price. There is no feasibility
// gate against the cash balance; a projected negative balance is logged
// and the order still goes through.
func (h *Handler) PlaceSupplierOrder(ctx context.Context, name string, qty int, date time.Time) (string, error) {
	if qty <= 0 {
		return "", fmt.Errorf("%w: order quantity must be positive, got %d", contractx.ErrValidation, qty)
	}
	item, err := h.inv.Item(ctx, name)
	if err != nil {
		return "", err
	}

	totalCost := item.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
	id, err := h.ledger.Append(ctx, contractx.TransactionInput{
		ItemName: item.Name,
		Type:     contractx.TransactionStockOrder,
		Units:    qty,
		Price:    totalCost,
		Date:     date,
	})
	if err != nil {
		return "", err
	}

	if balance, err := h.ledger.CashBalance(ctx, date); err == nil && balance.IsNegative() {
		log.Warn().
			Str("item", item.Name).
			Int("units", qty).
			Str("projected_balance", balance.StringFixed(2)).
			Msg("supplier order drove cash balance negative")
	}

	delivery := DeliveryDate(date, qty)
	return fmt.Sprintf(
		"SUPPLIER ORDER PLACED (ID: %d)\nItem: %s\nQuantity: %d units\nCost: $%s\nOrder Date: %s\nExpected Delivery: %s",
		id, item.Name, qty, totalCost.StringFixed(2),
		date.Format("2006-01-02"), delivery.Format("2006-01-02")), nil
}

// FinancialSummary derives cash, inventory value, and total assets as of
// a date. Nothing here is cached; it is recomputed from the ledger and
// catalog every call.
func (h *Handler) FinancialSummary(ctx context.Context, asOf time.Time) (contractx.FinancialReport, error) {
	cash, err := h.ledger.CashBalance(ctx, asOf)
	if err != nil {
		return contractx.FinancialReport{}, err
	}
	items, err := h.inv.Items(ctx)
	if err != nil {
		return contractx.FinancialReport{}, err
	}

	inventoryValue := decimal.Zero
	for _, item := range items {
		inventoryValue = inventoryValue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.CurrentStock))))
	}

	top, err := h.ledger.TopSellers(ctx, asOf, 5)
	if err != nil {
		return contractx.FinancialReport{}, err
	}

	return contractx.FinancialReport{
		AsOf:           asOf,
		CashBalance:    cash,
		InventoryValue: inventoryValue,
		TotalAssets:    cash.Add(inventoryValue),
		ItemCount:      len(items),
		TopSellers:     top,
	}, nil
}

// DeliveryDate estimates supplier lead time from order size.
func DeliveryDate(orderDate time.Time, qty int) time.Time {
	var days int
	switch {
	case qty < 10:
		days = 1
	case qty < 100:
		days = 4
	case qty < 1000:
		days = 7
	default:
		days = 14
	}
	return orderDate.AddDate(0, 0, days)
}

func (h *Handler) handleRestock(ctx context.Context, req contractx.HandlerRequest) (contractx.HandlerResult, error) {
	lines := parsex.LineItems(req.Text)
	if len(lines) == 0 {
		return contractx.HandlerResult{
			Response: "Please specify the item and quantity to restock, e.g. \"restock 500 units of A4 paper\".",
		}, nil
	}

	names, err := h.inv.Names(ctx)
	if err != nil {
		return contractx.HandlerResult{}, err
	}

	var out []string
	for _, line := range lines {
		canonical, err := resolvex.Canonical(line.Description, names)
		if err != nil {
			out = append(out, fmt.Sprintf("- %s: item not recognized", line.Description))
			continue
		}
		confirmation, err := h.PlaceSupplierOrder(ctx, canonical, line.Quantity, req.AsOf)
		if err != nil {
			return contractx.HandlerResult{}, err
		}
		out = append(out, confirmation)
	}
	return contractx.HandlerResult{Response: strings.Join(out, "\n\n")}, nil
}

func (h *Handler) handleReorderCheck(ctx context.Context, req contractx.HandlerRequest) (contractx.HandlerResult, error) {
	name, err := h.resolveFromText(ctx, req.Text)
	if errors.Is(err, contractx.ErrItemNotFound) {
		return contractx.HandlerResult{
			Response: "Please name the item to check for reordering.",
		}, nil
	}
	if err != nil {
		return contractx.HandlerResult{}, err
	}

	text, err := h.ReorderCheck(ctx, name)
	if err != nil {
		return contractx.HandlerResult{}, err
	}
	return contractx.HandlerResult{Response: text}, nil
}

func (h *Handler) handleFinancialSummary(ctx context.Context, req contractx.HandlerRequest) (contractx.HandlerResult, error) {
	report, err := h.FinancialSummary(ctx, req.AsOf)
	if err != nil {
		return contractx.HandlerResult{}, err
	}

	out := []string{
		fmt.Sprintf("FINANCIAL SUMMARY as of %s:", report.AsOf.Format("2006-01-02")),
		fmt.Sprintf("Cash Balance: $%s", report.CashBalance.StringFixed(2)),
		fmt.Sprintf("Inventory Value: $%s", report.InventoryValue.StringFixed(2)),
		fmt.Sprintf("Total Assets: $%s", report.TotalAssets.StringFixed(2)),
		fmt.Sprintf("Catalog items: %d", report.ItemCount),
	}
	if len(report.TopSellers) > 0 {
		out = append(out, "", "Top Selling Products:")
		for _, stat := range report.TopSellers {
			out = append(out, fmt.Sprintf("- %s: %d units sold, $%s revenue",
				stat.ItemName, stat.TotalUnits, stat.TotalRevenue.StringFixed(2)))
		}
	}
	return contractx.HandlerResult{Response: strings.Join(out, "\n")}, nil
}

func (h *Handler) stockLevelResult(ctx context.Context, name string, asOf time.Time) (contractx.HandlerResult, error) {
	text, err := h.StockLevel(ctx, name, asOf)
	if err != nil {
		return contractx.HandlerResult{}, err
	}
	return contractx.HandlerResult{Response: text}, nil
}

func (h *Handler) listAvailable(ctx context.Context, asOf time.Time) (contractx.HandlerResult, error) {
	items, err := h.inv.Items(ctx)
	if err != nil {
		return contractx.HandlerResult{}, err
	}

	var inStock []string
	for _, item := range items {
		if item.CurrentStock > 0 {
			inStock = append(inStock, fmt.Sprintf("- %s: %d units", item.Name, item.CurrentStock))
		}
	}
	if len(inStock) == 0 {
		return contractx.HandlerResult{
			Response: fmt.Sprintf("No items in stock as of %s", asOf.Format("2006-01-02")),
		}, nil
	}

	header := fmt.Sprintf("Available items (%d total) as of %s:", len(inStock), asOf.Format("2006-01-02"))
	return contractx.HandlerResult{Response: header + "\n" + strings.Join(inStock, "\n")}, nil
}

// resolveFromText matches a catalog name mentioned anywhere in the
// request. Whole-sentence input almost always lands in the resolver's
// substring tier.
func (h *Handler) resolveFromText(ctx context.Context, text string) (string, error) {
	names, err := h.inv.Names(ctx)
	if err != nil {
		return "", err
	}
	return resolvex.Canonical(text, names)
}
