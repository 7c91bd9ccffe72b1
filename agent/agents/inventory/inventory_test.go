package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

type fakeInventory struct {
	items map[string]contractx.Item
}

func (f *fakeInventory) Item(_ context.Context, name string) (contractx.Item, error) {
	item, ok := f.items[name]
	if !ok {
		return contractx.Item{}, fmt.Errorf("%w: %q", contractx.ErrItemNotFound, name)
	}
	return item, nil
}

func (f *fakeInventory) Items(_ context.Context) ([]contractx.Item, error) {
	var out []contractx.Item
	for _, name := range sortedNames(f.items) {
		out = append(out, f.items[name])
	}
	return out, nil
}

func (f *fakeInventory) Names(_ context.Context) ([]string, error) {
	return sortedNames(f.items), nil
}

func sortedNames(items map[string]contractx.Item) []string {
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type fakeLedger struct {
	appended []contractx.TransactionInput
	balance  decimal.Decimal
	top      []contractx.SellerStat
	nextID   int64
}

func (f *fakeLedger) Append(_ context.Context, tx contractx.TransactionInput) (int64, error) {
	f.appended = append(f.appended, tx)
	if tx.Type == contractx.TransactionStockOrder {
		f.balance = f.balance.Sub(tx.Price)
	} else {
		f.balance = f.balance.Add(tx.Price)
	}
	f.nextID++
	return f.nextID, nil
}

func (f *fakeLedger) CashBalance(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return f.balance, nil
}

func (f *fakeLedger) TopSellers(_ context.Context, _ time.Time, _ int) ([]contractx.SellerStat, error) {
	return f.top, nil
}

func testCatalog() map[string]contractx.Item {
	return map[string]contractx.Item{
		"A4 paper": {
			Name: "A4 paper", Category: "paper",
			UnitPrice: decimal.RequireFromString("0.05"), CurrentStock: 1200, MinStockLevel: 200,
		},
		"Cardstock": {
			Name: "Cardstock", Category: "specialty",
			UnitPrice: decimal.RequireFromString("0.15"), CurrentStock: 300, MinStockLevel: 100,
		},
		"Glossy paper": {
			Name: "Glossy paper", Category: "specialty",
			UnitPrice: decimal.RequireFromString("0.20"), CurrentStock: 0, MinStockLevel: 100,
		},
		"Kraft paper": {
			Name: "Kraft paper", Category: "paper",
			UnitPrice: decimal.RequireFromString("0.08"), CurrentStock: 50, MinStockLevel: 150,
		},
	}
}

func newTestHandler(t *testing.T) (*Handler, *fakeLedger) {
	t.Helper()
	ledger := &fakeLedger{balance: decimal.RequireFromString("1000.00")}
	h, err := New(&fakeInventory{items: testCatalog()}, ledger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return h, ledger
}

var asOf = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func TestStockLevel(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	got, err := h.StockLevel(context.Background(), "Cardstock", asOf)
	if err != nil {
		t.Fatalf("StockLevel: %v", err)
	}
	want := "IN STOCK: 'Cardstock' has 300 units available as of 2025-06-10"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStockLevelOutOfStock(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	got, err := h.StockLevel(context.Background(), "Glossy paper", asOf)
	if err != nil {
		t.Fatalf("StockLevel: %v", err)
	}
	if !strings.HasPrefix(got, "OUT OF STOCK:") {
		t.Errorf("expected out-of-stock message, got %q", got)
	}
}

func TestReorderCheckBelowMinimum(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	got, err := h.ReorderCheck(context.Background(), "Kraft paper")
	if err != nil {
		t.Fatalf("ReorderCheck: %v", err)
	}
	// 3*150 - 50 = 400 recommended units.
	if !strings.Contains(got, "REORDER NEEDED") || !strings.Contains(got, "400 units") {
		t.Errorf("unexpected reorder message %q", got)
	}
}

func TestReorderCheckHealthy(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	got, err := h.ReorderCheck(context.Background(), "A4 paper")
	if err != nil {
		t.Fatalf("ReorderCheck: %v", err)
	}
	if !strings.Contains(got, "STOCK OK") {
		t.Errorf("unexpected message %q", got)
	}
}

func TestPlaceSupplierOrder(t *testing.T) {
	t.Parallel()
	h, ledger := newTestHandler(t)

	got, err := h.PlaceSupplierOrder(context.Background(), "A4 paper", 500, asOf)
	if err != nil {
		t.Fatalf("PlaceSupplierOrder: %v", err)
	}
	if len(ledger.appended) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(ledger.appended))
	}
	tx := ledger.appended[0]
	if tx.Type != contractx.TransactionStockOrder || tx.Units != 500 {
		t.Errorf("unexpected transaction %+v", tx)
	}
	if want := decimal.RequireFromString("25.00"); !tx.Price.Equal(want) {
		t.Errorf("cost = %s, want %s", tx.Price, want)
	}
	// 500 units lands in the 7-day delivery tier.
	if !strings.Contains(got, "Expected Delivery: 2025-06-17") {
		t.Errorf("unexpected confirmation %q", got)
	}
	if !strings.Contains(got, "SUPPLIER ORDER PLACED (ID: 1)") {
		t.Errorf("unexpected confirmation %q", got)
	}
}

func TestPlaceSupplierOrderRejectsNonPositiveQty(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	if _, err := h.PlaceSupplierOrder(context.Background(), "A4 paper", 0, asOf); !errors.Is(err, contractx.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestDeliveryDateTiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		qty  int
		days int
	}{
		{1, 1}, {9, 1}, {10, 4}, {99, 4}, {100, 7}, {999, 7}, {1000, 14}, {5000, 14},
	}
	for _, tc := range cases {
		got := DeliveryDate(asOf, tc.qty)
		want := asOf.AddDate(0, 0, tc.days)
		if !got.Equal(want) {
			t.Errorf("qty %d: got %s, want %s", tc.qty, got.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	}
}

func TestFinancialSummary(t *testing.T) {
	t.Parallel()
	h, ledger := newTestHandler(t)
	ledger.top = []contractx.SellerStat{
		{ItemName: "A4 paper", TotalUnits: 900, TotalRevenue: decimal.RequireFromString("45.00")},
	}

	report, err := h.FinancialSummary(context.Background(), asOf)
	if err != nil {
		t.Fatalf("FinancialSummary: %v", err)
	}
	// 1200*0.05 + 300*0.15 + 0*0.20 + 50*0.08 = 60 + 45 + 0 + 4 = 109.
	if want := decimal.RequireFromString("109.00"); !report.InventoryValue.Equal(want) {
		t.Errorf("inventory value = %s, want %s", report.InventoryValue, want)
	}
	if want := decimal.RequireFromString("1109.00"); !report.TotalAssets.Equal(want) {
		t.Errorf("total assets = %s, want %s", report.TotalAssets, want)
	}
	if report.ItemCount != 4 {
		t.Errorf("item count = %d, want 4", report.ItemCount)
	}
	if len(report.TopSellers) != 1 || report.TopSellers[0].ItemName != "A4 paper" {
		t.Errorf("unexpected top sellers %+v", report.TopSellers)
	}
}

func TestHandleStockQuery(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	res, err := h.Handle(context.Background(), contractx.HandlerRequest{
		Text: "Do you have A4 paper in stock?",
		AsOf: asOf,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(res.Response, "IN STOCK: 'A4 paper' has 1200 units") {
		t.Errorf("unexpected response %q", res.Response)
	}
}

func TestHandleListsCatalogWhenNoItemNamed(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	res, err := h.Handle(context.Background(), contractx.HandlerRequest{
		Text: "What items do you carry?",
		AsOf: asOf,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(res.Response, "Available items (3 total)") {
		t.Errorf("unexpected response %q", res.Response)
	}
	if strings.Contains(res.Response, "Glossy paper") {
		t.Errorf("out-of-stock item listed: %q", res.Response)
	}
}

func TestHandleFinancialReport(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	res, err := h.Handle(context.Background(), contractx.HandlerRequest{
		Text: "Please send a financial report",
		AsOf: asOf,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(res.Response, "Cash Balance: $1000.00") {
		t.Errorf("unexpected response %q", res.Response)
	}
}

func TestHandleRestock(t *testing.T) {
	t.Parallel()
	h, ledger := newTestHandler(t)

	res, err := h.Handle(context.Background(), contractx.HandlerRequest{
		Text: "Please restock 400 units of Kraft paper",
		AsOf: asOf,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(ledger.appended) != 1 || ledger.appended[0].ItemName != "Kraft paper" {
		t.Fatalf("unexpected ledger entries %+v", ledger.appended)
	}
	if !strings.Contains(res.Response, "SUPPLIER ORDER PLACED") {
		t.Errorf("unexpected response %q", res.Response)
	}
}
