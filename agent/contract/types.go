package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

type Intent string

const (
	IntentOrderPlacement Intent = "order_placement"
	IntentQuoteRequest   Intent = "quote_request"
	IntentInventoryQuery Intent = "inventory_query"
	IntentGeneral        Intent = "general"
)

type TransactionType string

const (
	TransactionSale       TransactionType = "sales"
	TransactionStockOrder TransactionType = "stock_orders"
)

// Item is the canonical inventory view handed to handlers and the
// pricing engine. CurrentStock is the latest snapshot; there is no
// historical stock reconstruction.
type Item struct {
	Name          string
	Category      string
	UnitPrice     decimal.Decimal
	CurrentStock  int
	MinStockLevel int
}

// LineItem is one parsed quantity/description pair from a free-text
// request.
type LineItem struct {
	Quantity    int
	Description string
}

// PriceQuote is the pricing engine's answer for a single line.
// LineTotal is charged on the full requested quantity even when part of
// it is backordered; the quote communicates availability, not a
// truncated charge.
type PriceQuote struct {
	ItemName         string
	UnitPrice        decimal.Decimal
	DiscountPct      decimal.Decimal
	RequestedUnits   int
	AvailableUnits   int
	BackorderedUnits int
	LineTotal        decimal.Decimal
}

type TransactionInput struct {
	ItemName string
	Type     TransactionType
	Units    int
	Price    decimal.Decimal
	Date     time.Time
}

type QuoteRecord struct {
	RequestID   int64
	TotalAmount decimal.Decimal
	Explanation string
	OrderDate   string
	JobType     string
	OrderSize   string
	EventType   string
	// Response is the archived quote text sent for this request, when
	// one is on file.
	Response string
}

type SellerStat struct {
	ItemName     string
	TotalUnits   int
	TotalRevenue decimal.Decimal
}

// FinancialReport is derived on demand; nothing in it is cached.
type FinancialReport struct {
	AsOf           time.Time
	CashBalance    decimal.Decimal
	InventoryValue decimal.Decimal
	TotalAssets    decimal.Decimal
	ItemCount      int
	TopSellers     []SellerStat
}

// HandlerRequest is one customer request handed to a specialist handler.
type HandlerRequest struct {
	RequestID string
	Text      string
	AsOf      time.Time
}

// HandlerResult carries the internal, pre-redaction response text.
type HandlerResult struct {
	Response string
}

// AuditRecord is the per-request audit row written after redaction.
type AuditRecord struct {
	RequestID        string
	RequestText      string
	Intent           Intent
	Handler          string
	RawResult        string
	RedactedResponse string
	AsOf             time.Time
}
