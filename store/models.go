package store

import (
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// DateLayout is how as-of dates are persisted. ISO dates compare
// lexicographically, which the ledger's as-of filters rely on.
const DateLayout = "2006-01-02"

type InventoryItem struct {
	bun.BaseModel `bun:"table:inventory"`

	ItemName      string          `bun:"item_name,pk"`
	Category      string          `bun:"category,notnull"`
	UnitPrice     decimal.Decimal `bun:"unit_price,notnull"`
	CurrentStock  int             `bun:"current_stock,notnull"`
	MinStockLevel int             `bun:"min_stock_level,notnull"`
}

// Transaction rows are append-only; nothing updates or deletes them.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions"`

	ID              int64           `bun:"id,pk,autoincrement"`
	ItemName        string          `bun:"item_name,notnull"`
	TransactionType string          `bun:"transaction_type,notnull"`
	Units           int             `bun:"units,notnull"`
	Price           decimal.Decimal `bun:"price,notnull"`
	TransactionDate string          `bun:"transaction_date,notnull"`
}

type Quote struct {
	bun.BaseModel `bun:"table:quotes"`

	RequestID        int64           `bun:"request_id,pk"`
	TotalAmount      decimal.Decimal `bun:"total_amount"`
	QuoteExplanation string          `bun:"quote_explanation"`
	OrderDate        string          `bun:"order_date"`
	JobType          string          `bun:"job_type"`
	OrderSize        string          `bun:"order_size"`
	EventType        string          `bun:"event_type"`
}

// QuoteRequest archives the full response text sent for a historical
// quote, keyed by the quote's request id.
type QuoteRequest struct {
	bun.BaseModel `bun:"table:quote_requests"`

	ID       int64  `bun:"id,pk"`
	Response string `bun:"response"`
}

type AuditRecord struct {
	bun.BaseModel `bun:"table:audit_log"`

	RequestID        string `bun:"request_id,pk"`
	RequestText      string `bun:"request_text,notnull"`
	Intent           string `bun:"intent,notnull"`
	Handler          string `bun:"handler,notnull"`
	RawResult        string `bun:"raw_result"`
	RedactedResponse string `bun:"redacted_response"`
	AsOfDate         string `bun:"as_of_date,notnull"`
	CreatedAt        int64  `bun:"created_at,notnull"`
}
