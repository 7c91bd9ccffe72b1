package contract

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Handler is one specialist (inventory, quoting, sales) behind the
// orchestrator's intent branch.
type Handler interface {
	Handle(ctx context.Context, req HandlerRequest) (HandlerResult, error)
}

// Registry resolves the specialist for each classified intent.
type Registry interface {
	Inventory() Handler
	Quoting() Handler
	Sales() Handler
}

// Inventory reads the item catalog. Stock mutation happens only through
// Ledger.Append.
type Inventory interface {
	Item(ctx context.Context, name string) (Item, error)
	Items(ctx context.Context) ([]Item, error)
	Names(ctx context.Context) ([]string, error)
}

// Ledger is the append-only transaction log. Append records the
// transaction and applies its stock delta atomically (sales decrement,
// stock orders increment). Cash balance is always derived, never stored.
type Ledger interface {
	Append(ctx context.Context, tx TransactionInput) (int64, error)
	CashBalance(ctx context.Context, asOf time.Time) (decimal.Decimal, error)
	TopSellers(ctx context.Context, asOf time.Time, limit int) ([]SellerStat, error)
}

// QuoteHistory searches past quotes; the table is seed-loaded and
// read-only at runtime.
type QuoteHistory interface {
	Search(ctx context.Context, terms []string, limit int) ([]QuoteRecord, error)
}

// AuditLog records one row per processed request.
type AuditLog interface {
	Append(ctx context.Context, rec AuditRecord) error
}

// Responder optionally rephrases a templated reply through a language
// model. Implementations are black boxes with their own timeout; errors
// fall back to the template text.
type Responder interface {
	Rephrase(ctx context.Context, text string) (string, error)
}
