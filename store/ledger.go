package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

// Ledger is the append-only transaction log. Appending a sale decrements
// stock and appending a stock order increments it, in the same database
// transaction, so inventory never drifts from the ledger.
type Ledger struct {
	db *bun.DB
}

var _ contractx.Ledger = (*Ledger)(nil)

func NewLedger(db *bun.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) Append(ctx context.Context, tx contractx.TransactionInput) (int64, error) {
	if tx.Units <= 0 {
		return 0, fmt.Errorf("%w: units must be positive, got %d", contractx.ErrValidation, tx.Units)
	}
	if tx.Type != contractx.TransactionSale && tx.Type != contractx.TransactionStockOrder {
		return 0, fmt.Errorf("%w: unknown transaction type %q", contractx.ErrValidation, tx.Type)
	}

	row := &Transaction{
		ItemName:        tx.ItemName,
		TransactionType: string(tx.Type),
		Units:           tx.Units,
		Price:           tx.Price,
		TransactionDate: tx.Date.Format(DateLayout),
	}

	err := l.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, dbtx bun.Tx) error {
		if _, err := dbtx.NewInsert().Model(row).Exec(ctx); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		var res sql.Result
		var err error
		if tx.Type == contractx.TransactionSale {
			res, err = dbtx.NewUpdate().
				Model((*InventoryItem)(nil)).
				Set("current_stock = current_stock - ?", tx.Units).
				Where("item_name = ?", tx.ItemName).
				Where("current_stock >= ?", tx.Units).
				Exec(ctx)
		} else {
			res, err = dbtx.NewUpdate().
				Model((*InventoryItem)(nil)).
				Set("current_stock = current_stock + ?", tx.Units).
				Where("item_name = ?", tx.ItemName).
				Exec(ctx)
		}
		if err != nil {
			return fmt.Errorf("apply stock delta: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("stock delta result: %w", err)
		}
		if affected == 0 {
			if tx.Type == contractx.TransactionSale {
				return fmt.Errorf("%w: %s cannot cover %d units", contractx.ErrInsufficientStock, tx.ItemName, tx.Units)
			}
			return fmt.Errorf("%w: %s", contractx.ErrItemNotFound, tx.ItemName)
		}
		return nil
	})
	if err != nil {
		return 0, wrapLedgerErr(err)
	}
	return row.ID, nil
}

// CashBalance derives the balance from the full transaction history up
// to and including asOf: sales add, stock orders subtract.
func (l *Ledger) CashBalance(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	rows, err := l.transactionsThrough(ctx, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, row := range rows {
		switch contractx.TransactionType(row.TransactionType) {
		case contractx.TransactionSale:
			balance = balance.Add(row.Price)
		case contractx.TransactionStockOrder:
			balance = balance.Sub(row.Price)
		}
	}
	return balance, nil
}

func (l *Ledger) TopSellers(ctx context.Context, asOf time.Time, limit int) ([]contractx.SellerStat, error) {
	rows, err := l.transactionsThrough(ctx, asOf)
	if err != nil {
		return nil, err
	}

	byItem := make(map[string]*contractx.SellerStat)
	for _, row := range rows {
		if contractx.TransactionType(row.TransactionType) != contractx.TransactionSale {
			continue
		}
		stat, ok := byItem[row.ItemName]
		if !ok {
			stat = &contractx.SellerStat{ItemName: row.ItemName, TotalRevenue: decimal.Zero}
			byItem[row.ItemName] = stat
		}
		stat.TotalUnits += row.Units
		stat.TotalRevenue = stat.TotalRevenue.Add(row.Price)
	}

	stats := make([]contractx.SellerStat, 0, len(byItem))
	for _, stat := range byItem {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].TotalRevenue.Equal(stats[j].TotalRevenue) {
			return stats[i].TotalRevenue.GreaterThan(stats[j].TotalRevenue)
		}
		return stats[i].ItemName < stats[j].ItemName
	})

	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

func (l *Ledger) transactionsThrough(ctx context.Context, asOf time.Time) ([]Transaction, error) {
	var rows []Transaction
	err := l.db.NewSelect().
		Model(&rows).
		Where("transaction_date <= ?", asOf.Format(DateLayout)).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load transactions: %v", contractx.ErrPersistence, err)
	}
	return rows, nil
}

func wrapLedgerErr(err error) error {
	// Domain sentinels pass through; anything else is a store failure.
	for _, sentinel := range []error{contractx.ErrInsufficientStock, contractx.ErrItemNotFound, contractx.ErrValidation} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", contractx.ErrPersistence, err)
}
