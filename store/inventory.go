package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

type Inventory struct {
	db *bun.DB
}

var _ contractx.Inventory = (*Inventory)(nil)

func NewInventory(db *bun.DB) *Inventory {
	return &Inventory{db: db}
}

func (s *Inventory) Item(ctx context.Context, name string) (contractx.Item, error) {
	var m InventoryItem
	err := s.db.NewSelect().Model(&m).Where("item_name = ?", name).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return contractx.Item{}, fmt.Errorf("%w: %s", contractx.ErrItemNotFound, name)
	}
	if err != nil {
		return contractx.Item{}, fmt.Errorf("%w: load item %s: %v", contractx.ErrPersistence, name, err)
	}
	return toItem(m), nil
}

func (s *Inventory) Items(ctx context.Context) ([]contractx.Item, error) {
	var ms []InventoryItem
	if err := s.db.NewSelect().Model(&ms).Order("item_name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: list inventory: %v", contractx.ErrPersistence, err)
	}
	items := make([]contractx.Item, 0, len(ms))
	for _, m := range ms {
		items = append(items, toItem(m))
	}
	return items, nil
}

func (s *Inventory) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.NewSelect().
		Model((*InventoryItem)(nil)).
		Column("item_name").
		Order("item_name ASC").
		Scan(ctx, &names)
	if err != nil {
		return nil, fmt.Errorf("%w: list item names: %v", contractx.ErrPersistence, err)
	}
	return names, nil
}

func toItem(m InventoryItem) contractx.Item {
	return contractx.Item{
		Name:          m.ItemName,
		Category:      m.Category,
		UnitPrice:     m.UnitPrice,
		CurrentStock:  m.CurrentStock,
		MinStockLevel: m.MinStockLevel,
	}
}
