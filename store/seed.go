package store

import (
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

//go:embed seed/inventory.csv seed/quotes.csv seed/quote_requests.csv
var seedFS embed.FS

// Seed loads the paper catalog and quote history when the inventory
// table is empty. Safe to call on every startup.
func Seed(ctx context.Context, db *bun.DB) error {
	count, err := db.NewSelect().Model((*InventoryItem)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("%w: count inventory: %v", contractx.ErrPersistence, err)
	}
	if count > 0 {
		return nil
	}

	items, err := loadInventorySeed()
	if err != nil {
		return err
	}
	if _, err := db.NewInsert().Model(&items).Exec(ctx); err != nil {
		return fmt.Errorf("%w: seed inventory: %v", contractx.ErrPersistence, err)
	}

	quotes, err := loadQuoteSeed()
	if err != nil {
		return err
	}
	if _, err := db.NewInsert().Model(&quotes).Exec(ctx); err != nil {
		return fmt.Errorf("%w: seed quotes: %v", contractx.ErrPersistence, err)
	}

	responses, err := loadQuoteRequestSeed()
	if err != nil {
		return err
	}
	if _, err := db.NewInsert().Model(&responses).Exec(ctx); err != nil {
		return fmt.Errorf("%w: seed quote requests: %v", contractx.ErrPersistence, err)
	}
	return nil
}

func loadInventorySeed() ([]InventoryItem, error) {
	rows, err := readSeedCSV("seed/inventory.csv")
	if err != nil {
		return nil, err
	}

	items := make([]InventoryItem, 0, len(rows))
	for _, row := range rows {
		price, err := decimal.NewFromString(row[2])
		if err != nil {
			return nil, fmt.Errorf("%w: seed price for %s: %v", contractx.ErrValidation, row[0], err)
		}
		stock, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("%w: seed stock for %s: %v", contractx.ErrValidation, row[0], err)
		}
		minStock, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, fmt.Errorf("%w: seed min stock for %s: %v", contractx.ErrValidation, row[0], err)
		}
		items = append(items, InventoryItem{
			ItemName:      row[0],
			Category:      row[1],
			UnitPrice:     price,
			CurrentStock:  stock,
			MinStockLevel: minStock,
		})
	}
	return items, nil
}

func loadQuoteSeed() ([]Quote, error) {
	rows, err := readSeedCSV("seed/quotes.csv")
	if err != nil {
		return nil, err
	}

	quotes := make([]Quote, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: seed quote id %q: %v", contractx.ErrValidation, row[0], err)
		}
		amount, err := decimal.NewFromString(row[1])
		if err != nil {
			return nil, fmt.Errorf("%w: seed quote amount for %s: %v", contractx.ErrValidation, row[0], err)
		}
		quotes = append(quotes, Quote{
			RequestID:        id,
			TotalAmount:      amount,
			QuoteExplanation: row[2],
			OrderDate:        row[3],
			JobType:          row[4],
			OrderSize:        row[5],
			EventType:        row[6],
		})
	}
	return quotes, nil
}

func loadQuoteRequestSeed() ([]QuoteRequest, error) {
	rows, err := readSeedCSV("seed/quote_requests.csv")
	if err != nil {
		return nil, err
	}

	responses := make([]QuoteRequest, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: seed quote request id %q: %v", contractx.ErrValidation, row[0], err)
		}
		responses = append(responses, QuoteRequest{ID: id, Response: row[1]})
	}
	return responses, nil
}

func readSeedCSV(name string) ([][]string, error) {
	f, err := seedFS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", contractx.ErrPersistence, name, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", contractx.ErrPersistence, name, err)
	}
	if len(records) <= 1 {
		return nil, fmt.Errorf("%w: %s has no data rows", contractx.ErrValidation, name)
	}
	return records[1:], nil
}
