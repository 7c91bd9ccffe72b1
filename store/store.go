// Package store persists the inventory catalog, the append-only
// transaction ledger, quote history, and the per-request audit log in
// SQLite through bun.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

// Open opens (creating if needed) the SQLite database at path. Use
// "file::memory:?cache=shared" for an in-memory store.
func Open(path string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite at %s: %v", contractx.ErrPersistence, path, err)
	}
	// Sequential request-at-a-time processing; a single connection
	// avoids SQLite writer contention entirely.
	sqldb.SetMaxOpenConns(1)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// InitSchema creates all tables if they do not exist yet.
func InitSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*InventoryItem)(nil),
		(*Transaction)(nil),
		(*Quote)(nil),
		(*QuoteRequest)(nil),
		(*AuditRecord)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("%w: create table for %T: %v", contractx.ErrPersistence, model, err)
		}
	}
	return nil
}
