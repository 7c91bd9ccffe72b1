package store

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

type AuditLog struct {
	db  *bun.DB
	now func() time.Time
}

var _ contractx.AuditLog = (*AuditLog)(nil)

func NewAuditLog(db *bun.DB) *AuditLog {
	return &AuditLog{db: db, now: time.Now}
}

func (s *AuditLog) Append(ctx context.Context, rec contractx.AuditRecord) error {
	row := &AuditRecord{
		RequestID:        rec.RequestID,
		RequestText:      rec.RequestText,
		Intent:           string(rec.Intent),
		Handler:          rec.Handler,
		RawResult:        rec.RawResult,
		RedactedResponse: rec.RedactedResponse,
		AsOfDate:         rec.AsOf.Format(DateLayout),
		CreatedAt:        s.now().UTC().Unix(),
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("%w: append audit record %s: %v", contractx.ErrPersistence, rec.RequestID, err)
	}
	return nil
}
