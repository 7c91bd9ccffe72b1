package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

// QuoteHistory reads the seed-loaded quote archive; nothing writes to it
// at runtime.
type QuoteHistory struct {
	db *bun.DB
}

var _ contractx.QuoteHistory = (*QuoteHistory)(nil)

func NewQuoteHistory(db *bun.DB) *QuoteHistory {
	return &QuoteHistory{db: db}
}

// Search returns quotes whose explanation, job type, or event type
// contains any of the given terms, most recent order date first.
func (s *QuoteHistory) Search(ctx context.Context, terms []string, limit int) ([]contractx.QuoteRecord, error) {
	cleaned := make([]string, 0, len(terms))
	for _, term := range terms {
		if t := strings.TrimSpace(term); t != "" {
			cleaned = append(cleaned, strings.ToLower(t))
		}
	}
	if len(cleaned) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	var rows []Quote
	q := s.db.NewSelect().Model(&rows)
	q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, term := range cleaned {
			pattern := "%" + term + "%"
			q = q.WhereOr("lower(quote_explanation) LIKE ?", pattern).
				WhereOr("lower(job_type) LIKE ?", pattern).
				WhereOr("lower(event_type) LIKE ?", pattern)
		}
		return q
	})
	if err := q.Order("order_date DESC").Limit(limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: search quotes: %v", contractx.ErrPersistence, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	responses, err := s.archivedResponses(ctx, rows)
	if err != nil {
		return nil, err
	}

	records := make([]contractx.QuoteRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, contractx.QuoteRecord{
			RequestID:   row.RequestID,
			TotalAmount: row.TotalAmount,
			Explanation: row.QuoteExplanation,
			OrderDate:   row.OrderDate,
			JobType:     row.JobType,
			OrderSize:   row.OrderSize,
			EventType:   row.EventType,
			Response:    responses[row.RequestID],
		})
	}
	return records, nil
}

func (s *QuoteHistory) archivedResponses(ctx context.Context, rows []Quote) (map[int64]string, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.RequestID)
	}

	var archived []QuoteRequest
	err := s.db.NewSelect().
		Model(&archived).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load archived quote responses: %v", contractx.ErrPersistence, err)
	}

	responses := make(map[int64]string, len(archived))
	for _, a := range archived {
		responses[a.ID] = a.Response
	}
	return responses, nil
}
