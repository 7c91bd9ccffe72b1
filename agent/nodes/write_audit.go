package pipelinenode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

// WriteAudit records the processed request. Audit failure is logged but
// does not fail the request; the customer already has a committed
// outcome by this point.
func WriteAudit(ctx context.Context, in *GraphState, audit contractx.AuditLog) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if audit == nil {
		return in, nil
	}

	err := audit.Append(ctx, contractx.AuditRecord{
		RequestID:        in.RequestID,
		RequestText:      in.Text,
		Intent:           in.Intent,
		Handler:          in.HandlerName,
		RawResult:        in.RawResult,
		RedactedResponse: in.Redacted,
		AsOf:             in.AsOf,
	})
	if err != nil {
		log.Error().Err(err).Str("request_id", in.RequestID).Msg("audit append failed")
	}
	return in, nil
}
