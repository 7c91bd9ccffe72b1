package pipelinenode

import (
	"fmt"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
	redactx "github.com/kchia/paperflow-ai/agent/redact"
)

// RedactResponse strips internal fields from the handler's raw result
// before anything customer-facing happens. The raw result stays on the
// state for the audit row.
func RedactResponse(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Redacted = redactx.Customer(in.RawResult)
	return in, nil
}
