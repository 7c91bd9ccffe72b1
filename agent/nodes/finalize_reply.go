package pipelinenode

import (
	"fmt"
	"strings"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := strings.TrimSpace(in.Redacted)
	if reply == "" {
		if strings.TrimSpace(in.RawResult) == "" {
			return GraphOutput{}, fmt.Errorf("%w: handler returned empty response", contractx.ErrValidation)
		}
		// Redaction removed every line. The raw result was all internal
		// detail, so acknowledge without exposing any of it.
		reply = "Your request has been processed. Our team will follow up with the details."
	}
	return GraphOutput{
		RequestID: in.RequestID,
		Intent:    in.Intent,
		Reply:     reply,
	}, nil
}
