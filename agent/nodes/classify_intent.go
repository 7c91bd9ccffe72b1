package pipelinenode

import (
	"fmt"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
	intentx "github.com/kchia/paperflow-ai/agent/intent"
)

func ClassifyIntent(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Intent = intentx.Classify(in.Text)
	return in, nil
}
