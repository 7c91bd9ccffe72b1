package pipelinenode

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

var (
	ErrInvalidRequest   = errors.New("request text is empty")
	ErrInvalidRequestID = errors.New("request id is empty")
)

type GraphInput struct {
	RequestID string
	Text      string
	AsOf      time.Time
}

type GraphOutput struct {
	RequestID string
	Intent    contractx.Intent
	Reply     string
}

type GraphState struct {
	RequestID string
	Text      string
	AsOf      time.Time

	Intent      contractx.Intent
	HandlerName string
	RawResult   string
	Redacted    string
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	requestID := strings.TrimSpace(in.RequestID)
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidRequest
	}

	asOf := in.AsOf
	if asOf.IsZero() {
		asOf = nowFn().UTC()
	}

	return &GraphState{
		RequestID: requestID,
		Text:      text,
		AsOf:      asOf,
	}, nil
}
