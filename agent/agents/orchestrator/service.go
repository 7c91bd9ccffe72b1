// Package orchestrator runs each customer request through the full
// pipeline: validate, classify, dispatch to a specialist, redact
// internal fields, audit, reply.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
	nodex "github.com/kchia/paperflow-ai/agent/nodes"
)

var ErrInvalidRequest = nodex.ErrInvalidRequest

// Outcome is one fully processed request.
type Outcome struct {
	RequestID string
	Intent    contractx.Intent
	Reply     string
}

type Orchestrator struct {
	handlers  contractx.Registry
	audit     contractx.AuditLog
	responder contractx.Responder

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

// New compiles the request pipeline. The audit log and responder are
// optional; handlers are not.
func New(
	handlers contractx.Registry,
	audit contractx.AuditLog,
	responder contractx.Responder,
) (*Orchestrator, error) {
	if handlers == nil {
		return nil, errors.New("handler registry is required")
	}

	o := &Orchestrator{
		handlers:  handlers,
		audit:     audit,
		responder: responder,
		now:       time.Now,
	}

	graphRunner, err := o.compileHandleRequestGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleRequest processes one free-text request as of a business date.
// A zero asOf means the current date.
func (o *Orchestrator) HandleRequest(ctx context.Context, text string, asOf time.Time) (Outcome, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		RequestID: uuid.NewString(),
		Text:      text,
		AsOf:      asOf,
	})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		RequestID: out.RequestID,
		Intent:    out.Intent,
		Reply:     out.Reply,
	}, nil
}
