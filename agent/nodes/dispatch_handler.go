package pipelinenode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

// generalFallback answers requests no specialist claims. Deliberately
// vague about internals; it is shown to the customer as-is unless a
// responder rephrases it.
const generalFallback = "Thank you for reaching out! We supply paper products of all kinds. " +
	"You can ask about stock availability, request a price quote, or place an order. " +
	"How can we help?"

// DispatchHandler routes the classified request to its specialist. The
// general intent never reaches a specialist; it gets the fallback reply,
// optionally rephrased by the responder.
func DispatchHandler(
	ctx context.Context,
	in *GraphState,
	handlers contractx.Registry,
	responder contractx.Responder,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	req := contractx.HandlerRequest{
		RequestID: in.RequestID,
		Text:      in.Text,
		AsOf:      in.AsOf,
	}

	var handler contractx.Handler
	switch in.Intent {
	case contractx.IntentInventoryQuery:
		in.HandlerName = "inventory"
		handler = handlers.Inventory()
	case contractx.IntentQuoteRequest:
		in.HandlerName = "quoting"
		handler = handlers.Quoting()
	case contractx.IntentOrderPlacement:
		in.HandlerName = "sales"
		handler = handlers.Sales()
	default:
		in.HandlerName = "general"
		in.RawResult = generalReply(ctx, responder, in.Text)
		return in, nil
	}

	result, err := handler.Handle(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s handler: %w", in.HandlerName, err)
	}
	in.RawResult = result.Response
	return in, nil
}

// generalReply is best effort: a responder failure falls back to the
// template, never to an error.
func generalReply(ctx context.Context, responder contractx.Responder, text string) string {
	if responder == nil {
		return generalFallback
	}
	reply, err := responder.Rephrase(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("responder rephrase failed, using fallback reply")
		return generalFallback
	}
	if reply == "" {
		return generalFallback
	}
	return reply
}
