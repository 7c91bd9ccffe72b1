package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
	nodex "github.com/kchia/paperflow-ai/agent/nodes"
)

func (o *Orchestrator) compileHandleRequestGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, o.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("classify_intent",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ClassifyIntent(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify_intent: %w", err)
	}

	handlerNodes := []string{"handle_inventory", "handle_quoting", "handle_sales", "handle_general"}
	for _, name := range handlerNodes {
		if err := graph.AddLambdaNode(name,
			compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
				return nodex.DispatchHandler(ctx, in, o.handlers, o.responder)
			}),
		); err != nil {
			return nil, fmt.Errorf("add node %s: %w", name, err)
		}
	}

	if err := graph.AddLambdaNode("redact_response",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RedactResponse(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node redact_response: %w", err)
	}

	if err := graph.AddLambdaNode("write_audit",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.WriteAudit(ctx, in, o.audit)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node write_audit: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
			}
			switch in.Intent {
			case contractx.IntentInventoryQuery:
				return "handle_inventory", nil
			case contractx.IntentQuoteRequest:
				return "handle_quoting", nil
			case contractx.IntentOrderPlacement:
				return "handle_sales", nil
			default:
				return "handle_general", nil
			}
		},
		map[string]bool{
			"handle_inventory": true,
			"handle_quoting":   true,
			"handle_sales":     true,
			"handle_general":   true,
		},
	)

	if err := graph.AddEdge(compose.START, "validate_request"); err != nil {
		return nil, fmt.Errorf("add edge start->validate_request: %w", err)
	}
	if err := graph.AddEdge("validate_request", "classify_intent"); err != nil {
		return nil, fmt.Errorf("add edge validate_request->classify_intent: %w", err)
	}
	if err := graph.AddBranch("classify_intent", branch); err != nil {
		return nil, fmt.Errorf("add intent branch: %w", err)
	}
	for _, name := range handlerNodes {
		if err := graph.AddEdge(name, "redact_response"); err != nil {
			return nil, fmt.Errorf("add edge %s->redact_response: %w", name, err)
		}
	}

	edges := [][2]string{
		{"redact_response", "write_audit"},
		{"write_audit", "finalize_reply"},
		{"finalize_reply", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.handle_request"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}
