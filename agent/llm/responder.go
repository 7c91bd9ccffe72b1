// Package llm provides the optional model-backed responder for general
// requests. Everything else in the pipeline stays deterministic.
package llm

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
	promptx "github.com/kchia/paperflow-ai/agent/prompt"
)

type Responder struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

var _ contractx.Responder = (*Responder)(nil)

// NewResponder compiles the prompt/model graph for general replies.
func NewResponder(ctx context.Context, chatModel einomodel.BaseChatModel) (*Responder, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("%w: chat model is required", contractx.ErrValidation)
	}

	prompts := promptx.LoadPromptSet()
	runner, err := compileResponderGraph(ctx, chatModel, prompts.General)
	if err != nil {
		return nil, err
	}
	return &Responder{runner: runner}, nil
}

// Rephrase generates a customer-facing reply to a general request. The
// model sees only the customer text, never store internals.
func (r *Responder) Rephrase(ctx context.Context, text string) (string, error) {
	msg, err := r.runner.Invoke(ctx, map[string]any{"input": text})
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return "", fmt.Errorf("%w: model returned nil message", contractx.ErrModelInvoke)
	}
	return strings.TrimSpace(msg.Content), nil
}

func compileResponderGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add responder prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add responder model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add responder edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add responder edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add responder edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("responder.general_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile responder graph: %w", err)
	}
	return runner, nil
}
