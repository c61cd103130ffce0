// Package nodes holds the orchestration step functions composed into
// the engine's message graph. Each node takes the graph state, does one
// thing, and hands the state on.
package nodes

import (
	"time"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/naruebet/shopchat/agent/contract"
)

type GraphInput struct {
	Req contractx.ChatRequest
}

type GraphOutput struct {
	Result contractx.ChatResult
}

// GraphState is the single mutable value threaded through the message
// graph.
type GraphState struct {
	Req contractx.ChatRequest
	Now time.Time

	Session  *contractx.Session
	Messages []*schema.Message

	Reply       string
	Invocations []contractx.ToolInvocation
	Usage       contractx.TokenUsage
	Products    []map[string]any
}
