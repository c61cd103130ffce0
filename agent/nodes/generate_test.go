package nodes

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/naruebet/shopchat/agent/contract"
)

func generateState() *GraphState {
	return &GraphState{
		Req:      contractx.ChatRequest{Message: "any sneakers in stock?"},
		Now:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Session:  &contractx.Session{SessionID: "chatsession_20240601_abcdefabcdef"},
		Messages: []*schema.Message{schema.SystemMessage("assist"), schema.UserMessage("any sneakers in stock?")},
	}
}

func TestGenerateWithoutToolCalls(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{responses: []*schema.Message{
		textResponse("We have plenty of sneakers.", &schema.TokenUsage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120}),
	}}
	runner := &recordingRunner{}

	out, err := Generate(context.Background(), generateState(), model, model, runnerFactory(runner))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out.Reply != "We have plenty of sneakers." {
		t.Errorf("reply = %q", out.Reply)
	}
	if len(out.Invocations) != 0 {
		t.Errorf("invocations = %v, want none", out.Invocations)
	}
	if out.Usage.TotalTokens != 120 {
		t.Errorf("usage = %+v, want 120 total", out.Usage)
	}
	if !runner.closed {
		t.Errorf("runner not closed")
	}
}

func TestGenerateExecutesToolsInOrder(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{responses: []*schema.Message{
		toolCallResponse(&schema.TokenUsage{PromptTokens: 100, CompletionTokens: 10, TotalTokens: 110},
			toolCall("call_1", "search_products", `{"search":"sneakers"}`),
			toolCall("call_2", "get_vouchers", ""),
		),
		textResponse("Found sneakers, and there is a voucher too.", &schema.TokenUsage{PromptTokens: 200, CompletionTokens: 30, TotalTokens: 230}),
	}}
	runner := &recordingRunner{outcomes: map[string]contractx.ToolOutcome{
		"search_products": {Success: true, Data: map[string]any{"items": []any{}}},
	}}

	out, err := Generate(context.Background(), generateState(), model, model, runnerFactory(runner))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got, want := strings.Join(runner.executed, ","), "search_products,get_vouchers"; got != want {
		t.Errorf("execution order = %q, want %q", got, want)
	}
	if len(out.Invocations) != 2 {
		t.Fatalf("invocations len = %d, want 2", len(out.Invocations))
	}
	if got := out.Invocations[0].Arguments["search"]; got != "sneakers" {
		t.Errorf("first invocation args = %v", out.Invocations[0].Arguments)
	}
	if out.Usage.TotalTokens != 340 {
		t.Errorf("usage total = %d, want accumulated 340", out.Usage.TotalTokens)
	}

	// Second round's input must carry the assistant turn plus one tool
	// message per call, correlated by call id.
	second := model.calls[1]
	toolMsgs := 0
	for _, msg := range second {
		if msg.Role == schema.Tool {
			toolMsgs++
			if msg.ToolCallID != "call_1" && msg.ToolCallID != "call_2" {
				t.Errorf("tool message call id = %q", msg.ToolCallID)
			}
		}
	}
	if toolMsgs != 2 {
		t.Errorf("tool messages in second round = %d, want 2", toolMsgs)
	}
	if !runner.closed {
		t.Errorf("runner not closed")
	}
}

func TestGenerateRoundCapForcesFinalAnswer(t *testing.T) {
	t.Parallel()

	var responses []*schema.Message
	for i := 0; i < maxToolRounds; i++ {
		responses = append(responses, toolCallResponse(
			&schema.TokenUsage{PromptTokens: 10, CompletionTokens: 1, TotalTokens: 11},
			toolCall("loop", "get_categories", ""),
		))
	}
	toolModel := &scriptedModel{responses: responses}
	finalModel := &scriptedModel{responses: []*schema.Message{
		textResponse("Here is what I found so far.", &schema.TokenUsage{PromptTokens: 50, CompletionTokens: 9, TotalTokens: 59}),
	}}
	runner := &recordingRunner{}

	out, err := Generate(context.Background(), generateState(), toolModel, finalModel, runnerFactory(runner))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out.Reply != "Here is what I found so far." {
		t.Errorf("reply = %q, want forced final answer", out.Reply)
	}
	if len(toolModel.calls) != maxToolRounds {
		t.Errorf("tool model calls = %d, want %d", len(toolModel.calls), maxToolRounds)
	}
	if len(finalModel.calls) != 1 {
		t.Errorf("final model calls = %d, want 1", len(finalModel.calls))
	}
	if len(runner.executed) != maxToolRounds {
		t.Errorf("tool executions = %d, want %d", len(runner.executed), maxToolRounds)
	}
	if got, want := out.Usage.TotalTokens, maxToolRounds*11+59; got != want {
		t.Errorf("usage total = %d, want %d", got, want)
	}
	if !runner.closed {
		t.Errorf("runner not closed")
	}
}

func TestGenerateToleratesMissingUsageMetadata(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{responses: []*schema.Message{
		toolCallResponse(nil, toolCall("c1", "get_brands", "")),
		textResponse("done", nil),
	}}
	runner := &recordingRunner{}

	out, err := Generate(context.Background(), generateState(), model, model, runnerFactory(runner))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !out.Usage.IsZero() {
		t.Errorf("usage = %+v, want zero when model reports none", out.Usage)
	}
}

func TestGenerateMalformedToolArguments(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{responses: []*schema.Message{
		toolCallResponse(nil, toolCall("c1", "search_products", `{"search": broken`)),
		textResponse("recovered", nil),
	}}
	runner := &recordingRunner{}

	out, err := Generate(context.Background(), generateState(), model, model, runnerFactory(runner))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(out.Invocations) != 1 {
		t.Fatalf("invocations len = %d, want 1", len(out.Invocations))
	}
	if len(out.Invocations[0].Arguments) != 0 {
		t.Errorf("arguments = %v, want empty map for malformed JSON", out.Invocations[0].Arguments)
	}
	if out.Reply != "recovered" {
		t.Errorf("reply = %q", out.Reply)
	}
}

func TestGenerateModelFailureClosesRunner(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{responses: nil}
	runner := &recordingRunner{}

	_, err := Generate(context.Background(), generateState(), model, model, runnerFactory(runner))
	if err == nil {
		t.Fatalf("Generate() error = nil, want model failure")
	}
	if !runner.closed {
		t.Errorf("runner not closed on error path")
	}
}
