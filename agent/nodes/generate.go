package nodes

import (
	"context"
	"encoding/json"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/naruebet/shopchat/agent/contract"
)

// maxToolRounds bounds how many times one turn may go back to the model
// with tool results before the answer is forced.
const maxToolRounds = 5

// Generate runs the tool-calling loop. Each round asks the tool-bound
// model for a response; tool calls are executed in the order the model
// emitted them and their results fed back. When the round budget is
// spent, one last call goes to the unbound model so the turn always
// ends in text.
func Generate(
	ctx context.Context,
	in *GraphState,
	toolModel einomodel.ToolCallingChatModel,
	finalModel einomodel.ToolCallingChatModel,
	newRunner func(contractx.ChatRequest) (contractx.ToolRunner, error),
) (*GraphState, error) {
	runner, err := newRunner(in.Req)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	messages := in.Messages
	for round := 0; ; round++ {
		if round == maxToolRounds {
			resp, err := finalModel.Generate(ctx, messages)
			if err != nil {
				return nil, fmt.Errorf("%w: final generate: %v", contractx.ErrModelInvoke, err)
			}
			in.Usage.Add(usageOf(resp))
			in.Reply = resp.Content
			return in, nil
		}

		resp, err := toolModel.Generate(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("%w: generate round %d: %v", contractx.ErrModelInvoke, round, err)
		}
		in.Usage.Add(usageOf(resp))

		if len(resp.ToolCalls) == 0 {
			in.Reply = resp.Content
			return in, nil
		}

		messages = append(messages, resp)
		for _, call := range resp.ToolCalls {
			args := decodeCallArguments(call)
			log.Info().
				Str("tool", call.Function.Name).
				Str("session_id", in.Session.SessionID).
				Int("round", round).
				Msg("executing tool")

			outcome := runner.Execute(ctx, call.Function.Name, args)
			in.Invocations = append(in.Invocations, contractx.ToolInvocation{
				Tool:      call.Function.Name,
				Arguments: args,
				Result:    outcome,
			})
			messages = append(messages, schema.ToolMessage(encodeOutcome(outcome), call.ID))
		}
	}
}

func decodeCallArguments(call schema.ToolCall) map[string]any {
	args := map[string]any{}
	raw := call.Function.Arguments
	if raw == "" {
		return args
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		log.Warn().Str("tool", call.Function.Name).Err(err).Msg("malformed tool arguments")
		return map[string]any{}
	}
	return args
}

func encodeOutcome(outcome contractx.ToolOutcome) string {
	payload, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":%q}`, err.Error())
	}
	return string(payload)
}

// usageOf reads token accounting off a model response. Responses with
// no metadata count as zero rather than failing the turn.
func usageOf(msg *schema.Message) contractx.TokenUsage {
	if msg == nil || msg.ResponseMeta == nil || msg.ResponseMeta.Usage == nil {
		return contractx.TokenUsage{}
	}
	u := msg.ResponseMeta.Usage
	return contractx.TokenUsage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}
