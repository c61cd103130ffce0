package nodes

import (
	"context"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/naruebet/shopchat/agent/contract"
)

// contextWindow is how many stored messages, newest first, feed the
// model each turn.
const contextWindow = 20

// BuildContext persists the user turn and assembles the model's input:
// the system instruction followed by the session's recent messages. The
// just-persisted user turn arrives through the window, so it is never
// appended twice.
func BuildContext(ctx context.Context, in *GraphState, store contractx.HistoryStore, systemInstruction string) (*GraphState, error) {
	if _, err := store.AppendMessage(ctx, in.Session.SessionID, contractx.RoleUser, in.Req.Message, nil); err != nil {
		return nil, err
	}

	window, err := store.RecentContext(ctx, in.Session.SessionID, contextWindow)
	if err != nil {
		return nil, err
	}

	messages := make([]*schema.Message, 0, len(window)+1)
	messages = append(messages, schema.SystemMessage(systemInstruction))
	for _, msg := range window {
		switch msg.Role {
		case contractx.RoleModel:
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		default:
			messages = append(messages, schema.UserMessage(msg.Content))
		}
	}

	in.Messages = messages
	return in, nil
}
