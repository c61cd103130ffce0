package nodes

import (
	"context"

	contractx "github.com/naruebet/shopchat/agent/contract"
)

// PersistReply appends the assistant turn with its accumulated token
// usage. Usage is stored only when the model reported any.
func PersistReply(ctx context.Context, in *GraphState, store contractx.HistoryStore) (*GraphState, error) {
	var usage *contractx.TokenUsage
	if !in.Usage.IsZero() {
		u := in.Usage
		usage = &u
	}
	if _, err := store.AppendMessage(ctx, in.Session.SessionID, contractx.RoleModel, in.Reply, usage); err != nil {
		return nil, err
	}
	return in, nil
}
