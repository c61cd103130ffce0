package nodes

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/naruebet/shopchat/agent/contract"
)

// ResolveSession attaches the conversation's session, minting one when
// the request carries no id or an id the store does not know.
func ResolveSession(ctx context.Context, in *GraphState, store contractx.HistoryStore) (*GraphState, error) {
	session, err := store.GetOrCreateSession(ctx, in.Req.SessionID, in.Req.CustomerID)
	if err != nil {
		return nil, err
	}
	if in.Req.SessionID != "" && session.SessionID != in.Req.SessionID {
		log.Debug().
			Str("requested", in.Req.SessionID).
			Str("minted", session.SessionID).
			Msg("unknown session id, started a new conversation")
	}
	in.Session = session
	return in, nil
}
