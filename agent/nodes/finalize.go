package nodes

import (
	"fmt"

	contractx "github.com/naruebet/shopchat/agent/contract"
)

func Finalize(in *GraphState) (GraphOutput, error) {
	if in == nil || in.Session == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is incomplete", contractx.ErrValidation)
	}

	return GraphOutput{
		Result: contractx.ChatResult{
			SessionID: in.Session.SessionID,
			Response:  in.Reply,
			ToolCalls: in.Invocations,
			Products:  in.Products,
			Usage:     in.Usage,
			CreatedAt: in.Now,
		},
	}, nil
}
