package nodes

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/naruebet/shopchat/agent/contract"
)

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	req := in.Req
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return nil, fmt.Errorf("%w: message is empty", contractx.ErrValidation)
	}
	req.SessionID = strings.TrimSpace(req.SessionID)

	return &GraphState{
		Req: req,
		Now: nowFn().UTC(),
	}, nil
}
