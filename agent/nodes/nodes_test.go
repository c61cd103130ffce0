package nodes

import (
	"context"
	"errors"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/naruebet/shopchat/agent/contract"
)

// scriptedModel replays canned responses in order.
type scriptedModel struct {
	responses []*schema.Message
	calls     [][]*schema.Message
}

func (m *scriptedModel) Generate(_ context.Context, in []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	m.calls = append(m.calls, in)
	if len(m.calls) > len(m.responses) {
		return nil, errors.New("scripted model ran out of responses")
	}
	return m.responses[len(m.calls)-1], nil
}

func (m *scriptedModel) Stream(context.Context, []*schema.Message, ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not scripted")
}

func (m *scriptedModel) WithTools([]*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	return m, nil
}

func textResponse(content string, usage *schema.TokenUsage) *schema.Message {
	msg := schema.AssistantMessage(content, nil)
	if usage != nil {
		msg.ResponseMeta = &schema.ResponseMeta{Usage: usage}
	}
	return msg
}

func toolCallResponse(usage *schema.TokenUsage, calls ...schema.ToolCall) *schema.Message {
	msg := &schema.Message{Role: schema.Assistant, ToolCalls: calls}
	if usage != nil {
		msg.ResponseMeta = &schema.ResponseMeta{Usage: usage}
	}
	return msg
}

func toolCall(id, name, args string) schema.ToolCall {
	return schema.ToolCall{
		ID:       id,
		Function: schema.FunctionCall{Name: name, Arguments: args},
	}
}

// recordingRunner records execution order and reports a fixed outcome
// per tool.
type recordingRunner struct {
	executed []string
	outcomes map[string]contractx.ToolOutcome
	closed   bool
}

func (r *recordingRunner) Execute(_ context.Context, tool string, _ map[string]any) contractx.ToolOutcome {
	r.executed = append(r.executed, tool)
	if out, ok := r.outcomes[tool]; ok {
		return out
	}
	return contractx.ToolOutcome{Success: true, Data: map[string]any{"ok": true}}
}

func (r *recordingRunner) Close() { r.closed = true }

func runnerFactory(r *recordingRunner) func(contractx.ChatRequest) (contractx.ToolRunner, error) {
	return func(contractx.ChatRequest) (contractx.ToolRunner, error) { return r, nil }
}

// memStore is an in-memory HistoryStore for node tests.
type memStore struct {
	sessions map[string]*contractx.Session
	messages map[string][]contractx.Message
	seq      int64
}

func newMemStore() *memStore {
	return &memStore{
		sessions: map[string]*contractx.Session{},
		messages: map[string][]contractx.Message{},
	}
}

func (s *memStore) CreateSession(_ context.Context, customerID *int64) (*contractx.Session, error) {
	session := &contractx.Session{
		SessionID:  fmt.Sprintf("chatsession_20240101_%012d", len(s.sessions)+1),
		CustomerID: customerID,
	}
	s.sessions[session.SessionID] = session
	return session, nil
}

func (s *memStore) GetSession(_ context.Context, sessionID string) (*contractx.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", contractx.ErrSessionNotFound, sessionID)
	}
	return session, nil
}

func (s *memStore) GetOrCreateSession(ctx context.Context, sessionID string, customerID *int64) (*contractx.Session, error) {
	if sessionID != "" {
		if session, ok := s.sessions[sessionID]; ok {
			return session, nil
		}
	}
	return s.CreateSession(ctx, customerID)
}

func (s *memStore) AppendMessage(_ context.Context, sessionID, role, content string, usage *contractx.TokenUsage) (*contractx.Message, error) {
	s.seq++
	msg := contractx.Message{
		Sequence:   s.seq,
		SessionID:  sessionID,
		Role:       role,
		Content:    content,
		TokenUsage: usage,
	}
	s.messages[sessionID] = append(s.messages[sessionID], msg)
	return &msg, nil
}

func (s *memStore) RecentContext(_ context.Context, sessionID string, limit int) ([]contractx.Message, error) {
	all := s.messages[sessionID]
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (s *memStore) SessionHistory(ctx context.Context, sessionID string) ([]contractx.Message, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.messages[sessionID], nil
}

func (s *memStore) SessionsForCustomer(_ context.Context, customerID int64, _ int) ([]contractx.Session, error) {
	var out []contractx.Session
	for _, session := range s.sessions {
		if session.CustomerID != nil && *session.CustomerID == customerID {
			out = append(out, *session)
		}
	}
	return out, nil
}

func (s *memStore) DeleteSession(_ context.Context, sessionID string) (bool, error) {
	if _, ok := s.sessions[sessionID]; !ok {
		return false, nil
	}
	delete(s.sessions, sessionID)
	delete(s.messages, sessionID)
	return true, nil
}

var _ contractx.HistoryStore = (*memStore)(nil)
