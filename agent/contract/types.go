package contract

import "time"

// Message roles as stored in history. The model collaborator maps "model"
// onto its own assistant role when building requests.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatRequest is one inbound user turn. SessionID is optional; an empty or
// unknown id starts a fresh session. AuthToken and CustomerID come from the
// caller's bearer credential and are optional for guest traffic.
type ChatRequest struct {
	Message    string `json:"message"`
	SessionID  string `json:"session_id,omitempty"`
	AuthToken  string `json:"-"`
	CustomerID *int64 `json:"-"`
}

// ChatResult is the engine's answer for one turn. ToolCalls and Products
// are nil when the turn involved no tool executions or yielded no products.
type ChatResult struct {
	SessionID string           `json:"session_id"`
	Response  string           `json:"response"`
	ToolCalls []ToolInvocation `json:"tool_calls,omitempty"`
	Products  []map[string]any `json:"products,omitempty"`
	Usage     TokenUsage       `json:"token_usage"`
	CreatedAt time.Time        `json:"created_at"`
}

// TokenUsage accumulates prompt/completion/total counts across every model
// call made while answering a single turn.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add accumulates another model call's usage. Missing usage metadata is
// represented by the zero value and accumulates as zero.
func (u *TokenUsage) Add(other TokenUsage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// IsZero reports whether no usage was recorded.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}

// ToolInvocation records one tool execution requested by the model during a
// turn. Held in memory only; returned to the caller, never persisted.
type ToolInvocation struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
	Result    ToolOutcome    `json:"result"`
}

// ToolOutcome is the uniform envelope every tool execution resolves to:
// either a data payload or an error message, never a raw panic.
type ToolOutcome struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ExecutionContext is the per-turn bundle handed to the tool runner: where
// the e-commerce API lives and on whose behalf calls are made.
type ExecutionContext struct {
	BaseURL    string
	AuthToken  string
	CustomerID *int64
}

// Session is chat session metadata as exposed by the engine.
type Session struct {
	SessionID  string    `json:"session_id"`
	CustomerID *int64    `json:"customer_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Message is one persisted history entry. Sequence is assigned by the
// store in arrival order and is strictly increasing per session.
type Message struct {
	Sequence   int64       `json:"sequence"`
	SessionID  string      `json:"session_id"`
	Role       string      `json:"role"`
	Content    string      `json:"content"`
	TokenUsage *TokenUsage `json:"token_usage,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// SessionHistory is a session plus its full ordered message log.
type SessionHistory struct {
	Session  Session   `json:"session"`
	Messages []Message `json:"messages"`
}
