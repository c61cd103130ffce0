package contract

import "context"

// HistoryStore is the persistence contract for sessions and their
// append-only message logs. Deletion authorization is enforced by the
// calling layer, not the store.
type HistoryStore interface {
	CreateSession(ctx context.Context, customerID *int64) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	GetOrCreateSession(ctx context.Context, sessionID string, customerID *int64) (*Session, error)
	AppendMessage(ctx context.Context, sessionID, role, content string, usage *TokenUsage) (*Message, error)
	RecentContext(ctx context.Context, sessionID string, limit int) ([]Message, error)
	SessionHistory(ctx context.Context, sessionID string) ([]Message, error)
	SessionsForCustomer(ctx context.Context, customerID int64, limit int) ([]Session, error)
	DeleteSession(ctx context.Context, sessionID string) (bool, error)
}

// ToolRunner executes tools against the e-commerce collaborator for the
// duration of one turn. Close must be called on every exit path.
type ToolRunner interface {
	Execute(ctx context.Context, tool string, args map[string]any) ToolOutcome
	Close()
}

// ToolRunnerFactory builds a ToolRunner scoped to one turn's execution
// context.
type ToolRunnerFactory func(ec ExecutionContext) (ToolRunner, error)
