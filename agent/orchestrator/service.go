// Package orchestrator exposes the conversation engine: one compiled
// message graph plus the session surface around it.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	contractx "github.com/naruebet/shopchat/agent/contract"
	nodex "github.com/naruebet/shopchat/agent/nodes"
	promptx "github.com/naruebet/shopchat/agent/prompt"
	toolx "github.com/naruebet/shopchat/agent/tool"
)

// Config is the engine configuration.
type Config struct {
	EcomBaseURL      string `envconfig:"ECOM_BASE_URL" split_words:"true" required:"true"`
	SessionListLimit int    `envconfig:"SESSION_LIST_LIMIT" split_words:"true" default:"50"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.EcomBaseURL) == "" {
		return fmt.Errorf("%w: ecom base url is required", contractx.ErrValidation)
	}
	return nil
}

// Engine drives shopping conversations. It is safe for concurrent use;
// per-turn state lives in the graph, not on the engine.
type Engine struct {
	store   contractx.HistoryStore
	runners contractx.ToolRunnerFactory

	toolModel  einomodel.ToolCallingChatModel
	finalModel einomodel.ToolCallingChatModel

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	ecomBaseURL      string
	sessionListLimit int
	instruction      string

	now func() time.Time
}

func New(
	store contractx.HistoryStore,
	chatModel einomodel.ToolCallingChatModel,
	runners contractx.ToolRunnerFactory,
	cfg Config,
) (*Engine, error) {
	if store == nil {
		return nil, errors.New("history store is required")
	}
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if runners == nil {
		return nil, errors.New("tool runner factory is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	toolModel, err := chatModel.WithTools(toolx.Catalog())
	if err != nil {
		return nil, fmt.Errorf("%w: bind tool catalog: %v", contractx.ErrModelInvoke, err)
	}

	limit := cfg.SessionListLimit
	if limit <= 0 {
		limit = 50
	}

	e := &Engine{
		store:            store,
		runners:          runners,
		toolModel:        toolModel,
		finalModel:       chatModel,
		ecomBaseURL:      strings.TrimRight(strings.TrimSpace(cfg.EcomBaseURL), "/"),
		sessionListLimit: limit,
		instruction:      promptx.Assistant(),
		now:              time.Now,
	}

	graphRunner, err := e.compileSendMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	e.graphRunner = graphRunner

	return e, nil
}

// SendMessage runs one conversation turn end to end.
func (e *Engine) SendMessage(ctx context.Context, req contractx.ChatRequest) (*contractx.ChatResult, error) {
	out, err := e.graphRunner.Invoke(ctx, nodex.GraphInput{Req: req})
	if err != nil {
		return nil, err
	}
	result := out.Result
	return &result, nil
}

// CreateSession starts an empty conversation.
func (e *Engine) CreateSession(ctx context.Context, customerID *int64) (*contractx.Session, error) {
	return e.store.CreateSession(ctx, customerID)
}

// GetSessionHistory returns a session with its full message log in
// chronological order.
func (e *Engine) GetSessionHistory(ctx context.Context, sessionID string) (*contractx.SessionHistory, error) {
	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	messages, err := e.store.SessionHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &contractx.SessionHistory{Session: *session, Messages: messages}, nil
}

// ListSessions returns a customer's sessions, newest first.
func (e *Engine) ListSessions(ctx context.Context, customerID int64) ([]contractx.Session, error) {
	return e.store.SessionsForCustomer(ctx, customerID, e.sessionListLimit)
}

// DeleteSession removes a session and its messages. A session owned by
// one customer cannot be deleted on behalf of another; guest sessions
// are deletable by anyone holding the id.
func (e *Engine) DeleteSession(ctx context.Context, sessionID string, requester *int64) error {
	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.CustomerID != nil && requester != nil && *session.CustomerID != *requester {
		return fmt.Errorf("%w: session %s belongs to another customer", contractx.ErrForbidden, sessionID)
	}

	deleted, err := e.store.DeleteSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", contractx.ErrSessionNotFound, sessionID)
	}
	return nil
}

func (e *Engine) runnerFor(req contractx.ChatRequest) (contractx.ToolRunner, error) {
	return e.runners(contractx.ExecutionContext{
		BaseURL:    e.ecomBaseURL,
		AuthToken:  req.AuthToken,
		CustomerID: req.CustomerID,
	})
}
