// Package history persists chat sessions and their append-only message
// logs.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	contractx "github.com/naruebet/shopchat/agent/contract"
)

// ChatSession is one conversation. CustomerID is nil for guest sessions.
type ChatSession struct {
	bun.BaseModel `bun:"table:chat_session"`

	SessionID  string    `bun:"chat_session_id,pk"`
	CustomerID *int64    `bun:"customer_id"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

// ChatMessage is one turn in a session's log. Sequence is assigned by
// the database and orders the log.
type ChatMessage struct {
	bun.BaseModel `bun:"table:chat_message"`

	Sequence   int64                 `bun:"chat_id_sequence,pk,autoincrement"`
	SessionID  string                `bun:"chat_session_id,notnull"`
	Role       string                `bun:"role,notnull"`
	Content    string                `bun:"chat_content,notnull"`
	TokenUsage *contractx.TokenUsage `bun:"token_usage,type:jsonb,nullzero"`
	CreatedAt  time.Time             `bun:"created_at,notnull"`
}

// Store implements contractx.HistoryStore on a relational database.
type Store struct {
	db *bun.DB
}

var _ contractx.HistoryStore = (*Store)(nil)

func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// CreateTables provisions the schema. Idempotent.
func (s *Store) CreateTables(ctx context.Context) error {
	for _, model := range []any{(*ChatSession)(nil), (*ChatMessage)(nil)} {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}

// newSessionID mints a chatsession_YYYYMMDD_xxxxxxxxxxxx identifier.
// The date prefix keeps identifiers scannable in logs and dumps.
func newSessionID() string {
	entropy := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("chatsession_%s_%s", time.Now().UTC().Format("20060102"), entropy[:12])
}

func (s *Store) CreateSession(ctx context.Context, customerID *int64) (*contractx.Session, error) {
	row := &ChatSession{
		SessionID:  newSessionID(),
		CustomerID: customerID,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sessionFromRow(row), nil
}

func (s *Store) GetSession(ctx context.Context, sessionID string) (*contractx.Session, error) {
	row := new(ChatSession)
	err := s.db.NewSelect().Model(row).Where("chat_session_id = ?", sessionID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", contractx.ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}
	return sessionFromRow(row), nil
}

// GetOrCreateSession resolves sessionID to an existing session, minting
// a fresh one when the id is empty or unknown. An unknown id never
// fails the turn.
func (s *Store) GetOrCreateSession(ctx context.Context, sessionID string, customerID *int64) (*contractx.Session, error) {
	if sessionID == "" {
		return s.CreateSession(ctx, customerID)
	}
	session, err := s.GetSession(ctx, sessionID)
	if errors.Is(err, contractx.ErrSessionNotFound) {
		return s.CreateSession(ctx, customerID)
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Store) AppendMessage(ctx context.Context, sessionID, role, content string, usage *contractx.TokenUsage) (*contractx.Message, error) {
	if role != contractx.RoleUser && role != contractx.RoleModel {
		return nil, fmt.Errorf("%w: message role %q", contractx.ErrValidation, role)
	}
	row := &ChatMessage{
		SessionID:  sessionID,
		Role:       role,
		Content:    content,
		TokenUsage: usage,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return messageFromRow(row), nil
}

// RecentContext returns the last limit messages of a session in
// chronological order.
func (s *Store) RecentContext(ctx context.Context, sessionID string, limit int) ([]contractx.Message, error) {
	if limit <= 0 {
		return nil, nil
	}
	var rows []ChatMessage
	err := s.db.NewSelect().Model(&rows).
		Where("chat_session_id = ?", sessionID).
		Order("chat_id_sequence DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select recent messages: %w", err)
	}

	messages := make([]contractx.Message, len(rows))
	for i, row := range rows {
		messages[len(rows)-1-i] = *messageFromRow(&row)
	}
	return messages, nil
}

func (s *Store) SessionHistory(ctx context.Context, sessionID string) ([]contractx.Message, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	var rows []ChatMessage
	err := s.db.NewSelect().Model(&rows).
		Where("chat_session_id = ?", sessionID).
		Order("chat_id_sequence ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select session messages: %w", err)
	}

	messages := make([]contractx.Message, len(rows))
	for i, row := range rows {
		messages[i] = *messageFromRow(&row)
	}
	return messages, nil
}

func (s *Store) SessionsForCustomer(ctx context.Context, customerID int64, limit int) ([]contractx.Session, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []ChatSession
	err := s.db.NewSelect().Model(&rows).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select customer sessions: %w", err)
	}

	sessions := make([]contractx.Session, len(rows))
	for i, row := range rows {
		sessions[i] = *sessionFromRow(&row)
	}
	return sessions, nil
}

// DeleteSession removes a session and its messages atomically. It
// reports false when the session did not exist.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	var deleted bool
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*ChatMessage)(nil)).
			Where("chat_session_id = ?", sessionID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete messages: %w", err)
		}
		res, err := tx.NewDelete().Model((*ChatSession)(nil)).
			Where("chat_session_id = ?", sessionID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func sessionFromRow(row *ChatSession) *contractx.Session {
	return &contractx.Session{
		SessionID:  row.SessionID,
		CustomerID: row.CustomerID,
		CreatedAt:  row.CreatedAt,
	}
}

func messageFromRow(row *ChatMessage) *contractx.Message {
	return &contractx.Message{
		Sequence:   row.Sequence,
		SessionID:  row.SessionID,
		Role:       row.Role,
		Content:    row.Content,
		TokenUsage: row.TokenUsage,
		CreatedAt:  row.CreatedAt,
	}
}
