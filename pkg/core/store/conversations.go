package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"finagent/pkg/core/agent"
)

// Connect opens a pgx pool from the DATABASE_URL environment variable. The
// calculators themselves are stateless; only advisor conversation history is
// persisted, so a missing database just disables persistence.
func Connect(ctx context.Context) (*pgxpool.Pool, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}

// ConversationRepo persists advisor turns so a session can be reviewed later.
type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

// Close releases the underlying pool.
func (r *ConversationRepo) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Turn is one question/answer exchange in an advisor session.
type Turn struct {
	ID        string           `json:"id"`
	SessionID string           `json:"session_id"`
	Question  string           `json:"question"`
	Answer    string           `json:"answer"`
	ToolCalls []agent.ToolCall `json:"tool_calls,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// SaveTurn stores a completed advisor turn. Tool calls are serialized to
// JSONB so the dispatched calculations stay auditable.
func (r *ConversationRepo) SaveTurn(ctx context.Context, sessionID, question string, answer *agent.Answer) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	toolCallsJSON, err := json.Marshal(answer.ToolCalls)
	if err != nil {
		return fmt.Errorf("failed to marshal tool calls: %w", err)
	}

	query := `
		INSERT INTO advisor_turns (session_id, question, answer, tool_calls)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.pool.Exec(ctx, query, sessionID, question, answer.Text, toolCallsJSON); err != nil {
		return fmt.Errorf("failed to save advisor turn: %w", err)
	}
	return nil
}

// ListTurns returns a session's turns in chronological order.
func (r *ConversationRepo) ListTurns(ctx context.Context, sessionID string) ([]Turn, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id, session_id, question, answer, tool_calls, created_at
		FROM advisor_turns
		WHERE session_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		var toolCallsJSON []byte
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Question, &t.Answer, &toolCallsJSON, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		if len(toolCallsJSON) > 0 {
			if err := json.Unmarshal(toolCallsJSON, &t.ToolCalls); err != nil {
				return nil, fmt.Errorf("failed to decode tool calls: %w", err)
			}
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// RecentSessions lists the most recently active session IDs.
func (r *ConversationRepo) RecentSessions(ctx context.Context, limit int) ([]string, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT session_id
		FROM advisor_turns
		GROUP BY session_id
		ORDER BY MAX(created_at) DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		sessions = append(sessions, id)
	}
	return sessions, rows.Err()
}
