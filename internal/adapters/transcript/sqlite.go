// Package transcript provides the SQLite chat-log adapter.
// It implements ports.TranscriptStore; the pipeline never reads it, only
// the HTTP layer does, and writes are best-effort by contract.
package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/datadecoders/shopbot-go/internal/domain/entities"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore persists conversation turns keyed by session.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the chat-history database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		user_message TEXT,
		bot_message TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_chats_session ON chats(session_id);
	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_activity DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveTurn appends one user/bot exchange and bumps the session's activity.
func (s *SQLiteStore) SaveTurn(ctx context.Context, sessionID, userText, botText string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (session_id) VALUES (?)
		ON CONFLICT(session_id) DO UPDATE SET last_activity = CURRENT_TIMESTAMP`,
		sessionID)
	if err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO chats (session_id, user_message, bot_message) VALUES (?, ?, ?)`,
		sessionID, userText, botText)
	if err != nil {
		return fmt.Errorf("inserting chat turn: %w", err)
	}

	return tx.Commit()
}

// History returns a session's messages ordered by time. Each stored row is
// one exchange, flattened to a user message followed by a bot message.
func (s *SQLiteStore) History(ctx context.Context, sessionID string, limit int) ([]entities.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_message, bot_message, timestamp
		FROM chats
		WHERE session_id = ?
		ORDER BY timestamp ASC, id ASC
		LIMIT ?`,
		sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var messages []entities.ChatMessage
	for rows.Next() {
		var msg struct {
			user, bot sql.NullString
			ts        sql.NullTime
		}
		if err := rows.Scan(&msg.user, &msg.bot, &msg.ts); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if msg.user.Valid && msg.user.String != "" {
			messages = append(messages, entities.ChatMessage{Sender: "user", Text: msg.user.String, Timestamp: msg.ts.Time})
		}
		if msg.bot.Valid && msg.bot.String != "" {
			messages = append(messages, entities.ChatMessage{Sender: "bot", Text: msg.bot.String, Timestamp: msg.ts.Time})
		}
	}
	return messages, rows.Err()
}

// Sessions lists all known sessions with message counts, most recently
// active first.
func (s *SQLiteStore) Sessions(ctx context.Context) ([]entities.SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.session_id, s.created_at, s.last_activity, COUNT(c.id)
		FROM sessions s
		LEFT JOIN chats c ON s.session_id = c.session_id
		GROUP BY s.session_id
		ORDER BY s.last_activity DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []entities.SessionSummary
	for rows.Next() {
		var sum entities.SessionSummary
		if err := rows.Scan(&sum.SessionID, &sum.CreatedAt, &sum.LastActivity, &sum.MessageCount); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sessions = append(sessions, sum)
	}
	return sessions, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
