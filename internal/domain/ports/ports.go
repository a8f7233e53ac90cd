// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"

	"github.com/datadecoders/shopbot-go/internal/domain/entities"
)

// EmbeddingService generates vector embeddings for text.
// Interface Segregation: Only embedding responsibility, nothing else.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// CorpusLoader reads the FAQ corpus from its backing file.
type CorpusLoader interface {
	// Load reads the corpus from the given path.
	Load(ctx context.Context, path string) (*entities.Corpus, error)
}

// TranscriptStore persists conversation turns keyed by session.
// Callers treat writes as best-effort: a failed save must never block a reply.
type TranscriptStore interface {
	// SaveTurn appends one user/bot exchange to a session's transcript.
	SaveTurn(ctx context.Context, sessionID, userText, botText string) error

	// History returns a session's messages ordered by time, up to limit.
	History(ctx context.Context, sessionID string, limit int) ([]entities.ChatMessage, error)

	// Sessions lists all known sessions, most recently active first.
	Sessions(ctx context.Context) ([]entities.SessionSummary, error)

	// Close releases the underlying storage handle.
	Close() error
}

// CorpusWatcher monitors the corpus file for changes.
type CorpusWatcher interface {
	// Watch starts monitoring the file and emits an event per relevant change.
	Watch(ctx context.Context, path string) (<-chan CorpusEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// CorpusEvent signals that the corpus file changed on disk.
type CorpusEvent struct {
	Path string
}
