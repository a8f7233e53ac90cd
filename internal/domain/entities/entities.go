// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

import "time"

// FAQEntry is one row of the support knowledge corpus.
// This is a core entity - no knowledge of storage or embedding models.
type FAQEntry struct {
	Question string
	Answer   string
	Intent   string // optional topic label carried from the corpus file
}

// Corpus is the fixed set of FAQ entries loaded at startup.
// Immutable once built; a reload produces a new Corpus, never mutates one.
type Corpus struct {
	Entries []FAQEntry
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// Questions returns the question column, aligned by index with Entries.
func (c *Corpus) Questions() []string {
	qs := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		qs[i] = e.Question
	}
	return qs
}

// MatchSource identifies which pipeline stage produced a reply.
type MatchSource string

const (
	SourceGreeting    MatchSource = "greeting"
	SourceRule        MatchSource = "rule"
	SourceBusiness    MatchSource = "business"
	SourceSemantic    MatchSource = "semantic"
	SourceFallback    MatchSource = "fallback"
	SourceUnavailable MatchSource = "unavailable" // semantic index missing, degraded notice served
)

// MatchResult is the pipeline's output for one query.
// A fallback result is a valid terminal state, not an error.
type MatchResult struct {
	Reply  string
	Source MatchSource
	// Score is the cosine similarity for semantic matches, zero otherwise.
	Score float64
}

// ChatMessage represents one transcript turn.
type ChatMessage struct {
	Sender    string // "user" or "bot"
	Text      string
	Timestamp time.Time
}

// SessionSummary describes one chat session for the admin view.
type SessionSummary struct {
	SessionID    string
	CreatedAt    time.Time
	LastActivity time.Time
	MessageCount int
}
