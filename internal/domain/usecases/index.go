// Package usecases - index.go builds and queries the corpus embedding index.
package usecases

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/datadecoders/shopbot-go/internal/domain/entities"
	"github.com/datadecoders/shopbot-go/internal/domain/ports"
)

// ErrIndexUnavailable is returned when the embedding index has not been
// built, typically because the corpus or the embedding model failed to load.
var ErrIndexUnavailable = errors.New("semantic index unavailable")

// semanticIndex pairs a corpus with its embedding matrix. vectors[i] is
// the embedding of corpus.Entries[i].Question; the two are always built
// together and swapped together.
type semanticIndex struct {
	corpus  *entities.Corpus
	vectors [][]float32
}

// IndexUseCase owns the corpus embedding matrix: builds it at startup,
// rebuilds it on corpus reload, and answers nearest-neighbour queries.
// Reads are lock-cheap so concurrent request handlers never block on a
// rebuild in progress.
type IndexUseCase struct {
	embedder ports.EmbeddingService
	log      zerolog.Logger

	mu  sync.RWMutex
	idx *semanticIndex
}

// NewIndexUseCase creates an IndexUseCase with no index built yet.
func NewIndexUseCase(embedder ports.EmbeddingService, log zerolog.Logger) *IndexUseCase {
	return &IndexUseCase{embedder: embedder, log: log}
}

// Build embeds every corpus question and atomically swaps in the new
// index. On failure the previous index (if any) stays in service.
func (uc *IndexUseCase) Build(ctx context.Context, corpus *entities.Corpus) error {
	if corpus == nil || corpus.Len() == 0 {
		return fmt.Errorf("building index: empty corpus")
	}

	vectors, err := uc.embedder.EmbedBatch(ctx, corpus.Questions())
	if err != nil {
		return fmt.Errorf("embedding corpus questions: %w", err)
	}
	if len(vectors) != corpus.Len() {
		return fmt.Errorf("embedding count mismatch: %d vectors for %d questions", len(vectors), corpus.Len())
	}

	uc.mu.Lock()
	uc.idx = &semanticIndex{corpus: corpus, vectors: vectors}
	uc.mu.Unlock()

	uc.log.Info().Int("entries", corpus.Len()).Msg("semantic index built")
	return nil
}

// Available reports whether semantic search can serve queries.
func (uc *IndexUseCase) Available() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.idx != nil
}

// Search embeds the query and returns the corpus entry with the highest
// cosine similarity, along with that similarity. Ties resolve to the
// lowest index. Thresholding is the caller's decision.
func (uc *IndexUseCase) Search(ctx context.Context, query string) (entities.FAQEntry, float64, error) {
	uc.mu.RLock()
	idx := uc.idx
	uc.mu.RUnlock()

	if idx == nil {
		return entities.FAQEntry{}, 0, ErrIndexUnavailable
	}

	queryVec, err := uc.embedder.Embed(ctx, query)
	if err != nil {
		return entities.FAQEntry{}, 0, fmt.Errorf("embedding query: %w", err)
	}

	bestIdx := -1
	bestScore := math.Inf(-1)
	for i, vec := range idx.vectors {
		score := cosineSimilarity(queryVec, vec)
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		return entities.FAQEntry{}, 0, ErrIndexUnavailable
	}

	return idx.corpus.Entries[bestIdx], bestScore, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for mismatched or zero-magnitude vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
